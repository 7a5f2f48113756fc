package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	NASAAPIKey string `env:"NASA_API_KEY"`
	TGBotToken string `env:"TG_BOT_TOKEN"`
	ChatID     string `env:"CHAT_ID"`

	// Seconds to wait between two sends
	SendDelaySeconds int    `env:"SPACE_IMAGES_SEND_DELAY" envDefault:"86400"`
	ImagesDir        string `env:"IMAGES_DIR" envDefault:"images"`
	NASAImagesCount  int    `env:"NASA_IMAGES_COUNT" envDefault:"10"`

	// Pinned position in the launches collection; SpaceXLaunchID wins when set
	SpaceXLaunchIndex int    `env:"SPACEX_LAUNCH_INDEX" envDefault:"12"`
	SpaceXLaunchID    string `env:"SPACEX_LAUNCH_ID"`

	SpaceXAPIURL string `env:"SPACEX_API_URL" envDefault:"https://api.spacexdata.com/v4"`
	NASAAPIURL   string `env:"NASA_API_URL" envDefault:"https://api.nasa.gov"`

	AWSRegion        string `env:"AWS_REGION" envDefault:"us-east-1"`
	ImagesBucket     string `env:"IMAGES_BUCKET"`
	DeliveryQueueURL string `env:"DELIVERY_QUEUE_URL"`
	DynamoDBTable    string `env:"DYNAMODB_TABLE"`
	DatabaseURL      string `env:"DATABASE_URL"`
	RedisHost        string `env:"REDIS_HOST"`
	RedisPort        string `env:"REDIS_PORT" envDefault:"6379"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SendDelaySeconds < 0 {
		return nil, fmt.Errorf("SPACE_IMAGES_SEND_DELAY must not be negative")
	}
	if cfg.NASAImagesCount <= 0 {
		return nil, fmt.Errorf("NASA_IMAGES_COUNT must be positive")
	}
	if cfg.SpaceXLaunchIndex < 0 {
		return nil, fmt.Errorf("SPACEX_LAUNCH_INDEX must not be negative")
	}
	return cfg, nil
}

func (c *Config) SendDelay() time.Duration {
	return time.Duration(c.SendDelaySeconds) * time.Second
}

func (c *Config) ValidateFetch() error {
	if c.NASAAPIKey == "" {
		return fmt.Errorf("NASA_API_KEY is required")
	}
	if c.ImagesDir == "" {
		return fmt.Errorf("IMAGES_DIR is required")
	}
	return nil
}

func (c *Config) ValidateDeliver() error {
	if c.TGBotToken == "" {
		return fmt.Errorf("TG_BOT_TOKEN is required")
	}
	if c.ChatID == "" {
		return fmt.Errorf("CHAT_ID is required")
	}
	if c.ImagesDir == "" {
		return fmt.Errorf("IMAGES_DIR is required")
	}
	return nil
}
