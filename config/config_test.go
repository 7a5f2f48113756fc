package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("NASA_API_KEY", "nasa-key")
	t.Setenv("TG_BOT_TOKEN", "tg-token")
	t.Setenv("CHAT_ID", "@space")
	t.Setenv("SPACE_IMAGES_SEND_DELAY", "60")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "nasa-key", cfg.NASAAPIKey)
	assert.Equal(t, "tg-token", cfg.TGBotToken)
	assert.Equal(t, "@space", cfg.ChatID)
	assert.Equal(t, time.Minute, cfg.SendDelay())
	assert.NoError(t, cfg.ValidateFetch())
	assert.NoError(t, cfg.ValidateDeliver())
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SPACE_IMAGES_SEND_DELAY", "IMAGES_DIR", "NASA_IMAGES_COUNT", "SPACEX_LAUNCH_INDEX", "REDIS_PORT"} {
		if v, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			defer os.Setenv(key, v)
		}
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 86400*time.Second, cfg.SendDelay())
	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, 10, cfg.NASAImagesCount)
	assert.Equal(t, 12, cfg.SpaceXLaunchIndex)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, "https://api.spacexdata.com/v4", cfg.SpaceXAPIURL)
	assert.Equal(t, "https://api.nasa.gov", cfg.NASAAPIURL)
}

func TestLoad_InvalidDelay(t *testing.T) {
	t.Setenv("SPACE_IMAGES_SEND_DELAY", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SPACE_IMAGES_SEND_DELAY", "-1")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate_Missing(t *testing.T) {
	cfg := &Config{ImagesDir: "images"}

	err := cfg.ValidateFetch()
	assert.EqualError(t, err, "NASA_API_KEY is required")

	err = cfg.ValidateDeliver()
	assert.EqualError(t, err, "TG_BOT_TOKEN is required")

	cfg.TGBotToken = "token"
	err = cfg.ValidateDeliver()
	assert.EqualError(t, err, "CHAT_ID is required")
}
