package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LuSP19/space-tg/config"
	"github.com/LuSP19/space-tg/repositories"
	"github.com/LuSP19/space-tg/services"
)

// newRunService wires the pipeline. sender may be nil for fetch-only runs.
func newRunService(ctx context.Context, cfg *config.Config, sender services.PhotoSender) (*services.RunService, error) {
	httpRepo := repositories.NewHTTPRepository()
	store := repositories.NewFileStore(cfg.ImagesDir)

	fetchOpts := []services.FetcherOption{
		services.WithSources(
			services.NewSpaceXSource(httpRepo, cfg.SpaceXAPIURL, cfg.SpaceXLaunchID, cfg.SpaceXLaunchIndex),
			services.NewAPODSource(httpRepo, cfg.NASAAPIURL, cfg.NASAAPIKey, cfg.NASAImagesCount),
			services.NewEPICSource(httpRepo, cfg.NASAAPIURL, cfg.NASAAPIKey),
		),
		services.WithDownloader(httpRepo),
		services.WithFetchStore(store),
	}
	deliveryOpts := []services.DeliveryOption{
		services.WithDeliveryStore(store),
		services.WithSender(sender, cfg.ChatID),
		services.WithDelay(cfg.SendDelay()),
	}

	// Optional sinks
	var statusRepo services.RunStatusRepository

	if cfg.ImagesBucket != "" || cfg.DeliveryQueueURL != "" || cfg.DynamoDBTable != "" {
		awsCfg, err := loadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.ImagesBucket != "" {
			fetchOpts = append(fetchOpts, services.WithMirror(repositories.NewS3Repository(awsCfg, cfg.ImagesBucket)))
		}
		if cfg.DeliveryQueueURL != "" {
			sqsClient := repositories.NewSQSClient(sqs.NewFromConfig(awsCfg))
			deliveryOpts = append(deliveryOpts, services.WithDeliveryEvents(sqsClient, cfg.DeliveryQueueURL))
		}
		if cfg.DynamoDBTable != "" {
			statusRepo = repositories.NewDynamoDBClient(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable)
		}
	}

	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		catalog := repositories.NewDBRepository(db)
		if err := catalog.Migrate(); err != nil {
			return nil, err
		}
		fetchOpts = append(fetchOpts, services.WithFetchCatalog(catalog))
		deliveryOpts = append(deliveryOpts, services.WithDeliveryCatalog(catalog))
	}

	if cfg.RedisHost != "" {
		ledger := repositories.NewRedisClient(cfg.RedisHost, cfg.RedisPort)
		fetchOpts = append(fetchOpts, services.WithFetchLedger(ledger))
		deliveryOpts = append(deliveryOpts, services.WithDeliveryLedger(ledger))
	}

	log.Debug().
		Str("dir", cfg.ImagesDir).
		Dur("delay", cfg.SendDelay()).
		Bool("s3", cfg.ImagesBucket != "").
		Bool("sqs", cfg.DeliveryQueueURL != "").
		Bool("dynamodb", cfg.DynamoDBTable != "").
		Bool("postgres", cfg.DatabaseURL != "").
		Bool("redis", cfg.RedisHost != "").
		Msg("pipeline wired")

	return services.NewRunService(
		services.NewFetcherService(fetchOpts...),
		services.NewDeliveryService(deliveryOpts...),
		statusRepo,
	), nil
}

func loadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return awsCfg, nil
}
