package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/LuSP19/space-tg/domain"
	"github.com/LuSP19/space-tg/models"
)

type DBRepository interface {
	RecordFetch(ctx context.Context, runID string, img domain.FetchedImage) error
	MarkDelivered(ctx context.Context, filename string, deliveredAt time.Time) error
}

type PostgresDBRepository struct {
	DB *gorm.DB
}

func NewDBRepository(db *gorm.DB) *PostgresDBRepository {
	return &PostgresDBRepository{DB: db}
}

func (repo *PostgresDBRepository) Migrate() error {
	if err := repo.DB.AutoMigrate(&models.ImageRecord{}); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

func (repo *PostgresDBRepository) RecordFetch(ctx context.Context, runID string, img domain.FetchedImage) error {
	record := models.ImageRecord{
		RunID:     runID,
		Source:    img.Source,
		SourceURL: img.SourceURL,
		Filename:  img.Filename,
		SizeBytes: img.SizeBytes,
		FetchedAt: time.Now().UTC(),
	}

	if err := repo.DB.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert image record for %s: %w", img.Filename, err)
	}
	return nil
}

// MarkDelivered stamps the most recently fetched pending record for filename,
// since the file on disk holds the latest download. Older pending rows with the
// same name stay undelivered. Files that were never catalogued update nothing
// and are not an error.
func (repo *PostgresDBRepository) MarkDelivered(ctx context.Context, filename string, deliveredAt time.Time) error {
	result := repo.DB.WithContext(ctx).
		Model(&models.ImageRecord{}).
		Where("id = (SELECT MAX(id) FROM space_images WHERE filename = ? AND delivered_at IS NULL)", filename).
		Update("delivered_at", deliveredAt)

	if result.Error != nil {
		return fmt.Errorf("failed to mark %s as delivered: %w", filename, result.Error)
	}
	if result.RowsAffected == 0 {
		log.Debug().Str("filename", filename).Msg("no catalog record to mark as delivered")
	}
	return nil
}
