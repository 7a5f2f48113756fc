package models

import (
	"time"
)

// ImageRecord represents one downloaded image in the catalog
type ImageRecord struct {
	ID          int        `gorm:"primaryKey;autoIncrement"`
	RunID       string     `gorm:"type:text;not null;index"`
	Source      string     `gorm:"type:text;not null"`
	SourceURL   string     `gorm:"column:source_url;type:text;not null"`
	Filename    string     `gorm:"type:text;not null;index:idx_space_images_filename"`
	SizeBytes   int        `gorm:"default:0"`
	FetchedAt   time.Time  `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP"`
	DeliveredAt *time.Time `gorm:"type:timestamp with time zone"`
}

// TableName overrides the table name
func (ImageRecord) TableName() string {
	return "space_images"
}
