package domain

import (
	"net/url"
	"time"
)

// ImageDescriptor is one image a source wants on disk
type ImageDescriptor struct {
	Source    string
	SourceURL string
	Filename  string
	Query     url.Values // extra params for the image request itself (EPIC api_key)
}

// DeliveryEvent is published after each photo reaches the chat
type DeliveryEvent struct {
	Type        string    `json:"type"` // "photo_delivered"
	RunID       string    `json:"run_id"`
	Filename    string    `json:"filename"`
	ChatID      string    `json:"chat_id"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// FetchedImage describes a file the fetcher just wrote
type FetchedImage struct {
	ImageDescriptor
	Path        string
	ContentType string
	SizeBytes   int
}
