package services

import (
	"context"
	"net/url"

	"github.com/LuSP19/space-tg/domain"
)

// Consumer-side interfaces
type APIClient interface {
	GetJSON(ctx context.Context, rawURL string, query url.Values, out interface{}) error
}

// ImageSource queries one upstream API and names every image it lists.
type ImageSource interface {
	Name() string
	Descriptors(ctx context.Context) ([]domain.ImageDescriptor, error)
}
