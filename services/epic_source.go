package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/LuSP19/space-tg/domain"
)

type epicItem struct {
	Image string `json:"image"`
	Date  string `json:"date"`
}

// EPICSource lists the latest day of natural-color EPIC images. The archive
// endpoint needs the api key too, so each descriptor carries it.
type EPICSource struct {
	api     APIClient
	baseURL string
	apiKey  string
}

func NewEPICSource(api APIClient, baseURL string, apiKey string) *EPICSource {
	return &EPICSource{
		api:     api,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

func (s *EPICSource) Name() string {
	return domain.SourceEPIC
}

func (s *EPICSource) Descriptors(ctx context.Context) ([]domain.ImageDescriptor, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)

	var items []epicItem
	if err := s.api.GetJSON(ctx, s.baseURL+"/EPIC/api/natural/images", params, &items); err != nil {
		return nil, err
	}

	descriptors := make([]domain.ImageDescriptor, 0, len(items))
	for i, item := range items {
		if item.Image == "" {
			return nil, fmt.Errorf("%w: EPIC item %d has no image id", domain.ErrUpstream, i+1)
		}
		if strings.ContainsAny(item.Image, `/\`) || strings.Contains(item.Image, "..") {
			return nil, fmt.Errorf("%w: EPIC item %d has unsafe image id %q", domain.ErrUpstream, i+1, item.Image)
		}
		datePath, err := EPICDatePath(item.Image)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, domain.ImageDescriptor{
			Source:    domain.SourceEPIC,
			SourceURL: s.archiveURL(datePath, item.Image),
			Filename:  EPICFilename(item.Image),
			Query:     url.Values{"api_key": {s.apiKey}},
		})
	}
	return descriptors, nil
}

func (s *EPICSource) archiveURL(datePath, imageID string) string {
	return fmt.Sprintf("%s/EPIC/archive/natural/%s/png/%s.png", s.baseURL, datePath, imageID)
}
