package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/LuSP19/space-tg/domain"
)

type apodItem struct {
	Title     string `json:"title"`
	MediaType string `json:"media_type"`
	HDURL     string `json:"hdurl"`
}

// APODSource asks for a random batch of Astronomy Pictures of the Day. Items
// are not filtered by media type; an item without hdurl fails the batch.
type APODSource struct {
	api     APIClient
	baseURL string
	apiKey  string
	count   int
}

func NewAPODSource(api APIClient, baseURL string, apiKey string, count int) *APODSource {
	return &APODSource{
		api:     api,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		count:   count,
	}
}

func (s *APODSource) Name() string {
	return domain.SourceAPOD
}

func (s *APODSource) Descriptors(ctx context.Context) ([]domain.ImageDescriptor, error) {
	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("count", strconv.Itoa(s.count))

	var items []apodItem
	if err := s.api.GetJSON(ctx, s.baseURL+"/planetary/apod", params, &items); err != nil {
		return nil, err
	}
	if len(items) < s.count {
		log.Warn().Str("source", s.Name()).Int("requested", s.count).Int("returned", len(items)).Msg("APOD returned fewer items than requested")
	}

	descriptors := make([]domain.ImageDescriptor, 0, len(items))
	for i, item := range items {
		if item.HDURL == "" {
			return nil, fmt.Errorf("%w: APOD item %d (%q, media_type=%s) has no hdurl", domain.ErrUpstream, i+1, item.Title, item.MediaType)
		}
		descriptors = append(descriptors, domain.ImageDescriptor{
			Source:    domain.SourceAPOD,
			SourceURL: item.HDURL,
			Filename:  APODFilename(i+1, item.HDURL),
		})
	}
	return descriptors, nil
}
