package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/LuSP19/space-tg/domain"
)

type spacexLaunch struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Links *struct {
		Flickr *struct {
			Original *[]string `json:"original"`
		} `json:"flickr"`
	} `json:"links"`
}

// SpaceXSource picks one launch, by id when known, otherwise by its pinned
// position in the launches collection.
type SpaceXSource struct {
	api         APIClient
	baseURL     string
	launchID    string
	launchIndex int
}

func NewSpaceXSource(api APIClient, baseURL string, launchID string, launchIndex int) *SpaceXSource {
	return &SpaceXSource{
		api:         api,
		baseURL:     strings.TrimRight(baseURL, "/"),
		launchID:    launchID,
		launchIndex: launchIndex,
	}
}

func (s *SpaceXSource) Name() string {
	return domain.SourceSpaceX
}

func (s *SpaceXSource) Descriptors(ctx context.Context) ([]domain.ImageDescriptor, error) {
	launch, err := s.fetchLaunch(ctx)
	if err != nil {
		return nil, err
	}

	if launch.Links == nil || launch.Links.Flickr == nil || launch.Links.Flickr.Original == nil {
		return nil, fmt.Errorf("%w: launch %s has no links.flickr.original", domain.ErrUpstream, s.launchRef())
	}

	links := *launch.Links.Flickr.Original
	log.Info().Str("source", s.Name()).Str("launch", launch.Name).Int("photos", len(links)).Msg("launch photos listed")

	descriptors := make([]domain.ImageDescriptor, 0, len(links))
	for i, link := range links {
		descriptors = append(descriptors, domain.ImageDescriptor{
			Source:    domain.SourceSpaceX,
			SourceURL: link,
			Filename:  SpaceXFilename(i+1, link),
		})
	}
	return descriptors, nil
}

func (s *SpaceXSource) fetchLaunch(ctx context.Context) (*spacexLaunch, error) {
	var launch spacexLaunch

	if s.launchID != "" {
		endpoint := fmt.Sprintf("%s/launches/%s", s.baseURL, url.PathEscape(s.launchID))
		if err := s.api.GetJSON(ctx, endpoint, nil, &launch); err != nil {
			return nil, err
		}
		return &launch, nil
	}

	var launches []json.RawMessage
	if err := s.api.GetJSON(ctx, s.baseURL+"/launches/", nil, &launches); err != nil {
		return nil, err
	}
	if s.launchIndex < 0 || s.launchIndex >= len(launches) {
		return nil, fmt.Errorf("%w: launch index %d out of range, upstream returned %d launches", domain.ErrUpstream, s.launchIndex, len(launches))
	}
	if err := json.Unmarshal(launches[s.launchIndex], &launch); err != nil {
		return nil, fmt.Errorf("%w: failed to decode launch %d: %v", domain.ErrUpstream, s.launchIndex, err)
	}
	return &launch, nil
}

func (s *SpaceXSource) launchRef() string {
	if s.launchID != "" {
		return s.launchID
	}
	return fmt.Sprintf("#%d", s.launchIndex)
}
