package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LuSP19/space-tg/domain"
)

type ImageDownloader interface {
	DownloadImage(ctx context.Context, rawURL string, query url.Values) ([]byte, string, error)
}

type ImageStore interface {
	Ensure() error
	Save(filename string, data []byte) (string, error)
	List() ([]string, error)
	Open(filename string) (io.ReadCloser, error)
}

type ImageMirror interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type ImageCatalog interface {
	RecordFetch(ctx context.Context, runID string, img domain.FetchedImage) error
	MarkDelivered(ctx context.Context, filename string, deliveredAt time.Time) error
}

type RedisClient interface {
	IncrBy(ctx context.Context, key string, value int64) error
	SAdd(ctx context.Context, key string, members ...interface{}) (int64, error)
}

type FetcherService struct {
	sources    []ImageSource
	downloader ImageDownloader
	store      ImageStore
	mirror     ImageMirror
	catalog    ImageCatalog
	ledger     RedisClient
}

// Functional Options Pattern
type FetcherOption func(*FetcherService)

func WithSources(sources ...ImageSource) FetcherOption {
	return func(s *FetcherService) { s.sources = append(s.sources, sources...) }
}

func WithDownloader(d ImageDownloader) FetcherOption {
	return func(s *FetcherService) { s.downloader = d }
}

func WithFetchStore(store ImageStore) FetcherOption {
	return func(s *FetcherService) { s.store = store }
}

func WithMirror(m ImageMirror) FetcherOption {
	return func(s *FetcherService) { s.mirror = m }
}

func WithFetchCatalog(c ImageCatalog) FetcherOption {
	return func(s *FetcherService) { s.catalog = c }
}

func WithFetchLedger(r RedisClient) FetcherOption {
	return func(s *FetcherService) { s.ledger = r }
}

func NewFetcherService(opts ...FetcherOption) *FetcherService {
	s := &FetcherService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAll runs every source in order and writes each image to the store.
// The first error aborts the whole batch; files already written stay on disk.
func (s *FetcherService) FetchAll(ctx context.Context, runID string) (int, error) {
	if err := s.store.Ensure(); err != nil {
		return 0, err
	}

	total := 0
	for _, source := range s.sources {
		descriptors, err := source.Descriptors(ctx)
		if err != nil {
			return total, fmt.Errorf("source %s: %w", source.Name(), err)
		}

		for _, d := range descriptors {
			if _, err := s.FetchImage(ctx, runID, d); err != nil {
				return total, fmt.Errorf("source %s: %w", source.Name(), err)
			}
			total++
		}
		log.Info().Str("run_id", runID).Str("source", source.Name()).Int("images", len(descriptors)).Msg("source fetched")
	}
	return total, nil
}

func (s *FetcherService) FetchImage(ctx context.Context, runID string, d domain.ImageDescriptor) (domain.FetchedImage, error) {
	if err := CheckFilename(d.Filename); err != nil {
		return domain.FetchedImage{}, err
	}
	data, contentType, err := s.downloader.DownloadImage(ctx, d.SourceURL, d.Query)
	if err != nil {
		return domain.FetchedImage{}, fmt.Errorf("failed to download %s: %w", d.Filename, err)
	}

	path, err := s.store.Save(d.Filename, data)
	if err != nil {
		return domain.FetchedImage{}, err
	}

	img := domain.FetchedImage{
		ImageDescriptor: d,
		Path:            path,
		ContentType:     contentType,
		SizeBytes:       len(data),
	}
	log.Debug().Str("source", d.Source).Str("filename", d.Filename).Int("bytes", len(data)).Msg("image saved")

	s.afterFetch(ctx, runID, img, data)
	return img, nil
}

// afterFetch feeds the optional sinks. Their failures are logged only.
func (s *FetcherService) afterFetch(ctx context.Context, runID string, img domain.FetchedImage, data []byte) {
	if s.mirror != nil {
		key := fmt.Sprintf("%s/%s", runID, img.Filename)
		if s3Path, err := s.mirror.UploadBytes(ctx, key, data, img.ContentType); err != nil {
			log.Warn().Err(err).Str("filename", img.Filename).Msg("S3 mirror upload failed")
		} else {
			log.Debug().Str("s3_path", s3Path).Msg("image mirrored")
		}
	}

	if s.catalog != nil {
		if err := s.catalog.RecordFetch(ctx, runID, img); err != nil {
			log.Warn().Err(err).Str("filename", img.Filename).Msg("catalog insert failed")
		}
	}

	if s.ledger != nil {
		if err := s.ledger.IncrBy(ctx, fmt.Sprintf(domain.RedisKeyFetched, runID), 1); err != nil {
			log.Warn().Err(err).Str("filename", img.Filename).Msg("ledger update failed")
		}
	}
}
