package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LuSP19/space-tg/domain"
)

type PhotoSender interface {
	SendPhoto(ctx context.Context, chatID string, name string, r io.Reader) error
}

type SQSClient interface {
	SendMessage(ctx context.Context, queueURL string, msg interface{}) error
}

type DeliveryState int

const (
	StateListing DeliveryState = iota
	StateSending
	StateIdle
)

func (s DeliveryState) String() string {
	switch s {
	case StateListing:
		return "listing"
	case StateSending:
		return "sending"
	case StateIdle:
		return "idle"
	}
	return fmt.Sprintf("DeliveryState(%d)", int(s))
}

type DeliveryService struct {
	store    ImageStore
	sender   PhotoSender
	chatID   string
	delay    time.Duration
	sleep    func(time.Duration)
	now      func() time.Time
	sqs      SQSClient
	queueURL string
	ledger   RedisClient
	catalog  ImageCatalog
	state    DeliveryState
}

// Functional Options Pattern
type DeliveryOption func(*DeliveryService)

func WithDeliveryStore(store ImageStore) DeliveryOption {
	return func(s *DeliveryService) { s.store = store }
}

func WithSender(sender PhotoSender, chatID string) DeliveryOption {
	return func(s *DeliveryService) {
		s.sender = sender
		s.chatID = chatID
	}
}

func WithDelay(delay time.Duration) DeliveryOption {
	return func(s *DeliveryService) { s.delay = delay }
}

func WithSleep(sleep func(time.Duration)) DeliveryOption {
	return func(s *DeliveryService) { s.sleep = sleep }
}

func WithClock(now func() time.Time) DeliveryOption {
	return func(s *DeliveryService) { s.now = now }
}

func WithDeliveryEvents(c SQSClient, queueURL string) DeliveryOption {
	return func(s *DeliveryService) {
		s.sqs = c
		s.queueURL = queueURL
	}
}

func WithDeliveryLedger(r RedisClient) DeliveryOption {
	return func(s *DeliveryService) { s.ledger = r }
}

func WithDeliveryCatalog(c ImageCatalog) DeliveryOption {
	return func(s *DeliveryService) { s.catalog = c }
}

func NewDeliveryService(opts ...DeliveryOption) *DeliveryService {
	s := &DeliveryService{
		sleep: time.Sleep,
		now:   time.Now,
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DeliveryService) State() DeliveryState {
	return s.state
}

// Drain sends every file present in the store when it is called, oldest name
// first, sleeping between sends but not after the last one. Files that appear
// after the listing are left for the next run.
func (s *DeliveryService) Drain(ctx context.Context, runID string) (int, error) {
	s.state = StateListing
	queue, err := s.store.List()
	if err != nil {
		s.state = StateIdle
		return 0, err
	}
	log.Info().Str("run_id", runID).Int("images", len(queue)).Msg("delivery queue listed")

	s.state = StateSending
	sent := 0
	for len(queue) > 0 {
		filename := queue[0]
		queue = queue[1:]

		if err := s.deliver(ctx, runID, filename); err != nil {
			s.state = StateIdle
			return sent, err
		}
		sent++

		if len(queue) > 0 && s.delay > 0 {
			s.sleep(s.delay)
		}
	}

	s.state = StateIdle
	log.Info().Str("run_id", runID).Int("sent", sent).Msg("All images have been sent")
	return sent, nil
}

func (s *DeliveryService) deliver(ctx context.Context, runID string, filename string) error {
	photo, err := s.store.Open(filename)
	if err != nil {
		return err
	}
	defer photo.Close()

	if err := s.sender.SendPhoto(ctx, s.chatID, filename, photo); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDelivery, err)
	}
	log.Info().Str("run_id", runID).Str("filename", filename).Msg("photo sent")

	s.afterDelivery(ctx, runID, filename)
	return nil
}

// afterDelivery feeds the optional sinks. Their failures are logged only.
func (s *DeliveryService) afterDelivery(ctx context.Context, runID string, filename string) {
	deliveredAt := s.now().UTC()

	if s.sqs != nil && s.queueURL != "" {
		event := domain.DeliveryEvent{
			Type:        domain.MsgTypePhotoDelivered,
			RunID:       runID,
			Filename:    filename,
			ChatID:      s.chatID,
			DeliveredAt: deliveredAt,
		}
		if err := s.sqs.SendMessage(ctx, s.queueURL, event); err != nil {
			log.Warn().Err(err).Str("filename", filename).Msg("failed to publish delivery event")
		}
	}

	if s.ledger != nil {
		if _, err := s.ledger.SAdd(ctx, fmt.Sprintf(domain.RedisKeyDelivered, runID), filename); err != nil {
			log.Warn().Err(err).Str("filename", filename).Msg("ledger update failed")
		}
	}

	if s.catalog != nil {
		if err := s.catalog.MarkDelivered(ctx, filename, deliveredAt); err != nil {
			log.Warn().Err(err).Str("filename", filename).Msg("catalog update failed")
		}
	}
}
