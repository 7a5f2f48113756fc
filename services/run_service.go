package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/LuSP19/space-tg/domain"
)

type RunStatusRepository interface {
	UpdateRunStatus(ctx context.Context, runID string, status string) error
	CompleteRun(ctx context.Context, runID string, status string, completedAt string, deliveredCount int) error
}

type Fetcher interface {
	FetchAll(ctx context.Context, runID string) (int, error)
}

type Drainer interface {
	Drain(ctx context.Context, runID string) (int, error)
}

type RunSummary struct {
	RunID     string
	Fetched   int
	Delivered int
}

type RunService struct {
	fetcher    Fetcher
	drainer    Drainer
	statusRepo RunStatusRepository
	newID      func() string
}

func NewRunService(fetcher Fetcher, drainer Drainer, statusRepo RunStatusRepository) *RunService {
	return &RunService{
		fetcher:    fetcher,
		drainer:    drainer,
		statusRepo: statusRepo,
		newID:      uuid.NewString,
	}
}

// Run fetches from every source and only then drains the directory.
func (s *RunService) Run(ctx context.Context) (RunSummary, error) {
	summary := RunSummary{RunID: s.newID()}
	s.start(ctx, summary.RunID)

	fetched, err := s.fetcher.FetchAll(ctx, summary.RunID)
	summary.Fetched = fetched
	if err != nil {
		s.finish(ctx, summary, domain.StatusFailed)
		return summary, err
	}

	delivered, err := s.drainer.Drain(ctx, summary.RunID)
	summary.Delivered = delivered
	if err != nil {
		s.finish(ctx, summary, domain.StatusFailed)
		return summary, err
	}

	s.finish(ctx, summary, domain.StatusCompleted)
	return summary, nil
}

func (s *RunService) Fetch(ctx context.Context) (RunSummary, error) {
	summary := RunSummary{RunID: s.newID()}
	s.start(ctx, summary.RunID)

	fetched, err := s.fetcher.FetchAll(ctx, summary.RunID)
	summary.Fetched = fetched
	if err != nil {
		s.finish(ctx, summary, domain.StatusFailed)
		return summary, err
	}
	s.finish(ctx, summary, domain.StatusCompleted)
	return summary, nil
}

func (s *RunService) Deliver(ctx context.Context) (RunSummary, error) {
	summary := RunSummary{RunID: s.newID()}
	s.start(ctx, summary.RunID)

	delivered, err := s.drainer.Drain(ctx, summary.RunID)
	summary.Delivered = delivered
	if err != nil {
		s.finish(ctx, summary, domain.StatusFailed)
		return summary, err
	}
	s.finish(ctx, summary, domain.StatusCompleted)
	return summary, nil
}

func (s *RunService) start(ctx context.Context, runID string) {
	log.Info().Str("run_id", runID).Msg("run started")
	if s.statusRepo == nil {
		return
	}
	if err := s.statusRepo.UpdateRunStatus(ctx, runID, domain.StatusRunning); err != nil {
		log.Warn().Err(err).Str("run_id", runID).Msg("failed to record run start")
	}
}

func (s *RunService) finish(ctx context.Context, summary RunSummary, status string) {
	log.Info().Str("run_id", summary.RunID).Str("status", status).
		Int("fetched", summary.Fetched).Int("delivered", summary.Delivered).Msg("run finished")
	if s.statusRepo == nil {
		return
	}
	completedAt := time.Now().UTC().Format(time.RFC3339)
	if err := s.statusRepo.CompleteRun(ctx, summary.RunID, status, completedAt, summary.Delivered); err != nil {
		log.Warn().Err(err).Str("run_id", summary.RunID).Msg("failed to record run completion")
	}
}
