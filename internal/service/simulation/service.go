package simulation

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
)

const (
	ErrNoReport        domain.Error = "no simulation report available"
	ErrAlreadyRunning  domain.Error = "a simulation is already running"
	ErrInvalidReportID domain.Error = "report id must be a UUID"
)

type ReportStore interface {
	SaveReport(ctx context.Context, report *Report) error
	LatestReport(ctx context.Context) (*Report, error)
	GetReport(ctx context.Context, id string) (*Report, error)
}

type ReportCache interface {
	SetLatest(ctx context.Context, report *Report) error
	GetLatest(ctx context.Context) (*Report, error)
}

type CompletionPublisher interface {
	EmitSimulationCompleted(reportID string, matches int, durationSeconds float64)
}

// Service runs one sweep at a time and keeps the latest report. Store, cache and
// publisher are all optional.
type Service struct {
	runner    Runner
	store     ReportStore
	cache     ReportCache
	publisher CompletionPublisher

	mu      sync.Mutex
	running bool
	latest  *Report
}

func NewService(runner Runner, store ReportStore, cache ReportCache, publisher CompletionPublisher) *Service {
	return &Service{
		runner:    runner,
		store:     store,
		cache:     cache,
		publisher: publisher,
	}
}

func (s *Service) Run(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	report, err := s.runner.Run(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveReport(ctx, report); err != nil {
			log.Printf("[SIM] Failed to save report %s: %v", report.ID, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, report); err != nil {
			log.Printf("[SIM] Failed to cache report %s: %v", report.ID, err)
		}
	}
	if s.publisher != nil {
		s.publisher.EmitSimulationCompleted(report.ID, len(report.Matches), report.Duration().Seconds())
	}
	return report, nil
}

// Latest returns the newest report, looking in the cache, then the store, then memory.
func (s *Service) Latest(ctx context.Context) (*Report, error) {
	if s.cache != nil {
		report, err := s.cache.GetLatest(ctx)
		if err == nil && report != nil {
			return report, nil
		}
		if err != nil && !errors.Is(err, ErrNoReport) {
			log.Printf("[SIM] Cache lookup failed: %v", err)
		}
	}

	if s.store != nil {
		report, err := s.store.LatestReport(ctx)
		if err == nil && report != nil {
			if s.cache != nil {
				if err := s.cache.SetLatest(ctx, report); err != nil {
					log.Printf("[SIM] Failed to refill cache: %v", err)
				}
			}
			return report, nil
		}
		if err != nil && !errors.Is(err, ErrNoReport) {
			log.Printf("[SIM] Store lookup failed: %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil, ErrNoReport
	}
	return s.latest, nil
}

// Report looks up a single report by ID. Without a store only the latest run is known.
func (s *Service) Report(ctx context.Context, id string) (*Report, error) {
	if !uid.IsValid(id) {
		return nil, ErrInvalidReportID
	}

	s.mu.Lock()
	latest := s.latest
	s.mu.Unlock()
	if latest != nil && latest.ID == id {
		return latest, nil
	}

	if s.store == nil {
		return nil, ErrNoReport
	}
	return s.store.GetReport(ctx, id)
}
