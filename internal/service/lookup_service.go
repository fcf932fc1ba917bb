package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/smartcity/weather-lookup/internal/domain"
	"github.com/smartcity/weather-lookup/internal/metrics"
)

// Fetcher performs a single weather lookup
type Fetcher interface {
	Fetch(ctx context.Context, cityName string) (domain.WeatherSummary, error)
	Configured() bool
}

// LookupService runs lookups and keeps the lookup log and metrics up to date
type LookupService struct {
	fetcher Fetcher
	repo    LookupRepository
	metrics *metrics.Metrics
	logger  *slog.Logger

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewLookupService creates a new lookup service
func NewLookupService(
	fetcher Fetcher,
	repo LookupRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) *LookupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LookupService{
		fetcher: fetcher,
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// WaitBackground blocks until all background goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *LookupService) WaitBackground() {
	s.wgBg.Wait()
}

// Go runs fn in a goroutine that WaitBackground waits for. Call it before
// WaitBackground can start, e.g. from main before blocking on signals.
func (s *LookupService) Go(fn func()) {
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		fn()
	}()
}

// Configured reports whether the underlying fetcher has a usable API key
func (s *LookupService) Configured() bool {
	return s.fetcher.Configured()
}

// Lookup fetches weather for cityName and returns the fetch result unchanged
func (s *LookupService) Lookup(ctx context.Context, cityName string) (domain.WeatherSummary, error) {
	start := time.Now()
	summary, err := s.fetcher.Fetch(ctx, cityName)
	took := time.Since(start)

	rec := domain.NewLookupRecord(cityName, summary, err, took)
	s.metrics.ObserveLookup(rec.Outcome, took)

	if err != nil {
		s.logger.Warn("weather lookup failed", "city", cityName, "kind", rec.Outcome, "error", err)
	} else {
		s.logger.Debug("weather lookup succeeded", "city", summary.City, "country", summary.Country, "duration", took)
	}

	// Empty input never reached the network and has nothing worth logging.
	if rec.Outcome == string(domain.KindEmptyInput) {
		return summary, err
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if saveErr := s.repo.SaveLookup(bgCtx, rec); saveErr != nil {
			s.logger.Error("failed to save lookup", "id", rec.ID, "error", saveErr)
		}
	}()

	return summary, err
}

// History returns lookup records within a time range
func (s *LookupService) History(ctx context.Context, from, to time.Time) ([]domain.LookupRecord, error) {
	return s.repo.GetLookups(ctx, from, to)
}

// Health checks the lookup log backend
func (s *LookupService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}
