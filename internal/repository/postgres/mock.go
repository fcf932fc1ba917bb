package postgres

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/smartcity/weather-lookup/internal/domain"
)

const mockCapacity = 100

// MockRepository implements domain.LookupRepository in memory for running without a database
type MockRepository struct {
	mu      sync.Mutex
	records []domain.LookupRecord
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveLookup keeps the most recent records in memory
func (r *MockRepository) SaveLookup(ctx context.Context, rec domain.LookupRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	if len(r.records) > mockCapacity {
		r.records = r.records[len(r.records)-mockCapacity:]
	}
	return nil
}

// GetLookups returns records within the range, newest first
func (r *MockRepository) GetLookups(ctx context.Context, from, to time.Time) ([]domain.LookupRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []domain.LookupRecord
	for _, rec := range r.records {
		if rec.CreatedAt.Before(from) || rec.CreatedAt.After(to) {
			continue
		}
		results = append(results, rec)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
