package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutcomeOK marks a lookup that produced a WeatherSummary
const OutcomeOK = "ok"

// LookupRecord is one row of the lookup log
type LookupRecord struct {
	ID          uuid.UUID     `json:"id"`
	City        string        `json:"city"`
	Outcome     string        `json:"outcome"`
	Temperature *int          `json:"temperature,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
	CreatedAt   time.Time     `json:"created_at"`
}

// NewLookupRecord builds a log row from the result of a single lookup
func NewLookupRecord(city string, summary WeatherSummary, err error, took time.Duration) LookupRecord {
	rec := LookupRecord{
		ID:        uuid.New(),
		City:      city,
		Outcome:   OutcomeOK,
		Duration:  took,
		CreatedAt: time.Now(),
	}
	if err != nil {
		rec.Outcome = string(KindOf(err))
		if rec.Outcome == "" {
			rec.Outcome = "unknown"
		}
		return rec
	}
	temp := summary.Temperature
	rec.Temperature = &temp
	return rec
}

// LookupRepository defines the interface for the lookup log.
// The log is write-mostly and is never consulted to answer a lookup.
type LookupRepository interface {
	// SaveLookup persists one lookup record
	SaveLookup(ctx context.Context, rec LookupRecord) error

	// GetLookups retrieves lookup records within a time range
	GetLookups(ctx context.Context, from, to time.Time) ([]LookupRecord, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}
