package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smartcity/weather-lookup/internal/domain"
)

// DB is the subset of *pgxpool.Pool the repository needs
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PostgresRepository implements domain.LookupRepository
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool DB) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveLookup persists a lookup record to PostgreSQL
func (r *PostgresRepository) SaveLookup(ctx context.Context, rec domain.LookupRecord) error {
	query := `
		INSERT INTO lookup_log (
			id, city, outcome, temperature, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.City, rec.Outcome, rec.Temperature, rec.Duration.Milliseconds(), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save lookup: %w", err)
	}

	return nil
}

// GetLookups retrieves lookup records from PostgreSQL
func (r *PostgresRepository) GetLookups(ctx context.Context, from, to time.Time) ([]domain.LookupRecord, error) {
	query := `
		SELECT id, city, outcome, temperature, duration_ms, created_at
		FROM lookup_log
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query lookups: %w", err)
	}
	defer rows.Close()

	var results []domain.LookupRecord
	for rows.Next() {
		var (
			rec        domain.LookupRecord
			durationMs int64
		)
		err := rows.Scan(&rec.ID, &rec.City, &rec.Outcome, &rec.Temperature, &durationMs, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan lookup row: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate lookups: %w", err)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
