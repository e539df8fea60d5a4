package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/contextkeys"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the adapter uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createPredictionsTable = `
CREATE TABLE IF NOT EXISTS predictions (
	id          UUID PRIMARY KEY,
	location    TEXT NOT NULL,
	total_sqft  DOUBLE PRECISION NOT NULL,
	bedrooms    INTEGER NOT NULL,
	bathrooms   INTEGER NOT NULL,
	balconies   INTEGER NOT NULL,
	price       DOUBLE PRECISION NOT NULL,
	unit        TEXT NOT NULL,
	formatted   TEXT NOT NULL,
	trace_id    TEXT,
	created_at  TIMESTAMPTZ NOT NULL
)`

// PostgresPredictionAdapter keeps the audit trail of served predictions.
type PostgresPredictionAdapter struct {
	pool DB
}

func NewPostgresPredictionAdapter(pool DB) (*PostgresPredictionAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("PostgresPredictionAdapter: pool cannot be nil")
	}
	return &PostgresPredictionAdapter{pool: pool}, nil
}

// EnsureSchema creates the predictions table if it does not exist yet.
func (a *PostgresPredictionAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, createPredictionsTable); err != nil {
		return fmt.Errorf("PostgresPredictionAdapter: failed to create predictions table: %w", err)
	}
	return nil
}

func (a *PostgresPredictionAdapter) Save(ctx context.Context, result *domain.PredictionResult) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":     "PostgresPredictionAdapter",
		"prediction_id": result.ID.String(),
	})

	query := `INSERT INTO predictions
		(id, location, total_sqft, bedrooms, bathrooms, balconies, price, unit, formatted, trace_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
		ON CONFLICT (id) DO NOTHING`

	q := result.Query
	_, err := a.pool.Exec(ctx, query,
		result.ID, q.Location, q.TotalSqft, q.Bedrooms, q.Bathrooms, q.Balconies,
		result.Price, result.Unit, result.Formatted,
		contextkeys.TraceIDFromContext(ctx), result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("PostgresPredictionAdapter: failed to insert prediction %s: %w", result.ID, err)
	}

	repoLogger.Debug("Prediction stored", nil)
	return nil
}

func (a *PostgresPredictionAdapter) FindByID(ctx context.Context, id uuid.UUID) (*domain.PredictionResult, error) {
	query := `SELECT id, location, total_sqft, bedrooms, bathrooms, balconies, price, unit, formatted, created_at
		FROM predictions WHERE id = $1`

	var r domain.PredictionResult
	err := a.pool.QueryRow(ctx, query, id).Scan(
		&r.ID, &r.Query.Location, &r.Query.TotalSqft,
		&r.Query.Bedrooms, &r.Query.Bathrooms, &r.Query.Balconies,
		&r.Price, &r.Unit, &r.Formatted, &r.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("PostgresPredictionAdapter: failed to query prediction %s: %w", id, err)
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}
