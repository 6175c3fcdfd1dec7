package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routellm/llm-router/internal/types"
)

// schema is the classification_logs table from spec §6. Migration itself
// is out of scope (spec §1); this is documentation for the schema this
// sink writes against.
const schema = `
CREATE TABLE IF NOT EXISTS classification_logs (
	id BIGSERIAL PRIMARY KEY,
	prompt_hash TEXT,
	prompt_preview TEXT,
	category TEXT NOT NULL,
	confidence FLOAT,
	source TEXT,
	model_used TEXT,
	cost_usd FLOAT,
	latency_ms INT,
	corrected_to TEXT,
	created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS classification_logs_prompt_hash_idx ON classification_logs (prompt_hash);
CREATE INDEX IF NOT EXISTS classification_logs_created_at_idx ON classification_logs (created_at DESC);
CREATE INDEX IF NOT EXISTS classification_logs_category_idx ON classification_logs (category);
CREATE INDEX IF NOT EXISTS classification_logs_model_used_idx ON classification_logs (model_used);
`

// PostgresSink writes one row per entry to classification_logs via a
// pooled pgx connection.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink connects to databaseURL and ensures the table exists.
func NewPostgresSink(ctx context.Context, databaseURL string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure classification_logs schema: %w", err)
	}
	return &PostgresSink{pool: pool}, nil
}

// Insert appends one audit row. Errors are returned to Dispatch, which
// logs and drops them; Insert itself never blocks the request path since
// it is always called from the Dispatch goroutine.
func (s *PostgresSink) Insert(ctx context.Context, entry types.AuditEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO classification_logs
			(prompt_hash, prompt_preview, category, confidence, source, model_used, cost_usd, latency_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		entry.PromptHash,
		entry.PromptPreview,
		string(entry.Category),
		entry.Confidence,
		string(entry.Source),
		entry.Model,
		entry.CostUsd,
		entry.LatencyMs,
	)
	return err
}

// Close releases the underlying connection pool.
func (s *PostgresSink) Close() {
	s.pool.Close()
}
