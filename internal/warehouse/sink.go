package warehouse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citypulse/citypulse-data/internal/config"
)

// loadChunkSize bounds how many rows go into a single COPY call.
const loadChunkSize = 1000

// LoadResult reports the outcome of one bulk append.
type LoadResult struct {
	Succeeded bool
	Rows      int64
	Chunks    int
}

// Summary returns a human-readable summary of the load.
func (r LoadResult) Summary() string {
	return fmt.Sprintf("succeeded=%v rows=%d chunks=%d", r.Succeeded, r.Rows, r.Chunks)
}

// Sink appends record batches into the warehouse. The connection is scoped
// to a single Load call: acquired before the schema assertion, released
// unconditionally when the load returns.
type Sink struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewSink creates a sink for the configured warehouse.
func NewSink(cfg *config.Config, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{cfg: cfg, logger: logger}
}

// Load asserts the schema, then appends all rows. An empty batch returns a
// successful zero-row result without opening a connection. Rows are
// append-only; duplicate keys across runs are the warehouse's concern.
func (s *Sink) Load(ctx context.Context, schema Schema, rows []Row) (LoadResult, error) {
	if err := schema.Validate(); err != nil {
		return LoadResult{}, err
	}
	if len(rows) == 0 {
		s.logger.Info("nothing to load", "table", schema.Table)
		return LoadResult{Succeeded: true}, nil
	}

	pool, err := Connect(ctx, s.cfg)
	if err != nil {
		return LoadResult{}, fmt.Errorf("connect warehouse: %w", err)
	}
	defer pool.Close()

	if err := EnsureSchema(ctx, pool.Pool, schema); err != nil {
		return LoadResult{}, err
	}

	return appendRows(ctx, pool.Pool, schema, rows)
}

// EnsureSchema issues the idempotent CREATE TABLE statement. Safe to call
// every run; it never alters an existing table.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, schema Schema) error {
	if _, err := pool.Exec(ctx, schema.DDL()); err != nil {
		return fmt.Errorf("ensure table %s: %w", schema.Table, err)
	}
	return nil
}

// appendRows copies the batch in fixed-size chunks.
func appendRows(ctx context.Context, pool *pgxpool.Pool, schema Schema, rows []Row) (LoadResult, error) {
	columns := schema.ColumnNames()
	var result LoadResult

	for start := 0; start < len(rows); start += loadChunkSize {
		end := start + loadChunkSize
		if end > len(rows) {
			end = len(rows)
		}

		chunk := make([][]any, 0, end-start)
		for _, row := range rows[start:end] {
			chunk = append(chunk, row)
		}

		copied, err := pool.CopyFrom(ctx, pgx.Identifier{schema.Table}, columns, pgx.CopyFromRows(chunk))
		if err != nil {
			return result, fmt.Errorf("copy into %s (chunk %d): %w", schema.Table, result.Chunks+1, err)
		}
		result.Rows += copied
		result.Chunks++
	}

	result.Succeeded = true
	return result, nil
}
