// Package pipeline provides the shared ingestion flow every dataset runs:
// resolve an entity to a provider identifier, fetch its listing, enrich
// each listed item with a detail call, normalize into flat warehouse rows,
// and accumulate across entities. Every stage is best-effort; a failed
// entity or item is logged and skipped, never fatal to the run.
package pipeline

import (
	"fmt"

	"github.com/citypulse/citypulse-data/internal/warehouse"
)

// Result tracks counts, rows, and errors from one pipeline run.
type Result struct {
	Dataset           string
	EntitiesProcessed int
	EntitiesSkipped   int
	ItemsListed       int
	DetailsMissing    int
	Records           []warehouse.Row
	Errors            []string
}

// AddError records an error message.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"dataset=%s entities=%d skipped=%d items=%d details_missing=%d records=%d errors=%d",
		r.Dataset, r.EntitiesProcessed, r.EntitiesSkipped,
		r.ItemsListed, r.DetailsMissing, len(r.Records), len(r.Errors),
	)
}
