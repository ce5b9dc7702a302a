package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/citypulse/citypulse-data/internal/warehouse"
)

// DefaultWorkers bounds detail-call fan-out when the caller passes 0.
const DefaultWorkers = 4

// Labeled is anything with a human-readable name; entities are usually
// cities but transportation uses ordered city pairs.
type Labeled interface {
	Label() string
}

// Page is one listing window. Providers here use fixed offsets rather than
// cursors; most datasets need a single window.
type Page struct {
	Offset int
	Limit  int
}

// Stages wires one dataset's provider calls and field mapping into the
// shared flow. S is the listing item shape, D the detail shape.
type Stages[E Labeled, S, D any] struct {
	Dataset string

	// Resolve maps an entity to its provider identifier. ok=false means
	// the provider knows nothing about the entity; the entity is skipped.
	// A nil Resolve uses the entity label as its identifier.
	Resolve func(ctx context.Context, entity E) (id string, ok bool, err error)

	// Pages lists the fixed listing windows. Nil means a single window.
	Pages []Page

	// List fetches one listing window. Items come back in provider order.
	List func(ctx context.Context, id string, entity E, page Page) ([]S, error)

	// Enrich fetches the detail record for one item. ok=false degrades
	// the normalized row to defaults. Nil means the dataset has no
	// detail endpoint. At most one attempt per item.
	Enrich func(ctx context.Context, item S) (detail D, ok bool, err error)

	// Normalize merges entity context, item, and optional detail into a
	// flat row. Must be total: any combination of absent fields yields a
	// row with type-correct defaults.
	Normalize func(entity E, item S, detail *D, now time.Time) warehouse.Row

	// Now stamps updated_at. Nil uses time.Now.
	Now func() time.Time
}

// Run drives the pipeline across all entities in order and returns the
// accumulated batch. Entities are processed sequentially; detail calls for
// one entity's items fan out across a bounded worker pool.
func Run[E Labeled, S, D any](ctx context.Context, entities []E, st Stages[E, S, D], workers int, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	now := st.Now
	if now == nil {
		now = time.Now
	}

	result := Result{Dataset: st.Dataset}

	for _, entity := range entities {
		name := entity.Label()
		logger.Info("processing entity", "dataset", st.Dataset, "entity", name)

		id := name
		if st.Resolve != nil {
			resolved, ok, err := st.Resolve(ctx, entity)
			if err != nil {
				result.AddErrorf("resolve %s: %v", name, err)
				result.EntitiesSkipped++
				continue
			}
			if !ok {
				result.AddErrorf("resolve %s: no identifier found", name)
				result.EntitiesSkipped++
				continue
			}
			id = resolved
		}

		pages := st.Pages
		if len(pages) == 0 {
			pages = []Page{{}}
		}

		var items []S
		for _, page := range pages {
			listed, err := st.List(ctx, id, entity, page)
			if err != nil {
				result.AddErrorf("list %s (offset %d): %v", name, page.Offset, err)
				continue
			}
			items = append(items, listed...)
		}

		result.ItemsListed += len(items)
		rows := enrichAndNormalize(ctx, entity, items, st, now, workers, &result)
		result.Records = append(result.Records, rows...)
		result.EntitiesProcessed++

		logger.Info("entity done", "dataset", st.Dataset, "entity", name, "items", len(items))
	}

	logger.Info("pipeline complete", "summary", result.Summary())
	return result
}

// enrichAndNormalize fans detail calls out across the worker pool and
// collects normalized rows. Rows are appended in completion order; the
// sink does not care about batch order.
func enrichAndNormalize[E Labeled, S, D any](
	ctx context.Context,
	entity E,
	items []S,
	st Stages[E, S, D],
	now func() time.Time,
	workers int,
	result *Result,
) []warehouse.Row {
	if len(items) == 0 {
		return nil
	}
	if workers > len(items) {
		workers = len(items)
	}
	if st.Enrich == nil {
		workers = 1
	}

	ch := make(chan S, len(items))
	for _, item := range items {
		ch <- item
	}
	close(ch)

	rows := make([]warehouse.Row, 0, len(items))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range ch {
				var detail *D
				if st.Enrich != nil {
					d, ok, err := st.Enrich(ctx, item)
					switch {
					case err != nil:
						mu.Lock()
						result.AddErrorf("detail %s: %v", entity.Label(), err)
						result.DetailsMissing++
						mu.Unlock()
					case !ok:
						mu.Lock()
						result.DetailsMissing++
						mu.Unlock()
					default:
						detail = &d
					}
				}

				row := st.Normalize(entity, item, detail, now())

				mu.Lock()
				rows = append(rows, row)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return rows
}
