// Package handler provides HTTP handlers for the read-only warehouse API.
// Handlers query Postgres directly via pgxpool — no service layer.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citypulse/citypulse-data/internal/api/respond"
	"github.com/citypulse/citypulse-data/internal/config"
	"github.com/citypulse/citypulse-data/internal/ingest"
	"github.com/citypulse/citypulse-data/internal/warehouse"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool *pgxpool.Pool
	cfg  *config.Config
}

// New creates a Handler with shared dependencies.
func New(pool *pgxpool.Pool, cfg *config.Config) *Handler {
	return &Handler{pool: pool, cfg: cfg}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(ingest.Datasets()))
	for _, ds := range ingest.Datasets() {
		names = append(names, ds.Name)
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"name":     "CityPulse Data API",
		"version":  "1.0.0",
		"status":   "running",
		"datasets": names,
	})
}

// HealthCheck returns basic health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies warehouse connectivity.
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	if err := h.pool.QueryRow(r.Context(), "SELECT 1").Scan(&n); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "db_unavailable", err.Error())
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"status": "healthy"})
}

// ListCities serves the static city registry.
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities := make([]map[string]any, 0, len(config.CityRegistry))
	for _, c := range config.CityRegistry {
		cities = append(cities, map[string]any{
			"name": c.Name,
			"lat":  c.Lat,
			"lon":  c.Lon,
		})
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{"cities": cities})
}

// ListDataset serves rows from one dataset's table, optionally filtered
// by city.
func (h *Handler) ListDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")
	ds, ok := ingest.ByName(name)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "unknown_dataset", "no such dataset: "+name)
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	sql := "SELECT * FROM " + ds.Schema.Table
	args := []any{}
	if city := r.URL.Query().Get("city"); city != "" {
		col, ok := cityColumn(ds.Schema)
		if !ok {
			respond.WriteError(w, http.StatusBadRequest, "unsupported_filter", "dataset has no city column")
			return
		}
		sql += " WHERE " + col + " = $1"
		args = append(args, city)
	}
	sql += " LIMIT " + strconv.Itoa(limit)

	rows, err := h.pool.Query(r.Context(), sql, args...)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "query_failed", err.Error())
		return
	}
	defer rows.Close()

	records, err := rowsToMaps(rows)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "scan_failed", err.Error())
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"dataset": ds.Name,
		"count":   len(records),
		"rows":    records,
	})
}

// cityColumn returns the column the city filter applies to, if the table
// has one.
func cityColumn(schema warehouse.Schema) (string, bool) {
	for _, candidate := range []string{"city", "city_name", "origin_city"} {
		for _, c := range schema.Columns {
			if c.Name == candidate {
				return candidate, true
			}
		}
	}
	return "", false
}

// rowsToMaps converts a result set into column-keyed maps.
func rowsToMaps(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()
	records := []map[string]any{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		record := make(map[string]any, len(fields))
		for i, f := range fields {
			record[f.Name] = values[i]
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
