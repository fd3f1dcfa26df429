/*
handlers.go - HTTP API handlers for the calendar heatmap service

PURPOSE:
  Exposes the heatmap pipeline via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Pages:
    GET    /health                     Service liveness
    GET    /calendar                   Rendered overview (cached snapshot)
    GET    /calendar/{year}            Rendered single year

  Data:
    GET    /api/stats                  Aggregate statistics
    GET    /api/counts                 Day buckets (from/to filters)

  Ingestion (Basic Auth when configured):
    POST   /api/events                 JSON array of events
    POST   /api/ingest/security-log    Account-activity HTML export
    POST   /api/ingest/ics             iCalendar feed

  Snapshots:
    GET    /api/snapshots              Snapshot metadata
    POST   /api/snapshots/refresh      Re-render and cache (auth)

  Demo:
    GET    /api/demo                   List demo datasets
    POST   /api/demo/load              Load a demo dataset (auth)

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Events: Event persistence
  - Snapshots: Rendered document cache
  - Profile: Locale, week layout and coloring

SNAPSHOT CACHING:
  GET /calendar serves the stored snapshot as long as its event count
  matches the store. Any ingest changes the count, so the next page view
  re-renders exactly once.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed uploads
  - 404: Nothing ingested yet, unknown year or snapshot
  - 409: Duplicate event ids
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scheduler.go: Automated snapshot refresh
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/calendar-heatmap/calendar"
	"github.com/warp/calendar-heatmap/event"
	"github.com/warp/calendar-heatmap/heatmap"
	"github.com/warp/calendar-heatmap/ingest"
	"github.com/warp/calendar-heatmap/profile"
	"github.com/warp/calendar-heatmap/stats"
)

// maxUploadBytes caps ingest request bodies.
const maxUploadBytes = 16 << 20 // 16 MB

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Events    event.Store
	Snapshots event.SnapshotStore
	Profile   *profile.Profile

	// SnapshotKey is the cache key of the rendered overview.
	SnapshotKey string
}

// NewHandler creates a new handler. A nil profile selects the default.
func NewHandler(events event.Store, snapshots event.SnapshotStore, prof *profile.Profile) *Handler {
	if prof == nil {
		prof = profile.Default()
	}
	return &Handler{
		Events:      events,
		Snapshots:   snapshots,
		Profile:     prof,
		SnapshotKey: "default",
	}
}

// =============================================================================
// PAGE HANDLERS
// =============================================================================

// Health reports service liveness and the stored event count.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.Events.CountEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events", err)
		return
	}

	writeJSON(w, http.StatusOK, HealthDTO{
		Status: "ok",
		Events: count,
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetCalendar serves the rendered overview page. The cached snapshot is
// used as long as it covers the current event count; otherwise the page
// is re-rendered and the cache replaced.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.Events.CountEvents(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events", err)
		return
	}

	snap, err := h.Snapshots.GetSnapshot(ctx, h.SnapshotKey)
	if err != nil && !errors.Is(err, event.ErrSnapshotNotFound) {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	if snap == nil || snap.EventCount != count {
		snap, err = h.RefreshSnapshot(ctx)
		if errors.Is(err, event.ErrNoEvents) {
			writeError(w, http.StatusNotFound, "No events ingested yet", nil)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to render calendar", err)
			return
		}
	}

	writeHTML(w, http.StatusOK, snap.HTML)
}

// GetYearCalendar renders a single year on the fly.
func (h *Handler) GetYearCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < calendar.MinYear || year > calendar.MaxYear {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	counts, err := h.Events.CountByDay(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events", err)
		return
	}
	if len(counts) == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No events in %d", year), nil)
		return
	}

	page, err := h.renderPage(counts, year, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render calendar", err)
		return
	}

	writeHTML(w, http.StatusOK, page)
}

// =============================================================================
// SNAPSHOT PIPELINE
// =============================================================================

// renderPage renders a year range with a density style derived from counts.
func (h *Handler) renderPage(counts heatmap.DayCount, startYear, endYear int) (string, error) {
	rules, err := h.Profile.Mapper().Rules(counts)
	if err != nil {
		return "", err
	}
	return h.Profile.Renderer().FormatPage(startYear, endYear, heatmap.Stylesheet(rules))
}

// RefreshSnapshot re-renders the full overview and stores it under the
// handler's snapshot key.
func (h *Handler) RefreshSnapshot(ctx context.Context) (*event.Snapshot, error) {
	counts, err := h.Events.CountByDay(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, event.ErrNoEvents
	}

	startYear, endYear, err := h.Events.YearBounds(ctx)
	if err != nil {
		return nil, err
	}

	page, err := h.renderPage(counts, startYear, endYear)
	if err != nil {
		return nil, err
	}

	count, err := h.Events.CountEvents(ctx)
	if err != nil {
		return nil, err
	}

	snap := event.Snapshot{
		Key:        h.SnapshotKey,
		HTML:       page,
		StartYear:  startYear,
		EndYear:    endYear,
		EventCount: count,
		RenderedAt: time.Now().UTC(),
	}
	if err := h.Snapshots.SaveSnapshot(ctx, snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

// =============================================================================
// DATA HANDLERS
// =============================================================================

// GetStats returns aggregate statistics over all stored events.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Events.CountByDay(r.Context(), time.Time{}, time.Time{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events", err)
		return
	}

	s := stats.Summarize(counts)

	dto := StatsDTO{
		TotalEvents:      s.TotalEvents,
		ActiveDays:       s.ActiveDays,
		MaxPerDay:        s.MaxPerDay,
		MeanPerActiveDay: s.MeanPerActiveDay.String(),
		PerWeekday:       s.PerWeekday,
	}
	if s.ActiveDays > 0 {
		dto.BusiestDay = s.BusiestDay.String()
	}

	writeJSON(w, http.StatusOK, dto)
}

// GetCounts returns day buckets, optionally bounded by from/to query
// parameters in YYYY-MM-DD form (inclusive).
func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
			return
		}
		to = t.Add(24*time.Hour - time.Second)
	}

	counts, err := h.Events.CountByDay(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events", err)
		return
	}

	dtos := make([]CountDTO, 0, len(counts))
	for _, day := range counts.Days() {
		dtos = append(dtos, CountDTO{Day: day.String(), Count: counts.Get(day)})
	}

	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// INGEST HANDLERS
// =============================================================================

// AppendEvents ingests a JSON array of events. Events without an id get a
// random one, so retries append again; supply ids for idempotent uploads.
func (h *Handler) AppendEvents(w http.ResponseWriter, r *http.Request) {
	var inputs []EventInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes)).Decode(&inputs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(inputs) == 0 {
		writeError(w, http.StatusBadRequest, "No events in request", nil)
		return
	}

	evs := make([]event.Event, len(inputs))
	for i, in := range inputs {
		at, err := time.Parse(time.RFC3339, in.At)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid timestamp in event %d (use RFC3339)", i+1), err)
			return
		}

		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}

		evs[i] = event.Event{
			ID:     event.EventID(id),
			Source: event.SourceManual,
			At:     at,
			Detail: in.Detail,
		}
	}

	if err := h.Events.AppendBatch(r.Context(), evs); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ingestResponse(evs, event.SourceManual))
}

// IngestSecurityLog ingests an account-activity HTML export. The locale
// query parameter selects the month-name table; the default is German,
// matching the exports this service grew up on.
func (h *Handler) IngestSecurityLog(w http.ResponseWriter, r *http.Request) {
	loc := calendar.German
	if code := r.URL.Query().Get("locale"); code != "" {
		l, ok := calendar.LocaleByCode(code)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown locale %q", code), nil)
			return
		}
		loc = l
	}

	evs, err := ingest.ParseSecurityLog(http.MaxBytesReader(w, r.Body, maxUploadBytes), loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse security log", err)
		return
	}
	if len(evs) == 0 {
		writeError(w, http.StatusBadRequest, "Export contains no entries", nil)
		return
	}

	if err := h.Events.AppendBatch(r.Context(), evs); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ingestResponse(evs, event.SourceSecurityLog))
}

// IngestICS ingests VEVENT start times from an iCalendar document.
func (h *Handler) IngestICS(w http.ResponseWriter, r *http.Request) {
	evs, err := ingest.ParseICS(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse calendar", err)
		return
	}
	if len(evs) == 0 {
		writeError(w, http.StatusBadRequest, "Calendar contains no events", nil)
		return
	}

	if err := h.Events.AppendBatch(r.Context(), evs); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ingestResponse(evs, event.SourceICS))
}

func ingestResponse(evs []event.Event, source event.SourceType) IngestResponse {
	resp := IngestResponse{Ingested: len(evs), Source: string(source)}
	if startYear, endYear, err := ingest.YearSpan(evs); err == nil {
		resp.StartYear = startYear
		resp.EndYear = endYear
	}
	return resp
}

// =============================================================================
// SNAPSHOT HANDLERS
// =============================================================================

// RefreshSnapshotNow re-renders the overview on demand.
func (h *Handler) RefreshSnapshotNow(w http.ResponseWriter, r *http.Request) {
	snap, err := h.RefreshSnapshot(r.Context())
	if errors.Is(err, event.ErrNoEvents) {
		writeError(w, http.StatusNotFound, "No events ingested yet", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to refresh snapshot", err)
		return
	}

	writeJSON(w, http.StatusOK, snapshotInfoDTO(snap.Info()))
}

// ListSnapshots returns metadata for all cached snapshots.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Snapshots.ListSnapshots(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list snapshots", err)
		return
	}

	dtos := make([]SnapshotInfoDTO, len(infos))
	for i, info := range infos {
		dtos[i] = snapshotInfoDTO(info)
	}

	writeJSON(w, http.StatusOK, dtos)
}

func snapshotInfoDTO(info event.SnapshotInfo) SnapshotInfoDTO {
	return SnapshotInfoDTO{
		Key:        info.Key,
		StartYear:  info.StartYear,
		EndYear:    info.EndYear,
		EventCount: info.EventCount,
		Bytes:      info.Bytes,
		RenderedAt: info.RenderedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, event.ErrDuplicateEvent):
		writeError(w, http.StatusConflict, "Duplicate event id", err)
	case errors.Is(err, event.ErrNoEvents):
		writeError(w, http.StatusNotFound, "No events recorded", err)
	default:
		writeError(w, http.StatusInternalServerError, "Storage error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
