/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthDTO reports service liveness.
type HealthDTO struct {
	Status string `json:"status"`
	Events int64  `json:"events"`
	Time   string `json:"time"`
}

// EventInput is one event in a POST /api/events body.
type EventInput struct {
	ID     string `json:"id,omitempty"`
	At     string `json:"at"`
	Detail string `json:"detail,omitempty"`
}

// IngestResponse reports what an upload added.
type IngestResponse struct {
	Ingested  int    `json:"ingested"`
	Source    string `json:"source"`
	StartYear int    `json:"start_year,omitempty"`
	EndYear   int    `json:"end_year,omitempty"`
}

// CountDTO is one day bucket in GET /api/counts responses.
type CountDTO struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// StatsDTO is the aggregate view in GET /api/stats responses.
// PerWeekday is indexed 0=Monday .. 6=Sunday.
type StatsDTO struct {
	TotalEvents      int    `json:"total_events"`
	ActiveDays       int    `json:"active_days"`
	MaxPerDay        int    `json:"max_per_day"`
	BusiestDay       string `json:"busiest_day,omitempty"`
	MeanPerActiveDay string `json:"mean_per_active_day"`
	PerWeekday       [7]int `json:"per_weekday"`
}

// SnapshotInfoDTO is snapshot metadata in GET /api/snapshots responses.
type SnapshotInfoDTO struct {
	Key        string `json:"key"`
	StartYear  int    `json:"start_year"`
	EndYear    int    `json:"end_year"`
	EventCount int64  `json:"event_count"`
	Bytes      int64  `json:"bytes"`
	RenderedAt string `json:"rendered_at"`
}

// DemoDTO describes one loadable demo dataset.
type DemoDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadDemoRequest selects a demo dataset to load.
type LoadDemoRequest struct {
	DemoID string `json:"demo_id"`
}
