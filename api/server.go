/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. Throttle:   Per-IP rate limit on ingest endpoints
  5. CORS:       Cross-origin requests for dashboards
  6. Auth:       Basic Auth on mutating endpoints (when configured)

ROUTE GROUPS:
  /calendar*       Rendered pages
  /api/stats       Aggregates
  /api/counts      Day buckets
  /api/events      Manual ingestion
  /api/ingest/*    File-format ingestion
  /api/snapshots*  Render cache
  /api/demo*       Demo datasets

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: Basic Auth middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// NewRouter creates a new router with all routes configured. A nil auth
// leaves the mutating endpoints unprotected (dev mode).
func NewRouter(h *Handler, auth *Auth) *chi.Mux {
	if auth == nil {
		auth = &Auth{}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Rendered pages
	r.Get("/health", h.Health)
	r.Get("/calendar", h.GetCalendar)
	r.Get("/calendar/{year}", h.GetYearCalendar)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", h.GetStats)
		r.Get("/counts", h.GetCounts)
		r.Get("/snapshots", h.ListSnapshots)
		r.Get("/demo", h.ListDemos)

		// Mutating endpoints: rate limited, auth when configured
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(100, time.Minute))
			r.Use(auth.Middleware)

			r.Post("/events", h.AppendEvents)
			r.Post("/ingest/security-log", h.IngestSecurityLog)
			r.Post("/ingest/ics", h.IngestICS)
			r.Post("/snapshots/refresh", h.RefreshSnapshotNow)
			r.Post("/demo/load", h.LoadDemo)
		})
	})

	// Index page listing the endpoints
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Calendar Heatmap</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Calendar Heatmap API</h1>
<ul>
<li><a href="/calendar">/calendar</a> - Rendered activity overview</li>
<li><a href="/api/stats">/api/stats</a> - Aggregate statistics</li>
<li><a href="/api/counts">/api/counts</a> - Day buckets</li>
<li><a href="/api/snapshots">/api/snapshots</a> - Cached renders</li>
<li><a href="/api/demo">/api/demo</a> - Demo datasets</li>
</ul>
</body>
</html>`))
	})

	return r
}
