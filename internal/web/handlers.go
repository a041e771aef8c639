package web

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/ops"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleDashboard handles GET /bills, the tracked-bill dashboard.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Status(h.db, h.cfg, ops.StatusInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	changes, err := ops.Changes(h.db, ops.ChangesInput{Limit: ops.DefaultChangesLimit})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "dashboard", DashboardPageData{
		PageData: PageData{
			Title:   "Bills",
			Version: h.renderer.version,
			Session: h.cfg.SessionName,
			Nav:     "bills",
		},
		Bills:     result.Bills,
		Updated:   latestRunBills(changes.Events),
		Generated: time.Now().UTC(),
	})
}

// HandleChanges handles GET /changes, the change feed.
func (h *Handlers) HandleChanges(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Changes(h.db, ops.ChangesInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultChangesLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "changes", ChangesPageData{
		PageData: PageData{
			Title:   "Changes",
			Version: h.renderer.version,
			Session: h.cfg.SessionName,
			Nav:     "changes",
		},
		Events:     result.Events,
		Pagination: result.Pagination,
		Total:      result.Pagination.Total,
	})
}

// HandleReport handles GET /report, the rendered markdown digest.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Report(h.db, h.cfg, ops.ReportInput{})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "report", ReportPageData{
		PageData: PageData{
			Title:   "Report",
			Version: h.renderer.version,
			Session: h.cfg.SessionName,
			Nav:     "report",
		},
		RenderedHTML: renderMarkdown(result.Markdown),
	})
}

// latestRunBills returns the bills that changed in the most recent
// sync. Events from one run share a timestamp, so the newest event's
// timestamp identifies the run.
func latestRunBills(events []track.Event) map[string]bool {
	if len(events) == 0 {
		return nil
	}
	latest := events[0].Timestamp
	updated := make(map[string]bool)
	for _, e := range events {
		if e.Timestamp.Equal(latest) {
			updated[e.Bill] = true
		}
	}
	return updated
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
