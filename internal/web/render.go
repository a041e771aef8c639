package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ulucaydin/virginia-bill-tracker/internal/bill"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
	"github.com/ulucaydin/virginia-bill-tracker/internal/ops"
	"github.com/ulucaydin/virginia-bill-tracker/internal/track"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Session string
	Nav     string // active nav item: "bills", "changes", "report"
}

// DashboardPageData is the template data for the bill dashboard.
type DashboardPageData struct {
	PageData
	Bills     []bill.Record
	Updated   map[string]bool // bills changed in the latest sync
	Generated time.Time
}

// ChangesPageData is the template data for the change feed page.
type ChangesPageData struct {
	PageData
	Events     []track.Event
	Pagination ops.Pagination
	Total      int
}

// ReportPageData is the template data for the rendered report page.
type ReportPageData struct {
	PageData
	RenderedHTML template.HTML
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"formatTime":  formatTime,
		"statusClass": statusClass,
		"kindLabel":   kindLabel,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"dashboard": "dashboard.html",
		"changes":   "changes.html",
		"report":    "report.html",
		"error":     "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var tErr *errors.TrackerError
	if !stderrors.As(err, &tErr) {
		tErr = errors.NewInternal(err)
	}

	status := tErr.Status
	message := tErr.Message

	// JSON request
	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    string(tErr.Code),
				"message": message,
				"status":  status,
			},
		})
		return
	}

	// Full error page
	r.renderPageStatus(w, status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", status),
			Version: r.version,
		},
		StatusCode: status,
		Message:    message,
	})
}

// markdown renders the report digest; GFM is needed for its tables.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatTime formats a timestamp as "2006-01-02 15:04" UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// statusClass maps a bill status to a CSS badge class.
func statusClass(s bill.Status) string {
	switch s {
	case bill.StatusSignedIntoLaw:
		return "status-signed"
	case bill.StatusVetoed, bill.StatusFailed, bill.StatusLeftInCommittee:
		return "status-dead"
	case bill.StatusPassedBoth, bill.StatusPassedHouse, bill.StatusPassedSenate:
		return "status-passed"
	case bill.StatusInCommittee, bill.StatusContinued:
		return "status-active"
	case bill.StatusNotFound, bill.StatusDataUnavailable:
		return "status-unknown"
	default:
		return "status-pending"
	}
}

// kindLabel maps an event kind to a short human label.
func kindLabel(k track.EventKind) string {
	switch k {
	case track.KindNewTracking:
		return "New"
	case track.KindStatusChange:
		return "Status"
	case track.KindActionUpdate:
		return "Action"
	default:
		return string(k)
	}
}
