package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
	"github.com/ulucaydin/virginia-bill-tracker/internal/errors"
	"github.com/ulucaydin/virginia-bill-tracker/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	baseDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, baseDir string) *Handlers {
	return &Handlers{db: db, cfg: cfg, baseDir: baseDir}
}

// Tool definitions

var statusToolDef = mcp.NewTool("bills_status",
	mcp.WithDescription("Get the current status of tracked Virginia bills from the last sync. Optionally filter to a single bill."),
	mcp.WithString("bill", mcp.Description("Bill ID to look up (any spelling, e.g. HB9 or hb0009). Omit for all tracked bills.")),
)

var changesToolDef = mcp.NewTool("bills_changes",
	mcp.WithDescription("List recent bill changes (status changes, new actions, newly tracked bills), newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 20, max 200).")),
	mcp.WithNumber("offset", mcp.Description("Entries to skip for pagination.")),
)

var trackToolDef = mcp.NewTool("bills_track",
	mcp.WithDescription("Add bills to the tracked list. Changes take effect on the next sync."),
	mcp.WithArray("bills",
		mcp.Required(),
		mcp.Description("Bill IDs to track."),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var untrackToolDef = mcp.NewTool("bills_untrack",
	mcp.WithDescription("Remove bills from the tracked list."),
	mcp.WithArray("bills",
		mcp.Required(),
		mcp.Description("Bill IDs to stop tracking."),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var reportToolDef = mcp.NewTool("bills_report",
	mcp.WithDescription("Render a markdown digest of tracked bill statuses and recent changes."),
)

// Request types for each tool

// StatusRequest represents the arguments for bills_status.
type StatusRequest struct {
	Bill string `json:"bill,omitempty"`
}

// ChangesRequest represents the arguments for bills_changes.
type ChangesRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// TrackRequest represents the arguments for bills_track and bills_untrack.
type TrackRequest struct {
	Bills []string `json:"bills"`
}

// HandleStatus handles the bills_status tool call.
func (h *Handlers) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[StatusRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Status(h.db, h.cfg, ops.StatusInput{BillID: input.Bill})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleChanges handles the bills_changes tool call.
func (h *Handlers) HandleChanges(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ChangesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Changes(h.db, ops.ChangesInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTrack handles the bills_track tool call.
func (h *Handlers) HandleTrack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TrackRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Track(ops.TrackInput{BaseDir: h.baseDir, Bills: input.Bills})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUntrack handles the bills_untrack tool call.
func (h *Handlers) HandleUntrack(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TrackRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Untrack(ops.TrackInput{BaseDir: h.baseDir, Bills: input.Bills})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleReport handles the bills_report tool call.
func (h *Handlers) HandleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Report(h.db, h.cfg, ops.ReportInput{})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from a tracker error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any
	if tErr, ok := err.(*errors.TrackerError); ok {
		errorObj := map[string]any{
			"code":    string(tErr.Code),
			"message": tErr.Message,
			"status":  tErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if tErr.Code != errors.ErrInternal && tErr.Details != nil {
			errorObj["details"] = tErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
