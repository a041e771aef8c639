// Package mcp exposes the tracker over the Model Context Protocol so
// assistants can query bill status and the change feed directly.
package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ulucaydin/virginia-bill-tracker/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"bills_status": {
		def:     statusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStatus },
	},
	"bills_changes": {
		def:     changesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleChanges },
	},
	"bills_track": {
		def:     trackToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTrack },
	},
	"bills_untrack": {
		def:     untrackToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUntrack },
	},
	"bills_report": {
		def:     reportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns the unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates an MCP server with the tracker tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, baseDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"billtracker",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg, baseDir)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, baseDir, version string) error {
	s := NewServer(db, cfg, baseDir, version)
	return server.ServeStdio(s)
}
