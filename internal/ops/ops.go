// Package ops implements the tracker's operations: one function per
// user-visible action, shared by the CLI, MCP, and web surfaces. Each
// operation takes its dependencies and a typed input and returns a
// typed output; nothing reads ambient state.
package ops

// Pagination limits for change-log listings.
const (
	DefaultChangesLimit = 20
	MaxChangesLimit     = 200
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// clampLimit applies the default and maximum to a requested page size.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
