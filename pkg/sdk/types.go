package sdk

// Entry is a flattened catalog entry.
type Entry struct {
	Term       string   `json:"term"`
	Category   string   `json:"category"`
	Definition string   `json:"definition"`
	Class      string   `json:"class"`
	Type       string   `json:"type"`
	Tags       []string `json:"tags"`
}

// FilterSpec selects entries. Empty or "all" axis values match
// everything; Search matches term or definition case-insensitively.
type FilterSpec struct {
	Search string
	Class  string
	Type   string
	Tag    string
}

// EntryPage is one page of a cursor-paginated entry listing.
type EntryPage struct {
	Items      []Entry `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
}

// Facets holds all filterable value universes.
type Facets struct {
	Tags    []string `json:"tags"`
	Classes []string `json:"classes"`
	Types   []string `json:"types"`
}

// ReloadStats describes the snapshot produced by a reload.
type ReloadStats struct {
	Feed    string `json:"feed"`
	Entries int    `json:"entries"`
	Tags    int    `json:"tags"`
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type searchResponse struct {
	Items []Entry `json:"items"`
	Total int     `json:"total"`
}

type tagListResponse struct {
	Tags []string `json:"tags"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
