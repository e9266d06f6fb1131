package chi

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeNotFound         ErrorResponseCode = "not_found"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the error envelope returned on all failure paths.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// EntryResponse is a single catalog entry.
type EntryResponse struct {
	Term       string   `json:"term"`
	Category   string   `json:"category"`
	Definition string   `json:"definition"`
	Class      string   `json:"class"`
	Type       string   `json:"type"`
	Tags       []string `json:"tags"`
}

// EntryCursorListResponse is a cursor-paginated entry listing.
type EntryCursorListResponse struct {
	Items      []EntryResponse `json:"items"`
	NextCursor *string         `json:"next_cursor,omitempty"`
	HasMore    bool            `json:"has_more"`
}

// SearchResponse holds filtered entries.
type SearchResponse struct {
	Items []EntryResponse `json:"items"`
	Total int             `json:"total"`
}

// TagListResponse holds the tag universe.
type TagListResponse struct {
	Tags []string `json:"tags"`
}

// FacetsResponse holds all filterable value universes.
type FacetsResponse struct {
	Tags    []string `json:"tags"`
	Classes []string `json:"classes"`
	Types   []string `json:"types"`
}

// ReloadResponse describes the snapshot produced by a reload.
type ReloadResponse struct {
	Feed    string `json:"feed"`
	Entries int    `json:"entries"`
	Tags    int    `json:"tags"`
}

// HealthResponse is the health check report.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
