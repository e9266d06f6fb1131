package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wordgrove/lexdex/internal/domain/catalog"
	domquery "github.com/wordgrove/lexdex/internal/domain/query"
	healthuc "github.com/wordgrove/lexdex/internal/usecase/health"
	indexuc "github.com/wordgrove/lexdex/internal/usecase/index"
	queryuc "github.com/wordgrove/lexdex/internal/usecase/query"
)

// Server exposes the catalog over HTTP.
type Server struct {
	index   *indexuc.Service
	queries *queryuc.Service
	health  *healthuc.Service
	logger  *zap.Logger

	defaultPageSize int
	maxPageSize     int
}

// NewServer creates an HTTP API server.
func NewServer(
	index *indexuc.Service,
	queries *queryuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		index:           index,
		queries:         queries,
		health:          health,
		logger:          logger,
		defaultPageSize: 20,
		maxPageSize:     100,
	}
}

// WithPagination overrides listing page size limits.
func (s *Server) WithPagination(defaultPageSize, maxPageSize int) *Server {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Routes mounts all API handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/entries", s.ListEntries)
	r.Get("/api/v1/search", s.SearchEntries)
	r.Get("/api/v1/tags", s.ListTags)
	r.Get("/api/v1/facets", s.GetFacets)
	r.Post("/api/v1/reload", s.ReloadCatalog)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// filterParams are the query-string filter axes shared by listing and search.
type filterParams struct {
	Q     *string
	Class *string
	Type  *string
	Tag   *string
}

func bindFilterParams(r *http.Request) (filterParams, error) {
	var p filterParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", q, &p.Q); err != nil {
		return p, fmt.Errorf("parameter q: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "class", q, &p.Class); err != nil {
		return p, fmt.Errorf("parameter class: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "type", q, &p.Type); err != nil {
		return p, fmt.Errorf("parameter type: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "tag", q, &p.Tag); err != nil {
		return p, fmt.Errorf("parameter tag: %w", err)
	}
	return p, nil
}

func (p filterParams) spec() domquery.Spec {
	return domquery.New(deref(p.Q), deref(p.Class), deref(p.Type), deref(p.Tag))
}

// SearchEntries handles GET /api/v1/search.
func (s *Server) SearchEntries(w http.ResponseWriter, r *http.Request) {
	params, err := bindFilterParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	matched := s.queries.Search(params.spec())

	writeJSON(w, http.StatusOK, SearchResponse{
		Items: entriesToResponse(matched),
		Total: len(matched),
	})
}

// ListEntries handles GET /api/v1/entries. The same filter axes as search
// apply; the result is cursor-paginated.
func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	params, err := bindFilterParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	var cursor *string
	if err := runtime.BindQueryParameter("form", true, false, "cursor", q, &cursor); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "parameter cursor: "+err.Error())
		return
	}
	var limitPtr *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limitPtr); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "parameter limit: "+err.Error())
		return
	}

	limit := s.defaultPageSize
	if limitPtr != nil {
		limit = *limitPtr
	}
	if limit <= 0 || limit > s.maxPageSize {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			fmt.Sprintf("limit must be between 1 and %d", s.maxPageSize))
		return
	}

	matched := s.queries.Search(params.spec())
	items := entriesToResponse(matched)

	writeJSON(w, http.StatusOK, paginateEntries(items, cursor, limit))
}

func paginateEntries(items []EntryResponse, cursor *string, limit int) EntryCursorListResponse {
	startIdx := 0
	if cursor != nil && *cursor != "" {
		for i, item := range items {
			if entryCursor(item) == *cursor {
				startIdx = i + 1
				break
			}
		}
	}

	end := startIdx + limit
	if end > len(items) {
		end = len(items)
	}

	page := items[startIdx:end]
	hasMore := end < len(items)

	resp := EntryCursorListResponse{
		Items:   page,
		HasMore: hasMore,
	}
	if hasMore && len(page) > 0 {
		c := entryCursor(page[len(page)-1])
		resp.NextCursor = &c
	}
	return resp
}

// entryCursor derives an opaque position marker. Terms are unique within
// a category, so the pair identifies an entry.
func entryCursor(item EntryResponse) string {
	return item.Category + "/" + item.Term
}

// ListTags handles GET /api/v1/tags.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TagListResponse{Tags: s.index.Tags()})
}

// GetFacets handles GET /api/v1/facets.
func (s *Server) GetFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FacetsResponse{
		Tags:    s.index.Tags(),
		Classes: s.index.Classes(),
		Types:   s.index.Types(),
	})
}

// ReloadCatalog handles POST /api/v1/reload. Reloads never fail: a
// broken source degrades through the cache to an empty catalog.
func (s *Server) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	snap, feed := s.index.Reload(r.Context())

	writeJSON(w, http.StatusOK, ReloadResponse{
		Feed:    string(feed),
		Entries: snap.Len(),
		Tags:    len(snap.Tags()),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func entriesToResponse(entries []catalog.Entry) []EntryResponse {
	items := make([]EntryResponse, len(entries))
	for i, e := range entries {
		items[i] = EntryResponse{
			Term:       e.Term(),
			Category:   e.Category(),
			Definition: e.Definition(),
			Class:      e.Class(),
			Type:       e.Type(),
			Tags:       e.Tags(),
		}
	}
	return items
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}
