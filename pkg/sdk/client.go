package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// APIError is returned when the server responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lexdex api: %s (%s, HTTP %d)", e.Message, e.Code, e.StatusCode)
}

// Client talks to a lexdex API server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithAPIKey sends a Bearer token with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Search returns the entries matching the spec, in catalog order.
func (c *Client) Search(ctx context.Context, spec FilterSpec) ([]Entry, error) {
	q := url.Values{}
	if spec.Search != "" {
		q.Set("q", spec.Search)
	}
	if spec.Class != "" {
		q.Set("class", spec.Class)
	}
	if spec.Type != "" {
		q.Set("type", spec.Type)
	}
	if spec.Tag != "" {
		q.Set("tag", spec.Tag)
	}

	var resp searchResponse
	if err := c.get(ctx, "/api/v1/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Entries returns one page of the entry listing. cursor selects the
// page; empty means the first. limit 0 uses the server default.
func (c *Client) Entries(ctx context.Context, cursor string, limit int) (EntryPage, error) {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page EntryPage
	if err := c.get(ctx, "/api/v1/entries", q, &page); err != nil {
		return EntryPage{}, err
	}
	return page, nil
}

// Tags returns the sorted, deduplicated tag universe.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var resp tagListResponse
	if err := c.get(ctx, "/api/v1/tags", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// Facets returns all filterable value universes.
func (c *Client) Facets(ctx context.Context) (Facets, error) {
	var facets Facets
	if err := c.get(ctx, "/api/v1/facets", nil, &facets); err != nil {
		return Facets{}, err
	}
	return facets, nil
}

// Reload asks the server to rebuild the catalog from its source.
func (c *Client) Reload(ctx context.Context) (ReloadStats, error) {
	var stats ReloadStats
	if err := c.do(ctx, http.MethodPost, "/api/v1/reload", &stats); err != nil {
		return ReloadStats{}, err
	}
	return stats, nil
}

// Health checks the health of all server components. A degraded server
// still returns a status, not an error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health")
	if err != nil {
		return HealthStatus{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 503 carries a valid report body
	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health response: %w", err)
	}
	return status, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.do(ctx, http.MethodGet, path, out)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := c.newRequest(ctx, method, path)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFrom(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func apiErrorFrom(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
