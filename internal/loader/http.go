package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wordgrove/lexdex/internal/domain"
	"github.com/wordgrove/lexdex/internal/domain/catalog"
)

const defaultHTTPTimeout = 30 * time.Second

// maxDocumentSize bounds the response body read (16MB).
const maxDocumentSize = 16 << 20

// HTTP loads the catalog document from a remote JSON endpoint.
type HTTP struct {
	url    string
	token  string
	client *http.Client
}

// NewHTTP creates an HTTP loader. token, when non-empty, is sent as a
// Bearer credential.
func NewHTTP(url, token string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTP{
		url:   url,
		token: token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Load fetches and parses the document.
func (l *HTTP) Load(ctx context.Context) (catalog.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %w", domain.ErrLoadFailure, err)
	}
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", domain.ErrLoadFailure, l.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: HTTP %d", domain.ErrLoadFailure, l.url, resp.StatusCode)
	}

	var doc catalog.Document
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentSize)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", domain.ErrLoadFailure, domain.ErrMalformedDocument, err)
	}
	if doc == nil {
		doc = catalog.EmptyDocument()
	}
	return doc, nil
}

// Check probes the endpoint with a HEAD request.
func (l *HTTP) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, l.url, http.NoBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("head %s: %w", l.url, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("head %s: HTTP %d", l.url, resp.StatusCode)
	}
	return nil
}
