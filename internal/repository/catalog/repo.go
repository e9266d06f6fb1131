package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wordgrove/lexdex/internal/db"
	"github.com/wordgrove/lexdex/internal/domain"
	domcat "github.com/wordgrove/lexdex/internal/domain/catalog"
)

// store is the consumer interface for the document cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo persists the last good raw catalog document as a JSON blob.
type Repo struct {
	store store
	key   string
	ttl   time.Duration
}

// New creates a catalog document cache repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, key: keyPrefix + "catalog:raw"}
}

// WithTTL sets an expiration on cached documents. Zero means no expiry.
func (r *Repo) WithTTL(ttl time.Duration) *Repo {
	r.ttl = ttl
	return r
}

// Save stores the raw document.
func (r *Repo) Save(ctx context.Context, doc domcat.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if r.ttl > 0 {
		if err := r.store.SetWithTTL(ctx, r.key, data, r.ttl); err != nil {
			return fmt.Errorf("set %s: %w", r.key, err)
		}
		return nil
	}

	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}

// Load returns the cached raw document. Returns domain.ErrNotFound when
// no document has been cached yet.
func (r *Repo) Load(ctx context.Context) (domcat.Document, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}

	doc, err := domcat.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse cached document: %w", err)
	}
	return doc, nil
}
