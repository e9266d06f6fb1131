// Package lexdex embeds the catalog engine in-process: load a term
// catalog from a document, file, or HTTP endpoint and filter it without
// running the API server.
package lexdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/wordgrove/lexdex/internal/db/redis"
	"github.com/wordgrove/lexdex/internal/domain/catalog"
	domquery "github.com/wordgrove/lexdex/internal/domain/query"
	"github.com/wordgrove/lexdex/internal/loader"
	catalogrepo "github.com/wordgrove/lexdex/internal/repository/catalog"
	indexuc "github.com/wordgrove/lexdex/internal/usecase/index"
	queryuc "github.com/wordgrove/lexdex/internal/usecase/query"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "lexdex:"
)

// Record describes a single term.
type Record struct {
	Definition string
	Class      string
	Type       string
	Tags       []string
}

// Document is a nested category -> term -> record catalog.
type Document map[string]map[string]Record

// Entry is a flattened catalog entry.
type Entry struct {
	Term       string
	Category   string
	Definition string
	Class      string
	Type       string
	Tags       []string
}

// FilterSpec selects entries. Empty or "all" axis values match
// everything; Search matches term or definition case-insensitively.
type FilterSpec struct {
	Search string
	Class  string
	Type   string
	Tag    string
}

// ReloadStats describes the snapshot produced by a reload.
type ReloadStats struct {
	Feed    string
	Entries int
	Tags    int
}

// Client is the lexdex embedded entry point.
type Client struct {
	store   *dbRedis.Store
	index   *indexuc.Service
	queries *queryuc.Service
}

// New creates a Client and builds the initial catalog. Exactly one
// source option (WithDocument, WithFileSource, WithHTTPSource) is
// required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o(cfg)
	}

	ld, err := buildLoader(cfg)
	if err != nil {
		return nil, err
	}

	var store *dbRedis.Store
	var cache indexuc.DocumentCache
	if len(cfg.addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("lexdex: create redis store: %w", err)
		}
		if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("lexdex: database not ready: %w", err)
		}
		repo := catalogrepo.New(store, defaultKeyPrefix)
		if cfg.cacheTTL > 0 {
			repo = repo.WithTTL(cfg.cacheTTL)
		}
		cache = repo
	}

	index := indexuc.New(ld, cache, cfg.logger)
	if cfg.doc != nil {
		index.Rebuild(toInternalDocument(cfg.doc))
	} else {
		index.Reload(context.Background())
	}

	return &Client{
		store:   store,
		index:   index,
		queries: queryuc.New(index),
	}, nil
}

func buildLoader(cfg *clientConfig) (indexuc.Loader, error) {
	sources := 0
	if cfg.doc != nil {
		sources++
	}
	if cfg.filePath != "" {
		sources++
	}
	if cfg.httpURL != "" {
		sources++
	}
	if sources != 1 {
		return nil, errors.New(
			"lexdex: exactly one source required (WithDocument, WithFileSource, or WithHTTPSource)",
		)
	}

	switch {
	case cfg.doc != nil:
		return &staticLoader{doc: toInternalDocument(cfg.doc)}, nil
	case cfg.filePath != "":
		return loader.NewFile(cfg.filePath), nil
	default:
		return loader.NewHTTP(cfg.httpURL, cfg.httpToken, cfg.httpTimeout), nil
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Reload rebuilds the catalog from the source. Never fails: a broken
// source degrades through the cache to an empty catalog.
func (c *Client) Reload(ctx context.Context) ReloadStats {
	snap, feed := c.index.Reload(ctx)
	return ReloadStats{
		Feed:    string(feed),
		Entries: snap.Len(),
		Tags:    len(snap.Tags()),
	}
}

// SetDocument replaces the catalog with a caller-supplied document.
func (c *Client) SetDocument(doc Document) {
	c.index.Rebuild(toInternalDocument(doc))
}

// Filter returns the entries matching the spec, in catalog order.
func (c *Client) Filter(spec FilterSpec) []Entry {
	matched := c.queries.Search(domquery.New(spec.Search, spec.Class, spec.Type, spec.Tag))
	return entriesFromInternal(matched)
}

// Entries returns all catalog entries sorted by category, then term.
func (c *Client) Entries() []Entry {
	return entriesFromInternal(c.index.Entries())
}

// Tags returns the sorted, deduplicated tag universe.
func (c *Client) Tags() []string {
	return c.index.Tags()
}

// Classes returns the sorted distinct classes.
func (c *Client) Classes() []string {
	return c.index.Classes()
}

// Types returns the sorted distinct types.
func (c *Client) Types() []string {
	return c.index.Types()
}

// staticLoader serves a fixed in-memory document.
type staticLoader struct {
	doc catalog.Document
}

func (l *staticLoader) Load(_ context.Context) (catalog.Document, error) {
	return l.doc, nil
}

func toInternalDocument(doc Document) catalog.Document {
	out := make(catalog.Document, len(doc))
	for category, terms := range doc {
		converted := make(map[string]catalog.Record, len(terms))
		for term, rec := range terms {
			converted[term] = catalog.Record{
				Definition: rec.Definition,
				Class:      rec.Class,
				Type:       rec.Type,
				Tags:       rec.Tags,
			}
		}
		out[category] = converted
	}
	return out
}

func entriesFromInternal(entries []catalog.Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{
			Term:       e.Term(),
			Category:   e.Category(),
			Definition: e.Definition(),
			Class:      e.Class(),
			Type:       e.Type(),
			Tags:       e.Tags(),
		}
	}
	return out
}
