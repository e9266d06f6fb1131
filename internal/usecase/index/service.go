package index

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wordgrove/lexdex/internal/domain/catalog"
	"github.com/wordgrove/lexdex/internal/metrics"
)

// Feed identifies which source fed a snapshot rebuild.
type Feed string

const (
	// FeedSource means the document came from the configured source.
	FeedSource Feed = "source"
	// FeedCache means the source failed and the cached document was used.
	FeedCache Feed = "cache"
	// FeedEmpty means both source and cache failed; the catalog is empty.
	FeedEmpty Feed = "empty"
	// FeedDirect means the document was supplied by the caller.
	FeedDirect Feed = "direct"
)

// Service owns the catalog index lifecycle: it ingests raw documents,
// derives snapshots, and serves accessor reads. A rebuild always
// replaces the snapshot wholesale; an in-flight read keeps operating on
// the previous one.
type Service struct {
	loader Loader
	cache  DocumentCache
	logger *zap.Logger
	snap   atomic.Pointer[catalog.Snapshot]
}

// New creates an index service holding an empty snapshot. cache can be nil.
func New(loader Loader, cache DocumentCache, logger *zap.Logger) *Service {
	s := &Service{loader: loader, cache: cache, logger: logger}
	s.snap.Store(catalog.BuildSnapshot(catalog.EmptyDocument()))
	return s
}

// Rebuild derives a new snapshot from a caller-supplied document and
// swaps it in. The previous snapshot stays valid for in-flight readers.
func (s *Service) Rebuild(doc catalog.Document) *catalog.Snapshot {
	return s.swap(doc, FeedDirect)
}

// Reload fetches the document from the source and rebuilds the snapshot.
// A source failure falls back to the cached document, then to the empty
// document; it never propagates into the filtering path.
func (s *Service) Reload(ctx context.Context) (*catalog.Snapshot, Feed) {
	doc, err := s.loader.Load(ctx)
	if err == nil {
		s.persist(ctx, doc)
		return s.swap(doc, FeedSource), FeedSource
	}

	s.logger.Warn("catalog source load failed", zap.Error(err))

	if s.cache != nil {
		cached, cacheErr := s.cache.Load(ctx)
		if cacheErr == nil {
			return s.swap(cached, FeedCache), FeedCache
		}
		s.logger.Warn("catalog cache load failed", zap.Error(cacheErr))
	}

	return s.swap(catalog.EmptyDocument(), FeedEmpty), FeedEmpty
}

// Snapshot returns the current snapshot. Never nil.
func (s *Service) Snapshot() *catalog.Snapshot {
	return s.snap.Load()
}

// Entries returns the last-built entry list.
func (s *Service) Entries() []catalog.Entry {
	return s.Snapshot().Entries()
}

// Tags returns the last-built tag universe.
func (s *Service) Tags() []string {
	return s.Snapshot().Tags()
}

// Classes returns the last-built distinct classes.
func (s *Service) Classes() []string {
	return s.Snapshot().Classes()
}

// Types returns the last-built distinct types.
func (s *Service) Types() []string {
	return s.Snapshot().Types()
}

func (s *Service) swap(doc catalog.Document, feed Feed) *catalog.Snapshot {
	snap := catalog.BuildSnapshot(doc)
	s.snap.Store(snap)

	metrics.ObserveRebuild(string(feed), snap.Len(), len(snap.Tags()))
	s.logger.Info("catalog snapshot rebuilt",
		zap.String("feed", string(feed)),
		zap.Int("entries", snap.Len()),
		zap.Int("tags", len(snap.Tags())),
	)
	return snap
}

// persist saves a freshly loaded document to the cache, best effort.
func (s *Service) persist(ctx context.Context, doc catalog.Document) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(ctx, doc); err != nil {
		s.logger.Warn("catalog cache save failed", zap.Error(err))
	}
}
