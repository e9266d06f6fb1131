package query

import (
	"github.com/wordgrove/lexdex/internal/domain/catalog"
	domquery "github.com/wordgrove/lexdex/internal/domain/query"
	"github.com/wordgrove/lexdex/internal/metrics"
)

// Service evaluates filter specifications over catalog entries. Filtering
// is pure and only reads shared state, so it is safe for concurrent
// callers; a concurrent reload simply leaves them on the previous
// snapshot.
type Service struct {
	index SnapshotReader
}

// New creates a query service.
func New(index SnapshotReader) *Service {
	return &Service{index: index}
}

// Filter returns the entries matching the spec, preserving the relative
// order of the input. Returns an empty slice, never nil.
func (s *Service) Filter(entries []catalog.Entry, spec domquery.Spec) []catalog.Entry {
	metrics.FilterOperationsTotal.Inc()

	matched := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if spec.Matches(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Search filters the current snapshot's entries.
func (s *Service) Search(spec domquery.Spec) []catalog.Entry {
	return s.Filter(s.index.Snapshot().Entries(), spec)
}
