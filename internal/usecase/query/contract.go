package query

import "github.com/wordgrove/lexdex/internal/domain/catalog"

// SnapshotReader reads the current catalog snapshot.
type SnapshotReader interface {
	Snapshot() *catalog.Snapshot
}
