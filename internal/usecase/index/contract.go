package index

import (
	"context"

	"github.com/wordgrove/lexdex/internal/domain/catalog"
)

// Loader fetches the raw catalog document from its external source.
type Loader interface {
	Load(ctx context.Context) (catalog.Document, error)
}

// DocumentCache persists the last good raw document so a source outage
// degrades to the previous catalog instead of an empty one.
type DocumentCache interface {
	Save(ctx context.Context, doc catalog.Document) error
	Load(ctx context.Context) (catalog.Document, error)
}
