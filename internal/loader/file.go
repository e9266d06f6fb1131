package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wordgrove/lexdex/internal/domain"
	"github.com/wordgrove/lexdex/internal/domain/catalog"
)

// File loads the catalog document from a local JSON file.
type File struct {
	path string
}

// NewFile creates a file loader.
func NewFile(path string) *File {
	return &File{path: filepath.Clean(path)}
}

// Path returns the source file path.
func (l *File) Path() string { return l.path }

// Load reads and parses the document.
func (l *File) Load(ctx context.Context) (catalog.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrLoadFailure, l.path, err)
	}

	doc, err := catalog.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
	}
	return doc, nil
}

// Check reports whether the source file is readable.
func (l *File) Check(_ context.Context) error {
	if _, err := os.Stat(l.path); err != nil {
		return fmt.Errorf("stat %s: %w", l.path, err)
	}
	return nil
}
