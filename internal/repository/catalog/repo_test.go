package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wordgrove/lexdex/internal/db"
	"github.com/wordgrove/lexdex/internal/domain"
	domcat "github.com/wordgrove/lexdex/internal/domain/catalog"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setFn        func(ctx context.Context, key string, value []byte) error
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func testDoc(t *testing.T) domcat.Document {
	t.Helper()
	doc, err := domcat.ParseDocument([]byte(`{"Animals": {"Cat": {"definition": "a cat", "class": "Normal", "type": "Neutral", "tags": ["pet"]}}}`))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

func TestSave_UsesPrefixedKey(t *testing.T) {
	var gotKey string
	ms := &mockStore{
		setFn: func(_ context.Context, key string, _ []byte) error {
			gotKey = key
			return nil
		},
	}
	repo := New(ms, "lexdex:")

	if err := repo.Save(context.Background(), testDoc(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "lexdex:catalog:raw" {
		t.Errorf("unexpected key: %q", gotKey)
	}
}

func TestSave_WithTTL(t *testing.T) {
	var gotTTL time.Duration
	ms := &mockStore{
		setWithTTLFn: func(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
			gotTTL = ttl
			return nil
		},
		setFn: func(_ context.Context, _ string, _ []byte) error {
			t.Error("expected SetWithTTL, not Set")
			return nil
		},
	}
	repo := New(ms, "lexdex:").WithTTL(48 * time.Hour)

	if err := repo.Save(context.Background(), testDoc(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTTL != 48*time.Hour {
		t.Errorf("unexpected ttl: %v", gotTTL)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	var stored []byte
	ms := &mockStore{
		setFn: func(_ context.Context, _ string, value []byte) error {
			stored = value
			return nil
		},
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return stored, nil
		},
	}
	repo := New(ms, "lexdex:")

	if err := repo.Save(context.Background(), testDoc(t)); err != nil {
		t.Fatalf("save: %v", err)
	}

	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.TermCount() != 1 {
		t.Errorf("expected 1 term, got %d", doc.TermCount())
	}
	rec := doc["Animals"]["Cat"]
	if rec.Definition != "a cat" || len(rec.Tags) != 1 {
		t.Errorf("unexpected record after round trip: %+v", rec)
	}
}

func TestLoad_Miss(t *testing.T) {
	repo := New(&mockStore{}, "lexdex:")

	_, err := repo.Load(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoad_StoreError(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, &db.Error{Op: db.OpGet, Err: errors.New("connection reset")}
		},
	}
	repo := New(ms, "lexdex:")

	_, err := repo.Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Error("a transport error must not read as a cache miss")
	}
}

func TestLoad_CorruptPayload(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte("not json"), nil
		},
	}
	repo := New(ms, "lexdex:")

	_, err := repo.Load(context.Background())
	if !errors.Is(err, domain.ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument, got %v", err)
	}
}
