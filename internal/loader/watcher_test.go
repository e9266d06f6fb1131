package loader

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWatcher_FiresOnWrite(t *testing.T) {
	path := writeSourceFile(t, `{}`)

	var fired atomic.Int32
	w, err := NewWatcher(path, 50*time.Millisecond, func() { fired.Add(1) }, zap.NewNop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watch loop a moment to start before touching the file.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte(`{"A": {}}`), 0o600); err != nil {
		t.Fatalf("rewrite source file: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if fired.Load() == 0 {
		t.Fatal("expected the change callback to fire")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words-database.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("write source file: %v", err)
	}

	var fired atomic.Int32
	w, err := NewWatcher(path, 50*time.Millisecond, func() { fired.Add(1) }, zap.NewNop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatalf("write sibling file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if fired.Load() != 0 {
		t.Errorf("expected no callback for sibling file changes, got %d", fired.Load())
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	path := writeSourceFile(t, `{}`)

	var fired atomic.Int32
	w, err := NewWatcher(path, 200*time.Millisecond, func() { fired.Add(1) }, zap.NewNop())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
			t.Fatalf("rewrite source file: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	deadline := time.Now().Add(3 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if got := fired.Load(); got != 1 {
		t.Errorf("expected a single debounced callback, got %d", got)
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent", "db.json"), 0, func() {}, zap.NewNop())
	if err == nil {
		t.Error("expected error for a missing watch directory")
	}
}
