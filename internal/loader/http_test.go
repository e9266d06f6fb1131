package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wordgrove/lexdex/internal/domain"
)

func TestHTTPLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"Animals": {"Dog": {"definition": "a dog", "class": "Big", "type": "Positive", "tags": ["pet"]}}}`))
	}))
	defer srv.Close()

	l := NewHTTP(srv.URL, "", 5*time.Second)

	doc, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.TermCount() != 1 {
		t.Errorf("expected 1 term, got %d", doc.TermCount())
	}
}

func TestHTTPLoad_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	l := NewHTTP(srv.URL, "secret-token", 5*time.Second)

	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("unexpected authorization header: %q", gotAuth)
	}
}

func TestHTTPLoad_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	l := NewHTTP(srv.URL, "", 5*time.Second)

	_, err := l.Load(context.Background())
	if !errors.Is(err, domain.ErrLoadFailure) {
		t.Errorf("expected ErrLoadFailure, got %v", err)
	}
}

func TestHTTPLoad_UnparsableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	l := NewHTTP(srv.URL, "", 5*time.Second)

	_, err := l.Load(context.Background())
	if !errors.Is(err, domain.ErrMalformedDocument) {
		t.Errorf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestHTTPLoad_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	l := NewHTTP(srv.URL, "", time.Second)

	_, err := l.Load(context.Background())
	if !errors.Is(err, domain.ErrLoadFailure) {
		t.Errorf("expected ErrLoadFailure, got %v", err)
	}
}

func TestHTTPLoad_NullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	l := NewHTTP(srv.URL, "", 5*time.Second)

	doc, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a non-nil empty document")
	}
}

func TestHTTPCheck(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer srv.Close()

	l := NewHTTP(srv.URL, "", 5*time.Second)

	if err := l.Check(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodHead {
		t.Errorf("expected HEAD, got %s", gotMethod)
	}
}

func TestHTTPCheck_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := NewHTTP(srv.URL, "", 5*time.Second)

	if err := l.Check(context.Background()); err == nil {
		t.Error("expected error for HTTP 500")
	}
}
