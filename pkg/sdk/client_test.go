package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestSearch_BuildsQueryAndDecodes(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(searchResponse{
			Items: []Entry{{Term: "Dog", Category: "Animals", Tags: []string{"pet"}}},
			Total: 1,
		})
	}))
	defer srv.Close()

	client := New(srv.URL)

	entries, err := client.Search(context.Background(), FilterSpec{Search: "dog", Tag: "pet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Term != "Dog" {
		t.Errorf("entries: got %+v", entries)
	}
	if gotQuery["q"][0] != "dog" || gotQuery["tag"][0] != "pet" {
		t.Errorf("query: got %v", gotQuery)
	}
	if _, ok := gotQuery["class"]; ok {
		t.Error("empty class axis must be omitted")
	}
}

func TestEntries_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cursor"); got != "Animals/Dog" {
			t.Errorf("cursor: got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("limit: got %q", got)
		}
		next := "Plants/Rose"
		_ = json.NewEncoder(w).Encode(EntryPage{
			Items:      []Entry{{Term: "Rose"}},
			NextCursor: &next,
			HasMore:    true,
		})
	}))
	defer srv.Close()

	client := New(srv.URL)

	page, err := client.Entries(context.Background(), "Animals/Dog", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !page.HasMore || page.NextCursor == nil || *page.NextCursor != "Plants/Rose" {
		t.Errorf("page: got %+v", page)
	}
}

func TestTagsAndFacets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/tags":
			_ = json.NewEncoder(w).Encode(tagListResponse{Tags: []string{"flower", "pet"}})
		case "/api/v1/facets":
			_ = json.NewEncoder(w).Encode(Facets{
				Tags:    []string{"flower", "pet"},
				Classes: []string{"Big"},
				Types:   []string{"Neutral"},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := New(srv.URL)

	tags, err := client.Tags(context.Background())
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if want := []string{"flower", "pet"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("tags: got %v, want %v", tags, want)
	}

	facets, err := client.Facets(context.Background())
	if err != nil {
		t.Fatalf("facets: %v", err)
	}
	if want := []string{"Big"}; !reflect.DeepEqual(facets.Classes, want) {
		t.Errorf("classes: got %v, want %v", facets.Classes, want)
	}
}

func TestReload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(ReloadStats{Feed: "source", Entries: 3, Tags: 5})
	}))
	defer srv.Close()

	client := New(srv.URL)

	stats, err := client.Reload(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Feed != "source" || stats.Entries != 3 {
		t.Errorf("stats: got %+v", stats)
	}
}

func TestHealth_DegradedIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthStatus{
			Status: "degraded",
			Checks: map[string]string{"database": "error"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != "degraded" {
		t.Errorf("status: got %q", status.Status)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Code: "validation_failed", Message: "limit too large"})
	}))
	defer srv.Close()

	client := New(srv.URL)

	_, err := client.Entries(context.Background(), "", 10000)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "validation_failed" {
		t.Errorf("api error: got %+v", apiErr)
	}
}

func TestSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(tagListResponse{})
	}))
	defer srv.Close()

	client := New(srv.URL, WithAPIKey("secret"))

	if _, err := client.Tags(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("authorization: got %q", gotAuth)
	}
}
