package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thangnd96/hybrid-app/structs"
)

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(structs.PostsResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.TokenSource = func() string { return "tok-123" }

	if _, err := client.FetchPosts(structs.PostFilters{}, 0, 10); err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Expected bearer token header, got %q", gotAuth)
	}
}

func TestNoTokenMeansNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(structs.PostsResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.TokenSource = func() string { return "" }

	if _, err := client.FetchPosts(structs.PostFilters{}, 0, 10); err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Expected no Authorization header, got %q", gotAuth)
	}
}

func TestSearchRoutingAndParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"q":      r.URL.Query().Get("q"),
			"sortBy": r.URL.Query().Get("sortBy"),
			"order":  r.URL.Query().Get("order"),
			"skip":   r.URL.Query().Get("skip"),
			"limit":  r.URL.Query().Get("limit"),
		}
		json.NewEncoder(w).Encode(structs.PostsResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	filter := structs.PostFilters{Q: "react", SortBy: "title", Order: structs.OrderAsc}
	if _, err := client.FetchPosts(filter, 20, 10); err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}

	if gotPath != "/posts/search" {
		t.Errorf("Expected search path for keyword filter, got %s", gotPath)
	}
	want := map[string]string{"q": "react", "sortBy": "title", "order": "asc", "skip": "20", "limit": "10"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("Expected %s=%s, got %s", k, v, gotQuery[k])
		}
	}
}

func TestPlainListRouting(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(structs.PostsResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchPosts(structs.PostFilters{SortBy: "views"}, 0, 10); err != nil {
		t.Fatalf("FetchPosts failed: %v", err)
	}
	if gotPath != "/posts" {
		t.Errorf("Expected /posts without keyword, got %s", gotPath)
	}
}

func TestMalformedResponseIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchPosts(structs.PostFilters{}, 0, 10)
	if err == nil {
		t.Fatal("Expected an error for a malformed body")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Expected a DecodeError, got %T: %v", err, err)
	}
}

func TestUnexpectedStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.FetchPosts(structs.PostFilters{}, 0, 10); err == nil {
		t.Error("Expected an error for a 500 response")
	}
}

func TestAddCommentPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comments/add" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Body   string `json:"body"`
			PostID int    `json:"postId"`
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(structs.Comment{ID: 301, Body: body.Body, PostID: body.PostID})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	created, err := client.AddComment("nice", 42, "user-1")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if created.ID != 301 || created.PostID != 42 || created.Body != "nice" {
		t.Errorf("Unexpected created comment %+v", created)
	}
}

func TestTrendingParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("sortBy") != "views" || q.Get("order") != "desc" || q.Get("limit") != "3" {
			t.Errorf("Unexpected trending query %v", q)
		}
		if q.Get("select") != "title,reactions,tags,views" {
			t.Errorf("Expected trimmed field selection, got %q", q.Get("select"))
		}
		json.NewEncoder(w).Encode(structs.PostsResponse{
			Posts: []structs.Post{{ID: 1}, {ID: 2}, {ID: 3}},
			Total: 250,
		})
	}))
	defer srv.Close()

	posts, err := NewClient(srv.URL).FetchTrendingPosts()
	if err != nil {
		t.Fatalf("FetchTrendingPosts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Errorf("Expected 3 trending posts, got %d", len(posts))
	}
}
