package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New("", "http://example.com", "http://img.example.com", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := New("key", "", "http://img.example.com", ""); err == nil {
		t.Fatal("expected error for missing base url")
	}
	if _, err := New("key", "http://example.com", "", ""); err == nil {
		t.Fatal("expected error for missing image base url")
	}
}

func TestSearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Blade Runner" {
			t.Errorf("query = %q, want %q", got, "Blade Runner")
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want %q", got, "test-key")
		}
		if got := r.URL.Query().Get("include_adult"); got != "false" {
			t.Errorf("include_adult = %q, want false", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 78, "title": "Blade Runner", "release_date": "1982-06-25",
				 "poster_path": "/poster.jpg", "backdrop_path": "/backdrop.jpg", "popularity": 90.5}
			],
			"total_pages": 1,
			"total_results": 1
		}`))
	}))
	defer server.Close()

	client, err := New("test-key", server.URL, "http://img.example.com", "en-US")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	resp, err := client.SearchMovie(context.Background(), "Blade Runner")
	if err != nil {
		t.Fatalf("SearchMovie() error = %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	if resp.Results[0].DisplayName() != "Blade Runner" {
		t.Errorf("DisplayName() = %q", resp.Results[0].DisplayName())
	}
}

func TestSearchPersonUsesName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/person" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[{"id":2,"name":"Tom Hanks","profile_path":"/tom.jpg"}],"total_pages":1,"total_results":1}`))
	}))
	defer server.Close()

	client, err := New("test-key", server.URL, "http://img.example.com", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	resp, err := client.SearchPerson(context.Background(), "Tom Hanks")
	if err != nil {
		t.Fatalf("SearchPerson() error = %v", err)
	}
	if resp.Results[0].DisplayName() != "Tom Hanks" {
		t.Errorf("DisplayName() = %q", resp.Results[0].DisplayName())
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client, err := New("key", "http://example.com", "http://img.example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.SearchTV(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := New("bad-key", server.URL, "http://img.example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.SearchMovie(context.Background(), "Alien"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestArtworkSelection(t *testing.T) {
	client, err := New("key", "http://example.com", "https://image.tmdb.org/t/p", "")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		result    Result
		wantMain  string
		wantThumb string
	}{
		{
			name:      "backdrop and poster",
			result:    Result{BackdropPath: "/b.jpg", PosterPath: "/p.jpg"},
			wantMain:  "https://image.tmdb.org/t/p/w1280/b.jpg",
			wantThumb: "https://image.tmdb.org/t/p/w500/p.jpg",
		},
		{
			name:      "poster only serves both roles",
			result:    Result{PosterPath: "/p.jpg"},
			wantMain:  "https://image.tmdb.org/t/p/w780/p.jpg",
			wantThumb: "https://image.tmdb.org/t/p/w780/p.jpg",
		},
		{
			name:      "backdrop only",
			result:    Result{BackdropPath: "/b.jpg"},
			wantMain:  "https://image.tmdb.org/t/p/w1280/b.jpg",
			wantThumb: "https://image.tmdb.org/t/p/w780/b.jpg",
		},
		{
			name:   "no artwork",
			result: Result{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main, thumb := client.ArtworkFor(tt.result)
			if main != tt.wantMain {
				t.Errorf("main = %q, want %q", main, tt.wantMain)
			}
			if thumb != tt.wantThumb {
				t.Errorf("thumb = %q, want %q", thumb, tt.wantThumb)
			}
		})
	}
}

func TestProfileFor(t *testing.T) {
	client, err := New("key", "http://example.com", "https://image.tmdb.org/t/p", "")
	if err != nil {
		t.Fatal(err)
	}
	main, thumb := client.ProfileFor(Result{ProfilePath: "/tom.jpg"})
	want := "https://image.tmdb.org/t/p/h632/tom.jpg"
	if main != want || thumb != want {
		t.Errorf("ProfileFor() = (%q, %q), want both %q", main, thumb, want)
	}
	if main, _ := client.ProfileFor(Result{}); main != "" {
		t.Errorf("ProfileFor(empty) = %q, want empty", main)
	}
}
