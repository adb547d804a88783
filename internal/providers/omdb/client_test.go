package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchByTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("t"); got != "Heat" {
			t.Errorf("t = %q", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "k" {
			t.Errorf("apikey = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Title": "Heat", "Year": "1995", "Type": "movie",
			"Poster": "https://img.example.com/heat.jpg", "Response": "True"}`))
	}))
	defer server.Close()

	client, err := New("k", server.URL)
	if err != nil {
		t.Fatal(err)
	}
	title, err := client.FetchByTitle(context.Background(), "Heat")
	if err != nil {
		t.Fatalf("FetchByTitle() error = %v", err)
	}
	if !title.HasPoster() {
		t.Fatal("HasPoster() = false")
	}
}

func TestFetchByTitleMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	}))
	defer server.Close()

	client, err := New("k", server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.FetchByTitle(context.Background(), "Zzzz"); err == nil {
		t.Fatal("expected error for Response=False body")
	}
}

func TestHasPosterNA(t *testing.T) {
	if (Title{Poster: "N/A"}).HasPoster() {
		t.Fatal(`HasPoster() should reject "N/A"`)
	}
	if (Title{}).HasPoster() {
		t.Fatal("HasPoster() should reject empty")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", "http://example.com"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
