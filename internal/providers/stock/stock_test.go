package stock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rankle/internal/logging"
)

func TestPixabaySearchPhoto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("key") != "k" {
			t.Errorf("key = %q", query.Get("key"))
		}
		if query.Get("q") != "sneakers product" {
			t.Errorf("q = %q", query.Get("q"))
		}
		w.Write([]byte(`{"hits": [
			{"webformatURL": "https://px.example.com/web.jpg", "largeImageURL": "https://px.example.com/large.jpg"}
		]}`))
	}))
	defer server.Close()

	client, err := NewPixabay("k", server.URL)
	if err != nil {
		t.Fatal(err)
	}
	photo, err := client.SearchPhoto(context.Background(), "sneakers product")
	if err != nil {
		t.Fatalf("SearchPhoto() error = %v", err)
	}
	if photo.Main != "https://px.example.com/large.jpg" {
		t.Errorf("Main = %q", photo.Main)
	}
	if photo.Thumb != "https://px.example.com/web.jpg" {
		t.Errorf("Thumb = %q", photo.Thumb)
	}
}

func TestUnsplashAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID access" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"results": [{"urls": {"regular": "https://un.example.com/r.jpg", "small": "https://un.example.com/s.jpg"}}]}`))
	}))
	defer server.Close()

	client, err := NewUnsplash("access", server.URL)
	if err != nil {
		t.Fatal(err)
	}
	photo, err := client.SearchPhoto(context.Background(), "mountains")
	if err != nil {
		t.Fatalf("SearchPhoto() error = %v", err)
	}
	if photo.Main != "https://un.example.com/r.jpg" {
		t.Errorf("Main = %q", photo.Main)
	}
}

func TestPexelsAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "pexels-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"photos": [{"src": {"large2x": "https://pe.example.com/2x.jpg", "medium": "https://pe.example.com/m.jpg"}}]}`))
	}))
	defer server.Close()

	client, err := NewPexels("pexels-key", server.URL)
	if err != nil {
		t.Fatal(err)
	}
	photo, err := client.SearchPhoto(context.Background(), "city")
	if err != nil {
		t.Fatalf("SearchPhoto() error = %v", err)
	}
	if photo.Main != "https://pe.example.com/2x.jpg" {
		t.Errorf("Main = %q", photo.Main)
	}
}

func TestChainFallsThrough(t *testing.T) {
	pixabay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": []}`))
	}))
	defer pixabay.Close()

	pexels := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos": [{"src": {"large": "https://pe.example.com/l.jpg"}}]}`))
	}))
	defer pexels.Close()

	pixabayClient, err := NewPixabay("k", pixabay.URL)
	if err != nil {
		t.Fatal(err)
	}
	pexelsClient, err := NewPexels("k", pexels.URL)
	if err != nil {
		t.Fatal(err)
	}

	chain := &Chain{Pixabay: pixabayClient, Pexels: pexelsClient, Logger: logging.NewNop()}
	photo, err := chain.SearchPhoto(context.Background(), "ramen")
	if err != nil {
		t.Fatalf("SearchPhoto() error = %v", err)
	}
	if photo.Main != "https://pe.example.com/l.jpg" {
		t.Errorf("Main = %q", photo.Main)
	}
}

func TestChainNoSources(t *testing.T) {
	chain := &Chain{Logger: logging.NewNop()}
	if _, err := chain.SearchPhoto(context.Background(), "anything"); err == nil {
		t.Fatal("expected error with no configured sources")
	}
}
