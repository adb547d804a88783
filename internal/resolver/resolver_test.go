package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"rankle/internal/config"
	"rankle/internal/imagecache"
	"rankle/internal/logging"
	"rankle/internal/session"
	"rankle/internal/topics"
)

// baseConfig returns a config with every provider disabled and no keys set.
func baseConfig() *config.Config {
	cfg := config.Default()
	cfg.Providers.EnableTVMaze = false
	cfg.Providers.EnableWikipedia = false
	cfg.Providers.EnableWikidata = false
	cfg.Providers.EnableITunes = false
	return &cfg
}

func newTestResolver(t *testing.T, cfg *config.Config) *Resolver {
	t.Helper()
	cache := imagecache.Open("", logging.NewNop())
	return New(cfg, cache, logging.NewNop())
}

func TestResolveMoviePosterOnly(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"page":1,"results":[
			{"id":78,"title":"Blade Runner","poster_path":"/poster.jpg","popularity":90}
		],"total_pages":1,"total_results":1}`))
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.TMDB.APIKey = "k"
	cfg.TMDB.BaseURL = server.URL
	resolver := newTestResolver(t, cfg)

	topic := topics.Topic{Name: "Sci-Fi Movies", Provider: topics.ProviderTMDB, MediaType: "movie"}
	img, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Blade Runner"}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(img.Main, "/w780/poster.jpg") {
		t.Errorf("Main = %q, want w780 poster", img.Main)
	}
	if img.Thumb != img.Main {
		t.Errorf("Thumb = %q, want the poster reused with no backdrop", img.Thumb)
	}

	// Second resolution is served from cache.
	before := calls.Load()
	again, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Blade Runner"}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if again != img {
		t.Errorf("cached resolve differs: %+v vs %+v", again, img)
	}
	if calls.Load() != before {
		t.Error("cached resolve hit the network")
	}
}

func TestResolveBelowThresholdFallsToPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[
			{"id":1,"title":"Completely Unrelated Production","poster_path":"/p.jpg"}
		],"total_pages":1,"total_results":1}`))
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.TMDB.APIKey = "k"
	cfg.TMDB.BaseURL = server.URL
	resolver := newTestResolver(t, cfg)

	topic := topics.Topic{Name: "Sci-Fi Movies", Provider: topics.ProviderTMDB, MediaType: "movie"}
	img, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Alien"}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if img.Main != PlaceholderURL("Alien") {
		t.Errorf("Main = %q, want placeholder for unmatched short query", img.Main)
	}
}

func TestResolveOverridePrecedence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("override resolution must not touch the network")
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.TMDB.APIKey = "k"
	cfg.TMDB.BaseURL = server.URL
	cache := imagecache.Open("", logging.NewNop())
	resolver := New(cfg, cache, logging.NewNop())

	topic := topics.Topic{Name: "Sci-Fi Movies", Provider: topics.ProviderTMDB, MediaType: "movie"}
	item := topics.Item{Label: "Blade Runner", ImageURL: "https://curated.example.com/br.jpg"}
	img, err := resolver.Resolve(context.Background(), topic, item, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if img.Main != item.ImageURL || img.Thumb != item.ImageURL {
		t.Errorf("override not returned verbatim: %+v", img)
	}
	if cache.Len() != 0 {
		t.Error("override resolution must not write the cache")
	}
}

func TestResolvePlaceWithLeadImage(t *testing.T) {
	wikipedia := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"title": "Paris", "description": "Capital city of France",
			"extract": "Paris is the capital of France.", "type": "standard",
			"thumbnail": {"source": "https://upload.example.com/thumb.jpg"},
			"originalimage": {"source": "https://upload.example.com/lead.jpg"}
		}`))
	}))
	defer wikipedia.Close()

	wikidata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"entities": {"Q90": {"id": "Q90", "claims": {
			"P31": [{"mainsnak": {"datavalue": {"value": {"id": "Q515"}}}}]
		}}}}`))
	}))
	defer wikidata.Close()

	cfg := baseConfig()
	cfg.Providers.EnableWikipedia = true
	cfg.Providers.EnableWikidata = true
	cfg.Providers.WikipediaBaseURL = wikipedia.URL
	cfg.Providers.WikidataBaseURL = wikidata.URL
	resolver := newTestResolver(t, cfg)

	topic := topics.Topic{Name: "Travel Destinations", Provider: topics.ProviderWiki}
	img, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Paris"}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if img.Main != "https://upload.example.com/lead.jpg" {
		t.Errorf("Main = %q, want wikipedia lead image", img.Main)
	}
	if img.Thumb != "https://upload.example.com/thumb.jpg" {
		t.Errorf("Thumb = %q", img.Thumb)
	}
}

func TestResolveNoProvidersYieldsPlaceholder(t *testing.T) {
	resolver := newTestResolver(t, baseConfig())

	topic := topics.Topic{Name: "Anything Goes"}
	img, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Obscure Label"}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if img.Main != "https://placehold.co/800x450?text=Obscure+Label" {
		t.Errorf("Main = %q, want placeholder embedding label", img.Main)
	}
	if img.Thumb != img.Main {
		t.Error("placeholder thumb should match main")
	}
}

func TestResolveAvoidsDuplicates(t *testing.T) {
	wikipedia := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		image := "https://upload.example.com/shared.jpg"
		if strings.Contains(strings.ToLower(r.URL.Path), "puzzles") {
			image = "https://upload.example.com/alternate.jpg"
		}
		w.Write([]byte(`{"title": "Page", "type": "standard",
			"originalimage": {"source": "` + image + `"},
			"thumbnail": {"source": "` + image + `"}}`))
	}))
	defer wikipedia.Close()

	cfg := baseConfig()
	cfg.Providers.EnableWikipedia = true
	cfg.Providers.WikipediaBaseURL = wikipedia.URL
	resolver := newTestResolver(t, cfg)

	sess := session.New()
	topic := topics.Topic{Name: "Puzzles"}

	first, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Sudoku"}, sess)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if first.Main != "https://upload.example.com/shared.jpg" {
		t.Fatalf("Main = %q", first.Main)
	}

	second, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Crossword"}, sess)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if second.Main != "https://upload.example.com/alternate.jpg" {
		t.Errorf("Main = %q, want the variant-query image", second.Main)
	}
}

func TestResolveAcceptsDuplicateAsLastResort(t *testing.T) {
	wikipedia := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "Page", "type": "standard",
			"originalimage": {"source": "https://upload.example.com/only.jpg"}}`))
	}))
	defer wikipedia.Close()

	cfg := baseConfig()
	cfg.Providers.EnableWikipedia = true
	cfg.Providers.WikipediaBaseURL = wikipedia.URL
	resolver := newTestResolver(t, cfg)

	sess := session.New()
	topic := topics.Topic{Name: "Puzzles"}

	if _, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Sudoku"}, sess); err != nil {
		t.Fatal(err)
	}
	second, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Crossword"}, sess)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if second.Main != "https://upload.example.com/only.jpg" {
		t.Errorf("Main = %q, duplicate should be accepted when variants collide", second.Main)
	}
}

func TestResolveStockWaitsForCategoryProviders(t *testing.T) {
	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		w.Write([]byte(`{"page":1,"results":[
			{"id":603,"title":"The Matrix","poster_path":"/matrix.jpg","backdrop_path":"/city.jpg","popularity":95}
		],"total_pages":1,"total_results":1}`))
	}))
	defer tmdbServer.Close()

	pixabay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits":[{"largeImageURL":"https://stock.example.com/circuit-board.jpg",
			"webformatURL":"https://stock.example.com/small.jpg"}]}`))
	}))
	defer pixabay.Close()

	cfg := baseConfig()
	cfg.TMDB.APIKey = "k"
	cfg.TMDB.BaseURL = tmdbServer.URL
	cfg.Pixabay.APIKey = "k"
	cfg.Pixabay.BaseURL = pixabay.URL
	resolver := newTestResolver(t, cfg)

	topic := topics.Topic{Name: "Sci-Fi Movies", Provider: topics.ProviderTMDB, MediaType: "movie"}
	img, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "The Matrix"}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(img.Main, "/w1280/city.jpg") {
		t.Errorf("Main = %q, want the slower movie backdrop over the instant stock photo", img.Main)
	}
}

func TestResolveStockAsLastResort(t *testing.T) {
	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[],"total_pages":1,"total_results":0}`))
	}))
	defer tmdbServer.Close()

	pixabay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits":[{"largeImageURL":"https://stock.example.com/reel.jpg",
			"webformatURL":"https://stock.example.com/reel-small.jpg"}]}`))
	}))
	defer pixabay.Close()

	cfg := baseConfig()
	cfg.TMDB.APIKey = "k"
	cfg.TMDB.BaseURL = tmdbServer.URL
	cfg.Pixabay.APIKey = "k"
	cfg.Pixabay.BaseURL = pixabay.URL
	resolver := newTestResolver(t, cfg)

	topic := topics.Topic{Name: "Sci-Fi Movies", Provider: topics.ProviderTMDB, MediaType: "movie"}
	img, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Obscure Short"}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if img.Main != "https://stock.example.com/reel.jpg" {
		t.Errorf("Main = %q, want the stock photo once the movie providers settle empty", img.Main)
	}
}

func TestResolvePersonPrefersFace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[
			{"id":31,"name":"Tom Hanks","profile_path":"/tom.jpg","popularity":80}
		],"total_pages":1,"total_results":1}`))
	}))
	defer server.Close()

	cfg := baseConfig()
	cfg.TMDB.APIKey = "k"
	cfg.TMDB.BaseURL = server.URL
	resolver := newTestResolver(t, cfg)

	topic := topics.Topic{Name: "Famous Actors", Provider: topics.ProviderTMDB, MediaType: "person"}
	img, err := resolver.Resolve(context.Background(), topic, topics.Item{Label: "Tom Hanks"}, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !img.PrefersFace {
		t.Error("person resolution should prefer face cropping")
	}
	if !strings.Contains(img.Main, "/h632/tom.jpg") {
		t.Errorf("Main = %q, want h632 profile", img.Main)
	}
}

func TestResolveCancelledContext(t *testing.T) {
	cfg := baseConfig()
	cfg.Providers.EnableWikipedia = true
	cfg.Providers.WikipediaBaseURL = "http://127.0.0.1:0"
	resolver := newTestResolver(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := resolver.Resolve(ctx, topics.Topic{Name: "Puzzles"}, topics.Item{Label: "Sudoku"}, nil)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
