package topics_test

import (
	"os"
	"path/filepath"
	"testing"

	"rankle/internal/topics"
)

func TestDefaultPackParses(t *testing.T) {
	pack, err := topics.Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if len(pack) == 0 {
		t.Fatal("default pack is empty")
	}
	for _, topic := range pack {
		if topic.Name == "" {
			t.Fatal("topic with empty name")
		}
		if len(topic.Items) != 5 {
			t.Errorf("topic %q has %d items, want 5", topic.Name, len(topic.Items))
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.toml")
	content := `
[[topics]]
name = "Test Topic"
provider = "tmdb"
media_type = "movie"
items = [{ label = "The Matrix" }, { label = "Arrival", image_url = "https://example.com/a.jpg" }]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write topics: %v", err)
	}

	pack, err := topics.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(pack) != 1 {
		t.Fatalf("got %d topics, want 1", len(pack))
	}
	if pack[0].Items[1].ImageURL != "https://example.com/a.jpg" {
		t.Fatalf("image_url not preserved: %#v", pack[0].Items[1])
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	pack, err := topics.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(pack) == 0 {
		t.Fatal("expected built-in pack")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.toml")
	content := `
[[topics]]
name = "Bad"
provider = "imgur"
items = [{ label = "X" }]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write topics: %v", err)
	}
	if _, err := topics.Load(path); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoadRejectsEmptyItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.toml")
	content := "[[topics]]\nname = \"Empty\"\nprovider = \"wiki\"\nitems = []\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write topics: %v", err)
	}
	if _, err := topics.Load(path); err == nil {
		t.Fatal("expected error for empty items")
	}
}
