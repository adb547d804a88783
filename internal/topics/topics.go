// Package topics defines the topic/item model and loads topic packs from
// TOML. A topic is a named group of five rankable items plus a provider hint
// telling the resolver where its images most likely live.
package topics

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed default_topics.toml
var defaultPack []byte

// Provider hint values. Static topics carry their own image URLs or rely on
// the classifier-driven pipeline.
const (
	ProviderTMDB   = "tmdb"
	ProviderWiki   = "wiki"
	ProviderStatic = "static"
)

// Item is one rankable entity within a topic. ImageURL, when set, is an
// unconditional override that bypasses resolution entirely.
type Item struct {
	Label    string `toml:"label"`
	ImageURL string `toml:"image_url"`
}

// Topic is a named category of items to be ranked.
type Topic struct {
	Name      string `toml:"name"`
	Provider  string `toml:"provider"`
	MediaType string `toml:"media_type"`
	Items     []Item `toml:"items"`
}

type pack struct {
	Topics []Topic `toml:"topics"`
}

// Load reads a topic pack from path. An empty path loads the built-in pack.
func Load(path string) ([]Topic, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topics file: %w", err)
	}
	return parse(data)
}

// Default returns the built-in topic pack.
func Default() ([]Topic, error) {
	return parse(defaultPack)
}

func parse(data []byte) ([]Topic, error) {
	var p pack
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse topics: %w", err)
	}
	for i := range p.Topics {
		if err := normalizeTopic(&p.Topics[i]); err != nil {
			return nil, fmt.Errorf("topic %d: %w", i+1, err)
		}
	}
	return p.Topics, nil
}

func normalizeTopic(t *Topic) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	t.Provider = strings.ToLower(strings.TrimSpace(t.Provider))
	switch t.Provider {
	case "":
		t.Provider = ProviderStatic
	case ProviderTMDB, ProviderWiki, ProviderStatic:
	default:
		return fmt.Errorf("unknown provider %q", t.Provider)
	}
	t.MediaType = strings.ToLower(strings.TrimSpace(t.MediaType))
	switch t.MediaType {
	case "", "movie", "tv", "person":
	default:
		return fmt.Errorf("unknown media_type %q", t.MediaType)
	}
	if len(t.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for i := range t.Items {
		t.Items[i].Label = strings.TrimSpace(t.Items[i].Label)
		if t.Items[i].Label == "" {
			return fmt.Errorf("item %d: label is required", i+1)
		}
	}
	return nil
}
