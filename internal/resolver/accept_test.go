package resolver

import (
	"testing"

	"rankle/internal/classify"
)

func TestAcceptGate(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		cat       classify.Category
		topic     string
		label     string
		want      bool
	}{
		{
			name:      "empty url rejected",
			candidate: Candidate{TypeOK: true},
			cat:       classify.Movie,
			topic:     "Sci-Fi Movies",
			label:     "Alien",
			want:      false,
		},
		{
			name:      "animal url rejected for food",
			candidate: Candidate{URL: "https://img.example.com/cheetah-cat.jpg", Title: "Cheese", Desc: "dairy food", TypeOK: true},
			cat:       classify.Food,
			topic:     "Favorite Foods",
			label:     "Cheese",
			want:      false,
		},
		{
			name:      "animal token must be whole word",
			candidate: Candidate{URL: "https://img.example.com/catalog/alien.jpg", Title: "Alien", TypeOK: true},
			cat:       classify.Movie,
			topic:     "Sci-Fi Movies",
			label:     "Alien",
			want:      true,
		},
		{
			name:      "vehicle url rejected for brand",
			candidate: Candidate{URL: "https://img.example.com/sports-car.jpg", TypeOK: true},
			cat:       classify.Brand,
			topic:     "Shoe Brands",
			label:     "Nike",
			want:      false,
		},
		{
			name:      "food needs subtype and label overlap",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Cheese", Desc: "a dairy food", TypeOK: true},
			cat:       classify.Food,
			topic:     "Favorite Foods",
			label:     "Cheese",
			want:      true,
		},
		{
			name:      "food without type confirmation rejected",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Cheese", Desc: "a dairy food", TypeOK: false},
			cat:       classify.Food,
			topic:     "Favorite Foods",
			label:     "Cheese",
			want:      false,
		},
		{
			name:      "food with unrelated title rejected",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Winterthur", Desc: "a dish", TypeOK: true},
			cat:       classify.Food,
			topic:     "Favorite Foods",
			label:     "Mushrooms",
			want:      false,
		},
		{
			name:      "burger topic requires burger in text",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Cheddar cheese", Desc: "a semi-hard cheese dish", TypeOK: true},
			cat:       classify.Food,
			topic:     "Best Burgers",
			label:     "Extra cheese",
			want:      false,
		},
		{
			name:      "burger topic accepts burger candidate",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Cheese burger", Desc: "a burger topped with cheese", TypeOK: true},
			cat:       classify.Food,
			topic:     "Best Burgers",
			label:     "Cheese burger",
			want:      true,
		},
		{
			name:      "tea topic requires tea in text",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Mint", Desc: "an aromatic herb used in food", TypeOK: true},
			cat:       classify.Food,
			topic:     "Tea Flavors",
			label:     "Mint",
			want:      false,
		},
		{
			name:      "place needs type confirmation",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Paris"},
			cat:       classify.Place,
			topic:     "Travel Destinations",
			label:     "Paris",
			want:      false,
		},
		{
			name:      "typed place accepted",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Paris", TypeOK: true},
			cat:       classify.Place,
			topic:     "Travel Destinations",
			label:     "Paris",
			want:      true,
		},
		{
			name:      "device needs device word and brand token",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Apple Watch", Desc: "smartwatch by Apple"},
			cat:       classify.Device,
			topic:     "Wearables",
			label:     "Apple Watch",
			want:      true,
		},
		{
			name:      "device with unrelated title rejected",
			candidate: Candidate{URL: "https://img.example.com/x.jpg", Title: "Fitbit", Desc: "smartwatch"},
			cat:       classify.Device,
			topic:     "Wearables",
			label:     "Apple Watch",
			want:      false,
		},
		{
			name:      "movie accepted on url alone",
			candidate: Candidate{URL: "https://img.example.com/poster.jpg"},
			cat:       classify.Movie,
			topic:     "Sci-Fi Movies",
			label:     "Alien",
			want:      true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := accept(tt.candidate, tt.cat, tt.topic, tt.label); got != tt.want {
				t.Errorf("accept() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaceholderURL(t *testing.T) {
	got := PlaceholderURL("Boy Bands & Co")
	want := "https://placehold.co/800x450?text=Boy+Bands+%26+Co"
	if got != want {
		t.Errorf("PlaceholderURL() = %q, want %q", got, want)
	}
	if PlaceholderURL("x") != PlaceholderURL("x") {
		t.Error("placeholder not deterministic")
	}
}
