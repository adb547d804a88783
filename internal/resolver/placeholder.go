package resolver

import "net/url"

const placeholderBase = "https://placehold.co/800x450?text="

// PlaceholderURL builds the deterministic fallback tile for a label no
// provider could illustrate. Same label, same URL, so placeholders cache
// and deduplicate like real images.
func PlaceholderURL(label string) string {
	return placeholderBase + url.QueryEscape(label)
}
