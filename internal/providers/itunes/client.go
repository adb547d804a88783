// Package itunes provides a client for the keyless iTunes Search API, used
// for artist and album artwork.
package itunes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result is a single iTunes search hit.
type Result struct {
	ArtistName     string `json:"artistName"`
	CollectionName string `json:"collectionName"`
	TrackName      string `json:"trackName"`
	ArtworkURL100  string `json:"artworkUrl100"`
}

type searchPayload struct {
	ResultCount int      `json:"resultCount"`
	Results     []Result `json:"results"`
}

// Client queries the iTunes Search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates an iTunes client. The API takes no key.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("itunes base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMusic searches the music catalog. entity is an iTunes entity name
// such as "album" or "musicArtist".
func (c *Client) SearchMusic(ctx context.Context, term, entity string) ([]Result, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("term must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse itunes url: %w", err)
	}
	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "music")
	params.Set("limit", "5")
	if entity != "" {
		params.Set("entity", entity)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("itunes search returned %d", resp.StatusCode)
	}

	var payload searchPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode itunes response: %w", err)
	}
	return payload.Results, nil
}

// UpscaleArtwork rewrites the 100x100 artwork URL iTunes returns to the
// 600x600 rendition the CDN also serves.
func UpscaleArtwork(artworkURL string) string {
	return strings.Replace(artworkURL, "100x100", "600x600", 1)
}
