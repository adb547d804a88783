// Package music resolves artist artwork by chaining TheAudioDB, Last.fm,
// and iTunes lookups, first usable image wins.
package music

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ArtistImages holds the artwork TheAudioDB serves for one artist.
type ArtistImages struct {
	Thumb  string
	Fanart string
}

type audioDBPayload struct {
	Artists []struct {
		Name   string `json:"strArtist"`
		Thumb  string `json:"strArtistThumb"`
		Fanart string `json:"strArtistFanart"`
	} `json:"artists"`
}

// AudioDBClient queries TheAudioDB API. The key is a path segment, not a
// query parameter.
type AudioDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAudioDB creates a TheAudioDB client.
func NewAudioDB(apiKey, baseURL string, opts ...Option) (*AudioDBClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("audiodb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("audiodb base url required")
	}
	options := applyOptions(opts)
	return &AudioDBClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: options.httpClient,
	}, nil
}

// SearchArtist returns the artwork for the best-matching artist. A miss is
// an error, TheAudioDB returns a null artist list for unknown names.
func (c *AudioDBClient) SearchArtist(ctx context.Context, name string) (*ArtistImages, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("artist name must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/" + c.apiKey + "/search.php")
	if err != nil {
		return nil, fmt.Errorf("parse audiodb url: %w", err)
	}
	params := url.Values{}
	params.Set("s", name)
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
		return nil, fmt.Errorf("audiodb search returned %d", resp.StatusCode)
	}

	var payload audioDBPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode audiodb response: %w", err)
	}
	if len(payload.Artists) == 0 {
		return nil, fmt.Errorf("no audiodb artist for %q", name)
	}
	artist := payload.Artists[0]
	return &ArtistImages{Thumb: artist.Thumb, Fanart: artist.Fanart}, nil
}
