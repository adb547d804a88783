package music

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

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

type lastFMPayload struct {
	Artist struct {
		Name  string `json:"name"`
		Image []struct {
			URL  string `json:"#text"`
			Size string `json:"size"`
		} `json:"image"`
	} `json:"artist"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// LastFMClient queries the Last.fm artist.getinfo API.
type LastFMClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewLastFM creates a Last.fm client.
func NewLastFM(apiKey, baseURL string, opts ...Option) (*LastFMClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("lastfm api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("lastfm base url required")
	}
	options := applyOptions(opts)
	return &LastFMClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: options.httpClient,
	}, nil
}

// ArtistImage returns the largest non-empty artist image Last.fm serves.
func (c *LastFMClient) ArtistImage(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("artist name must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("parse lastfm url: %w", err)
	}
	params := url.Values{}
	params.Set("method", "artist.getinfo")
	params.Set("artist", name)
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lastfm lookup returned %d", resp.StatusCode)
	}

	var payload lastFMPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode lastfm response: %w", err)
	}
	if payload.Error != 0 {
		return "", fmt.Errorf("lastfm: %s", payload.Message)
	}

	// Images come smallest first; walk from the back for the largest.
	images := payload.Artist.Image
	for i := len(images) - 1; i >= 0; i-- {
		if images[i].URL != "" {
			return images[i].URL, nil
		}
	}
	return "", fmt.Errorf("no lastfm image for %q", name)
}
