package wiki

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

// Summary is the condensed page payload from the Wikipedia REST API.
type Summary struct {
	Title         string
	Description   string
	Extract       string
	Thumbnail     string
	OriginalImage string
}

type summaryPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
	Type        string `json:"type"`
	Thumbnail   struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage struct {
		Source string `json:"source"`
	} `json:"originalimage"`
}

// Client talks to the Wikipedia REST API and the Wikidata action API.
type Client struct {
	wikipediaBaseURL string
	wikidataBaseURL  string
	httpClient       *http.Client
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

// New creates a client for Wikipedia and Wikidata lookups. Neither API
// requires a key.
func New(wikipediaBaseURL, wikidataBaseURL string, opts ...Option) (*Client, error) {
	wikipediaBaseURL = strings.TrimSpace(wikipediaBaseURL)
	if wikipediaBaseURL == "" {
		return nil, errors.New("wikipedia base url required")
	}
	wikidataBaseURL = strings.TrimSpace(wikidataBaseURL)
	if wikidataBaseURL == "" {
		return nil, errors.New("wikidata base url required")
	}
	client := &Client{
		wikipediaBaseURL: strings.TrimRight(wikipediaBaseURL, "/"),
		wikidataBaseURL:  strings.TrimRight(wikidataBaseURL, "/"),
		httpClient:       &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// PageSummary fetches the REST summary for a page title. Disambiguation
// pages are rejected since their lead image never depicts the label.
func (c *Client) PageSummary(ctx context.Context, title string) (*Summary, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}
	endpoint := c.wikipediaBaseURL + "/api/rest_v1/page/summary/" +
		url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no wikipedia page for %q", title)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia summary returned %d", resp.StatusCode)
	}

	var payload summaryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode wikipedia response: %w", err)
	}
	if payload.Type == "disambiguation" {
		return nil, fmt.Errorf("page %q is a disambiguation page", title)
	}

	return &Summary{
		Title:         payload.Title,
		Description:   payload.Description,
		Extract:       payload.Extract,
		Thumbnail:     payload.Thumbnail.Source,
		OriginalImage: payload.OriginalImage.Source,
	}, nil
}
