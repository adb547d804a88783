// Package stock resolves generic subject photos from stock photography
// APIs, chaining Pixabay, Unsplash, and Pexels in order.
package stock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rankle/internal/logging"
)

// Photo is a resolved stock image pair.
type Photo struct {
	Main  string
	Thumb string
}

type clientOptions struct {
	httpClient *http.Client
}

// Option configures a stock client.
type Option func(*clientOptions)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func applyOptions(opts []Option) clientOptions {
	options := clientOptions{httpClient: &http.Client{Timeout: 10 * time.Second}}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// PixabayClient queries the Pixabay image search API.
type PixabayClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewPixabay creates a Pixabay client.
func NewPixabay(apiKey, baseURL string, opts ...Option) (*PixabayClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("pixabay api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("pixabay base url required")
	}
	options := applyOptions(opts)
	return &PixabayClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: options.httpClient,
	}, nil
}

// SearchPhoto returns the top photo for a query.
func (c *PixabayClient) SearchPhoto(ctx context.Context, query string) (*Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("parse pixabay url: %w", err)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("per_page", "3")
	params.Set("safesearch", "true")
	endpoint.RawQuery = params.Encode()

	var payload struct {
		Hits []struct {
			WebformatURL  string `json:"webformatURL"`
			LargeImageURL string `json:"largeImageURL"`
			PreviewURL    string `json:"previewURL"`
		} `json:"hits"`
	}
	if err := getJSON(ctx, c.httpClient, endpoint.String(), nil, &payload); err != nil {
		return nil, fmt.Errorf("pixabay search: %w", err)
	}
	for _, hit := range payload.Hits {
		main := hit.LargeImageURL
		if main == "" {
			main = hit.WebformatURL
		}
		if main == "" {
			continue
		}
		thumb := hit.WebformatURL
		if thumb == "" {
			thumb = main
		}
		return &Photo{Main: main, Thumb: thumb}, nil
	}
	return nil, fmt.Errorf("no pixabay photo for %q", query)
}

// UnsplashClient queries the Unsplash photo search API.
type UnsplashClient struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// NewUnsplash creates an Unsplash client.
func NewUnsplash(accessKey, baseURL string, opts ...Option) (*UnsplashClient, error) {
	accessKey = strings.TrimSpace(accessKey)
	if accessKey == "" {
		return nil, errors.New("unsplash access key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("unsplash base url required")
	}
	options := applyOptions(opts)
	return &UnsplashClient{
		accessKey:  accessKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: options.httpClient,
	}, nil
}

// SearchPhoto returns the top photo for a query.
func (c *UnsplashClient) SearchPhoto(ctx context.Context, query string) (*Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/photos")
	if err != nil {
		return nil, fmt.Errorf("parse unsplash url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "3")
	endpoint.RawQuery = params.Encode()

	headers := map[string]string{"Authorization": "Client-ID " + c.accessKey}
	var payload struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
				Small   string `json:"small"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := getJSON(ctx, c.httpClient, endpoint.String(), headers, &payload); err != nil {
		return nil, fmt.Errorf("unsplash search: %w", err)
	}
	for _, result := range payload.Results {
		if result.URLs.Regular == "" {
			continue
		}
		thumb := result.URLs.Small
		if thumb == "" {
			thumb = result.URLs.Regular
		}
		return &Photo{Main: result.URLs.Regular, Thumb: thumb}, nil
	}
	return nil, fmt.Errorf("no unsplash photo for %q", query)
}

// PexelsClient queries the Pexels photo search API.
type PexelsClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewPexels creates a Pexels client.
func NewPexels(apiKey, baseURL string, opts ...Option) (*PexelsClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("pexels api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("pexels base url required")
	}
	options := applyOptions(opts)
	return &PexelsClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: options.httpClient,
	}, nil
}

// SearchPhoto returns the top photo for a query.
func (c *PexelsClient) SearchPhoto(ctx context.Context, query string) (*Photo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse pexels url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "3")
	endpoint.RawQuery = params.Encode()

	headers := map[string]string{"Authorization": c.apiKey}
	var payload struct {
		Photos []struct {
			Src struct {
				Large2x string `json:"large2x"`
				Large   string `json:"large"`
				Medium  string `json:"medium"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := getJSON(ctx, c.httpClient, endpoint.String(), headers, &payload); err != nil {
		return nil, fmt.Errorf("pexels search: %w", err)
	}
	for _, photo := range payload.Photos {
		main := photo.Src.Large2x
		if main == "" {
			main = photo.Src.Large
		}
		if main == "" {
			continue
		}
		thumb := photo.Src.Medium
		if thumb == "" {
			thumb = main
		}
		return &Photo{Main: main, Thumb: thumb}, nil
	}
	return nil, fmt.Errorf("no pexels photo for %q", query)
}

// Chain tries each configured stock source in order. Nil clients are
// skipped.
type Chain struct {
	Pixabay  *PixabayClient
	Unsplash *UnsplashClient
	Pexels   *PexelsClient
	Logger   *slog.Logger
}

// SearchPhoto returns the first photo any source yields for the query.
func (ch *Chain) SearchPhoto(ctx context.Context, query string) (*Photo, error) {
	logger := logging.NewComponentLogger(ch.Logger, "stock")

	if ch.Pixabay != nil {
		photo, err := ch.Pixabay.SearchPhoto(ctx, query)
		if err == nil {
			return photo, nil
		}
		logger.Debug("pixabay search failed", logging.String("query", query), logging.Error(err))
	}
	if ch.Unsplash != nil {
		photo, err := ch.Unsplash.SearchPhoto(ctx, query)
		if err == nil {
			return photo, nil
		}
		logger.Debug("unsplash search failed", logging.String("query", query), logging.Error(err))
	}
	if ch.Pexels != nil {
		photo, err := ch.Pexels.SearchPhoto(ctx, query)
		if err == nil {
			return photo, nil
		}
		logger.Debug("pexels search failed", logging.String("query", query), logging.Error(err))
	}
	return nil, fmt.Errorf("no stock photo for %q", query)
}

func getJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
