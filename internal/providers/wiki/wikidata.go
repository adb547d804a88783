package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Entity is the subset of a Wikidata item used for image resolution:
// instance-of class IDs plus image and logo file names resolved to
// Commons URLs.
type Entity struct {
	ID         string
	InstanceOf []string
	ImageURL   string
	LogoURL    string
}

// SearchResult is one hit from a wbsearchentities query.
type SearchResult struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type claim struct {
	MainSnak struct {
		DataValue struct {
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

type entitiesPayload struct {
	Entities map[string]struct {
		ID     string             `json:"id"`
		Claims map[string][]claim `json:"claims"`
	} `json:"entities"`
}

type searchPayload struct {
	Search []SearchResult `json:"search"`
}

const commonsFilePathBase = "https://commons.wikimedia.org/wiki/Special:FilePath/"

// EntityByTitle resolves the English Wikipedia article title to its Wikidata
// item and extracts the claims relevant to resolution.
func (c *Client) EntityByTitle(ctx context.Context, title string) (*Entity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("sites", "enwiki")
	params.Set("titles", title)
	params.Set("props", "claims")
	params.Set("format", "json")

	var payload entitiesPayload
	if err := c.wikidataGet(ctx, params, &payload); err != nil {
		return nil, err
	}

	// A miss comes back as a pseudo-entity with a negative ID.
	for id, raw := range payload.Entities {
		if strings.HasPrefix(id, "-") {
			continue
		}
		return entityFromClaims(id, raw.Claims), nil
	}
	return nil, fmt.Errorf("no wikidata entity for %q", title)
}

// EntityByID fetches claims for a known Wikidata item ID.
func (c *Client) EntityByID(ctx context.Context, id string) (*Entity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("entity id must not be empty")
	}

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", id)
	params.Set("props", "claims")
	params.Set("format", "json")

	var payload entitiesPayload
	if err := c.wikidataGet(ctx, params, &payload); err != nil {
		return nil, err
	}

	raw, ok := payload.Entities[id]
	if !ok {
		return nil, fmt.Errorf("no wikidata entity %q", id)
	}
	return entityFromClaims(id, raw.Claims), nil
}

// Search runs a wbsearchentities query and returns the candidate items.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", "en")
	params.Set("limit", "5")
	params.Set("format", "json")

	var payload searchPayload
	if err := c.wikidataGet(ctx, params, &payload); err != nil {
		return nil, err
	}
	return payload.Search, nil
}

func (c *Client) wikidataGet(ctx context.Context, params url.Values, out any) error {
	endpoint, err := url.Parse(c.wikidataBaseURL + "/w/api.php")
	if err != nil {
		return fmt.Errorf("parse wikidata url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikidata returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode wikidata response: %w", err)
	}
	return nil
}

func entityFromClaims(id string, claims map[string][]claim) *Entity {
	entity := &Entity{ID: id}
	for _, cl := range claims["P31"] {
		var value struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(cl.MainSnak.DataValue.Value, &value); err == nil && value.ID != "" {
			entity.InstanceOf = append(entity.InstanceOf, value.ID)
		}
	}
	entity.ImageURL = commonsURL(claimString(claims, "P18"))
	entity.LogoURL = commonsURL(claimString(claims, "P154"))
	return entity
}

func claimString(claims map[string][]claim, property string) string {
	for _, cl := range claims[property] {
		var value string
		if err := json.Unmarshal(cl.MainSnak.DataValue.Value, &value); err == nil && value != "" {
			return value
		}
	}
	return ""
}

// commonsURL turns a Commons file name into a sized FilePath redirect URL.
func commonsURL(fileName string) string {
	if fileName == "" {
		return ""
	}
	return commonsFilePathBase + url.PathEscape(strings.ReplaceAll(fileName, " ", "_")) + "?width=800"
}
