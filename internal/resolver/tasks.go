package resolver

import (
	"context"
	"fmt"

	"rankle/internal/classify"
	"rankle/internal/textutil"
)

// task is one provider lookup in a race. A task returns (nil, nil) when the
// provider answered but had nothing usable.
type task struct {
	provider string
	run      func(ctx context.Context) (*Candidate, error)
}

// tasksFor builds the provider lineup for a category. Order sets launch
// order only; the race takes the first settled candidate that clears the
// acceptance gate. Stock photography is too loose to race the type-correct
// providers: it joins the lineup only for unclassified items and otherwise
// runs as a last resort once the race settles empty.
func (r *Resolver) tasksFor(cat classify.Category, query string) []task {
	var tasks []task
	add := func(provider string, run func(ctx context.Context) (*Candidate, error)) {
		if run != nil {
			tasks = append(tasks, task{provider: provider, run: run})
		}
	}

	switch cat {
	case classify.Movie:
		add("tmdb", r.tmdbMovieTask(query))
		add("omdb", r.omdbTask(query))
		add("wiki", r.wikiTask(query, cat))
	case classify.TV:
		add("tmdb", r.tmdbTVTask(query))
		add("tvmaze", r.tvmazeTask(query))
		add("omdb", r.omdbTask(query))
		add("wiki", r.wikiTask(query, cat))
	case classify.Person:
		add("tmdb", r.tmdbPersonTask(query))
		add("wiki", r.wikiTask(query, cat))
	case classify.Group, classify.Album, classify.Song:
		add("music", r.musicTask(query))
		add("wiki", r.wikiTask(query, cat))
	default:
		add("wiki", r.wikiTask(query, cat))
	}

	if cat == classify.Generic {
		add("stock", r.stockTask(query, cat))
	}
	return tasks
}

func (r *Resolver) thresholdFor(query string) float64 {
	if len(textutil.Tokenize(query)) <= 3 {
		return r.shortScore
	}
	return r.longScore
}

func (r *Resolver) tmdbMovieTask(query string) func(ctx context.Context) (*Candidate, error) {
	if r.tmdb == nil {
		return nil
	}
	return func(ctx context.Context) (*Candidate, error) {
		resp, err := r.tmdb.SearchMovie(ctx, query)
		if err != nil {
			return nil, err
		}
		return r.tmdbCandidate(query, resp.Results, false)
	}
}

func (r *Resolver) tmdbTVTask(query string) func(ctx context.Context) (*Candidate, error) {
	if r.tmdb == nil {
		return nil
	}
	return func(ctx context.Context) (*Candidate, error) {
		resp, err := r.tmdb.SearchTV(ctx, query)
		if err != nil {
			return nil, err
		}
		return r.tmdbCandidate(query, resp.Results, false)
	}
}

func (r *Resolver) tmdbPersonTask(query string) func(ctx context.Context) (*Candidate, error) {
	if r.tmdb == nil {
		return nil
	}
	return func(ctx context.Context) (*Candidate, error) {
		resp, err := r.tmdb.SearchPerson(ctx, query)
		if err != nil {
			return nil, err
		}
		return r.tmdbCandidate(query, resp.Results, true)
	}
}

func (r *Resolver) tmdbCandidate(query string, results []tmdbResult, person bool) (*Candidate, error) {
	best, score := bestByScore(query, results, func(res tmdbResult) string { return res.DisplayName() })
	if best == nil || score < r.thresholdFor(query) {
		return nil, nil
	}
	var main, thumb string
	if person {
		main, thumb = r.tmdb.ProfileFor(*best)
	} else {
		main, thumb = r.tmdb.ArtworkFor(*best)
	}
	if main == "" {
		return nil, nil
	}
	return &Candidate{
		Provider: "tmdb",
		URL:      main,
		Thumb:    thumb,
		Title:    best.DisplayName(),
		TypeOK:   true,
	}, nil
}

func (r *Resolver) tvmazeTask(query string) func(ctx context.Context) (*Candidate, error) {
	if r.tvmaze == nil {
		return nil
	}
	return func(ctx context.Context) (*Candidate, error) {
		matches, err := r.tvmaze.SearchShows(ctx, query)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if textutil.MatchScore(query, match.Show.Name) < r.longScore {
				continue
			}
			image := match.Show.BestImage()
			if image == "" {
				continue
			}
			return &Candidate{
				Provider: "tvmaze",
				URL:      image,
				Thumb:    image,
				Title:    match.Show.Name,
				TypeOK:   true,
			}, nil
		}
		return nil, nil
	}
}

func (r *Resolver) omdbTask(query string) func(ctx context.Context) (*Candidate, error) {
	if r.omdb == nil {
		return nil
	}
	return func(ctx context.Context) (*Candidate, error) {
		title, err := r.omdb.FetchByTitle(ctx, query)
		if err != nil {
			return nil, err
		}
		if !title.HasPoster() {
			return nil, nil
		}
		return &Candidate{
			Provider: "omdb",
			URL:      title.Poster,
			Thumb:    title.Poster,
			Title:    title.Title,
			TypeOK:   true,
		}, nil
	}
}

func (r *Resolver) musicTask(query string) func(ctx context.Context) (*Candidate, error) {
	if r.music == nil {
		return nil
	}
	return func(ctx context.Context) (*Candidate, error) {
		art, err := r.music.ArtistArtwork(ctx, query)
		if err != nil {
			return nil, err
		}
		return &Candidate{
			Provider: "music",
			URL:      art.Main,
			Thumb:    art.Thumb,
			Title:    query,
			TypeOK:   true,
		}, nil
	}
}

// wikiTask combines the Wikipedia lead image with Wikidata typing. For
// typed categories a candidate only gets TypeOK from a matching P31 claim
// or, when Wikidata is disabled, from the article description.
func (r *Resolver) wikiTask(query string, cat classify.Category) func(ctx context.Context) (*Candidate, error) {
	if r.wiki == nil {
		return nil
	}
	return func(ctx context.Context) (*Candidate, error) {
		candidate := &Candidate{Provider: "wiki"}

		if r.wikipediaEnabled {
			summary, err := r.wiki.PageSummary(ctx, query)
			if err == nil {
				candidate.Title = summary.Title
				candidate.Desc = summary.Description + " " + summary.Extract
				if summary.OriginalImage != "" {
					candidate.URL = summary.OriginalImage
				} else {
					candidate.URL = summary.Thumbnail
				}
				candidate.Thumb = summary.Thumbnail
			}
		}

		typed := false
		if r.wikidataEnabled {
			entity, err := r.wiki.EntityByTitle(ctx, query)
			if err != nil {
				if results, searchErr := r.wiki.Search(ctx, query); searchErr == nil && len(results) > 0 {
					entity, err = r.wiki.EntityByID(ctx, results[0].ID)
				}
			}
			if err == nil && entity != nil {
				typed = true
				candidate.TypeOK = p31Matches(entity.InstanceOf, cat)
				switch cat {
				case classify.Brand, classify.Team:
					if entity.LogoURL != "" {
						candidate.URL = entity.LogoURL
						candidate.Thumb = entity.LogoURL
						candidate.IsLogo = true
					} else if candidate.URL == "" {
						candidate.URL = entity.ImageURL
						candidate.Thumb = entity.ImageURL
					}
				default:
					if candidate.URL == "" {
						candidate.URL = entity.ImageURL
						candidate.Thumb = entity.ImageURL
					}
				}
			}
		}
		if !typed {
			candidate.TypeOK = descriptionSuggests(cat, candidate.Desc)
		}

		if candidate.URL == "" {
			return nil, fmt.Errorf("no wiki image for %q", query)
		}
		if candidate.Thumb == "" {
			candidate.Thumb = candidate.URL
		}
		return candidate, nil
	}
}

func (r *Resolver) stockTask(query string, cat classify.Category) func(ctx context.Context) (*Candidate, error) {
	if r.stock == nil {
		return nil
	}
	search := query
	if suffix, ok := categoryContext[cat]; ok {
		search = query + " " + suffix
	}
	return func(ctx context.Context) (*Candidate, error) {
		photo, err := r.stock.SearchPhoto(ctx, search)
		if err != nil {
			return nil, err
		}
		return &Candidate{
			Provider: "stock",
			URL:      photo.Main,
			Thumb:    photo.Thumb,
			TypeOK:   true,
		}, nil
	}
}

// Description keyword typing, the fallback when no instance-of claims are
// available.
var descriptionWords = map[classify.Category][]string{
	classify.Place: {"city", "capital", "country", "mountain", "lake", "river",
		"island", "museum", "park", "attraction", "destination", "region", "town"},
	classify.Food: {"food", "dish", "drink", "beverage", "cuisine", "ingredient",
		"cheese", "sauce", "dessert", "fruit", "vegetable", "meat", "tea"},
	classify.Brand:  {"brand", "company", "manufacturer", "corporation", "business"},
	classify.Team:   {"team", "club", "franchise"},
	classify.Device: {"smartwatch", "watch", "phone", "device", "product", "wearable"},
}

func descriptionSuggests(cat classify.Category, desc string) bool {
	words, typedCategory := descriptionWords[cat]
	if !typedCategory {
		return true
	}
	return textContainsAny(desc, words)
}

func bestByScore[T any](query string, items []T, name func(T) string) (*T, float64) {
	var best *T
	bestScore := 0.0
	for i := range items {
		score := textutil.MatchScore(query, name(items[i]))
		if best == nil || score > bestScore {
			best = &items[i]
			bestScore = score
		}
	}
	return best, bestScore
}
