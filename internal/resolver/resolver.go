package resolver

import (
	"context"
	"log/slog"
	"time"

	"rankle/internal/classify"
	"rankle/internal/config"
	"rankle/internal/imagecache"
	"rankle/internal/logging"
	"rankle/internal/providers/itunes"
	"rankle/internal/providers/music"
	"rankle/internal/providers/omdb"
	"rankle/internal/providers/stock"
	"rankle/internal/providers/tmdb"
	"rankle/internal/providers/tvmaze"
	"rankle/internal/providers/wiki"
	"rankle/internal/session"
	"rankle/internal/topics"
)

type tmdbResult = tmdb.Result

func p31Matches(ids []string, cat classify.Category) bool {
	return wiki.P31MatchesClass(ids, cat)
}

// Resolver runs the full image pipeline: classify the label, race the
// providers the category calls for, gate what they return, and fall back to
// a deterministic placeholder. A nil client means that provider is not
// configured and is skipped.
type Resolver struct {
	cache  *imagecache.Cache
	logger *slog.Logger

	tmdb   *tmdb.Client
	tvmaze *tvmaze.Client
	omdb   *omdb.Client
	wiki   *wiki.Client
	music  *music.Chain
	stock  *stock.Chain

	wikipediaEnabled bool
	wikidataEnabled  bool

	timeout    time.Duration
	shortScore float64
	longScore  float64
}

// New wires a resolver from configuration. Providers whose keys are missing
// are left out; the resolver never fails to construct over an absent key.
func New(cfg *config.Config, cache *imagecache.Cache, logger *slog.Logger) *Resolver {
	logger = logging.NewComponentLogger(logger, "resolver")

	r := &Resolver{
		cache:      cache,
		logger:     logger,
		timeout:    time.Duration(cfg.Resolver.RequestTimeoutSeconds) * time.Second,
		shortScore: cfg.Resolver.ShortQueryScore,
		longScore:  cfg.Resolver.LongQueryScore,
	}

	if cfg.TMDB.APIKey != "" {
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.ImageBaseURL, cfg.TMDB.Language)
		if err != nil {
			logger.Warn("tmdb disabled", logging.Error(err))
		} else {
			r.tmdb = client
		}
	}
	if cfg.Providers.EnableTVMaze {
		client, err := tvmaze.New(cfg.Providers.TVMazeBaseURL)
		if err != nil {
			logger.Warn("tvmaze disabled", logging.Error(err))
		} else {
			r.tvmaze = client
		}
	}
	if cfg.OMDb.APIKey != "" {
		client, err := omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL)
		if err != nil {
			logger.Warn("omdb disabled", logging.Error(err))
		} else {
			r.omdb = client
		}
	}
	if cfg.Providers.EnableWikipedia || cfg.Providers.EnableWikidata {
		client, err := wiki.New(cfg.Providers.WikipediaBaseURL, cfg.Providers.WikidataBaseURL)
		if err != nil {
			logger.Warn("wiki disabled", logging.Error(err))
		} else {
			r.wiki = client
			r.wikipediaEnabled = cfg.Providers.EnableWikipedia
			r.wikidataEnabled = cfg.Providers.EnableWikidata
		}
	}

	chain := &music.Chain{Logger: logger}
	if cfg.AudioDB.APIKey != "" {
		client, err := music.NewAudioDB(cfg.AudioDB.APIKey, cfg.AudioDB.BaseURL)
		if err != nil {
			logger.Warn("audiodb disabled", logging.Error(err))
		} else {
			chain.AudioDB = client
		}
	}
	if cfg.LastFM.APIKey != "" {
		client, err := music.NewLastFM(cfg.LastFM.APIKey, cfg.LastFM.BaseURL)
		if err != nil {
			logger.Warn("lastfm disabled", logging.Error(err))
		} else {
			chain.LastFM = client
		}
	}
	if cfg.Providers.EnableITunes {
		client, err := itunes.New(cfg.Providers.ITunesBaseURL)
		if err != nil {
			logger.Warn("itunes disabled", logging.Error(err))
		} else {
			chain.ITunes = client
		}
	}
	if chain.AudioDB != nil || chain.LastFM != nil || chain.ITunes != nil {
		r.music = chain
	}

	stockChain := &stock.Chain{Logger: logger}
	if cfg.Pixabay.APIKey != "" {
		client, err := stock.NewPixabay(cfg.Pixabay.APIKey, cfg.Pixabay.BaseURL)
		if err != nil {
			logger.Warn("pixabay disabled", logging.Error(err))
		} else {
			stockChain.Pixabay = client
		}
	}
	if cfg.Unsplash.AccessKey != "" {
		client, err := stock.NewUnsplash(cfg.Unsplash.AccessKey, cfg.Unsplash.BaseURL)
		if err != nil {
			logger.Warn("unsplash disabled", logging.Error(err))
		} else {
			stockChain.Unsplash = client
		}
	}
	if cfg.Pexels.APIKey != "" {
		client, err := stock.NewPexels(cfg.Pexels.APIKey, cfg.Pexels.BaseURL)
		if err != nil {
			logger.Warn("pexels disabled", logging.Error(err))
		} else {
			stockChain.Pexels = client
		}
	}
	if stockChain.Pixabay != nil || stockChain.Unsplash != nil || stockChain.Pexels != nil {
		r.stock = stockChain
	}

	return r
}

// Resolve produces the image for one topic item. Provider faults never fail
// a resolution; only a cancelled context does.
func (r *Resolver) Resolve(ctx context.Context, topic topics.Topic, item topics.Item, sess *session.Session) (imagecache.ResolvedImage, error) {
	// Curated override: returned verbatim, never cached, never raced.
	if item.ImageURL != "" {
		return imagecache.ResolvedImage{Main: item.ImageURL, Thumb: item.ImageURL}, nil
	}

	cat := r.categoryFor(topic, item.Label)
	query := CanonicalQuery(topic.Name, item.Label, cat)
	prefersFace := classify.PrefersFace(topic.Name, item.Label, cat)

	key := imagecache.Key(topic.Provider, topic.MediaType, query)
	if cached, ok := r.cache.Get(key); ok {
		r.logger.Debug("cache hit",
			logging.String(logging.FieldCacheKey, key),
			logging.String(logging.FieldLabel, item.Label))
		if sess != nil {
			sess.MarkUsed(cached.Main)
		}
		return cached, nil
	}

	start := time.Now()
	img, err := r.resolveOnce(ctx, query, topic.Name, cat)
	if err != nil {
		return imagecache.ResolvedImage{}, err
	}

	// Avoid repeating an image the board already shows; accept a duplicate
	// only after the variant queries also collide.
	if sess != nil && sess.Used(img.Main) {
		for _, variant := range Variants(query, topic.Name, cat) {
			alt, altErr := r.resolveOnce(ctx, variant, topic.Name, cat)
			if altErr != nil {
				return imagecache.ResolvedImage{}, altErr
			}
			if !sess.Used(alt.Main) {
				img = alt
				break
			}
		}
	}

	img.PrefersFace = prefersFace
	r.logger.Debug("resolved",
		logging.String(logging.FieldTopic, topic.Name),
		logging.String(logging.FieldLabel, item.Label),
		logging.Duration("elapsed", time.Since(start)))
	if err := r.cache.Put(key, img); err != nil {
		r.logger.Warn("cache write failed",
			logging.String(logging.FieldCacheKey, key),
			logging.Error(err))
	}
	if sess != nil {
		sess.MarkUsed(img.Main)
	}
	return img, nil
}

// categoryFor classifies a label, letting an explicit topic provider hint
// override the keyword rules.
func (r *Resolver) categoryFor(topic topics.Topic, label string) classify.Category {
	if topic.Provider == topics.ProviderTMDB {
		switch topic.MediaType {
		case "movie":
			return classify.Movie
		case "tv":
			return classify.TV
		case "person":
			return classify.Person
		}
	}
	return classify.Classify(topic.Name, label)
}

// resolveOnce runs one race for one query, trying the stock chain after an
// empty race and falling back to the placeholder when nothing wins.
func (r *Resolver) resolveOnce(ctx context.Context, query, topicName string, cat classify.Category) (imagecache.ResolvedImage, error) {
	tasks := r.tasksFor(cat, query)
	winner, err := r.race(ctx, tasks, cat, topicName, query)
	if err != nil {
		return imagecache.ResolvedImage{}, err
	}
	if winner == nil {
		winner = r.stockFallback(ctx, cat, topicName, query)
	}
	if winner == nil {
		r.logger.Info("no provider answered; using placeholder",
			logging.String(logging.FieldLabel, query),
			logging.String(logging.FieldCategory, cat.String()))
		placeholder := PlaceholderURL(query)
		return imagecache.ResolvedImage{Main: placeholder, Thumb: placeholder}, nil
	}
	r.logger.Debug("candidate accepted",
		logging.String(logging.FieldProvider, winner.Provider),
		logging.String(logging.FieldLabel, query))
	return imagecache.ResolvedImage{
		Main:   winner.URL,
		Thumb:  winner.Thumb,
		IsLogo: winner.IsLogo,
	}, nil
}

// stockFallback queries the stock-photo chain after every category provider
// settled without an accepted candidate. Unclassified items already race
// the chain, and food, place, and device never use it.
func (r *Resolver) stockFallback(ctx context.Context, cat classify.Category, topicName, query string) *Candidate {
	switch cat {
	case classify.Generic, classify.Food, classify.Place, classify.Device:
		return nil
	}
	run := r.stockTask(query, cat)
	if run == nil {
		return nil
	}
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	candidate, err := run(callCtx)
	if err != nil {
		r.logger.Debug("stock fallback failed",
			logging.String(logging.FieldLabel, query),
			logging.Error(err))
		return nil
	}
	if candidate == nil || !accept(*candidate, cat, topicName, query) {
		return nil
	}
	return candidate
}

type raceResult struct {
	provider  string
	candidate *Candidate
	err       error
}

// race launches every task and returns the first settled candidate that
// clears the acceptance gate, cancelling the rest. A nil return with nil
// error means every provider came up empty.
func (r *Resolver) race(ctx context.Context, tasks []task, cat classify.Category, topicName, query string) (*Candidate, error) {
	if len(tasks) == 0 {
		return nil, ctx.Err()
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan raceResult, len(tasks))
	for _, t := range tasks {
		go func(t task) {
			callCtx, callCancel := context.WithTimeout(raceCtx, r.timeout)
			defer callCancel()
			candidate, err := t.run(callCtx)
			results <- raceResult{provider: t.provider, candidate: candidate, err: err}
		}(t)
	}

	for pending := len(tasks); pending > 0; pending-- {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil {
				r.logger.Debug("provider lookup failed",
					logging.String(logging.FieldProvider, result.provider),
					logging.String(logging.FieldLabel, query),
					logging.Error(result.err))
				continue
			}
			if result.candidate == nil {
				continue
			}
			if !accept(*result.candidate, cat, topicName, query) {
				r.logger.Debug("candidate rejected",
					logging.String(logging.FieldProvider, result.provider),
					logging.String(logging.FieldLabel, query),
					logging.String(logging.FieldReason, "acceptance gate"))
				continue
			}
			return result.candidate, nil
		}
	}
	return nil, ctx.Err()
}
