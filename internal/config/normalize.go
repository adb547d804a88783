package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeKeys()
	c.normalizeEndpoints()
	c.normalizeResolver()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CachePath) != "" {
		if c.Paths.CachePath, err = expandPath(c.Paths.CachePath); err != nil {
			return fmt.Errorf("paths.cache_path: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.SessionDB) != "" {
		if c.Paths.SessionDB, err = expandPath(c.Paths.SessionDB); err != nil {
			return fmt.Errorf("paths.session_db: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.TopicsPath) != "" {
		if c.Paths.TopicsPath, err = expandPath(c.Paths.TopicsPath); err != nil {
			return fmt.Errorf("paths.topics_path: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeKeys trims key material and honours environment fallbacks so keys
// never have to live in the config file.
func (c *Config) normalizeKeys() {
	envFallback(&c.TMDB.APIKey, "TMDB_API_KEY")
	envFallback(&c.OMDb.APIKey, "OMDB_API_KEY")
	envFallback(&c.LastFM.APIKey, "LASTFM_API_KEY")
	envFallback(&c.AudioDB.APIKey, "AUDIODB_API_KEY")
	envFallback(&c.Pixabay.APIKey, "PIXABAY_API_KEY")
	envFallback(&c.Unsplash.AccessKey, "UNSPLASH_ACCESS_KEY")
	envFallback(&c.Pexels.APIKey, "PEXELS_API_KEY")
}

func envFallback(value *string, env string) {
	*value = strings.TrimSpace(*value)
	if *value == "" {
		if fromEnv, ok := os.LookupEnv(env); ok {
			*value = strings.TrimSpace(fromEnv)
		}
	}
}

func (c *Config) normalizeEndpoints() {
	defaultURL(&c.TMDB.BaseURL, defaultTMDBBaseURL)
	defaultURL(&c.TMDB.ImageBaseURL, defaultTMDBImageBaseURL)
	if strings.TrimSpace(c.TMDB.Language) == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	defaultURL(&c.OMDb.BaseURL, defaultOMDbBaseURL)
	defaultURL(&c.LastFM.BaseURL, defaultLastFMBaseURL)
	defaultURL(&c.AudioDB.BaseURL, defaultAudioDBBaseURL)
	defaultURL(&c.Pixabay.BaseURL, defaultPixabayBaseURL)
	defaultURL(&c.Unsplash.BaseURL, defaultUnsplashBaseURL)
	defaultURL(&c.Pexels.BaseURL, defaultPexelsBaseURL)
	defaultURL(&c.Providers.TVMazeBaseURL, defaultTVMazeBaseURL)
	defaultURL(&c.Providers.WikipediaBaseURL, defaultWikipediaBaseURL)
	defaultURL(&c.Providers.WikidataBaseURL, defaultWikidataBaseURL)
	defaultURL(&c.Providers.ITunesBaseURL, defaultITunesBaseURL)
}

func defaultURL(value *string, fallback string) {
	*value = strings.TrimRight(strings.TrimSpace(*value), "/")
	if *value == "" {
		*value = strings.TrimRight(fallback, "/")
	}
}

func (c *Config) normalizeResolver() {
	if c.Resolver.RequestTimeoutSeconds <= 0 {
		c.Resolver.RequestTimeoutSeconds = defaultRequestTimeoutSeconds
	}
	if c.Resolver.ShortQueryScore <= 0 {
		c.Resolver.ShortQueryScore = defaultShortQueryScore
	}
	if c.Resolver.LongQueryScore <= 0 {
		c.Resolver.LongQueryScore = defaultLongQueryScore
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
