package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	CachePath  string `toml:"cache_path"`
	SessionDB  string `toml:"session_db"`
	TopicsPath string `toml:"topics_path"`
	LogDir     string `toml:"log_dir"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
	Language     string `toml:"language"`
}

// OMDb contains configuration for the OMDb poster fallback.
type OMDb struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// LastFM contains configuration for the Last.fm artist image source.
type LastFM struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// AudioDB contains configuration for TheAudioDB artist image source.
type AudioDB struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Pixabay contains configuration for the Pixabay stock photo source.
type Pixabay struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Unsplash contains configuration for the Unsplash stock photo source.
type Unsplash struct {
	AccessKey string `toml:"access_key"`
	BaseURL   string `toml:"base_url"`
}

// Pexels contains configuration for the Pexels stock photo source.
type Pexels struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Providers contains flags and endpoints for the keyless data sources.
type Providers struct {
	EnableTVMaze     bool   `toml:"enable_tvmaze"`
	EnableWikipedia  bool   `toml:"enable_wikipedia"`
	EnableWikidata   bool   `toml:"enable_wikidata"`
	EnableITunes     bool   `toml:"enable_itunes"`
	TVMazeBaseURL    string `toml:"tvmaze_base_url"`
	WikipediaBaseURL string `toml:"wikipedia_base_url"`
	WikidataBaseURL  string `toml:"wikidata_base_url"`
	ITunesBaseURL    string `toml:"itunes_base_url"`
}

// Resolver contains tunables for candidate acceptance and request deadlines.
type Resolver struct {
	RequestTimeoutSeconds int     `toml:"request_timeout_seconds"`
	ShortQueryScore       float64 `toml:"short_query_score"`
	LongQueryScore        float64 `toml:"long_query_score"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for rankle.
//
// Configuration sections by subsystem:
//   - Paths: cache file, session database, topic pack, log directory
//   - TMDB: primary movie/TV/person image source
//   - OMDb: poster fallback for movies
//   - LastFM / AudioDB: music artist image sources
//   - Pixabay / Unsplash / Pexels: stock photo fallbacks
//   - Providers: keyless source flags (TVMaze, Wikipedia, Wikidata, iTunes)
//   - Resolver: acceptance thresholds and request deadlines
//   - Logging: log format and level
//
// A missing or empty API key never fails validation: it marks that provider
// unavailable and the resolver skips it.
type Config struct {
	Paths     Paths     `toml:"paths"`
	TMDB      TMDB      `toml:"tmdb"`
	OMDb      OMDb      `toml:"omdb"`
	LastFM    LastFM    `toml:"lastfm"`
	AudioDB   AudioDB   `toml:"audiodb"`
	Pixabay   Pixabay   `toml:"pixabay"`
	Unsplash  Unsplash  `toml:"unsplash"`
	Pexels    Pexels    `toml:"pexels"`
	Providers Providers `toml:"providers"`
	Resolver  Resolver  `toml:"resolver"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/rankle/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("rankle.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the cache, session store, and logs live in.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if strings.TrimSpace(c.Paths.CachePath) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.CachePath))
	}
	if strings.TrimSpace(c.Paths.SessionDB) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.SessionDB))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
