package imagecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"rankle/internal/logging"
)

// ResolvedImage is the durable result of one resolution. Records are never
// mutated after creation; a fresh resolution always produces a new record.
type ResolvedImage struct {
	Main        string `json:"main"`
	Thumb       string `json:"thumb"`
	IsLogo      bool   `json:"is_logo"`
	PrefersFace bool   `json:"prefers_face,omitempty"`
}

// Key builds the composite cache key for a resolution request.
func Key(provider, mediaType, label string) string {
	return provider + "|" + mediaType + "|" + label
}

// Cache is a durable map from cache key to ResolvedImage. Entries are
// write-through with no eviction: the working set is bounded by topic pack
// content, not user input. With an empty path the cache is memory-only.
type Cache struct {
	path    string
	logger  *slog.Logger
	lock    *flock.Flock
	mu      sync.RWMutex
	entries map[string]ResolvedImage
}

// Open creates a cache backed by the JSON file at path. A corrupt or missing
// file starts the cache empty rather than failing: losing cached lookups is
// always recoverable, losing the game session is not.
func Open(path string, logger *slog.Logger) *Cache {
	logger = logging.NewComponentLogger(logger, "imagecache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]ResolvedImage),
	}
	if path == "" {
		return c
	}
	c.lock = flock.New(path + ".lock")

	if err := c.load(); err != nil {
		logger.Warn("failed to load image cache; starting empty",
			logging.Error(err),
			logging.String("path", path))
		c.entries = make(map[string]ResolvedImage)
	}
	return c
}

// Get returns the cached image for key if present.
func (c *Cache) Get(key string) (ResolvedImage, bool) {
	if strings.TrimSpace(key) == "" {
		return ResolvedImage{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Put stores an entry and persists the whole map. Persistence failures are
// reported but the in-memory entry is kept so the current process still
// benefits from memoization.
func (c *Cache) Put(key string, img ResolvedImage) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("cache key cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = img
	if c.path == "" {
		return nil
	}
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cached resolved image",
		logging.String(logging.FieldCacheKey, key),
		logging.String("main", img.Main),
		logging.Bool("is_logo", img.IsLogo))
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns all cache keys in unspecified order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Clear removes all entries and persists the empty map.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]ResolvedImage)
	if c.path == "" {
		return nil
	}
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.logger.Debug("cleared image cache")
	return nil
}

// Path returns the backing file path, empty for a memory-only cache.
func (c *Cache) Path() string {
	return c.path
}

func (c *Cache) load() error {
	if c.lock != nil {
		if err := c.lock.Lock(); err == nil {
			defer func() { _ = c.lock.Unlock() }()
		}
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries map[string]ResolvedImage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	c.entries = make(map[string]ResolvedImage, len(entries))
	for key, entry := range entries {
		if strings.TrimSpace(key) != "" {
			c.entries[key] = entry
		}
	}

	c.logger.Debug("loaded image cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))
	return nil
}

// save writes the cache to disk atomically. Callers hold c.mu.
func (c *Cache) save() error {
	if c.lock != nil {
		if err := c.lock.Lock(); err == nil {
			defer func() { _ = c.lock.Unlock() }()
		}
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
