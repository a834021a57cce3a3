package titlecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"vaultindex/internal/fileutil"
	"vaultindex/internal/logging"
)

// Entry is one cached playlist title.
type Entry struct {
	PlaylistID string `json:"playlist_id"`
	Title      string `json:"title"`
}

// Cache provides thread-safe access to the playlist title cache.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]string
	dirty   bool
}

// NewCache loads the cache at path. Load failures are logged and yield an
// empty cache. If path is empty the cache lives in memory only.
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "titlecache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]string),
	}

	if path == "" {
		return c
	}

	if err := c.load(); err != nil {
		logging.WarnWithContext(logger, "failed to load playlist title cache", "titlecache_load_failed",
			logging.Error(err),
			logging.String("path", path),
			logging.String(logging.FieldErrorHint, "fix or delete the cache file"),
			logging.String(logging.FieldImpact, "playlist titles will be fetched again"))
	}

	return c
}

// Path returns the backing file location.
func (c *Cache) Path() string {
	return c.path
}

// Lookup returns the cached title for a playlist id.
func (c *Cache) Lookup(playlistID string) (string, bool) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	title, found := c.entries[playlistID]
	return title, found
}

// Put records a title in memory. Call Save to persist it.
func (c *Cache) Put(playlistID, title string) error {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return errors.New("playlist ID cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[playlistID]; ok && existing == title {
		return nil
	}
	c.entries[playlistID] = title
	c.dirty = true

	c.logger.Debug("cached playlist title",
		logging.String(logging.FieldPlaylistID, playlistID),
		logging.String("title", title))
	return nil
}

// Dirty reports whether the cache holds unsaved changes.
func (c *Cache) Dirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// Save persists the cache if it changed since it was loaded.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty || c.path == "" {
		return nil
	}
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	c.dirty = false
	return nil
}

// Remove deletes an entry by playlist id and persists the change.
func (c *Cache) Remove(playlistID string) error {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return errors.New("playlist ID cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[playlistID]; !exists {
		return fmt.Errorf("playlist ID %q not found in cache", playlistID)
	}

	delete(c.entries, playlistID)

	if c.path != "" {
		if err := c.save(); err != nil {
			return fmt.Errorf("persist cache: %w", err)
		}
	}
	c.dirty = false

	c.logger.Debug("removed playlist title from cache", logging.String(logging.FieldPlaylistID, playlistID))
	return nil
}

// List returns all entries sorted by playlist id.
func (c *Cache) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.entries))
	for id, title := range c.entries {
		entries = append(entries, Entry{PlaylistID: id, Title: title})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PlaylistID < entries[j].PlaylistID
	})

	return entries
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]string)

	if c.path != "" {
		if err := c.save(); err != nil {
			return fmt.Errorf("persist cache: %w", err)
		}
	}
	c.dirty = false

	c.logger.Debug("cleared playlist title cache")
	return nil
}

// Count returns the number of entries in the cache.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	for id, title := range entries {
		if strings.TrimSpace(id) != "" {
			c.entries[id] = title
		}
	}

	c.logger.Debug("loaded playlist title cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))

	return nil
}

// save writes the cache atomically. Callers hold the lock.
func (c *Cache) save() error {
	data, err := fileutil.MarshalJSON(c.entries)
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	return fileutil.WriteFileAtomic(c.path, data, 0o644)
}
