package weathercache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry holds the last successful provider payload for a location and the
// time it was fetched. Stale entries stay in the file until overwritten;
// freshness is the reader's concern.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Cache is a durable key to Entry map backed by a single JSON file. Every
// write rewrites the whole file through a temp-file-and-rename so an
// interrupted process never leaves a torn file behind. One mutex
// serializes the read-modify-write cycle across requests.
type Cache struct {
	mu   sync.Mutex
	path string
}

// New creates a Cache persisted at path. The file is created lazily on
// the first write.
func New(path string) *Cache {
	return &Cache{path: path}
}

func (c *Cache) load() (map[string]Entry, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read weather cache: %w", err)
	}

	entries := map[string]Entry{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse weather cache: %w", err)
	}
	return entries, nil
}

func (c *Cache) persist(entries map[string]Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weather cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".weather_cache-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace weather cache: %w", err)
	}
	return nil
}

// Get returns the entry for key, reporting whether it exists. Existence
// says nothing about freshness.
func (c *Cache) Get(key string) (Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		return Entry{}, false, err
	}
	entry, ok := entries[key]
	return entry, ok, nil
}

// Put upserts one key, overwriting any prior entry stale or not, and
// persists the whole mapping back atomically.
func (c *Cache) Put(key string, data json.RawMessage, fetchedAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		return err
	}
	entries[key] = Entry{Data: data, Timestamp: fetchedAt}
	return c.persist(entries)
}

// Count returns the number of cached locations.
func (c *Cache) Count() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
