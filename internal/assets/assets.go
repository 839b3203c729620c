// Package assets handles raw asset loading and caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
)

// ErrNotFound is returned when no mounted source holds the requested path.
var ErrNotFound = errors.New("asset not found")

// Manager loads asset bytes from mounted file systems.
type Manager struct {
	sources []fs.FS
	names   []string
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// MountDir mounts a directory on disk.
// Sources are searched in reverse order (last mounted = highest priority).
func (m *Manager) MountDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("mounting %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("mounting %s: not a directory", dir)
	}
	m.Mount(dir, os.DirFS(dir))
	return nil
}

// Mount adds an arbitrary file system, e.g. an embed.FS or fstest.MapFS.
func (m *Manager) Mount(name string, fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, fsys)
	m.names = append(m.names, name)
	m.mu.Unlock()
}

// Load loads a file from the mounted sources.
func (m *Manager) Load(name string) ([]byte, error) {
	key := cleanPath(name)

	if data, ok := m.cache.Get(key); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i], key)
		if err == nil {
			m.cache.Set(key, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", key, m.names[i], err)
		}
	}

	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Exists reports whether any source holds the path.
func (m *Manager) Exists(name string) bool {
	key := cleanPath(name)
	if _, ok := m.cache.Get(key); ok {
		return true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, src := range m.sources {
		if _, err := fs.Stat(src, key); err == nil {
			return true
		}
	}
	return false
}

// Close drops all sources and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = nil
	m.names = nil
	m.cache.Clear()
}

// CacheStats returns cache hit and miss counts.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// cleanPath turns an asset path into an fs.FS path: forward slashes, no
// leading "./" or "/".
func cleanPath(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Clean("/" + name)
	return strings.TrimPrefix(name, "/")
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
