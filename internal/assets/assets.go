// Package assets handles resource loading and caching for texture sets: text
// resources are read as lines and images are decoded into shared,
// reference-counted textures.
package assets

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	xencoding "golang.org/x/text/encoding"

	"github.com/Faultbox/texset/pkg/encoding"
)

// Manager loads resources from a stack of roots.
// Roots are searched in reverse order (last added = highest priority). A
// manager without roots reads paths straight from the operating system.
type Manager struct {
	roots    []root
	cache    *Cache
	textures *TextureCache
	charset  xencoding.Encoding
	mu       sync.RWMutex
}

type root struct {
	name string
	fsys fs.FS
}

// Option configures a Manager.
type Option func(*Manager) error

// WithEncoding decodes text resources with the named charset.
func WithEncoding(name string) Option {
	return func(m *Manager) error {
		enc, err := encoding.Lookup(name)
		if err != nil {
			return err
		}
		m.charset = enc
		return nil
	}
}

// WithMagentaKey makes magenta pixels transparent in loaded textures.
func WithMagentaKey(enabled bool) Option {
	return func(m *Manager) error {
		m.textures.magentaKey = enabled
		return nil
	}
}

// WithUploader uploads textures to the GPU on first load and unloads them on
// last release.
func WithUploader(u Uploader) Option {
	return func(m *Manager) error {
		m.textures.uploader = u
		return nil
	}
}

// NewManager creates a new asset manager.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		cache: NewCache(),
	}
	m.textures = newTextureCache(m)
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddRoot adds a directory to the search path.
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding root %s: not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	return nil
}

// AddFS adds a file system to the search path.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.roots = append(m.roots, root{name: name, fsys: fsys})
	m.mu.Unlock()
}

// Load loads a file, returning a cached copy when available.
// Missing files produce an error wrapping fs.ErrNotExist.
func (m *Manager) Load(name string) ([]byte, error) {
	// Check cache first
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.roots) == 0 {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		m.cache.Set(name, data)
		return data, nil
	}

	rel := fsPath(name)
	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.roots[i].fsys, rel)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s from %s: %w", name, m.roots[i].name, err)
		}
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadLines loads a text resource and splits it into lines. Line endings
// (LF or CRLF) are removed. An empty file yields no lines and no error.
func (m *Manager) ReadLines(name string) ([]string, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}

	text, err := encoding.Decode(m.charset, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines of %s: %w", name, err)
	}
	return lines, nil
}

// Glob returns the files matching pattern, searched through every root.
// Without roots the pattern is matched against the operating system.
func (m *Manager) Glob(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.roots) == 0 {
		return filepath.Glob(pattern)
	}

	seen := make(map[string]bool)
	var matches []string
	for i := len(m.roots) - 1; i >= 0; i-- {
		found, err := fs.Glob(m.roots[i].fsys, fsPath(pattern))
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				matches = append(matches, f)
			}
		}
	}
	return matches, nil
}

// Textures returns the texture cache.
func (m *Manager) Textures() *TextureCache {
	return m.textures
}

// Stats returns raw file cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close releases every cached texture and clears the file cache.
func (m *Manager) Close() {
	m.textures.purge()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.roots = nil
	m.cache.Clear()
}

// fsPath converts an OS path into the slash-separated, unrooted form
// required by fs.FS.
func fsPath(name string) string {
	p := path.Clean(filepath.ToSlash(name))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return p
}

// Cache is a simple in-memory cache for loaded file contents.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
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

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
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
