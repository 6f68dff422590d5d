package assets

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/texset/internal/engine/texture"
	"github.com/Faultbox/texset/internal/logger"
	"github.com/Faultbox/texset/pkg/texset"
)

// Uploader moves decoded textures to and from the GPU.
type Uploader interface {
	Upload(t *texture.Texture) error
	Unload(t *texture.Texture)
}

// TextureCache shares decoded textures by path. Every Acquire must be
// matched by one Release; the texture is dropped (and unloaded from the GPU)
// when the last reference goes away.
type TextureCache struct {
	m          *Manager
	entries    map[string]*textureEntry
	uploader   Uploader
	magentaKey bool
	mu         sync.Mutex
}

type textureEntry struct {
	tex  *texture.Texture
	refs int
}

func newTextureCache(m *Manager) *TextureCache {
	return &TextureCache{
		m:       m,
		entries: make(map[string]*textureEntry),
	}
}

// Acquire returns the texture at path, loading and decoding it on first use.
func (c *TextureCache) Acquire(path string) (*texture.Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok {
		e.refs++
		return e.tex, nil
	}

	data, err := c.m.Load(path)
	if err != nil {
		return nil, err
	}
	// Decoded pixels replace the raw bytes.
	c.m.cache.Delete(path)

	img, err := texture.Decode(path, data, c.magentaKey)
	if err != nil {
		return nil, err
	}
	tex := texture.New(path, img)

	if c.uploader != nil {
		if err := c.uploader.Upload(tex); err != nil {
			return nil, fmt.Errorf("uploading %s: %w", path, err)
		}
	}

	c.entries[path] = &textureEntry{tex: tex, refs: 1}
	logger.Named(logger.CategoryAssets).Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
		zap.Uint32("id", tex.ID),
	)
	return tex, nil
}

// Release drops one reference to tex.
func (c *TextureCache) Release(tex *texture.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[tex.Path]
	if !ok || e.tex != tex {
		return
	}
	e.refs--
	if e.refs > 0 {
		return
	}
	delete(c.entries, tex.Path)
	c.unload(tex)
}

// Refs returns the number of live references to the texture at path.
func (c *TextureCache) Refs(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[path]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TextureCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, e := range c.entries {
		c.unload(e.tex)
		delete(c.entries, path)
	}
}

func (c *TextureCache) unload(tex *texture.Texture) {
	if c.uploader != nil {
		c.uploader.Unload(tex)
	}
	logger.Named(logger.CategoryAssets).Debug("texture released", zap.String("path", tex.Path))
}

// LoadTexture acquires a shared texture. It makes Manager a texset.TextureLoader.
func (m *Manager) LoadTexture(path string) (texset.Texture, error) {
	tex, err := m.textures.Acquire(path)
	if err != nil {
		return nil, err
	}
	return tex, nil
}

// ReleaseTexture releases a texture obtained from LoadTexture.
func (m *Manager) ReleaseTexture(t texset.Texture) {
	if tex, ok := t.(*texture.Texture); ok {
		m.textures.Release(tex)
	}
}
