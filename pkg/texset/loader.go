package texset

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/texset/pkg/formats"
	"github.com/Faultbox/texset/pkg/math"
)

// DefaultMapExt is the map file extension LoadDirectory looks for.
const DefaultMapExt = ".txt"

// Loader builds texture sets from its collaborators.
type Loader struct {
	Files    LineReader
	Textures TextureLoader
	Scale    ContentScale

	// Log receives informational messages. Nil discards them.
	Log *zap.Logger

	// MapExt overrides DefaultMapExt for LoadDirectory.
	MapExt string
}

func (l *Loader) check() error {
	switch {
	case l.Files == nil:
		return errors.New("texset: loader has no line reader")
	case l.Textures == nil:
		return errors.New("texset: loader has no texture loader")
	case l.Scale == nil:
		return errors.New("texset: loader has no content scale")
	}
	return nil
}

func (l *Loader) log() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

// LoadAtlases builds a set from atlas images and their map files. Map
// coordinates are divided by the hi-res content scale. Sprite names must be
// unique across all maps.
func (l *Loader) LoadAtlases(name string, pairs []AtlasPair) (*Set, error) {
	if err := l.check(); err != nil {
		return nil, err
	}

	b := l.newBuilder(name)
	for _, pair := range pairs {
		if err := b.addAtlas(pair); err != nil {
			b.abort()
			return nil, err
		}
	}
	return b.set, nil
}

// LoadImages builds a set with one sprite per image, named after the file
// without directory or extension. Sizes are divided by the current content
// scale.
func (l *Loader) LoadImages(name string, paths []string) (*Set, error) {
	if err := l.check(); err != nil {
		return nil, err
	}

	b := l.newBuilder(name)
	for _, path := range paths {
		if err := b.addImage(path); err != nil {
			b.abort()
			return nil, err
		}
	}
	return b.set, nil
}

// LoadManifest reads a list file and builds the set it describes. The set is
// named after the list file without directory or extension.
func (l *Loader) LoadManifest(path string) (*Set, error) {
	if err := l.check(); err != nil {
		return nil, err
	}

	lines, err := l.Files.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("%w: texture set list file %s: %w", ErrMissingResource, path, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: texture set list file %s is empty", ErrMissingResource, path)
	}

	dir := filepath.Dir(path)
	name := baseName(path)
	list := formats.ParseList(lines)

	if list.Atlases {
		pairs := make([]AtlasPair, 0, len(list.Paths))
		for _, p := range list.Paths {
			mapPath := filepath.Join(dir, p)
			pairs = append(pairs, AtlasPair{Image: formats.AtlasImagePath(mapPath), Map: mapPath})
		}
		l.log().Info("found atlas textures for texture set",
			zap.Int("count", len(pairs)),
			zap.String("list", path),
		)
		return l.LoadAtlases(name, pairs)
	}

	images := make([]string, 0, len(list.Paths))
	for _, p := range list.Paths {
		images = append(images, filepath.Join(dir, p))
	}
	l.log().Info("found textures for texture set",
		zap.Int("count", len(images)),
		zap.String("list", path),
	)
	return l.LoadImages(name, images)
}

// LoadDirectory builds an atlas set from every map file in dir, taken in
// lexical order. Each map file is paired with the image of the same name
// and a .png extension. The set is named after the directory.
func (l *Loader) LoadDirectory(dir string) (*Set, error) {
	if err := l.check(); err != nil {
		return nil, err
	}

	ext := l.MapExt
	if ext == "" {
		ext = DefaultMapExt
	}
	pattern := filepath.Join(dir, "*"+ext)

	var (
		maps []string
		err  error
	)
	if g, ok := l.Files.(Globber); ok {
		maps, err = g.Glob(pattern)
	} else {
		maps, err = filepath.Glob(pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", pattern, err)
	}
	sort.Strings(maps)

	pairs := make([]AtlasPair, 0, len(maps))
	for _, m := range maps {
		pairs = append(pairs, AtlasPair{Image: formats.AtlasImagePath(m), Map: m})
	}
	l.log().Info("found atlas textures in directory",
		zap.Int("count", len(pairs)),
		zap.String("dir", dir),
	)
	return l.LoadAtlases(filepath.Base(dir), pairs)
}

// builder accumulates one set. Names are checked against everything inserted
// so far, across all files of the set.
type builder struct {
	l       *Loader
	set     *Set
	origins map[string]string
	loaded  map[string]Texture
}

func (l *Loader) newBuilder(name string) *builder {
	return &builder{
		l: l,
		set: &Set{
			name:    name,
			entries: make(map[string]entry),
			loader:  l.Textures,
		},
		origins: make(map[string]string),
		loaded:  make(map[string]Texture),
	}
}

func (b *builder) addAtlas(pair AtlasPair) error {
	tex, err := b.texture(pair.Image)
	if err != nil {
		return err
	}

	divisor := b.l.Scale.HiResContentScale()
	lines, err := b.l.Files.ReadLines(pair.Map)
	if err != nil {
		return fmt.Errorf("%w: map file %s: %w", ErrMissingResource, pair.Map, err)
	}

	entries, err := formats.ParseMap(pair.Map, lines, divisor)
	if err != nil {
		return err
	}

	for _, e := range entries {
		origin := fmt.Sprintf("%s:%d", pair.Map, e.Line)
		if err := b.insert(e.Name, entry{texture: tex, area: e.Rect, scale: divisor}, origin); err != nil {
			return err
		}
	}

	b.l.log().Debug("atlas loaded",
		zap.String("image", pair.Image),
		zap.String("map", pair.Map),
		zap.Int("sprites", len(entries)),
	)
	return nil
}

func (b *builder) addImage(path string) error {
	divisor := b.l.Scale.CurrentContentScale()
	if !(divisor > 0) {
		return fmt.Errorf("%w: %v (image %s)", ErrInvalidScale, divisor, path)
	}

	tex, err := b.texture(path)
	if err != nil {
		return err
	}

	w, h := tex.PixelSize()
	area := math.Rect{W: float32(w), H: float32(h)}.Div(divisor)
	return b.insert(baseName(path), entry{texture: tex, area: area, scale: divisor}, path)
}

// texture loads path once per set; later pairs naming the same image share
// the handle.
func (b *builder) texture(path string) (Texture, error) {
	if tex, ok := b.loaded[path]; ok {
		return tex, nil
	}
	tex, err := b.l.Textures.LoadTexture(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureLoad, path, err)
	}
	b.loaded[path] = tex
	b.set.textures = append(b.set.textures, tex)
	return tex, nil
}

func (b *builder) insert(name string, e entry, origin string) error {
	if prev, ok := b.origins[name]; ok {
		return fmt.Errorf("%w: %q in %s, already defined in %s", ErrDuplicateName, name, origin, prev)
	}
	b.origins[name] = origin
	b.set.entries[name] = e
	return nil
}

// abort releases everything acquired so far.
func (b *builder) abort() {
	b.set.Close()
}

// baseName returns the file name of path without directory or extension.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
