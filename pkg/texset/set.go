package texset

import (
	"sort"

	"github.com/Faultbox/texset/pkg/math"
)

// Set is a constructed texture set. It is immutable and safe for concurrent
// lookups until Close is called.
type Set struct {
	name     string
	entries  map[string]entry
	textures []Texture
	loader   TextureLoader
}

type entry struct {
	texture Texture
	area    math.Rect
	scale   float32
}

// Reference describes one sprite of a Set. It does not own the texture and
// must not be used after the Set is closed.
type Reference struct {
	SetName string
	Name    string
	Texture Texture
	Area    math.Rect // content-scaled units
	Scale   float32   // divisor that produced Area from pixels
}

// PixelArea returns Area in the texture's pixel units.
func (r Reference) PixelArea() math.Rect {
	return r.Area.Mul(r.Scale)
}

// Name returns the set name.
func (s *Set) Name() string {
	return s.name
}

// Len returns the number of sprites.
func (s *Set) Len() int {
	return len(s.entries)
}

// Lookup returns the sprite called name. A miss is not an error.
func (s *Set) Lookup(name string) (Reference, bool) {
	e, ok := s.entries[name]
	if !ok {
		return Reference{}, false
	}
	return Reference{
		SetName: s.name,
		Name:    name,
		Texture: e.texture,
		Area:    e.area,
		Scale:   e.scale,
	}, true
}

// Names returns the sprite names in lexical order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Textures returns the distinct textures of the set in load order.
func (s *Set) Textures() []Texture {
	return append([]Texture(nil), s.textures...)
}

// Close releases the set's textures. Lookups miss afterwards.
func (s *Set) Close() {
	if s.loader != nil {
		for _, t := range s.textures {
			s.loader.ReleaseTexture(t)
		}
	}
	s.entries = nil
	s.textures = nil
	s.loader = nil
}
