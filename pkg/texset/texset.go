// Package texset builds texture sets: immutable registries mapping sprite
// names to rectangles inside shared textures.
//
// A texture set comes either from atlases, where each atlas image has a map
// file naming the rectangles it contains, or from standalone images, where
// each image is one sprite named after its file. Construction is all or
// nothing: the first malformed line, missing file, undecodable image or
// duplicate sprite name aborts the build and no set is returned.
//
// Map file lines have the form
//
//	<name> = <x> <y> <w> <h>
//
// with integer pixel values. A list file either starts with "atlases:" and
// names one map file per line, or names one image per line. Paths in a list
// file are relative to the list file's directory.
package texset

import (
	"errors"

	"github.com/Faultbox/texset/pkg/formats"
)

// Construction errors. Line-level failures are reported as
// *formats.LineError wrapping one of these.
var (
	ErrMissingResource = formats.ErrMissingResource
	ErrMalformedLine   = formats.ErrMalformedLine
	ErrInvalidNumber   = formats.ErrInvalidNumber
	ErrInvalidScale    = formats.ErrInvalidScale
	ErrDuplicateName   = errors.New("duplicate sprite name")
	ErrTextureLoad     = errors.New("texture load failed")
)

// Texture is an opaque image resource shared by the entries that reference it.
type Texture interface {
	PixelSize() (width, height int)
}

// TextureLoader loads textures by path. Loaders are expected to share a
// texture between callers that load the same path; every successful
// LoadTexture is matched by exactly one ReleaseTexture.
type TextureLoader interface {
	LoadTexture(path string) (Texture, error)
	ReleaseTexture(t Texture)
}

// LineReader reads a text resource as an ordered sequence of lines.
type LineReader interface {
	ReadLines(path string) ([]string, error)
}

// Globber is implemented by line readers that can enumerate files. It is
// used by Loader.LoadDirectory; without it the OS file system is globbed.
type Globber interface {
	Glob(pattern string) ([]string, error)
}

// ContentScale provides the divisors applied to pixel coordinates: the hi-res
// scale for atlas maps and the current scale for standalone images.
type ContentScale interface {
	HiResContentScale() float32
	CurrentContentScale() float32
}

// FixedScale is a ContentScale with constant divisors.
type FixedScale struct {
	HiRes   float32
	Current float32
}

// HiResContentScale implements ContentScale.
func (s FixedScale) HiResContentScale() float32 { return s.HiRes }

// CurrentContentScale implements ContentScale.
func (s FixedScale) CurrentContentScale() float32 { return s.Current }

// AtlasPair names an atlas image and the map file describing it.
type AtlasPair struct {
	Image string
	Map   string
}
