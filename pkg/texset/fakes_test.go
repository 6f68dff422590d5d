package texset

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// fakeFiles serves text resources from memory. Keys use OS separators.
type fakeFiles map[string][]string

func (f fakeFiles) ReadLines(path string) ([]string, error) {
	lines, ok := f[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return lines, nil
}

func (f fakeFiles) Glob(pattern string) ([]string, error) {
	var out []string
	for name := range f {
		if ok, err := filepath.Match(pattern, name); err != nil {
			return nil, err
		} else if ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeTexture struct {
	path string
	w, h int
}

func (t *fakeTexture) PixelSize() (int, int) { return t.w, t.h }

// fakeTextures shares one texture per path and counts references.
type fakeTextures struct {
	sizes  map[string][2]int
	live   map[string]*fakeTexture
	refs   map[string]int
	loads  int
	failOn string
}

func newFakeTextures(sizes map[string][2]int) *fakeTextures {
	return &fakeTextures{
		sizes: sizes,
		live:  make(map[string]*fakeTexture),
		refs:  make(map[string]int),
	}
}

func (f *fakeTextures) LoadTexture(path string) (Texture, error) {
	if path == f.failOn {
		return nil, fmt.Errorf("corrupt image data")
	}
	size, ok := f.sizes[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	f.loads++
	tex, ok := f.live[path]
	if !ok {
		tex = &fakeTexture{path: path, w: size[0], h: size[1]}
		f.live[path] = tex
	}
	f.refs[path]++
	return tex, nil
}

func (f *fakeTextures) ReleaseTexture(t Texture) {
	path := t.(*fakeTexture).path
	f.refs[path]--
	if f.refs[path] == 0 {
		delete(f.refs, path)
		delete(f.live, path)
	}
}

func (f *fakeTextures) liveRefs() int {
	n := 0
	for _, r := range f.refs {
		n += r
	}
	return n
}

func p(parts ...string) string {
	return filepath.Join(parts...)
}

func mapLines(s string) []string {
	return strings.Split(s, "\n")
}
