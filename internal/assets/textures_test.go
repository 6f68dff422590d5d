package assets

import (
	"errors"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/Faultbox/texset/internal/engine/texture"
	"github.com/Faultbox/texset/pkg/math"
	"github.com/Faultbox/texset/pkg/texset"
)

type fakeUploader struct {
	next     uint32
	uploaded map[uint32]string
	fail     bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[uint32]string)}
}

func (u *fakeUploader) Upload(t *texture.Texture) error {
	if u.fail {
		return errors.New("no GL context")
	}
	u.next++
	t.ID = u.next
	u.uploaded[t.ID] = t.Path
	return nil
}

func (u *fakeUploader) Unload(t *texture.Texture) {
	delete(u.uploaded, t.ID)
	t.ID = 0
}

func TestTextureSharing(t *testing.T) {
	m := newTestManager(t)
	m.AddFS("base", fstest.MapFS{
		"a.png": {Data: pngBytes(t, 4, 2, color.RGBA{R: 255, A: 255})},
	})

	first, err := m.LoadTexture("a.png")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	second, err := m.LoadTexture("a.png")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if first != second {
		t.Error("same path should share one texture")
	}
	if w, h := first.PixelSize(); w != 4 || h != 2 {
		t.Errorf("PixelSize = %dx%d, want 4x2", w, h)
	}

	cache := m.Textures()
	if cache.Refs("a.png") != 2 {
		t.Errorf("Refs = %d, want 2", cache.Refs("a.png"))
	}

	m.ReleaseTexture(first)
	if cache.Refs("a.png") != 1 || cache.Len() != 1 {
		t.Errorf("after one release: refs %d, len %d", cache.Refs("a.png"), cache.Len())
	}
	m.ReleaseTexture(second)
	if cache.Len() != 0 {
		t.Errorf("after last release: len %d", cache.Len())
	}
}

func TestTextureUploader(t *testing.T) {
	u := newFakeUploader()
	m := newTestManager(t, WithUploader(u))
	m.AddFS("base", fstest.MapFS{
		"a.png": {Data: pngBytes(t, 2, 2, color.RGBA{G: 255, A: 255})},
		"b.png": {Data: pngBytes(t, 2, 2, color.RGBA{B: 255, A: 255})},
	})

	a, err := m.LoadTexture("a.png")
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if _, err := m.LoadTexture("a.png"); err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if _, err := m.LoadTexture("b.png"); err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if len(u.uploaded) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(u.uploaded))
	}
	if a.(*texture.Texture).ID == 0 {
		t.Error("uploaded texture should carry its GPU id")
	}

	m.ReleaseTexture(a)
	if len(u.uploaded) != 2 {
		t.Error("texture with live references must stay uploaded")
	}
	m.ReleaseTexture(a)
	if len(u.uploaded) != 1 {
		t.Errorf("expected 1 upload left, got %d", len(u.uploaded))
	}

	m.Close()
	if len(u.uploaded) != 0 {
		t.Errorf("Close should unload everything, %d left", len(u.uploaded))
	}
}

func TestTextureUploadFailure(t *testing.T) {
	u := newFakeUploader()
	u.fail = true
	m := newTestManager(t, WithUploader(u))
	m.AddFS("base", fstest.MapFS{"a.png": {Data: pngBytes(t, 1, 1, color.RGBA{A: 255})}})

	if _, err := m.LoadTexture("a.png"); err == nil {
		t.Fatal("expected upload error")
	}
	if m.Textures().Len() != 0 {
		t.Error("failed texture should not be cached")
	}
}

func TestTextureDecodeFailure(t *testing.T) {
	m := newTestManager(t)
	m.AddFS("base", fstest.MapFS{"bad.png": {Data: []byte("not an image")}})

	if _, err := m.LoadTexture("bad.png"); err == nil {
		t.Error("expected decode error")
	}
}

func TestTextureMagentaKey(t *testing.T) {
	m := newTestManager(t, WithMagentaKey(true))
	m.AddFS("base", fstest.MapFS{
		"key.png": {Data: pngBytes(t, 1, 1, color.RGBA{R: 255, B: 255, A: 255})},
	})

	tex, err := m.Textures().Acquire("key.png")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got := tex.Image.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("magenta pixel = %v, want transparent", got)
	}
}

func TestManagerBuildsTextureSet(t *testing.T) {
	m := newTestManager(t)
	m.AddFS("base", fstest.MapFS{
		"sprites/hud.lst": {Data: []byte("atlases:\r\nhud.txt\r\n")},
		"sprites/hud.txt": {Data: []byte("heart = 0 0 16 16\r\nstar = 16 0 16 16\r\n")},
		"sprites/hud.png": {Data: pngBytes(t, 32, 16, color.RGBA{A: 255})},
	})

	l := &texset.Loader{
		Files:    m,
		Textures: m,
		Scale:    texset.FixedScale{HiRes: 2, Current: 1},
	}
	set, err := l.LoadManifest("sprites/hud.lst")
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	star, ok := set.Lookup("star")
	if !ok {
		t.Fatal("Lookup(star) missed")
	}
	if star.Area != (math.Rect{X: 8, Y: 0, W: 8, H: 8}) {
		t.Errorf("star area = %+v", star.Area)
	}
	if m.Textures().Refs("sprites/hud.png") != 1 {
		t.Errorf("expected the set to hold one reference")
	}

	set.Close()
	if m.Textures().Len() != 0 {
		t.Error("closing the set should release its texture")
	}
}

func TestManagerLoadDirectory(t *testing.T) {
	m := newTestManager(t)
	m.AddFS("base", fstest.MapFS{
		"atlas/a.txt": {Data: []byte("one = 0 0 1 1")},
		"atlas/a.png": {Data: pngBytes(t, 1, 1, color.RGBA{A: 255})},
	})

	l := &texset.Loader{Files: m, Textures: m, Scale: texset.FixedScale{HiRes: 1, Current: 1}}
	set, err := l.LoadDirectory("atlas")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	defer set.Close()

	if set.Name() != "atlas" || set.Len() != 1 {
		t.Errorf("got set %q with %d sprites", set.Name(), set.Len())
	}
}
