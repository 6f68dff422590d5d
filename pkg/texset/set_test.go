package texset

import (
	"testing"

	"github.com/Faultbox/texset/pkg/math"
)

func TestLookupMissing(t *testing.T) {
	empty := &Set{entries: map[string]entry{}}
	if _, ok := empty.Lookup("missing"); ok {
		t.Error("Lookup on empty set should miss")
	}

	l := newLoader(fakeFiles{"a.txt": {"a = 0 0 1 1"}}, newFakeTextures(map[string][2]int{"a.png": {1, 1}}), 1, 1)
	set, err := l.LoadAtlases("s", []AtlasPair{{Image: "a.png", Map: "a.txt"}})
	if err != nil {
		t.Fatalf("LoadAtlases: %v", err)
	}
	if _, ok := set.Lookup("missing"); ok {
		t.Error("Lookup of unknown name should miss")
	}
	if _, ok := set.Lookup("a"); !ok {
		t.Error("Lookup of known name should hit")
	}
}

func TestSetClose(t *testing.T) {
	textures := newFakeTextures(map[string][2]int{"a.png": {8, 8}, "b.png": {8, 8}})
	l := newLoader(fakeFiles{}, textures, 1, 1)

	set, err := l.LoadImages("s", []string{"a.png", "b.png"})
	if err != nil {
		t.Fatalf("LoadImages: %v", err)
	}
	if textures.liveRefs() != 2 {
		t.Fatalf("expected 2 refs, got %d", textures.liveRefs())
	}

	set.Close()
	if textures.liveRefs() != 0 {
		t.Errorf("expected 0 refs after Close, got %d", textures.liveRefs())
	}
	if _, ok := set.Lookup("a"); ok {
		t.Error("Lookup after Close should miss")
	}
	if set.Len() != 0 {
		t.Errorf("Len after Close: got %d", set.Len())
	}

	// Closing twice releases nothing more.
	set.Close()
	if textures.liveRefs() != 0 {
		t.Errorf("expected 0 refs after second Close, got %d", textures.liveRefs())
	}
}

func TestSetsShareTextures(t *testing.T) {
	textures := newFakeTextures(map[string][2]int{"a.png": {8, 8}})
	l := newLoader(fakeFiles{}, textures, 1, 1)

	first, err := l.LoadImages("first", []string{"a.png"})
	if err != nil {
		t.Fatalf("LoadImages: %v", err)
	}
	second, err := l.LoadImages("second", []string{"a.png"})
	if err != nil {
		t.Fatalf("LoadImages: %v", err)
	}

	first.Close()
	ref, ok := second.Lookup("a")
	if !ok {
		t.Fatal("second set lost its sprite")
	}
	if textures.refs["a.png"] != 1 {
		t.Errorf("expected 1 ref held by second set, got %d", textures.refs["a.png"])
	}
	if ref.Area != (math.Rect{W: 8, H: 8}) {
		t.Errorf("area: got %+v", ref.Area)
	}
	second.Close()
}

func TestTexturesReturnsCopy(t *testing.T) {
	l := newLoader(fakeFiles{}, newFakeTextures(map[string][2]int{"a.png": {1, 1}}), 1, 1)
	set, err := l.LoadImages("s", []string{"a.png"})
	if err != nil {
		t.Fatalf("LoadImages: %v", err)
	}

	texs := set.Textures()
	texs[0] = nil
	if set.Textures()[0] == nil {
		t.Error("Textures should return a copy")
	}
}
