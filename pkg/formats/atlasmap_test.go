package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/texset/pkg/math"
)

func TestParseMap_Basic(t *testing.T) {
	lines := []string{
		"hero = 0 0 64 64",
		"",
		"enemy=64 0 32 48",
		"  door   =   10 20 30 40  ",
	}

	entries, err := ParseMap("ui.txt", lines, 1)
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	want := []MapEntry{
		{Line: 1, Name: "hero", Rect: math.Rect{X: 0, Y: 0, W: 64, H: 64}},
		{Line: 3, Name: "enemy", Rect: math.Rect{X: 64, Y: 0, W: 32, H: 48}},
		{Line: 4, Name: "door", Rect: math.Rect{X: 10, Y: 20, W: 30, H: 40}},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseMap_Divisor(t *testing.T) {
	tests := []struct {
		line    string
		divisor float32
		want    math.Rect
	}{
		{"a = 10 20 30 40", 2, math.Rect{X: 5, Y: 10, W: 15, H: 20}},
		{"a = 3 5 7 9", 2, math.Rect{X: 1.5, Y: 2.5, W: 3.5, H: 4.5}},
		{"a = 100 200 300 400", 4, math.Rect{X: 25, Y: 50, W: 75, H: 100}},
		{"a = -8 -4 16 8", 1, math.Rect{X: -8, Y: -4, W: 16, H: 8}},
		{"a = 1 2 3 4", 0.5, math.Rect{X: 2, Y: 4, W: 6, H: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			entries, err := ParseMap("m.txt", []string{tt.line}, tt.divisor)
			if err != nil {
				t.Fatalf("ParseMap: %v", err)
			}
			if entries[0].Rect != tt.want {
				t.Errorf("got %+v, want %+v", entries[0].Rect, tt.want)
			}
		})
	}
}

func TestParseMap_Errors(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		wantErr error
		line    int
	}{
		{"three rect tokens", []string{"a=1 2 3"}, ErrMalformedLine, 1},
		{"five rect tokens", []string{"a = 1 2 3 4 5"}, ErrMalformedLine, 1},
		{"non numeric", []string{"ok = 1 2 3 4", "a = 1 2 three 4"}, ErrInvalidNumber, 2},
		{"float value", []string{"a = 1 2 3.5 4"}, ErrInvalidNumber, 1},
		{"missing equals", []string{"a 1 2 3 4"}, ErrMalformedLine, 1},
		{"two equals", []string{"a = b = 1 2 3 4"}, ErrMalformedLine, 1},
		{"empty rect", []string{"a ="}, ErrMalformedLine, 1},
		{"tab separated", []string{"a = 1\t2 3 4"}, ErrMalformedLine, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap("bad.txt", tt.lines, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("expected *LineError, got %T", err)
			}
			if lineErr.File != "bad.txt" {
				t.Errorf("File = %q, want bad.txt", lineErr.File)
			}
			if lineErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", lineErr.Line, tt.line)
			}
			if lineErr.Text != tt.lines[tt.line-1] {
				t.Errorf("Text = %q, want %q", lineErr.Text, tt.lines[tt.line-1])
			}
			if !strings.Contains(err.Error(), "bad.txt") {
				t.Errorf("error %q should name the file", err)
			}
		})
	}
}

func TestParseMap_Empty(t *testing.T) {
	_, err := ParseMap("empty.txt", nil, 1)
	if !errors.Is(err, ErrMissingResource) {
		t.Errorf("expected ErrMissingResource, got %v", err)
	}
}

func TestParseMap_OnlyBlankLines(t *testing.T) {
	entries, err := ParseMap("blank.txt", []string{"", "   "}, 1)
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestParseMap_InvalidDivisor(t *testing.T) {
	for _, d := range []float32{0, -1} {
		_, err := ParseMap("m.txt", []string{"a = 1 2 3 4"}, d)
		if !errors.Is(err, ErrInvalidScale) {
			t.Errorf("divisor %v: expected ErrInvalidScale, got %v", d, err)
		}
	}
}

func TestParseMap_KeepsDuplicates(t *testing.T) {
	entries, err := ParseMap("dup.txt", []string{"a = 0 0 1 1", "a = 1 1 1 1"}, 1)
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected both entries, got %d", len(entries))
	}
}
