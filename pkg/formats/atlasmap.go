package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/texset/pkg/math"
)

// MapEntry is one named rectangle read from an atlas map file.
type MapEntry struct {
	Line int // 1-based line number the entry came from
	Name string
	Rect math.Rect
}

// ParseMap parses the lines of an atlas map file. Each non-blank line has the
// form "<name> = <x> <y> <w> <h>" with integer pixel values; every value is
// divided by divisor before it is stored. Entries are returned in file order.
//
// Duplicate names are not rejected here: uniqueness spans every map file of a
// texture set and is enforced by whoever collects the entries.
func ParseMap(file string, lines []string, divisor float32) ([]MapEntry, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: map file %s", ErrMissingResource, file)
	}
	if !(divisor > 0) {
		return nil, fmt.Errorf("%w: %v (map file %s)", ErrInvalidScale, divisor, file)
	}

	entries := make([]MapEntry, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := parseMapLine(line, divisor)
		if err != nil {
			return nil, &LineError{File: file, Line: i + 1, Text: line, Err: err}
		}
		entry.Line = i + 1
		entries = append(entries, entry)
	}

	return entries, nil
}

func parseMapLine(line string, divisor float32) (MapEntry, error) {
	tokens := tokenize(line, '=')
	if len(tokens) != 2 {
		return MapEntry{}, ErrMalformedLine
	}
	name := strings.TrimSpace(tokens[0])
	rectSpec := strings.TrimSpace(tokens[1])

	parts := tokenize(rectSpec, ' ')
	if len(parts) != 4 {
		return MapEntry{}, ErrMalformedLine
	}

	var v [4]float32
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return MapEntry{}, ErrInvalidNumber
		}
		v[i] = float32(n)
	}

	rect := math.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}
	return MapEntry{Name: name, Rect: rect.Div(divisor)}, nil
}

// tokenize splits s at every sep and drops empty tokens.
func tokenize(s string, sep rune) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == sep })
}
