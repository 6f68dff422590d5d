// Package encoding decodes text resources written in legacy charsets.
//
// Texture set list and map files produced by older tools are often saved as
// EUC-KR or Windows code pages rather than UTF-8. A charset is chosen by name
// ("euc-kr", "windows-1252", "shift_jis", ...); the empty name means UTF-8.
package encoding

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Lookup returns the encoding registered under name. Names are matched
// case-insensitively against the WHATWG encoding labels.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "euc-kr", "euckr", "cp949":
		return korean.EUCKR, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", name, err)
	}
	return enc, nil
}

// Decode converts data in the given encoding to a UTF-8 string.
// A leading UTF-8 or UTF-16 byte order mark overrides enc.
func Decode(enc encoding.Encoding, data []byte) (string, error) {
	if enc == nil {
		enc = unicode.UTF8
	}
	decoder := unicode.BOMOverride(enc.NewDecoder())
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// Encode converts a UTF-8 string to the given encoding.
func Encode(enc encoding.Encoding, s string) ([]byte, error) {
	if enc == nil {
		return []byte(s), nil
	}
	result, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, err
	}
	return result, nil
}
