// Package formats provides parsers for the texture set text formats: atlas
// map files and texture set list files.
package formats

import (
	"errors"
	"fmt"
)

// Format errors.
var (
	ErrMissingResource = errors.New("missing or empty resource")
	ErrMalformedLine   = errors.New("malformed line")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrInvalidScale    = errors.New("invalid content scale")
)

// LineError reports a problem with one line of a text resource.
type LineError struct {
	File string // resource the line was read from
	Line int    // 1-based line number
	Text string // offending line as read
	Err  error  // one of the format errors above
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v in %s, line %d: %q", e.Err, e.File, e.Line, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
