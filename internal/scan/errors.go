package scan

import (
	"errors"
	"fmt"
)

// Errors shared by the header and value-change parsers.
var (
	ErrSyntax      = errors.New("invalid syntax")
	ErrUnknownCode = errors.New("unknown wire code")
	ErrMalformed   = errors.New("malformed file")
)

// LineError attaches a source line to an error raised while parsing it.
type LineError struct {
	Line int    // 1-based line number
	Text string // Offending line, as read
	Err  error  // Underlying error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// Wrap returns a LineError for the reader's current line.
func (lr *LineReader) Wrap(text string, err error) *LineError {
	return &LineError{Line: lr.line, Text: text, Err: err}
}
