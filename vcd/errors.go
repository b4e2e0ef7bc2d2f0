// Package vcd provides parsing and querying of Value Change Dump files.
package vcd

import (
	"errors"
	"fmt"

	"github.com/skdltmxn/vcd-go/internal/scan"
)

// Sentinel errors for common conditions.
var (
	// ErrOpen indicates the input file could not be opened.
	ErrOpen = errors.New("vcd: cannot open file")

	// ErrSyntax indicates a malformed timestamp, value or declaration.
	ErrSyntax = scan.ErrSyntax

	// ErrUnknownCode indicates a value change references an undeclared wire code.
	ErrUnknownCode = scan.ErrUnknownCode

	// ErrMalformed indicates a structural problem such as unbalanced scopes,
	// a missing $enddefinitions, or a value change before the first timestamp.
	ErrMalformed = scan.ErrMalformed

	// ErrSignalNotFound indicates a query named a signal that was never declared.
	ErrSignalNotFound = errors.New("vcd: signal not found")
)

// ParseError provides detailed information about parsing failures.
type ParseError struct {
	Section string // "header" or "data"
	Line    int    // 1-based line number
	Text    string // Offending line
	Err     error  // Underlying error
}

func (e *ParseError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("vcd: parse error in %s at line %d: %v: %q",
			e.Section, e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("vcd: parse error in %s at line %d: %v",
		e.Section, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(section string, err error) error {
	var lineErr *scan.LineError
	if errors.As(err, &lineErr) {
		return &ParseError{
			Section: section,
			Line:    lineErr.Line,
			Text:    lineErr.Text,
			Err:     lineErr.Err,
		}
	}
	return fmt.Errorf("vcd: failed to read %s: %w", section, err)
}
