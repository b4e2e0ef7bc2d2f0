// Package scan provides line and field scanning utilities for VCD parsing.
package scan

// Tokenizer splits a single line into whitespace-delimited fields.
// Fields are returned as substrings of the original line, so no copies are made.
type Tokenizer struct {
	line   string
	offset int
}

// NewTokenizer creates a Tokenizer positioned at the start of line.
func NewTokenizer(line string) *Tokenizer {
	t := &Tokenizer{line: line}
	t.skipSpace()
	return t
}

// Offset returns the current cursor position within the line.
func (t *Tokenizer) Offset() int {
	return t.offset
}

// More reports whether another field is available.
func (t *Tokenizer) More() bool {
	return t.offset < len(t.line)
}

// Next returns the next field and advances past any delimiters following it.
// It returns "", false once only whitespace remains.
func (t *Tokenizer) Next() (string, bool) {
	if !t.More() {
		return "", false
	}
	start := t.offset
	for t.offset < len(t.line) && !isSpace(t.line[t.offset]) {
		t.offset++
	}
	field := t.line[start:t.offset]
	t.skipSpace()
	return field, true
}

// Rest returns the unread remainder of the line without advancing.
func (t *Tokenizer) Rest() string {
	return t.line[t.offset:]
}

func (t *Tokenizer) skipSpace() {
	for t.offset < len(t.line) && isSpace(t.line[t.offset]) {
		t.offset++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

// Fields appends every field of line to dst and returns the extended slice.
func Fields(dst []string, line string) []string {
	t := NewTokenizer(line)
	for {
		f, ok := t.Next()
		if !ok {
			return dst
		}
		dst = append(dst, f)
	}
}
