package scan

import (
	"bufio"
	"io"
	"strings"
)

// LineReader reads newline-terminated lines and tracks the current line number.
// Line terminators (\n or \r\n) are stripped from the returned text.
type LineReader struct {
	r    *bufio.Reader
	line int
}

// NewLineReader wraps r for line-oriented reading.
func NewLineReader(r io.Reader) *LineReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &LineReader{r: br}
	}
	return &LineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Line returns the 1-based number of the most recently read line.
func (lr *LineReader) Line() int {
	return lr.line
}

// ReadLine returns the next line. It returns io.EOF once the input is exhausted.
// A final line without a terminator is returned with a nil error.
func (lr *LineReader) ReadLine() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil {
		if err != io.EOF || s == "" {
			return "", err
		}
	}
	lr.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}
