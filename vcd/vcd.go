package vcd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/skdltmxn/vcd-go/internal/header"
	"github.com/skdltmxn/vcd-go/internal/scan"
	"github.com/skdltmxn/vcd-go/internal/wave"
)

// DefaultDelimiter separates scope segments in qualified signal names.
const DefaultDelimiter = header.DefaultDelimiter

// File is a fully parsed VCD trace.
//
// A File is immutable once Open or Parse returns, and every query returns
// data owned by the caller, so it is safe for concurrent use.
type File struct {
	path       string
	directives map[string]string

	signals []Signal       // one per column, in declaration order
	columns map[string]int // qualified name -> column
	series  []wave.Series  // indexed by column
	times   []int64

	warnings []Warning
	stats    Stats
}

// Signal describes one column of the trace.
type Signal struct {
	Name  string   // Fully qualified name
	Code  string   // Wire code from the $var declaration
	Type  string   // wire, reg, integer, ...
	Width int      // Declared bit width
	Range string   // Optional declared bit range
	Scope []string // Enclosing scope path
}

// Warning is a data line that was skipped because it matched no known record.
type Warning struct {
	Line int
	Text string
}

// Stats summarizes a parse.
type Stats struct {
	Signals    int
	Timestamps int
	Changes    int
	Warnings   int
	Duration   time.Duration
}

// Option configures Open and Parse.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	delimiter string
	strict    bool
}

// WithLogger routes parse diagnostics to logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDelimiter sets the separator used to join scope names. The default is ".".
func WithDelimiter(delim string) Option {
	return func(o *options) { o.delimiter = delim }
}

// WithStrict makes unrecognized data lines fail the parse instead of being
// skipped with a warning.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// Open parses the VCD file at path. The file is closed before Open returns.
func Open(path string, opts ...Option) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer fh.Close()

	f, err := Parse(fh, opts...)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// Parse reads a complete VCD trace from r.
// The header is resolved in full before any value change is decoded.
func Parse(r io.Reader, opts ...Option) (*File, error) {
	o := options{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	lr := scan.NewLineReader(r)

	hdr, err := header.Parse(lr, o.delimiter)
	if err != nil {
		return nil, newParseError("header", err)
	}

	f := &File{
		directives: hdr.Directives,
		columns:    make(map[string]int),
	}
	codes := f.buildColumns(hdr)
	logAttrs(o.logger, slog.LevelDebug, "header parsed",
		slog.Int("declarations", len(hdr.Vars)),
		slog.Int("signals", len(f.signals)))

	res, err := wave.Parse(lr, wave.Config{
		Codes:   codes,
		Columns: len(f.signals),
		Strict:  o.strict,
		Logger:  o.logger,
	})
	if err != nil {
		return nil, newParseError("data", err)
	}

	f.series = res.Series
	f.times = res.Times
	f.warnings = make([]Warning, len(res.Warnings))
	for i, w := range res.Warnings {
		f.warnings[i] = Warning{Line: w.Line, Text: w.Text}
	}

	f.stats = Stats{
		Signals:    len(f.signals),
		Timestamps: len(f.times),
		Changes:    res.Changes,
		Warnings:   len(f.warnings),
		Duration:   time.Since(start),
	}
	return f, nil
}

// buildColumns derives one column per distinct qualified name from the
// surviving declarations and returns the wire code to column mapping.
func (f *File) buildColumns(hdr *header.Header) map[string]int {
	codes := make(map[string]int, len(hdr.Codes))
	for i, v := range hdr.Vars {
		if hdr.Codes[v.Code] != i {
			continue // shadowed by a later declaration of the same code
		}
		col, ok := f.columns[v.Name]
		if !ok {
			col = len(f.signals)
			f.columns[v.Name] = col
			f.signals = append(f.signals, Signal{
				Name:  v.Name,
				Code:  v.Code,
				Type:  v.Type,
				Width: v.Width,
				Range: v.Range,
				Scope: v.Scope,
			})
		}
		codes[v.Code] = col
	}
	return codes
}

func logAttrs(logger *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Path returns the path given to Open, or "" for traces read with Parse.
func (f *File) Path() string {
	return f.path
}

// Header returns the $date, $version and $timescale bodies, keyed without
// the leading '$'.
func (f *File) Header() map[string]string {
	return maps.Clone(f.directives)
}

// Signals returns metadata for every column, in column order.
func (f *File) Signals() []Signal {
	out := make([]Signal, len(f.signals))
	for i, s := range f.signals {
		s.Scope = slices.Clone(s.Scope)
		out[i] = s
	}
	return out
}

// Signal returns metadata for the named signal.
func (f *File) Signal(name string) (Signal, error) {
	col, ok := f.columns[name]
	if !ok {
		return Signal{}, fmt.Errorf("%w: %s", ErrSignalNotFound, name)
	}
	s := f.signals[col]
	s.Scope = slices.Clone(s.Scope)
	return s, nil
}

// Warnings returns the data lines skipped during parsing.
func (f *File) Warnings() []Warning {
	return slices.Clone(f.warnings)
}

// Stats returns a summary of the parse.
func (f *File) Stats() Stats {
	return f.stats
}
