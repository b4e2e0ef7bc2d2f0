package wave

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/skdltmxn/vcd-go/internal/scan"
)

// Warning records a data line that matched no known record shape.
type Warning struct {
	Line int
	Text string
}

// Config controls a data section parse.
type Config struct {
	// Codes maps wire codes to column indices in [0, Columns).
	Codes   map[string]int
	Columns int

	// Strict makes unrecognized lines fatal instead of warnings.
	Strict bool

	// Logger receives warnings and progress; nil disables logging.
	Logger *slog.Logger
}

// Result is the output of a data section parse.
type Result struct {
	Times    []int64  // every #timestamp, in file order
	Series   []Series // indexed by column
	Warnings []Warning
	Changes  int
}

type lineKind uint8

const (
	lineBlank lineKind = iota
	lineTimestamp
	lineScalar
	lineVector
	lineUnknown
)

// classify decides the record shape of a trimmed line from its first byte.
func classify(line string) lineKind {
	if line == "" {
		return lineBlank
	}
	switch line[0] {
	case '#':
		return lineTimestamp
	case 'b', 'B':
		return lineVector
	case '0', '1', 'x', 'X', 'z', 'Z':
		return lineScalar
	default:
		return lineUnknown
	}
}

// scalarValues avoids retaining the source line for one-character values.
var scalarValues = [256]string{
	'0': "0", '1': "1",
	'x': "x", 'X': "x",
	'z': "z", 'Z': "z",
}

type parser struct {
	cfg     Config
	lr      *scan.LineReader
	res     *Result
	current int64
	started bool
}

// Parse consumes the remaining lines of lr as value changes.
func Parse(lr *scan.LineReader, cfg Config) (*Result, error) {
	p := &parser{
		cfg: cfg,
		lr:  lr,
		res: &Result{Series: make([]Series, cfg.Columns)},
	}

	for {
		raw, err := lr.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := p.parseLine(raw); err != nil {
			return nil, err
		}
	}

	p.log(slog.LevelDebug, "data section parsed",
		slog.Int("timestamps", len(p.res.Times)),
		slog.Int("changes", p.res.Changes),
		slog.Int("warnings", len(p.res.Warnings)))
	return p.res, nil
}

func (p *parser) parseLine(raw string) error {
	line := strings.TrimSpace(raw)

	switch classify(line) {
	case lineBlank:
		return nil

	case lineTimestamp:
		t, err := strconv.ParseInt(line[1:], 10, 64)
		if err != nil || t < 0 {
			return p.lr.Wrap(raw, fmt.Errorf("%w: timestamp %q is not a non-negative integer", scan.ErrSyntax, line[1:]))
		}
		if p.started && t < p.current {
			return p.lr.Wrap(raw, fmt.Errorf("%w: timestamp %d precedes %d", scan.ErrMalformed, t, p.current))
		}
		p.current, p.started = t, true
		p.res.Times = append(p.res.Times, t)
		return nil

	case lineScalar:
		code := line[1:]
		if code == "" {
			return p.lr.Wrap(raw, fmt.Errorf("%w: scalar change without wire code", scan.ErrSyntax))
		}
		return p.record(raw, code, scalarValues[line[0]])

	case lineVector:
		t := scan.NewTokenizer(line)
		bits, _ := t.Next()
		code, ok := t.Next()
		if !ok {
			return p.lr.Wrap(raw, fmt.Errorf("%w: vector change without wire code", scan.ErrSyntax))
		}
		value, err := BinToHex(bits[1:])
		if err != nil {
			return p.lr.Wrap(raw, err)
		}
		return p.record(raw, code, value)
	}

	if p.cfg.Strict {
		return p.lr.Wrap(raw, fmt.Errorf("%w: unrecognized data line", scan.ErrSyntax))
	}
	p.res.Warnings = append(p.res.Warnings, Warning{Line: p.lr.Line(), Text: raw})
	p.log(slog.LevelWarn, "unrecognized data line",
		slog.Int("line", p.lr.Line()),
		slog.String("text", raw))
	return nil
}

// record appends value to the series owning code at the current timestamp.
func (p *parser) record(raw, code, value string) error {
	if !p.started {
		return p.lr.Wrap(raw, fmt.Errorf("%w: value change before first timestamp", scan.ErrMalformed))
	}
	col, ok := p.cfg.Codes[code]
	if !ok {
		return p.lr.Wrap(raw, fmt.Errorf("%w %q", scan.ErrUnknownCode, code))
	}
	p.res.Series[col] = append(p.res.Series[col], Change{Time: p.current, Value: value})
	p.res.Changes++
	return nil
}

func (p *parser) log(level slog.Level, msg string, attrs ...slog.Attr) {
	if p.cfg.Logger == nil {
		return
	}
	p.cfg.Logger.LogAttrs(context.Background(), level, msg, attrs...)
}
