// Package header parses the declaration section of a VCD file.
package header

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/skdltmxn/vcd-go/internal/scan"
)

// DefaultDelimiter joins scope segments and variable names.
const DefaultDelimiter = "."

// Var is a single $var declaration.
type Var struct {
	Code      string   // Wire code used in the data section
	Name      string   // Fully qualified name
	Reference string   // Name as declared, without scope
	Type      string   // wire, reg, integer, ...
	Width     int      // Declared bit width
	Range     string   // Optional bit range, e.g. [3:0]
	Scope     []string // Enclosing scope path
}

// Header is the parsed declaration section.
type Header struct {
	// Vars holds every declaration in file order, including shadowed aliases.
	Vars []Var

	// Codes maps each wire code to the index in Vars of its last declaration.
	Codes map[string]int

	// Directives holds the bodies of $date, $version and $timescale.
	Directives map[string]string
}

// Resolve returns the declaration that owns code.
func (h *Header) Resolve(code string) (Var, bool) {
	i, ok := h.Codes[code]
	if !ok {
		return Var{}, false
	}
	return h.Vars[i], true
}

// Parse reads declarations up to and including $enddefinitions.
// On success lr is positioned at the first line of the data section.
func Parse(lr *scan.LineReader, delim string) (*Header, error) {
	if delim == "" {
		delim = DefaultDelimiter
	}

	h := &Header{
		Codes:      make(map[string]int),
		Directives: make(map[string]string),
	}

	var (
		scope     []string
		directive string // keyword whose body spans several lines
		body      []string
	)

	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return nil, lr.Wrap("", fmt.Errorf("%w: missing $enddefinitions", scan.ErrMalformed))
		}
		if err != nil {
			return nil, err
		}

		if directive != "" {
			text, done := strings.CutSuffix(strings.TrimSpace(line), "$end")
			if text = strings.TrimSpace(text); text != "" {
				body = append(body, text)
			}
			if done {
				h.setDirective(directive, body)
				directive, body = "", nil
			}
			continue
		}

		t := scan.NewTokenizer(line)
		kw, ok := t.Next()
		if !ok {
			continue
		}

		switch kw {
		case "$enddefinitions":
			if len(scope) != 0 {
				return nil, lr.Wrap(line, fmt.Errorf("%w: scope %q is never closed", scan.ErrMalformed, scope[len(scope)-1]))
			}
			return h, nil

		case "$scope":
			t.Next() // scope type
			name, ok := t.Next()
			if !ok || name == "$end" {
				return nil, lr.Wrap(line, fmt.Errorf("%w: $scope without a name", scan.ErrSyntax))
			}
			scope = append(scope, name)

		case "$upscope":
			if len(scope) == 0 {
				return nil, lr.Wrap(line, fmt.Errorf("%w: $upscope without matching $scope", scan.ErrMalformed))
			}
			scope = scope[:len(scope)-1]

		case "$var":
			v, err := parseVar(t, scope, delim)
			if err != nil {
				return nil, lr.Wrap(line, err)
			}
			h.Codes[v.Code] = len(h.Vars)
			h.Vars = append(h.Vars, v)

		case "$date", "$version", "$timescale", "$comment":
			rest, done := strings.CutSuffix(strings.TrimSpace(t.Rest()), "$end")
			body = nil
			if rest = strings.TrimSpace(rest); rest != "" {
				body = append(body, rest)
			}
			if done {
				h.setDirective(kw, body)
				body = nil
			} else {
				directive = kw
			}
		}
	}
}

func (h *Header) setDirective(kw string, body []string) {
	if kw == "$comment" {
		return
	}
	h.Directives[strings.TrimPrefix(kw, "$")] = strings.Join(body, " ")
}

// parseVar decodes "<type> <size> <code> <name> [range] $end".
func parseVar(t *scan.Tokenizer, scope []string, delim string) (Var, error) {
	fields := make([]string, 0, 5)
	for {
		f, ok := t.Next()
		if !ok || f == "$end" {
			break
		}
		fields = append(fields, f)
	}
	if len(fields) < 4 {
		return Var{}, fmt.Errorf("%w: $var needs type, size, code and name", scan.ErrMalformed)
	}

	width, err := strconv.Atoi(fields[1])
	if err != nil || width < 0 {
		return Var{}, fmt.Errorf("%w: bad $var size %q", scan.ErrSyntax, fields[1])
	}

	v := Var{
		Type:      fields[0],
		Width:     width,
		Code:      fields[2],
		Reference: fields[3],
		Scope:     slices.Clone(scope),
	}
	if len(fields) > 4 {
		v.Range = fields[4]
	}

	if len(scope) == 0 {
		v.Name = v.Reference
	} else {
		v.Name = strings.Join(scope, delim) + delim + v.Reference
	}
	return v, nil
}
