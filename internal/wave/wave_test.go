package wave

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skdltmxn/vcd-go/internal/scan"
)

func TestBinToHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1011", "b"},
		{"101", "5"},
		{"0000", "0"},
		{"1010", "a"},
		{"", "0"},
		{"1", "1"},
		{"11111111", "ff"},
		{"100000000", "100"},
		{"1x01", "x"},
		{"1z01", "z"},
		{"zx", "x"},
		{"1Z", "z"},
		{"X", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := BinToHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinToHex_InvalidDigit(t *testing.T) {
	_, err := BinToHex("10a1")
	assert.ErrorIs(t, err, scan.ErrSyntax)

	_, err = BinToHex("x2")
	assert.ErrorIs(t, err, scan.ErrSyntax, "invalid digits are rejected before x handling")
}

func TestSeries_At(t *testing.T) {
	s := Series{{Time: 5, Value: "a"}, {Time: 10, Value: "b"}, {Time: 10, Value: "c"}, {Time: 20, Value: "d"}}

	tests := []struct {
		t      int64
		want   string
		wantOK bool
	}{
		{0, "", false},
		{4, "", false},
		{5, "a", true},
		{9, "a", true},
		{10, "c", true},
		{19, "c", true},
		{100, "d", true},
	}
	for _, tt := range tests {
		got, ok := s.At(tt.t)
		assert.Equal(t, tt.wantOK, ok, "t=%d", tt.t)
		assert.Equal(t, tt.want, got, "t=%d", tt.t)
	}

	got, ok := Series(nil).At(3)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func parse(t *testing.T, src string, cfg Config) (*Result, error) {
	t.Helper()
	if cfg.Codes == nil {
		cfg.Codes = map[string]int{"!": 0, `"`: 1}
		cfg.Columns = 2
	}
	return Parse(scan.NewLineReader(strings.NewReader(src)), cfg)
}

func TestParse(t *testing.T) {
	src := "#0\n1!\nb0000 \"\n\n#5\n0!\nB1010 \"\n#5\nX!\n"
	res, err := parse(t, src, Config{})
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 5, 5}, res.Times)
	assert.Equal(t, Series{{0, "1"}, {5, "0"}, {5, "x"}}, res.Series[0])
	assert.Equal(t, Series{{0, "0"}, {5, "a"}}, res.Series[1])
	assert.Equal(t, 5, res.Changes)
	assert.Empty(t, res.Warnings)
}

func TestParse_MultiCharCode(t *testing.T) {
	cfg := Config{Codes: map[string]int{"%a#": 0}, Columns: 1}
	res, err := parse(t, "#1\nz%a#\nb11 %a#\n", cfg)
	require.NoError(t, err)
	assert.Equal(t, Series{{1, "z"}, {1, "3"}}, res.Series[0])
}

func TestParse_UnrecognizedLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res, err := parse(t, "#0\n$dumpvars\n1!\n$end\n", Config{Logger: logger})
	require.NoError(t, err)

	require.Len(t, res.Warnings, 2)
	assert.Equal(t, Warning{Line: 2, Text: "$dumpvars"}, res.Warnings[0])
	assert.Equal(t, Warning{Line: 4, Text: "$end"}, res.Warnings[1])
	assert.Equal(t, Series{{0, "1"}}, res.Series[0])
	assert.Contains(t, buf.String(), "unrecognized data line")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		cfg  Config
		want error
	}{
		{"bad timestamp", "#1a\n", Config{}, scan.ErrSyntax},
		{"negative timestamp", "#-3\n", Config{}, scan.ErrSyntax},
		{"empty timestamp", "#\n", Config{}, scan.ErrSyntax},
		{"backwards timestamp", "#5\n#4\n", Config{}, scan.ErrMalformed},
		{"unknown scalar code", "#0\n1?\n", Config{}, scan.ErrUnknownCode},
		{"unknown vector code", "#0\nb1 ?\n", Config{}, scan.ErrUnknownCode},
		{"change before timestamp", "1!\n#0\n", Config{}, scan.ErrMalformed},
		{"vector without code", "#0\nb101\n", Config{}, scan.ErrSyntax},
		{"scalar without code", "#0\n1\n", Config{}, scan.ErrSyntax},
		{"bad vector digit", "#0\nb12 !\n", Config{}, scan.ErrSyntax},
		{"strict unrecognized", "#0\nr1.5 !\n", Config{Strict: true, Codes: map[string]int{"!": 0}, Columns: 1}, scan.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src, tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var lineErr *scan.LineError
			require.ErrorAs(t, err, &lineErr)
			assert.Positive(t, lineErr.Line)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, lineBlank, classify(""))
	assert.Equal(t, lineTimestamp, classify("#10"))
	assert.Equal(t, lineVector, classify("b10 !"))
	assert.Equal(t, lineVector, classify("B10 !"))
	assert.Equal(t, lineScalar, classify("z!"))
	assert.Equal(t, lineUnknown, classify("r1.0 !"))
	assert.Equal(t, lineUnknown, classify("$end"))
}
