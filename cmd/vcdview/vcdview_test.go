package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skdltmxn/vcd-go/vcd"
)

const testVCD = `$timescale 1ps $end
$scope module top $end
$var wire 1 ! clk $end
$var wire 4 " data $end
$upscope $end
$enddefinitions $end
#0
1!
b0000 "
#5
0!
b1010 "
#10
1!
`

func writeTrace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.vcd")
	require.NoError(t, os.WriteFile(path, []byte(testVCD), 0o644))
	return path
}

// runCLI executes the root command and returns what it wrote to --output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out.txt")
	rootCmd.SetArgs(append(args, "--output", out, "--config-dir", t.TempDir()))
	err := rootCmd.Execute()

	data, readErr := os.ReadFile(out)
	if readErr != nil {
		return "", err
	}
	return string(data), err
}

func TestRowsCommand(t *testing.T) {
	out, err := runCLI(t, "rows", writeTrace(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 3 rows")
	assert.Contains(t, out, fmt.Sprintf("%-8d %d", 1, 5))
}

func TestRowCommand(t *testing.T) {
	path := writeTrace(t)

	out, err := runCLI(t, "row", path, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Row 1 @ 5")
	assert.Contains(t, out, fmt.Sprintf("%-12s %s", "a", "top.data"))

	out, err = runCLI(t, "row", path, "7")
	require.NoError(t, err)
	assert.Contains(t, out, "No row 7 (file has 3 rows)")

	_, err = runCLI(t, "row", path, "one")
	assert.Error(t, err)
}

func TestValueCommand(t *testing.T) {
	out, err := runCLI(t, "value", writeTrace(t), "top.data", "7")
	require.NoError(t, err)
	assert.Equal(t, "top.data @ 7 = a\n", out)
}

func TestCyclesCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "cycles", writeTrace(t), "--format", "json")
	require.NoError(t, err)

	var cycles []CycleDump
	require.NoError(t, json.Unmarshal([]byte(out), &cycles))
	require.Len(t, cycles, 2)
	assert.Equal(t, "1", cycles[1].Cycle)
	assert.Equal(t, 2, cycles[1].Row)
	assert.Equal(t, int64(10), cycles[1].Time)
	assert.Equal(t, map[string]string{"top.clk": "1", "top.data": "a"}, cycles[1].Values)
}

func TestInfoCommand_MultipleFiles(t *testing.T) {
	a, b := writeTrace(t), writeTrace(t)

	out, err := runCLI(t, "info", a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Signals: 2"))
	assert.Contains(t, out, "timescale: 1ps")
	assert.Less(t, strings.Index(out, a), strings.Index(out, b), "output follows argument order")
}

func TestInfoCommand_MissingFile(t *testing.T) {
	_, err := runCLI(t, "info", filepath.Join(t.TempDir(), "missing.vcd"))
	require.Error(t, err)
	assert.ErrorIs(t, err, vcd.ErrOpen)
}

func TestDumpCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "dump", writeTrace(t), "--format", "json")
	require.NoError(t, err)

	var dump VCDDump
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	assert.Equal(t, "1ps", dump.Header["timescale"])
	assert.Equal(t, 3, dump.Stats.Timestamps)
	require.Len(t, dump.Rows, 3)
	assert.Equal(t, "0", dump.Rows[0].Values["top.data"])
	require.Len(t, dump.Signals, 2)
	assert.Equal(t, 4, dump.Signals[1].Width)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	f, err := vcd.Parse(strings.NewReader(testVCD))
	require.NoError(t, err)
	srv := httptest.NewServer(newQueryHandler(f))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestQueryHandler(t *testing.T) {
	srv := newTestServer(t)

	var rows []int64
	getJSON(t, srv.URL+"/rows", http.StatusOK, &rows)
	assert.Equal(t, []int64{0, 5, 10}, rows)

	var columns []SignalDump
	getJSON(t, srv.URL+"/columns", http.StatusOK, &columns)
	require.Len(t, columns, 2)
	assert.Equal(t, "top.clk", columns[0].Name)

	var row map[string]string
	getJSON(t, srv.URL+"/rows/1", http.StatusOK, &row)
	assert.Equal(t, map[string]string{"top.clk": "0", "top.data": "a"}, row)

	var empty map[string]string
	getJSON(t, srv.URL+"/rows/99", http.StatusOK, &empty)
	assert.Empty(t, empty)

	var cycles []CycleDump
	getJSON(t, srv.URL+"/cycles?neg=true", http.StatusOK, &cycles)
	assert.Len(t, cycles, 3)

	var value ValueDump
	getJSON(t, srv.URL+"/value?signal=top.clk&time=6", http.StatusOK, &value)
	assert.Equal(t, ValueDump{Signal: "top.clk", Time: 6, Value: "0"}, value)
}

func TestQueryHandler_Errors(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	getJSON(t, srv.URL+"/rows/x", http.StatusBadRequest, &body)
	assert.Contains(t, body["error"], "invalid row index")

	getJSON(t, srv.URL+"/value?signal=top.nope&time=1", http.StatusNotFound, &body)
	assert.Contains(t, body["error"], "signal not found")

	getJSON(t, srv.URL+"/value?signal=top.clk&time=soon", http.StatusBadRequest, &body)
	getJSON(t, srv.URL+"/cycles?neg=maybe", http.StatusBadRequest, &body)
}

func TestQueryHandler_Metrics(t *testing.T) {
	srv := newTestServer(t)

	var rows []int64
	getJSON(t, srv.URL+"/rows", http.StatusOK, &rows)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `vcd_queries_total{kind="rows"}`)
}
