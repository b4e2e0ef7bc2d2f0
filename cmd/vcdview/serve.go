package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/skdltmxn/vcd-go/internal/metrics"
	"github.com/skdltmxn/vcd-go/vcd"
)

var (
	serveListen string
)

var serveCmd = &cobra.Command{
	Use:   "serve <vcd-file>",
	Short: "Serve trace queries over HTTP",
	Long: `Parse a VCD file once and answer queries over HTTP with JSON.

Endpoints:
  GET /columns                 signal metadata
  GET /rows                    timestamp of every row
  GET /rows/{row}              every signal at a row
  GET /cycles?neg=true         per-cycle snapshots
  GET /value?signal=S&time=T   one signal at or before T
  GET /metrics                 Prometheus metrics`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	f, err := openTrace(args[0])
	if err != nil {
		return err
	}

	addr := cfg.Listen
	if serveListen != "" {
		addr = serveListen
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newQueryHandler(f),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logger.Info("serving trace", slog.String("file", f.Path()), slog.String("addr", addr))
	fmt.Fprintf(output, "Serving %s on http://%s\n", f.Path(), addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// queryHandler answers trace queries against one parsed file.
type queryHandler struct {
	file *vcd.File
}

func newQueryHandler(f *vcd.File) http.Handler {
	h := &queryHandler{file: f}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /columns", h.handleColumns)
	mux.HandleFunc("GET /rows", h.handleRows)
	mux.HandleFunc("GET /rows/{row}", h.handleRow)
	mux.HandleFunc("GET /cycles", h.handleCycles)
	mux.HandleFunc("GET /value", h.handleValue)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (h *queryHandler) handleColumns(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveQuery("columns", time.Now())

	signals := h.file.Signals()
	out := make([]SignalDump, len(signals))
	for i, s := range signals {
		out[i] = SignalDump{Name: s.Name, Code: s.Code, Type: s.Type, Width: s.Width, Range: s.Range}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *queryHandler) handleRows(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveQuery("rows", time.Now())
	writeJSON(w, http.StatusOK, h.file.Rows())
}

// handleRow returns an empty object for rows outside the trace.
func (h *queryHandler) handleRow(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveQuery("row", time.Now())

	row, err := strconv.Atoi(r.PathValue("row"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid row index: "+r.PathValue("row"))
		return
	}
	writeJSON(w, http.StatusOK, h.file.FetchRow(row))
}

func (h *queryHandler) handleCycles(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveQuery("cycles", time.Now())

	includeNeg := cfg != nil && cfg.IncludeNeg
	if s := r.URL.Query().Get("neg"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid neg: "+s)
			return
		}
		includeNeg = v
	}
	writeJSON(w, http.StatusOK, cycleDumps(h.file.AllCycles(includeNeg)))
}

// ValueDump is the JSON form of a point lookup.
type ValueDump struct {
	Signal string `json:"signal"`
	Time   int64  `json:"time"`
	Value  string `json:"value"`
}

func (h *queryHandler) handleValue(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveQuery("value", time.Now())

	q := r.URL.Query()
	name := q.Get("signal")
	at, err := strconv.ParseInt(q.Get("time"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid time: "+q.Get("time"))
		return
	}

	v, err := h.file.ValueAt(name, at)
	if errors.Is(err, vcd.ErrSignalNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ValueDump{Signal: name, Time: at, Value: v})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Warn("failed to write response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
