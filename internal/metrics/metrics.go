// Package metrics exposes Prometheus collectors for trace parsing and queries.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/skdltmxn/vcd-go/vcd"
)

var (
	// filesParsed counts parse attempts by outcome.
	filesParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcd_files_parsed_total",
		Help: "Total VCD parse attempts by result",
	}, []string{"result"})

	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vcd_parse_duration_seconds",
		Help:    "Time to parse a complete VCD file",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})

	valueChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vcd_value_changes_total",
		Help: "Total value changes decoded",
	})

	lineWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vcd_unrecognized_lines_total",
		Help: "Total data lines skipped as unrecognized",
	})

	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vcd_queries_total",
		Help: "Total trace queries by kind",
	}, []string{"kind"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vcd_query_duration_seconds",
		Help:    "Trace query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	}, []string{"kind"})
)

// Result labels for filesParsed.
const (
	ResultOK        = "ok"
	ResultOpenError = "open_error"
	ResultBadFile   = "parse_error"
)

// RecordParse records the outcome of opening a trace. f may be nil when err
// is non-nil.
func RecordParse(f *vcd.File, err error) {
	switch {
	case err == nil:
		filesParsed.WithLabelValues(ResultOK).Inc()
		stats := f.Stats()
		parseDuration.Observe(stats.Duration.Seconds())
		valueChanges.Add(float64(stats.Changes))
		lineWarnings.Add(float64(stats.Warnings))
	case errors.Is(err, vcd.ErrOpen):
		filesParsed.WithLabelValues(ResultOpenError).Inc()
	default:
		filesParsed.WithLabelValues(ResultBadFile).Inc()
	}
}

// ObserveQuery records one query of the given kind that began at start.
func ObserveQuery(kind string, start time.Time) {
	queries.WithLabelValues(kind).Inc()
	queryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
