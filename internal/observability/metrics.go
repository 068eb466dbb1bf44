package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	parseFiles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdbfold",
			Subsystem: "parse",
			Name:      "files_total",
			Help:      "PDB files parsed, by outcome.",
		},
		[]string{"status"},
	)
	parseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pdbfold",
			Subsystem: "parse",
			Name:      "file_duration_seconds",
			Help:      "Time spent parsing one PDB file.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"status"},
	)
	parseRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdbfold",
			Subsystem: "parse",
			Name:      "records_total",
			Help:      "Record blocks parsed, by tag.",
		},
		[]string{"tag"},
	)
	parseTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdbfold",
			Subsystem: "parse",
			Name:      "tokens_total",
			Help:      "COMPND and SOURCE tokens produced.",
		},
	)
	parseSentinels = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdbfold",
			Subsystem: "parse",
			Name:      "sentinel_substitutions_total",
			Help:      "REVDAT entries replaced by the sentinel modification.",
		},
	)
	parseSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdbfold",
			Subsystem: "parse",
			Name:      "skipped_lines_total",
			Help:      "Lines of unregistered record tags.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(parseFiles, parseDuration, parseRecords, parseTokens, parseSentinels, parseSkipped)
	})
}

// Gatherer exposes the pdbfold metrics registry.
func Gatherer() prometheus.Gatherer {
	RegisterMetrics()
	return registry
}

func RecordFile(success bool, duration time.Duration) {
	RegisterMetrics()
	status := "ok"
	if !success {
		status = "error"
	}
	parseFiles.WithLabelValues(status).Inc()
	parseDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func RecordRecords(tag string, n int) {
	RegisterMetrics()
	parseRecords.WithLabelValues(tag).Add(float64(n))
}

func RecordTokens(n int) {
	RegisterMetrics()
	parseTokens.Add(float64(n))
}

func RecordSentinels(n int) {
	RegisterMetrics()
	parseSentinels.Add(float64(n))
}

func RecordSkipped(n int) {
	RegisterMetrics()
	parseSkipped.Add(float64(n))
}

// WriteTextfile writes the registry in text exposition format, for the node
// exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Gatherer())
}
