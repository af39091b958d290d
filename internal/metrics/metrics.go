// Package metrics exposes prometheus collectors for statement parsing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// Statement outcomes recorded in upi_parser_statements_total.
const (
	OutcomeParsed        = "parsed"
	OutcomeEmpty         = "empty"
	OutcomeExtractFailed = "extract_failed"
	OutcomeRejected      = "rejected"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	lines        prometheus.Counter
	transactions *prometheus.CounterVec
	statements   *prometheus.CounterVec
	extract      prometheus.Histogram
}

// New registers the collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "upi_parser_lines_total",
			Help: "Non-blank statement lines scanned.",
		}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upi_parser_transactions_total",
			Help: "Transactions extracted, by category and direction.",
		}, []string{"category", "direction"}),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upi_parser_statements_total",
			Help: "Statements processed, by outcome.",
		}, []string{"outcome"}),
		extract: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "upi_extract_duration_seconds",
			Help:    "Time spent extracting text from uploaded PDFs.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}

	m.registry.MustRegister(
		m.lines,
		m.transactions,
		m.statements,
		m.extract,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveParse records the line and transaction counts of one parse and its
// outcome.
func (m *Metrics) ObserveParse(res *models.ParseResult) {
	if m == nil || res == nil {
		return
	}
	m.lines.Add(float64(res.LineCount))
	for _, txn := range res.Transactions {
		m.transactions.WithLabelValues(string(txn.Category), string(txn.Direction)).Inc()
	}
	if len(res.Transactions) == 0 {
		m.ObserveOutcome(OutcomeEmpty)
		return
	}
	m.ObserveOutcome(OutcomeParsed)
}

// ObserveOutcome counts a statement that finished with outcome.
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.statements.WithLabelValues(outcome).Inc()
}

// ObserveExtract records how long text extraction took.
func (m *Metrics) ObserveExtract(d time.Duration) {
	if m == nil {
		return
	}
	m.extract.Observe(d.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
