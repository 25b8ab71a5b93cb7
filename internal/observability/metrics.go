// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Source lookup outcomes.
const (
	OutcomeFilled  = "filled"
	OutcomeEmpty   = "empty"
	OutcomeSkipped = "skipped"
)

// Metrics holds the prometheus collectors for extraction and submission.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// SourceLookups counts stage outcomes by source (crossref, pubmed, scraper).
	SourceLookups *prometheus.CounterVec

	// Extractions counts finished runs by completeness.
	Extractions *prometheus.CounterVec

	// ExtractionDuration observes end-to-end run time in seconds.
	ExtractionDuration prometheus.Histogram

	// Submissions counts library submissions by outcome.
	Submissions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SourceLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paperclip",
			Name:      "source_lookups_total",
			Help:      "Metadata source invocations by source and outcome.",
		}, []string{"source", "outcome"}),
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paperclip",
			Name:      "extractions_total",
			Help:      "Completed extraction runs by completeness.",
		}, []string{"completeness"}),
		ExtractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "paperclip",
			Name:      "extraction_duration_seconds",
			Help:      "Wall time of one extraction run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paperclip",
			Name:      "submissions_total",
			Help:      "Library submissions by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.SourceLookups, m.Extractions, m.ExtractionDuration, m.Submissions)
	}
	return m
}

// ObserveSource records one source lookup outcome.
func (m *Metrics) ObserveSource(source, outcome string) {
	if m == nil {
		return
	}
	m.SourceLookups.WithLabelValues(source, outcome).Inc()
}

// ObserveExtraction records a finished run.
func (m *Metrics) ObserveExtraction(completeness string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(completeness).Inc()
	m.ExtractionDuration.Observe(elapsed.Seconds())
}

// ObserveSubmission records a submission outcome.
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}
