package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for report edits and name lookups.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Committed edits by section
	EditsCommitted *prometheus.CounterVec

	// Report owner reassignments
	OwnerReassignments prometheus.Counter

	// Upstream lookup latency by kind ("prison", "location")
	LookupLatency *prometheus.HistogramVec

	// Failed lookups by kind
	LookupFailures *prometheus.CounterVec

	// Name cache results by kind and outcome ("hit", "miss")
	CacheResults *prometheus.CounterVec

	// Rows rendered with fallback values by view ("confirmation", "history")
	DegradedRows *prometheus.CounterVec

	// Time to render a full edit history
	HistoryLatency prometheus.Histogram
}

// New registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EditsCommitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uof_report_edits_committed_total",
			Help: "Total report edits committed by section",
		}, []string{"section"}),

		OwnerReassignments: f.NewCounter(prometheus.CounterOpts{
			Name: "uof_report_owner_reassignments_total",
			Help: "Total reports reassigned to another member of staff",
		}),

		LookupLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uof_lookup_duration_seconds",
			Help:    "Duration of upstream prison and location lookups",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind"}),

		LookupFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uof_lookup_failures_total",
			Help: "Total failed upstream lookups by kind",
		}, []string{"kind"}),

		CacheResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uof_name_cache_results_total",
			Help: "Name cache hits and misses by kind",
		}, []string{"kind", "result"}),

		DegradedRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uof_degraded_rows_total",
			Help: "Rows rendered with fallback values because a lookup failed",
		}, []string{"view"}),

		HistoryLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "uof_edit_history_duration_seconds",
			Help:    "Duration of rendering a report's edit history",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// IncrementEditsCommitted records a committed section edit.
func (m *Metrics) IncrementEditsCommitted(section string) {
	if m != nil {
		m.EditsCommitted.WithLabelValues(section).Inc()
	}
}

// IncrementOwnerReassignments records a report owner change.
func (m *Metrics) IncrementOwnerReassignments() {
	if m != nil {
		m.OwnerReassignments.Inc()
	}
}

// ObserveLookupLatency records the duration of one upstream lookup.
func (m *Metrics) ObserveLookupLatency(kind string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// IncrementLookupFailures records a failed upstream lookup.
func (m *Metrics) IncrementLookupFailures(kind string) {
	if m != nil {
		m.LookupFailures.WithLabelValues(kind).Inc()
	}
}

// IncrementCacheResult records a name cache hit or miss.
func (m *Metrics) IncrementCacheResult(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheResults.WithLabelValues(kind, result).Inc()
}

// IncrementDegradedRows records a row rendered with fallback values.
func (m *Metrics) IncrementDegradedRows(view string) {
	if m != nil {
		m.DegradedRows.WithLabelValues(view).Inc()
	}
}

// ObserveHistoryLatency records the time taken to render an edit history.
func (m *Metrics) ObserveHistoryLatency(d time.Duration) {
	if m != nil {
		m.HistoryLatency.Observe(d.Seconds())
	}
}
