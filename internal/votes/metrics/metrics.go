package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for one ingestion run. Every instance owns
// its registry so runs in the same process never share counters.
type Metrics struct {
	registry *prometheus.Registry

	FilesSeen      prometheus.Counter
	FilesProcessed prometheus.Counter
	// Skipped files by reason: invalid_path, unknown_chamber, malformed_document, undecodable, unreadable
	FilesSkipped *prometheus.CounterVec

	VotesAggregated  prometheus.Counter
	MembersInserted  prometheus.Counter
	RecordsPublished prometheus.Counter

	// Count fields that could not be parsed and were recorded as 0
	CountsDegraded *prometheus.CounterVec

	RunDuration prometheus.Gauge
}

// New creates a Metrics instance with all run metrics registered on a fresh
// registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		FilesSeen: factory.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_files_seen_total",
			Help: "Input documents discovered for the run",
		}),
		FilesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_files_processed_total",
			Help: "Input documents extracted and aggregated",
		}),
		FilesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_files_skipped_total",
			Help: "Input documents skipped by reason",
		}, []string{"reason"}),
		VotesAggregated: factory.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_votes_aggregated_total",
			Help: "Vote events inserted into the aggregation tree",
		}),
		MembersInserted: factory.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_members_inserted_total",
			Help: "Member rows written to the relational store",
		}),
		RecordsPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_records_published_total",
			Help: "Rollcall records published to the event sink",
		}),
		CountsDegraded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_counts_degraded_total",
			Help: "Count values that could not be parsed and were recorded as 0, by field",
		}, []string{"field"}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rollcall_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
	}
}

// Registry exposes the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) IncrementFilesSeen(n int) {
	if m != nil {
		m.FilesSeen.Add(float64(n))
	}
}

func (m *Metrics) IncrementFilesProcessed() {
	if m != nil {
		m.FilesProcessed.Inc()
	}
}

func (m *Metrics) IncrementFilesSkipped(reason string) {
	if m != nil {
		m.FilesSkipped.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) AddVotesAggregated(n int) {
	if m != nil {
		m.VotesAggregated.Add(float64(n))
	}
}

func (m *Metrics) AddMembersInserted(n int) {
	if m != nil {
		m.MembersInserted.Add(float64(n))
	}
}

func (m *Metrics) IncrementRecordsPublished() {
	if m != nil {
		m.RecordsPublished.Inc()
	}
}

func (m *Metrics) IncrementCountDegraded(field string) {
	if m != nil {
		m.CountsDegraded.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) ObserveRunDuration(d time.Duration) {
	if m != nil {
		m.RunDuration.Set(d.Seconds())
	}
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
