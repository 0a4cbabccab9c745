// Package telemetry holds the Prometheus collectors for the scoring
// pipeline.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the registry of pipeline collectors.
type Metrics struct {
	EntitiesScored prometheus.Counter
	Fallbacks      *prometheus.CounterVec
	BatchDuration  prometheus.Histogram
	BatchSize      prometheus.Histogram
	SnapshotHits   prometheus.Counter
	SnapshotMisses prometheus.Counter
	ActiveBatches  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in the binary, or a private registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EntitiesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astrorank_entities_scored_total",
			Help: "Total number of entities scored",
		}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "astrorank_fallbacks_total",
			Help: "Total number of fallback scores assigned, by reason",
		}, []string{"reason"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "astrorank_batch_duration_seconds",
			Help:    "Duration of a full score-and-calibrate batch in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "astrorank_batch_size_entities",
			Help:    "Number of entities per batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		SnapshotHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astrorank_snapshot_cache_hits_total",
			Help: "Ephemeris snapshot cache hits",
		}),
		SnapshotMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "astrorank_snapshot_cache_misses_total",
			Help: "Ephemeris snapshot cache misses",
		}),
		ActiveBatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "astrorank_active_batches",
			Help: "Number of batches currently running",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.EntitiesScored, m.Fallbacks, m.BatchDuration, m.BatchSize,
			m.SnapshotHits, m.SnapshotMisses, m.ActiveBatches,
		)
	}

	return m
}
