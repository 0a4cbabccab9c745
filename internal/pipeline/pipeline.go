// Package pipeline runs the two-phase scoring batch: a parallel map phase
// producing one raw score per entity, a synchronization barrier, then the
// population calibration reduce phase over the whole cohort.
package pipeline

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/astrorank/astrorank/internal/ephemeris"
	"github.com/astrorank/astrorank/internal/scoring"
	"github.com/astrorank/astrorank/internal/scoring/calibration"
	"github.com/astrorank/astrorank/internal/telemetry"
)

// Result is the outcome of one batch run.
type Result struct {
	RunID         string                   `json:"run_id"`
	ReferenceDate time.Time                `json:"reference_date"`
	Scores        []scoring.InfluenceScore `json:"scores"`
	UniformBoost  float64                  `json:"uniform_boost"`
	CyclicalBonus float64                  `json:"cyclical_bonus"`
	Duration      time.Duration            `json:"duration"`
}

// Runner executes scoring batches. The ephemeris provider is wrapped in a
// per-day cache so one snapshot is computed per reference date and shared
// read-only across the cohort.
type Runner struct {
	provider *ephemeris.CachedProvider
	calc     *scoring.Calculator
	workers  int
	metrics  *telemetry.Metrics

	// scoreFn defaults to the calculator; tests swap it to exercise the
	// per-entity failure isolation.
	scoreFn func(scoring.Entity, time.Time, *ephemeris.Snapshot) scoring.InfluenceScore

	prevHits, prevMisses uint64
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the map-phase worker pool.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithVarianceSource injects the seedable random source for the legacy
// variance multiplier.
func WithVarianceSource(rng *rand.Rand) Option {
	return func(r *Runner) { r.calc.SetVarianceSource(rng) }
}

// NewRunner creates a batch runner over a provider and scoring config.
func NewRunner(provider ephemeris.Provider, cfg *scoring.Config, opts ...Option) *Runner {
	r := &Runner{
		provider: ephemeris.NewCachedProvider(provider),
		calc:     scoring.NewCalculator(cfg),
		workers:  runtime.NumCPU(),
	}
	r.scoreFn = r.calc.Score
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scores every entity against the reference date and calibrates the
// cohort. A provider failure degrades to an empty snapshot so every
// component takes its documented fallback; no per-entity failure can abort
// the batch or touch another entity's score.
func (r *Runner) Run(ctx context.Context, records []EntityRecord, referenceDate time.Time) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	if r.metrics != nil {
		r.metrics.ActiveBatches.Inc()
		defer r.metrics.ActiveBatches.Dec()
	}

	snap, err := r.provider.Snapshot(ctx, referenceDate)
	if err != nil {
		log.Warn().Err(err).Str("run_id", runID).Time("reference_date", referenceDate).
			Msg("Ephemeris provider failed, scoring with empty snapshot")
		snap = &ephemeris.Snapshot{Date: referenceDate}
	}

	log.Info().Str("run_id", runID).Int("entities", len(records)).
		Time("reference_date", referenceDate).Int("workers", r.workers).
		Msg("Scoring batch started")

	// Map phase: raw scores in parallel, results written by index so output
	// order matches input order until the final ranking sort.
	raw := make([]scoring.InfluenceScore, len(records))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := r.workers
	if workers > len(records) {
		workers = len(records)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				raw[i] = r.scoreOne(records[i], referenceDate, snap)
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Barrier reached: every raw score is known, the cohort can be reduced.
	calibrated := calibration.Calibrate(raw, snap.CyclicalPhase, r.calc.Config().Calibration)

	scores := calibrated.Scores
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	r.recordMetrics(len(records), scores, time.Since(start))

	log.Info().Str("run_id", runID).Int("scored", len(scores)).
		Float64("uniform_boost", calibrated.UniformBoost).
		Float64("cyclical_bonus", calibrated.CyclicalBonus).
		Dur("elapsed", time.Since(start)).
		Msg("Scoring batch completed")

	return &Result{
		RunID:         runID,
		ReferenceDate: referenceDate,
		Scores:        scores,
		UniformBoost:  calibrated.UniformBoost,
		CyclicalBonus: calibrated.CyclicalBonus,
		Duration:      time.Since(start),
	}, nil
}

// scoreOne computes one entity's raw score with per-entity panic isolation.
func (r *Runner) scoreOne(rec EntityRecord, referenceDate time.Time, snap *ephemeris.Snapshot) (score scoring.InfluenceScore) {
	entity := rec.Entity()

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Str("entity", entity.ID).
				Msg("Scoring panicked, assigning fallback score")
			score = scoring.FallbackScore(entity, scoring.FallbackPanic)
			if r.metrics != nil {
				r.metrics.Fallbacks.WithLabelValues(string(scoring.FallbackPanic)).Inc()
			}
		}
	}()

	score = r.scoreFn(entity, referenceDate, snap)
	if r.metrics != nil && score.Fallback != scoring.FallbackNone {
		r.metrics.Fallbacks.WithLabelValues(string(score.Fallback)).Inc()
	}
	return score
}

func (r *Runner) recordMetrics(n int, scores []scoring.InfluenceScore, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.EntitiesScored.Add(float64(n))
	r.metrics.BatchSize.Observe(float64(n))
	r.metrics.BatchDuration.Observe(elapsed.Seconds())

	hits, misses := r.provider.Stats()
	r.metrics.SnapshotHits.Add(float64(hits - r.prevHits))
	r.metrics.SnapshotMisses.Add(float64(misses - r.prevMisses))
	r.prevHits, r.prevMisses = hits, misses
}
