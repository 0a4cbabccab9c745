package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/astrorank/astrorank/internal/ephemeris"
	"github.com/astrorank/astrorank/internal/pipeline"
	"github.com/astrorank/astrorank/internal/report"
	"github.com/astrorank/astrorank/internal/scoring"
	"github.com/astrorank/astrorank/internal/telemetry"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a cohort of entities against a reference date",
		Long: `Load entities from a JSON file, score each against the reference date
using the shared ephemeris snapshot, calibrate the cohort, and emit reports.`,
		RunE: runScore,
	}

	cmd.Flags().String("entities", "entities.json", "Path to entities JSON file")
	cmd.Flags().String("date", "", "Reference date (YYYY-MM-DD, default today)")
	cmd.Flags().Int("workers", 0, "Map-phase workers (default NumCPU)")
	cmd.Flags().String("out-csv", "", "Write calibrated scores to a CSV file")
	cmd.Flags().String("out-json", "", "Write the full report document to a JSON file")
	cmd.Flags().Int64("variance-seed", 0, "Seed for the legacy variance source (used only when variance is enabled in config)")

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	entitiesPath, _ := cmd.Flags().GetString("entities")
	dateStr, _ := cmd.Flags().GetString("date")
	workers, _ := cmd.Flags().GetInt("workers")
	outCSV, _ := cmd.Flags().GetString("out-csv")
	outJSON, _ := cmd.Flags().GetString("out-json")
	seed, _ := cmd.Flags().GetInt64("variance-seed")

	referenceDate := time.Now().UTC()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid reference date %q: %w", dateStr, err)
		}
		referenceDate = parsed
	}

	cfg := scoring.LoadConfigOrDefault(configPath)

	records, err := pipeline.LoadEntities(entitiesPath)
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)
	opts := []pipeline.Option{
		pipeline.WithWorkers(workers),
		pipeline.WithMetrics(metrics),
	}
	if cfg.Variance.Enabled {
		opts = append(opts, pipeline.WithVarianceSource(rand.New(rand.NewSource(seed))))
	}

	runner := pipeline.NewRunner(ephemeris.NewApproxProvider(), cfg, opts...)

	result, err := runner.Run(cmd.Context(), records, referenceDate)
	if err != nil {
		return err
	}

	printResult(result)

	if outCSV != "" {
		if err := report.EmitCSV(outCSV, result.Scores); err != nil {
			return err
		}
		log.Info().Str("path", outCSV).Msg("Wrote CSV report")
	}
	if outJSON != "" {
		if err := report.EmitJSON(outJSON, result.Scores); err != nil {
			return err
		}
		log.Info().Str("path", outJSON).Msg("Wrote JSON report")
	}

	return nil
}

func printResult(result *pipeline.Result) {
	summary := report.Summarize(result.Scores)
	hist := report.Histogram(result.Scores)

	fmt.Printf("Run %s — %d entities @ %s\n", result.RunID, summary.Count,
		result.ReferenceDate.Format("2006-01-02"))
	fmt.Printf("min %.2f  max %.2f  mean %.2f  median %.2f  boost %+.2f  bonus %+.1f\n\n",
		summary.Min, summary.Max, summary.Mean, summary.Median,
		result.UniformBoost, result.CyclicalBonus)

	for i, n := range hist {
		bar := strings.Repeat("#", n)
		fmt.Printf("%3d-%3d | %-3d %s\n", i*10, i*10+10, n, bar)
	}

	fmt.Println()
	for _, s := range result.Scores {
		marker := ""
		if s.Fallback != scoring.FallbackNone {
			marker = fmt.Sprintf("  [fallback: %s]", s.Fallback)
		}
		fmt.Printf("%-12s %-24s %6.2f%s\n", s.EntityID, s.EntityName, s.Score, marker)
	}
}
