// Package report produces the batch reporting surfaces: histogram, summary
// statistics, and tabular exports of calibrated scores.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/astrorank/astrorank/internal/scoring"
)

// HistogramBins is the fixed bin count covering [0,100] in widths of 10.
const HistogramBins = 10

// Summary holds cohort statistics.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summarize computes cohort statistics over calibrated scores. An empty
// cohort yields the zero Summary.
func Summarize(scores []scoring.InfluenceScore) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	vals := make([]float64, len(scores))
	sum := 0.0
	for i, s := range scores {
		vals[i] = s.Score
		sum += s.Score
	}
	sort.Float64s(vals)

	median := vals[len(vals)/2]
	if len(vals)%2 == 0 {
		median = (vals[len(vals)/2-1] + vals[len(vals)/2]) / 2
	}

	return Summary{
		Count:  len(scores),
		Min:    vals[0],
		Max:    vals[len(vals)-1],
		Mean:   sum / float64(len(vals)),
		Median: median,
	}
}

// Histogram buckets calibrated scores into 10 bins of width 10. A score of
// exactly 100 lands in the top bin.
func Histogram(scores []scoring.InfluenceScore) [HistogramBins]int {
	var bins [HistogramBins]int
	for _, s := range scores {
		idx := int(s.Score / 10)
		if idx >= HistogramBins {
			idx = HistogramBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx]++
	}
	return bins
}

// EmitCSV writes one row per entity with scores rounded to 2 decimals.
func EmitCSV(path string, scores []scoring.InfluenceScore) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"entity_id", "entity_name", "score"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range scores {
		record := []string{
			s.EntityID,
			s.EntityName,
			fmt.Sprintf("%.2f", s.Score),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return writer.Error()
}

// Export is the JSON report document: scores with full breakdowns plus the
// cohort summary and histogram.
type Export struct {
	Summary   Summary                  `json:"summary"`
	Histogram [HistogramBins]int       `json:"histogram"`
	Scores    []scoring.InfluenceScore `json:"scores"`
}

// EmitJSON writes the full report document.
func EmitJSON(path string, scores []scoring.InfluenceScore) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	doc := Export{
		Summary:   Summarize(scores),
		Histogram: Histogram(scores),
		Scores:    scores,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	return nil
}
