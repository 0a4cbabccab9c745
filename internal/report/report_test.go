package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrorank/astrorank/internal/scoring"
)

func scoresOf(vals ...float64) []scoring.InfluenceScore {
	out := make([]scoring.InfluenceScore, len(vals))
	for i, v := range vals {
		out[i] = scoring.InfluenceScore{
			EntityID:   string(rune('a' + i)),
			EntityName: "Entity " + string(rune('A'+i)),
			Score:      v,
		}
	}
	return out
}

func TestSummarize(t *testing.T) {
	s := Summarize(scoresOf(40, 60, 80, 100))
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 40.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.InDelta(t, 70.0, s.Mean, 1e-9)
	assert.InDelta(t, 70.0, s.Median, 1e-9)

	odd := Summarize(scoresOf(10, 50, 90))
	assert.InDelta(t, 50.0, odd.Median, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestHistogram_BinEdges(t *testing.T) {
	bins := Histogram(scoresOf(0, 9.99, 10, 55, 99.99, 100))

	assert.Equal(t, 2, bins[0], "0 and 9.99 in first bin")
	assert.Equal(t, 1, bins[1], "10 starts second bin")
	assert.Equal(t, 1, bins[5])
	assert.Equal(t, 2, bins[9], "99.99 and the exact 100 land in the top bin")
}

func TestEmitCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")

	scores := scoresOf(56.456, 76.001)
	require.NoError(t, EmitCSV(path, scores))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"entity_id", "entity_name", "score"}, rows[0])
	assert.Equal(t, []string{"a", "Entity A", "56.46"}, rows[1])
	assert.Equal(t, []string{"b", "Entity B", "76.00"}, rows[2])
}

func TestEmitJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, EmitJSON(path, scoresOf(30, 90)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Export
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, 2, doc.Summary.Count)
	assert.Equal(t, 1, doc.Histogram[3])
	assert.Equal(t, 1, doc.Histogram[9])
	require.Len(t, doc.Scores, 2)
	assert.Equal(t, "a", doc.Scores[0].EntityID)
}
