package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/astrorank/astrorank/internal/scoring"
)

const birthDateLayout = "2006-01-02"

// EntityRecord is the raw input shape for one entity. The birth date stays a
// string here so an unparseable value downgrades that single entity to the
// fallback score instead of failing the whole file.
type EntityRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// Entity converts the record for scoring. A missing or unparseable birth
// date yields a zero time, which the calculator treats as invalid input.
func (r EntityRecord) Entity() scoring.Entity {
	e := scoring.Entity{ID: r.ID, Name: r.Name}
	if r.BirthDate == "" {
		return e
	}
	t, err := time.Parse(birthDateLayout, r.BirthDate)
	if err != nil {
		log.Warn().Str("entity", r.ID).Str("birth_date", r.BirthDate).
			Msg("Unparseable birth date")
		return e
	}
	e.BirthDate = t
	return e
}

// LoadEntities reads a JSON array of entity records from path.
func LoadEntities(path string) ([]EntityRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entities file %s: %w", path, err)
	}

	var records []EntityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse entities file %s: %w", path, err)
	}

	return records, nil
}
