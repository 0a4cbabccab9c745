package scoring

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// CombinationMode selects how the combiner aggregates the five sub-scores.
type CombinationMode string

const (
	// CombinationLiteral re-multiplies each already-weighted sub-score by its
	// weight, reproducing the historical behavior.
	CombinationLiteral CombinationMode = "literal"
	// CombinationSingle sums the weighted sub-scores as-is, applying each
	// weight exactly once.
	CombinationSingle CombinationMode = "single"
)

// CalibrationConfig tunes the population calibrator.
type CalibrationConfig struct {
	Ceiling        float64 `yaml:"ceiling"`
	CyclicalBonus  float64 `yaml:"cyclical_bonus"`
	PhaseTolerance float64 `yaml:"phase_tolerance"`
}

// VarianceConfig controls the optional legacy random variance multiplier.
// When enabled, the calculator requires an injected seedable random source so
// runs stay reproducible.
type VarianceConfig struct {
	Enabled bool    `yaml:"enabled"`
	Spread  float64 `yaml:"spread"`
}

// Config is the versioned record of every tunable in the scoring pipeline:
// base weights, per-element powers, the dominant-body weight table, both
// aspect tables, and calibration parameters. All scorers read from it so no
// formula embeds its own magic numbers.
type Config struct {
	Version     string          `yaml:"version"`
	Combination CombinationMode `yaml:"combination"`

	BaseWeights WeightVector `yaml:"base_weights"`

	// Dynamic weight adjustments.
	SeasonWeightShift float64 `yaml:"season_weight_shift"`
	MoonWeightSwing   float64 `yaml:"moon_weight_swing"`

	// Elemental balance.
	ElementPowers     map[string]float64 `yaml:"element_powers"`
	ElementalFallback float64            `yaml:"elemental_fallback"`

	// Dominant-body emphasis.
	BodyWeights       map[string]float64 `yaml:"body_weights"`
	DefaultBodyWeight float64            `yaml:"default_body_weight"`
	BodyExponent      float64            `yaml:"body_exponent"`
	BodyScale         float64            `yaml:"body_scale"`
	PrimaryBonus      float64            `yaml:"primary_bonus"`
	SecondaryBonus    float64            `yaml:"secondary_bonus"`

	// Aspect bonus inside the dominant-body scorer.
	AspectEmphasis        map[string]float64 `yaml:"aspect_emphasis"`
	UnknownAspectEmphasis float64            `yaml:"unknown_aspect_emphasis"`
	AspectBonusCap        float64            `yaml:"aspect_bonus_cap"`

	// Aspect configuration scorer.
	AspectBases       map[string]float64 `yaml:"aspect_bases"`
	UnknownAspectBase float64            `yaml:"unknown_aspect_base"`

	Calibration CalibrationConfig `yaml:"calibration"`
	Variance    VarianceConfig    `yaml:"variance"`
}

// DefaultConfig returns the built-in tables.
func DefaultConfig() *Config {
	return &Config{
		Version:     "v1",
		Combination: CombinationLiteral,

		BaseWeights: WeightVector{
			Elemental:    0.10,
			Modal:        0.02,
			DominantBody: 0.80,
			Moon:         0.05,
			Aspect:       0.03,
		},

		SeasonWeightShift: 0.10,
		MoonWeightSwing:   0.05,

		ElementPowers: map[string]float64{
			"fire":  1.2,
			"earth": 1.1,
			"air":   1.0,
			"water": 1.15,
		},
		ElementalFallback: 0.3,

		BodyWeights: map[string]float64{
			"sun":     4.5,
			"moon":    4.2,
			"jupiter": 3.8,
			"saturn":  3.5,
			"mars":    3.2,
			"venus":   3.0,
			"mercury": 2.8,
			"uranus":  2.2,
			"neptune": 1.8,
			"pluto":   1.5,
		},
		DefaultBodyWeight: 1.5,
		BodyExponent:      1.8,
		BodyScale:         40,
		PrimaryBonus:      0.5,
		SecondaryBonus:    0.25,

		AspectEmphasis: map[string]float64{
			"conjunction": 10,
			"opposition":  9,
			"trine":       8,
			"square":      7,
			"sextile":     6,
			"quincunx":    5,
			"semisextile": 4,
			"quintile":    4,
			"bi-quintile": 3,
		},
		UnknownAspectEmphasis: 1,
		AspectBonusCap:        30,

		AspectBases: map[string]float64{
			"conjunction": 1.2,
			"opposition":  1.1,
			"trine":       1.0,
			"square":      0.8,
			"sextile":     0.7,
			"quintile":    0.6,
			"quincunx":    0.5,
			"semisextile": 0.3,
		},
		UnknownAspectBase: 0.2,

		Calibration: CalibrationConfig{
			Ceiling:        96,
			CyclicalBonus:  5,
			PhaseTolerance: 0.03,
		},

		Variance: VarianceConfig{
			Enabled: false,
			Spread:  0.05,
		},
	}
}

// LoadConfig reads a YAML config file and validates it. On read or parse
// failure the caller decides whether to fall back to DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigOrDefault returns the config at path, or the defaults when the
// file is absent or invalid.
func LoadConfigOrDefault(path string) *Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to load scoring config, using defaults")
		return DefaultConfig()
	}
	log.Info().Str("path", path).Str("version", cfg.Version).Str("combination", string(cfg.Combination)).
		Msg("Loaded scoring config")
	return cfg
}

// Validate checks structural sanity of the tables. Base weights are nominal
// percentages; the dynamic adjustment intentionally de-normalizes them, so
// only the pre-adjustment sum is checked.
func (c *Config) Validate() error {
	switch c.Combination {
	case CombinationLiteral, CombinationSingle:
	default:
		return fmt.Errorf("unknown combination mode %q", c.Combination)
	}

	sum := c.BaseWeights.Sum()
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("base weights sum to %.3f, expected 1.000", sum)
	}

	for name, w := range c.BodyWeights {
		if w <= 0 {
			return fmt.Errorf("body weight for %s must be positive, got %.3f", name, w)
		}
	}

	if c.AspectBonusCap <= 0 {
		return fmt.Errorf("aspect bonus cap must be positive, got %.3f", c.AspectBonusCap)
	}

	if c.Calibration.Ceiling <= 0 || c.Calibration.Ceiling > 100 {
		return fmt.Errorf("calibration ceiling must be in (0,100], got %.3f", c.Calibration.Ceiling)
	}
	if c.Calibration.PhaseTolerance < 0 || c.Calibration.PhaseTolerance > 0.5 {
		return fmt.Errorf("phase tolerance must be in [0,0.5], got %.3f", c.Calibration.PhaseTolerance)
	}

	if c.Variance.Enabled && (c.Variance.Spread <= 0 || c.Variance.Spread >= 1) {
		return fmt.Errorf("variance spread must be in (0,1), got %.3f", c.Variance.Spread)
	}

	return nil
}
