package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad combination", func(c *Config) { c.Combination = "quadratic" }},
		{"weights off sum", func(c *Config) { c.BaseWeights.DominantBody = 0.5 }},
		{"negative body weight", func(c *Config) { c.BodyWeights["sun"] = -1 }},
		{"zero cap", func(c *Config) { c.AspectBonusCap = 0 }},
		{"ceiling too high", func(c *Config) { c.Calibration.Ceiling = 150 }},
		{"tolerance too wide", func(c *Config) { c.Calibration.PhaseTolerance = 0.7 }},
		{"variance spread", func(c *Config) { c.Variance.Enabled = true; c.Variance.Spread = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: v2-test
combination: single
calibration:
  ceiling: 90
  cyclical_bonus: 3
  phase_tolerance: 0.05
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "v2-test", cfg.Version)
	assert.Equal(t, CombinationSingle, cfg.Combination)
	assert.Equal(t, 90.0, cfg.Calibration.Ceiling)
	// Untouched tables keep their defaults.
	assert.Equal(t, 4.5, cfg.BodyWeights["sun"])
	assert.InDelta(t, 1.0, cfg.BaseWeights.Sum(), 0.001)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfig().BaseWeights, cfg.BaseWeights)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combination: quadratic\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
