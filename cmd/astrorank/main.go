package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "astrorank"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Influence scoring engine for birth-dated entities",
		Version: version,
		Long: `astrorank computes bounded influence scores (0-100) for entities with
birth dates against a reference date, combining five weighted astrological
factors and calibrating each cohort toward a fixed ceiling.`,
	}

	rootCmd.PersistentFlags().String("config", "config/scoring.yaml", "Path to scoring config YAML")

	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newEphemerisCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
