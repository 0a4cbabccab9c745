package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrorank/astrorank/internal/ephemeris"
)

func newEphemerisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ephemeris",
		Short: "Print the computed ephemeris snapshot for a date",
		RunE:  runEphemeris,
	}

	cmd.Flags().String("date", "", "Reference date (YYYY-MM-DD, default today)")

	return cmd
}

func runEphemeris(cmd *cobra.Command, _ []string) error {
	dateStr, _ := cmd.Flags().GetString("date")

	referenceDate := time.Now().UTC()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid reference date %q: %w", dateStr, err)
		}
		referenceDate = parsed
	}

	snap, err := ephemeris.NewApproxProvider().Snapshot(cmd.Context(), referenceDate)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}
