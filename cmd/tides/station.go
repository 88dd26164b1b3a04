package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bamsammich/tides/internal/config"
	"github.com/bamsammich/tides/internal/gauge"
	"github.com/bamsammich/tides/internal/graph"
	"github.com/bamsammich/tides/internal/ui"
)

func newStationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "station <id>",
		Short: "Chart recent water levels for a station",
		Long: `Fetch the latest readings for a tide gauge station and draw them as an
ASCII chart, oldest on the left. Readings arrive every 15 minutes.

Station ids look like E70024 (see "tides list"). Out-of-range --hours or an
unknown --resolution fall back to the configured default with a warning.`,
		Example: `  tides station E70024
  tides station E72639 --hours 48 --resolution fine`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := gauge.ValidateStationID(id); err != nil {
				return usageError(err)
			}

			settings := loadSettings(cmd)
			slog.Debug("chart settings",
				"station", id,
				"hours", settings.Hours,
				"resolution", settings.Resolution.String(),
				"base_url", settings.BaseURL,
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			started := time.Now()
			readings, err := newClient(settings).Readings(ctx, id, settings.Hours*graph.ReadingsPerHour)
			if err != nil {
				return err
			}
			slog.Debug("fetched readings", "count", len(readings), "elapsed", time.Since(started))
			if want := settings.Hours * graph.ReadingsPerHour; len(readings) < want {
				slog.Info("fewer readings than requested", "station", id, "got", len(readings), "want", want)
			}

			lines, err := graph.Render(readings, id, settings.Resolution, settings.Hours)
			if errors.Is(err, graph.ErrEmptyDataset) {
				return gauge.ErrNoReadings
			}
			if err != nil {
				return err
			}
			return ui.NewLineWriter(cmd.OutOrStdout()).WriteLines(lines)
		},
	}

	cmd.Flags().IntP("hours", "H", config.DefaultHours,
		"hours of readings to chart (1-72)")
	cmd.Flags().StringP("resolution", "r", config.DefaultResolution.String(),
		"vertical resolution: coarse (2m rows), normal (1m) or fine (0.5m)")
	return cmd
}
