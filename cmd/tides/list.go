package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/tides/internal/gauge"
	"github.com/bamsammich/tides/internal/ui"
)

func newListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tide gauge stations",
		Long: `List every tide gauge station with its reference, town and catchment.

--search keeps only stations whose label, reference, town or catchment
contains TEXT (case-insensitive). No match prints nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := loadSettings(cmd)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stations, err := newClient(settings).ListStations(ctx)
			if err != nil {
				return err
			}
			matched := gauge.FilterStations(stations, search)
			slog.Debug("listed stations", "total", len(stations), "matched", len(matched), "search", search)

			if len(matched) == 0 && search != "" {
				slog.Info("no stations match", "search", search)
				return nil
			}

			lines := make([]string, len(matched))
			for i, s := range matched {
				lines[i] = s.FullName()
			}
			return ui.NewLineWriter(cmd.OutOrStdout()).WriteLines(lines)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only list stations matching TEXT")
	return cmd
}
