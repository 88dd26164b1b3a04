package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/tides/internal/config"
	"github.com/bamsammich/tides/internal/gauge"
	"github.com/bamsammich/tides/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// globalOpts holds the persistent flags shared by every subcommand.
type globalOpts struct {
	verbose bool
	quiet   bool
	logFile string

	logCloser io.Closer
}

func run(args []string, stdout, stderr io.Writer) int {
	opts := &globalOpts{}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if opts.logCloser != nil {
		opts.logCloser.Close() //nolint:errcheck // best-effort on exit
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		return 1
	}
	return 0
}

func newRootCmd(opts *globalOpts) *cobra.Command {
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "tides",
		Short: "UK tide gauge water levels as terminal charts",
		Long: `tides lists Environment Agency tide gauge stations and draws recent
water-level readings for a station as an ASCII chart.

Defaults are read from $XDG_CONFIG_HOME/tides/config.toml (or the file
named by TIDES_CONFIG), then from
TIDES_* environment variables (a .env file in the working directory is
loaded first), then from flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.configureLogging(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "tides %s\n", version)
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().
		StringVar(&opts.logFile, "log", "", "write structured JSON log to FILE")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStationCmd())
	rootCmd.AddCommand(newDocsCmd())
	return rootCmd
}

// configureLogging installs the default slog logger: console output on
// stderr and, with --log, a JSON debug log.
func (o *globalOpts) configureLogging(stderr io.Writer) error {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	} else if !o.quiet {
		level = slog.LevelInfo
	}

	var console slog.Handler
	if f, ok := stderr.(*os.File); ok {
		console = ui.ConsoleHandler(f, level)
	} else {
		console = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	}

	var handler slog.Handler = console
	if o.logFile != "" {
		lf, err := os.Create(o.logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		o.logCloser = lf
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		handler = ui.NewMultiHandler(console, jsonHandler)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadSettings merges the config file, environment and any flags the user
// set explicitly, in increasing order of precedence.
func loadSettings(cmd *cobra.Command) config.Settings {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config", "path", config.Path(), "error", err)
	}
	cfg.ApplyEnv()

	if f := cmd.Flags().Lookup("hours"); f != nil && f.Changed {
		hours, _ := cmd.Flags().GetInt("hours") //nolint:errcheck // flag name is hardcoded
		cfg.Defaults.Hours = &hours
	}
	if f := cmd.Flags().Lookup("resolution"); f != nil && f.Changed {
		res, _ := cmd.Flags().GetString("resolution") //nolint:errcheck // flag name is hardcoded
		cfg.Defaults.Resolution = &res
	}
	return cfg.Resolve()
}

func newClient(s config.Settings) *gauge.Client {
	return gauge.NewClient(gauge.Config{
		BaseURL:   s.BaseURL,
		Timeout:   s.Timeout,
		Backoff:   gauge.Backoff{MaxRetries: s.MaxRetries},
		UserAgent: "tides/" + version,
	})
}

// exitError carries a specific process exit code: 1 for runtime failures,
// 2 for invalid input.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(err error) error {
	return &exitError{code: 2, err: err}
}
