package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sleeptracker/internal/bootstrap"
	"sleeptracker/internal/platform/config"
	"sleeptracker/internal/platform/logging"
	"sleeptracker/internal/ui/views/nights"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	dataDir    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "sleeptracker",
		Short:         "Track my sleep quality",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <data-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newStartCmd(flags))
	root.AddCommand(newStopCmd(flags))
	root.AddCommand(newRateCmd(flags))
	root.AddCommand(newListCmd(flags))
	root.AddCommand(newSummaryCmd(flags))
	root.AddCommand(newClearCmd(flags))
	root.AddCommand(newExportCmd(flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath, flags.dataDir)
	if err != nil {
		return config.Config{}, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(flags.logLevel))
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// loadApp builds the app for a one-shot command. Logs go to the command's
// stderr so they never mix with its output.
func loadApp(cmd *cobra.Command, flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cmd.Context(), cfg, logging.New(cfg.Logging, cmd.ErrOrStderr()))
}

// withApp runs fn against a fresh app and closes it afterwards.
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, app *bootstrap.App, out io.Writer) error) error {
	app, err := loadApp(cmd, flags)
	if err != nil {
		return err
	}
	runErr := fn(cmd.Context(), app, cmd.OutOrStdout())
	closeErr := app.Close()
	return errors.Join(runErr, closeErr)
}

func runTUI(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger, logFile, err := logging.NewFile(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	app, err := bootstrap.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	runErr := bootstrap.RunTUI(app)
	return errors.Join(runErr, app.Close())
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the sleep tracker terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func newStartCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start tracking a night",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				night, err := app.SleepCLI.Start(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "started night %d at %s\n", night.ID, app.Formatter.Date(night.StartTimeMilli))
				return nil
			})
		},
	}
}

func newStopCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop tracking the current night",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				night, err := app.SleepCLI.Stop(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "stopped night %d: %s\n", night.ID, app.Formatter.Duration(night.StartTimeMilli, night.EndTimeMilli))
				_, _ = fmt.Fprintf(out, "rate it with: sleeptracker rate --id %d --quality <0-5>\n", night.ID)
				return nil
			})
		},
	}
}

func newRateCmd(flags *globalFlags) *cobra.Command {
	var nightID int64
	var quality int
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Rate a night from 0 to 5 (latest night by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("quality") {
				return fmt.Errorf("--quality is required")
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				night, err := app.SleepCLI.Rate(ctx, nightID, quality)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "night %d rated %s\n", night.ID, app.Formatter.QualityLabel(night.Quality))
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&nightID, "id", 0, "night id (0 rates the latest night)")
	cmd.Flags().IntVar(&quality, "quality", 0, "quality 0-5")
	return cmd
}

func newListCmd(flags *globalFlags) *cobra.Command {
	var sinceText string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded nights, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var since time.Time
			if sinceText != "" {
				parsed, err := parseSince(sinceText, time.Now())
				if err != nil {
					return err
				}
				since = parsed
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				list, err := app.SleepCLI.List(ctx, since, limit)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					_, _ = fmt.Fprintln(out, "no nights")
					return nil
				}
				for _, n := range list {
					duration := "in progress"
					if !n.InProgress {
						duration = app.Formatter.Duration(n.StartTimeMilli, n.EndTimeMilli)
					}
					_, _ = fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n",
						n.ID,
						nights.IconFor(n.Quality).Glyph(),
						duration,
						app.Formatter.QualityLabel(n.Quality),
						humanize.Time(n.Start()),
					)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sinceText, "since", "", `only nights started after this date ("2026-03-01", "last week")`)
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of nights (0 for all)")
	return cmd
}

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the nights summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				summary, err := app.SleepCLI.Summary(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(out, summary)
				return nil
			})
		},
	}
}

func newClearCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded night",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all nights without --yes")
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				res, err := app.SleepCLI.Clear(ctx)
				if err != nil {
					return err
				}
				app.Logger.Info().Int64("deleted", res.Deleted).Msg("nights cleared")
				_, _ = fmt.Fprintf(out, "deleted %d nights\n%s\n", res.Deleted, app.Formatter.Strings().ClearedMessage)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write completed nights as markdown journal notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App, out io.Writer) error {
				res, err := app.SleepCLI.Export(ctx, dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "exported %d notes (%d unchanged, %d in progress skipped) to %s\n", res.Written, res.Unchanged, res.Skipped, res.Dir)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "journal directory (default from config)")
	return cmd
}
