package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"nutrition-tracker/internal/app"
	"nutrition-tracker/internal/config"
	"nutrition-tracker/internal/database"
	"nutrition-tracker/internal/history"
	"nutrition-tracker/internal/logging"
	"nutrition-tracker/internal/mailer"
	"nutrition-tracker/internal/nutrition"
	"nutrition-tracker/internal/nutritionix"
	"nutrition-tracker/internal/storage"
	"nutrition-tracker/internal/telegram"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries the flags and the process-lifetime dependencies built once in PersistentPreRunE.
type cli struct {
	configPath   string
	verbose      bool
	historyLimit int
	cleanupDays  int

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "nutrition-tracker [food item]",
		Short: "Look up a food's nutrients and email the report",
		Long: `nutrition-tracker queries the Nutritionix API for a food item, prints a
nutrition report, saves it to a dated file in the logs directory and emails it
with the file attached.

Run without arguments to be prompted for the food item. A food whose name
is also a subcommand must follow "--", as in: nutrition-tracker -- history`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: c.runReport,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent pipeline runs",
		Args:  cobra.NoArgs,
		RunE:  c.listHistory,
	}

	historyCleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove old run records",
		Args:  cobra.NoArgs,
		RunE:  c.cleanupHistory,
	}

	historyStatsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show disk usage of the logs directory",
		Args:  cobra.NoArgs,
		RunE:  c.historyStats,
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	historyCmd.Flags().IntVar(&c.historyLimit, "limit", 20, "number of runs to show")
	historyCleanupCmd.Flags().IntVar(&c.cleanupDays, "days", 30, "keep records for the last N days")

	historyCmd.AddCommand(historyCleanupCmd, historyStatsCmd)
	rootCmd.AddCommand(historyCmd)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration once. Credentials are checked by the report run only.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Read(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, c.verbose)
	if err != nil {
		return err
	}
	c.cfg, c.logger = cfg, logger
	return nil
}

func (c *cli) runReport(cmd *cobra.Command, args []string) error {
	// A missing required value stops the process before any pipeline state.
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := cmd.Context()
	console := cmd.OutOrStdout()

	store := storage.NewArtifactStore(c.cfg.Storage.WorkDir, c.cfg.Storage.LogsDir)
	sender, err := mailer.NewFromConfig(ctx, c.cfg, console, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}

	application := app.NewApp(c.cfg, nutritionix.NewClient(c.cfg, console, c.logger), store, sender, console, c.logger)

	if db, err := database.NewDB(c.cfg.Storage.HistoryDBPath, c.logger); err != nil {
		c.logger.Warn("run history disabled", zap.Error(err))
	} else {
		defer db.Close()
		application.WithRecorder(history.NewStore(db.SQL))
	}

	if bucket := c.cfg.Storage.ArchiveBucket; bucket != "" {
		archiver, err := storage.NewS3Archiver(ctx, c.cfg.Delivery.AWSRegion, bucket)
		if err != nil {
			c.logger.Warn("S3 archiving disabled", zap.Error(err))
		} else {
			application.WithArchiver(archiver)
		}
	}

	if c.cfg.Telegram.Enabled() {
		notifier, err := telegram.NewNotifier(c.cfg.Telegram.BotToken, c.cfg.Telegram.ChatID, c.logger)
		if err != nil {
			c.logger.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			application.WithNotifier(notifier)
		}
	}

	fmt.Fprintln(console, "\n--- Nutrition Tracker ---")

	var outcome *app.Outcome
	if len(args) > 0 {
		outcome, err = application.RunText(ctx, strings.Join(args, " "))
		if nutrition.KindOf(err) == nutrition.KindInputInvalid {
			return fmt.Errorf("invalid food item: %w", err)
		}
		if err != nil {
			return err
		}
	} else {
		outcome, err = application.RunInteractive(ctx, cmd.InOrStdin())
		if errors.Is(err, app.ErrNoInput) {
			fmt.Fprintln(console, "No food item entered. The program will now exit.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	c.logger.Info("run finished",
		zap.String("run_id", outcome.RunID),
		zap.Stringer("state", outcome.State),
		zap.String("status", string(outcome.Status)),
		zap.String("artifact", outcome.ArtifactPath))
	return nil
}

func (c *cli) openHistory() (*history.Store, error) {
	db, err := database.NewDB(c.cfg.Storage.HistoryDBPath, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	return history.NewStore(db.SQL), nil
}

func (c *cli) listHistory(cmd *cobra.Command, args []string) error {
	store, err := c.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), c.historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%-14s %-24s %-16s %s", humanize.Time(r.StartedAt), r.Outcome, r.State, r.Query)
		if r.FailureKind != "" {
			fmt.Fprintf(out, " (%s)", r.FailureKind)
		}
		if r.ArtifactPath != "" {
			fmt.Fprintf(out, " -> %s", r.ArtifactPath)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func (c *cli) cleanupHistory(cmd *cobra.Command, args []string) error {
	store, err := c.openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	affected, err := store.Cleanup(cmd.Context(), c.cleanupDays)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully removed %d old run records.\n", affected)
	return nil
}

func (c *cli) historyStats(cmd *cobra.Command, args []string) error {
	store := storage.NewArtifactStore(c.cfg.Storage.WorkDir, c.cfg.Storage.LogsDir)
	usage, err := store.LogsUsage()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", store.LogsDir(), usage)
	return nil
}
