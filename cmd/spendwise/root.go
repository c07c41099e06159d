package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"spendwise/internal/analytics"
	"spendwise/internal/backend"
	"spendwise/internal/cli"
	"spendwise/internal/config"
	"spendwise/internal/core"
	"spendwise/internal/log"
)

var (
	flagBackend  string
	flagDBPath   string
	flagLogLevel string
	flagNoSeed   bool
)

// app holds what PersistentPreRunE prepared for the running command.
var app struct {
	cfg     *config.Config
	logger  *log.Logger
	backend *backend.Backend
}

var rootCmd = &cobra.Command{
	Use:          "spendwise",
	Short:        "Personal expense tracking and budgeting",
	Long:         "Record expenses, plan monthly budgets and savings goals, and analyze where the money goes.",
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cli.LoadEnvFile()
		cfg := config.Load()
		if cmd.Flags().Changed("backend") {
			cfg.DataBackend = flagBackend
		}
		if cmd.Flags().Changed("db") {
			cfg.SQLiteDBPath = flagDBPath
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flagLogLevel
		}
		if flagNoSeed {
			cfg.SeedDemoData = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := cli.SetupLogger(cfg.LogLevel, os.Stderr)
		b, err := cli.OpenBackend(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		app.cfg, app.logger, app.backend = cfg, logger, b
		return nil
	},

	PersistentPostRunE: func(*cobra.Command, []string) error {
		if app.backend == nil {
			return nil
		}
		return app.backend.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Record store: sqlite or memory (default from DATA_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite database path (default from SQLITE_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoSeed, "no-seed", false, "Do not add demo expenses to an empty store")
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func today() core.Date {
	return core.DateOf(time.Now())
}

// monthArg parses an optional YYYY-MM argument, defaulting to the current month.
func monthArg(args []string) (core.Month, error) {
	if len(args) == 0 || args[0] == "" {
		return today().Month(), nil
	}
	return core.ParseMonth(args[0])
}

// filterFlags are the listing filters shared by the reporting commands.
type filterFlags struct {
	from, to   string
	categories []string
	methods    []string
	text       string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "First date included (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last date included (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "Only these categories (repeat or comma separate)")
	cmd.Flags().StringSliceVarP(&f.methods, "method", "m", nil, "Only these payment methods")
	cmd.Flags().StringVarP(&f.text, "query", "q", "", "Notes containing this text (case insensitive)")
}

func (f *filterFlags) filter() (analytics.Filter, error) {
	var out analytics.Filter
	var err error
	if f.from != "" {
		if out.From, err = core.ParseDate(f.from); err != nil {
			return analytics.Filter{}, fmt.Errorf("--from: %w", err)
		}
	}
	if f.to != "" {
		if out.To, err = core.ParseDate(f.to); err != nil {
			return analytics.Filter{}, fmt.Errorf("--to: %w", err)
		}
	}
	out.Categories = f.categories
	out.PaymentMethods = f.methods
	out.Text = f.text
	return out, nil
}
