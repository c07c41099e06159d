// Command spendwise-worker writes CSV exports of the expense collection:
// on request from the export job queue, and on the EXPORT_SCHEDULE cron expression.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"spendwise/internal/amqp"
	"spendwise/internal/cli"
	"spendwise/internal/config"
	"spendwise/internal/log"
	"spendwise/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg.LogLevel, os.Stdout).WithComponent(log.ComponentWorker)
	if err := run(cfg, logger); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

func run(cfg *config.Config, logger *log.Logger) error {
	logger.Info("Starting spendwise-worker")
	if cfg.AMQPURL == "" && cfg.ExportSchedule == "" {
		return errors.New("nothing to do: set AMQP_URL, EXPORT_SCHEDULE or both")
	}

	ctx, stop := cli.ShutdownContext(context.Background())
	defer stop()

	// The worker exports what the store holds; it never seeds demo data.
	cfg.SeedDemoData = false
	b, err := cli.OpenBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer b.Close()

	exportWorker := worker.NewExportWorker(b.Expenses, cfg.ExportDir, logger)
	g, gctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("initialize AMQP client: %w", err)
		}
		defer client.Close()

		g.Go(func() error {
			logger.Info("Consuming export jobs", "queue", cfg.AMQPQueue)
			return client.ConsumeExportRequests(gctx, exportWorker.HandleExportRequest)
		})
	} else {
		logger.Info("Export queue disabled - no AMQP_URL provided")
	}

	if cfg.ExportSchedule != "" {
		scheduler, err := worker.NewScheduler(cfg.ExportSchedule, func(ctx context.Context) error {
			_, err := exportWorker.Snapshot(ctx)
			return err
		}, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return scheduler.Run(gctx) })
	} else {
		logger.Info("Scheduled snapshots disabled - no EXPORT_SCHEDULE provided")
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
