package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"spendwise/internal/amqp"
	"spendwise/internal/cli"
	apphttp "spendwise/internal/http"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger := app.cfg, app.logger
		ctx, stop := cli.ShutdownContext(ctxOf(cmd))
		defer stop()

		var publisher apphttp.ExportPublisher
		if cfg.AMQPURL != "" {
			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				return err
			}
			defer client.Close()
			publisher = client
			logger.Info("Export queue enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		} else {
			logger.Info("Export queue disabled - no AMQP_URL provided")
		}

		srv := apphttp.NewServer(":"+cfg.Port, app.backend, publisher, logger)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("Starting spendwise server", "port", cfg.Port, "backend", cfg.DataBackend)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return cli.GracefulShutdown(logger, shutdownTimeout, srv.Shutdown)
		})
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("Server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
