package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spendwise/internal/amqp"
	"spendwise/internal/export"
)

var (
	exportOut   string
	exportQueue bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every expense as CSV to stdout, a file, or the worker queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := ctxOf(cmd)
		if exportQueue {
			if app.cfg.AMQPURL == "" {
				return fmt.Errorf("--queue needs AMQP_URL")
			}
			client, err := amqp.NewClient(app.cfg.AMQPURL, app.cfg.AMQPExchange, app.cfg.AMQPQueue)
			if err != nil {
				return err
			}
			defer client.Close()
			msg, err := client.PublishExportRequest(ctx, amqp.TriggerManual, exportOut)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Queued export job %s\n", msg.JobID)
			return nil
		}

		rows, err := app.backend.Expenses.ExportRows(ctx)
		if err != nil {
			return err
		}
		if exportOut == "" || exportOut == "-" {
			return export.WriteCSV(cmd.OutOrStdout(), rows)
		}
		path, err := export.WriteFile(app.cfg.ExportDir, exportOut, rows)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", len(rows), path)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the demo expenses when the store is empty",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, err := app.backend.Expenses.SeedSampleData(ctxOf(cmd), today())
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Store already holds expenses, nothing seeded")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d demo expenses\n", n)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "File name inside EXPORT_DIR (default stdout). With --queue, the job's file name")
	exportCmd.Flags().BoolVar(&exportQueue, "queue", false, "Queue the export for spendwise-worker instead of writing it now")
	rootCmd.AddCommand(exportCmd, seedCmd)
}
