// Package worker runs export jobs, from the queue and on a schedule.
package worker

import (
	"context"
	"fmt"
	"time"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
	"spendwise/internal/export"
	"spendwise/internal/log"
)

// RowSource supplies the flat export rows.
type RowSource interface {
	ExportRows(ctx context.Context) ([]core.ExportRow, error)
}

// ExportWorker writes CSV exports of the whole expense collection into a directory.
type ExportWorker struct {
	rows   RowSource
	dir    string
	now    func() time.Time
	logger *log.Logger
}

func NewExportWorker(rows RowSource, dir string, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExportWorker{
		rows:   rows,
		dir:    dir,
		now:    time.Now,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleExportRequest runs one queued export job.
func (w *ExportWorker) HandleExportRequest(ctx context.Context, msg *amqp.ExportRequestMessage) error {
	path, err := w.write(ctx, msg.FileName)
	if err != nil {
		return fmt.Errorf("export job %s: %w", msg.JobID, err)
	}
	w.logger.InfoContext(ctx, "Export job completed",
		log.FieldJobID, msg.JobID,
		"trigger", msg.Trigger,
		"path", path)
	return nil
}

// Snapshot writes a timestamped export and returns its path.
func (w *ExportWorker) Snapshot(ctx context.Context) (string, error) {
	return w.write(ctx, "")
}

func (w *ExportWorker) write(ctx context.Context, name string) (string, error) {
	rows, err := w.rows.ExportRows(ctx)
	if err != nil {
		return "", fmt.Errorf("load export rows: %w", err)
	}
	if name == "" {
		name = export.SnapshotName(w.now())
	}
	path, err := export.WriteFile(w.dir, name, rows)
	if err != nil {
		return "", err
	}
	w.logger.DebugContext(ctx, "Export written", log.FieldOperation, log.OpExport, log.FieldRows, len(rows), "path", path)
	return path, nil
}
