package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
)

type fakeRows struct {
	rows []core.ExportRow
	err  error
}

func (f fakeRows) ExportRows(context.Context) ([]core.ExportRow, error) {
	return f.rows, f.err
}

var sampleRows = []core.ExportRow{
	{ID: 1, Date: "2024-01-05", Category: "Groceries", PaymentMethod: "UPI", Amount: 200, Notes: "Weekly veg run"},
}

func TestExportWorker_HandleExportRequest(t *testing.T) {
	dir := t.TempDir()
	w := NewExportWorker(fakeRows{rows: sampleRows}, dir, nil)

	msg := amqp.NewExportRequestMessage(amqp.TriggerManual, "manual.csv")
	if err := w.HandleExportRequest(context.Background(), msg); err != nil {
		t.Fatalf("HandleExportRequest: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(dir, "manual.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(content), "1,2024-01-05,Groceries,UPI,200.00,Weekly veg run") {
		t.Errorf("export content = %q", content)
	}
}

func TestExportWorker_FileNameCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	w := NewExportWorker(fakeRows{rows: sampleRows}, filepath.Join(dir, "exports"), nil)
	msg := amqp.NewExportRequestMessage(amqp.TriggerManual, "../outside.csv")
	if err := w.HandleExportRequest(context.Background(), msg); err != nil {
		t.Fatalf("HandleExportRequest: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "outside.csv")); err == nil {
		t.Fatalf("export escaped the export directory")
	}
	if _, err := os.Stat(filepath.Join(dir, "exports", "outside.csv")); err != nil {
		t.Errorf("export not written inside the directory: %v", err)
	}
}

func TestExportWorker_Snapshot(t *testing.T) {
	dir := t.TempDir()
	w := NewExportWorker(fakeRows{rows: sampleRows}, dir, nil)
	w.now = func() time.Time { return time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC) }

	path, err := w.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if filepath.Base(path) != "expenses-20240301T060000.csv" {
		t.Errorf("Snapshot() path = %q", path)
	}
}

func TestExportWorker_SourceError(t *testing.T) {
	boom := errors.New("database is locked")
	w := NewExportWorker(fakeRows{err: boom}, t.TempDir(), nil)
	err := w.HandleExportRequest(context.Background(), amqp.NewExportRequestMessage(amqp.TriggerManual, ""))
	if !errors.Is(err, boom) {
		t.Errorf("HandleExportRequest() = %v, want wrapped source error", err)
	}
}

func TestNewScheduler(t *testing.T) {
	noop := func(context.Context) error { return nil }
	if _, err := NewScheduler("every morning", noop, nil); err == nil {
		t.Fatal("NewScheduler should reject an invalid expression")
	}

	s, err := NewScheduler("0 6 * * *", noop, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	from := time.Date(2024, 3, 1, 7, 0, 0, 0, time.Local)
	want := time.Date(2024, 3, 2, 6, 0, 0, 0, time.Local)
	if got := s.Next(from); !got.Equal(want) {
		t.Errorf("Next(%v) = %v, want %v", from, got, want)
	}
}

func TestScheduler_Run(t *testing.T) {
	var runs atomic.Int32
	s, err := NewScheduler("@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduled job never ran")
		case <-time.After(50 * time.Millisecond):
		}
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
