package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spendwise/internal/config"
	"spendwise/internal/core"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{123456, "1,234.56"},
		{123456789, "1,234,567.89"},
		{100000000, "1,000,000.00"},
		{-1999, "-19.99"},
	}
	for _, tt := range tests {
		if got := FormatMoney(core.Money{Cents: tt.cents}); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(1.25); got != "125.0%" {
		t.Errorf("FormatPercent(1.25) = %q", got)
	}
	if got := FormatShare(33.333); got != "33.3%" {
		t.Errorf("FormatShare(33.333) = %q", got)
	}
	if got := FormatMean(20.005); got != "20.01" {
		t.Errorf("FormatMean(20.005) = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "By category",
		Headers: []string{"Category", "Sum"},
		Rows: [][]string{
			{"Food", "40.00"},
			{"---"},
			{"Total", "1,040.00"},
		},
	})
	for _, want := range []string{"By category", "Category", "Food", "1,040.00", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 8 {
		t.Errorf("table has %d lines, want 8:\n%s", lines, out)
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderBudgetBar(t *testing.T) {
	bar := RenderBudgetBar(1.25, 0.9, 10)
	if !strings.Contains(bar, strings.Repeat("█", 10)) || !strings.Contains(bar, "125.0%") {
		t.Errorf("overspent bar = %q", bar)
	}
	half := RenderBudgetBar(0.5, 0.9, 10)
	if !strings.Contains(half, strings.Repeat("█", 5)+strings.Repeat("░", 5)) {
		t.Errorf("half bar = %q", half)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 7, 14}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if got := RenderSparkline([]float64{0, 0}); got != "▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
}

func TestSetupLoggerUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("verbose", &buf)
	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if !strings.Contains(out, "Unknown log level") || !strings.Contains(out, "shown") {
		t.Errorf("log output = %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug records must be filtered at info level")
	}
}

func TestOpenBackendSeedsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("error", &buf)
	cfg := &config.Config{
		DataBackend:           "sqlite",
		SQLiteDBPath:          filepath.Join(t.TempDir(), "expenses.db"),
		SeedDemoData:          true,
		Taxonomy:              core.DefaultTaxonomy(),
		DefaultAlertThreshold: 0.9,
	}
	ctx := context.Background()

	count := func() int {
		b, err := OpenBackend(ctx, cfg, logger)
		if err != nil {
			t.Fatalf("OpenBackend: %v", err)
		}
		defer b.Close()
		all, err := b.Expenses.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		return len(all)
	}

	first := count()
	if first == 0 {
		t.Fatal("expected demo expenses in an empty store")
	}
	if second := count(); second != first {
		t.Errorf("reopening reseeded: %d expenses, want %d", second, first)
	}

	cfg.DataBackend = "postgres"
	if _, err := OpenBackend(ctx, cfg, logger); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestGracefulShutdown(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger("info", &buf)
	err := GracefulShutdown(logger, 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err == nil || !strings.Contains(buf.String(), "Shutdown timeout reached") {
		t.Errorf("err = %v, log = %q", err, buf.String())
	}
}
