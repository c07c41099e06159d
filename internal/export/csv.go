// Package export serializes the flat expense rows to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"spendwise/internal/core"
)

// ContentType is the MIME type of WriteCSV output.
const ContentType = "text/csv"

// WriteCSV writes a header line and one record per row in column order
// id,date,category,payment_method,amount,notes.
func WriteCSV(w io.Writer, rows []core.ExportRow) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(core.ExportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.Date,
			r.Category,
			r.PaymentMethod,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.Notes,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r.ID, err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// SnapshotName names a scheduled export taken at t.
func SnapshotName(t time.Time) string {
	return "expenses-" + t.UTC().Format("20060102T150405") + ".csv"
}

// WriteFile writes rows to dir/name through a temporary file, so readers never
// see a partial export. It returns the final path.
func WriteFile(dir, name string, rows []core.ExportRow) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, rows); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}
