package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"spendwise/internal/amqp"
	"spendwise/internal/export"
	"spendwise/internal/log"
)

// handleExportCSV streams every expense as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := s.backend.Expenses.ExportRows(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.SnapshotName(s.now())+`"`)
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, rows); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "CSV export interrupted",
			log.FieldRows, len(rows), log.FieldError, err.Error())
	}
}

type exportJobRequest struct {
	FileName string `json:"file_name"`
}

// handleExportJob queues an asynchronous export for the worker.
func (s *Server) handleExportJob(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		ServiceUnavailableError("export queue is not configured").Write(w)
		return
	}
	var req exportJobRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}
	fileName := filepath.Base(sanitizeInput(req.FileName))
	if fileName == "." || fileName == string(filepath.Separator) {
		fileName = ""
	}

	msg, err := s.publisher.PublishExportRequest(r.Context(), amqp.TriggerManual, fileName)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to queue export job",
			log.FieldError, err.Error(), "circuit_open", errors.Is(err, amqp.ErrCircuitOpen))
		ServiceUnavailableError("export queue unavailable").Write(w)
		return
	}
	NewJSONResponse().
		Status(http.StatusAccepted).
		Body(exportJobView{
			JobID:       msg.JobID,
			Trigger:     msg.Trigger,
			FileName:    msg.FileName,
			RequestedAt: msg.RequestedAt.Format(time.RFC3339),
		}).
		Write(w)
}
