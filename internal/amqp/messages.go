package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Export job triggers
const (
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
)

// ExportRequestMessage asks the worker to write a CSV export of every expense.
// It carries no rows; the worker reads the store when it runs the job.
type ExportRequestMessage struct {
	JobID       string    `json:"job_id"`
	Trigger     string    `json:"trigger"`
	FileName    string    `json:"file_name,omitempty"` // empty lets the worker name the file
	RequestedAt time.Time `json:"requested_at"`
}

// NewExportRequestMessage creates a request with a fresh job id
func NewExportRequestMessage(trigger, fileName string) *ExportRequestMessage {
	return &ExportRequestMessage{
		JobID:       uuid.NewString(),
		Trigger:     trigger,
		FileName:    fileName,
		RequestedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExportRequestMessageFromJSON decodes and checks a message body
func ExportRequestMessageFromJSON(data []byte) (*ExportRequestMessage, error) {
	var msg ExportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(msg.JobID); err != nil {
		return nil, fmt.Errorf("invalid job id %q: %w", msg.JobID, err)
	}
	return &msg, nil
}
