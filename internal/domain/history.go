package domain

import "time"

// CommandStatus classifies the outcome of a command attempt.
type CommandStatus string

const (
	StatusSuccess CommandStatus = "success"
	StatusError   CommandStatus = "error"
	StatusWarning CommandStatus = "warning"
)

// HistoryRecord captures one prompt/command attempt for display and persistence.
type HistoryRecord struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	Prompt     string        `json:"prompt"`
	Command    string        `json:"command"`
	Output     string        `json:"output"`
	Status     CommandStatus `json:"status"`
	Executed   bool          `json:"executed"`
	ExitCode   int           `json:"exit_code"`
	DurationMS int64         `json:"duration_ms"`
}

// TruncateOutput caps the stored output so history entries stay small.
func (r *HistoryRecord) TruncateOutput() {
	if len(r.Output) > HistoryOutputLimit {
		r.Output = r.Output[:HistoryOutputLimit] + "..."
	}
}
