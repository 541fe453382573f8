package domain

import "errors"

// Error kinds surfaced at the UI boundary. None are fatal to the process.
var (
	// ErrConnectivity means the model server is unreachable.
	ErrConnectivity = errors.New("cannot connect to Ollama, run: ollama serve")
	// ErrModel means the model server returned a non-success response.
	ErrModel = errors.New("model returned an error response")
	// ErrEmptyPrompt means the user submitted a blank prompt.
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrEmptyCommand means there was no command to filter or execute.
	ErrEmptyCommand = errors.New("no command to execute")
)

// Generation is the model client output for one prompt.
type Generation struct {
	Command string `json:"command"`
	Raw     string `json:"raw,omitempty"`
}

// CommandResponse is the canonical response propagated back to the UI.
type CommandResponse struct {
	Prompt  string         `json:"prompt"`
	Command string         `json:"command"`
	Verdict Verdict        `json:"verdict"`
	Record  *HistoryRecord `json:"record,omitempty"`
}

// ExecutionResult wraps details from the command executor.
//
// TimedOut is a distinct outcome and is never conflated with a
// non-zero exit code.
type ExecutionResult struct {
	Ran         bool   `json:"ran"`
	Stdout      string `json:"stdout"`
	Stderr      string `json:"stderr"`
	ExitCode    int    `json:"exit_code"`
	DurationMS  int64  `json:"duration_ms"`
	TimedOut    bool   `json:"timed_out"`
	DryRunNotes string `json:"dry_run_notes,omitempty"`
	Err         error  `json:"-"`
}

// ModelStatus reports Ollama reachability for the doctor and status endpoints.
type ModelStatus struct {
	Reachable  bool   `json:"reachable"`
	ModelFound bool   `json:"model_found"`
	Message    string `json:"message"`
}
