// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The application depends on these abstractions rather
// than on concrete implementations like HTTP clients, SQLite, or the host shell.
package ports

import (
	"context"

	"github.com/doeshing/deskcommander/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.deskcommander/config.json.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ModelClient issues synchronous calls against a local generation endpoint
// and extracts a candidate shell command from the free-text completion.
type ModelClient interface {
	Generate(ctx context.Context, cfg domain.Config, prompt string) (domain.Generation, error)
	ListModels(ctx context.Context, cfg domain.Config) ([]string, error)
	Check(ctx context.Context, cfg domain.Config) domain.ModelStatus
}

// SecurityService evaluates candidate commands against the deny-pattern list.
// SafeModeAllows additionally restricts commands to the read-only allow-list.
type SecurityService interface {
	Evaluate(command string) domain.Verdict
	SafeModeAllows(command string) bool
}

// CommandExecutor runs approved commands through the system shell.
type CommandExecutor interface {
	Execute(ctx context.Context, command string, dryRun bool) (domain.ExecutionResult, error)
}

// HistoryBuffer is the capped in-memory attempt list backing the UI history panel.
// Append evicts the oldest entry once the cap is reached.
type HistoryBuffer interface {
	Append(domain.HistoryRecord)
	Records() []domain.HistoryRecord
	Clear()
	Cap() int
}

// HistoryRepository persists attempts beyond the display ring.
type HistoryRepository interface {
	Save(domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
