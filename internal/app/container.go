// Package app wires application services with infrastructure adapters.
package app

import (
	"net/http"

	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/infrastructure/config"
	"github.com/doeshing/deskcommander/internal/infrastructure/executor"
	"github.com/doeshing/deskcommander/internal/infrastructure/history"
	"github.com/doeshing/deskcommander/internal/infrastructure/ollama"
	"github.com/doeshing/deskcommander/internal/infrastructure/security"
	"github.com/doeshing/deskcommander/internal/pkg/logger"
	"github.com/doeshing/deskcommander/internal/ports"
	"github.com/doeshing/deskcommander/internal/services"
)

// Container holds the wired dependency graph.
type Container struct {
	CommandService *services.CommandService
	ConfigLoader   *config.FileLoader
	ModelClient    ports.ModelClient
	HistoryStore   ports.HistoryRepository
	Logger         ports.Logger
}

// Options select launch-time behavior.
type Options struct {
	Verbose  bool
	DryRun   bool
	SafeMode bool
}

// BuildContainer constructs the dependency graph.
func BuildContainer(opts Options) (*Container, error) {
	log := logger.New(opts.Verbose)
	cfgLoader := config.NewFileLoader("")

	guardrail, err := security.NewGuardrail("")
	if err != nil {
		return nil, err
	}

	model := ollama.NewClient(http.DefaultClient)
	ring := history.NewRingStore(domain.HistoryDisplayCap)

	// persistence is best-effort; the ring alone keeps the UI working
	var repo ports.HistoryRepository
	if store, err := history.NewSQLiteStore(); err == nil {
		repo = store
	} else {
		log.Warn("history database unavailable", map[string]interface{}{"error": err.Error()})
	}

	svc := &services.CommandService{
		ConfigProvider: cfgLoader,
		Model:          model,
		Security:       guardrail,
		Executor:       executor.NewLocalExecutor(""),
		Ring:           ring,
		History:        repo,
		Logger:         log,
		DryRun:         opts.DryRun,
		SafeMode:       opts.SafeMode,
	}

	return &Container{
		CommandService: svc,
		ConfigLoader:   cfgLoader,
		ModelClient:    model,
		HistoryStore:   repo,
		Logger:         log,
	}, nil
}
