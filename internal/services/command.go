// Package services orchestrates the prompt-to-execution chain.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/ports"
)

// CommandService drives the full chain: build prompt, call the model,
// filter the candidate, optionally execute, record the attempt. Every step
// is a sequential request/response call triggered by a UI event.
type CommandService struct {
	ConfigProvider ports.ConfigProvider
	Model          ports.ModelClient
	Security       ports.SecurityService
	Executor       ports.CommandExecutor
	Ring           ports.HistoryBuffer
	History        ports.HistoryRepository
	Logger         ports.Logger

	// DryRun suppresses subprocess execution; SafeMode restricts commands
	// to the read-only allow-list. Both are set once at launch.
	DryRun   bool
	SafeMode bool
}

// Generate turns a natural-language prompt into a filtered candidate command.
func (s *CommandService) Generate(ctx context.Context, prompt string) (domain.CommandResponse, error) {
	if err := s.checkDeps(); err != nil {
		return domain.CommandResponse{}, err
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return domain.CommandResponse{}, domain.ErrEmptyPrompt
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.CommandResponse{}, fmt.Errorf("load config: %w", err)
	}

	genCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	gen, err := s.Model.Generate(genCtx, cfg, prompt)
	if err != nil {
		return domain.CommandResponse{}, err
	}

	s.Logger.Debug("command generated", map[string]interface{}{
		"prompt":  prompt,
		"command": gen.Command,
	})

	return domain.CommandResponse{
		Prompt:  prompt,
		Command: gen.Command,
		Verdict: s.Security.Evaluate(gen.Command),
	}, nil
}

// Execute filters and runs a command, recording the attempt in history.
// Denied commands are recorded as warnings and never reach the executor.
func (s *CommandService) Execute(ctx context.Context, prompt string, command string) (domain.CommandResponse, error) {
	if err := s.checkDeps(); err != nil {
		return domain.CommandResponse{}, err
	}
	command = strings.TrimSpace(command)
	if command == "" {
		return domain.CommandResponse{}, domain.ErrEmptyCommand
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.CommandResponse{}, fmt.Errorf("load config: %w", err)
	}

	resp := domain.CommandResponse{Prompt: prompt, Command: command}
	resp.Verdict = s.Security.Evaluate(command)
	if !resp.Verdict.Allowed {
		record := s.record(prompt, command, fmt.Sprintf("Command blocked for safety: %s", resp.Verdict.Reason), domain.StatusWarning, false, 0, 0)
		resp.Record = &record
		return resp, nil
	}

	if s.SafeMode && !s.Security.SafeModeAllows(command) {
		record := s.record(prompt, command, safeModeMessage(command), domain.StatusWarning, false, 0, 0)
		resp.Record = &record
		return resp, nil
	}

	execCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	result, execErr := s.Executor.Execute(execCtx, command, s.DryRun)
	output, status := renderOutcome(result, execErr, cfg.TimeoutSeconds)
	record := s.record(prompt, command, output, status, result.Ran, result.ExitCode, result.DurationMS)
	resp.Record = &record
	return resp, nil
}

// Run performs the full generate-then-execute chain for one prompt.
func (s *CommandService) Run(ctx context.Context, prompt string) (domain.CommandResponse, error) {
	resp, err := s.Generate(ctx, prompt)
	if err != nil {
		return resp, err
	}
	return s.Execute(ctx, prompt, resp.Command)
}

// Status reports model reachability plus the active launch modes.
func (s *CommandService) Status(ctx context.Context) (domain.ModelStatus, domain.Config, error) {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.ModelStatus{}, domain.Config{}, err
	}
	return s.Model.Check(ctx, cfg), cfg, nil
}

func (s *CommandService) record(prompt, command, output string, status domain.CommandStatus, executed bool, exitCode int, durationMS int64) domain.HistoryRecord {
	record := domain.HistoryRecord{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		Prompt:     prompt,
		Command:    command,
		Output:     output,
		Status:     status,
		Executed:   executed,
		ExitCode:   exitCode,
		DurationMS: durationMS,
	}
	record.TruncateOutput()
	s.Ring.Append(record)
	if s.History != nil {
		if err := s.History.Save(record); err != nil {
			s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return record
}

// renderOutcome folds an execution result into display output and a status.
func renderOutcome(result domain.ExecutionResult, execErr error, timeoutSeconds int) (string, domain.CommandStatus) {
	if result.DryRunNotes != "" {
		return "[DRY RUN MODE - Command NOT executed]\n\n" + result.DryRunNotes, domain.StatusSuccess
	}
	if result.TimedOut {
		return fmt.Sprintf("Command timed out after %d seconds", timeoutSeconds), domain.StatusError
	}
	if execErr != nil && !result.Ran {
		return fmt.Sprintf("Execution failed: %v", execErr), domain.StatusError
	}
	if result.Stderr != "" && result.ExitCode != 0 {
		return fmt.Sprintf("Error:\n%s\n\nOutput:\n%s", result.Stderr, result.Stdout), domain.StatusError
	}
	if result.Stderr != "" {
		return fmt.Sprintf("Warnings:\n%s\n\nOutput:\n%s", result.Stderr, result.Stdout), domain.StatusWarning
	}
	if result.ExitCode != 0 {
		return fmt.Sprintf("Command exited with code %d\n%s", result.ExitCode, result.Stdout), domain.StatusError
	}
	if result.Stdout == "" {
		return "Command executed successfully (no output)", domain.StatusSuccess
	}
	return result.Stdout, domain.StatusSuccess
}

func safeModeMessage(command string) string {
	return fmt.Sprintf(`Command blocked by SAFE MODE

The command '%s' is not in the safe mode whitelist.

Safe mode only allows read-only commands that cannot modify the system.
To execute this command, disable safe mode.`, command)
}

func (s *CommandService) checkDeps() error {
	if s.ConfigProvider == nil || s.Model == nil || s.Security == nil ||
		s.Executor == nil || s.Ring == nil || s.Logger == nil {
		return errors.New("services.CommandService dependencies not satisfied")
	}
	return nil
}
