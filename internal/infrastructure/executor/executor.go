// Package executor runs approved commands on the host shell.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/ports"
)

// LocalExecutor runs commands through the system shell with a bounded timeout.
type LocalExecutor struct {
	shell string
}

// NewLocalExecutor builds a new executor, shell defaults to /bin/sh.
func NewLocalExecutor(shell string) *LocalExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &LocalExecutor{shell: shell}
}

// Shell returns the shell binary used for execution.
func (e *LocalExecutor) Shell() string {
	return e.shell
}

// Execute implements ports.CommandExecutor. With dryRun set it never spawns
// a subprocess and instead reports what would have run.
func (e *LocalExecutor) Execute(ctx context.Context, command string, dryRun bool) (domain.ExecutionResult, error) {
	if dryRun {
		return domain.ExecutionResult{
			Ran:         false,
			DryRunNotes: e.dryRunNotes(command),
		}, nil
	}

	c := exec.CommandContext(ctx, e.shell, "-c", command)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.ExecutionResult{
		Ran:        true,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
	}

	// A deadline hit is a distinct outcome, not a plain non-zero exit.
	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.Err = ctx.Err()
		return result, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
		return result, nil
	}
	if err != nil {
		result.Ran = false
		result.Err = err
		return result, err
	}
	return result, nil
}

func (e *LocalExecutor) dryRunNotes(command string) string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "?"
	}
	return fmt.Sprintf("would execute: %s\nworking directory: %s\nshell: %s", command, wd, e.shell)
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
