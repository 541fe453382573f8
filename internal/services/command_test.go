package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/doeshing/deskcommander/internal/domain"
	"github.com/doeshing/deskcommander/internal/infrastructure/history"
	"github.com/doeshing/deskcommander/internal/ports"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s *stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubModel struct {
	command string
	err     error
	status  domain.ModelStatus
}

func (s *stubModel) Generate(context.Context, domain.Config, string) (domain.Generation, error) {
	if s.err != nil {
		return domain.Generation{}, s.err
	}
	return domain.Generation{Command: s.command, Raw: s.command}, nil
}

func (s *stubModel) ListModels(context.Context, domain.Config) ([]string, error) {
	return []string{s.command}, nil
}

func (s *stubModel) Check(context.Context, domain.Config) domain.ModelStatus { return s.status }

type stubSecurity struct {
	verdict   domain.Verdict
	safeAllow bool
}

func (s *stubSecurity) Evaluate(string) domain.Verdict { return s.verdict }
func (s *stubSecurity) SafeModeAllows(string) bool     { return s.safeAllow }

type stubExecutor struct {
	called bool
	dryRun bool
	result domain.ExecutionResult
	err    error
}

func (s *stubExecutor) Execute(_ context.Context, _ string, dryRun bool) (domain.ExecutionResult, error) {
	s.called = true
	s.dryRun = dryRun
	return s.result, s.err
}

type stubRepo struct {
	saved []domain.HistoryRecord
	err   error
}

func (s *stubRepo) Save(r domain.HistoryRecord) error {
	s.saved = append(s.saved, r)
	return s.err
}
func (s *stubRepo) Records(int, string) ([]domain.HistoryRecord, error) { return s.saved, nil }
func (s *stubRepo) Clear() error                                        { return nil }
func (s *stubRepo) ExportJSON(string) error                             { return nil }
func (s *stubRepo) Path() string                                        { return "" }

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func newTestService(model *stubModel, security *stubSecurity, executor *stubExecutor) *CommandService {
	return &CommandService{
		ConfigProvider: &stubConfig{cfg: domain.DefaultConfig()},
		Model:          model,
		Security:       security,
		Executor:       executor,
		Ring:           history.NewRingStore(domain.HistoryDisplayCap),
		Logger:         nopLogger{},
	}
}

func TestGenerateEmptyPrompt(t *testing.T) {
	svc := newTestService(&stubModel{command: "ls"}, &stubSecurity{verdict: domain.Allow(domain.RiskLow)}, &stubExecutor{})

	_, err := svc.Generate(context.Background(), "   ")
	if !errors.Is(err, domain.ErrEmptyPrompt) {
		t.Fatalf("err = %v, want ErrEmptyPrompt", err)
	}
}

func TestGenerateAttachesVerdict(t *testing.T) {
	denied := domain.Deny(domain.DenyPattern{Pattern: "rm -rf /", Message: "system-wide deletion"}, domain.RiskHigh)
	security := &stubSecurity{verdict: denied}
	svc := newTestService(&stubModel{command: "rm -rf /"}, security, &stubExecutor{})

	resp, err := svc.Generate(context.Background(), "delete everything")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if resp.Command != "rm -rf /" {
		t.Errorf("Command = %q", resp.Command)
	}
	if resp.Verdict.Allowed || resp.Verdict.Risk != domain.RiskHigh {
		t.Errorf("Verdict = %+v, want denied high risk", resp.Verdict)
	}
	if resp.Record != nil {
		t.Errorf("Generate must not record history")
	}
}

func TestGeneratePropagatesModelError(t *testing.T) {
	svc := newTestService(&stubModel{err: domain.ErrConnectivity}, &stubSecurity{}, &stubExecutor{})

	_, err := svc.Generate(context.Background(), "list files")
	if !errors.Is(err, domain.ErrConnectivity) {
		t.Fatalf("err = %v, want ErrConnectivity", err)
	}
}

func TestExecuteDeniedNeverReachesExecutor(t *testing.T) {
	executor := &stubExecutor{}
	denied := domain.Deny(domain.DenyPattern{Pattern: "rm -rf /", Message: "system-wide deletion"}, domain.RiskHigh)
	svc := newTestService(&stubModel{}, &stubSecurity{verdict: denied}, executor)

	resp, err := svc.Execute(context.Background(), "delete everything", "rm -rf /")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if executor.called {
		t.Fatalf("executor invoked for denied command")
	}
	if resp.Record == nil {
		t.Fatalf("denied attempt not recorded")
	}
	if resp.Record.Status != domain.StatusWarning || resp.Record.Executed {
		t.Errorf("record = %+v, want unexecuted warning", resp.Record)
	}
	if want := "Command blocked for safety: system-wide deletion"; resp.Record.Output != want {
		t.Errorf("output = %q, want %q", resp.Record.Output, want)
	}
	if records := svc.Ring.Records(); len(records) != 1 {
		t.Errorf("ring records = %d, want 1", len(records))
	}
}

func TestExecuteSafeModeBlocks(t *testing.T) {
	executor := &stubExecutor{}
	security := &stubSecurity{verdict: domain.Allow(domain.RiskLow), safeAllow: false}
	svc := newTestService(&stubModel{}, security, executor)
	svc.SafeMode = true

	resp, err := svc.Execute(context.Background(), "", "touch file.txt")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if executor.called {
		t.Fatalf("executor invoked in safe mode for disallowed command")
	}
	if resp.Record.Status != domain.StatusWarning {
		t.Errorf("status = %q, want warning", resp.Record.Status)
	}
	if !strings.Contains(resp.Record.Output, "SAFE MODE") {
		t.Errorf("output = %q, want safe mode notice", resp.Record.Output)
	}
}

func TestExecuteSafeModeAllowsReadOnly(t *testing.T) {
	executor := &stubExecutor{result: domain.ExecutionResult{Ran: true, Stdout: "file.txt\n"}}
	security := &stubSecurity{verdict: domain.Allow(domain.RiskLow), safeAllow: true}
	svc := newTestService(&stubModel{}, security, executor)
	svc.SafeMode = true

	resp, err := svc.Execute(context.Background(), "", "ls")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !executor.called {
		t.Fatalf("executor not invoked for allow-listed command")
	}
	if resp.Record.Status != domain.StatusSuccess {
		t.Errorf("status = %q, want success", resp.Record.Status)
	}
}

func TestExecuteDryRunFlagReachesExecutor(t *testing.T) {
	executor := &stubExecutor{result: domain.ExecutionResult{DryRunNotes: "would execute: ls"}}
	svc := newTestService(&stubModel{}, &stubSecurity{verdict: domain.Allow(domain.RiskLow)}, executor)
	svc.DryRun = true

	resp, err := svc.Execute(context.Background(), "", "ls")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !executor.dryRun {
		t.Fatalf("dry-run flag not passed to executor")
	}
	if !strings.HasPrefix(resp.Record.Output, "[DRY RUN MODE") {
		t.Errorf("output = %q, want dry run banner", resp.Record.Output)
	}
	if resp.Record.Status != domain.StatusSuccess || resp.Record.Executed {
		t.Errorf("record = %+v, want unexecuted success", resp.Record)
	}
}

func TestExecuteEmptyCommand(t *testing.T) {
	svc := newTestService(&stubModel{}, &stubSecurity{}, &stubExecutor{})

	_, err := svc.Execute(context.Background(), "prompt", "  ")
	if !errors.Is(err, domain.ErrEmptyCommand) {
		t.Fatalf("err = %v, want ErrEmptyCommand", err)
	}
}

func TestExecuteRepositoryFailureIsNonFatal(t *testing.T) {
	executor := &stubExecutor{result: domain.ExecutionResult{Ran: true, Stdout: "ok"}}
	svc := newTestService(&stubModel{}, &stubSecurity{verdict: domain.Allow(domain.RiskLow)}, executor)
	svc.History = &stubRepo{err: errors.New("disk full")}

	resp, err := svc.Execute(context.Background(), "", "ls")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Record == nil || resp.Record.Output != "ok" {
		t.Fatalf("record = %+v", resp.Record)
	}
}

func TestRunChainsGenerateAndExecute(t *testing.T) {
	executor := &stubExecutor{result: domain.ExecutionResult{Ran: true, Stdout: "total 0\n"}}
	svc := newTestService(&stubModel{command: "ls -la"}, &stubSecurity{verdict: domain.Allow(domain.RiskLow)}, executor)

	resp, err := svc.Run(context.Background(), "list files")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if resp.Command != "ls -la" {
		t.Errorf("Command = %q", resp.Command)
	}
	if !executor.called {
		t.Fatalf("executor not invoked")
	}
	if resp.Record == nil || resp.Record.Prompt != "list files" {
		t.Fatalf("record = %+v", resp.Record)
	}
}

func TestRenderOutcome(t *testing.T) {
	cases := []struct {
		name       string
		result     domain.ExecutionResult
		err        error
		wantStatus domain.CommandStatus
		wantPart   string
	}{
		{
			name:       "timeout",
			result:     domain.ExecutionResult{TimedOut: true},
			wantStatus: domain.StatusError,
			wantPart:   "timed out after 30 seconds",
		},
		{
			name:       "stderr with failure",
			result:     domain.ExecutionResult{Ran: true, Stderr: "boom", ExitCode: 1},
			wantStatus: domain.StatusError,
			wantPart:   "Error:\nboom",
		},
		{
			name:       "stderr with success",
			result:     domain.ExecutionResult{Ran: true, Stdout: "done", Stderr: "deprecated flag"},
			wantStatus: domain.StatusWarning,
			wantPart:   "Warnings:\ndeprecated flag",
		},
		{
			name:       "nonzero exit without stderr",
			result:     domain.ExecutionResult{Ran: true, ExitCode: 2},
			wantStatus: domain.StatusError,
			wantPart:   "exited with code 2",
		},
		{
			name:       "silent success",
			result:     domain.ExecutionResult{Ran: true},
			wantStatus: domain.StatusSuccess,
			wantPart:   "no output",
		},
		{
			name:       "plain output",
			result:     domain.ExecutionResult{Ran: true, Stdout: "total 0\n"},
			wantStatus: domain.StatusSuccess,
			wantPart:   "total 0",
		},
		{
			name:       "spawn failure",
			result:     domain.ExecutionResult{},
			err:        errors.New("no such shell"),
			wantStatus: domain.StatusError,
			wantPart:   "Execution failed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			output, status := renderOutcome(tc.result, tc.err, 30)
			if status != tc.wantStatus {
				t.Errorf("status = %q, want %q", status, tc.wantStatus)
			}
			if !strings.Contains(output, tc.wantPart) {
				t.Errorf("output = %q, want substring %q", output, tc.wantPart)
			}
		})
	}
}

var (
	_ ports.ConfigProvider    = (*stubConfig)(nil)
	_ ports.ModelClient       = (*stubModel)(nil)
	_ ports.SecurityService   = (*stubSecurity)(nil)
	_ ports.CommandExecutor   = (*stubExecutor)(nil)
	_ ports.HistoryRepository = (*stubRepo)(nil)
	_ ports.Logger            = nopLogger{}
)
