package checks

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockCmd records calls and returns configured results.
type mockCmd struct {
	calls   []mockCall
	results []mockResult
	callIdx int
}

type mockCall struct {
	Dir  string
	Argv []string
}

type mockResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (m *mockCmd) Run(ctx context.Context, dir string, argv []string) (string, string, int, error) {
	m.calls = append(m.calls, mockCall{Dir: dir, Argv: append([]string{}, argv...)})
	if m.callIdx >= len(m.results) {
		return "", "", 0, nil
	}
	r := m.results[m.callIdx]
	m.callIdx++
	return r.Stdout, r.Stderr, r.ExitCode, r.Err
}

func TestRunner_Run_HappyPath(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Stdout: "Success: no issues found in 1 source file", ExitCode: 0},
		},
	}
	runner := NewRunner(mock, nil)

	result, err := runner.Run(context.Background(), "/tmp/test", []string{"mypy", "a.py"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit_code=0, got %d", result.ExitCode)
	}
	if !strings.HasPrefix(result.Stdout, "Success") {
		t.Errorf("unexpected stdout %q", result.Stdout)
	}
	if len(mock.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.calls))
	}
	if mock.calls[0].Dir != "/tmp/test" {
		t.Errorf("expected dir=/tmp/test, got %q", mock.calls[0].Dir)
	}
	if strings.Join(mock.calls[0].Argv, " ") != "mypy a.py" {
		t.Errorf("expected argv=mypy a.py, got %v", mock.calls[0].Argv)
	}
}

func TestRunner_Run_NonZeroIsNotAnError(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{Stdout: "a.py:1: error: x", ExitCode: 1},
		},
	}
	runner := NewRunner(mock, nil)

	result, err := runner.Run(context.Background(), "/tmp/test", []string{"mypy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 1 {
		t.Errorf("expected exit_code=1, got %d", result.ExitCode)
	}
}

func TestRunner_Run_StartFailure(t *testing.T) {
	mock := &mockCmd{
		results: []mockResult{
			{ExitCode: -1, Err: errors.New("executable file not found")},
		},
	}
	runner := NewRunner(mock, nil)

	_, err := runner.Run(context.Background(), "/tmp/test", []string{"mypy"})
	if err == nil {
		t.Fatal("expected error when the checker cannot start")
	}
	if !strings.Contains(err.Error(), "executable file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunner_Presets(t *testing.T) {
	runner := NewRunner(&mockCmd{}, nil)
	p, ok := runner.Preset("mypy")
	if !ok {
		t.Fatal("mypy preset missing")
	}
	if p.IgnoreMissingImportsFlag != "--ignore-missing-imports" {
		t.Errorf("unexpected flag %q", p.IgnoreMissingImportsFlag)
	}
	if _, ok := runner.Preset("pyright"); ok {
		t.Error("unexpected preset pyright")
	}
}

func TestExecRunner_ExitCode(t *testing.T) {
	r := &ExecRunner{}
	stdout, _, code, err := r.Run(context.Background(), t.TempDir(), []string{"sh", "-c", "echo a.py:1: error: x; exit 3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
	if strings.TrimSpace(stdout) != "a.py:1: error: x" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := &ExecRunner{}
	_, _, code, err := r.Run(context.Background(), t.TempDir(), []string{"typegate-no-such-binary"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if code != -1 {
		t.Errorf("expected exit code -1, got %d", code)
	}
}

func TestExecRunner_EmptyArgv(t *testing.T) {
	r := &ExecRunner{}
	if _, _, _, err := r.Run(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty argv")
	}
}
