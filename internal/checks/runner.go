package checks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result holds the raw output of one checker invocation.
type Result struct {
	Argv       []string `json:"argv"`
	ExitCode   int      `json:"exit_code"`
	DurationMs int      `json:"duration_ms"`
	Stdout     string   `json:"stdout,omitempty"`
	Stderr     string   `json:"stderr,omitempty"`
}

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, dir string, argv []string) (stdout string, stderr string, exitCode int, err error)
}

// ExecRunner implements CommandRunner by executing argv directly, without a shell.
type ExecRunner struct{}

func (e *ExecRunner) Run(ctx context.Context, dir string, argv []string) (string, string, int, error) {
	if len(argv) == 0 {
		return "", "", -1, errors.New("exec: empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return stdoutBuf.String(), stderrBuf.String(), -1, fmt.Errorf("exec: %w", err)
		}
	}
	return stdoutBuf.String(), stderrBuf.String(), exitCode, nil
}

// Preset describes how to drive one kind of checker.
type Preset struct {
	Name string
	// IgnoreMissingImportsFlag is forwarded when missing-import errors are
	// suppressed. Empty when the checker has no such switch.
	IgnoreMissingImportsFlag string
	Parser                   Parser
}

// Runner executes the checker and parses its output.
type Runner struct {
	cmd     CommandRunner
	presets map[string]Preset
	log     *zap.Logger
}

// NewRunner creates a Runner with the given command runner. A nil logger
// disables logging.
func NewRunner(cmd CommandRunner, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{
		cmd:     cmd,
		presets: make(map[string]Preset),
		log:     log,
	}
	r.presets["mypy"] = Preset{
		Name:                     "mypy",
		IgnoreMissingImportsFlag: "--ignore-missing-imports",
		Parser:                   &MypyParser{},
	}
	r.presets["generic"] = Preset{
		Name:   "generic",
		Parser: &GenericParser{},
	}
	return r
}

// Preset looks up a registered preset by name.
func (r *Runner) Preset(name string) (Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// Run executes argv once in dir and captures its output. A non-zero exit
// status is not an error; failing to start the process is.
func (r *Runner) Run(ctx context.Context, dir string, argv []string) (*Result, error) {
	r.log.Debug("invoking checker", zap.Strings("argv", argv), zap.String("dir", dir))

	start := time.Now()
	stdout, stderr, exitCode, err := r.cmd.Run(ctx, dir, argv)
	durationMs := int(time.Since(start).Milliseconds())
	if err != nil {
		return nil, fmt.Errorf("run checker %q: %w", strings.Join(argv, " "), err)
	}

	r.log.Debug("checker finished",
		zap.Int("exit_code", exitCode),
		zap.Int("duration_ms", durationMs),
		zap.Int("stdout_bytes", len(stdout)),
		zap.Int("stderr_bytes", len(stderr)))

	return &Result{
		Argv:       argv,
		ExitCode:   exitCode,
		DurationMs: durationMs,
		Stdout:     stdout,
		Stderr:     stderr,
	}, nil
}
