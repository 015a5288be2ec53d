package checks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lucasnoah/typegate/internal/collect"
	"go.uber.org/zap"
)

// SessionOpts configures a single checker session.
type SessionOpts struct {
	Preset string
	// Command is the argv prefix that starts the checker, e.g. ["python", "-m", "mypy"].
	Command []string
	// Args are extra arguments placed between Command and the file list.
	Args                 []string
	IgnoreMissingImports bool
	// FilesFromConfig leaves file selection to the checker's own configuration;
	// collected files are not passed on the command line.
	FilesFromConfig bool
	// Dir is where the checker runs and what relative output paths resolve against.
	Dir string
}

// Progress receives session-level output while the checker runs.
type Progress interface {
	Start(command []string, fileCount int)
	Done(status int)
	Unmatched(lines []string, status int)
	Stderr(text string)
}

// Session owns the items of one run, invokes the checker once for all of
// them, and routes the checker's output back to the items.
type Session struct {
	runner *Runner
	opts   SessionOpts
	preset Preset

	items  []*Item
	byPath map[string]*Item
	status *Item

	result     *Result
	parsed     ParseResult
	unmatched  []string
	attributed int
}

// NewSession wraps each collected file in a file item. The aggregate status
// item is appended when at least one file was collected.
func (r *Runner) NewSession(opts SessionOpts, files []collect.File) (*Session, error) {
	preset, ok := r.presets[opts.Preset]
	if !ok {
		return nil, fmt.Errorf("unknown checker preset %q", opts.Preset)
	}
	if len(opts.Command) == 0 {
		return nil, errors.New("checker command is empty")
	}
	if opts.IgnoreMissingImports && preset.IgnoreMissingImportsFlag == "" {
		return nil, fmt.Errorf("preset %q cannot ignore missing imports", preset.Name)
	}

	s := &Session{
		runner: r,
		opts:   opts,
		preset: preset,
		byPath: make(map[string]*Item, len(files)),
	}
	for _, f := range files {
		if _, dup := s.byPath[f.Path]; dup {
			continue
		}
		item := &Item{Name: f.Name, Path: f.Path, Kind: KindFile}
		s.items = append(s.items, item)
		s.byPath[f.Path] = item
	}
	if len(s.items) > 0 {
		s.status = &Item{Name: s.CheckerName(), Kind: KindStatus}
		s.items = append(s.items, s.status)
	}
	return s, nil
}

// Items returns all items in report order.
func (s *Session) Items() []*Item {
	return s.items
}

// CheckerName is the name used in messages and for the status item.
func (s *Session) CheckerName() string {
	if s.preset.Name != "generic" {
		return s.preset.Name
	}
	return filepath.Base(s.opts.Command[0])
}

// Command returns the checker command with its extra arguments, without files.
func (s *Session) Command() []string {
	argv := append([]string{}, s.opts.Command...)
	argv = append(argv, s.opts.Args...)
	if s.opts.IgnoreMissingImports {
		argv = append(argv, s.preset.IgnoreMissingImportsFlag)
	}
	return argv
}

// Files returns the paths passed to the checker on the command line.
func (s *Session) Files() []string {
	if s.opts.FilesFromConfig {
		return nil
	}
	var files []string
	for _, item := range s.items {
		if item.Kind == KindFile {
			files = append(files, item.Path)
		}
	}
	return files
}

// Result returns the raw checker result, or nil before Run.
func (s *Session) Result() *Result {
	return s.result
}

// Parsed returns the parsed checker output.
func (s *Session) Parsed() ParseResult {
	return s.parsed
}

// Unmatched returns the output lines that could not be routed to a file item.
// Checker summary lines are not included.
func (s *Session) Unmatched() []string {
	return s.unmatched
}

// Run invokes the checker once and distributes its output over the items.
// It does nothing when no file items were collected.
func (s *Session) Run(ctx context.Context, progress Progress) error {
	if s.status == nil {
		return nil
	}
	for _, item := range s.items {
		item.Errors = nil
	}
	s.unmatched = nil
	s.attributed = 0

	files := s.Files()
	progress.Start(s.Command(), len(files))

	res, err := s.runner.Run(ctx, s.opts.Dir, append(s.Command(), files...))
	if err != nil {
		return err
	}
	s.result = res
	progress.Done(res.ExitCode)

	s.parsed = s.preset.Parser.Parse(res.Stdout, res.Stderr, res.ExitCode)

	var shown []string
	for _, line := range s.parsed.Lines {
		if line.Summary {
			shown = append(shown, line.Raw)
			continue
		}
		if item := s.lookup(line); item != nil {
			item.Errors = append(item.Errors, line.Message)
			s.attributed++
			continue
		}
		s.unmatched = append(s.unmatched, line.Raw)
		shown = append(shown, line.Raw)
	}

	s.runner.log.Debug("partitioned checker output",
		zap.Int("lines", len(s.parsed.Lines)),
		zap.Int("attributed", s.attributed),
		zap.Int("unmatched", len(s.unmatched)))

	if len(shown) > 0 {
		progress.Unmatched(shown, res.ExitCode)
	}
	if stderr := strings.TrimRight(res.Stderr, "\n"); stderr != "" {
		progress.Stderr(stderr)
	}
	return nil
}

func (s *Session) lookup(line Line) *Item {
	if line.Path == "" {
		return nil
	}
	return s.byPath[collect.Canonical(s.opts.Dir, line.Path)]
}

// Outcomes decides pass/fail for every item. It must be called after Run.
func (s *Session) Outcomes() []Outcome {
	outcomes := make([]Outcome, 0, len(s.items))
	for _, item := range s.items {
		outcomes = append(outcomes, s.outcome(item))
	}
	return outcomes
}

func (s *Session) outcome(item *Item) Outcome {
	o := Outcome{Item: item, Passed: true}

	switch item.Kind {
	case KindFile:
		if len(item.Errors) > 0 {
			o.Passed = false
			o.Err = &CheckError{Message: strings.Join(item.Errors, "\n")}
		} else if s.opts.FilesFromConfig {
			name := s.CheckerName()
			o.Warnings = append(o.Warnings, Warning{
				Item: item.Name,
				Message: fmt.Sprintf("No %s errors were detected in this file,"+
					" but since --mypy-files does not require"+
					" %s to check files collected by typegate,"+
					" typegate cannot be sure that it was"+
					" actually checked.", name, name),
			})
		}

	case KindStatus:
		if s.result == nil {
			o.Passed = false
			o.Err = fmt.Errorf("%s was not run", s.CheckerName())
			break
		}
		if s.result.ExitCode != 0 && !s.coverageGuaranteed() {
			o.Passed = false
			o.Err = &CheckError{
				Message: fmt.Sprintf("%s exited with status %d.", s.CheckerName(), s.result.ExitCode),
			}
		}
	}
	return o
}

// coverageGuaranteed reports whether every problem behind a non-zero exit
// status is already visible as a failing file item.
func (s *Session) coverageGuaranteed() bool {
	return !s.opts.FilesFromConfig && len(s.unmatched) == 0 && s.attributed > 0
}
