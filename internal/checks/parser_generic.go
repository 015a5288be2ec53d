package checks

import "fmt"

// GenericParser is the fallback parser for checkers that print
// "<path>:<message>" lines without a recognizable summary.
type GenericParser struct{}

func (p *GenericParser) Parse(stdout string, stderr string, exitCode int) ParseResult {
	lines := splitLines(stdout, nil)
	summary := fmt.Sprintf("exit code %d, %d lines", exitCode, len(lines))
	if exitCode == 0 {
		summary = "passed (exit code 0)"
	}
	return ParseResult{
		Lines:   lines,
		Summary: summary,
	}
}
