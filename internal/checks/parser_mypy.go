package checks

import "fmt"

// MypyParser parses mypy's default text output:
//
//	src/auth.py:42: error: Argument 1 has incompatible type "str"  [arg-type]
//	Found 1 error in 1 file (checked 3 source files)
type MypyParser struct{}

var mypySummaryPrefixes = []string{"Found ", "Success: "}

func (p *MypyParser) Parse(stdout string, stderr string, exitCode int) ParseResult {
	lines := splitLines(stdout, mypySummaryPrefixes)

	var summary string
	for _, l := range lines {
		if l.Summary {
			summary = l.Raw
		}
	}
	if summary == "" {
		summary = fmt.Sprintf("exit code %d", exitCode)
		if exitCode == 0 {
			summary = "no issues found"
		}
	}

	return ParseResult{
		Lines:   lines,
		Summary: summary,
	}
}
