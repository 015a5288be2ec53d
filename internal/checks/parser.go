package checks

import "strings"

// Line is one non-empty line of checker output split on its first colon.
type Line struct {
	Raw string `json:"raw"`
	// Path is the text before the first colon. Empty when the line has none.
	Path string `json:"path,omitempty"`
	// Message is the text after the first colon.
	Message string `json:"message,omitempty"`
	// Summary marks the checker's own closing tally ("Found 3 errors ...").
	Summary bool `json:"summary,omitempty"`
}

// ParseResult holds the normalized output from a parser.
type ParseResult struct {
	Lines   []Line `json:"lines"`
	Summary string `json:"summary"`
}

// Parser converts raw checker output into a structured ParseResult.
type Parser interface {
	Parse(stdout string, stderr string, exitCode int) ParseResult
}

// splitLines breaks stdout into path/message pairs, skipping blank lines.
// summaryPrefixes mark lines that belong to the checker's own tally.
func splitLines(stdout string, summaryPrefixes []string) []Line {
	var lines []Line
	for _, raw := range strings.Split(stdout, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if raw == "" {
			continue
		}
		line := Line{Raw: raw}
		if path, msg, ok := strings.Cut(raw, ":"); ok {
			line.Path = path
			line.Message = msg
		}
		for _, prefix := range summaryPrefixes {
			if strings.HasPrefix(raw, prefix) {
				line.Summary = true
				break
			}
		}
		lines = append(lines, line)
	}
	return lines
}
