package checks

import (
	"encoding/json"
)

// ItemResult is the serializable form of an Outcome.
type ItemResult struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Kind     Kind      `json:"kind"`
	Passed   bool      `json:"passed"`
	Errors   []string  `json:"errors,omitempty"`
	Message  string    `json:"message,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Summary is the structured output of a full session.
type Summary struct {
	Checker    string       `json:"checker"`
	Command    []string     `json:"command"`
	FileCount  int          `json:"file_count"`
	Status     *int         `json:"status"`
	DurationMs int          `json:"duration_ms"`
	Passed     bool         `json:"passed"`
	Failed     int          `json:"failed"`
	Succeeded  int          `json:"succeeded"`
	Items      []ItemResult `json:"items"`
	Unmatched  []string     `json:"unmatched,omitempty"`
	Stderr     string       `json:"stderr,omitempty"`
	Warnings   []Warning    `json:"warnings,omitempty"`
}

// JSON returns the summary as indented JSON.
func (s *Summary) JSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Summarize folds the session's outcomes into a Summary. Session-level
// warnings (not tied to an item) are passed in by the caller.
func (s *Session) Summarize(outcomes []Outcome, warnings []Warning) *Summary {
	sum := &Summary{
		Checker:   s.CheckerName(),
		Command:   s.Command(),
		FileCount: len(s.Files()),
		Passed:    true,
		Unmatched: s.unmatched,
		Warnings:  warnings,
	}
	if s.result != nil {
		status := s.result.ExitCode
		sum.Status = &status
		sum.DurationMs = s.result.DurationMs
		sum.Stderr = s.result.Stderr
	}

	for _, o := range outcomes {
		sum.Items = append(sum.Items, ItemResult{
			Name:     o.Item.Name,
			Path:     o.Item.Path,
			Kind:     o.Item.Kind,
			Passed:   o.Passed,
			Errors:   o.Item.Errors,
			Message:  o.Message(),
			Warnings: o.Warnings,
		})
		if o.Passed {
			sum.Succeeded++
		} else {
			sum.Failed++
			sum.Passed = false
		}
		sum.Warnings = append(sum.Warnings, o.Warnings...)
	}
	return sum
}
