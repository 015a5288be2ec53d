package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// recognizedPresets is the set of valid checker preset names.
var recognizedPresets = map[string]bool{
	"mypy":    true,
	"generic": true,
}

var recognizedFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks a Config for structural and semantic errors.
// It returns a slice of all validation errors found (empty if valid).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	c := cfg.Checker

	if !recognizedPresets[c.Preset] {
		errs = append(errs, ValidationError{
			Field:   "checker.preset",
			Message: fmt.Sprintf("unrecognized preset %q", c.Preset),
		})
	}
	if strings.TrimSpace(c.Command) == "" {
		errs = append(errs, ValidationError{Field: "checker.command", Message: "is required"})
	}
	if c.IgnoreMissingImports && c.Preset == "generic" {
		errs = append(errs, ValidationError{
			Field:   "checker.ignore_missing_imports",
			Message: "not supported by the generic preset",
		})
	}

	for i, ext := range cfg.Collect.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("collect.extensions[%d]", i),
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}

	for i, pattern := range cfg.Collect.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("collect.exclude[%d]", i),
				Message: fmt.Sprintf("bad pattern %q", pattern),
			})
		}
	}

	if !recognizedFormats[cfg.Report.Format] {
		errs = append(errs, ValidationError{
			Field:   "report.format",
			Message: fmt.Sprintf("unrecognized format %q", cfg.Report.Format),
		})
	}

	return errs
}
