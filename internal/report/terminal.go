// Package report renders session results for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/lucasnoah/typegate/internal/checks"
)

// Terminal writes human-readable progress and results. It implements
// checks.Progress.
type Terminal struct {
	w      io.Writer
	red    *color.Color
	green  *color.Color
	yellow *color.Color
	bold   *color.Color
}

// NewTerminal returns a Terminal writing to w, colored when useColor is set.
func NewTerminal(w io.Writer, useColor bool) *Terminal {
	t := &Terminal{
		w:      w,
		red:    color.New(color.FgRed),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{t.red, t.green, t.yellow, t.bold} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

func (t *Terminal) Start(command []string, fileCount int) {
	onFiles := ""
	if fileCount > 0 {
		onFiles = fmt.Sprintf(" on %d files", fileCount)
	}
	fmt.Fprintf(t.w, "\nRunning %s%s... ", strings.Join(command, " "), onFiles)
}

func (t *Terminal) Done(status int) {
	fmt.Fprintf(t.w, "done with status %d\n", status)
}

// Unmatched writes output lines that belong to no file, red when the
// checker failed and green otherwise.
func (t *Terminal) Unmatched(lines []string, status int) {
	c := t.green
	if status != 0 {
		c = t.red
	}
	c.Fprintln(t.w, strings.Join(lines, "\n"))
}

func (t *Terminal) Stderr(text string) {
	t.red.Fprintln(t.w, text)
}

// Collected lists items without running anything.
func (t *Terminal) Collected(items []*checks.Item) {
	for _, item := range items {
		fmt.Fprintf(t.w, "<%s %s>\n", kindLabel(item.Kind), item.Name)
	}
	fmt.Fprintf(t.w, "\n%d items collected\n", len(items))
}

// Summary writes one line per item followed by failure details, warnings
// and the final tally.
func (t *Terminal) Summary(sum *checks.Summary, elapsed time.Duration) {
	fmt.Fprintln(t.w)
	for _, item := range sum.Items {
		if item.Passed {
			fmt.Fprintf(t.w, "%s %s\n", item.Name, t.green.Sprint("PASSED"))
		} else {
			fmt.Fprintf(t.w, "%s %s\n", item.Name, t.red.Sprint("FAILED"))
		}
	}

	if sum.Failed > 0 {
		t.header("FAILURES", t.red)
		for _, item := range sum.Items {
			if item.Passed {
				continue
			}
			t.red.Fprintf(t.w, "___ %s ___\n", item.Name)
			fmt.Fprintln(t.w, item.Message)
		}
	}

	if len(sum.Warnings) > 0 {
		t.header("warnings summary", t.yellow)
		for _, w := range sum.Warnings {
			if w.Item != "" {
				fmt.Fprintf(t.w, "%s\n  ", w.Item)
			}
			fmt.Fprintf(t.w, "%s\n", w.Message)
		}
	}

	t.header(tally(sum, elapsed), t.tallyColor(sum))
}

func (t *Terminal) header(title string, c *color.Color) {
	c.Fprintf(t.w, "\n%s %s %s\n", strings.Repeat("=", 12), title, strings.Repeat("=", 12))
}

func (t *Terminal) tallyColor(sum *checks.Summary) *color.Color {
	switch {
	case sum.Failed > 0:
		return t.red
	case len(sum.Warnings) > 0:
		return t.yellow
	default:
		return t.green
	}
}

func tally(sum *checks.Summary, elapsed time.Duration) string {
	var parts []string
	if sum.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", sum.Failed))
	}
	if sum.Succeeded > 0 {
		parts = append(parts, fmt.Sprintf("%d passed", sum.Succeeded))
	}
	if n := len(sum.Warnings); n == 1 {
		parts = append(parts, "1 warning")
	} else if n > 1 {
		parts = append(parts, fmt.Sprintf("%d warnings", n))
	}
	if len(parts) == 0 {
		parts = append(parts, "no items")
	}
	return fmt.Sprintf("%s in %.2fs", strings.Join(parts, ", "), elapsed.Seconds())
}

func kindLabel(k checks.Kind) string {
	if k == checks.KindStatus {
		return "StatusItem"
	}
	return "FileItem"
}
