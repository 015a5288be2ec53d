package checks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMypyParser_SplitsOnFirstColon(t *testing.T) {
	input := "a.py:3: error: bad type\npkg/b.py:10: note: see here\n"
	p := &MypyParser{}
	r := p.Parse(input, "", 1)

	want := []Line{
		{Raw: "a.py:3: error: bad type", Path: "a.py", Message: "3: error: bad type"},
		{Raw: "pkg/b.py:10: note: see here", Path: "pkg/b.py", Message: "10: note: see here"},
	}
	if diff := cmp.Diff(want, r.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestMypyParser_Summary(t *testing.T) {
	input := "a.py:3: error: bad type\nFound 1 error in 1 file (checked 2 source files)\n"
	p := &MypyParser{}
	r := p.Parse(input, "", 1)

	if r.Summary != "Found 1 error in 1 file (checked 2 source files)" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
	if len(r.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(r.Lines))
	}
	if r.Lines[0].Summary {
		t.Error("error line marked as summary")
	}
	if !r.Lines[1].Summary {
		t.Error("tally line not marked as summary")
	}
}

func TestMypyParser_Success(t *testing.T) {
	p := &MypyParser{}
	r := p.Parse("Success: no issues found in 2 source files\n", "", 0)
	if r.Summary != "Success: no issues found in 2 source files" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
	if len(r.Lines) != 1 || !r.Lines[0].Summary {
		t.Errorf("expected a single summary line, got %+v", r.Lines)
	}
}

func TestMypyParser_NoSummaryLine(t *testing.T) {
	p := &MypyParser{}
	if r := p.Parse("", "", 0); r.Summary != "no issues found" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
	if r := p.Parse("", "mypy: can't read file", 2); r.Summary != "exit code 2" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
}

func TestMypyParser_SkipsBlankLinesAndCR(t *testing.T) {
	p := &MypyParser{}
	r := p.Parse("\n\na.py:1: error: x\r\n\n", "", 1)
	if len(r.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(r.Lines))
	}
	if r.Lines[0].Message != "1: error: x" {
		t.Errorf("unexpected message: %q", r.Lines[0].Message)
	}
}

func TestMypyParser_LineWithoutColon(t *testing.T) {
	p := &MypyParser{}
	r := p.Parse("interrupted\n", "", 2)
	if len(r.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(r.Lines))
	}
	if r.Lines[0].Path != "" || r.Lines[0].Message != "" {
		t.Errorf("expected no path/message, got %+v", r.Lines[0])
	}
}

func TestGenericParser(t *testing.T) {
	p := &GenericParser{}
	r := p.Parse("a.py:3: bad\nFound 1 error\n", "", 1)
	if r.Summary != "exit code 1, 2 lines" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
	for _, l := range r.Lines {
		if l.Summary {
			t.Errorf("generic parser marked %q as summary", l.Raw)
		}
	}
	if r := p.Parse("", "", 0); r.Summary != "passed (exit code 0)" {
		t.Errorf("unexpected summary: %q", r.Summary)
	}
}
