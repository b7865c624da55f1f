package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-cel/internal/lexer"
)

func TestFormatPointsAtColumn(t *testing.T) {
	source := "headers.ip inn [1]"
	err := NewParseError(lexer.Position{Line: 1, Column: 12}, "unexpected token \"inn\"", source)
	out := err.Format(false)

	if !strings.Contains(out, "Error at 1:12") {
		t.Errorf("missing position header:\n%s", out)
	}
	if !strings.Contains(out, source) {
		t.Errorf("missing source line:\n%s", out)
	}
	caretLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, "^") {
			caretLine = line
		}
	}
	if caretLine == "" {
		t.Fatalf("missing caret:\n%s", out)
	}
	// "   1 | " is seven columns wide; the caret lands under column 12.
	if len(caretLine) != 7+12 {
		t.Errorf("caret at offset %d, want %d:\n%s", len(caretLine), 7+12, out)
	}
}

func TestFormatWithoutSource(t *testing.T) {
	err := NewParseError(lexer.Position{Line: 3, Column: 1}, "boom", "")
	out := err.Format(false)
	if !strings.Contains(out, "boom") {
		t.Errorf("missing message:\n%s", out)
	}
	if strings.Contains(out, "|") {
		t.Errorf("unexpected source gutter without source:\n%s", out)
	}
}

func TestFormatErrorsMultiple(t *testing.T) {
	errs := []*ParseError{
		NewParseError(lexer.Position{Line: 1, Column: 1}, "first", "x"),
		NewParseError(lexer.Position{Line: 1, Column: 2}, "second", "x"),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("missing count:\n%s", out)
	}
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("missing messages:\n%s", out)
	}
	if FormatErrors(nil, false) != "" {
		t.Error("empty error list must format to empty string")
	}
}

func TestColorFormat(t *testing.T) {
	err := NewParseError(lexer.Position{Line: 1, Column: 1}, "tinted", "x")
	out := err.Format(true)
	if !strings.Contains(out, "\033[") {
		t.Errorf("expected ANSI escapes in colored output:\n%q", out)
	}
}
