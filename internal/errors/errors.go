// Package errors provides error formatting for the CEL front end. It
// formats parse and plan errors with source context, line/column
// information, and a caret pointing at the offending token.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-cel/internal/lexer"
)

// ParseError represents a single front-end error with position and
// source context.
type ParseError struct {
	Message string
	Source  string
	Pos     lexer.Position
}

// NewParseError creates a new parse error.
func NewParseError(pos lexer.Position, message, source string) *ParseError {
	return &ParseError{Pos: pos, Message: message, Source: source}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context. If color is
// true, ANSI color codes are used for terminal output.
func (e *ParseError) Format(color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error at %d:%d\n", e.Pos.Line, e.Pos.Column))

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *ParseError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors formats multiple parse errors, each with source
// context.
func FormatErrors(errs []*ParseError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Parsing failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
