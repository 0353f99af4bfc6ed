// Package errors formats runtime and parse errors with source context and
// a caret pointing at the offending column, adapted from the teacher's
// internal/errors/errors.go to this grammar's internal/lexer.Position.
package errors

import (
	"fmt"
	"strings"

	"github.com/msdscript-go/msdscript/internal/lexer"
)

// SourceError pairs a message with the source text and position it
// concerns, for CLI-facing diagnostics.
type SourceError struct {
	Message string
	Source  string
	Pos     lexer.Position
}

// NewSourceError creates a SourceError.
func NewSourceError(pos lexer.Position, message, source string) *SourceError {
	return &SourceError{Message: message, Source: source, Pos: pos}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a line/column header, the offending
// source line, and a caret under the column. With color set, the caret is
// bold red.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error at line %d, column %d\n", e.Pos.Line, e.Pos.Column))

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteByte('^')
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteByte('\n')
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

func (e *SourceError) sourceLine(n int) string {
	if e.Source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}
