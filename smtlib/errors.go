package smtlib

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnsupported marks well-formed input outside the supported subset, such
// as quantifiers, let bindings or non-arithmetic sorts.
var ErrUnsupported = errors.New("unsupported")

// SyntaxError is a parse failure at a position of the script. Line and Col
// are 1-based; Col counts runes.
type SyntaxError struct {
	Line, Col int
	Msg       string
	Err       error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("smtlib: %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

func errorAt(input string, off int, format string, args ...any) *SyntaxError {
	line, col := position(input, off)
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func unsupportedAt(input string, off int, format string, args ...any) *SyntaxError {
	e := errorAt(input, off, format, args...)
	e.Msg = "unsupported " + e.Msg
	e.Err = ErrUnsupported
	return e
}

func position(input string, off int) (line, col int) {
	if off > len(input) {
		off = len(input)
	}
	before := input[:off]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return line, utf8.RuneCountInString(before) + 1
}
