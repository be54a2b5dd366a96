package translate

import (
	"errors"
	"fmt"

	"github.com/vhavlena/z3-constraints/expr"
)

var (
	// ErrUnsupported marks input that uses a construct the translator does
	// not map: callers cannot decide such formulas.
	ErrUnsupported = errors.New("unsupported construct")
	// ErrInternal marks a defect in the translator or in whatever produced
	// the formula, such as an operator tag outside its enumeration.
	ErrInternal = errors.New("internal inconsistency")
	// ErrInvalidLiteral marks constant text that is not an exact number of
	// the constant's sort.
	ErrInvalidLiteral = errors.New("invalid literal")
)

// UnsupportedError reports the construct that has no mapping.
type UnsupportedError struct {
	Construct string
	Node      expr.Node
}

func (e *UnsupportedError) Error() string {
	return "translate: unsupported " + e.Construct
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// InternalError reports an inconsistency found during dispatch.
type InternalError struct {
	Reason string
	Node   expr.Node
}

func (e *InternalError) Error() string {
	return "translate: internal inconsistency: " + e.Reason
}

func (e *InternalError) Unwrap() error { return ErrInternal }

func unsupported(n expr.Node, format string, args ...any) error {
	return &UnsupportedError{Construct: fmt.Sprintf(format, args...), Node: n}
}

func internal(n expr.Node, format string, args ...any) error {
	return &InternalError{Reason: fmt.Sprintf(format, args...), Node: n}
}

// Class names the category of a translation error: "unsupported",
// "internal", "invalid_literal" or "engine".
func Class(err error) string {
	switch {
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	case errors.Is(err, ErrInternal):
		return "internal"
	case errors.Is(err, ErrInvalidLiteral):
		return "invalid_literal"
	default:
		return "engine"
	}
}
