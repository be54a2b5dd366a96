package z3

import "fmt"

// Error reports a failed Z3 API call.
type Error struct {
	Code    int
	Op      string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("z3: %s failed (%d)", e.Op, e.Code)
	}
	return fmt.Sprintf("z3: %s: %s (%d)", e.Op, e.Message, e.Code)
}

// Error codes mirroring Z3_error_code.
const (
	ErrorCodeOK = iota
	ErrorCodeSortError
	ErrorCodeIOB
	ErrorCodeInvalidArg
	ErrorCodeParserError
	ErrorCodeNoParser
	ErrorCodeInvalidPattern
	ErrorCodeMemoutFail
	ErrorCodeFileAccessError
	ErrorCodeInternalFatal
	ErrorCodeInvalidUsage
	ErrorCodeDecRefError
	ErrorCodeException
)

func arityError(op DeclKind, want string, got int) error {
	return &Error{
		Code:    ErrorCodeInvalidArg,
		Op:      op.String(),
		Message: fmt.Sprintf("expects %s arguments, got %d", want, got),
	}
}
