package llvm

import "fmt"

// ContractError describes a violated precondition of the LLVM API: using a
// handle with the wrong context, creating a second compile unit, using a
// disposed builder, etc.  These are programming errors, not recoverable
// conditions, so they are raised with `panic` rather than returned.  The CLI
// recovers them through `report.CatchErrors`.
type ContractError struct {
	// Op is the name of the operation whose precondition was violated.
	Op string

	// Message describes the violation.
	Message string
}

func (ce *ContractError) Error() string {
	return fmt.Sprintf("llvm: %s: %s", ce.Op, ce.Message)
}

// contractViolation panics with a new contract error.
func contractViolation(op, msg string, args ...interface{}) {
	panic(&ContractError{Op: op, Message: fmt.Sprintf(msg, args...)})
}

// checkPosition rejects negative source lines and columns.  Zero means the
// position is unknown.
func checkPosition(op string, line, col int) {
	if line < 0 {
		contractViolation(op, "negative line %d", line)
	}

	if col < 0 {
		contractViolation(op, "negative column %d", col)
	}
}
