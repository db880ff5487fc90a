package formula

import "fmt"

type MalformedFormula struct {
	Input string
	Err   error
}

func (e *MalformedFormula) Error() string {
	return fmt.Sprintf("malformed formula %q: %s", e.Input, e.Err.Error())
}

// InvariantViolation means a formula or proof was built in a shape the
// constructors should never produce.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}
