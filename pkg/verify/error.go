package verify

import "fmt"

type VerificationFailure struct {
	Position int
	Rule     string
	Expected string
	Actual   string
	Reason   string
}

func (e *VerificationFailure) Error() string {
	msg := fmt.Sprintf("line %d (%s): %s", e.Position, e.Rule, e.Reason)
	if e.Expected != "" || e.Actual != "" {
		msg += fmt.Sprintf(": expected %s; got %s", e.Expected, e.Actual)
	}
	return msg
}

type MalformedProofLine struct {
	Position int
	Text     string
	Reason   string
}

func (e *MalformedProofLine) Error() string {
	if e.Position == 0 {
		return fmt.Sprintf("malformed proof line %q: %s", e.Text, e.Reason)
	}
	return fmt.Sprintf("malformed proof line %d %q: %s", e.Position, e.Text, e.Reason)
}

type MissingProofLine struct {
	Position     int
	ReferencedBy int
}

func (e *MissingProofLine) Error() string {
	if e.ReferencedBy == 0 {
		return fmt.Sprintf("missing proof line %d", e.Position)
	}
	return fmt.Sprintf("missing proof line %d (referenced by line %d)", e.Position, e.ReferencedBy)
}
