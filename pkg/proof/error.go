package proof

import (
	"fmt"

	"github.com/vilterp/hilbert/pkg/formula"
)

// InvariantViolation is shared with the formula package: both mean the
// proof machinery built something it never should have.
type InvariantViolation = formula.InvariantViolation

// UnderivableWithoutHint is returned when the search reaches the lemma
// fallback and no witness is available.
type UnderivableWithoutHint struct {
	Context Context
	Target  *formula.Formula
	Reason  string
}

func (e *UnderivableWithoutHint) Error() string {
	msg := fmt.Sprintf("%s ⊢ %s: underivable without a lemma hint", e.Context, e.Target)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
