package proof

import (
	"fmt"

	"github.com/vilterp/hilbert/pkg/formula"
)

// Eliminate turns a proof of Γ,a ⊢ b into a proof of Γ ⊢ a → b, where
// extended is Γ,a and proof is under extended.
func Eliminate(extended Context, proof Step) (Step, error) {
	if extended.Len() == 0 {
		return nil, &InvariantViolation{Reason: "eliminating from the empty context"}
	}
	if !proof.Context().Equal(extended) {
		return nil, &InvariantViolation{
			Reason: fmt.Sprintf("eliminating %s from a proof under %s", extended, proof.Context()),
		}
	}

	ctx := extended.Drop()
	a := extended.Top()
	b := proof.Formula()
	result := formula.Implies(a, b)

	// Shortcuts: a → b may already be an axiom instance.
	if x, y, ok := formula.Axiom1Parts(result); ok {
		return NewAxiom1(ctx, x, y), nil
	}
	if x, y, z, ok := formula.Axiom2Parts(result); ok {
		return NewAxiom2(ctx, x, y, z), nil
	}

	switch p := proof.(type) {
	case *Axiom1:
		return weaken(ctx, a, NewAxiom1(ctx, p.A, p.B))
	case *Axiom2:
		return weaken(ctx, a, NewAxiom2(ctx, p.A, p.B, p.C))
	case *Hypothesis:
		if p.IsTop() {
			return identity(ctx, a)
		}
		rebuilt, err := NewHypothesis(ctx, p.Index)
		if err != nil {
			return nil, err
		}
		return weaken(ctx, a, rebuilt)
	case *ModusPonens:
		return eliminateModusPonens(extended, p)
	default:
		return nil, &InvariantViolation{Reason: fmt.Sprintf("unknown proof step %T", proof)}
	}
}

// weaken proves a → b from b: MP(b → (a → b), b).
func weaken(ctx Context, a *formula.Formula, proof Step) (Step, error) {
	return NewModusPonens(ctx, NewAxiom1(ctx, proof.Formula(), a), proof)
}

// identity proves a → a:
//  1. (a → ((a → a) → a)) → ((a → (a → a)) → (a → a))   A2
//  2. a → ((a → a) → a)                                 A1
//  3. (a → (a → a)) → (a → a)                           MP 1,2
//  4. a → (a → a)                                       A1
//  5. a → a                                             MP 3,4
func identity(ctx Context, a *formula.Formula) (Step, error) {
	aa := formula.Implies(a, a)
	inner, err := NewModusPonens(ctx, NewAxiom2(ctx, a, aa, a), NewAxiom1(ctx, a, aa))
	if err != nil {
		return nil, err
	}
	return NewModusPonens(ctx, inner, NewAxiom1(ctx, a, a))
}

// eliminateModusPonens handles Γ,a ⊢ b from Γ,a ⊢ c → b and Γ,a ⊢ c:
// from a → (c → b) and a → c, A2 gives a → b.
func eliminateModusPonens(extended Context, proof *ModusPonens) (Step, error) {
	ctx := extended.Drop()
	a := extended.Top()
	c := proof.Antecedent.Formula()
	b := proof.Formula()

	implication, err := Eliminate(extended, proof.Implication)
	if err != nil {
		return nil, err
	}
	antecedent, err := Eliminate(extended, proof.Antecedent)
	if err != nil {
		return nil, err
	}
	distributed, err := NewModusPonens(ctx, NewAxiom2(ctx, a, c, b), implication)
	if err != nil {
		return nil, err
	}
	return NewModusPonens(ctx, distributed, antecedent)
}
