package proof

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/verify"
)

func randomFormula(rng *rand.Rand, depth int) *formula.Formula {
	if depth == 0 || rng.Intn(3) == 0 {
		return formula.Atom("pqr"[rng.Intn(3)])
	}
	return formula.Implies(randomFormula(rng, depth-1), randomFormula(rng, depth-1))
}

func genFormula(depth int) gopter.Gen {
	return func(params *gopter.GenParameters) *gopter.GenResult {
		return gopter.NewGenResult(randomFormula(params.Rng, depth), gopter.NoShrinker)
	}
}

func genContext(size int, depth int) gopter.Gen {
	return func(params *gopter.GenParameters) *gopter.GenResult {
		n := params.Rng.Intn(size + 1)
		hyps := make([]*formula.Formula, n)
		for idx := range hyps {
			hyps[idx] = randomFormula(params.Rng, depth)
		}
		return gopter.NewGenResult(NewContext(hyps...), gopter.NoShrinker)
	}
}

func properties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	return gopter.NewProperties(parameters)
}

func TestSoundness(t *testing.T) {
	props := properties()
	props.Property("proofs found without hints verify", prop.ForAll(
		func(target *formula.Formula) bool {
			step, err := NewProver(nil).Prove(EmptyContext, target)
			if err != nil {
				_, ok := err.(*UnderivableWithoutHint)
				return ok
			}
			listing := Serialize(step)
			return step.Formula().Equal(target) &&
				listing.Len() == Size(step) &&
				verify.Valid(listing.Lines())
		},
		genFormula(4),
	))
	props.TestingRun(t)
}

func TestAxiomSchemaProperties(t *testing.T) {
	props := properties()
	props.Property("A1 instances are recognized", prop.ForAll(
		func(a, b *formula.Formula) bool {
			return formula.IsAxiom1(formula.Axiom1(a, b))
		},
		genFormula(3), genFormula(3),
	))
	props.Property("A2 instances are recognized", prop.ForAll(
		func(a, b, c *formula.Formula) bool {
			return formula.IsAxiom2(formula.Axiom2(a, b, c))
		},
		genFormula(3), genFormula(3), genFormula(3),
	))
	props.Property("p > (q > r) is A1 only when r = p", prop.ForAll(
		func(a, b, c *formula.Formula) bool {
			return formula.IsAxiom1(formula.Implies(a, formula.Implies(b, c))) == a.Equal(c)
		},
		genFormula(2), genFormula(2), genFormula(2),
	))
	props.TestingRun(t)
}

func TestDeductionTheorem(t *testing.T) {
	props := properties()
	props.Property("eliminating a hypothesis keeps proofs valid", prop.ForAll(
		func(ctx Context, a *formula.Formula, b *formula.Formula) bool {
			extended := ctx.Extend(a)
			proof, err := NewProver(nil).Prove(extended, b)
			if err != nil {
				return true
			}
			result, err := Eliminate(extended, proof)
			if err != nil {
				return false
			}
			return result.Context().Equal(ctx) &&
				result.Formula().Equal(formula.Implies(a, b)) &&
				verify.New(ctx.Formulas()...).Valid(Serialize(result).Lines())
		},
		genContext(3, 2), genFormula(2), genFormula(3),
	))
	props.TestingRun(t)
}

func TestTamperingIsDetected(t *testing.T) {
	props := properties()
	props.Property("changing one line breaks the proof", prop.ForAll(
		func(target *formula.Formula, pick int, replacement *formula.Formula) bool {
			step, err := NewProver(nil).Prove(EmptyContext, target)
			if err != nil {
				return true
			}
			lines := Serialize(step).Lines()
			idx := pick % len(lines)
			if lines[idx].Formula == replacement.String() {
				return true
			}
			lines[idx].Formula = replacement.String()
			err = verify.Verify(lines)
			if err == nil {
				// a replacement can still be an axiom instance when
				// nothing cites the line's exact formula
				return lines[idx].Justification == "A1" || lines[idx].Justification == "A2"
			}
			if failure, ok := err.(*verify.VerificationFailure); ok {
				return failure.Position >= lines[idx].Position
			}
			return false
		},
		genFormula(3), gopter.Gen(func(params *gopter.GenParameters) *gopter.GenResult {
			return gopter.NewGenResult(params.Rng.Intn(1000), gopter.NoShrinker)
		}), genFormula(3),
	))
	props.TestingRun(t)
}
