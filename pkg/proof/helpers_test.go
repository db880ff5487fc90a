package proof

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/verify"
)

var (
	p = formula.Atom('p')
	q = formula.Atom('q')
	r = formula.Atom('r')
)

func parse(text string) *formula.Formula {
	return formula.MustParse(text)
}

// requireValid serializes step and runs the independent verifier on it
// with ctx as hypotheses.
func requireValid(t *testing.T, ctx Context, step Step, target *formula.Formula) {
	t.Helper()
	if !step.Context().Equal(ctx) {
		t.Fatalf("proof is under %s; expected %s", step.Context(), ctx)
	}
	if !step.Formula().Equal(target) {
		t.Fatalf("proof asserts %s; expected %s", step.Formula(), target)
	}
	listing := Serialize(step)
	if err := verify.New(ctx.Formulas()...).Verify(listing.Lines()); err != nil {
		t.Fatalf("proof of %s ⊢ %s rejected: %v\n%s\n%s\n%s",
			ctx, target, err, verify.FormatListing(listing.Lines()), step.Format().String(), spew.Sdump(step))
	}
}

// table is a fixed lemma oracle keyed by target text.
func table(lemmas map[string]string) LemmaOracle {
	return LemmaFunc(func(ctx Context, target *formula.Formula) (*formula.Formula, error) {
		lemma, ok := lemmas[target.String()]
		if !ok {
			return nil, &UnderivableWithoutHint{Context: ctx, Target: target}
		}
		return parse(lemma), nil
	})
}
