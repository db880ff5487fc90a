package proof

import (
	"fmt"

	"github.com/vilterp/hilbert/pkg/formula"
	pp "github.com/vilterp/hilbert/pkg/prettyprint"
)

type Rule string

const (
	RuleAxiom1      Rule = "A1"
	RuleAxiom2      Rule = "A2"
	RuleHypothesis  Rule = "H"
	RuleModusPonens Rule = "MP"
)

// Step is one node of a proof tree. The set of implementations is closed:
// Axiom1, Axiom2, Hypothesis and ModusPonens.
type Step interface {
	// Context is the hypothesis stack the step is proved under.
	Context() Context
	// Formula is what the step asserts.
	Formula() *formula.Formula
	Rule() Rule
	Format() pp.Doc

	isStep()
}

// Axiom1

type Axiom1 struct {
	ctx     Context
	formula *formula.Formula

	A *formula.Formula
	B *formula.Formula
}

var _ Step = &Axiom1{}

func NewAxiom1(ctx Context, a *formula.Formula, b *formula.Formula) *Axiom1 {
	return &Axiom1{
		ctx:     ctx,
		formula: formula.Axiom1(a, b),
		A:       a,
		B:       b,
	}
}

func (s *Axiom1) Context() Context          { return s.ctx }
func (s *Axiom1) Formula() *formula.Formula { return s.formula }
func (s *Axiom1) Rule() Rule                { return RuleAxiom1 }
func (*Axiom1) isStep()                     {}

func (s *Axiom1) Format() pp.Doc {
	return formatLeaf(s, "A1")
}

// Axiom2

type Axiom2 struct {
	ctx     Context
	formula *formula.Formula

	A *formula.Formula
	B *formula.Formula
	C *formula.Formula
}

var _ Step = &Axiom2{}

func NewAxiom2(ctx Context, a *formula.Formula, b *formula.Formula, c *formula.Formula) *Axiom2 {
	return &Axiom2{
		ctx:     ctx,
		formula: formula.Axiom2(a, b, c),
		A:       a,
		B:       b,
		C:       c,
	}
}

func (s *Axiom2) Context() Context          { return s.ctx }
func (s *Axiom2) Formula() *formula.Formula { return s.formula }
func (s *Axiom2) Rule() Rule                { return RuleAxiom2 }
func (*Axiom2) isStep()                     {}

func (s *Axiom2) Format() pp.Doc {
	return formatLeaf(s, "A2")
}

// Hypothesis

type Hypothesis struct {
	ctx Context

	Index int
}

var _ Step = &Hypothesis{}

func NewHypothesis(ctx Context, idx int) (*Hypothesis, error) {
	if idx < 0 || idx >= ctx.Len() {
		return nil, &InvariantViolation{
			Reason: fmt.Sprintf("hypothesis %d out of range for context %s", idx, ctx),
		}
	}
	return &Hypothesis{
		ctx:   ctx,
		Index: idx,
	}, nil
}

func (s *Hypothesis) Context() Context          { return s.ctx }
func (s *Hypothesis) Formula() *formula.Formula { return s.ctx.At(s.Index) }
func (s *Hypothesis) Rule() Rule                { return RuleHypothesis }
func (*Hypothesis) isStep()                     {}

// IsTop reports whether the step cites the most recent hypothesis.
func (s *Hypothesis) IsTop() bool {
	return s.Index == s.ctx.Len()-1
}

func (s *Hypothesis) Format() pp.Doc {
	if s.IsTop() {
		return formatLeaf(s, fmt.Sprintf("last hypothesis %d", s.Index+1))
	}
	return formatLeaf(s, fmt.Sprintf("hypothesis %d", s.Index+1))
}

// ModusPonens

type ModusPonens struct {
	ctx     Context
	formula *formula.Formula

	Implication Step
	Antecedent  Step
}

var _ Step = &ModusPonens{}

// NewModusPonens derives B from A → B and A, all under ctx.
func NewModusPonens(ctx Context, implication Step, antecedent Step) (*ModusPonens, error) {
	if !ctx.Equal(implication.Context()) || !ctx.Equal(antecedent.Context()) {
		return nil, &InvariantViolation{
			Reason: fmt.Sprintf(
				"modus ponens premises under %s and %s; expected %s",
				implication.Context(), antecedent.Context(), ctx,
			),
		}
	}
	impl := implication.Formula()
	if !impl.IsImplication() || !impl.Antecedent().Equal(antecedent.Formula()) {
		return nil, &InvariantViolation{
			Reason: fmt.Sprintf(
				"modus ponens on %s and %s", impl, antecedent.Formula(),
			),
		}
	}
	return &ModusPonens{
		ctx:         ctx,
		formula:     impl.Consequent(),
		Implication: implication,
		Antecedent:  antecedent,
	}, nil
}

func (s *ModusPonens) Context() Context          { return s.ctx }
func (s *ModusPonens) Formula() *formula.Formula { return s.formula }
func (s *ModusPonens) Rule() Rule                { return RuleModusPonens }
func (*ModusPonens) isStep()                     {}

func (s *ModusPonens) Format() pp.Doc {
	return pp.Seq([]pp.Doc{
		formatLeaf(s, "MP"), pp.Newline,
		pp.Nest(2, pp.Join([]pp.Doc{
			s.Implication.Format(),
			s.Antecedent.Format(),
		}, pp.Newline)),
	})
}

func formatLeaf(s Step, rule string) pp.Doc {
	return pp.Textf("%s ⊢ %s\t%s", s.Context(), s.Formula(), rule)
}

// Size is the number of nodes in the proof tree, which is also the number
// of lines its listing will have.
func Size(s Step) int {
	size := 0
	stack := []Step{s}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		if mp, ok := top.(*ModusPonens); ok {
			stack = append(stack, mp.Implication, mp.Antecedent)
		}
	}
	return size
}
