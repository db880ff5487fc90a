package proof

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vilterp/hilbert/pkg/formula"
)

// LemmaOracle supplies a witness X for a target the search cannot reach on
// its own; the prover then proves X and X → target separately.
type LemmaOracle interface {
	Lemma(ctx Context, target *formula.Formula) (*formula.Formula, error)
}

// LemmaFunc adapts a function to LemmaOracle.
type LemmaFunc func(ctx Context, target *formula.Formula) (*formula.Formula, error)

func (f LemmaFunc) Lemma(ctx Context, target *formula.Formula) (*formula.Formula, error) {
	return f(ctx, target)
}

// TraceFunc observes every search decision.
type TraceFunc func(ctx Context, target *formula.Formula, rule string)

const DefaultMaxLemmaDepth = 64

type Stats struct {
	Searches      int
	LemmaRequests int
	Eliminations  int
}

type Prover struct {
	oracle        LemmaOracle
	maxLemmaDepth int
	trace         TraceFunc

	lemmaDepth int
	stats      Stats
}

type Option func(*Prover)

func WithMaxLemmaDepth(depth int) Option {
	return func(p *Prover) {
		p.maxLemmaDepth = depth
	}
}

func WithTrace(trace TraceFunc) Option {
	return func(p *Prover) {
		p.trace = trace
	}
}

// NewProver returns a prover consulting oracle in the fallback case. A nil
// oracle makes every fallback fail with UnderivableWithoutHint.
func NewProver(oracle LemmaOracle, opts ...Option) *Prover {
	p := &Prover{
		oracle:        oracle,
		maxLemmaDepth: DefaultMaxLemmaDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Prover) Stats() Stats {
	return p.stats
}

// Prove returns a step asserting target under ctx.
func (p *Prover) Prove(ctx Context, target *formula.Formula) (Step, error) {
	p.stats.Searches++

	if a, b, ok := formula.Axiom1Parts(target); ok {
		p.traceRule(ctx, target, "A1")
		return NewAxiom1(ctx, a, b), nil
	}
	if a, b, c, ok := formula.Axiom2Parts(target); ok {
		p.traceRule(ctx, target, "A2")
		return NewAxiom2(ctx, a, b, c), nil
	}

	// Hypotheses below the top take precedence over the top.
	if idx := ctx.IndexOf(target); idx >= 0 {
		p.traceRule(ctx, target, "hypothesis")
		return NewHypothesis(ctx, idx)
	}

	if step, err := p.proveFromContext(ctx, target); step != nil || err != nil {
		return step, err
	}

	if target.IsImplication() {
		p.traceRule(ctx, target, "deduction")
		extended := ctx.Extend(target.Antecedent())
		sub, err := p.Prove(extended, target.Consequent())
		if err != nil {
			return nil, err
		}
		p.stats.Eliminations++
		return Eliminate(extended, sub)
	}

	return p.proveWithLemma(ctx, target)
}

// proveFromContext looks for hypotheses E = X → target and X, earliest E
// first, then earliest X.
func (p *Prover) proveFromContext(ctx Context, target *formula.Formula) (Step, error) {
	for k := 0; k < ctx.Len(); k++ {
		entry := ctx.At(k)
		if !entry.IsImplication() || !entry.Consequent().Equal(target) {
			continue
		}
		j := ctx.IndexOf(entry.Antecedent())
		if j < 0 {
			continue
		}
		p.traceRule(ctx, target, "MP from hypotheses")
		implication, err := NewHypothesis(ctx, k)
		if err != nil {
			return nil, err
		}
		antecedent, err := NewHypothesis(ctx, j)
		if err != nil {
			return nil, err
		}
		return NewModusPonens(ctx, implication, antecedent)
	}
	return nil, nil
}

func (p *Prover) proveWithLemma(ctx Context, target *formula.Formula) (Step, error) {
	if p.oracle == nil {
		return nil, &UnderivableWithoutHint{Context: ctx, Target: target, Reason: "no lemma oracle"}
	}
	if p.lemmaDepth >= p.maxLemmaDepth {
		return nil, &UnderivableWithoutHint{
			Context: ctx,
			Target:  target,
			Reason:  fmt.Sprintf("lemma requests nested deeper than %d", p.maxLemmaDepth),
		}
	}
	p.traceRule(ctx, target, "lemma")
	p.stats.LemmaRequests++
	lemma, err := p.oracle.Lemma(ctx, target)
	if err != nil {
		if _, ok := errors.Cause(err).(*UnderivableWithoutHint); ok {
			return nil, err
		}
		return nil, errors.Wrapf(err, "requesting lemma for %s", target)
	}
	if lemma == nil {
		return nil, &UnderivableWithoutHint{Context: ctx, Target: target, Reason: "oracle gave no lemma"}
	}

	p.lemmaDepth++
	defer func() { p.lemmaDepth-- }()

	antecedent, err := p.Prove(ctx, lemma)
	if err != nil {
		return nil, err
	}
	implication, err := p.Prove(ctx, formula.Implies(lemma, target))
	if err != nil {
		return nil, err
	}
	return NewModusPonens(ctx, implication, antecedent)
}

func (p *Prover) traceRule(ctx Context, target *formula.Formula, rule string) {
	if p.trace != nil {
		p.trace(ctx, target, rule)
	}
}

// Prove proves target from the empty context.
func Prove(target *formula.Formula, oracle LemmaOracle) (Step, error) {
	return NewProver(oracle).Prove(EmptyContext, target)
}
