// Package oracle provides lemma oracles: the collaborators the prover asks
// for a witness X when it cannot reach an atomic target by itself.
package oracle

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/vilterp/hilbert/pkg/formula"
	"github.com/vilterp/hilbert/pkg/proof"
)

// Reject never supplies a lemma.
var Reject proof.LemmaOracle = proof.LemmaFunc(reject)

func reject(ctx proof.Context, target *formula.Formula) (*formula.Formula, error) {
	return nil, &proof.UnderivableWithoutHint{Context: ctx, Target: target}
}

func isRejection(err error) bool {
	_, ok := errors.Cause(err).(*proof.UnderivableWithoutHint)
	return ok
}

// Table

// Table maps goals to witnesses. A goal is looked up first as
// "<context>|-<target>", then as the bare target.
type Table map[string]*formula.Formula

var _ proof.LemmaOracle = Table{}
var _ LemmaSink = Table{}

// Key is the context-qualified table key, e.g. "[p,(p>q)]|-r". It has no
// spaces, so it can be written as the first field of a lemma file row.
func Key(ctx proof.Context, target *formula.Formula) string {
	hyps := ctx.Formulas()
	strs := make([]string, len(hyps))
	for idx, hyp := range hyps {
		strs[idx] = hyp.String()
	}
	return "[" + strings.Join(strs, ",") + "]|-" + target.String()
}

func (t Table) Lemma(ctx proof.Context, target *formula.Formula) (*formula.Formula, error) {
	if lemma, ok := t[Key(ctx, target)]; ok {
		return lemma, nil
	}
	if lemma, ok := t[target.String()]; ok {
		return lemma, nil
	}
	return reject(ctx, target)
}

// PutLemma records witness under the bare target.
func (t Table) PutLemma(target *formula.Formula, witness *formula.Formula) error {
	t[target.String()] = witness
	return nil
}

// ParseTable reads rows of `<goal> <witness>`; '#' starts a comment. A goal
// is a target formula, or `[<hyp>,...]|-<target>` to apply only under that
// context.
func ParseTable(r io.Reader) (Table, error) {
	table := Table{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if idx := strings.IndexByte(text, '#'); idx >= 0 {
			text = text[:idx]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, errors.Errorf("lemma table line %d: expected target and witness", lineNo)
		}
		key, err := parseGoal(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "lemma table line %d", lineNo)
		}
		witness, err := formula.Parse(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "lemma table line %d", lineNo)
		}
		table[key] = witness
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading lemma table")
	}
	return table, nil
}

// parseGoal returns the canonical table key for a goal field.
func parseGoal(text string) (string, error) {
	sep := strings.Index(text, "|-")
	if sep < 0 {
		target, err := formula.Parse(text)
		if err != nil {
			return "", err
		}
		return target.String(), nil
	}

	ctxText := text[:sep]
	if len(ctxText) < 2 || ctxText[0] != '[' || ctxText[len(ctxText)-1] != ']' {
		return "", errors.Errorf("context %q is not bracketed", ctxText)
	}
	var hyps []*formula.Formula
	// formulas never contain commas
	if inner := ctxText[1 : len(ctxText)-1]; inner != "" {
		for _, hypText := range strings.Split(inner, ",") {
			hyp, err := formula.Parse(hypText)
			if err != nil {
				return "", errors.Wrap(err, "context")
			}
			hyps = append(hyps, hyp)
		}
	}
	target, err := formula.Parse(text[sep+2:])
	if err != nil {
		return "", err
	}
	return Key(proof.NewContext(hyps...), target), nil
}

// Chain

type chain struct {
	oracles []proof.LemmaOracle
}

// Chain asks each oracle in turn; the first one that doesn't reject wins.
func Chain(oracles ...proof.LemmaOracle) proof.LemmaOracle {
	return &chain{oracles: oracles}
}

func (c *chain) Lemma(ctx proof.Context, target *formula.Formula) (*formula.Formula, error) {
	for _, oracle := range c.oracles {
		if oracle == nil {
			continue
		}
		lemma, err := oracle.Lemma(ctx, target)
		if err != nil {
			if isRejection(err) {
				continue
			}
			return nil, err
		}
		if lemma != nil {
			return lemma, nil
		}
	}
	return reject(ctx, target)
}

// Recorder

// LemmaSink stores answered goals. Table is one; searches that may still
// fail should record into a Table and persist it only once the proof is
// stored.
type LemmaSink interface {
	PutLemma(target *formula.Formula, witness *formula.Formula) error
}

type recorder struct {
	oracle proof.LemmaOracle
	sink   LemmaSink
}

// Record wraps oracle so every witness it supplies is also written to
// sink, keyed by target.
func Record(oracle proof.LemmaOracle, sink LemmaSink) proof.LemmaOracle {
	return &recorder{oracle: oracle, sink: sink}
}

func (r *recorder) Lemma(ctx proof.Context, target *formula.Formula) (*formula.Formula, error) {
	lemma, err := r.oracle.Lemma(ctx, target)
	if err != nil || lemma == nil {
		return lemma, err
	}
	if err := r.sink.PutLemma(target, lemma); err != nil {
		return nil, errors.Wrap(err, "recording lemma")
	}
	return lemma, nil
}
