package proof

import (
	"strings"

	"github.com/vilterp/hilbert/pkg/formula"
)

// Context is the hypothesis stack Γ. The last entry is the top, i.e. the
// most recently introduced hypothesis. Contexts are values: Extend and Drop
// return new contexts and never touch the receiver's backing array.
type Context struct {
	hyps []*formula.Formula
}

var EmptyContext = Context{}

func NewContext(hyps ...*formula.Formula) Context {
	return EmptyContext.Extend(hyps...)
}

func (c Context) Len() int {
	return len(c.hyps)
}

func (c Context) At(idx int) *formula.Formula {
	return c.hyps[idx]
}

// Top panics on the empty context.
func (c Context) Top() *formula.Formula {
	return c.hyps[len(c.hyps)-1]
}

// Extend returns c with hyps pushed on top.
func (c Context) Extend(hyps ...*formula.Formula) Context {
	out := make([]*formula.Formula, len(c.hyps), len(c.hyps)+len(hyps))
	copy(out, c.hyps)
	return Context{hyps: append(out, hyps...)}
}

// Drop returns c without its top. The result shares storage with c but is
// capped, so a later Extend on it cannot write into c.
func (c Context) Drop() Context {
	n := len(c.hyps) - 1
	return Context{hyps: c.hyps[:n:n]}
}

// IndexOf returns the first index structurally equal to f, or -1.
func (c Context) IndexOf(f *formula.Formula) int {
	for idx, hyp := range c.hyps {
		if hyp.Equal(f) {
			return idx
		}
	}
	return -1
}

func (c Context) Equal(other Context) bool {
	if len(c.hyps) != len(other.hyps) {
		return false
	}
	for idx := range c.hyps {
		if !c.hyps[idx].Equal(other.hyps[idx]) {
			return false
		}
	}
	return true
}

func (c Context) Formulas() []*formula.Formula {
	out := make([]*formula.Formula, len(c.hyps))
	copy(out, c.hyps)
	return out
}

func (c Context) String() string {
	strs := make([]string, len(c.hyps))
	for idx, hyp := range c.hyps {
		strs[idx] = hyp.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}
