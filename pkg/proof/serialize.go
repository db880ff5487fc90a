package proof

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/vilterp/hilbert/pkg/verify"
)

// Entry is one line of a serialized proof.
type Entry struct {
	Position int
	Step     Step

	implication *Entry
	antecedent  *Entry
}

// Justification is "A1", "A2", "H<i>" for the i-th hypothesis (1-based),
// or "k,j" citing the implication and antecedent lines.
func (e *Entry) Justification() string {
	switch s := e.Step.(type) {
	case *Axiom1:
		return "A1"
	case *Axiom2:
		return "A2"
	case *Hypothesis:
		return "H" + strconv.Itoa(s.Index+1)
	case *ModusPonens:
		return fmt.Sprintf("%d,%d", e.implication.Position, e.antecedent.Position)
	default:
		panic(&InvariantViolation{Reason: fmt.Sprintf("unknown proof step %T", e.Step)})
	}
}

func (e *Entry) String() string {
	return fmt.Sprintf("%d\t%s\t%s", e.Position, e.Step.Formula(), e.Justification())
}

type Listing struct {
	// Entries are in visit order: root first, every step before its
	// premises. Positions run the other way.
	Entries []*Entry
}

// Serialize linearizes a proof tree. Steps are visited pre-order (root,
// antecedent subtree, implication subtree) and numbered from the last
// visited, so the root gets the highest position and every modus ponens
// line cites strictly smaller positions. Identical sub-proofs are not
// shared.
func Serialize(root Step) *Listing {
	var entries []*Entry
	rootEntry := &Entry{Step: root}
	stack := []*Entry{rootEntry}
	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries = append(entries, entry)

		mp, ok := entry.Step.(*ModusPonens)
		if !ok {
			continue
		}
		entry.implication = &Entry{Step: mp.Implication}
		entry.antecedent = &Entry{Step: mp.Antecedent}
		// antecedent on top: its subtree is visited first
		stack = append(stack, entry.implication, entry.antecedent)
	}

	for idx, entry := range entries {
		entry.Position = len(entries) - idx
	}
	return &Listing{Entries: entries}
}

func (l *Listing) Len() int {
	return len(l.Entries)
}

// Ordered returns the entries by ascending position.
func (l *Listing) Ordered() []*Entry {
	out := make([]*Entry, len(l.Entries))
	for idx, entry := range l.Entries {
		out[len(l.Entries)-1-idx] = entry
	}
	return out
}

// Lines renders the listing as verifier input, ascending by position.
func (l *Listing) Lines() []verify.Line {
	ordered := l.Ordered()
	lines := make([]verify.Line, len(ordered))
	for idx, entry := range ordered {
		lines[idx] = verify.Line{
			Position:      entry.Position,
			Formula:       entry.Step.Formula().String(),
			Justification: entry.Justification(),
		}
	}
	return lines
}

// WriteTo writes one tab-separated line per entry, ascending by position.
func (l *Listing) WriteTo(w io.Writer) (int64, error) {
	bufWriter := bufio.NewWriter(w)
	var written int64
	for _, entry := range l.Ordered() {
		n, err := fmt.Fprintln(bufWriter, entry.String())
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bufWriter.Flush()
}
