package formula

import (
	"bytes"
	"strings"
)

// Atoms is the alphabet of atomic propositions.
const Atoms = "pqrsabcd"

// Formula is an immutable propositional formula over implication.
// A node is an atom (label set, no children) or an implication
// (both children set, no label).
type Formula struct {
	label byte
	left  *Formula
	right *Formula
}

func IsAtomLabel(label byte) bool {
	return strings.IndexByte(Atoms, label) >= 0
}

// Atom returns the atomic formula with the given label.
func Atom(label byte) *Formula {
	if !IsAtomLabel(label) {
		panic(&InvariantViolation{Reason: "unknown atom label " + string(label)})
	}
	return &Formula{label: label}
}

// Implies returns antecedent → consequent.
func Implies(antecedent *Formula, consequent *Formula) *Formula {
	if antecedent == nil || consequent == nil {
		panic(&InvariantViolation{Reason: "implication with a missing side"})
	}
	return &Formula{
		left:  antecedent,
		right: consequent,
	}
}

func (f *Formula) IsImplication() bool {
	if (f.left == nil) != (f.right == nil) {
		panic(&InvariantViolation{Reason: "formula node with exactly one child"})
	}
	return f.left != nil
}

func (f *Formula) IsAtom() bool {
	return !f.IsImplication()
}

// Label is zero for implications.
func (f *Formula) Label() byte {
	return f.label
}

// Antecedent is nil for atoms.
func (f *Formula) Antecedent() *Formula {
	return f.left
}

// Consequent is nil for atoms.
func (f *Formula) Consequent() *Formula {
	return f.right
}

// Equal is deep structural equality.
func (f *Formula) Equal(other *Formula) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f == other {
		return true
	}
	if f.IsImplication() != other.IsImplication() {
		return false
	}
	if !f.IsImplication() {
		return f.label == other.label
	}
	return f.left.Equal(other.left) && f.right.Equal(other.right)
}

// Size is the number of nodes in the tree.
func (f *Formula) Size() int {
	if !f.IsImplication() {
		return 1
	}
	return 1 + f.left.Size() + f.right.Size()
}

func (f *Formula) String() string {
	buf := bytes.NewBufferString("")
	f.writeTo(buf)
	return buf.String()
}

func (f *Formula) writeTo(buf *bytes.Buffer) {
	if !f.IsImplication() {
		buf.WriteByte(f.label)
		return
	}
	buf.WriteByte('(')
	f.left.writeTo(buf)
	buf.WriteByte('>')
	f.right.writeTo(buf)
	buf.WriteByte(')')
}
