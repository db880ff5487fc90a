package verify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vilterp/hilbert/pkg/formula"
)

// Verifier checks proof listings from scratch. It trusts nothing but the
// axiom schemas, modus ponens, and its own hypotheses.
type Verifier struct {
	Hypotheses []*formula.Formula
}

func New(hyps ...*formula.Formula) *Verifier {
	return &Verifier{Hypotheses: hyps}
}

// Verify checks lines against the empty context.
func Verify(lines []Line) error {
	return New().Verify(lines)
}

func Valid(lines []Line) bool {
	return Verify(lines) == nil
}

func (v *Verifier) Valid(lines []Line) bool {
	return v.Verify(lines) == nil
}

type justification struct {
	rule        string // "A1", "A2", "H" or "MP"
	hypothesis  int    // 1-based, for "H"
	implication int    // for "MP"
	antecedent  int    // for "MP"
}

// checkedLine caches everything derived from one line, so each line is
// parsed and checked at most once however many lines cite it.
type checkedLine struct {
	line    *Line
	just    justification
	err     error
	formula *formula.Formula
	parsed  bool
}

// Verify returns nil if the highest-numbered line is proved. Only lines the
// conclusion depends on are checked; they are checked in ascending position
// order and the first failure is returned.
func (v *Verifier) Verify(lines []Line) error {
	if len(lines) == 0 {
		return &MissingProofLine{Position: 1}
	}

	byPos := map[int]*checkedLine{}
	last := 0
	for idx := range lines {
		line := &lines[idx]
		if line.Position < 1 {
			return &MalformedProofLine{Position: line.Position, Text: line.String(), Reason: "bad position"}
		}
		if _, dup := byPos[line.Position]; dup {
			return &MalformedProofLine{Position: line.Position, Text: line.String(), Reason: "duplicate position"}
		}
		byPos[line.Position] = &checkedLine{line: line}
		if line.Position > last {
			last = line.Position
		}
	}

	reachable := v.collect(byPos, last)
	for _, pos := range reachable {
		if err := v.check(byPos, byPos[pos]); err != nil {
			return err
		}
	}
	return nil
}

// collect walks the citation graph from the conclusion with an explicit
// worklist and returns the positions reached, ascending.
func (v *Verifier) collect(byPos map[int]*checkedLine, conclusion int) []int {
	seen := map[int]bool{conclusion: true}
	worklist := []int{conclusion}
	for len(worklist) > 0 {
		pos := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		cl := byPos[pos]
		cl.just, cl.err = parseJustification(cl.line)
		if cl.err != nil || cl.just.rule != "MP" {
			continue
		}
		for _, ref := range []int{cl.just.implication, cl.just.antecedent} {
			if _, ok := byPos[ref]; !ok {
				cl.err = &MissingProofLine{Position: ref, ReferencedBy: pos}
				break
			}
		}
		if cl.err != nil {
			continue
		}
		for _, ref := range []int{cl.just.implication, cl.just.antecedent} {
			if !seen[ref] {
				seen[ref] = true
				worklist = append(worklist, ref)
			}
		}
	}

	out := make([]int, 0, len(seen))
	for pos := range seen {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

func (v *Verifier) check(byPos map[int]*checkedLine, cl *checkedLine) error {
	if cl.err != nil {
		return cl.err
	}
	conclusion, err := cl.parse()
	if err != nil {
		return err
	}
	pos := cl.line.Position

	switch cl.just.rule {
	case "A1":
		if !formula.IsAxiom1(conclusion) {
			return &VerificationFailure{
				Position: pos, Rule: "A1",
				Expected: "a>(b>a)", Actual: conclusion.String(),
				Reason: "not an instance of A1",
			}
		}
	case "A2":
		if !formula.IsAxiom2(conclusion) {
			return &VerificationFailure{
				Position: pos, Rule: "A2",
				Expected: "(a>(b>c))>((a>b)>(a>c))", Actual: conclusion.String(),
				Reason: "not an instance of A2",
			}
		}
	case "H":
		if cl.just.hypothesis > len(v.Hypotheses) {
			return &VerificationFailure{
				Position: pos, Rule: cl.line.Justification,
				Reason: fmt.Sprintf("only %d hypotheses", len(v.Hypotheses)),
			}
		}
		hyp := v.Hypotheses[cl.just.hypothesis-1]
		if !hyp.Equal(conclusion) {
			return &VerificationFailure{
				Position: pos, Rule: cl.line.Justification,
				Expected: hyp.String(), Actual: conclusion.String(),
				Reason: "hypothesis mismatch",
			}
		}
	case "MP":
		return checkModusPonens(byPos, cl, conclusion)
	}
	return nil
}

func checkModusPonens(byPos map[int]*checkedLine, cl *checkedLine, conclusion *formula.Formula) error {
	pos := cl.line.Position
	implication, err := byPos[cl.just.implication].parse()
	if err != nil {
		return err
	}
	antecedent, err := byPos[cl.just.antecedent].parse()
	if err != nil {
		return err
	}
	if !implication.IsImplication() {
		return &VerificationFailure{
			Position: pos, Rule: cl.line.Justification,
			Expected: fmt.Sprintf("(%s>%s)", antecedent, conclusion), Actual: implication.String(),
			Reason: fmt.Sprintf("line %d is not an implication", cl.just.implication),
		}
	}
	if !implication.Antecedent().Equal(antecedent) {
		return &VerificationFailure{
			Position: pos, Rule: cl.line.Justification,
			Expected: implication.Antecedent().String(), Actual: antecedent.String(),
			Reason: fmt.Sprintf("line %d does not match the antecedent of line %d", cl.just.antecedent, cl.just.implication),
		}
	}
	if !implication.Consequent().Equal(conclusion) {
		return &VerificationFailure{
			Position: pos, Rule: cl.line.Justification,
			Expected: implication.Consequent().String(), Actual: conclusion.String(),
			Reason: fmt.Sprintf("does not match the consequent of line %d", cl.just.implication),
		}
	}
	return nil
}

func (cl *checkedLine) parse() (*formula.Formula, error) {
	if !cl.parsed {
		cl.parsed = true
		f, err := formula.Parse(cl.line.Formula)
		if err != nil {
			cl.err = &MalformedProofLine{Position: cl.line.Position, Text: cl.line.String(), Reason: err.Error()}
		}
		cl.formula = f
	}
	if cl.formula == nil {
		return nil, cl.err
	}
	return cl.formula, nil
}

func parseJustification(line *Line) (justification, error) {
	tag := line.Justification
	malformed := func(reason string) error {
		return &MalformedProofLine{Position: line.Position, Text: line.String(), Reason: reason}
	}

	switch {
	case tag == "A1" || tag == "A2":
		return justification{rule: tag}, nil
	case strings.HasPrefix(tag, "H"):
		idx, err := strconv.Atoi(tag[1:])
		if err != nil || idx < 1 {
			return justification{}, malformed("bad hypothesis reference")
		}
		return justification{rule: "H", hypothesis: idx}, nil
	}

	parts := strings.Split(tag, ",")
	if len(parts) != 2 {
		return justification{}, malformed("justification is neither an axiom nor k,j")
	}
	k, kErr := strconv.Atoi(parts[0])
	j, jErr := strconv.Atoi(parts[1])
	if kErr != nil || jErr != nil {
		return justification{}, malformed("non-numeric line reference")
	}
	if k < 1 || j < 1 || k >= line.Position || j >= line.Position {
		return justification{}, malformed(fmt.Sprintf("references %d,%d must be earlier lines", k, j))
	}
	return justification{rule: "MP", implication: k, antecedent: j}, nil
}

func sortLines(lines []Line) {
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Position < lines[j].Position
	})
}
