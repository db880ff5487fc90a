package verify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vilterp/hilbert/pkg/formula"
)

const identityListing = `
1	((p>((p>p)>p))>((p>(p>p))>(p>p)))	A2
2	(p>((p>p)>p))	A1
3	((p>(p>p))>(p>p))	1,2
4	(p>(p>p))	A1
5	(p>p)	3,4
`

func mustRead(t *testing.T, text string) []Line {
	lines, err := ReadListing(strings.NewReader(text))
	require.NoError(t, err)
	return lines
}

func TestVerifyIdentity(t *testing.T) {
	lines := mustRead(t, identityListing)
	require.Len(t, lines, 5)
	require.NoError(t, Verify(lines))
	require.True(t, Valid(lines))
}

func TestVerifyUnorderedLines(t *testing.T) {
	lines := mustRead(t, identityListing)
	reversed := make([]Line, len(lines))
	for idx, line := range lines {
		reversed[len(lines)-1-idx] = line
	}
	require.NoError(t, Verify(reversed))
}

func TestVerifySingleAxiom(t *testing.T) {
	require.NoError(t, Verify([]Line{{1, "(p>(q>p))", "A1"}}))
	require.NoError(t, Verify([]Line{{1, "((p>(q>r))>((p>q)>(p>r)))", "A2"}}))

	err := Verify([]Line{{1, "(p>(q>r))", "A1"}})
	failure, ok := err.(*VerificationFailure)
	require.True(t, ok, "expected *VerificationFailure; got %T", err)
	require.Equal(t, 1, failure.Position)
}

func TestVerifyFailures(t *testing.T) {
	cases := []struct {
		lines    []Line
		position int
		kind     string
	}{
		{nil, 1, "missing"},
		{
			[]Line{{1, "(p>q)", "A1"}},
			1, "failure",
		},
		{
			[]Line{{1, "(p>(q>p))", "A3"}},
			1, "malformed",
		},
		{
			[]Line{{1, "(p>(q>p))", "A1"}, {2, "q", "1,2"}},
			2, "malformed",
		},
		{
			[]Line{{1, "(p>(q>p))", "A1"}, {2, "q", "1,x"}},
			2, "malformed",
		},
		{
			[]Line{{1, "(p>(q>p)", "A1"}},
			1, "malformed",
		},
		{
			[]Line{{1, "(p>(q>p))", "A1"}, {1, "(q>(q>q))", "A1"}},
			1, "malformed",
		},
		{
			[]Line{{1, "(p>(q>p))", "A1"}, {3, "(q>p)", "2,1"}},
			2, "missing",
		},
		// antecedent of line 1 is not line 2
		{
			[]Line{{1, "(p>(q>p))", "A1"}, {2, "(q>(p>q))", "A1"}, {3, "(q>p)", "1,2"}},
			3, "failure",
		},
		// wrong consequent
		{
			[]Line{
				{1, "(p>(p>p))", "A1"},
				{2, "((p>(p>p))>(q>(p>(p>p))))", "A1"},
				{3, "(q>p)", "2,1"},
			},
			3, "failure",
		},
		// hypotheses need a context
		{
			[]Line{{1, "p", "H1"}},
			1, "failure",
		},
	}

	for idx, testCase := range cases {
		err := Verify(testCase.lines)
		if err == nil {
			t.Fatalf("case %d: expected %s error; got success", idx, testCase.kind)
		}
		var position int
		var kind string
		switch e := err.(type) {
		case *VerificationFailure:
			position, kind = e.Position, "failure"
		case *MalformedProofLine:
			position, kind = e.Position, "malformed"
		case *MissingProofLine:
			position, kind = e.Position, "missing"
		default:
			t.Fatalf("case %d: unexpected error type %T: %v", idx, err, err)
		}
		if kind != testCase.kind || position != testCase.position {
			t.Errorf("case %d: expected %s at %d; got %s at %d (%v)", idx, testCase.kind, testCase.position, kind, position, err)
		}
	}
}

func TestVerifyIgnoresUnreachableLines(t *testing.T) {
	// line 1 is junk, but the conclusion does not cite it
	lines := []Line{
		{1, "(p>q)", "A1"},
		{2, "(p>(q>p))", "A1"},
	}
	require.NoError(t, Verify(lines))
}

func TestVerifyTampering(t *testing.T) {
	pristine := mustRead(t, identityListing)
	for idx := range pristine {
		lines := make([]Line, len(pristine))
		copy(lines, pristine)
		lines[idx].Formula = "(p>q)"

		err := Verify(lines)
		require.Error(t, err, "tampering line %d", idx+1)
		failure, ok := err.(*VerificationFailure)
		require.True(t, ok, "tampering line %d: got %T", idx+1, err)
		// the tampered line itself or a line citing it
		require.True(t, failure.Position >= idx+1, "tampering line %d reported at %d", idx+1, failure.Position)
	}

	lines := mustRead(t, identityListing)
	lines[0].Formula = "(p>q)"
	failure := Verify(lines).(*VerificationFailure)
	require.Equal(t, 1, failure.Position)
}

func TestVerifyHypotheses(t *testing.T) {
	p, q := formula.Atom('p'), formula.Atom('q')
	lines := []Line{
		{1, "p", "H1"},
		{2, "(p>q)", "H2"},
		{3, "q", "2,1"},
	}
	require.NoError(t, New(p, formula.Implies(p, q)).Verify(lines))
	require.Error(t, New(q, formula.Implies(p, q)).Verify(lines))
	require.Error(t, New(p).Verify(lines))
	// input is left alone
	require.Equal(t, "q", lines[2].Formula)
}

func TestReadListing(t *testing.T) {
	_, err := ReadListing(strings.NewReader("1 p"))
	require.IsType(t, &MalformedProofLine{}, err)
	_, err = ReadListing(strings.NewReader("one p A1"))
	require.IsType(t, &MalformedProofLine{}, err)

	lines := mustRead(t, "\n2 (p>p) 3,4\n\n1  (p>(q>p))  A1\n")
	require.Equal(t, []Line{{2, "(p>p)", "3,4"}, {1, "(p>(q>p))", "A1"}}, lines)
	require.Equal(t, "1\t(p>(q>p))\tA1\n2\t(p>p)\t3,4\n", FormatListing(lines))
}
