package proof

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireWellFormed checks that positions are exactly 1..N, N is the tree
// size, and every modus ponens line cites strictly earlier lines.
func requireWellFormed(t *testing.T, root Step, listing *Listing) {
	t.Helper()
	require.Equal(t, Size(root), listing.Len())

	seen := map[int]bool{}
	for _, entry := range listing.Entries {
		require.True(t, entry.Position >= 1 && entry.Position <= listing.Len())
		require.False(t, seen[entry.Position], "duplicate position %d", entry.Position)
		seen[entry.Position] = true

		if _, ok := entry.Step.(*ModusPonens); !ok {
			continue
		}
		refs := strings.Split(entry.Justification(), ",")
		require.Len(t, refs, 2)
		for _, ref := range refs {
			pos, err := strconv.Atoi(ref)
			require.NoError(t, err)
			require.True(t, pos < entry.Position, "line %d cites %d", entry.Position, pos)
		}
	}
	require.Equal(t, listing.Len(), listing.Entries[0].Position)
}

func TestSerializeOrder(t *testing.T) {
	step, err := Prove(parse("(p>p)"), nil)
	require.NoError(t, err)
	listing := Serialize(step)
	requireWellFormed(t, step, listing)

	// root first in visit order, then the antecedent subtree
	root := step.(*ModusPonens)
	require.Equal(t, Step(root), listing.Entries[0].Step)
	require.Equal(t, root.Antecedent, listing.Entries[1].Step)
	require.Equal(t, root.Implication, listing.Entries[2].Step)

	ordered := listing.Ordered()
	for idx, entry := range ordered {
		require.Equal(t, idx+1, entry.Position)
	}
}

func TestSerializeNoSharing(t *testing.T) {
	ctx := NewContext(p)
	hyp := mustHyp(t, ctx, 0)
	// the same step object used twice still gets two lines
	step := mustMP(t, ctx, NewAxiom1(ctx, p, p), hyp)
	twice := mustMP(t, ctx, mustMP(t, ctx, NewAxiom1(ctx, parse("(p>p)"), p), step), hyp)
	listing := Serialize(twice)
	requireWellFormed(t, twice, listing)
	require.Equal(t, 7, listing.Len())
	hyps := 0
	for _, entry := range listing.Entries {
		if entry.Justification() == "H1" {
			hyps++
		}
	}
	require.Equal(t, 2, hyps)
}

func TestSerializeTheorems(t *testing.T) {
	for _, text := range []string{
		"(q>(p>p))",
		"(p>(q>(r>p)))",
		"(p>((p>q)>q))",
		"((p>q)>((r>p)>(r>q)))",
	} {
		step, err := Prove(parse(text), table(map[string]string{"q": "p"}))
		require.NoError(t, err, text)
		requireWellFormed(t, step, Serialize(step))
	}
}
