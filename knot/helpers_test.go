package knot_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/knotgraph/knot"
	"github.com/stretchr/testify/require"
)

// randomIndex builds an index of n distinct random vectors of dim angles.
// The generator is seeded so every run sees the same dataset.
func randomIndex(tb testing.TB, modulus, dim, n int, seed int64) *knot.Index {
	tb.Helper()
	r := rand.New(rand.NewSource(seed))
	seen := make(map[string]bool, n)
	records := make([]*knot.Record, 0, n)
	for len(records) < n {
		angles := make([]int, dim)
		for i := range angles {
			angles[i] = r.Intn(modulus)
		}
		k := knot.Key(angles)
		if seen[k] {
			continue
		}
		seen[k] = true
		records = append(records, rec(modulus, r.Float64()*2.5, angles...))
	}
	ix, err := knot.New(records, modulus)
	require.NoError(tb, err)
	return ix
}

// denseIndex stores every vector of dim angles over modulus whose parity is p.
func denseIndex(tb testing.TB, modulus, dim, p int) *knot.Index {
	tb.Helper()
	var records []*knot.Record
	angles := make([]int, dim)
	var fill func(pos int)
	fill = func(pos int) {
		if pos == dim {
			if knot.ParityOf(angles, modulus) == p {
				records = append(records, rec(modulus, 1, angles...))
			}
			return
		}
		for v := 0; v < modulus; v++ {
			angles[pos] = v
			fill(pos + 1)
		}
	}
	fill(0)
	ix, err := knot.New(records, modulus)
	require.NoError(tb, err)
	return ix
}
