package knot

import "fmt"

// Shifts lists the move directions in generation order.
var Shifts = [2]int{+1, -1}

// ApplyMove returns a copy of angles with coordinate i shifted by shift and
// its cyclic successor shifted by -shift, both modulo modulus. The sum, and
// hence the parity, is unchanged.
func ApplyMove(angles []int, i, shift, modulus int) []int {
	out := append([]int(nil), angles...)
	next := i + 1
	if next == len(out) {
		next = 0
	}
	out[i] = Mod(out[i]+shift, modulus)
	out[next] = Mod(out[next]-shift, modulus)
	return out
}

// Neighbors returns every configuration one elementary move away from r.
//
// For each coordinate i in ascending order and each shift in Shifts, the
// candidate ApplyMove(r.Angles, i, shift) is looked up in r's own bucket
// (moves conserve parity). A hit yields the stored record; a miss yields an
// Unknown placeholder with SentinelCost and SentinelRank that is not added
// to the Index.
//
// The result always holds 2·len(r.Angles) records. It also replaces r's
// neighbor cache, so IsAdjacentTo answers against this result afterwards.
//
// Complexity: O(D²) for D angles (D lookups, each hashing a D-vector).
func (ix *Index) Neighbors(r *Record) []*Record {
	n := len(r.Angles)
	adj := make([]*Record, 0, 2*n)
	for i := 0; i < n; i++ {
		for _, shift := range Shifts {
			moved := ApplyMove(r.Angles, i, shift, ix.modulus)
			if match, ok := ix.LookupWithParity(moved, r.Parity); ok {
				adj = append(adj, match)
				continue
			}
			adj = append(adj, newPlaceholder(moved, r.Parity))
		}
	}
	r.neighbors = adj
	return append([]*Record(nil), adj...)
}

// ChainDistance counts the unit moves used to turn a into b by fixing
// coordinates left to right: coordinate i takes the shortest rotational
// shift to b[i] and coordinate i+1 absorbs the compensation. The last
// coordinate is never shifted directly; equal parity makes it agree at the end.
//
// The count is an upper bound on the true move distance, not a shortest path.
// Returns ErrDimensionMismatch or ErrParityDiffers for incomparable knots.
func ChainDistance(a, b *Record, modulus int) (int, error) {
	if len(a.Angles) != len(b.Angles) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a.Angles), len(b.Angles))
	}
	if a.Parity != b.Parity {
		return 0, fmt.Errorf("%w: %d vs %d", ErrParityDiffers, a.Parity, b.Parity)
	}
	half := modulus / 2
	cur := append([]int(nil), a.Angles...)
	moves := 0
	for i := 0; i < len(cur)-1; i++ {
		shift := b.Angles[i] - cur[i]
		if shift > half {
			shift -= modulus
		}
		if shift < -half {
			shift += modulus
		}
		cur[i] = Mod(cur[i]+shift, modulus)
		cur[i+1] = Mod(cur[i+1]-shift, modulus)
		if shift < 0 {
			shift = -shift
		}
		moves += shift
	}
	return moves, nil
}
