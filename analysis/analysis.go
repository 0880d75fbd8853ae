// Package analysis computes the neighborhood statistics used to judge a set
// of good knots against the full dataset. Functions return values; they
// never print.
package analysis

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/knotgraph/knot"
)

// ErrNoSuchKnot is returned by Pick for an empty or out-of-range slot.
var ErrNoSuchKnot = errors.New("analysis: no knot at that parity and rank")

// IsGood reports whether r carries a real cost below the placeholder sentinel.
func IsGood(r *knot.Record) bool {
	return !r.IsPlaceholder() && r.Cost < knot.SentinelCost
}

// Pick returns the knot of the given parity and 1-based rank.
func Pick(ix *knot.Index, parity, rank int) (*knot.Record, error) {
	bucket := ix.Bucket(parity)
	if rank < 1 || rank > len(bucket) {
		return nil, fmt.Errorf("%w: parity %d rank %d (bucket holds %d)",
			ErrNoSuchKnot, parity, rank, len(bucket))
	}
	return bucket[rank-1], nil
}

// Retrieve finds the knot of ix equivalent to r, trusting r's parity.
func Retrieve(ix *knot.Index, r *knot.Record) (*knot.Record, bool) {
	return ix.LookupWithParity(r.Angles, r.Parity)
}

// AdjacentCosts returns the cost of every neighbor of start, in neighbor
// order. Placeholders report knot.SentinelCost.
func AdjacentCosts(ix *knot.Index, start *knot.Record) []float64 {
	adj := ix.Neighbors(start)
	out := make([]float64, len(adj))
	for i, n := range adj {
		out[i] = n.Cost
	}
	return out
}

// AdjacencyReport summarizes how many good neighbors the good knots have
// inside the full dataset.
type AdjacencyReport struct {
	// PerKnot holds the good-neighbor count of each good knot found in full.
	PerKnot []int
	// Total is the sum of PerKnot.
	Total int
	// Distinct counts distinct neighbor configurations over all expansions.
	Distinct int
	// DistinctKnown counts the distinct ones that are dataset knots.
	DistinctKnown int
	// Missing counts good knots absent from the full dataset.
	Missing int
}

// Mean returns Total / len(PerKnot), or 0 for an empty report.
func (r AdjacencyReport) Mean() float64 {
	if len(r.PerKnot) == 0 {
		return 0
	}
	return float64(r.Total) / float64(len(r.PerKnot))
}

// GoodAdjacency expands, inside full, every knot of good and counts its
// neighbors that are good. Good knots absent from full are counted in
// Missing and skipped.
func GoodAdjacency(full, good *knot.Index) AdjacencyReport {
	var rep AdjacencyReport
	known := roaring.New()
	unknown := make(map[string]struct{})

	for _, g := range good.Records() {
		eq, ok := Retrieve(full, g)
		if !ok {
			rep.Missing++
			continue
		}
		count := 0
		for _, n := range full.Neighbors(eq) {
			if id, ok := n.Ordinal(); ok {
				known.Add(id)
			} else {
				unknown[n.Key()] = struct{}{}
			}
			if IsGood(n) {
				count++
			}
		}
		rep.PerKnot = append(rep.PerKnot, count)
		rep.Total += count
	}
	rep.DistinctKnown = int(known.GetCardinality())
	rep.Distinct = rep.DistinctKnown + len(unknown)
	return rep
}

// Pair is a directed pair of knots one move apart.
type Pair struct {
	From, To *knot.Record
}

// TopAdjacency lists every ordered pair of good knots one move apart inside
// ix. Each unordered adjacency therefore appears twice.
func TopAdjacency(ix *knot.Index) []Pair {
	var pairs []Pair
	for _, r := range ix.Records() {
		for _, n := range ix.Neighbors(r) {
			if IsGood(n) {
				pairs = append(pairs, Pair{From: r, To: n})
			}
		}
	}
	return pairs
}

// DistanceReport holds, per full knot with a same-parity good knot, the
// smallest ChainDistance to one.
type DistanceReport struct {
	Distances []int
	Max       int
	// Unmatched counts full knots whose bucket in good is empty.
	Unmatched int
}

// DistanceFromGood measures how far the full dataset strays from the good
// knots. Knots are compared only within their declared parity bucket.
func DistanceFromGood(full, good *knot.Index) (DistanceReport, error) {
	var rep DistanceReport
	modulus := full.Modulus()
	for p := 0; p < modulus; p++ {
		targets := good.Bucket(p)
		for _, r := range full.Bucket(p) {
			if len(targets) == 0 {
				rep.Unmatched++
				continue
			}
			best := -1
			for _, g := range targets {
				d, err := knot.ChainDistance(r, g, modulus)
				if err != nil {
					return DistanceReport{}, fmt.Errorf("analysis: [%s] vs [%s]: %w", r.Key(), g.Key(), err)
				}
				if best < 0 || d < best {
					best = d
				}
			}
			rep.Distances = append(rep.Distances, best)
			if best > rep.Max {
				rep.Max = best
			}
		}
	}
	return rep, nil
}

// BucketSizes returns the number of knots per parity.
func BucketSizes(ix *knot.Index) []int {
	out := make([]int, ix.Modulus())
	for p := range out {
		out[p] = len(ix.Bucket(p))
	}
	return out
}
