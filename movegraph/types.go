package movegraph

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/knotgraph/knot"
)

// Sentinel errors for movegraph operations.
var (
	// ErrNilIndex indicates Build was given a nil index.
	ErrNilIndex = errors.New("movegraph: index is nil")

	// ErrVertexNotFound indicates an operation referenced a knot not in the graph.
	ErrVertexNotFound = errors.New("movegraph: vertex not found")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("movegraph: invalid option supplied")
)

// Option configures Build.
type Option func(*Options)

// Options selects which dataset knots become vertices.
type Options struct {
	// Parity restricts the graph to one bucket; -1 keeps every bucket.
	Parity int

	// CostBelow keeps only knots with Cost strictly below it.
	CostBelow float64

	err error
}

// DefaultOptions keeps every bucket and every cost.
func DefaultOptions() Options {
	return Options{
		Parity:    -1,
		CostBelow: math.Inf(1),
	}
}

// WithParity restricts the graph to bucket p (p ≥ 0).
func WithParity(p int) Option {
	return func(o *Options) {
		if p < 0 {
			o.err = fmt.Errorf("%w: parity cannot be negative (%d)", ErrOptionViolation, p)
			return
		}
		o.Parity = p
	}
}

// WithCostBelow keeps only knots cheaper than c; knot.SentinelCost keeps
// the knots an analysis would count as good.
func WithCostBelow(c float64) Option {
	return func(o *Options) {
		if math.IsNaN(c) {
			o.err = fmt.Errorf("%w: cost ceiling is NaN", ErrOptionViolation)
			return
		}
		o.CostBelow = c
	}
}

// Graph is an undirected, unweighted graph whose vertices are dataset knots
// (keyed by knot.Key) and whose edges join knots one elementary move apart.
//
// mu guards vertices and adjacency. A Graph is immutable after Build, so the
// lock only matters to readers racing with Build's final publication.
type Graph struct {
	mu sync.RWMutex

	modulus int
	edges   int

	vertices map[string]*knot.Record
	// adjacency[u][v] exists iff u and v are one move apart; symmetric.
	adjacency map[string]map[string]struct{}
}
