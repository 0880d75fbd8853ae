// Configuration and errors for cheapest-path search over a
// movegraph.Graph.
//
// Entering a knot costs its Cost, so the distance of a path is the summed
// cost of every knot on it after the source. Costs are non-negative.
//
// Options:
//
//	– Source:      key of the starting knot (non-empty, present in the graph).
//	– ReturnPath:  if true, return the predecessor map for path reconstruction.
//	– MaxCost:     optional cap on distances to explore.
//
// Errors (sentinel):
//
//	– ErrEmptySource    if the source key is empty.
//	– ErrNilGraph       if the graph pointer is nil.
//	– ErrVertexNotFound if the source or target is not in the graph.
//	– ErrNegativeCost   if a knot carries a negative cost.
//	– ErrBadMaxCost     if MaxCost < 0 or NaN.
//	– ErrNoPath         if the target cannot be reached.

package dijkstra

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	ErrEmptySource    = errors.New("dijkstra: source vertex ID is empty")
	ErrNilGraph       = errors.New("dijkstra: graph is nil")
	ErrVertexNotFound = errors.New("dijkstra: vertex not found in graph")
	ErrNegativeCost   = errors.New("dijkstra: negative knot cost encountered")
	ErrBadMaxCost     = errors.New("dijkstra: MaxCost must be non-negative")
	ErrNoPath         = errors.New("dijkstra: no path between knots")
)

// Options holds the search parameters.
type Options struct {
	Source     string
	ReturnPath bool
	MaxCost    float64

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns options for source with no path and no cost cap.
func DefaultOptions(source string) Options {
	return Options{
		Source:     source,
		ReturnPath: false,
		MaxCost:    math.Inf(1),
	}
}

// Source sets the starting knot key.
func Source(id string) Option {
	return func(o *Options) { o.Source = id }
}

// WithReturnPath requests the predecessor map.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// WithMaxCost stops exploring beyond distance c.
func WithMaxCost(c float64) Option {
	return func(o *Options) {
		if c < 0 || math.IsNaN(c) {
			o.err = fmt.Errorf("%w: got %v", ErrBadMaxCost, c)
			return
		}
		o.MaxCost = c
	}
}
