package explore

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/knotgraph/knot"
)

// Sentinel errors for walk execution.
var (
	// ErrNilIndex is returned if a nil index pointer is passed.
	ErrNilIndex = errors.New("explore: index is nil")

	// ErrNilStart is returned if the start record is nil.
	ErrNilStart = errors.New("explore: start record is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("explore: invalid option supplied")

	// ErrUnbounded is returned when neither MaxDepth nor KnownOnly limits the
	// walk; placeholders alone span every vector of the start's parity.
	ErrUnbounded = errors.New("explore: walk needs MaxDepth or KnownOnly")

	// ErrNotReached is returned by PathTo for a record the walk never saw.
	ErrNotReached = errors.New("explore: record not reached")
)

// Option configures the walk via functional arguments.
type Option func(*Options)

// Options holds parameters and callbacks of a walk.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth, if > 0, stops expanding beyond this many moves.
	MaxDepth int

	// KnownOnly records placeholders but never expands them.
	KnownOnly bool

	// Filter can skip a move by returning false.
	Filter func(curr, next *knot.Record) bool

	// OnVisit is called for each visited record; an error aborts the walk.
	OnVisit func(r *knot.Record, depth int) error

	err error
}

// DefaultOptions returns a background context, no depth limit, no filter
// and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		MaxDepth:  0,
		KnownOnly: false,
		Filter:    func(_, _ *knot.Record) bool { return true },
		OnVisit:   func(*knot.Record, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth stops the walk at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithKnownOnly keeps the walk inside the dataset.
func WithKnownOnly() Option {
	return func(o *Options) { o.KnownOnly = true }
}

// WithFilter skips moves for which fn returns false.
func WithFilter(fn func(curr, next *knot.Record) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.Filter = fn
		}
	}
}

// WithOnVisit registers a visit callback.
func WithOnVisit(fn func(r *knot.Record, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a walk. Records are identified by angle key.
//   - Order: records in visit sequence, start first.
//   - Depth: moves from the start, per key.
//   - Parent: predecessor key in the BFS tree.
//   - Known: ordinals of the dataset records reached.
type Result struct {
	Order  []*knot.Record
	Depth  map[string]int
	Parent map[string]string
	Known  *roaring.Bitmap

	byKey map[string]*knot.Record
}

// Placeholders counts the off-dataset records in Order.
func (r *Result) Placeholders() int {
	n := 0
	for _, rec := range r.Order {
		if rec.IsPlaceholder() {
			n++
		}
	}
	return n
}

// Reached reports whether a record with target's angles was visited.
func (r *Result) Reached(target *knot.Record) bool {
	_, ok := r.Depth[target.Key()]
	return ok
}

// PathTo reconstructs the move sequence from the start to target.
func (r *Result) PathTo(target *knot.Record) ([]*knot.Record, error) {
	key := target.Key()
	if _, ok := r.Depth[key]; !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrNotReached, key)
	}
	var path []*knot.Record
	for cur := key; ; {
		path = append(path, r.byKey[cur])
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
