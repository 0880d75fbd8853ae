// Package explore walks the knot move graph breadth-first from a start
// record, returning move distances, parent links and visit order.
//
// Neighbors come from knot.Index.Neighbors, so every visited record gets its
// neighbor cache populated as a side effect. The walk is single-threaded.
package explore

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/knotgraph/knot"
)

// queueItem pairs a record with its depth.
type queueItem struct {
	rec   *knot.Record
	depth int
}

// walker encapsulates mutable walk state.
type walker struct {
	index *knot.Index
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// Walk runs breadth-first search over the move graph of ix starting at
// start. Returns ErrNilIndex, ErrNilStart, ErrOptionViolation or
// ErrUnbounded for invalid input, the context error on cancellation, or
// any OnVisit error.
func Walk(ix *knot.Index, start *knot.Record, opts ...Option) (*Result, error) {
	if ix == nil {
		return nil, ErrNilIndex
	}
	if start == nil {
		return nil, ErrNilStart
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.MaxDepth == 0 && !o.KnownOnly {
		return nil, ErrUnbounded
	}

	w := &walker{
		index: ix,
		opts:  o,
		ctx:   o.Ctx,
		res: &Result{
			Depth:  make(map[string]int),
			Parent: make(map[string]string),
			Known:  roaring.New(),
			byKey:  make(map[string]*knot.Record),
		},
	}
	w.enqueue(start, 0, "")
	return w.res, w.loop()
}

// enqueue records depth and parent of r and appends it to the queue.
func (w *walker) enqueue(r *knot.Record, d int, parent string) {
	key := r.Key()
	w.res.Depth[key] = d
	w.res.byKey[key] = r
	if parent != "" {
		w.res.Parent[key] = parent
	}
	if id, ok := r.Ordinal(); ok {
		w.res.Known.Add(id)
	}
	w.queue = append(w.queue, queueItem{rec: r, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.rec)
		if err := w.opts.OnVisit(item.rec, item.depth); err != nil {
			return fmt.Errorf("explore: OnVisit error at [%s]: %w", item.rec.Key(), err)
		}
		w.expand(item)
	}
	return nil
}

// expand enqueues the unseen neighbors of item that pass the filters.
func (w *walker) expand(item queueItem) {
	if w.opts.KnownOnly && item.rec.IsPlaceholder() {
		return
	}
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	parent := item.rec.Key()
	for _, nbr := range w.index.Neighbors(item.rec) {
		if !w.opts.Filter(item.rec, nbr) {
			continue
		}
		if _, seen := w.res.Depth[nbr.Key()]; seen {
			continue
		}
		w.enqueue(nbr, next, parent)
	}
}
