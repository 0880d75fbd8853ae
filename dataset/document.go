package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/knotgraph/knot"
)

// Decode reads a JSON Document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &doc, nil
}

// FullAngles returns the full angle vector of e: its angles followed by the
// final angle rounded half-to-even.
func (e Entry) FullAngles() []int {
	out := make([]int, 0, len(e.Angles)+1)
	out = append(out, e.Angles...)
	return append(out, int(math.RoundToEven(e.FinalAngle)))
}

// Records converts every entry into a knot.Record, in document order.
// The declared parity is carried over unchanged.
func (d *Document) Records() []*knot.Record {
	out := make([]*knot.Record, 0, len(d.Knots))
	for _, e := range d.Knots {
		out = append(out, knot.NewRecord(e.FullAngles(), e.TotalCost, e.AngleParity))
	}
	return out
}

// Index builds a knot.Index with modulus NumAngles.
func (d *Document) Index(opts ...knot.Option) (*knot.Index, error) {
	return knot.New(d.Records(), d.NumAngles, opts...)
}
