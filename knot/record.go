package knot

import "slices"

// Key returns the angle key of r. See Key.
func (r *Record) Key() string { return Key(r.Angles) }

// Sum returns the plain (unreduced) sum of the angles.
func (r *Record) Sum() int {
	s := 0
	for _, a := range r.Angles {
		s += a
	}
	return s
}

// IsPlaceholder reports whether r was synthesized for an off-dataset configuration.
func (r *Record) IsPlaceholder() bool { return r.Kind == Unknown }

// Ordinal returns the insertion ordinal of r inside its Index.
// The second result is false for placeholders and for records never indexed.
func (r *Record) Ordinal() (uint32, bool) {
	if r.Kind != Known || r.Rank <= 0 {
		return 0, false
	}
	return r.ordinal, true
}

// Equivalent reports whether r and other have element-wise equal angles.
// No tolerance is applied.
func (r *Record) Equivalent(other *Record) bool {
	if other == nil {
		return false
	}
	return slices.Equal(r.Angles, other.Angles)
}

// ContainedIn reports whether some element of set is Equivalent to r.
// Complexity: O(len(set)·len(Angles)).
func (r *Record) ContainedIn(set []*Record) bool {
	for _, cur := range set {
		if r.Equivalent(cur) {
			return true
		}
	}
	return false
}

// IsAdjacentTo reports whether other matches one of the neighbors cached by
// the last Index.Neighbors call on r. Before that call it always returns false.
func (r *Record) IsAdjacentTo(other *Record) bool {
	if other == nil {
		return false
	}
	for _, n := range r.neighbors {
		if slices.Equal(n.Angles, other.Angles) {
			return true
		}
	}
	return false
}

// Neighbors returns a copy of the cached neighbor list (nil until populated).
func (r *Record) Neighbors() []*Record {
	if r.neighbors == nil {
		return nil
	}
	return append([]*Record(nil), r.neighbors...)
}

// WithinOneMove is a cheap structural check: r and other differ, and every
// coordinate is unchanged or one step away in either rotational direction.
// It admits vectors the move rule cannot reach in one step, so it must not
// stand in for Index.Neighbors.
func (r *Record) WithinOneMove(other *Record, modulus int) bool {
	if other == nil || len(r.Angles) != len(other.Angles) {
		return false
	}
	if slices.Equal(r.Angles, other.Angles) {
		return false
	}
	for i := range r.Angles {
		diff := r.Angles[i] - other.Angles[i]
		if diff < 0 {
			diff = -diff
		}
		diff %= modulus
		if diff != 0 && diff != 1 && diff != modulus-1 {
			return false
		}
	}
	return true
}
