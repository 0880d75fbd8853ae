package knot

import "fmt"

// Option configures Index construction.
type Option func(*Options)

// Options holds the construction parameters of an Index.
type Options struct {
	// ParityCheck rejects records whose declared parity is not the angle sum.
	ParityCheck bool

	// RangeCheck rejects records holding an angle outside [0, modulus).
	RangeCheck bool
}

// DefaultOptions trusts the declared parity and angle ranges, as the
// upstream dataset generator computes both.
func DefaultOptions() Options {
	return Options{
		ParityCheck: false,
		RangeCheck:  false,
	}
}

// WithParityCheck makes construction fail with ErrParityMismatch when a
// record's declared parity differs from sum(Angles) mod modulus.
func WithParityCheck() Option {
	return func(o *Options) { o.ParityCheck = true }
}

// WithRangeCheck makes construction fail when an angle lies outside [0, modulus).
func WithRangeCheck() Option {
	return func(o *Options) { o.RangeCheck = true }
}

// Index is a parity-bucketed collection of Records built from a dataset.
//
// buckets[p] keeps insertion order (the basis of Rank); byKey[p] maps the
// angle key to the same records for O(1) average lookup.
type Index struct {
	modulus int
	dim     int // angle vector length, -1 while empty
	opts    Options

	buckets [][]*Record
	byKey   []map[string]*Record
	size    int
}

// NewEmpty returns an Index with modulus empty buckets, ready for Insert.
// Returns ErrBadModulus if modulus < 2.
func NewEmpty(modulus int, opts ...Option) (*Index, error) {
	if modulus < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadModulus, modulus)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ix := &Index{
		modulus: modulus,
		dim:     -1,
		opts:    o,
		buckets: make([][]*Record, modulus),
		byKey:   make([]map[string]*Record, modulus),
	}
	for p := range ix.byKey {
		ix.byKey[p] = make(map[string]*Record)
	}
	return ix, nil
}

// New groups records into modulus parity buckets and assigns each record
// its 1-based Rank within the bucket in input order.
//
// The Index stores its own copies; the input records are left untouched.
// Every record is validated before any is stored, so a failure never leaves
// a partially built Index. Errors wrap ErrMalformedDataset (parity outside
// [0, modulus), inconsistent angle length, duplicate vector in a bucket,
// and the optional checks) or are ErrBadModulus.
//
// Complexity: O(N·D) for N records of D angles.
func New(records []*Record, modulus int, opts ...Option) (*Index, error) {
	ix, err := NewEmpty(modulus, opts...)
	if err != nil {
		return nil, err
	}
	if err = ix.validate(records); err != nil {
		return nil, err
	}
	for _, r := range records {
		ix.add(r)
	}
	return ix, nil
}

// Insert validates r against the current contents and appends a copy to
// its bucket. It returns the stored record.
func (ix *Index) Insert(r *Record) (*Record, error) {
	if err := ix.validate([]*Record{r}); err != nil {
		return nil, err
	}
	return ix.add(r), nil
}

// validate checks a batch against the index and against itself.
func (ix *Index) validate(records []*Record) error {
	dim := ix.dim
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r == nil {
			return fmt.Errorf("%w: record %d is nil", ErrMalformedDataset, i)
		}
		if r.Parity < 0 || r.Parity >= ix.modulus {
			return fmt.Errorf("%w: record %d has parity %d outside [0, %d)",
				ErrMalformedDataset, i, r.Parity, ix.modulus)
		}
		if dim < 0 {
			dim = len(r.Angles)
		} else if len(r.Angles) != dim {
			return fmt.Errorf("%w: record %d has %d angles, want %d",
				ErrMalformedDataset, i, len(r.Angles), dim)
		}
		if ix.opts.RangeCheck {
			for j, a := range r.Angles {
				if a < 0 || a >= ix.modulus {
					return fmt.Errorf("%w: record %d angle %d = %d outside [0, %d)",
						ErrMalformedDataset, i, j, a, ix.modulus)
				}
			}
		}
		if ix.opts.ParityCheck {
			if got := ParityOf(r.Angles, ix.modulus); got != r.Parity {
				return fmt.Errorf("%w: %w: record %d declares %d, angles sum to %d",
					ErrMalformedDataset, ErrParityMismatch, i, r.Parity, got)
			}
		}
		key := r.Key()
		bucketKey := fmt.Sprintf("%d|%s", r.Parity, key)
		if _, dup := ix.byKey[r.Parity][key]; dup {
			return fmt.Errorf("%w: record %d duplicates angles [%s] in bucket %d",
				ErrMalformedDataset, i, key, r.Parity)
		}
		if _, dup := seen[bucketKey]; dup {
			return fmt.Errorf("%w: record %d duplicates angles [%s] in bucket %d",
				ErrMalformedDataset, i, key, r.Parity)
		}
		seen[bucketKey] = struct{}{}
	}
	return nil
}

// add stores a copy of r; r must already be validated.
func (ix *Index) add(r *Record) *Record {
	bucket := ix.buckets[r.Parity]
	stored := &Record{
		Angles:  append([]int(nil), r.Angles...),
		Cost:    r.Cost,
		Parity:  r.Parity,
		Rank:    len(bucket) + 1,
		Kind:    Known,
		ordinal: uint32(ix.size),
	}
	ix.buckets[r.Parity] = append(bucket, stored)
	ix.byKey[r.Parity][stored.Key()] = stored
	if ix.dim < 0 {
		ix.dim = len(stored.Angles)
	}
	ix.size++
	return stored
}

// Modulus returns the angle domain size, which is also the bucket count.
func (ix *Index) Modulus() int { return ix.modulus }

// Len returns the number of stored records.
func (ix *Index) Len() int { return ix.size }

// Dimension returns the angle vector length, or -1 for an empty Index.
func (ix *Index) Dimension() int { return ix.dim }

// Bucket returns the records of parity p in insertion order.
// The slice is a copy; the records are shared. Out-of-range p yields nil.
func (ix *Index) Bucket(p int) []*Record {
	if p < 0 || p >= ix.modulus {
		return nil
	}
	return append([]*Record(nil), ix.buckets[p]...)
}

// Records returns every record: bucket 0..modulus-1, insertion order within
// each bucket.
func (ix *Index) Records() []*Record {
	out := make([]*Record, 0, ix.size)
	for _, b := range ix.buckets {
		out = append(out, b...)
	}
	return out
}

// Lookup finds the record whose angles equal angles exactly, deriving the
// bucket from sum(angles) mod modulus. A miss is (nil, false), not an error.
func (ix *Index) Lookup(angles []int) (*Record, bool) {
	return ix.LookupWithParity(angles, ParityOf(angles, ix.modulus))
}

// LookupWithParity is Lookup with a caller-supplied bucket. The hint is
// trusted: a vector stored under another parity is not found. A hint outside
// [0, modulus) is a miss.
func (ix *Index) LookupWithParity(angles []int, parity int) (*Record, bool) {
	if parity < 0 || parity >= ix.modulus {
		return nil, false
	}
	r, ok := ix.byKey[parity][Key(angles)]
	return r, ok
}
