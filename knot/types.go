package knot

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors for knot operations.
var (
	// ErrMalformedDataset indicates that the input records violate an index
	// invariant (parity out of range, inconsistent length, duplicate vector).
	ErrMalformedDataset = errors.New("knot: malformed dataset")

	// ErrParityMismatch indicates a record whose declared parity is not the
	// sum of its angles modulo the modulus. Errors carrying it also match
	// ErrMalformedDataset.
	ErrParityMismatch = errors.New("knot: declared parity does not match angle sum")

	// ErrBadModulus indicates a modulus below 2; modulus 1 makes every move a self-loop.
	ErrBadModulus = errors.New("knot: modulus must be at least 2")

	// ErrDimensionMismatch indicates angle vectors of different length.
	ErrDimensionMismatch = errors.New("knot: angle vectors differ in length")

	// ErrParityDiffers indicates two knots that no sequence of moves can connect.
	ErrParityDiffers = errors.New("knot: knots have different parity")
)

const (
	// SentinelCost is the cost carried by placeholder records.
	SentinelCost = 3.0

	// SentinelRank is the rank carried by placeholder records.
	SentinelRank = -1

	// DefaultModulus is the angle domain size of the reference datasets.
	DefaultModulus = 16
)

// Kind tags a Record as a dataset entry or as an off-dataset placeholder.
type Kind uint8

const (
	// Known records come from the dataset the Index was built from.
	Known Kind = iota
	// Unknown records are synthesized by Index.Neighbors for configurations
	// absent from the dataset. Their Cost and Rank are sentinels, not data.
	Unknown
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Unknown {
		return "unknown"
	}
	return "known"
}

// Record is one knot: its discretized angle vector plus precomputed cost,
// parity and rank.
//
// Angles, Cost, Parity and Rank are treated as immutable once the record is
// owned by an Index. The neighbor cache is the only mutable part; it is
// written by Index.Neighbors and is not safe for concurrent writers.
type Record struct {
	// Angles holds one value in [0, modulus) per coordinate.
	Angles []int

	// Cost is the non-negative total cost of the configuration.
	Cost float64

	// Parity is sum(Angles) mod modulus and selects the bucket.
	Parity int

	// Rank is the 1-based position inside the parity bucket, or SentinelRank.
	Rank int

	// Kind distinguishes dataset records from placeholders.
	Kind Kind

	ordinal   uint32    // insertion ordinal inside the owning Index (Known only)
	neighbors []*Record // populated by Index.Neighbors
}

// NewRecord returns a Known record with a private copy of angles.
// Rank is assigned when the record is added to an Index.
func NewRecord(angles []int, cost float64, parity int) *Record {
	return &Record{
		Angles: append([]int(nil), angles...),
		Cost:   cost,
		Parity: parity,
		Rank:   0,
		Kind:   Known,
	}
}

// newPlaceholder builds the Unknown record standing in for an off-dataset
// configuration. It takes ownership of angles.
func newPlaceholder(angles []int, parity int) *Record {
	return &Record{
		Angles: angles,
		Cost:   SentinelCost,
		Parity: parity,
		Rank:   SentinelRank,
		Kind:   Unknown,
	}
}

// Key renders an angle vector as a comma separated string, e.g. "1,15,0".
// Two vectors share a key iff they are element-wise equal.
func Key(angles []int) string {
	var sb strings.Builder
	sb.Grow(len(angles) * 3)
	for i, a := range angles {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(a))
	}
	return sb.String()
}

// Mod returns x mod m in [0, m) for m > 0.
func Mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// ParityOf returns sum(angles) mod modulus.
func ParityOf(angles []int, modulus int) int {
	s := 0
	for _, a := range angles {
		s += a
	}
	return Mod(s, modulus)
}
