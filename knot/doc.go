// Package knot is the move-graph engine: it indexes knots by their parity
// invariant and enumerates the configurations one elementary move away.
//
// What:
//
//   - Record holds one knot's discretized angle vector, its cost, parity and
//     rank, and a cache of its neighbors.
//   - Index buckets Records by parity (sum of angles mod modulus) and answers
//     exact lookups by angle vector.
//   - Index.Neighbors applies the move "shift coordinate i by ±1 and its cyclic
//     successor by ∓1" to every coordinate and ties the results back to the
//     dataset, synthesizing Unknown placeholders for configurations it lacks.
//
// Moves conserve the angle sum, so every neighbor lives in the bucket of the
// record it came from and a lookup never has to recompute parity.
//
// Complexity:
//
//   - New:       O(N·D), Memory: O(N·D) for N records of D angles.
//   - Lookup:    O(D) average (hash of the angle vector).
//   - Neighbors: O(D²), always 2·D results.
//
// Errors:
//
//   - ErrMalformedDataset: parity out of range, inconsistent length, duplicate vector.
//   - ErrParityMismatch: declared parity differs from the angle sum (WithParityCheck).
//   - ErrBadModulus: modulus < 2.
//   - ErrDimensionMismatch, ErrParityDiffers: ChainDistance on incomparable knots.
//
// A miss is never an error: Lookup returns (nil, false).
//
// Concurrency: an Index is read-only after construction, but Neighbors writes
// the neighbor cache of the record it is given. Do not call Neighbors on the
// same record from several goroutines.
package knot
