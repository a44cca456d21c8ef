// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import (
	"encoding"
	"encoding/binary"
	"hash/fnv"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/xerrors"
)

// Fingerprint is a 64-bit compressed identity for a State. Two states that
// fingerprint equal are treated by the checker as the same state;
// collisions are accepted as the cost of compression.
//
// Fingerprint is never zero: zero is reserved by the visited set to mean
// "no parent" (an initial state).
type Fingerprint uint64

// State is the constraint every model's state type must satisfy: a
// deterministic byte encoding the checker can hash. Models should use
// immutable value types (plain structs/arrays, no embedded pointers to
// shared mutable data) so that passing a State by value — which the
// checker relies on throughout for path replay — behaves like a clone.
type State interface {
	encoding.BinaryMarshaler
}

// Hasher computes a 64-bit digest of an encoded state. Sum64 must be a
// pure function of data.
type Hasher interface {
	Sum64(data []byte) uint64
}

type fnvHasher struct{}

func (fnvHasher) Sum64(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data) // hash.Hash.Write never returns an error.
	return h.Sum64()
}

type blake2bHasher struct{}

func (blake2bHasher) Sum64(data []byte) uint64 {
	sum := blake2b.Sum256(data)
	return binary.LittleEndian.Uint64(sum[:8])
}

// DefaultHasher is the FNV-1a hasher used when a CheckerBuilder is not
// given an explicit Hasher. It is fast and collisions are expected and
// tolerated, exactly as spec'd for Fingerprint.
var DefaultHasher Hasher = fnvHasher{}

// Blake2bHasher trades fingerprinting speed for a cryptographic-strength
// digest, keeping the first 8 bytes of a BLAKE2b-256 sum. Collisions are
// hard to construct deliberately, but the fingerprint is still 64 bits
// wide, so accidental collisions remain possible.
var Blake2bHasher Hasher = blake2bHasher{}

// ComputeFingerprint hashes s with DefaultHasher.
func ComputeFingerprint[S State](s S) Fingerprint {
	return FingerprintWith(DefaultHasher, s)
}

// FingerprintWith hashes s with the given Hasher. Panics if s's
// MarshalBinary returns an error — a state that cannot encode itself is a
// programmer error, not an expected-absence condition.
func FingerprintWith[S State](h Hasher, s S) Fingerprint {
	b, err := s.MarshalBinary()
	if err != nil {
		panic(xerrors.Errorf("reach: state failed to marshal for fingerprinting: %w", err))
	}
	sum := h.Sum64(b)
	if sum == 0 {
		// Preserve the non-zero invariant; collisions into zero are
		// exceedingly rare but must still map to a valid fingerprint.
		sum = 1
	}
	return Fingerprint(sum)
}
