// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import (
	"math/bits"

	"golang.org/x/xerrors"
)

// maxEventuallyProperties bounds the number of Eventually properties a
// single model may declare. eventuallyBits packs one bit per property
// into a uint64; models in practice declare a handful of liveness
// properties, not dozens.
const maxEventuallyProperties = 64

// eventuallyBits tracks, for the current path prefix, which Eventually
// properties have not yet been observed true. Bit i set means property i
// (0-indexed in the order Eventually properties appear in the model's
// Properties() list) has not yet been satisfied on this path.
//
// Known limitation (preserved intentionally): a duplicate edge into an
// already-visited fingerprint is dropped without examining its bits, so a
// cycle that re-enters a visited state without ever satisfying the
// predicate is never flagged as a counterexample. Catching that case
// would need cycle-aware (e.g. SCC-based) liveness checking, which this
// package doesn't attempt.
type eventuallyBits uint64

func newEventuallyBits(k int) eventuallyBits {
	if k == 0 {
		return 0
	}
	return eventuallyBits(uint64(1)<<uint(k) - 1)
}

func (b eventuallyBits) isSet(i int) bool {
	return b&(1<<uint(i)) != 0
}

func (b eventuallyBits) clear(i int) eventuallyBits {
	return b &^ (1 << uint(i))
}

func (b eventuallyBits) any() bool {
	return b != 0
}

// setBits returns the indexes of the properties still unsatisfied, for
// firing one discovery per outstanding Eventually property at a terminal
// path position.
func (b eventuallyBits) setBits() []int {
	var out []int
	for b != 0 {
		i := bits.TrailingZeros64(uint64(b))
		out = append(out, i)
		b &^= 1 << uint(i)
	}
	return out
}

func requireEventuallyCapacity(k int) {
	if k > maxEventuallyProperties {
		panic(xerrors.Errorf("reach: model declares %d Eventually properties, exceeding the %d-bit EventuallyBits limit", k, maxEventuallyProperties))
	}
}
