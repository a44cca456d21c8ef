// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

// engineShared holds the state both the BFS and DFS engines mutate:
// the visited set, discovery store, property list and the Eventually
// property index, plus the soft generated-count cutoff and optional
// visitor hook. The property-evaluation and terminal-check helpers that
// both traversal strategies call also live in this file; the successor
// loop itself is written out in each of bfs.go and dfs.go.
type engineShared[S State, A comparable] struct {
	model       Model[S, A]
	properties  []Property[S]
	eventuallyN int // number of Eventually properties
	visited     *visitedSet
	discoveries *discoveryStore
	target      int64 // 0 means unlimited
	visitor     func(S)
	hasher      Hasher
}

func (e *engineShared[S, A]) fingerprint(s S) Fingerprint {
	return FingerprintWith(e.hasher, s)
}

// targetReached reports whether the soft generated-count cutoff has been
// hit, in which case workers should stop expanding (but let the
// frontier/stack drain quietly).
func (e *engineShared[S, A]) targetReached() bool {
	return e.target > 0 && e.visited.generatedCount() >= e.target
}

// allDiscovered reports whether every property already has a recorded
// discovery, letting the checker short-circuit.
func (e *engineShared[S, A]) allDiscovered() bool {
	return e.discoveries.count() >= len(e.properties)
}

// evaluateEventually clears any bit in ebits whose Eventually predicate
// holds at state, numbering each Eventually property by its 0-based
// index among Eventually properties only.
func evaluateEventually[S State](ebits eventuallyBits, state S, properties []Property[S]) eventuallyBits {
	idx := 0
	for _, p := range properties {
		if p.Expectation != ExpectEventually {
			continue
		}
		if ebits.isSet(idx) && p.Condition(state) {
			ebits = ebits.clear(idx)
		}
		idx++
	}
	return ebits
}

// evaluateAlwaysSometimes evaluates every Always/Sometimes property
// against state and fires a discovery for any that is violated
// (Always) or satisfied (Sometimes), using pathFp as the fingerprint
// path ending at state. A property that already has a recorded
// discovery is skipped (first-discovery-wins).
func evaluateAlwaysSometimes[S State, A comparable](e *engineShared[S, A], state S, pathFp []Fingerprint) {
	for _, p := range e.properties {
		switch p.Expectation {
		case ExpectAlways:
			if e.discoveries.has(p.Name) {
				continue
			}
			if !p.Condition(state) {
				e.discoveries.recordOnce(p.Name, pathFp)
			}
		case ExpectSometimes:
			if e.discoveries.has(p.Name) {
				continue
			}
			if p.Condition(state) {
				e.discoveries.recordOnce(p.Name, pathFp)
			}
		}
	}
}

// applyTerminal applies EventuallyBits rule 3: if state is
// terminal on its path (no enabled actions, or out of bounds — a revisit
// into an already-visited fingerprint is deliberately NOT treated as
// terminal here, see bfs.go/dfs.go) and any bit remains set in ebits, the
// path is a counterexample for each such Eventually property.
func applyTerminal[S State, A comparable](e *engineShared[S, A], pathFp []Fingerprint, ebits eventuallyBits) {
	if !ebits.any() {
		return
	}
	eventuallyProps := make([]Property[S], 0, e.eventuallyN)
	for _, p := range e.properties {
		if p.Expectation == ExpectEventually {
			eventuallyProps = append(eventuallyProps, p)
		}
	}
	for _, idx := range ebits.setBits() {
		name := eventuallyProps[idx].Name
		if e.discoveries.has(name) {
			continue
		}
		e.discoveries.recordOnce(name, pathFp)
	}
}

// pathTo returns the fingerprint path from a root to fp, where parentFp is
// already committed to the visited set and fp is the (possibly not yet
// inserted) candidate fingerprint being evaluated.
func pathTo(vs *visitedSet, parentFp, fp Fingerprint) []Fingerprint {
	return append(vs.traceTo(parentFp), fp)
}

func countEventually[S State](properties []Property[S]) int {
	n := 0
	for _, p := range properties {
		if p.Expectation == ExpectEventually {
			n++
		}
	}
	return n
}
