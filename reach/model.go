// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

// Model is the contract the checker consumes. S is a model's state type
// (see State) and A is its action type, which must be comparable so that
// path replay (PathFromActions) and discovery re-verification
// (Checker.AssertDiscovery) can compare actions with ==.
type Model[S State, A comparable] interface {
	// InitStates returns the model's initial states. In practice this is
	// non-empty; an empty result means the state graph is empty.
	InitStates() []S

	// Actions appends the actions enabled in state to out and returns the
	// extended slice. Actions may yield duplicates; the checker tolerates
	// them. Passing a nil out and using the returned slice is idiomatic.
	Actions(state S, out []A) []A

	// NextState returns the deterministic successor of state under
	// action. A false second result means the action is disabled for
	// this state, and the checker drops it silently — see the
	// "action returns no successor" note in DESIGN.md.
	NextState(state S, action A) (S, bool)

	// Properties returns the model's properties. Names must be unique.
	Properties() []Property[S]
}

// Bounded is an optional capability a Model may implement to supply a
// soft cut-off: states outside the boundary are recorded (so they count
// toward GeneratedCount) but are not expanded further. A Model that does
// not implement Bounded is treated as unbounded (WithinBoundary always
// true).
type Bounded[S State] interface {
	WithinBoundary(state S) bool
}

func withinBoundary[S State, A comparable](model Model[S, A], state S) bool {
	if b, ok := model.(Bounded[S]); ok {
		return b.WithinBoundary(state)
	}
	return true
}
