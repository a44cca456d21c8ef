// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// Path is a sequence state --action--> state ... --action--> state,
// terminated by a stateless tail: [(s0,a0), (s1,a1), ..., (sn, nil)].
type Path[S State, A comparable] struct {
	states  []S
	actions []*A // len(actions) == len(states); last entry is nil
}

// Len returns the number of transitions in the path (one less than the
// number of states).
func (p Path[S, A]) Len() int {
	if len(p.states) == 0 {
		return 0
	}
	return len(p.states) - 1
}

// LastState returns the path's final state.
func (p Path[S, A]) LastState() S {
	return p.states[len(p.states)-1]
}

// IntoStates returns the path's states, in order.
func (p Path[S, A]) IntoStates() []S {
	out := make([]S, len(p.states))
	copy(out, p.states)
	return out
}

// IntoActions returns the path's actions, in order (one fewer than the
// number of states).
func (p Path[S, A]) IntoActions() []A {
	out := make([]A, 0, len(p.actions))
	for _, a := range p.actions {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// Encode renders the path as its fingerprints, decimal, joined by '/' —
// the form the (out-of-scope) exploration UI uses in its URLs.
func (p Path[S, A]) Encode() string {
	parts := make([]string, len(p.states))
	for i, s := range p.states {
		parts[i] = strconv.FormatUint(uint64(ComputeFingerprint(s)), 10)
	}
	return strings.Join(parts, "/")
}

// String renders the path the way Checker.Report does: "Path[k]:" followed
// by one "- <action>" line per transition.
func (p Path[S, A]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path[%d]:\n", p.Len())
	for _, a := range p.actions {
		if a != nil {
			fmt.Fprintf(&b, "- %v\n", *a)
		}
	}
	return b.String()
}

// PathFromFingerprints reconstructs a Path by replaying the model: the
// first fingerprint must match an initial state, and each subsequent
// fingerprint must match some (action, successor) pair reachable from the
// current state. Panics (programmer error) if fingerprints is empty or
// cannot be replayed against model.
//
// Fingerprints are matched using DefaultHasher. Fingerprints produced by a
// Checker configured with CheckerBuilder.Hasher must be replayed through
// that Checker's own Discoveries/Discovery, which know which Hasher to
// use, rather than through this function directly.
func PathFromFingerprints[S State, A comparable](model Model[S, A], fingerprints []Fingerprint) Path[S, A] {
	return pathFromFingerprintsWith(model, DefaultHasher, fingerprints)
}

func pathFromFingerprintsWith[S State, A comparable](model Model[S, A], hasher Hasher, fingerprints []Fingerprint) Path[S, A] {
	if len(fingerprints) == 0 {
		panic("reach: PathFromFingerprints called with an empty fingerprint sequence")
	}

	var cur S
	found := false
	for _, s := range model.InitStates() {
		if FingerprintWith(hasher, s) == fingerprints[0] {
			cur = s
			found = true
			break
		}
	}
	if !found {
		panic(xerrors.Errorf("reach: no initial state matches fingerprint %d", fingerprints[0]))
	}

	states := make([]S, 0, len(fingerprints))
	actions := make([]*A, 0, len(fingerprints))

	for _, targetFp := range fingerprints[1:] {
		var acts []A
		acts = model.Actions(cur, acts)

		matched := false
		var nextState S
		var nextAction A
		for _, a := range acts {
			s2, ok := model.NextState(cur, a)
			if !ok {
				continue
			}
			if FingerprintWith(hasher, s2) == targetFp {
				nextState, nextAction = s2, a
				matched = true
				break
			}
		}
		if !matched {
			panic(xerrors.Errorf("reach: fingerprint %d does not match any transition from the current state", targetFp))
		}

		states = append(states, cur)
		aCopy := nextAction
		actions = append(actions, &aCopy)
		cur = nextState
	}
	states = append(states, cur)
	actions = append(actions, nil)

	return Path[S, A]{states: states, actions: actions}
}

// PathFromActions replays actions starting from init, returning (path,
// true) if init is one of model's initial states and every action is
// enabled in turn, or (zero, false) otherwise — an expected-absence
// result, not a panic, since an arbitrary caller-supplied action sequence
// may simply not be a valid path.
func PathFromActions[S State, A comparable](model Model[S, A], init S, actions []A) (Path[S, A], bool) {
	initFp := ComputeFingerprint(init)
	found := false
	for _, s := range model.InitStates() {
		if ComputeFingerprint(s) == initFp {
			found = true
			break
		}
	}
	if !found {
		return Path[S, A]{}, false
	}

	states := make([]S, 0, len(actions)+1)
	outActions := make([]*A, 0, len(actions)+1)
	cur := init
	for _, action := range actions {
		var acts []A
		acts = model.Actions(cur, acts)
		enabled := false
		for _, a := range acts {
			if a == action {
				enabled = true
				break
			}
		}
		if !enabled {
			return Path[S, A]{}, false
		}
		next, ok := model.NextState(cur, action)
		if !ok {
			return Path[S, A]{}, false
		}
		states = append(states, cur)
		aCopy := action
		outActions = append(outActions, &aCopy)
		cur = next
	}
	states = append(states, cur)
	outActions = append(outActions, nil)

	return Path[S, A]{states: states, actions: outActions}, true
}
