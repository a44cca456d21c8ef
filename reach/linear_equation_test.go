// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// linEqState is (x, y): a candidate non-negative integer solution to
// a*x + b*y == c.
type linEqState struct {
	x, y uint8
}

func (s linEqState) MarshalBinary() ([]byte, error) {
	return []byte{s.x, s.y}, nil
}

type linEqAction int

const (
	increaseX linEqAction = iota
	increaseY
)

func (a linEqAction) String() string {
	if a == increaseX {
		return "IncreaseX"
	}
	return "IncreaseY"
}

// linearEquation models the search for a non-negative integer solution to
// a*x + b*y == c by incrementing x or y one step at a time, bounded so
// neither term alone can exceed c.
type linearEquation struct {
	a, b, c int
}

func (m linearEquation) InitStates() []linEqState {
	return []linEqState{{0, 0}}
}

func (m linearEquation) Actions(state linEqState, out []linEqAction) []linEqAction {
	return append(out[:0], increaseX, increaseY)
}

func (m linearEquation) NextState(state linEqState, action linEqAction) (linEqState, bool) {
	switch action {
	case increaseX:
		return linEqState{state.x + 1, state.y}, true
	case increaseY:
		return linEqState{state.x, state.y + 1}, true
	}
	return linEqState{}, false
}

func (m linearEquation) WithinBoundary(state linEqState) bool {
	return m.a*int(state.x) <= m.c && m.b*int(state.y) <= m.c
}

func (m linearEquation) Properties() []Property[linEqState] {
	return []Property[linEqState]{
		Sometimes("solvable", func(s linEqState) bool {
			return m.a*int(s.x)+m.b*int(s.y) == m.c
		}),
	}
}

// Reproduced exactly from original_source/src/checker.rs's test_path
// module: a hand-verifiable fingerprint replay, independent of search
// order or generated-state counts.
func TestPathFromFingerprintsLinearEquation(t *testing.T) {
	model := linearEquation{a: 2, b: 10, c: 14}
	states := []linEqState{{0, 0}, {0, 1}, {1, 1}, {2, 1}}
	fingerprints := make([]Fingerprint, len(states))
	for i, s := range states {
		fingerprints[i] = ComputeFingerprint(s)
	}

	path := PathFromFingerprints[linEqState, linEqAction](model, fingerprints)
	if path.LastState() != (linEqState{2, 1}) {
		t.Errorf("LastState() = %+v, want {2 1}", path.LastState())
	}
}

func TestLinearEquationSolvableBFS(t *testing.T) {
	model := linearEquation{a: 2, b: 10, c: 14}
	checker := NewChecker[linEqState, linEqAction](model).SpawnBFS().Join()

	path := checker.AssertAnyDiscovery("solvable")
	last := path.LastState()
	if got := model.a*int(last.x) + model.b*int(last.y); got != model.c {
		t.Errorf("witness state %+v does not satisfy 2x+10y==14: got %d", last, got)
	}

	// Single-threaded BFS finds a shortest witness: no solution with
	// fewer than three actions exists for these coefficients (x=7,y=0
	// needs 7; x=2,y=1 needs 3; no shorter combination sums to 14).
	if path.Len() != 3 {
		t.Errorf("BFS witness length = %d, want 3 (not necessarily this exact path, but shortest)", path.Len())
	}
}

func TestLinearEquationSolvableDFS(t *testing.T) {
	model := linearEquation{a: 2, b: 10, c: 14}
	checker := NewChecker[linEqState, linEqAction](model).SpawnDFS().Join()
	checker.AssertAnyDiscovery("solvable")
}

// TestReportIncludesPropertyNamesAndPaths checks the report transcript's
// shape (not the exact timing or witness path, which vary with traversal
// order), matching the style of the original's own "starts_with"/
// "ends_with" assertions that intentionally omit timing.
func TestReportIncludesPropertyNamesAndPaths(t *testing.T) {
	model := linearEquation{a: 2, b: 10, c: 14}

	var buf bytes.Buffer
	NewChecker[linEqState, linEqAction](model).SpawnBFS().Report(&buf)
	output := buf.String()

	if !strings.HasPrefix(output, "Checking. generated=") {
		t.Errorf("output does not start with a checking status line: %q", output)
	}
	wantSubstr := fmt.Sprintf("Discovered %q example Path[", "solvable")
	if !strings.Contains(output, wantSubstr) {
		t.Errorf("output missing discovery summary line: %q", output)
	}
	if !strings.Contains(output, "- IncreaseX\n") && !strings.Contains(output, "- IncreaseY\n") {
		t.Errorf("output missing any action line: %q", output)
	}
}

func TestPathEncodeIsFingerprintsJoined(t *testing.T) {
	model := linearEquation{a: 2, b: 10, c: 14}
	init := model.InitStates()[0]
	path, ok := PathFromActions[linEqState, linEqAction](model, init, []linEqAction{increaseX, increaseY})
	if !ok {
		t.Fatal("PathFromActions: expected ok=true")
	}
	parts := strings.Split(path.Encode(), "/")
	if len(parts) != 3 {
		t.Fatalf("Encode() = %q, want 3 fingerprints joined by '/'", path.Encode())
	}
	for _, p := range parts {
		if _, err := strconv.ParseUint(p, 10, 64); err != nil {
			t.Errorf("Encode() part %q is not a decimal fingerprint: %v", p, err)
		}
	}
}
