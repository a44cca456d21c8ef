// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import "golang.org/x/sync/errgroup"

// dfsFrame is one level of a dfsWorker's explicit stack: the state at
// this depth, its fingerprint and eventuallyBits, and where in its
// action list exploration has gotten to. Recursion is flattened into an
// explicit stack (rather than the Go call stack) so MaxDepth-style
// limits aren't tied to goroutine stack growth, following the
// iterative-exploration shape of go-weave/amb's path-indexed replay,
// adapted here to a pure functional model with no global recursion to
// replay.
type dfsFrame[S State, A comparable] struct {
	state    S
	fp       Fingerprint
	ebits    eventuallyBits
	actions  []A
	computed bool
	idx      int
}

// spawnDFS partitions model's initial states round-robin across workers
// workers, each of which explores its share to exhaustion (or until the
// shared target/discovery cutoffs fire) with a private stack and no work
// stealing.
func spawnDFS[S State, A comparable](e *engineShared[S, A], workers int) (done <-chan struct{}) {
	inits := e.model.InitStates()
	stacks := make([][]dfsFrame[S, A], workers)

	for i, s := range inits {
		w := i % workers
		fp := e.fingerprint(s)
		if !e.visited.insertIfAbsent(fp, 0) {
			continue
		}
		if e.visitor != nil {
			e.visitor(s)
		}
		ebits := evaluateEventually(newEventuallyBits(e.eventuallyN), s, e.properties)
		evaluateAlwaysSometimes(e, s, []Fingerprint{fp})
		stacks[w] = append(stacks[w], dfsFrame[S, A]{state: s, fp: fp, ebits: ebits})
	}

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		stack := stacks[i]
		g.Go(func() error {
			dfsWorker(e, stack)
			return nil
		})
	}

	doneCh := make(chan struct{})
	go func() {
		g.Wait()
		close(doneCh)
	}()
	return doneCh
}

func dfsWorker[S State, A comparable](e *engineShared[S, A], stack []dfsFrame[S, A]) {
	for len(stack) > 0 {
		if e.targetReached() || e.allDiscovered() {
			return
		}

		top := &stack[len(stack)-1]
		if !top.computed {
			top.actions = e.model.Actions(top.state, nil)
			top.computed = true
			if len(top.actions) == 0 {
				applyTerminal(e, e.visited.traceTo(top.fp), top.ebits)
				stack = stack[:len(stack)-1]
				continue
			}
		}
		if top.idx >= len(top.actions) {
			stack = stack[:len(stack)-1]
			continue
		}

		a := top.actions[top.idx]
		top.idx++

		succ, ok := e.model.NextState(top.state, a)
		if !ok {
			continue
		}

		childFp := e.fingerprint(succ)
		childEbits := evaluateEventually(top.ebits, succ, e.properties)
		path := pathTo(e.visited, top.fp, childFp)
		evaluateAlwaysSometimes(e, succ, path)

		if e.visited.insertIfAbsent(childFp, top.fp) {
			if e.visitor != nil {
				e.visitor(succ)
			}
			if withinBoundary(e.model, succ) {
				stack = append(stack, dfsFrame[S, A]{state: succ, fp: childFp, ebits: childEbits})
			} else {
				applyTerminal(e, path, childEbits)
			}
		}
		// Else: already visited via some other path; the duplicate
		// edge is dropped without a terminal check (see bfs.go).
	}
}
