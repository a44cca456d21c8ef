// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import "golang.org/x/sync/errgroup"

// spawnBFS seeds e's visited set with model's initial states, starts
// workers goroutines draining a shared FIFO frontier, and returns a
// channel that closes once every worker has exited.
//
// BFS guarantees: with a single worker, recovered paths are of minimum
// length; with multiple workers, paths are only approximately shortest —
// there is no ordering guarantee between equal-depth frontiers expanded
// by different goroutines.
func spawnBFS[S State, A comparable](e *engineShared[S, A], workers int) (done <-chan struct{}) {
	f := newFrontier[S](workers)

	for _, s := range e.model.InitStates() {
		fp := e.fingerprint(s)
		if !e.visited.insertIfAbsent(fp, 0) {
			continue
		}
		if e.visitor != nil {
			e.visitor(s)
		}
		ebits := evaluateEventually(newEventuallyBits(e.eventuallyN), s, e.properties)
		evaluateAlwaysSometimes(e, s, []Fingerprint{fp})
		f.push(bfsWorkItem[S]{state: s, fp: fp, ebits: ebits})
	}

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			bfsWorker(e, f)
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

func bfsWorker[S State, A comparable](e *engineShared[S, A], f *frontier[S]) {
	var actionsBuf []A
	for {
		if e.allDiscovered() {
			f.stop()
			return
		}
		item, ok := f.pop()
		if !ok {
			return
		}
		if e.targetReached() {
			// Drain quietly: stop expanding, let the frontier empty
			// out via the remaining workers' idle handshake.
			continue
		}

		actionsBuf = e.model.Actions(item.state, actionsBuf[:0])
		if len(actionsBuf) == 0 {
			applyTerminal(e, e.visited.traceTo(item.fp), item.ebits)
			continue
		}

		for _, a := range actionsBuf {
			succ, ok := e.model.NextState(item.state, a)
			if !ok {
				continue
			}
			childFp := e.fingerprint(succ)
			childEbits := evaluateEventually(item.ebits, succ, e.properties)
			path := pathTo(e.visited, item.fp, childFp)
			evaluateAlwaysSometimes(e, succ, path)

			if e.visited.insertIfAbsent(childFp, item.fp) {
				if e.visitor != nil {
					e.visitor(succ)
				}
				if withinBoundary(e.model, succ) {
					f.push(bfsWorkItem[S]{state: succ, fp: childFp, ebits: childEbits})
				} else {
					applyTerminal(e, path, childEbits)
				}
			}
			// Else: already visited via some other path. The
			// duplicate edge is dropped without a terminal check —
			// this is the source of the EventuallyBits revisit
			// limitation documented on eventuallyBits: a cycle
			// re-entering an already-visited state can carry
			// unsatisfied bits that are never examined again.
		}
	}
}
