// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// CheckerBuilder configures a model check before it starts. Obtain one with
// NewChecker, then call SpawnBFS or SpawnDFS to start exploring.
type CheckerBuilder[S State, A comparable] struct {
	model           Model[S, A]
	threadCount     int
	targetGenerated int64
	hasher          Hasher
	visitor         func(S)
}

// NewChecker returns a CheckerBuilder for model, defaulting to a single
// thread, no generated-count target, and DefaultHasher.
func NewChecker[S State, A comparable](model Model[S, A]) *CheckerBuilder[S, A] {
	return &CheckerBuilder[S, A]{
		model:       model,
		threadCount: 1,
		hasher:      DefaultHasher,
	}
}

// Threads sets the number of worker goroutines the checker spawns. For
// maximum throughput this should match the number of available cores.
func (b *CheckerBuilder[S, A]) Threads(n int) *CheckerBuilder[S, A] {
	b.threadCount = n
	return b
}

// TargetGeneratedCount sets a soft cutoff on the number of states the
// checker aims to generate. For performance reasons the checker may exceed
// this number, but it never generates fewer states if more are reachable.
func (b *CheckerBuilder[S, A]) TargetGeneratedCount(n int64) *CheckerBuilder[S, A] {
	b.targetGenerated = n
	return b
}

// Hasher overrides the Hasher used to fingerprint states. The default is
// DefaultHasher (FNV-1a); Blake2bHasher trades speed for a much lower
// collision rate on adversarial state encodings.
func (b *CheckerBuilder[S, A]) Hasher(h Hasher) *CheckerBuilder[S, A] {
	b.hasher = h
	return b
}

// Visitor registers fn to run once for every newly-discovered state, in
// whichever goroutine first visits it. fn must be safe for concurrent use.
func (b *CheckerBuilder[S, A]) Visitor(fn func(S)) *CheckerBuilder[S, A] {
	b.visitor = fn
	return b
}

func (b *CheckerBuilder[S, A]) shared() *engineShared[S, A] {
	properties := b.model.Properties()
	n := countEventually(properties)
	requireEventuallyCapacity(n)
	hasher := b.hasher
	if hasher == nil {
		hasher = DefaultHasher
	}
	return &engineShared[S, A]{
		model:       b.model,
		properties:  properties,
		eventuallyN: n,
		visited:     newVisitedSet(),
		discoveries: newDiscoveryStore(),
		target:      b.targetGenerated,
		visitor:     b.visitor,
		hasher:      hasher,
	}
}

// SpawnBFS starts a breadth-first search. This traversal uses more memory
// than SpawnDFS but, run single-threaded, finds the shortest Path to each
// discovery. It does not block; call Checker.Join to wait for completion.
func (b *CheckerBuilder[S, A]) SpawnBFS() *Checker[S, A] {
	e := b.shared()
	threads := b.threadCount
	if threads < 1 {
		threads = 1
	}
	done := spawnBFS(e, threads)
	return &Checker[S, A]{shared: e, done: done, start: nowFunc()}
}

// SpawnDFS starts a depth-first search. This traversal uses dramatically
// less memory than SpawnBFS at the cost of not finding the shortest Path
// to each discovery. It does not block; call Checker.Join to wait for
// completion.
func (b *CheckerBuilder[S, A]) SpawnDFS() *Checker[S, A] {
	e := b.shared()
	threads := b.threadCount
	if threads < 1 {
		threads = 1
	}
	done := spawnDFS(e, threads)
	return &Checker[S, A]{shared: e, done: done, start: nowFunc()}
}

// nowFunc is a var so tests could stub it; production always uses
// time.Now.
var nowFunc = time.Now

// Checker is a running (or completed) model check. Obtain one from
// CheckerBuilder.SpawnBFS or CheckerBuilder.SpawnDFS.
type Checker[S State, A comparable] struct {
	shared *engineShared[S, A]
	done   <-chan struct{}
	start  time.Time
}

// Model returns the Model this checker is exploring.
func (c *Checker[S, A]) Model() Model[S, A] {
	return c.shared.model
}

// GeneratedCount reports how many distinct states have been generated so
// far.
func (c *Checker[S, A]) GeneratedCount() int64 {
	return c.shared.visited.generatedCount()
}

// IsDone reports whether every property already has a recorded discovery,
// or exploration has otherwise finished (every worker has exited).
func (c *Checker[S, A]) IsDone() bool {
	if c.shared.allDiscovered() {
		return true
	}
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Join blocks the calling goroutine until IsDone, then returns c for
// chaining.
func (c *Checker[S, A]) Join() *Checker[S, A] {
	<-c.done
	return c
}

// Discoveries materializes every recorded discovery as a Path, keyed by
// property name.
func (c *Checker[S, A]) Discoveries() map[string]Path[S, A] {
	snap := c.shared.discoveries.snapshot()
	out := make(map[string]Path[S, A], len(snap))
	for name, fps := range snap {
		out[name] = pathFromFingerprintsWith(c.shared.model, c.shared.hasher, fps)
	}
	return out
}

// Discovery looks up a single discovery by property name, returning
// (path, false) if none has been recorded (yet). Panics if name does not
// name one of the model's properties.
func (c *Checker[S, A]) Discovery(name string) (Path[S, A], bool) {
	fps, ok := c.shared.discoveries.get(name)
	if !ok {
		for _, p := range c.shared.properties {
			if p.Name == name {
				return Path[S, A]{}, false
			}
		}
		panic(fmt.Sprintf("reach: %q does not name a property of this model", name))
	}
	return pathFromFingerprintsWith(c.shared.model, c.shared.hasher, fps), true
}

// DiscoveryClassification reports whether a discovery for name, if found,
// would be an "example" (Sometimes) or a "counterexample" (Always,
// Eventually). Panics if name does not name one of the model's properties.
func (c *Checker[S, A]) DiscoveryClassification(name string) string {
	for _, p := range c.shared.properties {
		if p.Name == name {
			return p.discoveryClassification()
		}
	}
	panic(fmt.Sprintf("reach: %q does not name a property of this model", name))
}

// Report writes a periodic "Checking. generated=N" status line to w once a
// second until IsDone, then a final summary line followed, for each
// recorded discovery, by a "Discovered" header line and one line per
// action of its path. It blocks like Join and returns c for chaining.
func (c *Checker[S, A]) Report(w io.Writer) *Checker[S, A] {
	for !c.IsDone() {
		fmt.Fprintf(w, "Checking. generated=%d\n", c.GeneratedCount())
		time.Sleep(time.Second)
	}
	fmt.Fprintf(w, "Done. generated=%d, sec=%d\n", c.GeneratedCount(), int64(time.Since(c.start).Seconds()))

	for name, path := range c.Discoveries() {
		fmt.Fprintf(w, "Discovered %q %s %s", name, c.DiscoveryClassification(name), path)
	}
	return c
}

// AssertProperties panics unless every Sometimes property has a recorded
// example and neither Always nor Eventually property has a recorded
// counterexample. Intended for use in tests.
func (c *Checker[S, A]) AssertProperties() {
	for _, p := range c.shared.properties {
		switch p.Expectation {
		case ExpectAlways, ExpectEventually:
			c.AssertNoDiscovery(p.Name)
		case ExpectSometimes:
			c.AssertAnyDiscovery(p.Name)
		}
	}
}

// AssertAnyDiscovery panics if name has no recorded discovery, whether or
// not checking has finished (the panic message says which), otherwise
// returning the discovery's Path.
func (c *Checker[S, A]) AssertAnyDiscovery(name string) Path[S, A] {
	if p, ok := c.Discovery(name); ok {
		return p
	}
	if !c.IsDone() {
		panic(fmt.Sprintf("reach: discovery for %q not found, but model checking is incomplete", name))
	}
	panic(fmt.Sprintf("reach: discovery for %q not found", name))
}

// AssertNoDiscovery panics if name has a recorded discovery, and also
// panics if there is none yet but checking has not finished.
func (c *Checker[S, A]) AssertNoDiscovery(name string) {
	if p, ok := c.Discovery(name); ok {
		panic(fmt.Sprintf("reach: unexpected %q %s %sLast state: %v\n",
			name, c.DiscoveryClassification(name), p, p.LastState()))
	}
	if !c.IsDone() {
		panic(fmt.Sprintf("reach: discovery for %q not found, but model checking is incomplete", name))
	}
}

// AssertDiscovery panics unless a discovery has been recorded for the
// property named name and replaying actions from some initial state
// reaches a state that would itself constitute a discovery for that
// property. The replayed path is not compared with the recorded one.
func (c *Checker[S, A]) AssertDiscovery(name string, actions []A) {
	found := c.AssertAnyDiscovery(name)

	var property Property[S]
	for _, p := range c.shared.properties {
		if p.Name == name {
			property = p
			break
		}
	}

	var additionalInfo []string
	for _, init := range c.shared.model.InitStates() {
		path, ok := PathFromActions(c.shared.model, init, actions)
		if !ok {
			continue
		}

		switch property.Expectation {
		case ExpectAlways:
			if !property.Condition(path.LastState()) {
				return
			}
		case ExpectSometimes:
			if property.Condition(path.LastState()) {
				return
			}
		case ExpectEventually:
			states := path.IntoStates()
			liveSatisfied := false
			for _, s := range states {
				if property.Condition(s) {
					liveSatisfied = true
					break
				}
			}
			var acts []A
			acts = c.shared.model.Actions(path.LastState(), acts)
			pathTerminal := len(acts) == 0

			if !liveSatisfied && pathTerminal {
				return
			}
			if liveSatisfied {
				additionalInfo = append(additionalInfo, "incorrect counterexample satisfies eventually property")
			}
			if !pathTerminal {
				additionalInfo = append(additionalInfo, "incorrect counterexample is nonterminal")
			}
		}
	}

	suffix := ""
	if len(additionalInfo) > 0 {
		suffix = " (" + strings.Join(additionalInfo, "; ") + ")"
	}
	panic(fmt.Sprintf("reach: invalid discovery for %q%s, but a valid one was found. found=%v",
		name, suffix, found.IntoActions()))
}
