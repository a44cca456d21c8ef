// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reach is an explicit-state model checker. Given a model — a set
// of initial states, a function enumerating the actions available in a
// state, and a deterministic successor function — it performs exhaustive
// reachability exploration while tracking a set of temporal properties.
//
// For each property the checker either exhausts the reachable state space
// without producing a witness (the property holds over the explored
// portion) or emits a discovery: a concrete path that demonstrates the
// property (an example) or refutes it (a counterexample).
//
// A model implements Model. Properties are built with Always, Eventually,
// and Sometimes. A checker is built with NewChecker and started with
// CheckerBuilder.SpawnBFS or CheckerBuilder.SpawnDFS; neither call blocks,
// so use Checker.Join or Checker.Report to wait for completion.
package reach
