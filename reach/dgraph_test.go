// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import "strconv"

// dnode is a state in a dgraph: a bare integer, boxed only so it can
// satisfy State (fingerprinting needs a byte encoding).
type dnode int

func (n dnode) MarshalBinary() ([]byte, error) {
	return []byte(strconv.Itoa(int(n))), nil
}

// dgraph is a minimal Model built by listing explicit paths through an
// integer graph: each with, adds every edge along the path and, if the
// path's first node hasn't been seen before, a new initial state. It
// exists purely to let EventuallyBits and discovery tests specify an
// exact, hand-checkable reachable graph instead of deriving one from a
// richer domain model.
type dgraph struct {
	properties []Property[dnode]
	inits      []dnode
	seenInit   map[dnode]bool
	edges      map[dnode][]dnode
	seenEdge   map[[2]dnode]bool
}

func newDGraph(properties ...Property[dnode]) *dgraph {
	return &dgraph{
		properties: properties,
		seenInit:   map[dnode]bool{},
		edges:      map[dnode][]dnode{},
		seenEdge:   map[[2]dnode]bool{},
	}
}

// withPath adds every node in path as a reachable state, in the order
// given: path[0] becomes an initial state (if not already one), and each
// consecutive pair becomes an edge.
func (g *dgraph) withPath(path ...int) *dgraph {
	if len(path) == 0 {
		return g
	}
	first := dnode(path[0])
	if !g.seenInit[first] {
		g.seenInit[first] = true
		g.inits = append(g.inits, first)
	}
	for i := 0; i+1 < len(path); i++ {
		a, b := dnode(path[i]), dnode(path[i+1])
		key := [2]dnode{a, b}
		if !g.seenEdge[key] {
			g.seenEdge[key] = true
			g.edges[a] = append(g.edges[a], b)
		}
	}
	return g
}

func (g *dgraph) InitStates() []dnode {
	out := make([]dnode, len(g.inits))
	copy(out, g.inits)
	return out
}

func (g *dgraph) Actions(state dnode, out []dnode) []dnode {
	out = out[:0]
	return append(out, g.edges[state]...)
}

func (g *dgraph) NextState(state dnode, action dnode) (dnode, bool) {
	return action, true
}

func (g *dgraph) Properties() []Property[dnode] {
	return g.properties
}
