// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import "sync"

// discoveryStore maps property name -> the fingerprint path (root to
// witness) of the first discovery recorded for that property.
// First-discovery-wins: recordOnce is a no-op once a name has an entry.
type discoveryStore struct {
	mu sync.Mutex
	m  map[string][]Fingerprint
}

func newDiscoveryStore() *discoveryStore {
	return &discoveryStore{m: make(map[string][]Fingerprint)}
}

// recordOnce records path under name if name has no recorded discovery
// yet, and reports whether it did so.
func (d *discoveryStore) recordOnce(name string, path []Fingerprint) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.m[name]; ok {
		return false
	}
	cp := make([]Fingerprint, len(path))
	copy(cp, path)
	d.m[name] = cp
	return true
}

// has reports whether name already has a recorded discovery, letting
// callers skip evaluating an already-satisfied property's predicate.
func (d *discoveryStore) has(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.m[name]
	return ok
}

// get returns a copy of the recorded path for name, if any.
func (d *discoveryStore) get(name string) ([]Fingerprint, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.m[name]
	if !ok {
		return nil, false
	}
	cp := make([]Fingerprint, len(p))
	copy(cp, p)
	return cp, true
}

// snapshot returns a copy of every recorded discovery.
func (d *discoveryStore) snapshot() map[string][]Fingerprint {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string][]Fingerprint, len(d.m))
	for name, p := range d.m {
		cp := make([]Fingerprint, len(p))
		copy(cp, p)
		out[name] = cp
	}
	return out
}

// count reports how many properties currently have a recorded discovery.
func (d *discoveryStore) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.m)
}
