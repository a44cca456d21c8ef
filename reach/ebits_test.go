// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reach

import (
	"reflect"
	"testing"
)

func TestEventuallyBitsNewAllSet(t *testing.T) {
	b := newEventuallyBits(3)
	for i := 0; i < 3; i++ {
		if !b.isSet(i) {
			t.Errorf("bit %d not set in a fresh 3-bit set", i)
		}
	}
	if got := newEventuallyBits(0); got.any() {
		t.Errorf("newEventuallyBits(0).any() = true, want false")
	}
}

func TestEventuallyBitsClearAndAny(t *testing.T) {
	b := newEventuallyBits(2)
	if !b.any() {
		t.Fatal("expected any() true before clearing")
	}
	b = b.clear(0)
	if b.isSet(0) {
		t.Error("bit 0 still set after clear")
	}
	if !b.isSet(1) {
		t.Error("bit 1 should remain set")
	}
	b = b.clear(1)
	if b.any() {
		t.Error("any() should be false once every bit is cleared")
	}
}

func TestEventuallyBitsSetBits(t *testing.T) {
	b := newEventuallyBits(4).clear(1).clear(3)
	got := b.setBits()
	want := []int{0, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("setBits() = %v, want %v", got, want)
	}
}

func TestRequireEventuallyCapacityPanicsOverLimit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for 65 Eventually properties")
		}
	}()
	requireEventuallyCapacity(maxEventuallyProperties + 1)
}

func TestRequireEventuallyCapacityAllowsLimit(t *testing.T) {
	requireEventuallyCapacity(maxEventuallyProperties)
}
