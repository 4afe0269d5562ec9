// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix || windows

package bfjit

import (
	"errors"
	"os"
	"testing"
)

func TestAllocateExecutable(t *testing.T) {
	for _, wx := range []bool{false, true} {
		m, err := allocateExecutable(100, wx)
		if err != nil {
			t.Fatal(err)
		}

		if g, e := m.Cap(), 100; g != e {
			t.Fatal(g, e)
		}

		if g, e := len(m.b), os.Getpagesize(); g != e {
			t.Fatal(g, e)
		}

		if g, e := m.entry()%uintptr(os.Getpagesize()), uintptr(0); g != e {
			t.Fatal(g, e)
		}

		if g, e := m.exec, !wx; g != e {
			t.Fatal(g, e)
		}

		if err := m.unseal(); err != nil {
			t.Fatal(err)
		}

		ip := 0
		m.write(&ip, retCode)
		if err := m.seal(); err != nil {
			t.Fatal(err)
		}

		if g, e := m.exec, true; g != e {
			t.Fatal(g, e)
		}

		// Sealed memory stays readable.
		if g, e := m.bytes(ip)[0], retCode[0]; g != e {
			t.Fatal(g, e)
		}

		if err := m.Close(); err != nil {
			t.Fatal(err)
		}

		if err := m.Close(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestAllocateData(t *testing.T) {
	b, err := allocateData(3*os.Getpagesize() + 1)
	if err != nil {
		t.Fatal(err)
	}

	if g, e := len(b), 4*os.Getpagesize(); g != e {
		t.Fatal(g, e)
	}

	for i, v := range b {
		if v != 0 {
			t.Fatal(i, v)
		}
	}
	b[len(b)-1] = 42
	if err := unmapPages(b); err != nil {
		t.Fatal(err)
	}
}

func TestAllocateLayout(t *testing.T) {
	for _, v := range []int{0, -1} {
		_, err := allocateExecutable(v, false)
		var e *LayoutError
		if !errors.As(err, &e) {
			t.Fatalf("%v: %T %v", v, err, err)
		}

		if _, err = allocateData(v); !errors.As(err, &e) {
			t.Fatalf("%v: %T %v", v, err, err)
		}
	}
}
