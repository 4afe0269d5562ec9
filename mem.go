// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"github.com/cznic/mathutil"
)

// Memory is a page aligned region of host memory holding generated code.
//
// Memory is allocated readable, writable and executable at once. That trades
// the W^X hardening guarantee for simplicity; a Memory created with wx set
// instead flips its pages between read+write and read+execute, see seal and
// unseal.
type Memory struct {
	b    []byte // The whole mapping.
	cap  int    // Configured capacity, at most len(b).
	exec bool   // Pages are currently executable.
	wx   bool   // Pages are never writable and executable at the same time.
}

// pageRoundup returns capacity rounded up to the host page size.
func pageRoundup(capacity int) (int, error) {
	if capacity <= 0 {
		return 0, &LayoutError{Capacity: capacity, Reason: "must be positive"}
	}

	pg := os.Getpagesize()
	if capacity > mathutil.MaxInt-pg+1 {
		return 0, &LayoutError{Capacity: capacity, Reason: fmt.Sprintf("overflows rounding to page size %#x", pg)}
	}

	return roundup(capacity, pg), nil
}

func allocateExecutable(capacity int, wx bool) (*Memory, error) {
	n, err := pageRoundup(capacity)
	if err != nil {
		return nil, err
	}

	b, err := mapPages(n, !wx)
	if err != nil {
		return nil, newMemoryAllocationError("allocate", n, err)
	}

	return &Memory{b: b, cap: capacity, exec: !wx, wx: wx}, nil
}

// allocateData returns zeroed, non executable pages of at least capacity
// bytes.
func allocateData(capacity int) ([]byte, error) {
	n, err := pageRoundup(capacity)
	if err != nil {
		return nil, err
	}

	b, err := mapPages(n, false)
	if err != nil {
		return nil, newMemoryAllocationError("allocate", n, err)
	}

	return b, nil
}

// Cap returns the capacity m was allocated with. The pages backing m may
// extend beyond it, up to the next page boundary.
func (m *Memory) Cap() int { return m.cap }

// write copies b to m at *ip and advances *ip by len(b).
func (m *Memory) write(ip *int, b []byte) {
	if m.wx && m.exec {
		panic("internal error: write to sealed memory")
	}

	if *ip < 0 || *ip+len(b) > m.cap {
		panic(fmt.Errorf("internal error: write of %d bytes at %#x overflows %#x", len(b), *ip, m.cap))
	}

	*ip += copy(m.b[*ip:], b)
}

// patchQuad overwrites the 8 bytes at off with v.
func (m *Memory) patchQuad(off int, v uint64) {
	if off < 0 || off+8 > m.cap {
		panic(fmt.Errorf("internal error: patch at %#x overflows %#x", off, m.cap))
	}

	binary.LittleEndian.PutUint64(m.b[off:], v)
}

// patchLong overwrites the 4 bytes at off with v.
func (m *Memory) patchLong(off int, v int32) {
	if off < 0 || off+4 > m.cap {
		panic(fmt.Errorf("internal error: patch at %#x overflows %#x", off, m.cap))
	}

	binary.LittleEndian.PutUint32(m.b[off:], uint32(v))
}

// entry returns the address of offset 0.
func (m *Memory) entry() uintptr { return uintptr(unsafe.Pointer(&m.b[0])) }

// bytes returns the first n bytes of m.
func (m *Memory) bytes(n int) []byte { return m.b[:n:n] }

// seal makes m executable and, for W^X memory, read only.
func (m *Memory) seal() error {
	if !m.wx || m.exec {
		return nil
	}

	if err := protectPages(m.b, true); err != nil {
		return newMemoryAllocationError("protect", len(m.b), err)
	}

	m.exec = true
	return nil
}

// unseal makes W^X memory writable and not executable.
func (m *Memory) unseal() error {
	if !m.wx || !m.exec {
		return nil
	}

	if err := protectPages(m.b, false); err != nil {
		return newMemoryAllocationError("protect", len(m.b), err)
	}

	m.exec = false
	return nil
}

// Close releases the pages of m.
func (m *Memory) Close() error {
	if m.b == nil {
		return nil
	}

	err := unmapPages(m.b)
	m.b = nil
	return err
}
