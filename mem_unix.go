// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package bfjit

import (
	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

// mapPages returns a fresh anonymous private mapping of n bytes, also
// executable if exec is set.
func mapPages(n int, exec bool) ([]byte, error) {
	prot := mmap.COPY // MAP_PRIVATE, PROT_READ|PROT_WRITE
	if exec {
		prot |= mmap.EXEC
	}
	return mmap.MapRegion(nil, n, prot, mmap.ANON, 0)
}

func protectPages(b []byte, exec bool) error {
	if exec {
		return unix.Mprotect(b, unix.PROT_READ|unix.PROT_EXEC)
	}

	return unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE)
}

func unmapPages(b []byte) error {
	m := mmap.MMap(b)
	return m.Unmap()
}
