// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapPages commits n bytes of read+write pages and, if exec is set, raises
// them to read+write+execute.
func mapPages(n int, exec bool) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}

	if exec {
		var old uint32
		if err := windows.VirtualProtect(addr, uintptr(n), windows.PAGE_EXECUTE_READWRITE, &old); err != nil {
			windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
			return nil, err
		}
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil
}

func protectPages(b []byte, exec bool) error {
	prot := uint32(windows.PAGE_READWRITE)
	if exec {
		prot = windows.PAGE_EXECUTE_READ
	}
	var old uint32
	return windows.VirtualProtect(uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), prot, &old)
}

func unmapPages(b []byte) error {
	return windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE)
}
