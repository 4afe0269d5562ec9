// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo && amd64

package bfjit

/*
#include <stdint.h>
#include "host.h"
*/
import "C"

import (
	"runtime/cgo"
)

const nativeSupported = true

// hostRoutines returns the addresses of the routines generated code calls for
// output, int putbyte(int c), and input, int getbyte(void).
func hostRoutines() (put, get uintptr) {
	return uintptr(C.bfjit_putbyte_addr()), uintptr(C.bfjit_getbyte_addr())
}

// enter calls the code at entry. Host I/O performed by the code goes to p.
func enter(entry uintptr, p *port) {
	h := cgo.NewHandle(p)
	defer h.Delete()

	C.bfjit_enter(C.uintptr_t(entry), C.uintptr_t(h))
}

//export bfjitPutByte
func bfjitPutByte(h C.uintptr_t, c C.int) C.int {
	return C.int(cgo.Handle(h).Value().(*port).putByte(byte(c)))
}

//export bfjitGetByte
func bfjitGetByte(h C.uintptr_t) C.int {
	return C.int(cgo.Handle(h).Value().(*port).getByte())
}
