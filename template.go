// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

// x86-64 templates. RSI is the data pointer.
var (
	incPtrCode    = []byte{0x48, 0xff, 0xc6} // inc rsi
	decPtrCode    = []byte{0x48, 0xff, 0xce} // dec rsi
	incDataCode   = []byte{0xfe, 0x06}       // inc byte [rsi]
	decDataCode   = []byte{0xfe, 0x0e}       // dec byte [rsi]
	loopStartCode = []byte{
		0x80, 0x3e, 0x00, // cmp byte [rsi], 0
		0x0f, 0x84, 0, 0, 0, 0, // je rel32
	}
	loopEndCode = []byte{
		0x80, 0x3e, 0x00, // cmp byte [rsi], 0
		0x0f, 0x85, 0, 0, 0, 0, // jne rel32
	}

	pushCode       = []byte{0x56}                               // push rsi
	popCode        = []byte{0x5e}                               // pop rsi
	movPtrCode     = []byte{0x48, 0xbe, 0, 0, 0, 0, 0, 0, 0, 0} // mov rsi, imm64
	breakpointCode = []byte{0xcc}                               // int3
	retCode        = []byte{0xc3}                               // ret
)

const (
	movPtrTarget = 2 // Offset of imm64 in movPtrCode.
	branchSize   = 4 // Size of the rel32 ending loopStartCode and loopEndCode.
)

// code returns the template of i for convention c.
func (c *convention) code(i Instruction) []byte {
	switch i {
	case IncPtr:
		return incPtrCode
	case DecPtr:
		return decPtrCode
	case IncData:
		return incDataCode
	case DecData:
		return decDataCode
	case Output:
		return c.output.code
	case Input:
		return c.input.code
	case LoopStart:
		return loopStartCode
	case LoopEnd:
		return loopEndCode
	case push:
		return pushCode
	case pop:
		return popCode
	case movPtr:
		return movPtrCode
	case breakpoint:
		return breakpointCode
	case ret:
		return retCode
	default:
		panic("internal error: no template for " + i.String())
	}
}
