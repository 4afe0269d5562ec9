// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

// bridge is the call site template of one host primitive.
type bridge struct {
	code   []byte
	target int // Offset of the imm64 call target in code.
}

// convention captures what generated code must do to call host routines
// under one native calling convention.
//
// The prologue pushes the pointer register pads times. On entry RSP is 8 mod
// 16; pads is chosen so that RSP is 16 byte aligned at every call instruction
// of the bridges. The pushed slots are otherwise unused, except as shadow
// space on win64. The epilogue pops them all, which restores the caller's
// RSI from the deepest slot.
type convention struct {
	name   string
	pads   int
	output bridge // int putbyte(int c)
	input  bridge // int getbyte(void)
}

var (
	// System V AMD64. RSI is the second argument register and caller saved,
	// so every call is bracketed by push rsi / pop rsi. The push also
	// realigns RSP for the call.
	sysv = convention{
		name: "sysv",
		pads: 16,
		output: bridge{
			code: []byte{
				0x48, 0x0f, 0xb6, 0x3e, // movzx rdi, byte [rsi]
				0x48, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, // mov rax, putbyte
				0x56,       // push rsi
				0xff, 0xd0, // call rax
				0x5e, // pop rsi
			},
			target: 6,
		},
		input: bridge{
			code: []byte{
				0x48, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, // mov rax, getbyte
				0x56,       // push rsi
				0xff, 0xd0, // call rax
				0x5e,       // pop rsi
				0x88, 0x06, // mov byte [rsi], al
			},
			target: 2,
		},
	}

	// Microsoft x64. RSI is non volatile, nothing to save. The odd number
	// of pads aligns RSP and the four slots nearest to it are the callee's
	// shadow space.
	win64 = convention{
		name: "win64",
		pads: 17,
		output: bridge{
			code: []byte{
				0x0f, 0xb6, 0x0e, // movzx ecx, byte [rsi]
				0x48, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, // mov rax, putbyte
				0xff, 0xd0, // call rax
			},
			target: 5,
		},
		input: bridge{
			code: []byte{
				0x48, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, // mov rax, getbyte
				0xff, 0xd0, // call rax
				0x88, 0x06, // mov byte [rsi], al
			},
			target: 2,
		},
	}
)

// prologueSize returns the size of the code preceding the program.
func (c *convention) prologueSize() int {
	return c.pads*len(pushCode) + len(movPtrCode)
}

// epilogueSize returns the size of the code following the program.
func (c *convention) epilogueSize() int {
	return c.pads*len(popCode) + len(retCode)
}
