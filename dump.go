// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"fmt"
	"io"

	"golang.org/x/arch/x86/x86asm"
)

// DumpCode writes a disassembly of the machine code vm currently holds to w.
// Addresses of branch and call targets are absolute.
func (vm *VM) DumpCode(w io.Writer) error {
	return dumpCode(w, vm.code.bytes(vm.size), uint64(vm.code.entry()))
}

func dumpCode(w io.Writer, code []byte, pc uint64) error {
	const width = 2 * 18 // Longest template instruction is 10 bytes.
	for off := 0; off < len(code); {
		inst, err := x86asm.Decode(code[off:], 64)
		if err != nil {
			if _, err := fmt.Fprintf(w, "%#05x\t%-*x\t(bad)\n", off, width, code[off:off+1]); err != nil {
				return err
			}

			off++
			continue
		}

		if _, err := fmt.Fprintf(w, "%#05x\t%-*x\t%s\n", off, width, code[off:off+inst.Len], x86asm.IntelSyntax(inst, pc+uint64(off), nil)); err != nil {
			return err
		}

		off += inst.Len
	}
	return nil
}
