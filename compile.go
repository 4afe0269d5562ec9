// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"fmt"
	"math"
)

// compiler translates a program to machine code in two passes. size checks
// the program and computes the exact size of its code without touching the
// memory, emit writes the code assuming size succeeded.
type compiler struct {
	abi        *convention
	m          *Memory
	tape       uintptr // Bound to RSI by the prologue.
	put        uintptr // Host output routine.
	get        uintptr // Host input routine.
	breakpoint bool    // Emit int3 before the program.
}

// size returns the number of bytes emit will write for code.
func (c *compiler) size(code []Instruction) (int, error) {
	n := 0
	var open []int
	for i, v := range code {
		switch v {
		case IncPtr, DecPtr, IncData, DecData, Output, Input:
			// nop
		case LoopStart:
			open = append(open, i)
		case LoopEnd:
			if len(open) == 0 {
				return 0, &UnbalancedLoopError{Index: i, Stray: true}
			}

			open = open[:len(open)-1]
		default:
			return 0, &InstructionError{Index: i, Instruction: v}
		}
		n += len(c.abi.code(v))
	}
	if len(open) != 0 {
		return 0, &UnbalancedLoopError{Index: open[0]}
	}

	n += c.abi.prologueSize() + c.abi.epilogueSize()
	if c.breakpoint {
		n += len(breakpointCode)
	}
	if n > c.m.Cap() {
		return 0, &CompileCapacityError{Required: n, Capacity: c.m.Cap()}
	}

	return n, nil
}

// emit writes the code of a program accepted by size and returns its size.
func (c *compiler) emit(code []Instruction) int {
	ip := 0
	for i := 0; i < c.abi.pads; i++ {
		c.m.write(&ip, pushCode)
	}
	c.m.write(&ip, movPtrCode)
	c.m.patchQuad(ip-len(movPtrCode)+movPtrTarget, uint64(c.tape))
	if c.breakpoint {
		c.m.write(&ip, breakpointCode)
	}

	ip, n := c.loopBody(code, ip)
	if n != len(code) {
		panic(fmt.Errorf("internal error: compiled %d of %d instructions", n, len(code)))
	}

	for i := 0; i < c.abi.pads; i++ {
		c.m.write(&ip, popCode)
	}
	c.m.write(&ip, retCode)
	return ip
}

// loopBody emits code starting at begin up to and including the ']' closing
// the loop whose body starts at begin, or up to the end of code. It returns
// the new ip and the number of instructions consumed.
func (c *compiler) loopBody(code []Instruction, begin int) (ip, n int) {
	ip = begin
	for n < len(code) {
		v := code[n]
		n++
		switch v {
		case IncPtr, DecPtr, IncData, DecData:
			c.m.write(&ip, c.abi.code(v))
		case Output:
			c.call(&ip, &c.abi.output, c.put)
		case Input:
			c.call(&ip, &c.abi.input, c.get)
		case LoopStart:
			c.m.write(&ip, loopStartCode)
			body := ip
			end, m := c.loopBody(code[n:], body)
			c.m.patchLong(body-branchSize, displacement(end-body))
			ip = end
			n += m
		case LoopEnd:
			c.m.write(&ip, loopEndCode)
			c.m.patchLong(ip-branchSize, -displacement(ip-begin))
			return ip, n
		default:
			panic(fmt.Errorf("internal error: unexpected instruction %v", v))
		}
	}
	return ip, n
}

// call emits the bridge b and patches its call target with fn.
func (c *compiler) call(ip *int, b *bridge, fn uintptr) {
	c.m.write(ip, b.code)
	c.m.patchQuad(*ip-len(b.code)+b.target, uint64(fn))
}

func displacement(n int) int32 {
	if n <= 0 || n > math.MaxInt32 {
		panic(fmt.Errorf("internal error: branch displacement %d out of range", n))
	}

	return int32(n)
}
