// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"io"
)

// Interpret executes code without compiling it, using a tape of dataCapacity
// bytes. It has the semantics of a compiled program, except that moving the
// data pointer outside of the tape is reported as a *TapeBoundsError instead
// of being undefined behavior.
//
// The returned error may also be an *UnbalancedLoopError, an
// *InstructionError, a *LayoutError or, like for VM.Run, the first error
// reported by stdin or stdout.
func Interpret(code []Instruction, dataCapacity int, stdin io.Reader, stdout io.Writer) error {
	if dataCapacity <= 0 {
		return &LayoutError{Capacity: dataCapacity, Reason: "must be positive"}
	}

	jumps, err := matchLoops(code)
	if err != nil {
		return err
	}

	c := cpu{
		code:  code,
		jumps: jumps,
		port:  port{stdin: stdin, stdout: stdout},
		tape:  make([]byte, dataCapacity),
	}
	return c.run()
}

// matchLoops returns, for every bracket of code, the index of its pair.
func matchLoops(code []Instruction) ([]int, error) {
	jumps := make([]int, len(code))
	var open []int
	for i, v := range code {
		switch v {
		case IncPtr, DecPtr, IncData, DecData, Output, Input:
			// nop
		case LoopStart:
			open = append(open, i)
		case LoopEnd:
			if len(open) == 0 {
				return nil, &UnbalancedLoopError{Index: i, Stray: true}
			}

			j := open[len(open)-1]
			open = open[:len(open)-1]
			jumps[i], jumps[j] = j, i
		default:
			return nil, &InstructionError{Index: i, Instruction: v}
		}
	}
	if len(open) != 0 {
		return nil, &UnbalancedLoopError{Index: open[0]}
	}

	return jumps, nil
}

type cpu struct {
	code  []Instruction
	ip    int   // Instruction pointer
	jumps []int // Bracket pairs
	port  port
	ptr   int // Data pointer
	tape  []byte
}

func (c *cpu) run() error {
	for c.ip < len(c.code) {
		op := c.code[c.ip]
		switch op {
		case IncPtr:
			c.ptr++
		case DecPtr:
			c.ptr--
		case IncData:
			if err := c.check(); err != nil {
				return err
			}

			c.tape[c.ptr]++
		case DecData:
			if err := c.check(); err != nil {
				return err
			}

			c.tape[c.ptr]--
		case Output:
			if err := c.check(); err != nil {
				return err
			}

			c.port.putByte(c.tape[c.ptr])
		case Input:
			if err := c.check(); err != nil {
				return err
			}

			c.tape[c.ptr] = byte(c.port.getByte())
		case LoopStart:
			if err := c.check(); err != nil {
				return err
			}

			if c.tape[c.ptr] == 0 {
				c.ip = c.jumps[c.ip]
			}
		case LoopEnd:
			if err := c.check(); err != nil {
				return err
			}

			if c.tape[c.ptr] != 0 {
				c.ip = c.jumps[c.ip]
			}
		default:
			panic("internal error")
		}
		c.ip++
	}
	return c.port.err
}

// check validates the data pointer before the tape is accessed. Moving the
// pointer alone is not an error, like in a compiled program.
func (c *cpu) check() error {
	if c.ptr < 0 || c.ptr >= len(c.tape) {
		return &TapeBoundsError{Index: c.ip, Pointer: c.ptr, Size: len(c.tape)}
	}

	return nil
}
