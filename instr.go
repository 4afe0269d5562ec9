// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"fmt"
)

// Instruction is a single Brainfuck operation.
type Instruction int

// Values of Instruction.
const (
	IncPtr    Instruction = iota // >
	DecPtr                       // <
	IncData                      // +
	DecData                      // -
	Output                       // .
	Input                        // ,
	LoopStart                    // [
	LoopEnd                      // ]

	nProgram
)

// Internal code generation primitives. Never produced by Parse.
const (
	push Instruction = iota + 0x100
	pop
	movPtr
	breakpoint
	ret
)

var (
	chars = [nProgram]byte{
		IncPtr:    '>',
		DecPtr:    '<',
		IncData:   '+',
		DecData:   '-',
		Output:    '.',
		Input:     ',',
		LoopStart: '[',
		LoopEnd:   ']',
	}

	mnemonics = map[Instruction]string{
		push:       "push",
		pop:        "pop",
		movPtr:     "movptr",
		breakpoint: "breakpoint",
		ret:        "ret",
	}
)

// IsProgram reports whether i can appear in a parsed program.
func (i Instruction) IsProgram() bool { return i >= 0 && i < nProgram }

// String implements fmt.Stringer.
func (i Instruction) String() string {
	if i.IsProgram() {
		return string(chars[i])
	}

	if s, ok := mnemonics[i]; ok {
		return s
	}

	return fmt.Sprintf("Instruction(%d)", int(i))
}

// Parse translates src to a sequence of instructions. New lines are ignored,
// any other character not in "><+-.,[]" is reported as an
// *InvalidInstructionError.
func Parse(src string) ([]Instruction, error) {
	code := make([]Instruction, 0, len(src))
	line, col := 1, 0
	for off, ch := range src {
		col++
		switch ch {
		case '>':
			code = append(code, IncPtr)
		case '<':
			code = append(code, DecPtr)
		case '+':
			code = append(code, IncData)
		case '-':
			code = append(code, DecData)
		case '.':
			code = append(code, Output)
		case ',':
			code = append(code, Input)
		case '[':
			code = append(code, LoopStart)
		case ']':
			code = append(code, LoopEnd)
		case '\n':
			line++
			col = 0
		default:
			return nil, &InvalidInstructionError{Char: ch, Offset: off, Line: line, Column: col}
		}
	}
	return code, nil
}
