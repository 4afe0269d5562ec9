// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrUnsupported is returned by New on targets where native code cannot be
// generated or executed.
var ErrUnsupported = errors.New("bfjit: native code generation requires cgo on amd64")

// MemoryAllocationError is returned when the OS refuses to provide, or to
// change the protection of, pages of memory.
type MemoryAllocationError struct {
	Op   string // "allocate", "protect", ...
	Size int    // Bytes requested.
	Code int    // OS error code, if known, zero otherwise.
	Err  error
}

func newMemoryAllocationError(op string, size int, err error) *MemoryAllocationError {
	e := &MemoryAllocationError{Op: op, Size: size, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		e.Code = int(errno)
	}
	return e
}

// Error implements error.
func (e *MemoryAllocationError) Error() string {
	return fmt.Sprintf("%s executable memory (%#x bytes): %v (code %d)", e.Op, e.Size, e.Err, e.Code)
}

// Unwrap returns the underlying OS error.
func (e *MemoryAllocationError) Unwrap() error { return e.Err }

// LayoutError reports an invalid capacity request.
type LayoutError struct {
	Capacity int
	Reason   string
}

// Error implements error.
func (e *LayoutError) Error() string {
	return fmt.Sprintf("invalid memory layout: capacity %d: %s", e.Capacity, e.Reason)
}

// InvalidInstructionError is returned by Parse for characters that are not
// Brainfuck instructions.
type InvalidInstructionError struct {
	Char   rune
	Offset int // Byte offset in the source.
	Line   int // 1-based.
	Column int // 1-based, in runes.
}

// Error implements error.
func (e *InvalidInstructionError) Error() string {
	return fmt.Sprintf("%d:%d: invalid instruction %q", e.Line, e.Column, e.Char)
}

// InstructionError is returned by Compile and Interpret for instructions that
// cannot appear in a program.
type InstructionError struct {
	Index       int
	Instruction Instruction
}

// Error implements error.
func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction %d: %v is not a program instruction", e.Index, e.Instruction)
}

// UnbalancedLoopError is returned for a program with mismatched brackets.
type UnbalancedLoopError struct {
	Index int  // Index of the offending instruction.
	Stray bool // A ']' with no open '[', otherwise an unclosed '['.
}

// Error implements error.
func (e *UnbalancedLoopError) Error() string {
	if e.Stray {
		return fmt.Sprintf("unbalanced loop: stray close at instruction %d", e.Index)
	}

	return fmt.Sprintf("unbalanced loop: unclosed open at instruction %d", e.Index)
}

// CompileCapacityError is returned when the generated code would not fit the
// code buffer of a VM.
type CompileCapacityError struct {
	Required int
	Capacity int
}

// Error implements error.
func (e *CompileCapacityError) Error() string {
	return fmt.Sprintf("code requires %d bytes, but VM has a buffer of %d bytes", e.Required, e.Capacity)
}

// TapeBoundsError is returned by Interpret when the data pointer leaves the
// tape.
type TapeBoundsError struct {
	Index   int // Index of the instruction.
	Pointer int
	Size    int
}

// Error implements error.
func (e *TapeBoundsError) Error() string {
	return fmt.Sprintf("instruction %d: data pointer %d outside of tape [0, %d)", e.Index, e.Pointer, e.Size)
}

// if n%m != 0 { n += m-n%m }. m must be a power of 2.
func roundup(n, m int) int { return (n + m - 1) &^ (m - 1) }
