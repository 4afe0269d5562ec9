// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bfjit implements a native code just-in-time compiler for Brainfuck.
//
// Programs are compiled to x86-64 machine code written into a page aligned
// region of memory that is both writable and executable. The generated code
// keeps the data pointer in RSI and calls back into the host for byte input
// and output through a small calling convention bridge.
//
// Supported platforms
//
// Native execution requires cgo on amd64: System V systems (linux, darwin,
// the BSDs) and windows. On other targets New returns ErrUnsupported, while
// Parse and Interpret remain available.
//
// Limitations
//
// Generated code does not check the data pointer against the tape bounds.
// Moving it outside the tape is undefined behavior at the host level. Use
// Interpret for a bounds checked execution of the same program.
package bfjit

import (
	"io"
)

const (
	// DefaultCodeCapacity is the code buffer size used by Exec.
	DefaultCodeCapacity = 0x10000
	// DefaultDataCapacity is the tape size used by Exec.
	DefaultDataCapacity = 0x10000
)

// Exec parses src, compiles it into a new VM having the default capacities
// and runs it once. It takes care of calling the Close method of the VM.
func Exec(src string, stdin io.Reader, stdout io.Writer) (err error) {
	code, err := Parse(src)
	if err != nil {
		return err
	}

	vm, err := New(DefaultCodeCapacity, DefaultDataCapacity, stdin, stdout, nil)
	if err != nil {
		return err
	}

	defer func() {
		if e := vm.Close(); e != nil && err == nil {
			err = e
		}
	}()

	if err = vm.Compile(code); err != nil {
		return err
	}

	return vm.Run()
}
