// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"fmt"
	"io"
	"log/slog"
	"unsafe"
)

// Options amend the construction of a VM. The zero value is ready to use.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	// WriteXorExecute keeps the code pages either writable or executable,
	// never both. Compile and Run change the page protection as needed.
	WriteXorExecute bool

	// Breakpoint emits an int3 instruction before the program, for use
	// under a native debugger. Running such code without one kills the
	// process.
	Breakpoint bool
}

// VM compiles a program to native code and runs it.
//
// A VM owns its code buffer and its tape. It is not safe for concurrent use:
// calls of Compile and Run must be serialized by the caller.
type VM struct {
	abi        *convention
	breakpoint bool
	code       *Memory
	compiled   bool
	logger     *slog.Logger
	port       port
	size       int    // Size of the code in the code buffer.
	tape       []byte // tapeMem[:dataCapacity]
	tapeMem    []byte
}

// New returns a VM able to hold codeCapacity bytes of machine code and having
// a tape of dataCapacity bytes. Generated code reads its input from stdin and
// writes its output to stdout, either may be nil.
//
// The VM is runnable immediately, running it before a successful Compile does
// nothing. Its Close method must be called eventually to free the memory it
// has acquired from the OS.
func New(codeCapacity, dataCapacity int, stdin io.Reader, stdout io.Writer, opts *Options) (*VM, error) {
	if !nativeSupported {
		return nil, ErrUnsupported
	}

	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	code, err := allocateExecutable(codeCapacity, opts.WriteXorExecute)
	if err != nil {
		return nil, err
	}

	tapeMem, err := allocateData(dataCapacity)
	if err != nil {
		code.Close()
		return nil, err
	}

	vm := &VM{
		abi:        hostABI,
		breakpoint: opts.Breakpoint,
		code:       code,
		logger:     logger,
		port:       port{stdin: stdin, stdout: stdout},
		tape:       tapeMem[:dataCapacity:dataCapacity],
		tapeMem:    tapeMem,
	}
	ip := 0
	code.write(&ip, retCode)
	if err := code.seal(); err != nil {
		vm.Close()
		return nil, err
	}

	vm.size = ip
	logger.Debug("new vm",
		"abi", vm.abi.name,
		"code", fmt.Sprintf("%#x", code.entry()),
		"codeCapacity", codeCapacity,
		"tape", fmt.Sprintf("%#x", vm.tapeAddr()),
		"dataCapacity", dataCapacity,
		"wx", opts.WriteXorExecute,
	)
	return vm, nil
}

func (vm *VM) tapeAddr() uintptr { return uintptr(unsafe.Pointer(&vm.tape[0])) }

// Compile translates code to machine code replacing the program of vm.
//
// Errors are *UnbalancedLoopError, *InstructionError, *CompileCapacityError
// or, for W^X VMs, *MemoryAllocationError. On error the previous program of
// vm is kept, except when changing the page protection fails after the new
// code was written.
func (vm *VM) Compile(code []Instruction) error {
	put, get := hostRoutines()
	c := &compiler{
		abi:        vm.abi,
		breakpoint: vm.breakpoint,
		get:        get,
		m:          vm.code,
		put:        put,
		tape:       vm.tapeAddr(),
	}
	n, err := c.size(code)
	if err != nil {
		vm.logger.Debug("compile", "instructions", len(code), "err", err)
		return err
	}

	if err := vm.code.unseal(); err != nil {
		return err
	}

	if g := c.emit(code); g != n {
		panic(fmt.Errorf("internal error: emitted %d bytes, expected %d", g, n))
	}

	vm.size = n
	vm.compiled = true
	vm.logger.Debug("compile", "instructions", len(code), "bytes", n)
	vm.logger.Debug("data pointer movement is not checked against the tape bounds")
	return vm.code.seal()
}

// Run zeroes the tape and executes the program of vm. It returns after the
// program terminates. A program that does not terminate blocks forever.
//
// The returned error, if any, is the first error reported by the stdin or
// stdout of vm during the run. EOF is not an error, generated code reads it
// as -1.
func (vm *VM) Run() error {
	clear(vm.tapeMem)
	if err := vm.code.seal(); err != nil {
		return err
	}

	vm.port.reset()
	vm.logger.Debug("run", "entry", fmt.Sprintf("%#x", vm.code.entry()), "tape", fmt.Sprintf("%#x", vm.tapeAddr()))
	enter(vm.code.entry(), &vm.port)
	return vm.port.err
}

// Compiled reports whether a program was compiled successfully into vm.
func (vm *VM) Compiled() bool { return vm.compiled }

// CodeSize returns the size of the machine code vm currently holds.
func (vm *VM) CodeSize() int { return vm.size }

// Tape returns the tape of vm. It is valid until Close and is zeroed at the
// start of every Run.
func (vm *VM) Tape() []byte { return vm.tape }

// Close releases the resources of vm.
func (vm *VM) Close() (err error) {
	if vm.code != nil {
		if e := vm.code.Close(); e != nil && err == nil {
			err = e
		}
		vm.code = nil
	}
	if vm.tapeMem != nil {
		if e := unmapPages(vm.tapeMem); e != nil && err == nil {
			err = e
		}
		vm.tapeMem = nil
		vm.tape = nil
	}
	return err
}
