// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// port connects the host I/O routines called by generated code to the
// streams of a VM. Bytes are transferred one at a time, without any read
// ahead or write buffering.
type port struct {
	stdin  io.Reader
	stdout io.Writer
	in     [1]byte
	out    [1]byte
	err    error // First non EOF error of the current run.
}

func (p *port) reset() { p.err = nil }

func (p *port) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// putByte writes c to stdout. Like putchar it returns c, or -1 on error.
func (p *port) putByte(c byte) int {
	if strace {
		fmt.Fprintf(os.Stderr, "putbyte(%#02x)\n", c)
	}
	if p.stdout == nil {
		return int(c)
	}

	p.out[0] = c
	if _, err := p.stdout.Write(p.out[:]); err != nil {
		p.fail(err)
		return -1
	}

	return int(c)
}

// getByte reads a byte from stdin. Like getchar it returns -1 at EOF or on
// error.
func (p *port) getByte() int {
	if p.stdin == nil {
		return -1
	}

	_, err := io.ReadFull(p.stdin, p.in[:])
	if strace {
		fmt.Fprintf(os.Stderr, "getbyte() %#02x %v\n", p.in[0], err)
	}
	switch {
	case err == nil:
		return int(p.in[0])
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return -1
	default:
		p.fail(err)
		return -1
	}
}
