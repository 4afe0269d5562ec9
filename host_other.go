// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !cgo || !amd64

package bfjit

const nativeSupported = false

func hostRoutines() (put, get uintptr) { return 0, 0 }

func enter(entry uintptr, p *port) { panic("unreachable") }
