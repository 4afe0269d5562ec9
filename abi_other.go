// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows

package bfjit

var hostABI = &sysv
