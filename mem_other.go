// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix && !windows

package bfjit

func mapPages(n int, exec bool) ([]byte, error) { return nil, ErrUnsupported }

func protectPages(b []byte, exec bool) error { return ErrUnsupported }

func unmapPages(b []byte) error { return nil }
