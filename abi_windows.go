// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfjit

var hostABI = &win64
