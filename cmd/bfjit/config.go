// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	bfjit "github.com/Antti/brainfuck-jit"
	"github.com/BurntSushi/toml"
)

type config struct {
	CodeCapacity    int    `toml:"code-capacity"`
	DataCapacity    int    `toml:"data-capacity"`
	WriteXorExecute bool   `toml:"write-xor-execute"`
	LogLevel        string `toml:"log-level"`
	LogFile         string `toml:"log-file"`
	Dump            bool   `toml:"dump"`
	Interpret       bool   `toml:"interpret"`
}

func defaultConfig() config {
	return config{
		CodeCapacity: bfjit.DefaultCodeCapacity,
		DataCapacity: bfjit.DefaultDataCapacity,
		LogLevel:     "warn",
	}
}

// bind registers the flags of c in fs.
func (c *config) bind(fs *flag.FlagSet) {
	fs.IntVar(&c.CodeCapacity, "code", c.CodeCapacity, "code buffer capacity in bytes")
	fs.IntVar(&c.DataCapacity, "data", c.DataCapacity, "tape capacity in bytes")
	fs.BoolVar(&c.WriteXorExecute, "wx", c.WriteXorExecute, "never map code pages writable and executable at once")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "also write JSON logs to `file`")
	fs.BoolVar(&c.Dump, "dump", c.Dump, "write a disassembly of the compiled code to stderr")
	fs.BoolVar(&c.Interpret, "interp", c.Interpret, "run the bounds checked interpreter instead of native code")
}

// load merges the TOML file fn into c. Flags explicitly set in fs keep their
// values.
func (c *config) load(fn string, fs *flag.FlagSet) error {
	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })
	md, err := toml.DecodeFile(fn, c)
	if err != nil {
		return fmt.Errorf("cannot read config %s: %w", fn, err)
	}

	if u := md.Undecoded(); len(u) != 0 {
		var a []string
		for _, k := range u {
			a = append(a, k.String())
		}
		return fmt.Errorf("%s: unknown keys: %s", fn, strings.Join(a, ", "))
	}

	for k, v := range explicit {
		if err := fs.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (c *config) level() (l slog.Level, err error) {
	if err = l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	return l, nil
}
