// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bfjit compiles a Brainfuck program to native code and runs it.
//
// Usage:
//
//	bfjit [flags] file.bf
//
// The program reads the standard input and writes the standard output. Flags
// may be preloaded from a TOML file given by -config, for example
//
//	code-capacity = 1048576
//	data-capacity = 30000
//	write-xor-execute = true
//	log-level = "debug"
//	log-file = "bfjit.log"
//	dump = false
//	interpret = false
//
// Flags given on the command line take precedence.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	bfjit "github.com/Antti/brainfuck-jit"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bfjit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: bfjit [flags] file.bf\n")
		fs.PrintDefaults()
	}
	cfg := defaultConfig()
	cfg.bind(fs)
	configFile := fs.String("config", "", "read flag defaults from TOML `file`")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if *configFile != "" {
		if err := cfg.load(*configFile, fs); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	level, err := cfg.level()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	var logFile *os.File
	if cfg.LogFile != "" {
		if logFile, err = os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		defer logFile.Close()
	}

	var lf io.Writer
	if logFile != nil {
		lf = logFile
	}
	logger := newLogger(stderr, lf, level)

	fn := fs.Arg(0)
	b, err := os.ReadFile(fn)
	if err != nil {
		logger.Error("read program", "err", err)
		return 1
	}

	code, err := bfjit.Parse(string(b))
	if err != nil {
		var e *bfjit.InvalidInstructionError
		if errors.As(err, &e) {
			fmt.Fprintf(stderr, "%s:%v\n", fn, err)
			return 1
		}

		logger.Error("parse", "file", fn, "err", err)
		return 1
	}

	logger.Info("loaded", "file", fn, "instructions", len(code))
	stdin = bufio.NewReader(stdin)
	if cfg.Interpret {
		if err := bfjit.Interpret(code, cfg.DataCapacity, stdin, stdout); err != nil {
			logger.Error("interpret", "file", fn, "err", err)
			return 1
		}

		return 0
	}

	vm, err := bfjit.New(cfg.CodeCapacity, cfg.DataCapacity, stdin, stdout, &bfjit.Options{
		Logger:          logger,
		WriteXorExecute: cfg.WriteXorExecute,
	})
	if err != nil {
		logger.Error("new vm", "err", err)
		return 1
	}

	defer func() {
		if err := vm.Close(); err != nil {
			logger.Error("close", "err", err)
		}
	}()

	if err := vm.Compile(code); err != nil {
		logger.Error("compile", "file", fn, "err", err)
		return 1
	}

	if cfg.Dump {
		if err := vm.DumpCode(stderr); err != nil {
			logger.Error("dump", "err", err)
			return 1
		}
	}

	if err := vm.Run(); err != nil {
		logger.Error("run", "file", fn, "err", err)
		return 1
	}

	return 0
}
