// Copyright 2026 The Bfjit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	bfjit "github.com/Antti/brainfuck-jit"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func writeFile(t *testing.T, name, content string) string {
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return fn
}

func TestConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c := defaultConfig()
	c.bind(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}

	if g, e := c, defaultConfig(); g != e {
		t.Fatalf("%+v %+v", g, e)
	}

	l, err := c.level()
	if err != nil {
		t.Fatal(err)
	}

	if g, e := l, slog.LevelWarn; g != e {
		t.Fatal(g, e)
	}
}

func TestConfigLoad(t *testing.T) {
	fn := writeFile(t, "bfjit.toml", `
code-capacity = 4096
data-capacity = 300
write-xor-execute = true
log-level = "debug"
dump = true
`)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c := defaultConfig()
	c.bind(fs)
	if err := fs.Parse([]string{"-data", "100", "-dump=false"}); err != nil {
		t.Fatal(err)
	}

	if err := c.load(fn, fs); err != nil {
		t.Fatal(err)
	}

	e := config{
		CodeCapacity:    4096,
		DataCapacity:    100,
		WriteXorExecute: true,
		LogLevel:        "debug",
		Dump:            false,
	}
	if g := c; g != e {
		t.Fatalf("%+v %+v", g, e)
	}
}

func TestConfigErrors(t *testing.T) {
	for i, content := range []string{
		"code-capacity = \"big\"",
		"unknown = 1",
		"dump = ",
	} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		c := defaultConfig()
		c.bind(fs)
		if err := c.load(writeFile(t, "bfjit.toml", content), fs); err == nil {
			t.Fatal(i, "expected error")
		}
	}

	c := defaultConfig()
	c.LogLevel = "loud"
	if _, err := c.level(); err == nil {
		t.Fatal("expected error")
	}
}

func TestLogger(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := newLogger(&stderr, &file, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("shown", "n", 42)
	for _, b := range []*bytes.Buffer{&stderr, &file} {
		var m map[string]interface{}
		if err := json.Unmarshal(b.Bytes(), &m); err != nil {
			t.Fatalf("%v: %s", err, b.Bytes())
		}

		if g, e := m["msg"], "shown"; g != e {
			t.Fatal(g, e)
		}

		if g, e := m["n"], 42.0; g != e {
			t.Fatal(g, e)
		}
	}
}

func TestRunUsage(t *testing.T) {
	for i, args := range [][]string{
		nil,
		{"a.bf", "b.bf"},
		{"-nosuchflag", "a.bf"},
		{"-log-level", "loud", writeFile(t, "a.bf", "+")},
		{"-config", writeFile(t, "bad.toml", "x = 1"), "a.bf"},
	} {
		var stderr bytes.Buffer
		if g, e := run(args, nil, io.Discard, &stderr), 2; g != e {
			t.Fatal(i, g, e, stderr.String())
		}
	}
}

func TestRunFailures(t *testing.T) {
	var stderr bytes.Buffer
	if g, e := run([]string{filepath.Join(t.TempDir(), "missing.bf")}, nil, io.Discard, &stderr), 1; g != e {
		t.Fatal(g, e)
	}

	stderr.Reset()
	fn := writeFile(t, "bad.bf", "+\n+x")
	if g, e := run([]string{fn}, nil, io.Discard, &stderr), 1; g != e {
		t.Fatal(g, e)
	}

	if g, e := stderr.String(), fn+":2:2: invalid instruction 'x'\n"; g != e {
		t.Fatalf("%q %q", g, e)
	}

	stderr.Reset()
	if g, e := run([]string{"-interp", "-data", "2", writeFile(t, "oob.bf", ">>+")}, nil, io.Discard, &stderr), 1; g != e {
		t.Fatal(g, e)
	}

	if !strings.Contains(stderr.String(), "outside of tape") {
		t.Fatal(stderr.String())
	}
}

func TestRunInterpret(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if g, e := run([]string{"-interp", writeFile(t, "hello.bf", helloWorld)}, nil, &stdout, &stderr), 0; g != e {
		t.Fatal(g, e, stderr.String())
	}

	if g, e := stdout.String(), "Hello World!\n"; g != e {
		t.Fatalf("%q %q", g, e)
	}
}

func TestRunNative(t *testing.T) {
	vm, err := bfjit.New(1, 1, nil, nil, nil)
	if err == nil {
		vm.Close()
	}
	for _, args := range [][]string{
		nil,
		{"-wx"},
		{"-dump"},
	} {
		var stdout, stderr bytes.Buffer
		args = append(args, writeFile(t, "cat.bf", ",+[-.,+]"))
		rc := run(args, strings.NewReader("hello"), &stdout, &stderr)
		if err == bfjit.ErrUnsupported {
			if g, e := rc, 1; g != e {
				t.Fatal(g, e)
			}

			continue
		}

		if g, e := rc, 0; g != e {
			t.Fatal(args, g, e, stderr.String())
		}

		if g, e := stdout.String(), "hello"; g != e {
			t.Fatalf("%v: %q %q", args, g, e)
		}

		if args[0] == "-dump" && !strings.Contains(stderr.String(), "ret") {
			t.Fatal(stderr.String())
		}
	}
}
