// Copyright (c) Arista Networks, Inc. 2024
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command chaindump loads newline separated keys into a chainset.Set
// and prints the resulting table. It reads the files named on the
// command line, or stdin when there are none.
//
//	chaindump [-config file.toml] [-min-capacity n] [-log-level debug] [-dump] [-sorted] [file ...]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	chainset "github.com/TTsonev/separate-chaining"
)

func main() {
	if err := runMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "chaindump:", err)
		os.Exit(1)
	}
}

func runMain(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("chaindump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	minCap := fs.Int("min-capacity", chainset.DefaultMinCapacity, "minimum bucket count")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	dump := fs.Bool("dump", true, "print every bucket and its chain")
	sorted := fs.Bool("sorted", false, "print the keys sorted on one line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			return err
		}
	}
	// Flags given explicitly win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-capacity":
			cfg.MinCapacity = *minCap
		case "log-level":
			cfg.LogLevel = *logLevel
		case "dump":
			cfg.Dump = *dump
		case "sorted":
			cfg.Sorted = *sorted
		}
	})
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	log, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	defer log.Sync()

	s := chainset.NewCapacity(cfg.MinCapacity,
		func(a, b string) bool { return a == b },
		maphash.String)
	s.SetLogger(log)

	if fs.NArg() == 0 {
		if err := load(s, stdin, "stdin", log); err != nil {
			return err
		}
	}
	for _, name := range fs.Args() {
		if err := loadFile(s, name, log); err != nil {
			return err
		}
	}
	return report(stdout, s, cfg)
}

func loadFile(s *chainset.Set[string], name string, log *zap.Logger) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	defer f.Close()
	return load(s, f, name, log)
}

// load inserts every non-blank line of r into s.
func load(s *chainset.Set[string], r io.Reader, name string, log *zap.Logger) error {
	sc := bufio.NewScanner(r)
	lines, added := 0, 0
	for sc.Scan() {
		key := strings.TrimRight(sc.Text(), "\r")
		if key == "" {
			continue
		}
		lines++
		if _, ok := s.Insert(key); ok {
			added++
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	log.Info("loaded keys",
		zap.String("input", name),
		zap.Int("lines", lines),
		zap.Int("added", added),
		zap.Int("duplicates", lines-added))
	return nil
}

func report(w io.Writer, s *chainset.Set[string], cfg Config) error {
	if _, err := fmt.Fprintln(w, s.Stats()); err != nil {
		return errors.Wrap(err, "writing stats")
	}
	if cfg.Dump {
		if err := s.Dump(w); err != nil {
			return errors.Wrap(err, "writing dump")
		}
	}
	if cfg.Sorted {
		if _, err := fmt.Fprintln(w, s.String()); err != nil {
			return errors.Wrap(err, "writing keys")
		}
	}
	return nil
}
