// Copyright (c) Arista Networks, Inc. 2024
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "cfg.toml", `
min_capacity = 3
log_level = "debug"
sorted = true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, Config{
		MinCapacity: 3,
		LogLevel:    "debug",
		Dump:        true,
		Sorted:      true,
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "decoding config")

	_, err = LoadConfig(writeFile(t, "bad.toml", "min_capacity = \"ten\"\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeFile(t, "extra.toml", "buckets = 4\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown config key \"buckets\"")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.MinCapacity = 0
	require.EqualError(t, cfg.Validate(), "min_capacity must be at least 1, got 0")

	cfg = DefaultConfig()
	cfg.LogLevel = "loud"
	require.Error(t, cfg.Validate())
}

func TestRunStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("b\na\n\nb\r\nc\n")
	err := runMain([]string{"-min-capacity", "2", "-sorted", "-dump=false"}, stdin, &stdout, &stderr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "len: 3, "), lines[0])
	require.Equal(t, "chainset.Set[a b c]", lines[1])
	require.Contains(t, stderr.String(), "loaded keys")
	require.Contains(t, stderr.String(), `"duplicates": 1`)
}

func TestRunFilesWithConfig(t *testing.T) {
	cfgPath := writeFile(t, "cfg.toml", "min_capacity = 1\nlog_level = \"debug\"\n")
	in1 := writeFile(t, "one.txt", "x\ny\n")
	in2 := writeFile(t, "two.txt", "y\nz\n")

	var stdout, stderr bytes.Buffer
	err := runMain([]string{"-config", cfgPath, in1, in2}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	require.True(t, strings.HasPrefix(out, "len: 3, "), out)
	// A single bucket grows on the first collision.
	require.Contains(t, stderr.String(), "rehash")
	require.Contains(t, out, "[0]")
	for _, k := range []string{"x", "y", "z"} {
		require.Contains(t, out, "-> "+k)
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runMain([]string{"-min-capacity", "0"}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")

	err = runMain([]string{filepath.Join(t.TempDir(), "nope.txt")}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
	require.Contains(t, err.Error(), "opening input")

	err = runMain([]string{"-no-such-flag"}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
}
