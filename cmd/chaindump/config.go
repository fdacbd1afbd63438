// Copyright (c) Arista Networks, Inc. 2024
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	chainset "github.com/TTsonev/separate-chaining"
)

// Config controls how keys are loaded and what is printed.
type Config struct {
	MinCapacity int    `toml:"min_capacity"`
	LogLevel    string `toml:"log_level"`
	Dump        bool   `toml:"dump"`
	Sorted      bool   `toml:"sorted"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		MinCapacity: chainset.DefaultMinCapacity,
		LogLevel:    "info",
		Dump:        true,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "decoding config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// Validate checks cfg for values the set cannot be built with.
func (c Config) Validate() error {
	if c.MinCapacity < 1 {
		return errors.Errorf("min_capacity must be at least 1, got %d", c.MinCapacity)
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}
