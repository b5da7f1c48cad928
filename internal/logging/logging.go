// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the phuslu/log logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/phuslu/log"

	"github.com/pdiddy/daybook/pkg/types"
)

var levels = map[string]log.Level{
	"trace":   log.TraceLevel,
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

// ParseLevel maps a level name to a log.Level. Names are case-insensitive.
func ParseLevel(name string) (log.Level, error) {
	if name == "" {
		return log.InfoLevel, nil
	}
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q: use trace, debug, info, warn, or error", name)
	}
	return lvl, nil
}

// New returns a logger writing to out. Format "console" (the default) uses
// a human-readable ConsoleWriter; "json" writes one JSON object per line.
func New(cfg types.LogConfig, out io.Writer) (*log.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var w log.Writer
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		w = &log.ConsoleWriter{Writer: out}
	case "json":
		w = &log.IOWriter{Writer: out}
	default:
		return nil, fmt.Errorf("unknown log format %q: use console or json", cfg.Format)
	}

	return &log.Logger{Level: lvl, Writer: w}, nil
}

// Discard returns a logger that drops everything. Tests use it when log
// output is not under test.
func Discard() *log.Logger {
	return &log.Logger{Level: log.PanicLevel, Writer: &log.IOWriter{Writer: io.Discard}}
}
