// Copyright (c) 2026 Hopelink
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	instance    zerolog.Logger
	once        sync.Once
	initialized bool
)

// Init initialises the singleton diagnostic logger. Safe to call multiple
// times; only the first call has any effect. Output is human-readable
// console text, since the consumer is an operator at a terminal.
func Init(level string, out io.Writer) zerolog.Logger {
	once.Do(func() {
		if out == nil {
			out = os.Stderr
		}
		lvl := parseLevel(level)
		instance = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(lvl).
			With().
			Timestamp().
			Logger()
		initialized = true
	})
	return instance
}

// Get returns the singleton logger, initialising it at info level if Init
// has not run yet.
func Get() zerolog.Logger {
	if !initialized {
		return Init("info", nil)
	}
	return instance
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
