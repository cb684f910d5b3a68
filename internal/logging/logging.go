// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the file-backed diagnostic logger.
//
// The TUI owns stdout and stderr, so diagnostics go to a log file under the
// application home directory instead.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Open creates a logger writing to path, creating parent directories as
// needed. Debug enables debug-level output. The returned closer flushes and
// closes the underlying file. An empty path yields a discard logger.
func Open(path string, debug bool) (*log.Logger, func() error, error) {
	if path == "" {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything. Used as the default when
// no log file is configured and in tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
