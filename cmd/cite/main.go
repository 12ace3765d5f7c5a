// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command cite is the operator CLI for the citation service.
//
// It drives the same services as the web shell: probing the service,
// populating a working set, registering sources, and generating citations.
// Connection settings default to the web shell's environment variables.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/taibuivan/citely/internal/platform/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if err := newRootCommand(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}
