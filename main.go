// AI-chat dashboard - a terminal client for the AI-chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/AdamKasp/AI-chat/internal/api"
	"github.com/AdamKasp/AI-chat/internal/config"
	"github.com/AdamKasp/AI-chat/internal/logging"
	"github.com/AdamKasp/AI-chat/internal/store"
	"github.com/AdamKasp/AI-chat/internal/ui"
	"github.com/AdamKasp/AI-chat/internal/watch"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to the config file")
		serverURL  = flag.String("server", "", "service base URL (overrides config)")
		userID     = flag.String("user", "", "user id to select at startup")
		debug      = flag.Bool("debug", false, "enable debug logging")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("ai-chat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*configPath, *serverURL, *userID, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, serverURL, userID string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:           cfg.ServerURL,
		Timeout:           cfg.RequestTimeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})

	coord := store.NewCoordinator(client, store.Options{
		Timeout:        cfg.RequestTimeout(),
		PageLimit:      cfg.PageLimit,
		KeywordLimit:   cfg.Search.KeywordLimit,
		RAGCount:       cfg.Search.RAGCount,
		ScoreThreshold: cfg.Search.ScoreThreshold,
		Model:          cfg.DefaultModel,
		SystemPrompt:   cfg.SystemPrompt,
		InitialUser:    userID,
	})

	// Pin the color profile before any styles render; some terminals
	// misreport their capabilities mid-session.
	lipgloss.SetColorProfile(termenv.ColorProfile())

	program := tea.NewProgram(ui.New(coord), tea.WithAltScreen())

	// Files dropped into the watched directory become uploads.
	if cfg.DropDir != "" {
		watcher, err := watch.New(cfg.DropDir, 500*time.Millisecond)
		if err != nil {
			logger.Warn("drop directory watcher unavailable", "err", err)
		} else {
			defer watcher.Close()
			if err := watcher.Watch(); err != nil {
				logger.Warn("drop directory watch failed", "dir", cfg.DropDir, "err", err)
			} else {
				go func() {
					for dropped := range watcher.Events() {
						program.Send(ui.DroppedFileMsg{Name: dropped.Name, Data: dropped.Data})
					}
				}()
			}
		}
	}

	logger.Info("dashboard starting", "server", cfg.ServerURL, "version", Version)
	_, err = program.Run()
	return err
}
