// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package watch observes a drop directory and emits upload candidates.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// DROP DIRECTORY WATCHER
// =============================================================================

// Dropped is a file picked up from the drop directory, read in full.
type Dropped struct {
	Name string
	Data []byte
}

// Watcher observes a single directory for new or rewritten files and delivers
// them on Events once they have been stable for the debounce window. Files
// still being copied into the directory fire multiple write events; the
// debounce collapses them into one delivery with complete content.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	events   chan Dropped

	mu      sync.Mutex
	pending map[string]time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// maxDropSize caps files read from the drop directory at 10 MiB.
const maxDropSize = 10 << 20

// New creates a watcher for dir. Watch must be called to start delivery.
func New(dir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		events:   make(chan Dropped, 8),
		pending:  make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Events is the delivery channel. It is closed when the watcher stops.
func (w *Watcher) Events() <-chan Dropped {
	return w.events
}

// Watch creates the drop directory if needed and starts the event and
// debounce goroutines.
func (w *Watcher) Watch() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}

	go w.processEvents()
	go w.processPending()

	return nil
}

// Close stops watching and closes the delivery channel.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents records write and create events; deliveries happen from the
// debounce goroutine once a file has settled.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if skipDropped(event.Name) {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = time.Now()
			w.mu.Unlock()

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// processPending delivers files whose last event is older than the debounce.
func (w *Watcher) processPending() {
	defer close(w.events)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			w.mu.Lock()
			var settled []string
			for path, last := range w.pending {
				if now.Sub(last) >= w.debounce {
					settled = append(settled, path)
					delete(w.pending, path)
				}
			}
			w.mu.Unlock()

			for _, path := range settled {
				w.deliver(path)
			}
		}
	}
}

// deliver reads a settled file and sends it. Unreadable or oversized files
// are dropped silently; the directory is a convenience inbox, not a queue
// with delivery guarantees.
func (w *Watcher) deliver(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 || info.Size() > maxDropSize {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	select {
	case w.events <- Dropped{Name: filepath.Base(path), Data: data}:
	case <-w.ctx.Done():
	}
}

// skipDropped filters hidden files and common partial-transfer suffixes.
func skipDropped(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".part", ".tmp", ".crdownload", ".swp":
		return true
	}
	return false
}
