// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch.go - Re-run a prediction when the document file changes.
package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle is how long a file must stay quiet before it is re-read.
// Editors often save in several writes.
const watchSettle = 150 * time.Millisecond

// watchFile calls run once, then again after every change to path, until
// ctx is done. The parent directory is watched so that editors which
// replace the file on save are followed.
func watchFile(ctx context.Context, path string, run func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	log.Printf("WATCH_START | path=%s", abs)

	run()

	settle := time.NewTimer(watchSettle)
	if !settle.Stop() {
		<-settle.C
	}
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				settle.Reset(watchSettle)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("WATCH_ERROR | path=%s err=%v", abs, err)

		case <-settle.C:
			log.Printf("WATCH_CHANGED | path=%s", abs)
			run()
		}
	}
}
