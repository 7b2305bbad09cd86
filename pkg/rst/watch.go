// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package rst

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AleutianAI/a11ybuild/pkg/logging"
)

// watchDebounce batches the event bursts editors produce on save into
// one rebuild.
const watchDebounce = 500 * time.Millisecond

// Watch rebuilds on every change under root until ctx is cancelled.
// Each change triggers rebuild after a short quiet period; a failing
// rebuild is reported and watching continues.
func Watch(ctx context.Context, root string, rebuild func() error, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	addTree := func(dir string) error {
		return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
	}
	if err := addTree(root); err != nil {
		return err
	}

	logger.Info("watching for changes", "root", root)

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories must be added to the watch set before
			// files land in them.
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(ev.Name); err != nil {
						logger.Warn("cannot watch new directory", "path", ev.Name, "error", err)
					}
				}
			}
			logger.Debug("source change", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			if err := rebuild(); err != nil {
				logger.Error("rebuild failed", "error", err)
			} else {
				logger.Info("rebuild complete")
			}
		}
	}
}
