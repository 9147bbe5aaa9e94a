// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"fillmore-labs.com/pysort/analyzer"
)

// Watch processes the given paths once, then keeps re-checking files as
// they change until the context is canceled. Files written by the fixer
// itself produce no further events of interest since the rewrite is
// idempotent.
func (r *Runner) Watch(ctx context.Context, paths []string) error {
	if _, err := r.Run(ctx, paths); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	for _, path := range paths {
		if err := watchTree(watcher, path); err != nil {
			return err
		}
	}

	a, err := analyzer.New(r.opts.Analyzer...)
	if err != nil {
		return err
	}

	if err := a.LoadUsage(ctx); err != nil {
		return err
	}

	r.opts.Log.Info("watching for changes", zap.Strings("paths", paths))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			r.handleEvent(ctx, a, watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			r.opts.Log.Warn("watch error", zap.Error(err))
		}
	}
}

// handleEvent re-checks a changed Python file and tracks new directories.
func (r *Runner) handleEvent(ctx context.Context, a *analyzer.Analyzer, watcher *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	path := event.Name
	if excluded(path, r.opts.Exclude) || strings.HasSuffix(path, ".bak") {
		return
	}

	if event.Has(fsnotify.Create) {
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			if !skipDir(filepath.Base(path)) {
				_ = watcher.Add(path)
			}

			return
		}
	}

	if !strings.HasSuffix(path, ".py") {
		return
	}

	if err := r.processFile(ctx, a, path); err != nil {
		r.opts.Log.Warn("recheck failed", zap.String("path", path), zap.Error(err))
	}
}

// watchTree registers a path and, for directories, all subdirectories.
func watchTree(watcher *fsnotify.Watcher, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !fi.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if skipDir(d.Name()) {
			return filepath.SkipDir
		}

		return watcher.Add(p)
	})
}
