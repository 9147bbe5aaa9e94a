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

// Package runner drives the analyzer over file sets: discovery,
// parallel checking and fixing, and watch mode.
package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/pysort/analyzer"
	"fillmore-labs.com/pysort/internal/report"
	"fillmore-labs.com/pysort/internal/usage"
)

// Options configure a [Runner].
type Options struct {
	// Analyzer configures the per-worker analyzer instances.
	Analyzer analyzer.Options

	// Exclude lists glob patterns for paths to skip.
	Exclude []string

	// Jobs bounds the worker count; zero means GOMAXPROCS.
	Jobs int

	// Fix rewrites files instead of only reporting.
	Fix bool

	// DryRun reports what Fix would change without writing.
	DryRun bool

	// Out receives the findings; defaults to discarding them.
	Out io.Writer

	// Log receives progress and error diagnostics.
	Log *zap.Logger
}

// Summary aggregates one run.
type Summary struct {
	// Files is the number of files processed.
	Files int

	// Findings is the total finding count.
	Findings int

	// Fixed is the number of files rewritten (or, in a dry run, that
	// would be rewritten).
	Fixed int
}

// Runner executes check and fix runs over discovered files.
type Runner struct {
	opts Options

	mu  sync.Mutex
	sum Summary
}

// New creates a runner.
func New(opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}

	return &Runner{opts: opts}
}

// Run discovers Python files below the given paths and processes them
// in parallel. The shared usage graph is built once up front.
func (r *Runner) Run(ctx context.Context, paths []string) (Summary, error) {
	files, err := r.discover(paths)
	if err != nil {
		return Summary{}, err
	}

	r.opts.Log.Info("processing files", zap.Int("count", len(files)), zap.Int("jobs", r.opts.Jobs))

	graph, err := r.buildGraph(ctx)
	if err != nil {
		return Summary{}, err
	}

	g, ctx := errgroup.WithContext(ctx)
	queue := make(chan string)

	g.Go(func() error {
		defer close(queue)

		for _, file := range files {
			select {
			case queue <- file:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return nil
	})

	for range r.opts.Jobs {
		g.Go(func() error {
			a, err := analyzer.New(r.opts.Analyzer...)
			if err != nil {
				return err
			}

			a.UseGraph(graph)

			for file := range queue {
				if err := r.processFile(ctx, a, file); err != nil {
					return err
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sum, nil
}

// buildGraph loads the usage graph once, for sharing across workers.
func (r *Runner) buildGraph(ctx context.Context) (*usage.Graph, error) {
	a, err := analyzer.New(r.opts.Analyzer...)
	if err != nil {
		return nil, err
	}

	if err := a.LoadUsage(ctx); err != nil {
		return nil, err
	}

	return a.Graph(), nil
}

// processFile checks or fixes one file and records the outcome.
func (r *Runner) processFile(ctx context.Context, a *analyzer.Analyzer, path string) error {
	findings, err := a.CheckFile(ctx, path)
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}

	fixed := false

	if r.opts.Fix && len(findings) > 0 {
		fixed, err = a.FixFile(ctx, path, r.opts.DryRun)
		if err != nil {
			return err
		}
	}

	r.record(path, findings, fixed)

	return nil
}

// record prints the findings and updates the summary.
func (r *Runner) record(path string, findings []report.Finding, fixed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sum.Files++
	r.sum.Findings += len(findings)

	if fixed {
		r.sum.Fixed++
	}

	for _, f := range findings {
		fmt.Fprintf(r.opts.Out, "%s:%d: %s %s\n", path, f.Line, f.Code, f.Message)
	}

	if fixed {
		verb := "fixed"
		if r.opts.DryRun {
			verb = "would fix"
		}

		fmt.Fprintf(r.opts.Out, "%s: %s\n", path, verb)
	}
}

// discover expands the given paths into the list of Python files to
// process, honoring the exclude patterns.
func (r *Runner) discover(paths []string) ([]string, error) {
	return Discover(paths, r.opts.Exclude)
}

// Discover expands paths into the Python files below them, skipping
// excluded paths and conventional non-source directories.
func Discover(paths, exclude []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !fi.IsDir() {
			if strings.HasSuffix(path, ".py") && !excluded(path, exclude) {
				files = append(files, path)
			}

			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if skipDir(d.Name()) || excluded(p, exclude) {
					return filepath.SkipDir
				}

				return nil
			}

			if strings.HasSuffix(p, ".py") && !excluded(p, exclude) {
				files = append(files, p)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", path, err)
		}
	}

	return files, nil
}

// excluded matches a path against the exclude patterns.
func excluded(path string, patterns []string) bool {
	slashed := filepath.ToSlash(path)

	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}

	return false
}

// skipDir filters directories that never contain project sources.
func skipDir(name string) bool {
	switch name {
	case "__pycache__", "node_modules", "venv", ".venv", "build", "dist":
		return true
	}

	return name != "." && strings.HasPrefix(name, ".")
}
