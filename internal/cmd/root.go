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

// Package cmd wires the pysort command line.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fillmore-labs.com/pysort/analyzer"
	"fillmore-labs.com/pysort/analyzer/level"
	"fillmore-labs.com/pysort/internal/config"
)

// errFindings signals a clean run that reported findings.
var errFindings = errors.New("findings reported")

// app carries the state shared by all subcommands.
type app struct {
	log *zap.Logger
	cfg config.Config

	configPath string
	preset     string
	verbose    bool
	jobs       int
	exclude    []string

	headers          level.Headers
	ignoreDecorators []string
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	a := &app{}

	root := a.newRootCmd()

	if err := root.Execute(); err != nil {
		if errors.Is(err, errFindings) {
			return 1
		}

		fmt.Fprintln(os.Stderr, "Error:", err)

		return 2
	}

	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pysort",
		Short: "Validate and repair the declaration order of Python functions and methods",
		Long: `pysort checks that Python functions and methods are declared in a
configurable category order, alphabetically within each category, and
can rewrite files that are not.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "configuration file (default: pysort.yaml found upward)")
	flags.StringVar(&a.preset, "preset", "", "category preset: default, pytest or lifecycle")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	flags.IntVarP(&a.jobs, "jobs", "j", 0, "parallel workers (default: number of CPUs)")
	flags.StringSliceVar(&a.exclude, "exclude", nil, "glob patterns of paths to skip")

	root.AddCommand(a.newCheckCmd(), a.newFixCmd(), a.newPrivacyCmd())

	return root
}

// setup builds the logger and resolves the layered configuration.
func (a *app) setup() error {
	log, err := newLogger(a.verbose)
	if err != nil {
		return err
	}

	a.log = log

	project := a.configPath
	if project == "" {
		if wd, err := os.Getwd(); err == nil {
			project = config.FindProject(wd)
		}
	}

	cfg, err := config.Load(project)
	if err != nil {
		return err
	}

	if len(a.exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, a.exclude...)
	}

	a.cfg = cfg

	a.log.Debug("configuration resolved",
		zap.String("config", project),
		zap.String("preset", a.cfg.Preset))

	return nil
}

// analyzerOptions translates configuration and flags into analyzer options.
// changed reports whether a named flag was set on the command line.
func (a *app) analyzerOptions(changed func(string) bool) analyzer.Options {
	opts := analyzer.Options{analyzer.WithConfig(a.cfg)}

	if a.preset != "" {
		opts = append(opts, analyzer.WithPreset(a.preset))
	}

	if changed("section-headers") {
		opts = append(opts,
			analyzer.WithSectionHeaders(a.headers != level.HeadersOff),
			analyzer.WithRequireHeaders(a.headers == level.HeadersRequired))
	}

	if len(a.ignoreDecorators) > 0 {
		opts = append(opts, analyzer.WithIgnoreDecorators(a.ignoreDecorators...))
	}

	return opts
}

// newLogger builds a console logger, at debug level when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return log, nil
}
