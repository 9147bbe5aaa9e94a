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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fillmore-labs.com/pysort/analyzer"
	"fillmore-labs.com/pysort/analyzer/level"
	"fillmore-labs.com/pysort/internal/config"
	"fillmore-labs.com/pysort/internal/privacy"
	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/runner"
)

func (a *app) newPrivacyCmd() *cobra.Command {
	var (
		mode = level.PrivacyReport
		root string
	)

	cmd := &cobra.Command{
		Use:   "privacy [paths...]",
		Short: "Report public functions that should be private, optionally renaming them",
		Long: `privacy builds a cross-module usage graph over the project and reports
public functions no other module imports. With --privacy=fix, candidates
whose every reference is textually safe are renamed to their underscore
form.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == level.PrivacyOff {
				return nil
			}

			return a.runPrivacy(cmd.Context(), args, root, mode)
		},
	}

	cmd.Flags().Var(&mode, "privacy", "privacy analysis: off, report or fix")
	cmd.Flags().StringVar(&root, "project-root", ".", "project tree for the usage graph")

	return cmd
}

// runPrivacy analyzes each file against the project usage graph.
func (a *app) runPrivacy(ctx context.Context, paths []string, root string, mode level.Privacy) error {
	an, err := analyzer.New(analyzer.WithConfig(a.cfg), analyzer.WithProjectRoot(root))
	if err != nil {
		return err
	}

	if err := an.LoadUsage(ctx); err != nil {
		return err
	}

	files, err := runner.Discover(paths, a.cfg.Exclude)
	if err != nil {
		return err
	}

	pa := privacy.NewAnalyzer()
	parser := pysrc.NewParser()
	renamed := 0

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		mod, err := parser.Parse(ctx, content)
		if err != nil {
			return err
		}

		mod.Path = file

		candidates, err := pa.Candidates(ctx, mod, content, an.Detector(file))
		if err != nil {
			return err
		}

		if len(candidates) == 0 {
			continue
		}

		fmt.Print(privacy.Report(file, candidates))

		if mode != level.PrivacyFix {
			continue
		}

		n, err := privacy.ApplyFile(file, content, candidates, a.cfg.Behavior.Enabled(config.WriteBackup))
		if err != nil {
			return err
		}

		if n == 0 {
			continue
		}

		renamed += n

		a.log.Info("renamed functions", zap.String("path", file), zap.Int("count", n))
	}

	if renamed > 0 {
		fmt.Printf("renamed %d function(s)\n", renamed)
	}

	return nil
}
