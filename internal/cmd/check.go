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
	"os"

	"github.com/spf13/cobra"

	"fillmore-labs.com/pysort/internal/runner"
)

func (a *app) newCheckCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report declaration order violations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := runner.New(runner.Options{
				Analyzer: a.analyzerOptions(cmd.Flags().Changed),
				Exclude:  a.cfg.Exclude,
				Jobs:     a.jobs,
				Out:      os.Stdout,
				Log:      a.log,
			})

			if watch {
				return r.Watch(cmd.Context(), args)
			}

			sum, err := r.Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			if sum.Findings > 0 {
				return errFindings
			}

			return nil
		},
	}

	cmd.Flags().Var(&a.headers, "section-headers", "section header validation: off, on or required")
	cmd.Flags().StringSliceVar(&a.ignoreDecorators, "ignore-decorators", nil,
		"decorator patterns whose declarations keep their position")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep re-checking files as they change")

	return cmd
}
