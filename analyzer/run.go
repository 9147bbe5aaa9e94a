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

package analyzer

import (
	"context"
	"sort"

	"fillmore-labs.com/pysort/internal/category"
	"fillmore-labs.com/pysort/internal/config"
	"fillmore-labs.com/pysort/internal/order"
	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/report"
	"fillmore-labs.com/pysort/internal/rewrite"
	"fillmore-labs.com/pysort/internal/section"
	"fillmore-labs.com/pysort/internal/usage"
)

// LoadUsage builds the cross-module usage graph over the project root.
// Without it the privacy checks stay disabled.
func (a *Analyzer) LoadUsage(ctx context.Context) error {
	if a.root == "" {
		return nil
	}

	builder, err := usage.NewBuilder()
	if err != nil {
		return err
	}

	graph, err := builder.BuildGraph(ctx, a.root)
	if err != nil {
		return err
	}

	a.graph = graph

	return nil
}

// Graph returns the loaded usage graph, or nil.
func (a *Analyzer) Graph() *usage.Graph { return a.graph }

// UseGraph installs a pre-built usage graph. The graph is read-only and
// may be shared between analyzers.
func (a *Analyzer) UseGraph(graph *usage.Graph) { a.graph = graph }

// Detector returns the privacy detector for the module at path.
func (a *Analyzer) Detector(path string) usage.Detector {
	return usage.NewDetector(a.graph, a.root, path, a.cfg.PublicPatterns)
}

// CheckFile parses and checks one Python file.
func (a *Analyzer) CheckFile(ctx context.Context, path string) ([]report.Finding, error) {
	mod, err := a.parser.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}

	return a.CheckModule(mod), nil
}

// CheckModule checks every scope of a parsed module and returns the
// findings in line order.
func (a *Analyzer) CheckModule(mod *pysrc.Module) []report.Finding {
	var findings []report.Finding

	for _, scope := range mod.Scopes() {
		findings = append(findings, a.checkScope(mod, scope)...)
	}

	if a.graph != nil {
		findings = append(findings, a.Detector(mod.Path).Check(mod.Body.Decls)...)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})

	return findings
}

// Fix rewrites Python source into the configured order.
func (a *Analyzer) Fix(ctx context.Context, content []byte) ([]byte, bool, error) {
	return a.fixer.Fix(ctx, content)
}

// FixFile rewrites one file in place, honoring the backup setting.
func (a *Analyzer) FixFile(ctx context.Context, path string, dryRun bool) (bool, error) {
	return a.fixer.FixFile(ctx, path, rewrite.FileOptions{
		DryRun: dryRun,
		Backup: a.cfg.Behavior.Enabled(config.WriteBackup),
	})
}

// checkScope runs the order comparison and section validation for one scope.
func (a *Analyzer) checkScope(mod *pysrc.Module, scope pysrc.Scope) []report.Finding {
	decls := a.sortable(scope.Decls)
	res := order.Check(decls, a.set)

	code := report.UnsortedFunctions
	if scope.Kind == pysrc.ScopeClass {
		code = report.UnsortedMethods
	}

	var findings []report.Finding

	for _, v := range res.Violations {
		if v.Kind == order.CategoryBoundary {
			expected := res.Categories[res.Target[v.Index]]
			findings = append(findings, report.Mixed(v.Decl.Name, v.Decl.DefLine, v.Category, expected))

			continue
		}

		findings = append(findings, report.Unsorted(code, v.Decl.Name, v.Decl.DefLine, v.Expected))
	}

	policy := a.sectionPolicy()
	if policy.Enforce {
		checked := scope
		checked.Decls = decls

		idx := section.ParseHeaders(mod, scope, a.set)
		findings = append(findings, section.Validate(checked, idx, res.Categories, a.set, policy)...)
	}

	return findings
}

// sortable filters out declarations carrying an ignored decorator.
func (a *Analyzer) sortable(decls []pysrc.Declaration) []pysrc.Declaration {
	if len(a.cfg.IgnoreDecorators) == 0 {
		return decls
	}

	kept := make([]pysrc.Declaration, 0, len(decls))

	for _, d := range decls {
		if !a.ignored(d) {
			kept = append(kept, d)
		}
	}

	return kept
}

func (a *Analyzer) ignored(d pysrc.Declaration) bool {
	for _, pattern := range a.cfg.IgnoreDecorators {
		for _, dec := range d.Decorators {
			if category.MatchDecorator(dec, pattern) {
				return true
			}
		}
	}

	return false
}
