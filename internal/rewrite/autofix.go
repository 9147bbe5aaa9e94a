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

package rewrite

import (
	"context"
	"fmt"
	"os"
	"strings"

	"fillmore-labs.com/pysort/internal/category"
	"fillmore-labs.com/pysort/internal/order"
	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/section"
)

// Fixer rewrites Python sources into the configured declaration order.
// A Fixer is not safe for concurrent use; create one per goroutine.
type Fixer struct {
	parser  *pysrc.Parser
	set     *category.RuleSet
	headers HeaderPolicy
	ignore  []string
}

// NewFixer creates a fixer for the given rule set. Declarations carrying
// a decorator that matches one of the ignore patterns keep their
// position relative to the end of the scope.
func NewFixer(set *category.RuleSet, headers HeaderPolicy, ignoreDecorators []string) *Fixer {
	return &Fixer{
		parser:  pysrc.NewParser(),
		set:     set,
		headers: headers,
		ignore:  ignoreDecorators,
	}
}

// Fix rewrites every scope of the source into target order and reports
// whether anything changed. The module scope is rewritten first, since
// its spans may carry interleaved statements and classes along; class
// bodies follow, re-parsing between scopes so line numbers stay valid.
func (f *Fixer) Fix(ctx context.Context, content []byte) ([]byte, bool, error) {
	changed := false

	for i := 0; ; i++ {
		mod, err := f.parser.Parse(ctx, content)
		if err != nil {
			return nil, false, err
		}

		scopes := mod.Scopes()
		if i >= len(scopes) {
			break
		}

		out := f.fixScope(mod, scopes[i])
		if out != string(content) {
			changed = true
			content = []byte(out)
		}
	}

	return content, changed, nil
}

// FileOptions controls FixFile's side effects.
type FileOptions struct {
	// DryRun reports whether the file would change without writing.
	DryRun bool

	// Backup writes the original content to path + ".bak" before
	// overwriting.
	Backup bool
}

// FixFile rewrites one file in place and reports whether it changed.
func (f *Fixer) FixFile(ctx context.Context, path string, opts FileOptions) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read file: %w", err)
	}

	fixed, changed, err := f.Fix(ctx, content)
	if err != nil {
		return false, fmt.Errorf("fix %s: %w", path, err)
	}

	if !changed || opts.DryRun {
		return changed, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat file: %w", err)
	}

	if opts.Backup {
		if err := os.WriteFile(path+".bak", content, info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("write backup: %w", err)
		}
	}

	if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write file: %w", err)
	}

	return true, nil
}

// fixScope rebuilds one scope's declaration region in target order.
func (f *Fixer) fixScope(mod *pysrc.Module, scope pysrc.Scope) string {
	if len(scope.Decls) == 0 {
		return strings.Join(mod.Lines, "")
	}

	idx := section.ParseHeaders(mod, scope, f.set)
	spans := Carve(mod, scope, idx)

	sortable, excluded := partition(scope.Decls, f.ignore)

	sub := make([]pysrc.Declaration, len(sortable))
	for i, j := range sortable {
		sub[i] = scope.Decls[j]
	}

	res := order.Check(sub, f.set)

	// Map the checked subset back to span indices; excluded declarations
	// keep their relative order at the end of the scope.
	target := make([]int, 0, len(scope.Decls))
	for _, k := range res.Target {
		target = append(target, sortable[k])
	}

	target = append(target, excluded...)

	categories := make([]string, len(scope.Decls))
	for i := range categories {
		categories[i] = category.Uncategorized
	}

	for i, j := range sortable {
		categories[j] = res.Categories[i]
	}

	segments := Plan(spans, target, categories, idx, f.set, f.headers)

	return assemble(mod, scope, spans, segments, idx)
}

// assemble splices the rendered segments over the scope's declaration
// region, leaving everything outside the region untouched.
func assemble(mod *pysrc.Module, scope pysrc.Scope, spans []Span, segments []Segment, idx *section.Index) string {
	headers := headerLines(idx)

	regionStart := spans[0].Start
	spanEnd := spans[len(spans)-1].End

	// Headers past the last declaration are consumed too, so dropped or
	// regenerated ones do not linger below the region.
	regionEnd := spanEnd

	for _, r := range idx.Records() {
		if r.Line > regionEnd {
			regionEnd = r.Line
		}
	}

	sep := "\n\n"
	if scope.Kind == pysrc.ScopeClass {
		sep = "\n"
	}

	indent := declIndent(mod, scope)

	var b strings.Builder

	for line := 1; line < regionStart && line <= len(mod.Lines); line++ {
		b.WriteString(mod.Lines[line-1])
	}

	for i, seg := range segments {
		if i > 0 {
			if seg.Kind == SegmentDecl && segments[i-1].Kind == SegmentHeader && segments[i-1].Category == seg.Category {
				b.WriteString("\n") // one blank line below a header
			} else {
				b.WriteString(sep)
			}
		}

		switch seg.Kind {
		case SegmentHeader:
			b.WriteString(indent)
			b.WriteString(seg.Text)
			b.WriteString("\n")

		case SegmentDecl:
			b.WriteString(seg.Text)
		}
	}

	// Loose trailing lines of consumed headers stay, minus the headers.
	var tail strings.Builder

	for line := spanEnd + 1; line <= regionEnd && line <= len(mod.Lines); line++ {
		if !headers[line] {
			tail.WriteString(mod.Lines[line-1])
		}
	}

	if t := trimBlankLines(tail.String()); t != "" {
		b.WriteString(sep)
		b.WriteString(t)
		b.WriteString("\n")
	}

	for line := regionEnd + 1; line <= len(mod.Lines); line++ {
		b.WriteString(mod.Lines[line-1])
	}

	return b.String()
}

// partition splits declaration indices into sortable and excluded,
// both in source order.
func partition(decls []pysrc.Declaration, ignore []string) (sortable, excluded []int) {
	for i, d := range decls {
		if ignored(d, ignore) {
			excluded = append(excluded, i)
		} else {
			sortable = append(sortable, i)
		}
	}

	return sortable, excluded
}

func ignored(d pysrc.Declaration, ignore []string) bool {
	for _, pattern := range ignore {
		for _, dec := range d.Decorators {
			if category.MatchDecorator(dec, pattern) {
				return true
			}
		}
	}

	return false
}

// declIndent returns the indentation of the scope's first declaration,
// used when generating header comments for class bodies.
func declIndent(mod *pysrc.Module, scope pysrc.Scope) string {
	line := mod.Line(scope.Decls[0].DefLine)
	trimmed := strings.TrimLeft(line, " \t")

	return line[:len(line)-len(trimmed)]
}
