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

// Package rewrite plans the repair of a scope: an ordered sequence of
// text spans and regenerated section headers. Declaration bodies are
// opaque byte ranges; the planner decides order and header placement,
// never content.
package rewrite

import (
	"strings"

	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/section"
)

// Span is the contiguous source region owned by one declaration: its
// leading comment block (minus any recognized header line), decorators,
// body and trailing attached lines, verbatim.
type Span struct {
	// Index is the declaration's position in the scope's sequence.
	Index int

	// Name is the declaration name, for diagnostics and tests.
	Name string

	// Start and End are the owned line range, inclusive.
	Start, End int

	// Text is the verbatim source of the owned range, excluding
	// recognized header lines and trimmed of trailing blank lines.
	// It always ends with a newline.
	Text string
}

// Carve computes the text span of every declaration in the scope.
//
// A declaration owns the comment block directly above it (a recognized
// header line and anything above it in the same block stay with the
// preceding span), and everything following its body up to the next
// declaration's leading block, mirroring how the attached text has to
// travel when the declaration moves.
func Carve(mod *pysrc.Module, scope pysrc.Scope, idx *section.Index) []Span {
	if len(scope.Decls) == 0 {
		return nil
	}

	headers := headerLines(idx)

	starts := make([]int, len(scope.Decls))
	for i, d := range scope.Decls {
		starts[i] = attachStart(mod, d, headers)
	}

	// Loose lines between the scope's first header and the first
	// declaration belong to nobody; fold them into the first span so
	// nothing is lost when the region is rebuilt.
	if idx != nil {
		for _, r := range idx.Records() {
			if r.Line < starts[0] {
				starts[0] = r.Line
			}
		}
	}

	spans := make([]Span, len(scope.Decls))

	for i, d := range scope.Decls {
		end := d.End
		if i+1 < len(scope.Decls) {
			end = starts[i+1] - 1
		}

		spans[i] = Span{
			Index: i,
			Name:  d.Name,
			Start: starts[i],
			End:   end,
			Text:  carveText(mod, starts[i], end, headers),
		}
	}

	return spans
}

// attachStart walks upward over the contiguous comment block directly
// above the declaration. A recognized header line cuts the block: the
// header itself is regenerated by the planner, and comment lines above
// it were folded into the header record.
func attachStart(mod *pysrc.Module, d pysrc.Declaration, headers map[int]bool) int {
	start := d.Start

	for line := d.Start - 1; line >= 1; line-- {
		text := strings.TrimSpace(mod.Line(line))
		if !strings.HasPrefix(text, "#") {
			break
		}

		if headers[line] {
			break
		}

		start = line
	}

	return start
}

// carveText renders the owned range, skipping header lines and trailing
// blanks. The result always ends with a newline so spans concatenate
// cleanly in any order.
func carveText(mod *pysrc.Module, start, end int, headers map[int]bool) string {
	var b strings.Builder

	for line := start; line <= end && line <= len(mod.Lines); line++ {
		if headers[line] {
			continue
		}

		b.WriteString(mod.Lines[line-1])
	}

	text := trimBlankLines(b.String())

	return text + "\n"
}

// trimBlankLines drops leading and trailing blank lines while keeping
// the indentation of the first real line intact.
func trimBlankLines(text string) string {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 || strings.TrimSpace(text[:i]) != "" {
			break
		}

		text = text[i+1:]
	}

	return strings.TrimRight(text, " \t\r\n")
}

// headerLines collects the line numbers of recognized header comments.
func headerLines(idx *section.Index) map[int]bool {
	if idx == nil {
		return nil
	}

	lines := make(map[int]bool)
	for _, r := range idx.Records() {
		lines[r.Line] = true
	}

	return lines
}
