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

// Package section parses section header comments and validates that
// declarations sit under the header their category requires.
package section

import (
	"sort"
	"strings"

	"fillmore-labs.com/pysort/internal/category"
	"fillmore-labs.com/pysort/internal/pysrc"
)

// Record is one recognized section header comment.
type Record struct {
	// Category is the configured category the header text resolves to.
	Category string

	// Line is the header comment's own line (1-based).
	Line int

	// End is the last line the header covers, inclusive. The range runs
	// to the line before the next header or the next non-comment,
	// non-declaration statement in the same scope.
	End int

	// Text is the stripped header text.
	Text string
}

// Index maps source lines to the section header covering them.
// Ranges never overlap within one scope.
type Index struct {
	records []Record
}

// Records returns the recognized headers in line order.
func (x *Index) Records() []Record { return x.records }

// CategoryAt returns the declared category for a line, or "" when no
// header range covers it.
func (x *Index) CategoryAt(line int) string {
	i := sort.Search(len(x.records), func(i int) bool {
		return x.records[i].End >= line
	})

	if i < len(x.records) && x.records[i].Line <= line {
		return x.records[i].Category
	}

	return ""
}

// lineClass is the structural role of one source line within a scope.
type lineClass int

const (
	lineBlank lineClass = iota
	lineComment
	lineDecl
	lineOther
)

// ParseHeaders scans the comment lines of a scope for configured header
// texts and builds the line-to-category interval table.
//
// Recognition is an exact, case-sensitive match of the stripped comment
// text against a category's header text; ordinary documentation comments
// never match. Within one consecutive comment block the last matching
// line wins. When one category is headed twice in a scope the later
// header wins and the earlier line is treated as a plain comment.
func ParseHeaders(mod *pysrc.Module, scope pysrc.Scope, set *category.RuleSet) *Index {
	classes := classifyLines(mod, scope)

	var records []Record

	for line := scope.Start; line <= scope.End && line <= len(mod.Lines); line++ {
		if classes[line] != lineComment {
			continue
		}

		name, ok := set.ByHeader(strings.TrimSpace(mod.Line(line)))
		if !ok {
			continue
		}

		// Later matching line in the same comment block replaces the
		// earlier one; only the line closest to the run is the marker.
		if n := len(records); n > 0 && sameCommentBlock(classes, records[n-1].Line, line) {
			records = records[:n-1]
		}

		records = append(records, Record{Category: name, Line: line, Text: strings.TrimSpace(mod.Line(line))})
	}

	// Deduplicate before closing ranges: a degraded earlier duplicate is
	// a plain comment, so the preceding range must run across its line.
	records = dedupeByCategory(records)

	// Close ranges at the next surviving header or the next plain statement.
	for i := range records {
		end := scope.End
		if end > len(mod.Lines) {
			end = len(mod.Lines)
		}

		if i+1 < len(records) {
			end = records[i+1].Line - 1
		}

		for line := records[i].Line + 1; line <= end; line++ {
			if classes[line] == lineOther {
				end = line - 1

				break
			}
		}

		records[i].End = end
	}

	return &Index{records: records}
}

// classifyLines assigns a structural class to every line of the scope.
func classifyLines(mod *pysrc.Module, scope pysrc.Scope) map[int]lineClass {
	classes := make(map[int]lineClass)

	for line := scope.Start; line <= scope.End && line <= len(mod.Lines); line++ {
		switch text := strings.TrimSpace(mod.Line(line)); {
		case text == "":
			classes[line] = lineBlank

		case strings.HasPrefix(text, "#"):
			classes[line] = lineComment

		default:
			classes[line] = lineOther
		}
	}

	for _, d := range scope.Decls {
		for line := d.Start; line <= d.End; line++ {
			classes[line] = lineDecl
		}
	}

	// The class statement itself is not part of the member region.
	if scope.Kind == pysrc.ScopeClass {
		classes[scope.Start] = lineDecl
	}

	return classes
}

// sameCommentBlock reports whether two comment lines belong to one
// uninterrupted block of comment lines.
func sameCommentBlock(classes map[int]lineClass, a, b int) bool {
	if a > b {
		a, b = b, a
	}

	for line := a; line <= b; line++ {
		if classes[line] != lineComment {
			return false
		}
	}

	return true
}

// dedupeByCategory keeps only the last header per category; an earlier
// duplicate degrades to a plain comment instead of failing the scope.
func dedupeByCategory(records []Record) []Record {
	last := make(map[string]int, len(records))
	for i, r := range records {
		last[r.Category] = i
	}

	kept := records[:0]

	for i, r := range records {
		if last[r.Category] == i {
			kept = append(kept, r)
		}
	}

	return kept
}
