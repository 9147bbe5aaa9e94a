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

package privacy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"fillmore-labs.com/pysort/internal/pysrc"
)

// edit is one single-line splice.
type edit struct {
	line, col int
	old, new  string
}

// Apply renames every safe candidate in content: the definition and all
// recorded references. Unsafe candidates are skipped. Returns the new
// content and the number of functions renamed.
func Apply(content []byte, candidates []Candidate) ([]byte, int) {
	lines := pysrc.SplitLines(content)

	var edits []edit

	renamed := 0

	for _, c := range candidates {
		if !c.Safe() {
			continue
		}

		renamed++

		if e, ok := defEdit(lines, c); ok {
			edits = append(edits, e)
		}

		for _, r := range c.Refs {
			edits = append(edits, edit{line: r.Line, col: r.Col, old: c.Decl.Name, new: c.NewName})
		}
	}

	if renamed == 0 {
		return content, 0
	}

	// Right-to-left per line, so earlier columns stay valid.
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].line != edits[j].line {
			return edits[i].line < edits[j].line
		}

		return edits[i].col > edits[j].col
	})

	for _, e := range edits {
		if e.line < 1 || e.line > len(lines) {
			continue
		}

		lines[e.line-1] = splice(lines[e.line-1], e)
	}

	return []byte(strings.Join(lines, "")), renamed
}

// ApplyFile applies the safe renames to the file at path, preserving its
// permission bits. content must be the bytes the candidates were derived
// from. With backup the original content is kept at path + ".bak".
// Returns the number of functions renamed.
func ApplyFile(path string, content []byte, candidates []Candidate, backup bool) (int, error) {
	fixed, renamed := Apply(content, candidates)
	if renamed == 0 {
		return 0, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	if backup {
		if err := os.WriteFile(path+".bak", content, info.Mode().Perm()); err != nil {
			return 0, fmt.Errorf("write backup: %w", err)
		}
	}

	if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}

	return renamed, nil
}

// defEdit locates the function name on its def line.
func defEdit(lines []string, c Candidate) (edit, bool) {
	n := c.Decl.DefLine
	if n < 1 || n > len(lines) {
		return edit{}, false
	}

	i := strings.Index(lines[n-1], "def "+c.Decl.Name)
	if i < 0 {
		return edit{}, false
	}

	return edit{line: n, col: i + len("def "), old: c.Decl.Name, new: c.NewName}, true
}

// splice replaces old with new at the edit's column, verifying the text
// actually matches before touching the line.
func splice(line string, e edit) string {
	end := e.col + len(e.old)
	if e.col < 0 || end > len(line) || line[e.col:end] != e.old {
		return line
	}

	return line[:e.col] + e.new + line[end:]
}
