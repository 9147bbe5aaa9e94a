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

package privacy_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "fillmore-labs.com/pysort/internal/privacy"
	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/usage"
)

// analyze writes the source as app.py in a fresh project, builds the
// usage graph over it and returns the rename candidates.
func analyze(t *testing.T, src string) (string, []byte, []Candidate) {
	t.Helper()

	ctx := context.Background()
	content := []byte(src)

	root := t.TempDir()
	path := filepath.Join(root, "app.py")

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	b, err := usage.NewBuilder()
	if err != nil {
		t.Fatalf("Failed to create builder: %v", err)
	}

	graph, err := b.BuildGraph(ctx, root)
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}

	mod, err := pysrc.NewParser().Parse(ctx, content)
	if err != nil {
		t.Fatalf("Failed to parse source: %v", err)
	}

	dt := usage.NewDetector(graph, root, path, nil)

	candidates, err := NewAnalyzer().Candidates(ctx, mod, content, dt)
	if err != nil {
		t.Fatalf("Failed to analyze candidates: %v", err)
	}

	return path, content, candidates
}

func TestApplyRename(t *testing.T) {
	t.Parallel()

	// given an internal helper with one call site
	_, content, candidates := analyze(t, `def helper():
    return 1


def main():
    return helper()
`)

	if len(candidates) != 1 || !candidates[0].Safe() {
		t.Fatalf("Got candidates %+v, expected one safe rename", candidates)
	}

	// when
	got, renamed := Apply(content, candidates)

	// then
	if renamed != 1 {
		t.Errorf("Got %d renames, expected 1", renamed)
	}

	want := `def _helper():
    return 1


def main():
    return _helper()
`
	if string(got) != want {
		t.Errorf("Got:\n%s\nExpected:\n%s", got, want)
	}
}

func TestApplySkipsStringMention(t *testing.T) {
	t.Parallel()

	// given a name that also occurs inside a string literal
	_, content, candidates := analyze(t, `def helper():
    return 1


def main():
    return getattr(mod, "helper")
`)

	if len(candidates) != 1 || candidates[0].Safe() {
		t.Fatalf("Got candidates %+v, expected one unsafe candidate", candidates)
	}

	// when
	got, renamed := Apply(content, candidates)

	// then nothing changes
	if renamed != 0 || string(got) != string(content) {
		t.Errorf("Got %d renames:\n%s", renamed, got)
	}
}

func TestApplySkipsNameConflict(t *testing.T) {
	t.Parallel()

	_, content, candidates := analyze(t, `def helper():
    return 1


def _helper():
    return 2
`)

	if len(candidates) != 1 || candidates[0].Safe() {
		t.Fatalf("Got candidates %+v, expected one unsafe candidate", candidates)
	}

	if _, renamed := Apply(content, candidates); renamed != 0 {
		t.Errorf("Got %d renames, expected none", renamed)
	}
}

func TestApplyFile(t *testing.T) {
	t.Parallel()

	// given a fixture with restrictive permissions
	path, content, candidates := analyze(t, `def helper():
    return 1


def main():
    return helper()
`)

	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("Failed to chmod fixture: %v", err)
	}

	// when
	renamed, err := ApplyFile(path, content, candidates, true)
	if err != nil {
		t.Fatalf("Failed to apply renames: %v", err)
	}

	if renamed != 1 {
		t.Errorf("Got %d renames, expected 1", renamed)
	}

	// then the rewrite and the backup keep the original mode
	for _, name := range []string{path, path + ".bak"} {
		info, err := os.Stat(name)
		if err != nil {
			t.Fatalf("Failed to stat %s: %v", name, err)
		}

		if got, want := info.Mode().Perm(), os.FileMode(0o600); got != want {
			t.Errorf("Got mode %v for %s, expected %v", got, name, want)
		}
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read rewrite: %v", err)
	}

	if !strings.Contains(string(got), "def _helper():") {
		t.Errorf("Got:\n%s\nExpected the renamed definition", got)
	}

	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("Failed to read backup: %v", err)
	}

	if string(backup) != string(content) {
		t.Errorf("Got backup:\n%s\nExpected the original content", backup)
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	_, _, candidates := analyze(t, `def helper():
    return 1


def main():
    return helper()
`)

	out := Report("app.py", candidates)

	if !strings.Contains(out, "helper -> _helper (line 1, 1 reference(s))") {
		t.Errorf("Got report:\n%s", out)
	}

	if out := Report("clean.py", nil); !strings.Contains(out, "no privacy candidates") {
		t.Errorf("Got report:\n%s", out)
	}
}
