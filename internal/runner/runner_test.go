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

package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "fillmore-labs.com/pysort/internal/runner"
)

const unsorted = `def run():
    pass


def build():
    pass
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	return root
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.py":        "",
		"sub/b.py":    "",
		"sub/skip.py": "",
		"venv/c.py":   "",
		"README.md":   "",
	})

	files, err := Discover([]string{root}, []string{"**/skip.py"})
	if err != nil {
		t.Fatalf("Failed to discover files: %v", err)
	}

	want := []string{
		filepath.Join(root, "a.py"),
		filepath.Join(root, "sub", "b.py"),
	}

	if len(files) != len(want) {
		t.Fatalf("Got %v, expected %v", files, want)
	}

	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Got %q, expected %q", files[i], want[i])
		}
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"a.py": ""})
	path := filepath.Join(root, "a.py")

	files, err := Discover([]string{path}, nil)
	if err != nil {
		t.Fatalf("Failed to discover files: %v", err)
	}

	if len(files) != 1 || files[0] != path {
		t.Errorf("Got %v, expected [%s]", files, path)
	}
}

func TestRunCheck(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"app.py": unsorted})

	var out bytes.Buffer

	r := New(Options{Out: &out, Jobs: 2})

	sum, err := r.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Failed to run: %v", err)
	}

	if sum.Files != 1 || sum.Findings == 0 || sum.Fixed != 0 {
		t.Errorf("Got summary %+v, expected findings for one file", sum)
	}

	if !strings.Contains(out.String(), "W9001(unsorted-functions)") {
		t.Errorf("Got output:\n%s", out.String())
	}
}

func TestRunFix(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"app.py": unsorted})
	path := filepath.Join(root, "app.py")

	var out bytes.Buffer

	r := New(Options{Out: &out, Fix: true})

	sum, err := r.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Failed to run: %v", err)
	}

	if sum.Fixed != 1 {
		t.Errorf("Got summary %+v, expected one fixed file", sum)
	}

	want := `def build():
    pass


def run():
    pass
`

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read result: %v", err)
	}

	if string(content) != want {
		t.Errorf("Got:\n%s\nExpected:\n%s", content, want)
	}

	// default configuration keeps a backup
	if backup, err := os.ReadFile(path + ".bak"); err != nil || string(backup) != unsorted {
		t.Errorf("Backup mismatch: %v", err)
	}

	if !strings.Contains(out.String(), "fixed") {
		t.Errorf("Got output:\n%s", out.String())
	}
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"app.py": unsorted})
	path := filepath.Join(root, "app.py")

	var out bytes.Buffer

	r := New(Options{Out: &out, Fix: true, DryRun: true})

	sum, err := r.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Failed to run: %v", err)
	}

	if sum.Fixed != 1 {
		t.Errorf("Got summary %+v, expected one would-be-fixed file", sum)
	}

	if content, _ := os.ReadFile(path); string(content) != unsorted {
		t.Error("Dry run modified the file")
	}

	if !strings.Contains(out.String(), "would fix") {
		t.Errorf("Got output:\n%s", out.String())
	}
}
