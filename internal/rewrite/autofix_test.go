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

package rewrite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"fillmore-labs.com/pysort/internal/category"
	. "fillmore-labs.com/pysort/internal/rewrite"
)

func loadArchive(t *testing.T, name string) (input, want []byte) {
	t.Helper()

	archive, err := txtar.ParseFile(filepath.Join("testdata", name+".txtar"))
	if err != nil {
		t.Fatalf("Failed to load archive: %v", err)
	}

	for _, f := range archive.Files {
		switch f.Name {
		case "input.py":
			input = f.Data
		case "want.py":
			want = f.Data
		}
	}

	if input == nil || want == nil {
		t.Fatalf("Archive %s is missing input.py or want.py", name)
	}

	return input, want
}

func TestFixGolden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers HeaderPolicy
		ignore  []string
	}{
		{name: "module_sort"},
		{name: "class_headers", headers: HeaderPolicy{Insert: true, AllowEmpty: true}},
		{name: "ignored_decorators", ignore: []string{"@app.route"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			input, want := loadArchive(t, tt.name)

			set, err := category.New(category.PresetDefault, nil)
			if err != nil {
				t.Fatalf("Failed to build rule set: %v", err)
			}

			f := NewFixer(set, tt.headers, tt.ignore)

			// when
			got, changed, err := f.Fix(context.Background(), input)
			if err != nil {
				t.Fatalf("Failed to fix source: %v", err)
			}

			// then
			if !changed {
				t.Error("Got no change, expected a rewrite")
			}

			if string(got) != string(want) {
				t.Errorf("Got:\n%s\nExpected:\n%s", got, want)
			}

			// Fixing the fixed output is a no-op.
			again, changed, err := f.Fix(context.Background(), got)
			if err != nil {
				t.Fatalf("Failed to re-fix source: %v", err)
			}

			if changed || string(again) != string(got) {
				t.Errorf("Second fix changed the output:\n%s", again)
			}
		})
	}
}

func TestFixSortedIsNoOp(t *testing.T) {
	t.Parallel()

	src := []byte(`def build():
    pass


def run():
    pass
`)

	set, err := category.New(category.PresetDefault, nil)
	if err != nil {
		t.Fatalf("Failed to build rule set: %v", err)
	}

	got, changed, err := NewFixer(set, HeaderPolicy{}, nil).Fix(context.Background(), src)
	if err != nil {
		t.Fatalf("Failed to fix source: %v", err)
	}

	if changed || string(got) != string(src) {
		t.Errorf("Got a change:\n%s", got)
	}
}

func TestFixFile(t *testing.T) {
	t.Parallel()

	input, want := loadArchive(t, "module_sort")

	path := filepath.Join(t.TempDir(), "mod.py")
	if err := os.WriteFile(path, input, 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	set, err := category.New(category.PresetDefault, nil)
	if err != nil {
		t.Fatalf("Failed to build rule set: %v", err)
	}

	f := NewFixer(set, HeaderPolicy{}, nil)

	// Dry run leaves the file untouched.
	changed, err := f.FixFile(context.Background(), path, FileOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Failed dry run: %v", err)
	}

	if !changed {
		t.Error("Got no change, expected the dry run to report one")
	}

	if content, _ := os.ReadFile(path); string(content) != string(input) {
		t.Error("Dry run modified the file")
	}

	// Real run rewrites and backs up.
	if _, err := f.FixFile(context.Background(), path, FileOptions{Backup: true}); err != nil {
		t.Fatalf("Failed to fix file: %v", err)
	}

	if content, _ := os.ReadFile(path); string(content) != string(want) {
		t.Errorf("Got:\n%s\nExpected:\n%s", content, want)
	}

	if backup, err := os.ReadFile(path + ".bak"); err != nil || string(backup) != string(input) {
		t.Errorf("Backup mismatch: %v", err)
	}
}
