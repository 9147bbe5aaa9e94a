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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"fillmore-labs.com/pysort/internal/category"
	. "fillmore-labs.com/pysort/internal/config"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ProjectFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	if !cfg.Behavior.Enabled(EnableCategories) || !cfg.Behavior.Enabled(AllowEmptySections) || !cfg.Behavior.Enabled(WriteBackup) {
		t.Errorf("Got behavior %v, expected categories, empty sections and backups on", cfg.Behavior)
	}

	if cfg.Behavior.Enabled(EnforceSectionHeaders) {
		t.Error("Expected header enforcement off by default")
	}

	if cfg.Preset != category.PresetDefault {
		t.Errorf("Got preset %q, expected %q", cfg.Preset, category.PresetDefault)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	// given
	path := writeConfig(t, t.TempDir(), `
preset: pytest
enforce-section-headers: true
backup: false
ignore-decorators:
  - "@app.route"
categories:
  - name: properties
    ordinal: 0
    header: "# Properties"
    decorators:
      - "@property"
`)

	// when
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// then
	if cfg.Preset != category.PresetPytest {
		t.Errorf("Got preset %q, expected pytest", cfg.Preset)
	}

	if !cfg.Behavior.Enabled(EnforceSectionHeaders) {
		t.Error("Expected header enforcement on")
	}

	if cfg.Behavior.Enabled(WriteBackup) {
		t.Error("Expected backups off")
	}

	// untouched defaults survive the merge
	if !cfg.Behavior.Enabled(EnableCategories) {
		t.Error("Expected categories still on")
	}

	if len(cfg.IgnoreDecorators) != 1 || cfg.IgnoreDecorators[0] != "@app.route" {
		t.Errorf("Got ignored decorators %v, expected [@app.route]", cfg.IgnoreDecorators)
	}

	set, err := cfg.RuleSet()
	if err != nil {
		t.Fatalf("Failed to build rule set: %v", err)
	}

	if got, want := set.Ordinal("properties"), 0; got != want {
		t.Errorf("Got ordinal %d, expected %d", got, want)
	}
}

func TestCategorySorting(t *testing.T) {
	t.Parallel()

	// given
	path := writeConfig(t, t.TempDir(), `
category-sorting: declaration-order
categories:
  - name: extra
    patterns:
      - "x_*"
`)

	// when
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// then
	if got, want := cfg.CategorySorting, category.SortDeclaration; got != want {
		t.Errorf("Got sort mode %q, expected %q", got, want)
	}

	set, err := cfg.RuleSet()
	if err != nil {
		t.Fatalf("Failed to build rule set: %v", err)
	}

	for _, c := range set.Categories() {
		if c.Sort != category.SortDeclaration {
			t.Errorf("Got sort %q for %q, expected declaration order", c.Sort, c.Name)
		}
	}
}

func TestCategorySortingInvalid(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "category-sorting: random\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if _, err := cfg.RuleSet(); err == nil {
		t.Error("Got no error, expected an invalid sort mode failure")
	}
}

func TestLoadLayered(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	user := filepath.Join(dir, "user.yaml")
	if err := os.WriteFile(user, []byte("enforce-section-headers: true\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	project := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(project, []byte("enforce-section-headers: false\npreset: lifecycle\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	// later layers win field by field
	cfg, err := Load(user, project)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Behavior.Enabled(EnforceSectionHeaders) {
		t.Error("Expected the project layer to win")
	}

	if cfg.Preset != category.PresetLifecycle {
		t.Errorf("Got preset %q, expected lifecycle", cfg.Preset)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Preset != category.PresetDefault {
		t.Errorf("Got preset %q, expected the defaults", cfg.Preset)
	}
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "preset: [broken\n")

	if _, err := Load(path); err == nil {
		t.Error("Got no error, expected a parse failure")
	}
}

func TestFindProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, "preset: pytest\n")

	nested := filepath.Join(root, "src", "app")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if got, want := FindProject(nested), filepath.Join(root, ProjectFile); got != want {
		t.Errorf("Got %q, expected %q", got, want)
	}

	if got := FindProject(filepath.Join(t.TempDir(), "elsewhere")); got != "" {
		t.Errorf("Got %q, expected no project file", got)
	}
}
