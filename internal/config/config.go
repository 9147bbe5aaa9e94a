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

// Package config resolves the layered tool configuration: built-in
// defaults, an optional user file and an optional per-project file,
// later layers overriding earlier ones field by field.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fillmore-labs.com/pysort/internal/category"
)

// Behavior represents the binary feature switches.
type Behavior uint8

const (
	// EnableCategories activates multi-category classification; when
	// disabled only the public/private split applies.
	EnableCategories Behavior = 1 << iota

	// EnforceSectionHeaders validates declarations against the section
	// header comments covering them.
	EnforceSectionHeaders

	// RequireSectionHeaders escalates a missing header over a populated
	// category to a finding.
	RequireSectionHeaders

	// AllowEmptySections permits headers whose category has no members.
	AllowEmptySections

	// AddSectionHeaders makes the fixer insert missing headers.
	AddSectionHeaders

	// WriteBackup makes the fixer keep a .bak copy of rewritten files.
	WriteBackup
)

// ProjectFile is the per-project configuration file name, looked up
// upward from the working directory.
const ProjectFile = "pysort.yaml"

// Config is the fully resolved configuration.
type Config struct {
	// Behavior holds the binary switches.
	Behavior BitMask[Behavior]

	// Preset names the built-in category rule set.
	Preset string

	// Overrides adjust or extend the preset's categories.
	Overrides []category.Override

	// CategorySorting replaces the default sort mode of every preset
	// category and of new override categories; empty keeps the preset's
	// modes. A per-category override sort still wins.
	CategorySorting category.SortMode

	// IgnoreDecorators lists decorator patterns whose declarations keep
	// their position.
	IgnoreDecorators []string

	// PublicPatterns extends the entry-point names exempt from
	// should-be-private advice.
	PublicPatterns []string

	// Exclude lists glob patterns for paths to skip during discovery.
	Exclude []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Behavior: NewBitMask(EnableCategories, AllowEmptySections, WriteBackup),
		Preset:   category.PresetDefault,
	}
}

// RuleSet builds the category rule set the configuration describes.
func (c Config) RuleSet() (*category.RuleSet, error) {
	return category.NewWithSort(c.Preset, c.CategorySorting, c.Overrides)
}

// Settings is the on-disk configuration shape. Pointer fields
// distinguish "explicitly set" from "absent", so layered files only
// override what they mention.
type Settings struct {
	Preset           *string             `yaml:"preset"`
	Categories       []category.Override `yaml:"categories"`
	CategorySorting  *category.SortMode  `yaml:"category-sorting"`
	EnableCategories *bool               `yaml:"enable-method-categories"`
	EnforceHeaders   *bool               `yaml:"enforce-section-headers"`
	RequireHeaders   *bool               `yaml:"require-section-headers"`
	AllowEmpty       *bool               `yaml:"allow-empty-sections"`
	AddHeaders       *bool               `yaml:"add-section-headers"`
	Backup           *bool               `yaml:"backup"`
	IgnoreDecorators []string            `yaml:"ignore-decorators"`
	PublicPatterns   []string            `yaml:"public-api-patterns"`
	Exclude          []string            `yaml:"exclude"`
}

// Merge applies the explicitly set fields onto cfg.
func (s Settings) Merge(cfg *Config) {
	if s.Preset != nil {
		cfg.Preset = *s.Preset
	}

	if len(s.Categories) > 0 {
		cfg.Overrides = append(cfg.Overrides, s.Categories...)
	}

	if s.CategorySorting != nil {
		cfg.CategorySorting = *s.CategorySorting
	}

	setFlag(&cfg.Behavior, EnableCategories, s.EnableCategories)
	setFlag(&cfg.Behavior, EnforceSectionHeaders, s.EnforceHeaders)
	setFlag(&cfg.Behavior, RequireSectionHeaders, s.RequireHeaders)
	setFlag(&cfg.Behavior, AllowEmptySections, s.AllowEmpty)
	setFlag(&cfg.Behavior, AddSectionHeaders, s.AddHeaders)
	setFlag(&cfg.Behavior, WriteBackup, s.Backup)

	cfg.IgnoreDecorators = append(cfg.IgnoreDecorators, s.IgnoreDecorators...)
	cfg.PublicPatterns = append(cfg.PublicPatterns, s.PublicPatterns...)
	cfg.Exclude = append(cfg.Exclude, s.Exclude...)
}

func setFlag(mask *BitMask[Behavior], flag Behavior, value *bool) {
	if value != nil {
		mask.Set(flag, *value)
	}
}

// Load resolves the configuration from defaults plus the given files,
// in order. Missing files are skipped; a present but malformed file is
// an error.
func Load(paths ...string) (Config, error) {
	cfg := Default()

	for _, path := range paths {
		if path == "" {
			continue
		}

		settings, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return Config{}, err
		}

		settings.Merge(&cfg)
	}

	return cfg, nil
}

// LoadFile reads and decodes one settings file.
func LoadFile(path string) (Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(content, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return settings, nil
}

// FindProject walks upward from dir looking for the project file.
// Returns "" when none exists up to the filesystem root.
func FindProject(dir string) string {
	for {
		path := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}
