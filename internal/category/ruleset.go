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

// Package category defines the categorization rule system: named,
// ordered categories with declarative matching rules, and the classifier
// that assigns every declaration to exactly one of them.
package category

import (
	"errors"
	"fmt"
	"sort"
)

// Configuration errors surfaced before any scope is processed.
var (
	// ErrUnknownPreset is returned for an unrecognized preset name.
	ErrUnknownPreset = errors.New("unknown framework preset")

	// ErrOrdinalCollision is returned when two categories claim the same ordinal.
	ErrOrdinalCollision = errors.New("colliding category ordinals")

	// ErrDuplicateName is returned when two categories share a name.
	ErrDuplicateName = errors.New("duplicate category name")

	// ErrMultipleDefaults is returned when more than one category carries the default rule.
	ErrMultipleDefaults = errors.New("multiple categories with default rule")

	// ErrInvalidSortMode is returned for an unrecognized sort mode.
	ErrInvalidSortMode = errors.New("invalid sort mode")
)

// SortMode controls ordering of declarations inside one category.
type SortMode string

// Supported sort modes. Declaration order exists for categories like
// lifecycle hooks where conventional ordering, not alphabetical, is correct.
const (
	SortAlphabetical SortMode = "alphabetical"
	SortDeclaration  SortMode = "declaration-order"
)

// Valid reports whether m is a recognized sort mode.
func (m SortMode) Valid() bool {
	return m == SortAlphabetical || m == SortDeclaration
}

// Category is one named partition of declarations. Categories are
// configured once per run and immutable thereafter.
type Category struct {
	// Name uniquely identifies the category within its rule set.
	Name string

	// Header is the display text used for section comments,
	// e.g. "# Private methods".
	Header string

	// Sort selects alphabetical or declaration-order sorting.
	Sort SortMode

	// AllowEmpty permits a section header with no members.
	AllowEmpty bool

	// RequireHeader escalates a missing header to a violation.
	RequireHeader bool

	// Rules are the matching rules, owned by this category.
	Rules []Rule
}

// RuleSet is an ordered, validated list of categories. The position of a
// category is its ordinal: the required relative order of declarations.
type RuleSet struct {
	categories []Category
	ordinals   map[string]int
}

// newRuleSet validates the category list and builds the ordinal index.
func newRuleSet(categories []Category) (*RuleSet, error) {
	ordinals := make(map[string]int, len(categories))

	defaults := 0

	for i, c := range categories {
		if _, ok := ordinals[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}

		ordinals[c.Name] = i

		for _, r := range c.Rules {
			if r.kind() == kindDefault {
				defaults++
			}
		}
	}

	if defaults > 1 {
		return nil, ErrMultipleDefaults
	}

	return &RuleSet{categories: categories, ordinals: ordinals}, nil
}

// Categories returns the categories in ordinal order.
func (s *RuleSet) Categories() []Category { return s.categories }

// Len returns the number of configured categories.
func (s *RuleSet) Len() int { return len(s.categories) }

// Ordinal returns the position of a category. Unknown names, including
// the reserved uncategorized name, sort after every configured category.
func (s *RuleSet) Ordinal(name string) int {
	if i, ok := s.ordinals[name]; ok {
		return i
	}

	return len(s.categories)
}

// Lookup returns the category definition for a name.
func (s *RuleSet) Lookup(name string) (Category, bool) {
	i, ok := s.ordinals[name]
	if !ok {
		return Category{}, false
	}

	return s.categories[i], true
}

// ByHeader resolves an exact, case-sensitive header text to its category
// name. Used by the section header scanner; fuzzy matching is deliberately
// unsupported to keep the signal unambiguous.
func (s *RuleSet) ByHeader(text string) (string, bool) {
	for _, c := range s.categories {
		if c.Header != "" && c.Header == text {
			return c.Name, true
		}
	}

	return "", false
}

// SortModeFor returns the sort mode of a category, defaulting to
// declaration order for unknown names so uncategorized members are
// never reshuffled.
func (s *RuleSet) SortModeFor(name string) SortMode {
	if c, ok := s.Lookup(name); ok {
		return c.Sort
	}

	return SortDeclaration
}

// Override adjusts or adds one category on top of a preset. Pointer
// fields distinguish "explicitly set" from "inherit from the preset".
type Override struct {
	// Name identifies the category to adjust; an unknown name creates a
	// new category.
	Name string `yaml:"name"`

	// Ordinal places a new or existing category at an explicit position.
	Ordinal *int `yaml:"ordinal,omitempty"`

	// Header replaces the section header text.
	Header *string `yaml:"header,omitempty"`

	// Sort replaces the sort mode.
	Sort *SortMode `yaml:"sort,omitempty"`

	// AllowEmpty replaces the empty-section policy.
	AllowEmpty *bool `yaml:"allow-empty,omitempty"`

	// RequireHeader replaces the header requirement.
	RequireHeader *bool `yaml:"require-header,omitempty"`

	// Names, Decorators and Patterns replace the matching rules when
	// any of them is non-empty.
	Names      []string `yaml:"names,omitempty"`
	Decorators []string `yaml:"decorators,omitempty"`
	Patterns   []string `yaml:"patterns,omitempty"`

	// Default marks this category as the fallback for unmatched
	// declarations.
	Default *bool `yaml:"default,omitempty"`
}

// New builds a rule set from a preset name and user overrides. An empty
// preset name selects the two-category public/private default. Explicit
// override entries win; unspecified fields inherit from the preset. New
// categories are appended at the end unless an explicit ordinal is given.
func New(preset string, overrides []Override) (*RuleSet, error) {
	return NewWithSort(preset, "", overrides)
}

// NewWithSort builds a rule set like [New], additionally applying a
// configuration-wide default sort mode to every preset category and to
// new override categories. A per-category override sort still wins; an
// empty mode keeps the preset's sorts.
func NewWithSort(preset string, defaultSort SortMode, overrides []Override) (*RuleSet, error) {
	if defaultSort != "" && !defaultSort.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortMode, defaultSort)
	}

	categories, err := presetCategories(preset)
	if err != nil {
		return nil, err
	}

	if defaultSort != "" {
		for i := range categories {
			categories[i].Sort = defaultSort
		}
	}

	categories, err = applyOverrides(categories, overrides, defaultSort)
	if err != nil {
		return nil, err
	}

	return newRuleSet(categories)
}

// applyOverrides merges user overrides onto the preset categories.
func applyOverrides(categories []Category, overrides []Override, defaultSort SortMode) ([]Category, error) {
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c.Name] = i
	}

	// position holds explicit ordinals requested by overrides,
	// keyed by category name.
	position := make(map[string]int)

	for _, o := range overrides {
		i, ok := index[o.Name]
		if !ok {
			mode := SortAlphabetical
			if defaultSort != "" {
				mode = defaultSort
			}

			categories = append(categories, Category{Name: o.Name, Sort: mode})
			i = len(categories) - 1
			index[o.Name] = i
		}

		c := &categories[i]
		mergeOverride(c, o)

		if o.Ordinal != nil {
			position[o.Name] = *o.Ordinal
		}
	}

	return reorder(categories, position)
}

// mergeOverride applies the explicitly set fields of one override.
func mergeOverride(c *Category, o Override) {
	if o.Header != nil {
		c.Header = *o.Header
	}

	if o.Sort != nil {
		c.Sort = *o.Sort
	}

	if o.AllowEmpty != nil {
		c.AllowEmpty = *o.AllowEmpty
	}

	if o.RequireHeader != nil {
		c.RequireHeader = *o.RequireHeader
	}

	if len(o.Names) > 0 || len(o.Decorators) > 0 || len(o.Patterns) > 0 || o.Default != nil {
		var rules []Rule

		if len(o.Names) > 0 {
			rules = append(rules, NameListRule{Names: o.Names})
		}

		if len(o.Decorators) > 0 {
			rules = append(rules, DecoratorRule{Patterns: o.Decorators})
		}

		if len(o.Patterns) > 0 {
			rules = append(rules, NamePatternRule{Patterns: o.Patterns})
		}

		if o.Default != nil && *o.Default {
			rules = append(rules, DefaultRule{})
		}

		c.Rules = rules
	}
}

// reorder applies explicit ordinals, keeping the relative order of all
// other categories. Two categories claiming the same ordinal is a
// configuration error.
func reorder(categories []Category, position map[string]int) ([]Category, error) {
	if len(position) == 0 {
		return categories, nil
	}

	claimed := make(map[int]string, len(position))
	for name, ordinal := range position {
		if other, ok := claimed[ordinal]; ok {
			return nil, fmt.Errorf("%w: %q and %q both at %d", ErrOrdinalCollision, other, name, ordinal)
		}

		claimed[ordinal] = name
	}

	original := make(map[string]int, len(categories))
	for i, c := range categories {
		original[c.Name] = i
	}

	sorted := make([]Category, len(categories))
	copy(sorted, categories)

	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i].Name, position, original) < rank(sorted[j].Name, position, original)
	})

	return sorted, nil
}

// rank orders categories by explicit ordinal when given, scaled original
// position otherwise, so explicit ordinals interleave predictably.
func rank(name string, position, original map[string]int) int {
	if p, ok := position[name]; ok {
		return p*2 - 1
	}

	return original[name] * 2
}
