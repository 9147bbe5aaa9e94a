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

package category

import "fmt"

// Preset names.
const (
	// PresetDefault is the two-category public/private scheme.
	PresetDefault = "default"

	// PresetPytest is fixture-aware: fixtures, then tests, then helpers.
	PresetPytest = "pytest"

	// PresetLifecycle places lifecycle hooks first, in declaration order.
	PresetLifecycle = "lifecycle"
)

// presetCategories returns the base category list for a preset name.
// The empty name selects the default preset.
func presetCategories(preset string) ([]Category, error) {
	switch preset {
	case "", PresetDefault:
		return defaultCategories(), nil

	case PresetPytest:
		return pytestCategories(), nil

	case PresetLifecycle:
		return lifecycleCategories(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
}

// defaultCategories implements the binary public/private convention.
// Dunder names are claimed by the public category's pattern rule before
// the private prefix rule can see them, matching the convention that
// special methods are not private.
func defaultCategories() []Category {
	return []Category{
		{
			Name:   "public_methods",
			Header: "# Public methods",
			Sort:   SortAlphabetical,
			Rules: []Rule{
				NamePatternRule{Patterns: []string{"__*__"}},
				DefaultRule{},
			},
		},
		{
			Name:   "private_methods",
			Header: "# Private methods",
			Sort:   SortAlphabetical,
			Rules: []Rule{
				NamePatternRule{Patterns: []string{"_*"}},
			},
		},
	}
}

// pytestCategories is the fixture-aware preset for test modules.
func pytestCategories() []Category {
	return []Category{
		{
			Name:   "fixtures",
			Header: "# Fixtures",
			Sort:   SortAlphabetical,
			Rules: []Rule{
				DecoratorRule{Patterns: []string{"@pytest.fixture", "@fixture"}},
			},
		},
		{
			Name:   "test_methods",
			Header: "# Test methods",
			Sort:   SortAlphabetical,
			Rules: []Rule{
				NamePatternRule{Patterns: []string{"test_*"}},
			},
		},
		{
			Name:   "public_methods",
			Header: "# Public methods",
			Sort:   SortAlphabetical,
			Rules: []Rule{
				NamePatternRule{Patterns: []string{"__*__"}},
				DefaultRule{},
			},
		},
		{
			Name:   "private_methods",
			Header: "# Private methods",
			Sort:   SortAlphabetical,
			Rules: []Rule{
				NamePatternRule{Patterns: []string{"_*"}},
			},
		},
	}
}

// lifecycleCategories keeps framework lifecycle hooks first and in
// conventional declaration order; the comparator never reorders them.
func lifecycleCategories() []Category {
	return []Category{
		{
			Name:       "lifecycle",
			Header:     "# Lifecycle",
			Sort:       SortDeclaration,
			AllowEmpty: true,
			Rules: []Rule{
				NameListRule{Names: []string{
					"__new__", "__init__", "__post_init__", "__del__",
					"setUp", "tearDown", "setUpClass", "tearDownClass",
					"setup_method", "teardown_method",
				}},
			},
		},
		{
			Name:   "public_methods",
			Header: "# Public methods",
			Sort:   SortAlphabetical,
			Rules: []Rule{
				NamePatternRule{Patterns: []string{"__*__"}},
				DefaultRule{},
			},
		},
		{
			Name:   "private_methods",
			Header: "# Private methods",
			Sort:   SortAlphabetical,
			Rules: []Rule{
				NamePatternRule{Patterns: []string{"_*"}},
			},
		},
	}
}
