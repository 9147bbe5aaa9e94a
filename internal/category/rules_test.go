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

package category_test

import (
	"testing"

	. "fillmore-labs.com/pysort/internal/category"
)

func TestMatchDecorator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		decorator string
		pattern   string
		want      bool
	}{
		{name: "exact", decorator: "@property", pattern: "@property", want: true},
		{name: "missing_at_in_pattern", decorator: "@property", pattern: "property", want: true},
		{name: "call_arguments_stripped", decorator: `@app.route("/home")`, pattern: "@app.route", want: true},
		{name: "empty_call_stripped", decorator: "@main.command()", pattern: "@main.command", want: true},
		{name: "wildcard_segment", decorator: "@main.command", pattern: "@*.command", want: true},
		{name: "wildcard_stays_in_segment", decorator: "@a.b.command", pattern: "@*.command", want: false},
		{name: "suffix_wildcard", decorator: "@pytest.fixture", pattern: "@pytest.*", want: true},
		{name: "no_prefix_match", decorator: "@property", pattern: "@prop", want: false},
		{name: "different", decorator: "@staticmethod", pattern: "@classmethod", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MatchDecorator(tt.decorator, tt.pattern); got != tt.want {
				t.Errorf("MatchDecorator(%q, %q) = %t, expected %t", tt.decorator, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestRuleMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule Rule
		d    string
		decs []string
		want bool
	}{
		{name: "name_list_hit", rule: NameListRule{Names: []string{"setUp", "tearDown"}}, d: "setUp", want: true},
		{name: "name_list_miss", rule: NameListRule{Names: []string{"setUp"}}, d: "setup", want: false},
		{name: "pattern_prefix", rule: NamePatternRule{Patterns: []string{"test_*"}}, d: "test_login", want: true},
		{name: "pattern_miss", rule: NamePatternRule{Patterns: []string{"test_*"}}, d: "login_test", want: false},
		{name: "decorator", rule: DecoratorRule{Patterns: []string{"@fixture"}}, d: "db", decs: []string{"@fixture"}, want: true},
		{name: "default", rule: DefaultRule{}, d: "anything", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.rule.Matches(decl(tt.d, tt.decs...)); got != tt.want {
				t.Errorf("Got %t, expected %t", got, tt.want)
			}
		})
	}
}
