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

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"fillmore-labs.com/pysort/internal/pysrc"
)

// ruleKind orders rule evaluation: explicit name lists are the most
// specific, the default rule the least. Classification evaluates all
// categories per kind before falling through to the next kind, so a
// category's name-pattern rule beats another category's default rule
// regardless of ordinal.
type ruleKind int

const (
	kindNameList ruleKind = iota
	kindDecorator
	kindNamePattern
	kindDefault
)

// Rule matches declarations for one category. Implementations are pure;
// a rule either matches a declaration or it does not.
type Rule interface {
	Matches(d pysrc.Declaration) bool
	kind() ruleKind
}

// NameListRule matches declarations whose name appears in an explicit list.
type NameListRule struct {
	Names []string
}

// Matches implements [Rule].
func (r NameListRule) Matches(d pysrc.Declaration) bool {
	for _, name := range r.Names {
		if d.Name == name {
			return true
		}
	}

	return false
}

func (NameListRule) kind() ruleKind { return kindNameList }

// DecoratorRule matches declarations carrying a decorator whose literal
// text matches one of the glob patterns.
type DecoratorRule struct {
	Patterns []string
}

// Matches implements [Rule].
func (r DecoratorRule) Matches(d pysrc.Declaration) bool {
	for _, pattern := range r.Patterns {
		for _, decorator := range d.Decorators {
			if MatchDecorator(decorator, pattern) {
				return true
			}
		}
	}

	return false
}

func (DecoratorRule) kind() ruleKind { return kindDecorator }

// NamePatternRule matches declaration names against glob patterns.
// Prefix and suffix rules are expressed as `_*` and `*_test` style globs.
type NamePatternRule struct {
	Patterns []string
}

// Matches implements [Rule].
func (r NamePatternRule) Matches(d pysrc.Declaration) bool {
	for _, pattern := range r.Patterns {
		if ok, err := doublestar.Match(pattern, d.Name); err == nil && ok {
			return true
		}
	}

	return false
}

func (NamePatternRule) kind() ruleKind { return kindNamePattern }

// DefaultRule matches anything not claimed by a more specific rule.
// At most one category in a rule set may carry it.
type DefaultRule struct{}

// Matches implements [Rule].
func (DefaultRule) Matches(pysrc.Declaration) bool { return true }

func (DefaultRule) kind() ruleKind { return kindDefault }

// MatchDecorator matches a literal decorator text against a glob pattern.
//
// Both sides are normalized: a missing '@' prefix on the pattern is added
// and trailing call parentheses are stripped, so "@app.route" matches
// `@app.route("/path")`. A `*` wildcard does not cross attribute dots:
// "@*.command" matches @main.command but not @a.b.command.
func MatchDecorator(decorator, pattern string) bool {
	if !strings.HasPrefix(pattern, "@") {
		pattern = "@" + pattern
	}

	decorator = normalizeDecorator(decorator)
	pattern = normalizeDecorator(pattern)

	if decorator == pattern {
		return true
	}

	// Map attribute dots to path separators so doublestar's `*` stays
	// within one attribute segment.
	ok, err := doublestar.Match(
		strings.ReplaceAll(pattern, ".", "/"),
		strings.ReplaceAll(decorator, ".", "/"),
	)

	return err == nil && ok
}

// normalizeDecorator strips a trailing call argument list, treating
// @main.command() and @main.command("x") as @main.command.
func normalizeDecorator(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 && strings.HasSuffix(s, ")") {
		return s[:i]
	}

	return s
}
