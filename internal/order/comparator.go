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

// Package order compares the actual declaration sequence of a scope
// against the policy-derived target order.
package order

import (
	"sort"

	"fillmore-labs.com/pysort/internal/category"
	"fillmore-labs.com/pysort/internal/pysrc"
)

// ViolationKind distinguishes misplacement within a category from
// declarations sitting in the wrong category region. The distinction
// selects the diagnostic message; it does not affect the target order.
type ViolationKind int

const (
	// WrongPosition marks a declaration out of place inside its own
	// category region, typically out of alphabetical order.
	WrongPosition ViolationKind = iota

	// CategoryBoundary marks a declaration sitting in another
	// category's region.
	CategoryBoundary
)

// Violation is one out-of-place declaration.
type Violation struct {
	// Index is the declaration's position in the scope's sequence.
	Index int

	// Decl is the declaration found at Index.
	Decl pysrc.Declaration

	// Kind selects the downstream message.
	Kind ViolationKind

	// Category is the classified category of Decl.
	Category string

	// Expected names the declaration the target order wants at Index.
	Expected string
}

// Result is the outcome of a scope order check.
type Result struct {
	// Sorted is true when the actual sequence equals the target order.
	Sorted bool

	// Target holds indices into the checked declaration list, in the
	// order the policy requires.
	Target []int

	// Categories holds the classified category per declaration,
	// parallel to the checked list.
	Categories []string

	// Violations lists every diverging position. Empty when Sorted.
	Violations []Violation
}

// TargetDecls resolves the target order against the original sequence.
func (r Result) TargetDecls(decls []pysrc.Declaration) []pysrc.Declaration {
	target := make([]pysrc.Declaration, len(r.Target))
	for i, j := range r.Target {
		target[i] = decls[j]
	}

	return target
}

// Check classifies the scope's declarations and compares their sequence
// against the configured order. A scope with zero declarations is
// trivially sorted.
//
// The target order is built by partitioning declarations into category
// buckets (preserving relative order), sorting alphabetical buckets by
// name with original order as tie-break, and concatenating buckets by
// category ordinal. Uncategorized declarations form a final bucket that
// keeps declaration order.
func Check(decls []pysrc.Declaration, set *category.RuleSet) Result {
	result := Result{
		Sorted:     true,
		Categories: make([]string, len(decls)),
	}

	if len(decls) == 0 {
		return result
	}

	for i, d := range decls {
		result.Categories[i] = category.Classify(d, set)
	}

	result.Target = targetOrder(decls, result.Categories, set)

	for pos, idx := range result.Target {
		if idx == pos {
			continue
		}

		result.Sorted = false
		result.Violations = append(result.Violations, Violation{
			Index:    pos,
			Decl:     decls[pos],
			Kind:     violationKind(pos, result, set),
			Category: result.Categories[pos],
			Expected: decls[idx].Name,
		})
	}

	return result
}

// targetOrder computes the required sequence as indices into decls.
func targetOrder(decls []pysrc.Declaration, categories []string, set *category.RuleSet) []int {
	// Bucket by ordinal, preserving original relative order.
	buckets := make([][]int, set.Len()+1)
	for i := range decls {
		ordinal := set.Ordinal(categories[i])
		buckets[ordinal] = append(buckets[ordinal], i)
	}

	target := make([]int, 0, len(decls))

	for ordinal, bucket := range buckets {
		if len(bucket) == 0 {
			continue // empty category contributes nothing
		}

		if sortMode(ordinal, set) == category.SortAlphabetical {
			// Stable keeps original declaration order for equal names.
			sort.SliceStable(bucket, func(a, b int) bool {
				return decls[bucket[a]].Name < decls[bucket[b]].Name
			})
		}

		target = append(target, bucket...)
	}

	return target
}

// sortMode looks up the sort mode by ordinal; the trailing uncategorized
// bucket always keeps declaration order.
func sortMode(ordinal int, set *category.RuleSet) category.SortMode {
	if ordinal >= set.Len() {
		return category.SortDeclaration
	}

	return set.Categories()[ordinal].Sort
}

// violationKind reports whether the occupant of pos belongs to the
// category region the target order assigns to that position.
func violationKind(pos int, result Result, set *category.RuleSet) ViolationKind {
	actual := set.Ordinal(result.Categories[pos])
	expected := set.Ordinal(result.Categories[result.Target[pos]])

	if actual == expected {
		return WrongPosition
	}

	return CategoryBoundary
}
