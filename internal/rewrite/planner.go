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

package rewrite

import (
	"fillmore-labs.com/pysort/internal/category"
	"fillmore-labs.com/pysort/internal/section"
)

// SegmentKind discriminates plan segments.
type SegmentKind int

const (
	// SegmentHeader is a regenerated or preserved section header line.
	SegmentHeader SegmentKind = iota

	// SegmentDecl is one declaration span, emitted verbatim.
	SegmentDecl
)

// Segment is one element of the planned scope layout.
type Segment struct {
	// Kind selects header or declaration.
	Kind SegmentKind

	// Category is the category this segment belongs to.
	Category string

	// Index is the span index for SegmentDecl, -1 for headers.
	Index int

	// Text is the header text (without newline) or the span text.
	Text string
}

// HeaderPolicy controls header regeneration during planning.
type HeaderPolicy struct {
	// Insert adds a configured header above every populated category
	// that lacks one.
	Insert bool

	// AllowEmpty keeps existing headers whose category has no members;
	// otherwise such headers are dropped from the plan.
	AllowEmpty bool
}

// Plan lays out a scope: per category in ordinal order an optional
// header segment followed by the member spans in target order.
//
// target holds span indices in the required sequence and categories the
// classified category per span index. Existing headers keep their exact
// text; inserted headers use the category's configured text. Planning a
// scope that is already in target layout reproduces it, so applying a
// plan is idempotent.
func Plan(spans []Span, target []int, categories []string, idx *section.Index, set *category.RuleSet, policy HeaderPolicy) []Segment {
	if len(spans) == 0 {
		return nil
	}

	members := make(map[string][]int, set.Len())
	for _, j := range target {
		name := categories[j]
		members[name] = append(members[name], j)
	}

	existing := make(map[string]string)
	if idx != nil {
		for _, r := range idx.Records() {
			existing[r.Category] = r.Text
		}
	}

	var segments []Segment

	for _, c := range set.Categories() {
		segments = append(segments, planCategory(spans, c, members[c.Name], existing, policy)...)
	}

	// Uncategorized members close the scope, headerless.
	for _, j := range members[category.Uncategorized] {
		segments = append(segments, Segment{
			Kind:     SegmentDecl,
			Category: category.Uncategorized,
			Index:    j,
			Text:     spans[j].Text,
		})
	}

	return segments
}

// planCategory emits the header and member segments of one category.
func planCategory(spans []Span, c category.Category, member []int, existing map[string]string, policy HeaderPolicy) []Segment {
	var segments []Segment

	header, ok := existing[c.Name]
	if !ok && policy.Insert && len(member) > 0 && c.Header != "" {
		header, ok = c.Header, true
	}

	if ok && len(member) == 0 && !policy.AllowEmpty && !c.AllowEmpty {
		ok = false // drop the orphaned header
	}

	if ok {
		segments = append(segments, Segment{
			Kind:     SegmentHeader,
			Category: c.Name,
			Index:    -1,
			Text:     header,
		})
	}

	for _, j := range member {
		segments = append(segments, Segment{
			Kind:     SegmentDecl,
			Category: c.Name,
			Index:    j,
			Text:     spans[j].Text,
		})
	}

	return segments
}
