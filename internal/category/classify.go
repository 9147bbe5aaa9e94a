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

import "fillmore-labs.com/pysort/internal/pysrc"

// Uncategorized is the reserved pseudo-category for declarations no rule
// claims. It sorts after every configured category so unmatched input
// surfaces as violations instead of silently vanishing.
const Uncategorized = "uncategorized"

// Classify assigns exactly one category name to a declaration.
//
// Rule kinds are evaluated in fixed priority (explicit name list, then
// decorator pattern, then name pattern, then default); within one kind,
// categories are tried in ordinal order and the first match wins. The
// kind-major order is what lets a private `_*` prefix rule beat an
// earlier category's default rule.
//
// Classification is total: a set without a default rule yields
// [Uncategorized] for unmatched declarations, never an error.
func Classify(d pysrc.Declaration, set *RuleSet) string {
	for kind := kindNameList; kind <= kindDefault; kind++ {
		for _, c := range set.categories {
			for _, r := range c.Rules {
				if r.kind() == kind && r.Matches(d) {
					return c.Name
				}
			}
		}
	}

	return Uncategorized
}
