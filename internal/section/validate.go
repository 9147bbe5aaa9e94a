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

package section

import (
	"fillmore-labs.com/pysort/internal/category"
	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/report"
)

// Policy carries the scope-independent section validation switches.
type Policy struct {
	// Enforce activates validation; when false headers are decorative
	// and Validate is a no-op.
	Enforce bool

	// Require escalates missing headers to findings.
	Require bool

	// AllowEmpty permits headers whose category has no members.
	AllowEmpty bool
}

// Validate cross-checks each declaration's declared section against its
// expected category and checks header completeness and emptiness.
//
// categories holds the classifier's result per declaration, parallel to
// scope.Decls. Validation is purely diagnostic; it never reorders.
func Validate(scope pysrc.Scope, idx *Index, categories []string, set *category.RuleSet, policy Policy) []report.Finding {
	if !policy.Enforce {
		return nil
	}

	var findings []report.Finding

	// missing tracks categories already reported, so a category with
	// several uncovered members yields exactly one finding.
	missing := make(map[string]bool)

	for i, d := range scope.Decls {
		expected := categories[i]

		declared := idx.CategoryAt(d.Start)
		if declared == expected {
			continue
		}

		if declared != "" {
			findings = append(findings, report.WrongSectionFinding(d.Name, d.DefLine, declared, expected))

			continue
		}

		if requireHeader(expected, set, policy) && !missing[expected] {
			missing[expected] = true

			findings = append(findings, report.MissingHeader(expected, d.DefLine))
		}
	}

	findings = append(findings, emptyHeaders(idx, categories, set, policy)...)

	return findings
}

// requireHeader combines the global switch with the per-category flag.
func requireHeader(name string, set *category.RuleSet, policy Policy) bool {
	if policy.Require {
		return true
	}

	c, ok := set.Lookup(name)

	return ok && c.RequireHeader
}

// emptyHeaders reports headers whose category has no members in this scope.
func emptyHeaders(idx *Index, categories []string, set *category.RuleSet, policy Policy) []report.Finding {
	members := make(map[string]int, len(categories))
	for _, name := range categories {
		members[name]++
	}

	var findings []report.Finding

	for _, r := range idx.Records() {
		if members[r.Category] > 0 {
			continue
		}

		if policy.AllowEmpty || allowEmpty(r.Category, set) {
			continue
		}

		findings = append(findings, report.EmptyHeader(r.Category, r.Line))
	}

	return findings
}

func allowEmpty(name string, set *category.RuleSet) bool {
	c, ok := set.Lookup(name)

	return ok && c.AllowEmpty
}
