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

// Package privacy renames module-internal public functions to their
// private form. A rename is only applied when every reference inside the
// module is a recognized, textually safe site; anything doubtful leaves
// the candidate reported but untouched.
package privacy

import (
	"context"
	"fmt"

	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/usage"
)

// Candidate is one function proposed for privatization.
type Candidate struct {
	// Decl is the function to rename.
	Decl pysrc.Declaration

	// NewName is the underscore-prefixed replacement name.
	NewName string

	// Refs are the in-module references to the old name.
	Refs []pysrc.Reference

	// Reasons lists why the rename is unsafe. Empty means safe.
	Reasons []string
}

// Safe reports whether the rename can be applied automatically.
func (c Candidate) Safe() bool { return len(c.Reasons) == 0 }

// Analyzer finds privatization candidates in one module.
type Analyzer struct {
	parser *pysrc.Parser
}

// NewAnalyzer creates a candidate analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{parser: pysrc.NewParser()}
}

// Candidates inspects the module's top-level functions and returns every
// declaration the detector wants private, each vetted for rename safety:
// the private name must be free, and the old name must not occur inside
// string literals where a textual rename cannot follow.
func (a *Analyzer) Candidates(ctx context.Context, mod *pysrc.Module, content []byte, dt usage.Detector) ([]Candidate, error) {
	var candidates []Candidate

	taken := make(map[string]struct{}, len(mod.Body.Decls))
	for _, d := range mod.Body.Decls {
		taken[d.Name] = struct{}{}
	}

	for _, cls := range mod.Classes {
		taken[cls.Name] = struct{}{}
	}

	for _, d := range mod.Body.Decls {
		if !dt.ShouldBePrivate(d) {
			continue
		}

		c := Candidate{Decl: d, NewName: "_" + d.Name}

		if _, exists := taken[c.NewName]; exists {
			c.Reasons = append(c.Reasons, fmt.Sprintf("name %q is already taken", c.NewName))
		}

		refs, err := a.parser.FindReferences(ctx, content, d.Name)
		if err != nil {
			return nil, err
		}

		c.Refs = refs

		mentions, err := a.parser.FindStringMentions(ctx, content, d.Name)
		if err != nil {
			return nil, err
		}

		for _, line := range mentions {
			c.Reasons = append(c.Reasons, fmt.Sprintf("%q occurs in a string literal on line %d", d.Name, line))
		}

		candidates = append(candidates, c)
	}

	return candidates, nil
}
