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

package analyzer

import (
	"fmt"

	"fillmore-labs.com/pysort/internal/category"
	"fillmore-labs.com/pysort/internal/config"
	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/rewrite"
	"fillmore-labs.com/pysort/internal/section"
	"fillmore-labs.com/pysort/internal/usage"
)

// Public API constants for the pysort analyzer.
const (
	name = "pysort"
	doc  = `pysort validates and repairs the declaration order of Python functions and methods`
	url  = "https://pkg.go.dev/fillmore-labs.com/pysort"
)

// Analyzer checks Python modules for declaration order violations and
// rewrites them into the configured order. An Analyzer is not safe for
// concurrent use; create one per goroutine.
type Analyzer struct {
	cfg    config.Config
	set    *category.RuleSet
	parser *pysrc.Parser
	fixer  *rewrite.Fixer
	graph  *usage.Graph
	root   string
}

// New creates a configured pysort analyzer. It allows for programmatic
// configuration using [Option], which is useful for integrating the
// analyzer into other tools; the command line resolves its flags into
// the same options.
func New(opts ...Option) (*Analyzer, error) {
	r := makeRunOptions(opts)

	cfg := r.cfg
	if !cfg.Behavior.Enabled(config.EnableCategories) {
		// Without categories only the public/private split applies.
		cfg.Preset = category.PresetDefault
		cfg.Overrides = nil
	}

	set, err := cfg.RuleSet()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	headers := rewrite.HeaderPolicy{
		Insert:     cfg.Behavior.Enabled(config.AddSectionHeaders),
		AllowEmpty: cfg.Behavior.Enabled(config.AllowEmptySections),
	}

	return &Analyzer{
		cfg:    cfg,
		set:    set,
		parser: pysrc.NewParser(),
		fixer:  rewrite.NewFixer(set, headers, cfg.IgnoreDecorators),
		root:   r.root,
	}, nil
}

// RuleSet exposes the resolved category rule set.
func (a *Analyzer) RuleSet() *category.RuleSet { return a.set }

// Config exposes the resolved configuration.
func (a *Analyzer) Config() config.Config { return a.cfg }

// sectionPolicy derives the validation policy from the configuration.
func (a *Analyzer) sectionPolicy() section.Policy {
	return section.Policy{
		Enforce:    a.cfg.Behavior.Enabled(config.EnforceSectionHeaders),
		Require:    a.cfg.Behavior.Enabled(config.RequireSectionHeaders),
		AllowEmpty: a.cfg.Behavior.Enabled(config.AllowEmptySections),
	}
}
