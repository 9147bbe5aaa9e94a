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

package usage

import (
	"path/filepath"

	"fillmore-labs.com/pysort/internal/pysrc"
	"fillmore-labs.com/pysort/internal/report"
)

// defaultPublicNames are entry-point conventions that stay public even
// when no other module imports them.
var defaultPublicNames = map[string]struct{}{
	"main":     {},
	"run":      {},
	"execute":  {},
	"start":    {},
	"stop":     {},
	"setup":    {},
	"teardown": {},
}

// Detector derives privacy advice for one module from the usage graph.
type Detector struct {
	// Graph is the project-wide usage graph, or nil to disable the
	// external-usage checks.
	Graph *Graph

	// Path is the module's file path.
	Path string

	// Module is the module's dotted name relative to the project root.
	Module string

	// PublicNames extends the entry-point names exempt from
	// should-be-private advice.
	PublicNames []string
}

// NewDetector creates a detector for the module at path below root.
func NewDetector(graph *Graph, root, path string, publicNames []string) Detector {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return Detector{
		Graph:       graph,
		Path:        path,
		Module:      pysrc.ModuleName(rel),
		PublicNames: publicNames,
	}
}

// Check returns the privacy findings for the module's declarations.
func (dt Detector) Check(decls []pysrc.Declaration) []report.Finding {
	var findings []report.Finding

	for _, d := range decls {
		switch {
		case dt.ShouldBePrivate(d):
			findings = append(findings, report.ShouldBePrivate(d.Name, d.DefLine))

		case dt.ShouldBePublic(d):
			findings = append(findings, report.ShouldBePublic(d.Name, d.DefLine))
		}
	}

	return findings
}

// ShouldBePrivate reports whether a public module-level function is used
// nowhere outside its own module. Dunder names and entry-point names are
// exempt.
func (dt Detector) ShouldBePrivate(d pysrc.Declaration) bool {
	if dt.Graph == nil || d.Kind != pysrc.KindFunction || d.IsPrivate() || d.IsDunder() {
		return false
	}

	if dt.isPublicName(d.Name) {
		return false
	}

	return len(dt.Graph.ExternalUsers(dt.Path, dt.Module, d.Name)) == 0
}

// ShouldBePublic reports whether a private module-level function is
// imported by another module.
func (dt Detector) ShouldBePublic(d pysrc.Declaration) bool {
	if dt.Graph == nil || d.Kind != pysrc.KindFunction || !d.IsPrivate() {
		return false
	}

	return len(dt.Graph.ExternalUsers(dt.Path, dt.Module, d.Name)) > 0
}

func (dt Detector) isPublicName(name string) bool {
	if _, ok := defaultPublicNames[name]; ok {
		return true
	}

	for _, n := range dt.PublicNames {
		if n == name {
			return true
		}
	}

	return false
}
