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

package pysrc

import "strings"

// Kind distinguishes module-level functions from class methods.
type Kind int

// Declaration kinds.
const (
	KindFunction Kind = iota
	KindMethod
)

// Declaration is a function or method as delivered by the parser.
// It is a read-only input to the ordering engine; identity is the
// position in the owning scope's declaration list.
type Declaration struct {
	// Name is the declared identifier.
	Name string

	// Kind reports whether this is a function or a method.
	Kind Kind

	// Decorators holds the literal decorator texts in source order,
	// each including the leading '@'.
	Decorators []string

	// Start is the first source line of the declaration (1-based).
	// For decorated declarations this is the first decorator line.
	Start int

	// DefLine is the line of the def keyword.
	DefLine int

	// End is the last source line of the declaration body, inclusive.
	End int
}

// IsPrivate reports whether the declaration follows the single-underscore
// privacy convention. Dunder names are not private.
func (d Declaration) IsPrivate() bool {
	return strings.HasPrefix(d.Name, "_") && !d.IsDunder()
}

// IsDunder reports whether the declaration is a double-underscore special method.
func (d Declaration) IsDunder() bool {
	return strings.HasPrefix(d.Name, "__") && strings.HasSuffix(d.Name, "__")
}

// ScopeKind distinguishes a module body from a class body.
type ScopeKind int

// Scope kinds.
const (
	ScopeModule ScopeKind = iota
	ScopeClass
)

// Scope is an ordered sequence of declarations from one module or class
// body. Ordering is validated per scope, never across scopes.
type Scope struct {
	// Kind reports whether this is a module or class body.
	Kind ScopeKind

	// Name is the class name, or "" for the module scope.
	Name string

	// Start and End delimit the scope's body region (1-based, inclusive).
	// For the module scope this is the whole file.
	Start, End int

	// Decls are the direct function/method declarations in source order.
	Decls []Declaration
}

// Module is the parse result for one Python source file.
type Module struct {
	// Path is the file path the module was parsed from.
	Path string

	// Lines holds the source split by line, each retaining its
	// trailing newline (the final line may lack one).
	Lines []string

	// Body is the module-level scope.
	Body Scope

	// Classes are the top-level class scopes in source order.
	Classes []Scope
}

// Scopes returns the module body followed by all class scopes.
func (m *Module) Scopes() []Scope {
	scopes := make([]Scope, 0, len(m.Classes)+1)
	scopes = append(scopes, m.Body)
	scopes = append(scopes, m.Classes...)

	return scopes
}

// Line returns the 1-based source line without its trailing newline.
// Out-of-range lines are empty.
func (m *Module) Line(n int) string {
	if n < 1 || n > len(m.Lines) {
		return ""
	}

	return strings.TrimRight(m.Lines[n-1], "\r\n")
}

// SplitLines splits source into lines, each element retaining its
// trailing newline so the original content can be reassembled verbatim.
func SplitLines(src []byte) []string {
	var lines []string

	start := 0
	for i, b := range src {
		if b == '\n' {
			lines = append(lines, string(src[start:i+1]))
			start = i + 1
		}
	}

	if start < len(src) {
		lines = append(lines, string(src[start:]))
	}

	return lines
}
