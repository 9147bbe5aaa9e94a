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

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Imports summarizes the import surface of one module, as needed by the
// cross-module usage analysis.
type Imports struct {
	// Modules are module names from `import x` and `from x import ...`.
	Modules map[string]struct{}

	// Functions maps imported names to their source module,
	// from `from x import f`.
	Functions map[ImportedName]struct{}

	// Attributes are `alias.name` accesses where alias resolves to an
	// imported module.
	Attributes map[ImportedName]struct{}
}

// ImportedName is a (module, name) pair.
type ImportedName struct {
	Module string
	Name   string
}

// ExtractImports collects import statements and module-attribute accesses
// from Python source. Aliased imports are resolved to their real module
// names so attribute accesses through aliases are attributed correctly.
func (p *Parser) ExtractImports(ctx context.Context, content []byte) (Imports, error) {
	imports := Imports{
		Modules:    make(map[string]struct{}),
		Functions:  make(map[ImportedName]struct{}),
		Attributes: make(map[ImportedName]struct{}),
	}

	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return imports, fmt.Errorf("parse source: %w", err)
	}
	defer tree.Close()

	// alias -> module name, for attribute access resolution
	aliases := make(map[string]string)

	walk(tree.RootNode(), func(node *sitter.Node) {
		switch node.Type() {
		case "import_statement":
			collectImport(node, content, imports.Modules, aliases)

		case "import_from_statement":
			collectImportFrom(node, content, &imports, aliases)
		}
	})

	walk(tree.RootNode(), func(node *sitter.Node) {
		if node.Type() != "attribute" {
			return
		}

		obj := node.ChildByFieldName("object")
		attr := node.ChildByFieldName("attribute")

		if obj == nil || attr == nil || obj.Type() != "identifier" {
			return
		}

		if module, ok := aliases[text(obj, content)]; ok {
			imports.Attributes[ImportedName{Module: module, Name: text(attr, content)}] = struct{}{}
		}
	})

	return imports, nil
}

// collectImport handles `import a, b as c`.
func collectImport(node *sitter.Node, content []byte, modules map[string]struct{}, aliases map[string]string) {
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)

		switch child.Type() {
		case "dotted_name":
			name := text(child, content)
			modules[name] = struct{}{}
			aliases[name] = name

		case "aliased_import":
			name := ""
			if n := child.ChildByFieldName("name"); n != nil {
				name = text(n, content)
			}

			alias := name
			if a := child.ChildByFieldName("alias"); a != nil {
				alias = text(a, content)
			}

			if name != "" {
				modules[name] = struct{}{}
				aliases[alias] = name
			}
		}
	}
}

// collectImportFrom handles `from m import f, g as h`.
func collectImportFrom(node *sitter.Node, content []byte, imports *Imports, aliases map[string]string) {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return
	}

	module := text(moduleNode, content)
	imports.Modules[module] = struct{}{}

	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		if child.Equal(moduleNode) {
			continue
		}

		switch child.Type() {
		case "dotted_name", "identifier":
			name := text(child, content)
			imports.Functions[ImportedName{Module: module, Name: name}] = struct{}{}
			aliases[name] = module

		case "aliased_import":
			name := ""
			if n := child.ChildByFieldName("name"); n != nil {
				name = text(n, content)
			}

			alias := name
			if a := child.ChildByFieldName("alias"); a != nil {
				alias = text(a, content)
			}

			if name != "" {
				imports.Functions[ImportedName{Module: module, Name: name}] = struct{}{}
				aliases[alias] = module
			}
		}
	}
}

// ModuleName converts a project-relative file path to a dotted module name.
// An __init__.py maps to its package name.
func ModuleName(relPath string) string {
	name := strings.TrimSuffix(relPath, ".py")
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(name, "/", ".")

	return strings.TrimSuffix(name, ".__init__")
}
