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

// Package pysrc adapts tree-sitter's Python grammar to the scope and
// declaration model consumed by the ordering engine.
package pysrc

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser extracts scopes and declarations from Python source files.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a Python source parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())

	return &Parser{parser: p}
}

// ParseFile reads and parses a single Python file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Module, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	mod, err := p.Parse(ctx, content)
	if err != nil {
		return nil, err
	}

	mod.Path = path

	return mod, nil
}

// Parse parses Python source into the module scope and its class scopes.
func (p *Parser) Parse(ctx context.Context, content []byte) (*Module, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()

	mod := &Module{
		Lines: SplitLines(content),
		Body: Scope{
			Kind:  ScopeModule,
			Start: 1,
			End:   int(root.EndPoint().Row) + 1,
		},
	}

	for i := range int(root.NamedChildCount()) {
		child := root.NamedChild(i)

		switch child.Type() {
		case "function_definition":
			mod.Body.Decls = append(mod.Body.Decls, extractDeclaration(child, nil, content, KindFunction))

		case "decorated_definition":
			def, decorators := splitDecorated(child, content)
			if def == nil {
				continue
			}

			switch def.Type() {
			case "function_definition":
				d := extractDeclaration(def, decorators, content, KindFunction)
				d.Start = int(child.StartPoint().Row) + 1
				mod.Body.Decls = append(mod.Body.Decls, d)

			case "class_definition":
				mod.Classes = append(mod.Classes, extractClass(def, content))
			}

		case "class_definition":
			mod.Classes = append(mod.Classes, extractClass(child, content))
		}
	}

	return mod, nil
}

// extractClass builds a class scope with its direct method declarations.
func extractClass(node *sitter.Node, content []byte) Scope {
	scope := Scope{
		Kind:  ScopeClass,
		Start: int(node.StartPoint().Row) + 1,
		End:   int(node.EndPoint().Row) + 1,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		scope.Name = text(name, content)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return scope
	}

	for i := range int(body.NamedChildCount()) {
		child := body.NamedChild(i)

		switch child.Type() {
		case "function_definition":
			scope.Decls = append(scope.Decls, extractDeclaration(child, nil, content, KindMethod))

		case "decorated_definition":
			def, decorators := splitDecorated(child, content)
			if def == nil || def.Type() != "function_definition" {
				continue
			}

			d := extractDeclaration(def, decorators, content, KindMethod)
			d.Start = int(child.StartPoint().Row) + 1
			scope.Decls = append(scope.Decls, d)
		}
	}

	return scope
}

// extractDeclaration builds a declaration from a function_definition node.
func extractDeclaration(node *sitter.Node, decorators []string, content []byte, kind Kind) Declaration {
	d := Declaration{
		Kind:       kind,
		Decorators: decorators,
		Start:      int(node.StartPoint().Row) + 1,
		DefLine:    int(node.StartPoint().Row) + 1,
		End:        int(node.EndPoint().Row) + 1,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		d.Name = text(name, content)
	}

	return d
}

// splitDecorated returns the wrapped definition and the literal decorator
// texts of a decorated_definition node.
func splitDecorated(node *sitter.Node, content []byte) (def *sitter.Node, decorators []string) {
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)

		switch child.Type() {
		case "decorator":
			decorators = append(decorators, strings.TrimSpace(text(child, content)))

		case "function_definition", "class_definition":
			def = child
		}
	}

	return def, decorators
}

func text(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}
