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

	sitter "github.com/smacker/go-tree-sitter"
)

// RefContext classifies how a name is referenced.
type RefContext string

// Reference contexts recognized by the rename machinery. Anything not
// classified here is unsafe to rename automatically.
const (
	RefCall       RefContext = "call"
	RefAssignment RefContext = "assignment"
	RefDecorator  RefContext = "decorator"
	RefReference  RefContext = "reference"
)

// Reference is one occurrence of a function name within a module.
type Reference struct {
	// Line and Col locate the identifier (1-based line, 0-based column).
	Line int
	Col  int

	// Context classifies the reference site.
	Context RefContext
}

// FindReferences locates every identifier occurrence of name in the given
// source, excluding the definition itself. The definition is recognized by
// its parent being a function_definition's name field.
func (p *Parser) FindReferences(ctx context.Context, content []byte, name string) ([]Reference, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	defer tree.Close()

	var refs []Reference

	walk(tree.RootNode(), func(node *sitter.Node) {
		if node.Type() != "identifier" || text(node, content) != name {
			return
		}

		parent := node.Parent()
		if parent == nil {
			return
		}

		// The def line itself is not a reference.
		if parent.Type() == "function_definition" {
			return
		}

		refs = append(refs, Reference{
			Line:    int(node.StartPoint().Row) + 1,
			Col:     int(node.StartPoint().Column),
			Context: classifyReference(parent, node),
		})
	})

	return refs, nil
}

// classifyReference determines the reference context from the parent node.
func classifyReference(parent, node *sitter.Node) RefContext {
	switch parent.Type() {
	case "call":
		if fn := parent.ChildByFieldName("function"); fn != nil && fn.Equal(node) {
			return RefCall
		}

	case "decorator":
		return RefDecorator

	case "assignment":
		if right := parent.ChildByFieldName("right"); right != nil && right.Equal(node) {
			return RefAssignment
		}
	}

	return RefReference
}

// walk visits every node of the tree in preorder.
func walk(node *sitter.Node, fn func(*sitter.Node)) {
	fn(node)

	for i := range int(node.ChildCount()) {
		walk(node.Child(i), fn)
	}
}
