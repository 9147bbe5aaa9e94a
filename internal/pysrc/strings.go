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

// FindStringMentions returns the lines on which name occurs inside a
// string literal. A mention signals potential dynamic dispatch, such as
// getattr or a registry lookup, that a textual rename cannot follow.
func (p *Parser) FindStringMentions(ctx context.Context, content []byte, name string) ([]int, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	defer tree.Close()

	var lines []int

	walk(tree.RootNode(), func(node *sitter.Node) {
		if node.Type() != "string" {
			return
		}

		if strings.Contains(text(node, content), name) {
			lines = append(lines, int(node.StartPoint().Row)+1)
		}
	})

	return lines, nil
}
