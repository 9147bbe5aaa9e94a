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

// Package usage builds a cross-module usage graph over a Python project
// and derives privacy advice from it: a public function nobody imports
// should be private, a private function imported elsewhere should be
// public.
package usage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"fillmore-labs.com/pysort/internal/pysrc"
)

// importCacheSize bounds the per-file import extraction cache.
const importCacheSize = 128

// Graph records which files import which (module, name) pairs.
type Graph struct {
	// users maps an imported name to the paths of the files importing it.
	users map[pysrc.ImportedName][]string
}

// ExternalUsers returns the files that import name from module, excluding
// the module's own file. Module matching is suffix-based, so a project
// rooted below the package directory still resolves dotted imports.
func (g *Graph) ExternalUsers(modulePath, moduleName, name string) []string {
	var external []string

	for imported, users := range g.users {
		if imported.Name != name || !moduleMatches(imported.Module, moduleName) {
			continue
		}

		for _, user := range users {
			if user != modulePath {
				external = append(external, user)
			}
		}
	}

	return external
}

// moduleMatches reports whether an import of imported can resolve to the
// module named local relative to the project root.
func moduleMatches(imported, local string) bool {
	return imported == local ||
		strings.HasSuffix(imported, "."+local) ||
		strings.HasSuffix(local, "."+imported)
}

// Builder scans a project tree and accumulates the usage graph.
// Extraction results are cached by path and modification time, so
// repeated builds over an unchanged tree stay cheap.
type Builder struct {
	parser *pysrc.Parser
	cache  *lru.Cache[string, pysrc.Imports]
}

// NewBuilder creates a usage graph builder.
func NewBuilder() (*Builder, error) {
	cache, err := lru.New[string, pysrc.Imports](importCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create import cache: %w", err)
	}

	return &Builder{
		parser: pysrc.NewParser(),
		cache:  cache,
	}, nil
}

// BuildGraph walks root and records every import of every Python file.
// Test files and package __init__ files do not count as users: a
// function only referenced from tests is still internal to its module.
func (b *Builder) BuildGraph(ctx context.Context, root string) (*Graph, error) {
	graph := &Graph{users: make(map[pysrc.ImportedName][]string)}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(path, ".py") || filepath.Base(path) == "__init__.py" || IsTestFile(path) {
			return nil
		}

		imports, err := b.fileImports(ctx, path)
		if err != nil {
			return err
		}

		for imported := range imports.Functions {
			graph.users[imported] = append(graph.users[imported], path)
		}

		for imported := range imports.Attributes {
			graph.users[imported] = append(graph.users[imported], path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return graph, nil
}

// fileImports extracts a file's imports, consulting the mtime-keyed cache.
func (b *Builder) fileImports(ctx context.Context, path string) (pysrc.Imports, error) {
	info, err := os.Stat(path)
	if err != nil {
		return pysrc.Imports{}, fmt.Errorf("stat file: %w", err)
	}

	key := fmt.Sprintf("%s|%d", path, info.ModTime().UnixNano())
	if imports, ok := b.cache.Get(key); ok {
		return imports, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return pysrc.Imports{}, fmt.Errorf("read file: %w", err)
	}

	imports, err := b.parser.ExtractImports(ctx, content)
	if err != nil {
		return pysrc.Imports{}, fmt.Errorf("extract imports from %s: %w", path, err)
	}

	b.cache.Add(key, imports)

	return imports, nil
}

// skipDir filters directories that never contain project sources.
func skipDir(name string) bool {
	switch name {
	case "__pycache__", "node_modules", "venv", ".venv", "build", "dist":
		return true
	}

	return strings.HasPrefix(name, ".")
}
