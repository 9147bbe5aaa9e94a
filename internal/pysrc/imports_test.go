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

package pysrc_test

import (
	"context"
	"testing"

	. "fillmore-labs.com/pysort/internal/pysrc"
)

func TestExtractImports(t *testing.T) {
	t.Parallel()

	src := `import os
import numpy as np
from utils import helper
from app.core import parse as p


def main():
    helper()
    p("x")
    np.zeros(3)
    os.getcwd()
`

	imports, err := NewParser().ExtractImports(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("Failed to extract imports: %v", err)
	}

	for _, module := range []string{"os", "numpy", "utils", "app.core"} {
		if _, ok := imports.Modules[module]; !ok {
			t.Errorf("Expected module %q to be imported", module)
		}
	}

	tests := []struct {
		name string
		fns  map[ImportedName]struct{}
		key  ImportedName
	}{
		{name: "from_import", fns: imports.Functions, key: ImportedName{Module: "utils", Name: "helper"}},
		{name: "aliased_from_import", fns: imports.Functions, key: ImportedName{Module: "app.core", Name: "parse"}},
		{name: "attribute_through_alias", fns: imports.Attributes, key: ImportedName{Module: "numpy", Name: "zeros"}},
		{name: "attribute_direct", fns: imports.Attributes, key: ImportedName{Module: "os", Name: "getcwd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, ok := tt.fns[tt.key]; !ok {
				t.Errorf("Expected %v to be recorded", tt.key)
			}
		})
	}
}

func TestModuleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "plain", path: "utils.py", want: "utils"},
		{name: "nested", path: "pkg/utils.py", want: "pkg.utils"},
		{name: "package_init", path: "pkg/__init__.py", want: "pkg"},
		{name: "windows_separator", path: `pkg\sub\mod.py`, want: "pkg.sub.mod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ModuleName(tt.path); got != tt.want {
				t.Errorf("ModuleName(%q) = %q, expected %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFindReferences(t *testing.T) {
	t.Parallel()

	src := `def greet(name):
    return "hi " + name


def main():
    greet("x")
    fn = greet


@greet
def other():
    pass
`

	refs, err := NewParser().FindReferences(context.Background(), []byte(src), "greet")
	if err != nil {
		t.Fatalf("Failed to find references: %v", err)
	}

	if got, want := len(refs), 3; got != want {
		t.Fatalf("Got %d references, expected %d", got, want)
	}

	tests := []struct {
		line    int
		context RefContext
	}{
		{line: 6, context: RefCall},
		{line: 7, context: RefAssignment},
		{line: 10, context: RefDecorator},
	}

	for i, tt := range tests {
		if refs[i].Line != tt.line || refs[i].Context != tt.context {
			t.Errorf("Reference %d: got (%d, %q), expected (%d, %q)",
				i, refs[i].Line, refs[i].Context, tt.line, tt.context)
		}
	}
}

func TestFindStringMentions(t *testing.T) {
	t.Parallel()

	src := `def main():
    fn = getattr(obj, "helper")
    print("no match here")
`

	lines, err := NewParser().FindStringMentions(context.Background(), []byte(src), "helper")
	if err != nil {
		t.Fatalf("Failed to scan strings: %v", err)
	}

	if len(lines) != 1 || lines[0] != 2 {
		t.Errorf("Got %v, expected [2]", lines)
	}
}
