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

// Package testsource provides utilities for parsing Python source
// fragments in tests.
//
// It handles the boilerplate of running the tree-sitter parser so tests
// can state their input as a plain source string.
package testsource

import (
	"context"
	"strings"
	"testing"

	"fillmore-labs.com/pysort/internal/pysrc"
)

// Parse parses a Python source fragment. Leading indentation shared by
// all lines is stripped, so tests can indent their fixtures naturally
// inside raw string literals.
func Parse(tb testing.TB, src string) *pysrc.Module {
	tb.Helper()

	mod, err := pysrc.NewParser().Parse(context.Background(), []byte(Dedent(src)))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return mod
}

// Class parses a fragment and returns its first class scope.
func Class(tb testing.TB, src string) (*pysrc.Module, pysrc.Scope) {
	tb.Helper()

	mod := Parse(tb, src)
	if len(mod.Classes) == 0 {
		tb.Fatal("Can't find class")
	}

	return mod, mod.Classes[0]
}

// Dedent removes the common leading whitespace of all non-blank lines
// and a single leading newline.
func Dedent(src string) string {
	src = strings.TrimPrefix(src, "\n")
	lines := strings.Split(src, "\n")

	margin := -1

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}

		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	if margin <= 0 {
		return src
	}

	for i, line := range lines {
		if len(line) >= margin {
			lines[i] = line[margin:]
		}
	}

	return strings.Join(lines, "\n")
}
