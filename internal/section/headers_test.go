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

package section_test

import (
	"testing"

	"fillmore-labs.com/pysort/internal/category"
	. "fillmore-labs.com/pysort/internal/section"
	"fillmore-labs.com/pysort/internal/testsource"
)

func defaultSet(t *testing.T) *category.RuleSet {
	t.Helper()

	set, err := category.New(category.PresetDefault, nil)
	if err != nil {
		t.Fatalf("Failed to build rule set: %v", err)
	}

	return set
}

func TestParseHeaders(t *testing.T) {
	t.Parallel()

	// given
	mod, scope := testsource.Class(t, `
		class Window:
		    # Public methods

		    def open(self):
		        pass

		    # Private methods

		    def _paint(self):
		        pass
		`)

	// when
	idx := ParseHeaders(mod, scope, defaultSet(t))

	// then
	records := idx.Records()
	if got, want := len(records), 2; got != want {
		t.Fatalf("Got %d headers, expected %d", got, want)
	}

	if records[0].Category != "public_methods" || records[0].Line != 2 {
		t.Errorf("Got %q at line %d, expected public_methods at 2", records[0].Category, records[0].Line)
	}

	if records[1].Category != "private_methods" || records[1].Line != 7 {
		t.Errorf("Got %q at line %d, expected private_methods at 7", records[1].Category, records[1].Line)
	}

	if got, want := idx.CategoryAt(scope.Decls[0].Start), "public_methods"; got != want {
		t.Errorf("Got %q for open, expected %q", got, want)
	}

	if got, want := idx.CategoryAt(scope.Decls[1].Start), "private_methods"; got != want {
		t.Errorf("Got %q for _paint, expected %q", got, want)
	}
}

func TestParseHeadersIgnoresPlainComments(t *testing.T) {
	t.Parallel()

	mod, scope := testsource.Class(t, `
		class Window:
		    # public methods, more or less

		    def open(self):
		        pass
		`)

	idx := ParseHeaders(mod, scope, defaultSet(t))

	if got := len(idx.Records()); got != 0 {
		t.Errorf("Got %d headers, expected none", got)
	}
}

func TestParseHeadersRangeEndsAtStatement(t *testing.T) {
	t.Parallel()

	// A plain statement terminates the header's range, so declarations
	// after it are uncovered.
	mod := testsource.Parse(t, `
		# Public methods

		CONSTANT = 1


		def run():
		    pass
		`)

	idx := ParseHeaders(mod, mod.Body, defaultSet(t))

	records := idx.Records()
	if len(records) != 1 || records[0].Line != 1 {
		t.Fatalf("Got %v, expected one header at line 1", records)
	}

	if got := idx.CategoryAt(mod.Body.Decls[0].Start); got != "" {
		t.Errorf("Got %q for run, expected no covering header", got)
	}
}

func TestParseHeadersDuplicateCategory(t *testing.T) {
	t.Parallel()

	// The later header wins; the earlier line degrades to a comment.
	mod, scope := testsource.Class(t, `
		class Window:
		    # Public methods

		    def open(self):
		        pass

		    # Public methods

		    def close(self):
		        pass
		`)

	idx := ParseHeaders(mod, scope, defaultSet(t))

	records := idx.Records()
	if len(records) != 1 || records[0].Line != 7 {
		t.Fatalf("Got %v, expected the later header only", records)
	}
}

func TestParseHeadersDuplicateKeepsPrecedingRange(t *testing.T) {
	t.Parallel()

	// given a duplicate private header between the public header and the
	// surviving private header
	mod := testsource.Parse(t, `
		# Public methods

		def alpha():
		    pass

		# Private methods

		def _mid():
		    pass

		# Private methods

		def _tail():
		    pass
		`)

	// when
	idx := ParseHeaders(mod, mod.Body, defaultSet(t))

	// then the degraded duplicate is a plain comment and the public range
	// runs across it to the surviving header
	records := idx.Records()
	if len(records) != 2 || records[0].Line != 1 || records[1].Line != 11 {
		t.Fatalf("Got %v, expected headers at lines 1 and 11", records)
	}

	if got, want := idx.CategoryAt(mod.Body.Decls[1].Start), "public_methods"; got != want {
		t.Errorf("Got %q for _mid, expected %q", got, want)
	}

	if got, want := idx.CategoryAt(mod.Body.Decls[2].Start), "private_methods"; got != want {
		t.Errorf("Got %q for _tail, expected %q", got, want)
	}
}
