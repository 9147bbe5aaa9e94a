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

// Package report defines the findings emitted by the ordering engine and
// their stable message codes.
package report

import "fmt"

// Code is a stable finding identifier. The numbering mirrors the pylint
// plugin message ids so existing suppressions keep working.
type Code struct {
	ID   string
	Name string
}

// Message codes.
var (
	UnsortedFunctions       = Code{ID: "W9001", Name: "unsorted-functions"}
	UnsortedMethods         = Code{ID: "W9002", Name: "unsorted-methods"}
	MixedVisibility         = Code{ID: "W9003", Name: "mixed-function-visibility"}
	FunctionShouldBePrivate = Code{ID: "W9004", Name: "function-should-be-private"}
	FunctionShouldBePublic  = Code{ID: "W9005", Name: "function-should-be-public"}
	WrongSection            = Code{ID: "W9006", Name: "method-wrong-section"}
	MissingSectionHeader    = Code{ID: "W9007", Name: "missing-section-header"}
	EmptySectionHeader      = Code{ID: "W9008", Name: "empty-section-header"}
)

// String renders the code the way pylint prints message ids.
func (c Code) String() string {
	return fmt.Sprintf("%s(%s)", c.ID, c.Name)
}

// Finding is one diagnostic, with enough context for the host to render
// an actionable message: symbol, line, expected vs. actual.
type Finding struct {
	// Code is the stable identifier.
	Code Code

	// Symbol names the declaration or category the finding is about.
	Symbol string

	// Line is the 1-based source line the finding points at.
	Line int

	// Expected and Actual carry category names where applicable.
	Expected string
	Actual   string

	// Message is the rendered human-readable text.
	Message string
}

// Unsorted reports a declaration out of place inside its category.
func Unsorted(code Code, name string, line int, expected string) Finding {
	return Finding{
		Code:     code,
		Symbol:   name,
		Line:     line,
		Expected: expected,
		Message:  fmt.Sprintf("%q should come after %q", name, expected),
	}
}

// Mixed reports a declaration sitting in another category's region.
func Mixed(name string, line int, actual, expected string) Finding {
	return Finding{
		Code:     MixedVisibility,
		Symbol:   name,
		Line:     line,
		Expected: expected,
		Actual:   actual,
		Message:  fmt.Sprintf("%q (%s) declared in the %s region", name, actual, expected),
	}
}

// WrongSectionFinding reports a declaration under a mismatched header.
func WrongSectionFinding(name string, line int, declared, expected string) Finding {
	return Finding{
		Code:     WrongSection,
		Symbol:   name,
		Line:     line,
		Expected: expected,
		Actual:   declared,
		Message:  fmt.Sprintf("%q is in section %q but belongs to %q", name, declared, expected),
	}
}

// MissingHeader reports a category with members but no section header.
// Emitted once per category per scope.
func MissingHeader(categoryName string, line int) Finding {
	return Finding{
		Code:     MissingSectionHeader,
		Symbol:   categoryName,
		Line:     line,
		Expected: categoryName,
		Message:  fmt.Sprintf("section header for category %q is missing", categoryName),
	}
}

// EmptyHeader reports a section header with no members.
func EmptyHeader(categoryName string, line int) Finding {
	return Finding{
		Code:    EmptySectionHeader,
		Symbol:  categoryName,
		Line:    line,
		Actual:  categoryName,
		Message: fmt.Sprintf("section header for category %q has no members", categoryName),
	}
}

// ShouldBePrivate reports a public function only used within its module.
func ShouldBePrivate(name string, line int) Finding {
	return Finding{
		Code:    FunctionShouldBePrivate,
		Symbol:  name,
		Line:    line,
		Message: fmt.Sprintf("function %q is not used outside its module and should be private", name),
	}
}

// ShouldBePublic reports a private function used by other modules.
func ShouldBePublic(name string, line int) Finding {
	return Finding{
		Code:    FunctionShouldBePublic,
		Symbol:  name,
		Line:    line,
		Message: fmt.Sprintf("function %q is used by other modules and should be public", name),
	}
}
