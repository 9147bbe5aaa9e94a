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

// Package analyzer implements the pysort declaration order analysis.
//
// # Overview
//
// Pysort validates that Python functions and methods are declared in a
// configurable category order, alphabetically within each category, and
// rewrites files that are not.
//
// # Example
//
// Before:
//
//	def run():
//	    ...
//
//	def _helper():
//	    ...
//
//	def build():
//	    ...
//
// After applying pysort's fix:
//
//	def build():
//	    ...
//
//	def run():
//	    ...
//
//	def _helper():
//	    ...
//
// Public functions sort before private ones, each group alphabetically.
// Classes are checked the same way, method by method, and section header
// comments such as "# Public methods" can be validated and regenerated.
package analyzer
