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

package usage

import (
	"path/filepath"
	"strings"
)

// IsTestFile reports whether a path is a Python test file by naming
// convention: a test_*.py or *_test.py file, conftest.py, or any file
// below a test directory.
func IsTestFile(path string) bool {
	base := filepath.Base(path)

	switch {
	case strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py"),
		strings.HasSuffix(base, "_test.py"),
		base == "conftest.py":
		return true
	}

	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		switch filepath.Base(dir) {
		case "test", "tests", "testing":
			return true
		}

		if parent := filepath.Dir(dir); parent == dir {
			return false
		}
	}
}
