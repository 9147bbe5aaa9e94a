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

package privacy

import (
	"fmt"
	"strings"
)

// Report renders a human-readable summary of the candidates for one file.
func Report(path string, candidates []Candidate) string {
	if len(candidates) == 0 {
		return fmt.Sprintf("%s: no privacy candidates\n", path)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d privacy candidate(s)\n", path, len(candidates))

	for _, c := range candidates {
		if c.Safe() {
			fmt.Fprintf(&b, "  %s -> %s (line %d, %d reference(s))\n",
				c.Decl.Name, c.NewName, c.Decl.DefLine, len(c.Refs))

			continue
		}

		fmt.Fprintf(&b, "  %s: skipped\n", c.Decl.Name)

		for _, reason := range c.Reasons {
			fmt.Fprintf(&b, "    - %s\n", reason)
		}
	}

	return b.String()
}
