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

package testsource_test

import (
	"testing"

	. "fillmore-labs.com/pysort/internal/testsource"
)

func TestDedent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "common_margin",
			src:  "\n\t\tdef f():\n\t\t    pass\n",
			want: "def f():\n    pass\n",
		},
		{
			name: "no_margin",
			src:  "def f():\n    pass\n",
			want: "def f():\n    pass\n",
		},
		{
			name: "blank_lines_ignored",
			src:  "\n    def f():\n\n    def g():\n",
			want: "def f():\n\ndef g():\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Dedent(tt.src); got != tt.want {
				t.Errorf("Got %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	mod := Parse(t, `
		def f():
		    pass
		`)

	if len(mod.Body.Decls) != 1 || mod.Body.Decls[0].Name != "f" {
		t.Errorf("Got %+v, expected a single function f", mod.Body.Decls)
	}
}
