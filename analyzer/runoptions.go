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

package analyzer

import (
	"fillmore-labs.com/pysort/internal/config"
)

// runOptions represent the resolved configuration for the pysort analyzer.
type runOptions struct {
	// cfg holds the layered tool configuration.
	cfg config.Config

	// root is the project tree for the cross-module usage analysis;
	// empty disables it.
	root string
}

// makeRunOptions returns a [runOptions] struct with overriding [Options] applied.
func makeRunOptions(opts Options) *runOptions {
	r := defaultRunOptions()
	opts.apply(r)

	return r
}

// defaultRunOptions initializes a runOptions instance with default values.
func defaultRunOptions() *runOptions {
	return &runOptions{
		cfg: config.Default(),
	}
}
