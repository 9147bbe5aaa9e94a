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

package level

import (
	"fmt"
	"strings"
)

// Privacy specifies the privacy analysis level.
type Privacy uint8

const (
	// PrivacyOff disables privacy analysis.
	PrivacyOff Privacy = iota

	// PrivacyReport reports candidates without renaming.
	PrivacyReport

	// PrivacyFix renames safe candidates.
	PrivacyFix
)

// MarshalText implements [encoding.TextMarshaler].
func (o Privacy) MarshalText() ([]byte, error) {
	switch o {
	case PrivacyOff:
		return []byte("off"), nil

	case PrivacyReport:
		return []byte("report"), nil

	case PrivacyFix:
		return []byte("fix"), nil

	default:
		return nil, fmt.Errorf("unknown privacy level %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Privacy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "off", "false":
		*o = PrivacyOff

	case "", "true", "on", "report":
		*o = PrivacyReport

	case "fix", "rename":
		*o = PrivacyFix

	default:
		return fmt.Errorf("unknown privacy level %q", string(text))
	}

	return nil
}

// Set implements [pflag.Value].
func (o *Privacy) Set(s string) error { return o.UnmarshalText([]byte(s)) }

// String implements [pflag.Value].
func (o Privacy) String() string {
	text, err := o.MarshalText()
	if err != nil {
		return "unknown"
	}

	return string(text)
}

// Type implements [pflag.Value].
func (o Privacy) Type() string { return "level" }
