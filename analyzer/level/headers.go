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

// Package level defines the textual levels for the adjustable checks.
package level

import (
	"fmt"
	"strings"
)

// Headers specifies the section header validation level.
type Headers uint8

const (
	// HeadersOff disables section header validation.
	HeadersOff Headers = iota

	// HeadersOn validates declarations against existing headers.
	HeadersOn

	// HeadersRequired additionally reports populated categories without
	// a header.
	HeadersRequired
)

// MarshalText implements [encoding.TextMarshaler].
func (o Headers) MarshalText() ([]byte, error) {
	switch o {
	case HeadersOff:
		return []byte("off"), nil

	case HeadersOn:
		return []byte("on"), nil

	case HeadersRequired:
		return []byte("required"), nil

	default:
		return nil, fmt.Errorf("unknown headers level %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Headers) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "true", "on":
		*o = HeadersOn

	case "off", "false":
		*o = HeadersOff

	case "required", "require", "strict":
		*o = HeadersRequired

	default:
		return fmt.Errorf("unknown headers level %q", string(text))
	}

	return nil
}

// Set implements [pflag.Value].
func (o *Headers) Set(s string) error { return o.UnmarshalText([]byte(s)) }

// String implements [pflag.Value].
func (o Headers) String() string {
	text, err := o.MarshalText()
	if err != nil {
		return "unknown"
	}

	return string(text)
}

// Type implements [pflag.Value].
func (o Headers) Type() string { return "level" }
