// Copyright 2026 The Blueweb Authors
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

package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrConversion indicates that a segment passed the converter's match
	// predicate but could not be converted to its typed value (for example,
	// an integer overflow). Resolution treats this as a non-match.
	ErrConversion = errors.New("segment conversion failed")
)

// Converter validates and converts a single raw path segment to a typed value.
//
// Match is a pure predicate over the raw segment text; Convert produces the
// typed value or a wrapped ErrConversion. Both must be safe for concurrent
// use: converters are shared by all compiled patterns that reference them.
//
// A segment never contains '/' except for converters that also implement
// Greedy (see GreedyConverter).
type Converter interface {
	// Match reports whether the raw segment satisfies this converter's
	// segment grammar. It must not allocate or mutate shared state.
	Match(segment string) bool

	// Convert parses the raw segment into its typed value.
	// The returned error wraps ErrConversion on failure.
	Convert(segment string) (any, error)
}

// GreedyConverter is implemented by converters that consume the remainder of
// the request path, slashes included. A greedy converter is only legal as the
// final parameter of a pattern; the compiler enforces this.
type GreedyConverter interface {
	Converter

	// Greedy reports whether the converter consumes all remaining segments.
	Greedy() bool
}

// String matches any non-empty segment without '/' and converts it unchanged.
// It is the default converter for placeholders that omit a converter name.
type String struct{}

// Match reports whether segment is non-empty.
func (String) Match(segment string) bool {
	return segment != "" && !strings.ContainsRune(segment, '/')
}

// Convert returns the segment text unchanged.
func (String) Convert(segment string) (any, error) {
	return segment, nil
}

// Int matches ASCII digit segments and converts them to int64.
// With Signed set, a single leading '-' is accepted.
type Int struct {
	// Signed permits a leading '-'. The registry's built-in "int" converter
	// leaves this false, matching only unsigned digit runs.
	Signed bool
}

// Match reports whether segment is one or more ASCII digits,
// optionally signed when the converter permits it.
func (c Int) Match(segment string) bool {
	if c.Signed && len(segment) > 1 && segment[0] == '-' {
		segment = segment[1:]
	}
	if segment == "" {
		return false
	}
	for i := 0; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}
	return true
}

// Convert parses the segment as a base-10 int64.
// Overflow fails with a wrapped ErrConversion.
func (c Int) Convert(segment string) (any, error) {
	v, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid integer", ErrConversion, segment)
	}
	return v, nil
}

// Float matches decimal-number segments and converts them to float64.
// The grammar accepts an optional sign, an integer part, a fractional part,
// and an optional exponent.
type Float struct{}

// Match reports whether segment is a decimal number.
func (Float) Match(segment string) bool {
	if segment == "" || strings.ContainsRune(segment, '/') {
		return false
	}
	i := 0
	if segment[i] == '-' || segment[i] == '+' {
		i++
	}
	digits := 0
	for i < len(segment) && segment[i] >= '0' && segment[i] <= '9' {
		i++
		digits++
	}
	if i < len(segment) && segment[i] == '.' {
		i++
		for i < len(segment) && segment[i] >= '0' && segment[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(segment) && (segment[i] == 'e' || segment[i] == 'E') {
		i++
		if i < len(segment) && (segment[i] == '-' || segment[i] == '+') {
			i++
		}
		expDigits := 0
		for i < len(segment) && segment[i] >= '0' && segment[i] <= '9' {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == len(segment)
}

// Convert parses the segment as a float64.
func (Float) Convert(segment string) (any, error) {
	v, err := strconv.ParseFloat(segment, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid float", ErrConversion, segment)
	}
	return v, nil
}

// Path matches one or more characters including '/'. It greedily consumes the
// remainder of the request path and is only legal as a pattern's final
// parameter. The converted value is the raw remainder text.
type Path struct{}

// Match reports whether the remainder is non-empty.
func (Path) Match(segment string) bool {
	return segment != ""
}

// Convert returns the remainder text unchanged.
func (Path) Convert(segment string) (any, error) {
	return segment, nil
}

// Greedy reports that Path consumes all remaining segments.
func (Path) Greedy() bool {
	return true
}

// UUID matches the canonical 8-4-4-4-12 hexadecimal grouped form and converts
// it to a uuid.UUID. Any deviation from canonical form (braces, URN prefix,
// missing hyphens) is rejected.
type UUID struct{}

// Match reports whether segment is a canonically-formed UUID.
func (UUID) Match(segment string) bool {
	if len(segment) != 36 {
		return false
	}
	for i := 0; i < 36; i++ {
		c := segment[i]
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isHex(c) {
				return false
			}
		}
	}
	return true
}

// Convert parses the segment into a uuid.UUID value.
func (u UUID) Convert(segment string) (any, error) {
	// Parse accepts several non-canonical forms; re-check the strict grammar
	// so converted values and matched values agree.
	if !u.Match(segment) {
		return nil, fmt.Errorf("%w: %q is not a canonical UUID", ErrConversion, segment)
	}
	v, err := uuid.Parse(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a canonical UUID", ErrConversion, segment)
	}
	return v, nil
}

func isHex(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}
