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

package compiler

import (
	"strings"
)

// maxStackSegments is the capacity of the stack-allocated segment buffer used
// while matching. Paths with more segments fall back to a heap split.
const maxStackSegments = 16

// SplitPath splits a request path into its '/'-delimited segments. The
// leading '/' is skipped; a trailing '/' yields a final empty segment, which
// is what makes trailing-slash matching exact rather than normalized.
// The root path "/" (and "") splits to zero segments.
func SplitPath(path string) []string {
	if path == "" || path == "/" {
		return nil
	}
	if path[0] == '/' {
		path = path[1:]
	}
	return strings.Split(path, "/")
}

// Match performs a structural match of the pattern against pre-split request
// segments. Literal pattern segments must equal the request segment exactly;
// parameter segments must satisfy their converter's match predicate. A greedy
// final parameter consumes all remaining segments as one raw value.
//
// On success it returns the raw text of each parameter in declaration order.
// Match performs no conversion; see Convert.
func (p *Pattern) Match(segs []string) ([]string, bool) {
	n := len(p.segments)

	if p.greedy {
		// All fixed segments must be present, plus at least one for the tail.
		if len(segs) < n {
			return nil, false
		}
	} else if len(segs) != n {
		return nil, false
	}

	var stack [maxStackSegments]string
	var raw []string
	if len(p.params) > 0 {
		if len(p.params) <= maxStackSegments {
			raw = stack[:0]
		} else {
			raw = make([]string, 0, len(p.params))
		}
	}

	for i, seg := range p.segments {
		if !seg.IsParam() {
			if segs[i] != seg.Literal {
				return nil, false
			}
			continue
		}

		if seg.Greedy {
			rest := strings.Join(segs[i:], "/")
			if !seg.Conv.Match(rest) {
				return nil, false
			}
			raw = append(raw, rest)
			break
		}

		if !seg.Conv.Match(segs[i]) {
			return nil, false
		}
		raw = append(raw, segs[i])
	}

	if len(raw) > 0 {
		// Copy out of the stack buffer before it goes out of scope.
		out := make([]string, len(raw))
		copy(out, raw)
		return out, true
	}
	return nil, true
}

// MatchPath is Match over an unsplit request path.
func (p *Pattern) MatchPath(path string) ([]string, bool) {
	return p.Match(SplitPath(path))
}

// Convert runs each raw parameter value, as returned by Match, through its
// converter. The returned map holds converted typed values keyed by
// parameter name. A conversion failure returns the wrapped convert.ErrConversion
// from the converter; callers treat it as a non-match, not a fault.
func (p *Pattern) Convert(raw []string) (map[string]any, error) {
	if len(p.params) == 0 {
		return map[string]any{}, nil
	}

	values := make(map[string]any, len(p.params))
	idx := 0
	for _, seg := range p.segments {
		if !seg.IsParam() {
			continue
		}
		v, err := seg.Conv.Convert(raw[idx])
		if err != nil {
			return nil, err
		}
		values[seg.Param] = v
		idx++
	}
	return values, nil
}
