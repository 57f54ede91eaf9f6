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

package blueweb

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// URLFor builds the concrete URL path for a named route by substituting the
// given values into the route's parameter placeholders. Routes merged from a
// blueprint are addressed by their qualified name, e.g. "auth.login".
//
// Every parameter the route declares must be present in params; extra keys
// are rejected rather than silently dropped. Values are percent-escaped per
// segment, except for greedy parameters, whose '/' separators are preserved.
func (a *App) URLFor(name string, params map[string]any) (string, error) {
	a.mu.Lock()
	entry, ok := a.named[name]
	a.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	pattern := entry.Pattern()
	if pattern.Template() == "/" {
		if len(params) != 0 {
			return "", fmt.Errorf("%w: route %q takes no parameters", ErrMissingRouteParameter, name)
		}
		return "/", nil
	}

	var b strings.Builder
	used := 0
	for _, seg := range pattern.Segments() {
		b.WriteByte('/')
		if !seg.IsParam() {
			b.WriteString(seg.Literal)
			continue
		}

		value, ok := params[seg.Param]
		if !ok {
			return "", fmt.Errorf("%w: route %q requires %q", ErrMissingRouteParameter, name, seg.Param)
		}
		used++

		text := formatParam(value)
		if seg.Greedy {
			// Escape each piece but keep the separators meaningful.
			pieces := strings.Split(text, "/")
			for i, p := range pieces {
				pieces[i] = url.PathEscape(p)
			}
			b.WriteString(strings.Join(pieces, "/"))
		} else {
			b.WriteString(url.PathEscape(text))
		}
	}

	if used != len(params) {
		return "", fmt.Errorf("%w: route %q does not accept all given parameters", ErrMissingRouteParameter, name)
	}
	return b.String(), nil
}

// formatParam renders a parameter value as path text.
func formatParam(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
