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

// Package compiler turns route templates into matchable patterns.
//
// A template is a path string whose '/'-delimited segments are either
// literals or whole-segment placeholders:
//
//	/user/<int:user_id>
//	/profile/<username>            (defaults to the str converter)
//	/files/<path:filepath>         (greedy, must be final)
//
// Compile resolves each placeholder's converter from a convert.Registry at
// compile time and binds the converter value into the pattern; later registry
// changes never affect already-compiled patterns.
//
// # Matching
//
// Matching is positional and single-pass: the request path is split once,
// literals compare by equality, parameters by their converter's predicate,
// and a greedy final parameter absorbs the remaining segments. A pattern
// matches only when both sides are fully consumed. Conversion to typed
// values is a separate step (Pattern.Convert) so that the route table can
// apply its conversion-failure policy without re-matching.
//
// # Trailing slashes
//
// No normalization is performed. "/users/" compiles to a trailing empty
// literal and therefore matches only "/users/"; "/users" is a different
// pattern. This keeps duplicate-route detection unambiguous.
//
// # Thread safety
//
// Patterns are immutable after Compile and safe for concurrent matching.
// Compilation itself is a pure function over the template and registry.
package compiler
