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

// Package convert provides the path segment converters used by route
// placeholders.
//
// A converter pairs a match predicate (does this raw segment belong to the
// converter's grammar?) with a conversion function (what typed value does it
// carry?). The two are deliberately separate: matching participates in route
// resolution and must be cheap and pure, while conversion runs only once a
// pattern has structurally matched.
//
// The built-in set is fixed and installed by NewRegistry:
//
//	str    any non-empty segment, converted to string
//	int    ASCII digit run, converted to int64
//	float  decimal number, converted to float64
//	path   greedy remainder of the path, converted to string
//	uuid   canonical hex-grouped form, converted to uuid.UUID
//
// Custom converters register under new names:
//
//	reg := convert.NewRegistry()
//	err := reg.Register("slug", slugConverter{})
//
// Names are never rebound: registering an existing name fails so that
// patterns compiled before the call keep the semantics they were built with.
package convert
