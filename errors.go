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

import "errors"

var (
	// ErrRouteConflict indicates two registrations with structurally
	// identical patterns and overlapping method sets. Duplicates are a
	// configuration error caught eagerly at registration, never shadowed
	// silently at match time.
	ErrRouteConflict = errors.New("route conflict")

	// ErrRoutesFrozen indicates a registration or merge was attempted after
	// the table was frozen for serving.
	ErrRoutesFrozen = errors.New("routes are frozen")

	// ErrNoMethods indicates a route registration with an empty method set.
	ErrNoMethods = errors.New("route accepts no methods")

	// ErrNilHandler indicates a route registration with a nil handler.
	ErrNilHandler = errors.New("route handler is nil")

	// ErrBlueprintMerged indicates an operation on a blueprint that has
	// already been merged: registering further routes, or merging it again.
	ErrBlueprintMerged = errors.New("blueprint already merged")

	// ErrBlueprintName indicates a blueprint merge with a name already
	// taken by a previously merged blueprint.
	ErrBlueprintName = errors.New("blueprint name already registered")

	// ErrDuplicateRouteName indicates two routes registered under the same
	// name. Names must be unique for reverse routing.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrRouteNotFound indicates a reverse-routing lookup for an unknown
	// route name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingRouteParameter indicates a reverse-routing call missing a
	// value for one of the route's parameters.
	ErrMissingRouteParameter = errors.New("missing required parameter")
)
