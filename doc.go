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

// Package blueweb is a routing and request-dispatch engine built around
// typed path templates of the form "/user/<int:user_id>".
//
// Placeholders name a converter (str, int, float, path, uuid, or any custom
// converter registered on the application) that both constrains what a
// segment matches and converts the matched text to a typed value before the
// handler runs.
//
// # Basic Usage
//
//	app := blueweb.MustNew()
//
//	app.GET("/user/<int:user_id>", func(w http.ResponseWriter, r *http.Request, p blueweb.Params) {
//	    id, _ := p.Int("user_id")
//	    fmt.Fprintf(w, "user %d", id)
//	}, blueweb.WithName("user.show"))
//
//	http.ListenAndServe(":8080", app)
//
// # Matching
//
// Routes are tried in registration order and the first structural match that
// accepts the request method and converts cleanly wins. A path that matches
// no route yields 404; a path whose routes all reject the method yields 405
// with an Allow header carrying the union of accepted methods. Trailing
// slashes are significant: "/about" and "/about/" are distinct routes.
//
// Registering two routes that match exactly the same set of paths with
// overlapping methods fails immediately with ErrRouteConflict.
//
// # Blueprints
//
// A Blueprint groups route declarations under a name and an optional URL
// prefix, to be merged exactly once into an application:
//
//	auth := blueweb.NewBlueprint("auth", blueweb.WithPrefix("/auth"))
//	auth.Handle("/login", loginHandler, blueweb.WithMethods("GET", "POST"), blueweb.WithName("login"))
//	app.MergeBlueprint(auth) // serves /auth/login, named "auth.login"
//
// # Lifecycle
//
// Registration is a single-threaded startup phase. The first request through
// ServeHTTP (or an explicit Freeze call) freezes the route table; after that
// registration fails and concurrent dispatch needs no locking.
package blueweb
