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
	"net/http"

	"github.com/blueweb-dev/blueweb/metrics"
)

// Option configures an App at construction.
type Option func(*App)

// WithNotFoundHandler sets the handler invoked when no route structurally
// matches the request path. Defaults to http.NotFoundHandler().
func WithNotFoundHandler(h http.Handler) Option {
	return func(a *App) {
		a.notFound = h
	}
}

// WithMethodNotAllowedHandler sets the handler invoked when a path matches
// but the method is not accepted. The dispatch adapter sets the Allow header
// before invoking it. Defaults to a plain 405 response.
func WithMethodNotAllowedHandler(h http.Handler) Option {
	return func(a *App) {
		a.methodNotAllowed = h
	}
}

// WithMetrics attaches a metrics recorder. The dispatch adapter records one
// observation per request (outcome, method, matched template, duration), and
// the registry records each route registration.
//
// Example:
//
//	rec := metrics.MustNew(metrics.WithPrometheus(":9090", "/metrics"))
//	app := blueweb.MustNew(blueweb.WithMetrics(rec))
func WithMetrics(rec *metrics.Recorder) Option {
	return func(a *App) {
		a.recorder = rec
	}
}

// routeConfig carries per-route registration options.
type routeConfig struct {
	methods []string
	name    string
}

func defaultRouteConfig() routeConfig {
	return routeConfig{methods: []string{http.MethodGet}}
}

// RouteOption configures a single route registration.
type RouteOption func(*routeConfig)

// WithMethods sets the accepted HTTP methods for the route. The default is
// GET; GET always implies HEAD.
func WithMethods(methods ...string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.methods = methods
	}
}

// WithName assigns a name to the route for reverse routing and
// introspection. Names must be unique within the application; routes merged
// from a blueprint are qualified as "blueprint.name".
func WithName(name string) RouteOption {
	return func(cfg *routeConfig) {
		cfg.name = name
	}
}
