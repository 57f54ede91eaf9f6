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
	"net/http"
	"strings"
	"sync"

	"github.com/blueweb-dev/blueweb/compiler"
)

// StaticMount describes a blueprint's isolated static-asset mount: a URL
// sub-path under the blueprint prefix and the file system backing it. The
// backing store is opaque to the routing core; it is consumed by the
// static-file handler the merge emits.
type StaticMount struct {
	// Path is the mount sub-path, e.g. "/static". It is composed after the
	// blueprint prefix, so a blueprint at "/admin" mounts at "/admin/static".
	Path string

	// Root is the backing file system.
	Root http.FileSystem
}

// blueprintRoute is a route declaration held by a blueprint until merge.
// Compilation is deferred to merge time because converter names resolve
// against the target application's registry.
type blueprintRoute struct {
	template string
	methods  []string
	handler  HandlerFunc
	name     string
}

// Blueprint is a named, independently-declared group of route registrations
// with an optional URL prefix and an optional static-asset mount. A
// blueprint is not servable on its own: it is populated via Handle and then
// merged exactly once into an App, at which point its routes are rebased
// under the prefix and ownership transfers to the registry. Registering
// routes on a merged blueprint, or merging a blueprint twice, fails with
// ErrBlueprintMerged.
//
// Example:
//
//	auth := blueweb.NewBlueprint("auth", blueweb.WithPrefix("/auth"))
//	_ = auth.Handle("/login", loginHandler, blueweb.WithMethods("GET", "POST"))
//	if err := app.MergeBlueprint(auth); err != nil {
//	    log.Fatal(err)
//	}
type Blueprint struct {
	name   string
	prefix string
	static *StaticMount

	mu     sync.Mutex
	routes []blueprintRoute
	merged bool
}

// BlueprintOption configures a Blueprint at construction.
type BlueprintOption func(*Blueprint)

// WithPrefix sets the blueprint's URL prefix. The prefix must be empty or
// begin with '/'; a trailing '/' is trimmed so composition never produces
// double slashes. Prefix segments are always literal.
func WithPrefix(prefix string) BlueprintOption {
	return func(b *Blueprint) {
		b.prefix = strings.TrimSuffix(prefix, "/")
	}
}

// WithStaticFS declares a static-asset mount at the given sub-path, backed
// by fs. The merge emits a synthetic greedy route
// "prefix + path + /<path:file>" bound to a file-serving handler.
func WithStaticFS(path string, fs http.FileSystem) BlueprintOption {
	return func(b *Blueprint) {
		if path != "" && path[0] != '/' {
			path = "/" + path
		}
		b.static = &StaticMount{Path: strings.TrimSuffix(path, "/"), Root: fs}
	}
}

// WithStaticDir is WithStaticFS over a local directory.
func WithStaticDir(path, dir string) BlueprintOption {
	return WithStaticFS(path, http.Dir(dir))
}

// NewBlueprint creates a blueprint with the given name. Names must be unique
// within the application they merge into; merged route names are qualified
// as "name.route".
func NewBlueprint(name string, opts ...BlueprintOption) *Blueprint {
	b := &Blueprint{name: name}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the blueprint's name.
func (b *Blueprint) Name() string {
	return b.name
}

// Prefix returns the blueprint's URL prefix, "" when unset.
func (b *Blueprint) Prefix() string {
	return b.prefix
}

// Merged reports whether the blueprint has been merged into an App.
func (b *Blueprint) Merged() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.merged
}

// Handle declares a route on the blueprint. The template is validated
// eagerly for placeholder syntax; converter names resolve later, at merge
// time, against the target application's registry. Declaring a route on an
// already-merged blueprint fails with ErrBlueprintMerged.
//
// By default the route accepts GET (and therefore HEAD); use WithMethods and
// WithName to override.
func (b *Blueprint) Handle(template string, handler HandlerFunc, opts ...RouteOption) error {
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, template)
	}
	if err := compiler.CheckSyntax(template); err != nil {
		return err
	}

	cfg := defaultRouteConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.methods) == 0 {
		return fmt.Errorf("%w: %s", ErrNoMethods, template)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.merged {
		return fmt.Errorf("%w: %q cannot accept route %s", ErrBlueprintMerged, b.name, template)
	}
	b.routes = append(b.routes, blueprintRoute{
		template: template,
		methods:  cfg.methods,
		handler:  handler,
		name:     cfg.name,
	})
	return nil
}

// GET declares a GET route on the blueprint.
func (b *Blueprint) GET(template string, handler HandlerFunc, opts ...RouteOption) error {
	return b.Handle(template, handler, append(opts, WithMethods(http.MethodGet))...)
}

// POST declares a POST route on the blueprint.
func (b *Blueprint) POST(template string, handler HandlerFunc, opts ...RouteOption) error {
	return b.Handle(template, handler, append(opts, WithMethods(http.MethodPost))...)
}

// PUT declares a PUT route on the blueprint.
func (b *Blueprint) PUT(template string, handler HandlerFunc, opts ...RouteOption) error {
	return b.Handle(template, handler, append(opts, WithMethods(http.MethodPut))...)
}

// DELETE declares a DELETE route on the blueprint.
func (b *Blueprint) DELETE(template string, handler HandlerFunc, opts ...RouteOption) error {
	return b.Handle(template, handler, append(opts, WithMethods(http.MethodDelete))...)
}

// PATCH declares a PATCH route on the blueprint.
func (b *Blueprint) PATCH(template string, handler HandlerFunc, opts ...RouteOption) error {
	return b.Handle(template, handler, append(opts, WithMethods(http.MethodPatch))...)
}

// seal marks the blueprint merged and hands its declarations to the caller.
// After seal the blueprint is inert: route state is relinquished and every
// further Handle or merge fails.
func (b *Blueprint) seal() ([]blueprintRoute, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.merged {
		return nil, fmt.Errorf("%w: %q", ErrBlueprintMerged, b.name)
	}
	b.merged = true
	routes := b.routes
	b.routes = nil
	return routes, nil
}
