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
	"sync"

	"github.com/blueweb-dev/blueweb/compiler"
	"github.com/blueweb-dev/blueweb/convert"
	"github.com/blueweb-dev/blueweb/metrics"
)

// App is the application registry: it owns the canonical route table and the
// converter registry, merges blueprints into the table, and is the dispatch
// entry point used by the transport layer.
//
// Construction is a single-threaded startup phase: register converters and
// routes, merge blueprints, then call Freeze (or let the first request
// through ServeHTTP freeze implicitly). After the freeze the table is
// read-only and Resolve is safe for unlimited concurrent use.
//
// Example:
//
//	app := blueweb.MustNew()
//	_ = app.GET("/user/<int:user_id>", showUser, blueweb.WithName("user.show"))
//	_ = app.MergeBlueprint(adminBlueprint)
//	app.Freeze()
//	http.ListenAndServe(":8080", app)
type App struct {
	table      *Table
	converters *convert.Registry

	mu         sync.Mutex
	blueprints map[string]struct{}
	named      map[string]*Entry

	notFound         http.Handler
	methodNotAllowed http.Handler
	recorder         *metrics.Recorder

	freezeOnce sync.Once
}

// New creates an App with the built-in converters installed.
func New(opts ...Option) (*App, error) {
	a := &App{
		table:      NewTable(),
		converters: convert.NewRegistry(),
		blueprints: make(map[string]struct{}),
		named:      make(map[string]*Entry),
		notFound:   http.NotFoundHandler(),
		methodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "405 method not allowed", http.StatusMethodNotAllowed)
		}),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.notFound == nil || a.methodNotAllowed == nil {
		return nil, fmt.Errorf("%w: fallback handler is nil", ErrNilHandler)
	}
	return a, nil
}

// MustNew creates an App and panics on configuration errors. Convenient at
// startup where a bad configuration should fail immediately.
func MustNew(opts ...Option) *App {
	a, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("blueweb.MustNew: %v", err))
	}
	return a
}

// Converters returns the application's converter registry.
func (a *App) Converters() *convert.Registry {
	return a.converters
}

// RegisterConverter registers a custom converter under a unique name. It
// must be called before compiling any template that references the name;
// re-registering an existing name fails so already-compiled patterns keep
// the converter they were bound to.
func (a *App) RegisterConverter(name string, c convert.Converter) error {
	return a.converters.Register(name, c)
}

// Handle registers a route on the application's table. The template compiles
// against the application's converter registry; compile failures, conflicts
// with existing routes, and duplicate names are reported synchronously and
// leave the table unchanged.
func (a *App) Handle(template string, handler HandlerFunc, opts ...RouteOption) error {
	cfg := defaultRouteConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return a.register(template, cfg.methods, handler, cfg.name, false)
}

// GET registers a GET (and implied HEAD) route.
func (a *App) GET(template string, handler HandlerFunc, opts ...RouteOption) error {
	return a.Handle(template, handler, append(opts, WithMethods(http.MethodGet))...)
}

// POST registers a POST route.
func (a *App) POST(template string, handler HandlerFunc, opts ...RouteOption) error {
	return a.Handle(template, handler, append(opts, WithMethods(http.MethodPost))...)
}

// PUT registers a PUT route.
func (a *App) PUT(template string, handler HandlerFunc, opts ...RouteOption) error {
	return a.Handle(template, handler, append(opts, WithMethods(http.MethodPut))...)
}

// DELETE registers a DELETE route.
func (a *App) DELETE(template string, handler HandlerFunc, opts ...RouteOption) error {
	return a.Handle(template, handler, append(opts, WithMethods(http.MethodDelete))...)
}

// PATCH registers a PATCH route.
func (a *App) PATCH(template string, handler HandlerFunc, opts ...RouteOption) error {
	return a.Handle(template, handler, append(opts, WithMethods(http.MethodPatch))...)
}

// register compiles and inserts one entry; the single path through which
// every route (direct, blueprint, static) reaches the table.
func (a *App) register(template string, methods []string, handler HandlerFunc, name string, staticMount bool) error {
	pattern, err := compiler.Compile(template, a.converters)
	if err != nil {
		return err
	}

	entry, err := newEntry(pattern, methods, handler, name)
	if err != nil {
		return err
	}
	entry.staticMount = staticMount

	a.mu.Lock()
	defer a.mu.Unlock()

	if name != "" {
		if _, taken := a.named[name]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, name)
		}
	}
	if err := a.table.Add(entry); err != nil {
		return err
	}
	if name != "" {
		a.named[name] = entry
	}

	if a.recorder != nil {
		a.recorder.RecordRegistration(entry.Methods(), template)
	}
	return nil
}

// MergeBlueprint merges a blueprint into the registry: every declared route
// is recompiled under the blueprint prefix and inserted with the usual
// collision rule, route names are qualified as "blueprint.route", and a
// declared static mount emits its synthetic file route. Merge order across
// blueprints, and declaration order within one, determine match precedence.
//
// Merging a blueprint twice fails with ErrBlueprintMerged; reusing a
// blueprint name fails with ErrBlueprintName. Failures abort the merge and
// are intended to abort application startup.
func (a *App) MergeBlueprint(b *Blueprint) error {
	if b == nil {
		return fmt.Errorf("%w: nil blueprint", ErrBlueprintName)
	}

	a.mu.Lock()
	if _, taken := a.blueprints[b.name]; taken {
		a.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrBlueprintName, b.name)
	}
	a.blueprints[b.name] = struct{}{}
	a.mu.Unlock()

	routes, err := b.seal()
	if err != nil {
		return err
	}

	for _, r := range routes {
		name := ""
		if r.name != "" {
			name = b.name + "." + r.name
		}
		if err := a.register(b.prefix+r.template, r.methods, r.handler, name, false); err != nil {
			return fmt.Errorf("merging blueprint %q: %w", b.name, err)
		}
	}

	if b.static != nil {
		template := b.prefix + b.static.Path + "/<path:file>"
		handler := staticFileHandler(b.static.Root)
		name := b.name + ".static"
		if err := a.register(template, []string{http.MethodGet}, handler, name, true); err != nil {
			return fmt.Errorf("merging blueprint %q static mount: %w", b.name, err)
		}
	}
	return nil
}

// Resolve maps (method, path) to a handler plus converted parameters. See
// Table.Resolve for the matching contract.
func (a *App) Resolve(method, path string) Result {
	return a.table.Resolve(method, path)
}

// Freeze ends the registration phase. Registrations and merges after Freeze
// fail with ErrRoutesFrozen. Freeze is idempotent and is called implicitly
// by the first request through ServeHTTP.
func (a *App) Freeze() {
	a.freezeOnce.Do(func() {
		a.table.Freeze()
	})
}

// Frozen reports whether the registration phase has ended.
func (a *App) Frozen() bool {
	return a.table.Frozen()
}
