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
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBlueprintPrefix tests that merged routes are rebased under the prefix.
func TestBlueprintPrefix(t *testing.T) {
	t.Parallel()
	app := MustNew()

	auth := NewBlueprint("auth", WithPrefix("/auth"))
	require.NoError(t, auth.Handle("/login", noopHandler, WithMethods("GET", "POST")))
	require.NoError(t, auth.GET("/logout", noopHandler))
	require.NoError(t, app.MergeBlueprint(auth))

	assert.Equal(t, ResultMatched, app.Resolve("GET", "/auth/login").Kind)
	assert.Equal(t, ResultMatched, app.Resolve("POST", "/auth/login").Kind)
	assert.Equal(t, ResultMatched, app.Resolve("GET", "/auth/logout").Kind)

	// The unprefixed path does not exist.
	assert.Equal(t, ResultNotFound, app.Resolve("GET", "/login").Kind)
}

// TestBlueprintNoPrefix tests merging without a prefix.
func TestBlueprintNoPrefix(t *testing.T) {
	t.Parallel()
	app := MustNew()

	bp := NewBlueprint("core")
	require.NoError(t, bp.GET("/health", noopHandler))
	require.NoError(t, app.MergeBlueprint(bp))

	assert.Equal(t, ResultMatched, app.Resolve("GET", "/health").Kind)
}

// TestBlueprintPrefixTrailingSlashTrimmed tests prefix normalization.
func TestBlueprintPrefixTrailingSlashTrimmed(t *testing.T) {
	t.Parallel()
	app := MustNew()

	bp := NewBlueprint("api", WithPrefix("/api/"))
	require.NoError(t, bp.GET("/v1", noopHandler))
	require.NoError(t, app.MergeBlueprint(bp))

	assert.Equal(t, ResultMatched, app.Resolve("GET", "/api/v1").Kind)
}

// TestBlueprintQualifiedNames tests "blueprint.route" name qualification.
func TestBlueprintQualifiedNames(t *testing.T) {
	t.Parallel()
	app := MustNew()

	auth := NewBlueprint("auth", WithPrefix("/auth"))
	require.NoError(t, auth.GET("/login", noopHandler, WithName("login")))
	require.NoError(t, app.MergeBlueprint(auth))

	path, err := app.URLFor("auth.login", nil)
	require.NoError(t, err)
	assert.Equal(t, "/auth/login", path)

	_, err = app.URLFor("login", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

// TestBlueprintMergeOnce tests the merge-once lifecycle.
func TestBlueprintMergeOnce(t *testing.T) {
	t.Parallel()
	app := MustNew()
	other := MustNew()

	bp := NewBlueprint("once", WithPrefix("/once"))
	require.NoError(t, bp.GET("/x", noopHandler))

	require.NoError(t, app.MergeBlueprint(bp))
	assert.True(t, bp.Merged())

	// Registering after merge fails.
	err := bp.GET("/y", noopHandler)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBlueprintMerged)

	// Merging again fails, even into a different application.
	err = other.MergeBlueprint(bp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBlueprintMerged)
}

// TestBlueprintNameUnique tests blueprint-name uniqueness per application.
func TestBlueprintNameUnique(t *testing.T) {
	t.Parallel()
	app := MustNew()

	first := NewBlueprint("dup")
	require.NoError(t, first.GET("/a", noopHandler))
	require.NoError(t, app.MergeBlueprint(first))

	second := NewBlueprint("dup")
	require.NoError(t, second.GET("/b", noopHandler))
	err := app.MergeBlueprint(second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBlueprintName)
}

// TestBlueprintEagerSyntaxCheck tests that template syntax errors surface at
// declaration, before any merge.
func TestBlueprintEagerSyntaxCheck(t *testing.T) {
	t.Parallel()
	bp := NewBlueprint("bad")

	err := bp.GET("/user/<>", noopHandler)
	require.Error(t, err)

	err = bp.GET("no-slash", noopHandler)
	require.Error(t, err)

	err = bp.GET("/x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilHandler)
}

// TestBlueprintConverterResolvedAtMerge tests that converter names resolve
// against the target application's registry, not at declaration time.
func TestBlueprintConverterResolvedAtMerge(t *testing.T) {
	t.Parallel()
	bp := NewBlueprint("custom")
	require.NoError(t, bp.GET("/code/<twochar:cc>", noopHandler))

	// Merging into an app without the converter fails.
	plain := MustNew()
	err := plain.MergeBlueprint(bp)
	require.Error(t, err)

	// The same declaration merges cleanly where the converter exists.
	bp2 := NewBlueprint("custom")
	require.NoError(t, bp2.GET("/code/<twochar:cc>", noopHandler))

	app := MustNew()
	require.NoError(t, app.RegisterConverter("twochar", twoCharConverter{}))
	require.NoError(t, app.MergeBlueprint(bp2))
	assert.Equal(t, ResultMatched, app.Resolve("GET", "/code/fr").Kind)
}

// TestBlueprintMergeConflict tests that a merged route colliding with an
// existing route aborts the merge.
func TestBlueprintMergeConflict(t *testing.T) {
	t.Parallel()
	app := MustNew()
	addRoute(t, app, "/api/users", "GET")

	bp := NewBlueprint("api", WithPrefix("/api"))
	require.NoError(t, bp.GET("/users", noopHandler))

	err := app.MergeBlueprint(bp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteConflict)
}

// TestBlueprintStaticMount tests the synthetic static file route.
func TestBlueprintStaticMount(t *testing.T) {
	t.Parallel()

	assets := fstest.MapFS{
		"logo.png":     {Data: []byte("png-bytes")},
		"css/site.css": {Data: []byte("body{}")},
	}

	app := MustNew()
	admin := NewBlueprint("admin",
		WithPrefix("/admin"),
		WithStaticFS("/static", http.FS(assets)),
	)
	require.NoError(t, admin.GET("/dashboard", noopHandler))
	require.NoError(t, app.MergeBlueprint(admin))

	// The mount resolves as a greedy file route.
	r := app.Resolve("GET", "/admin/static/css/site.css")
	require.Equal(t, ResultMatched, r.Kind)
	assert.True(t, r.Entry.IsStaticMount())
	file, ok := r.Params.String("file")
	require.True(t, ok)
	assert.Equal(t, "css/site.css", file)

	// And serves file contents end to end.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/static/logo.png", nil)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	// A missing file is a handler-level 404.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/static/nope.txt", nil)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestAppStaticMount tests the application-level static mount.
func TestAppStaticMount(t *testing.T) {
	t.Parallel()

	assets := fstest.MapFS{
		"robots.txt": {Data: []byte("User-agent: *\n")},
	}

	app := MustNew()
	require.NoError(t, app.StaticFS("/public", http.FS(assets)))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public/robots.txt", nil)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User-agent: *\n", rec.Body.String())
}
