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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestURLForLiteral tests reverse routing of a parameterless route.
func TestURLForLiteral(t *testing.T) {
	t.Parallel()
	app := MustNew()
	require.NoError(t, app.GET("/about/team", noopHandler, WithName("team")))

	path, err := app.URLFor("team", nil)
	require.NoError(t, err)
	assert.Equal(t, "/about/team", path)
}

// TestURLForParams tests substitution of typed parameter values.
func TestURLForParams(t *testing.T) {
	t.Parallel()
	app := MustNew()
	require.NoError(t, app.GET("/user/<int:id>/posts/<slug>", noopHandler, WithName("post")))

	path, err := app.URLFor("post", map[string]any{"id": int64(42), "slug": "hello-world"})
	require.NoError(t, err)
	assert.Equal(t, "/user/42/posts/hello-world", path)

	// Plain int works too.
	path, err = app.URLFor("post", map[string]any{"id": 7, "slug": "x"})
	require.NoError(t, err)
	assert.Equal(t, "/user/7/posts/x", path)
}

// TestURLForEscaping tests percent-escaping of substituted values.
func TestURLForEscaping(t *testing.T) {
	t.Parallel()
	app := MustNew()
	require.NoError(t, app.GET("/tag/<name>", noopHandler, WithName("tag")))

	path, err := app.URLFor("tag", map[string]any{"name": "a b/c"})
	require.NoError(t, err)
	assert.Equal(t, "/tag/a%20b%2Fc", path)
}

// TestURLForGreedy tests that greedy values keep their slashes.
func TestURLForGreedy(t *testing.T) {
	t.Parallel()
	app := MustNew()
	require.NoError(t, app.GET("/files/<path:file>", noopHandler, WithName("file")))

	path, err := app.URLFor("file", map[string]any{"file": "docs/a b.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/files/docs/a%20b.txt", path)
}

// TestURLForUUID tests uuid.UUID values via their Stringer.
func TestURLForUUID(t *testing.T) {
	t.Parallel()
	app := MustNew()
	require.NoError(t, app.GET("/item/<uuid:item_id>", noopHandler, WithName("item")))

	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	path, err := app.URLFor("item", map[string]any{"item_id": id})
	require.NoError(t, err)
	assert.Equal(t, "/item/123e4567-e89b-12d3-a456-426614174000", path)
}

// TestURLForErrors tests the reverse-routing failure modes.
func TestURLForErrors(t *testing.T) {
	t.Parallel()
	app := MustNew()
	require.NoError(t, app.GET("/user/<int:id>", noopHandler, WithName("user")))

	_, err := app.URLFor("unknown", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteNotFound)

	_, err = app.URLFor("user", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRouteParameter)

	_, err = app.URLFor("user", map[string]any{"id": 1, "extra": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRouteParameter)
}

// TestURLForRoundTrip verifies a built URL resolves back to its route.
func TestURLForRoundTrip(t *testing.T) {
	t.Parallel()
	app := MustNew()
	require.NoError(t, app.GET("/order/<int:id>", noopHandler, WithName("order")))

	path, err := app.URLFor("order", map[string]any{"id": 99})
	require.NoError(t, err)

	r := app.Resolve("GET", path)
	require.Equal(t, ResultMatched, r.Kind)
	assert.Equal(t, "order", r.Entry.Name())
	id, _ := r.Params.Int("id")
	assert.Equal(t, int64(99), id)
}
