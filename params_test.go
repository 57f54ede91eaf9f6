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

// TestParamsTypedGetters tests the typed accessors.
func TestParamsTypedGetters(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	p := Params{
		"name":    "alice",
		"age":     int64(30),
		"score":   3.14,
		"item_id": id,
	}

	s, ok := p.String("name")
	require.True(t, ok)
	assert.Equal(t, "alice", s)

	n, ok := p.Int("age")
	require.True(t, ok)
	assert.Equal(t, int64(30), n)

	f, ok := p.Float("score")
	require.True(t, ok)
	assert.InDelta(t, 3.14, f, 1e-9)

	u, ok := p.UUID("item_id")
	require.True(t, ok)
	assert.Equal(t, id, u)

	v, ok := p.Get("name")
	require.True(t, ok)
	assert.Equal(t, "alice", v)
}

// TestParamsTypeMismatch tests ok=false on absent keys and wrong types.
func TestParamsTypeMismatch(t *testing.T) {
	t.Parallel()
	p := Params{"age": int64(30)}

	_, ok := p.String("age")
	assert.False(t, ok, "int64 value is not a string")

	_, ok = p.Int("missing")
	assert.False(t, ok)

	_, ok = p.Get("missing")
	assert.False(t, ok)
}
