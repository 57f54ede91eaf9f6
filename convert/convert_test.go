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

package convert

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStringConverter tests the default segment converter.
func TestStringConverter(t *testing.T) {
	t.Parallel()
	c := String{}

	assert.True(t, c.Match("hello"))
	assert.True(t, c.Match("hello-world_123"))
	assert.True(t, c.Match("%41")) // percent-decoded upstream, opaque here
	assert.False(t, c.Match(""))
	assert.False(t, c.Match("a/b"))

	v, err := c.Convert("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

// TestIntConverter tests digit matching and int64 conversion.
func TestIntConverter(t *testing.T) {
	t.Parallel()
	c := Int{}

	tests := []struct {
		segment string
		match   bool
	}{
		{"0", true},
		{"42", true},
		{"0042", true},
		{"", false},
		{"-5", false}, // unsigned by default
		{"4.2", false},
		{"42abc", false},
		{"abc", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.match, c.Match(tt.segment), "Match(%q)", tt.segment)
	}

	v, err := c.Convert("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	// Leading zeros are accepted and parse as the same value.
	v, err = c.Convert("0042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

// TestIntConverterSigned tests the opt-in signed variant.
func TestIntConverterSigned(t *testing.T) {
	t.Parallel()
	c := Int{Signed: true}

	assert.True(t, c.Match("-5"))
	assert.True(t, c.Match("5"))
	assert.False(t, c.Match("-"))
	assert.False(t, c.Match("--5"))

	v, err := c.Convert("-5")
	require.NoError(t, err)
	assert.Equal(t, int64(-5), v)
}

// TestIntConverterOverflow verifies overflow surfaces as a conversion error,
// not a panic or a silent truncation.
func TestIntConverterOverflow(t *testing.T) {
	t.Parallel()
	c := Int{}

	overflow := "99999999999999999999999999"
	require.True(t, c.Match(overflow), "overflowing digit run still matches structurally")

	_, err := c.Convert(overflow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversion)
}

// TestFloatConverter tests the decimal grammar and float64 conversion.
func TestFloatConverter(t *testing.T) {
	t.Parallel()
	c := Float{}

	tests := []struct {
		segment string
		match   bool
	}{
		{"3.14", true},
		{"42", true},
		{"-0.5", true},
		{"+1", true},
		{".5", true},
		{"1.", true},
		{"1e10", true},
		{"1.5E-3", true},
		{"", false},
		{".", false},
		{"1e", false},
		{"abc", false},
		{"1.2.3", false},
		{"NaN", false},
		{"Inf", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.match, c.Match(tt.segment), "Match(%q)", tt.segment)
	}

	v, err := c.Convert("3.14")
	require.NoError(t, err)
	assert.InDelta(t, 3.14, v, 1e-9)
}

// TestPathConverter tests the greedy remainder converter.
func TestPathConverter(t *testing.T) {
	t.Parallel()
	c := Path{}

	assert.True(t, c.Greedy())
	assert.True(t, c.Match("a/b/c.txt"))
	assert.True(t, c.Match("single"))
	assert.False(t, c.Match(""))

	v, err := c.Convert("docs/guide/intro.md")
	require.NoError(t, err)
	assert.Equal(t, "docs/guide/intro.md", v)
}

// TestUUIDConverter tests strict canonical-form UUID matching.
func TestUUIDConverter(t *testing.T) {
	t.Parallel()
	c := UUID{}

	canonical := "123e4567-e89b-12d3-a456-426614174000"
	assert.True(t, c.Match(canonical))
	assert.True(t, c.Match("123E4567-E89B-12D3-A456-426614174000"), "uppercase hex is canonical")

	// Forms uuid.Parse would accept but the route grammar must not.
	assert.False(t, c.Match("{123e4567-e89b-12d3-a456-426614174000}"))
	assert.False(t, c.Match("urn:uuid:123e4567-e89b-12d3-a456-426614174000"))
	assert.False(t, c.Match("123e4567e89b12d3a456426614174000"))
	assert.False(t, c.Match("123e4567-e89b-12d3-a456-42661417400"))
	assert.False(t, c.Match("g23e4567-e89b-12d3-a456-426614174000"))

	v, err := c.Convert(canonical)
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse(canonical), v)

	_, err = c.Convert("not-a-uuid-at-all-but-36-chars-long!")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversion)
}

// TestRegistryDefaults verifies the registry ships the five built-ins.
func TestRegistryDefaults(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	for _, name := range []string{"str", "int", "float", "path", "uuid"} {
		_, ok := reg.Lookup(name)
		assert.True(t, ok, "built-in converter %q missing", name)
	}

	_, ok := reg.Lookup("slug")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"str", "int", "float", "path", "uuid"}, reg.Names())
}

// slugConverter is a custom converter used by registry tests.
type slugConverter struct{}

func (slugConverter) Match(segment string) bool {
	if segment == "" {
		return false
	}
	for i := 0; i < len(segment); i++ {
		c := segment[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}

func (slugConverter) Convert(segment string) (any, error) {
	return segment, nil
}

// TestRegistryRegister tests custom registration and its error cases.
func TestRegistryRegister(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	require.NoError(t, reg.Register("slug", slugConverter{}))

	c, ok := reg.Lookup("slug")
	require.True(t, ok)
	assert.True(t, c.Match("hello-world"))
	assert.False(t, c.Match("Hello"))

	// Duplicate names are rejected, built-ins included.
	err := reg.Register("slug", slugConverter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConverterRegistered)

	err = reg.Register("int", slugConverter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConverterRegistered)

	err = reg.Register("nil", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNilConverter)
}
