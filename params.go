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
	"github.com/google/uuid"
)

// Params holds the converted path parameters of a matched route, keyed by
// parameter name. Values carry the converter's typed result:
//
//	str, path  string
//	int        int64
//	float      float64
//	uuid       uuid.UUID
//
// Custom converters store whatever their Convert returns. The typed getters
// report ok=false when the name is absent or holds a different type.
type Params map[string]any

// Get returns the raw converted value for name.
func (p Params) Get(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

// String returns the value for name as a string.
func (p Params) String(name string) (string, bool) {
	v, ok := p[name].(string)
	return v, ok
}

// Int returns the value for name as an int64.
func (p Params) Int(name string) (int64, bool) {
	v, ok := p[name].(int64)
	return v, ok
}

// Float returns the value for name as a float64.
func (p Params) Float(name string) (float64, bool) {
	v, ok := p[name].(float64)
	return v, ok
}

// UUID returns the value for name as a uuid.UUID.
func (p Params) UUID(name string) (uuid.UUID, bool) {
	v, ok := p[name].(uuid.UUID)
	return v, ok
}
