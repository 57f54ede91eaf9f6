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
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrConverterRegistered indicates an attempt to register a converter
	// under a name that is already taken. Re-registration is rejected so that
	// patterns compiled against the original converter keep their semantics.
	ErrConverterRegistered = errors.New("converter already registered")

	// ErrUnknownConverter indicates a placeholder referenced a converter name
	// that has not been registered.
	ErrUnknownConverter = errors.New("unknown converter")

	// ErrNilConverter indicates a nil converter was passed to Register.
	ErrNilConverter = errors.New("converter is nil")
)

// DefaultName is the converter used for placeholders that omit a converter
// name, e.g. "<slug>" compiles as "<str:slug>".
const DefaultName = "str"

// Registry holds named converters. The built-in set (str, int, float, path,
// uuid) is installed by NewRegistry; additional converters may be registered
// under new names before any pattern referencing them is compiled.
//
// Lookups return the converter value itself, so patterns compiled against a
// name keep referencing the converter they were bound to even if the registry
// is inspected later. Registration of an existing name is an error rather
// than a replacement for the same reason.
//
// All methods are safe for concurrent use, though in practice registration
// happens during single-threaded startup.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

// NewRegistry creates a Registry populated with the built-in converters:
//
//	str    any non-empty segment without '/'
//	int    one or more ASCII digits, converted to int64
//	float  decimal number, converted to float64
//	path   greedy remainder of the URL path
//	uuid   canonical 8-4-4-4-12 form, converted to uuid.UUID
func NewRegistry() *Registry {
	return &Registry{
		converters: map[string]Converter{
			"str":   String{},
			"int":   Int{},
			"float": Float{},
			"path":  Path{},
			"uuid":  UUID{},
		},
	}
}

// Register adds a converter under a unique name.
// Registering an existing name fails with ErrConverterRegistered.
func (r *Registry) Register(name string, c Converter) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrNilConverter)
	}
	if c == nil {
		return fmt.Errorf("%w: %q", ErrNilConverter, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.converters[name]; ok {
		return fmt.Errorf("%w: %q", ErrConverterRegistered, name)
	}
	r.converters[name] = c
	return nil
}

// Lookup returns the converter registered under name.
func (r *Registry) Lookup(name string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.converters[name]
	return c, ok
}

// Names returns the registered converter names in unspecified order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	return names
}
