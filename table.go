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
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/blueweb-dev/blueweb/compiler"
)

// HandlerFunc is the handler signature dispatched by the route table. The
// third argument carries the converted path parameters of the matched route.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, p Params)

// Entry is one registered endpoint: a compiled pattern, the accepted method
// set, the handler, and an optional unique name. Entries are immutable after
// creation and owned by the Table (or transiently by a Blueprint before
// merge).
type Entry struct {
	pattern     *compiler.Pattern
	methods     map[string]struct{}
	handler     HandlerFunc
	name        string
	staticMount bool
}

// newEntry builds an Entry with a normalized method set. Methods are
// uppercased; GET implies HEAD per RFC 7231.
func newEntry(p *compiler.Pattern, methods []string, handler HandlerFunc, name string) (*Entry, error) {
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMethods, p.Template())
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilHandler, p.Template())
	}

	set := make(map[string]struct{}, len(methods)+1)
	for _, m := range methods {
		set[strings.ToUpper(m)] = struct{}{}
	}
	if _, ok := set[http.MethodGet]; ok {
		set[http.MethodHead] = struct{}{}
	}

	return &Entry{
		pattern: p,
		methods: set,
		handler: handler,
		name:    name,
	}, nil
}

// Pattern returns the entry's compiled pattern.
func (e *Entry) Pattern() *compiler.Pattern {
	return e.pattern
}

// Template returns the route template the entry was registered with.
func (e *Entry) Template() string {
	return e.pattern.Template()
}

// Name returns the entry's name, or "" if unnamed.
func (e *Entry) Name() string {
	return e.name
}

// Handler returns the entry's handler.
func (e *Entry) Handler() HandlerFunc {
	return e.handler
}

// Methods returns the accepted methods in sorted order, including the HEAD
// implied by GET.
func (e *Entry) Methods() []string {
	out := make([]string, 0, len(e.methods))
	for m := range e.methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// IsStaticMount reports whether the entry is a synthetic static-asset route
// emitted for a blueprint or application mount.
func (e *Entry) IsStaticMount() bool {
	return e.staticMount
}

// allows reports whether the entry accepts the (already uppercased) method.
func (e *Entry) allows(method string) bool {
	_, ok := e.methods[method]
	return ok
}

// overlaps reports whether the entry's method set intersects other's.
func (e *Entry) overlaps(other *Entry) bool {
	for m := range e.methods {
		if _, ok := other.methods[m]; ok {
			return true
		}
	}
	return false
}

// ResultKind discriminates the three outcomes of Resolve. None of them is an
// error: NotFound and MethodNotAllowed are ordinary results the host
// translates into 404 and 405 responses.
type ResultKind uint8

const (
	// ResultNotFound means no registered pattern structurally matched the
	// path.
	ResultNotFound ResultKind = iota

	// ResultMatched means a route matched; Entry and Params are set.
	ResultMatched

	// ResultMethodNotAllowed means at least one pattern structurally matched
	// the path but none accepted the method; Allow carries the union of
	// accepted methods.
	ResultMethodNotAllowed
)

// String returns the kind's name for logs and metrics labels.
func (k ResultKind) String() string {
	switch k {
	case ResultMatched:
		return "matched"
	case ResultMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "not_found"
	}
}

// Result is the outcome of resolving one (method, path) pair.
type Result struct {
	Kind   ResultKind
	Entry  *Entry   // set when Kind == ResultMatched
	Params Params   // set when Kind == ResultMatched
	Allow  []string // set when Kind == ResultMethodNotAllowed, sorted
}

// staticHit records a literal-only entry for the exact-path fast map,
// together with its registration index so ordering semantics survive.
type staticHit struct {
	entry *Entry
	idx   int
}

// Table is the flattened, ordered collection of all route entries. It is
// mutated only during the single-threaded registration phase; after Freeze
// (or the first request through the dispatch adapter) it is read-only and
// Resolve is safe for unlimited concurrent use without locking.
//
// Matching tries entries in registration order, first-registered-wins.
// Literal-only entries additionally populate an exact-path map, used as a
// fast path only when no earlier dynamic entry could shadow the hit, so the
// observable order semantics are identical to a plain scan.
type Table struct {
	mu      sync.Mutex
	entries []*Entry
	shapes  map[string][]*Entry
	static  map[string][]staticHit
	// index of the first entry with parameters, or -1 while none exist
	firstDynamic int
	frozen       atomic.Bool
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		shapes:       make(map[string][]*Entry),
		static:       make(map[string][]staticHit),
		firstDynamic: -1,
	}
}

// Add appends an entry, enforcing the collision rule: an entry whose pattern
// shape equals an existing entry's shape with overlapping methods fails with
// ErrRouteConflict. Adding to a frozen table fails with ErrRoutesFrozen.
func (t *Table) Add(e *Entry) error {
	if t.frozen.Load() {
		return fmt.Errorf("%w: cannot register %s", ErrRoutesFrozen, e.Template())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	shape := e.pattern.Shape()
	for _, prev := range t.shapes[shape] {
		if prev.overlaps(e) {
			return fmt.Errorf("%w: %s %s collides with %s (overlapping methods %v)",
				ErrRouteConflict, strings.Join(e.Methods(), ","), e.Template(),
				prev.Template(), sharedMethods(prev, e))
		}
	}

	idx := len(t.entries)
	t.entries = append(t.entries, e)
	t.shapes[shape] = append(t.shapes[shape], e)

	if e.pattern.IsStatic() {
		path := e.Template()
		t.static[path] = append(t.static[path], staticHit{entry: e, idx: idx})
	} else if t.firstDynamic == -1 {
		t.firstDynamic = idx
	}
	return nil
}

// sharedMethods returns the sorted intersection of two entries' method sets.
func sharedMethods(a, b *Entry) []string {
	var out []string
	for m := range a.methods {
		if _, ok := b.methods[m]; ok {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// Freeze marks the table read-only. Registration after Freeze fails;
// resolution before Freeze is permitted but not concurrency-safe against
// in-flight registration. Freeze is idempotent.
func (t *Table) Freeze() {
	t.frozen.Store(true)
}

// Frozen reports whether the table has been frozen.
func (t *Table) Frozen() bool {
	return t.frozen.Load()
}

// Len returns the number of registered entries.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Entries returns a copy of the entry list in registration order.
func (t *Table) Entries() []*Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Resolve maps an incoming (method, path) to a route entry plus converted
// parameters. The path is assumed percent-decoded and normalized by the
// transport layer.
//
// Entries are tried in registration order. A structural match whose method
// set excludes the request method contributes its methods to the
// MethodNotAllowed union; a structural match whose parameter conversion
// fails is skipped entirely and the scan continues. Resolve never returns an
// error: all three outcomes are well-defined results.
func (t *Table) Resolve(method, path string) Result {
	method = strings.ToUpper(method)

	if r, done := t.resolveStatic(method, path); done {
		return r
	}

	segs := compiler.SplitPath(path)

	var allow map[string]struct{}
	for _, e := range t.entries {
		raw, ok := e.pattern.Match(segs)
		if !ok {
			continue
		}
		if !e.allows(method) {
			if allow == nil {
				allow = make(map[string]struct{}, 4)
			}
			for m := range e.methods {
				allow[m] = struct{}{}
			}
			continue
		}

		values, err := e.pattern.Convert(raw)
		if err != nil {
			// Conversion failure is a non-match; later entries may still win.
			continue
		}
		return Result{Kind: ResultMatched, Entry: e, Params: values}
	}

	if len(allow) > 0 {
		methods := make([]string, 0, len(allow))
		for m := range allow {
			methods = append(methods, m)
		}
		sort.Strings(methods)
		return Result{Kind: ResultMethodNotAllowed, Allow: methods}
	}
	return Result{Kind: ResultNotFound}
}

// resolveStatic serves exact literal paths from the fast map when doing so
// cannot change scan-order semantics: a hit is only taken while its
// registration index precedes every dynamic entry. It reports done=false
// when the full ordered scan is required (for correctness of both precedence
// and the MethodNotAllowed union).
func (t *Table) resolveStatic(method, path string) (Result, bool) {
	hits := t.static[path]
	if len(hits) == 0 {
		return Result{}, false
	}

	for _, h := range hits {
		if t.firstDynamic != -1 && h.idx > t.firstDynamic {
			return Result{}, false
		}
		if h.entry.allows(method) {
			return Result{Kind: ResultMatched, Entry: h.entry, Params: Params{}}, true
		}
	}

	if t.firstDynamic != -1 {
		// A dynamic entry may structurally match this path and either accept
		// the method or widen the Allow union.
		return Result{}, false
	}

	allow := make(map[string]struct{}, 4)
	for _, h := range hits {
		for m := range h.entry.methods {
			allow[m] = struct{}{}
		}
	}
	methods := make([]string, 0, len(allow))
	for m := range allow {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return Result{Kind: ResultMethodNotAllowed, Allow: methods}, true
}
