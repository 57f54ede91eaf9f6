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

// RouteInfo is a read-only snapshot of one registered route, for diagnostics
// and startup logging.
type RouteInfo struct {
	// Template is the route template as registered, prefix included for
	// blueprint routes.
	Template string

	// Methods is the sorted accepted method set, including the HEAD implied
	// by GET.
	Methods []string

	// Name is the route's unique name, "" if unnamed. Blueprint routes carry
	// the qualified "blueprint.route" form.
	Name string

	// Params lists the parameter names in declaration order.
	Params []string

	// Static reports that the route is a synthetic static-asset mount.
	Static bool
}

// Routes returns a snapshot of all registered routes in registration order,
// which is also match-precedence order.
func (a *App) Routes() []RouteInfo {
	entries := a.table.Entries()
	out := make([]RouteInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, RouteInfo{
			Template: e.Template(),
			Methods:  e.Methods(),
			Name:     e.Name(),
			Params:   e.Pattern().Params(),
			Static:   e.IsStaticMount(),
		})
	}
	return out
}
