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
)

// staticFileHandler adapts an http.FileSystem into a route handler for the
// synthetic "<path:file>" mount routes. The greedy "file" parameter carries
// the sub-path below the mount; the request is re-rooted onto it so the
// standard file server resolves it against the mount's file system.
func staticFileHandler(root http.FileSystem) HandlerFunc {
	server := http.FileServer(root)
	return func(w http.ResponseWriter, r *http.Request, p Params) {
		file, ok := p.String("file")
		if !ok || file == "" || strings.Contains(file, "..") {
			http.NotFound(w, r)
			return
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/" + file
		r2.URL.RawPath = ""
		server.ServeHTTP(w, r2)
	}
}

// Static mounts a local directory of assets at the given URL path on the
// application itself, outside any blueprint. The mount registers a synthetic
// greedy GET route "path/<path:file>" and follows the usual registration
// rules (ordering, collisions, freeze).
func (a *App) Static(path, dir string) error {
	return a.StaticFS(path, http.Dir(dir))
}

// StaticFS is Static over an arbitrary http.FileSystem.
func (a *App) StaticFS(path string, fs http.FileSystem) error {
	if fs == nil {
		return fmt.Errorf("%w: static mount %q", ErrNilHandler, path)
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	path = strings.TrimSuffix(path, "/")
	template := path + "/<path:file>"
	return a.register(template, []string{http.MethodGet}, staticFileHandler(fs), "", true)
}
