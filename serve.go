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
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ServeHTTP dispatches the request through the route table, translating the
// three resolution outcomes into handler invocation, 404, and 405 (with the
// Allow header set to the union of accepted methods).
//
// The first request freezes the table, ending the registration phase. The
// request path is resolved as delivered by net/http, i.e. already
// percent-decoded in URL.Path.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Freeze()

	start := time.Now()
	result := a.table.Resolve(r.Method, r.URL.Path)

	template := ""
	if result.Entry != nil {
		template = result.Entry.Template()
	}

	if a.recorder != nil {
		defer func() {
			a.recorder.RecordResolve(r.Context(), r.Method, template, result.Kind.String(), time.Since(start))
		}()
	}

	switch result.Kind {
	case ResultMatched:
		if span := trace.SpanFromContext(r.Context()); span.IsRecording() {
			span.SetAttributes(attribute.String("http.route", template))
		}
		result.Entry.Handler()(w, r, result.Params)

	case ResultMethodNotAllowed:
		w.Header().Set("Allow", strings.Join(result.Allow, ", "))
		a.methodNotAllowed.ServeHTTP(w, r)

	default:
		a.notFound.ServeHTTP(w, r)
	}
}
