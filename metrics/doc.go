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

// Package metrics provides OpenTelemetry-based metrics collection for the
// routing engine. It supports multiple exporters (Prometheus, OTLP, stdout)
// and records route resolutions and registrations.
//
// # Basic Usage
//
//	rec := metrics.MustNew(
//	    metrics.WithPrometheus(":9090", "/metrics"),
//	    metrics.WithServiceName("my-service"),
//	)
//	defer rec.Shutdown(context.Background())
//
//	app := blueweb.MustNew(blueweb.WithMetrics(rec))
//
// # Thread Safety
//
// All [Recorder] methods are safe for concurrent use.
//
// # Global State
//
// By default this package does NOT set the global OpenTelemetry meter
// provider. Use [WithGlobalMeterProvider] for global registration; otherwise
// multiple [Recorder] instances coexist in the same process.
//
// # Providers
//
// Three providers are supported:
//   - [PrometheusProvider] (default): exposes metrics via an HTTP endpoint
//   - [OTLPProvider]: pushes metrics to an OTLP collector
//   - [StdoutProvider]: prints metrics to stdout (development/testing)
//
// # Cardinality
//
// Resolution metrics are labeled with the matched route template, never the
// raw request path, so label cardinality is bounded by the size of the route
// table.
package metrics
