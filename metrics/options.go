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

package metrics

import (
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Option defines functional options for Recorder configuration.
type Option func(*Recorder)

// WithMeterProvider supplies a custom OpenTelemetry metric.MeterProvider.
// Provider options (WithPrometheus, WithOTLP, WithStdout) are ignored when a
// custom provider is set, and its lifecycle stays with the caller: Shutdown
// will not flush or close it.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = provider
		r.customMeterProvider = true
	}
}

// WithGlobalMeterProvider registers the meter provider as the global
// OpenTelemetry meter provider via otel.SetMeterProvider. By default no
// global registration happens, so multiple recorders can coexist.
func WithGlobalMeterProvider() Option {
	return func(r *Recorder) {
		r.registerGlobal = true
	}
}

// WithServiceName sets the service name attribute attached to every metric.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceName = name
		r.initCommonAttributes()
	}
}

// WithServiceVersion sets the service version attribute.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		r.serviceVersion = version
		r.initCommonAttributes()
	}
}

// WithExportInterval sets the export interval for OTLP and stdout providers.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		r.exportInterval = interval
	}
}

// WithDurationBuckets sets custom histogram bucket boundaries, in seconds,
// for the resolution duration histogram.
func WithDurationBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		r.durationBuckets = buckets
	}
}

// WithServerDisabled disables the automatic Prometheus metrics server. Use
// Recorder.Handler to serve metrics manually.
func WithServerDisabled() Option {
	return func(r *Recorder) {
		r.autoStartServer = false
	}
}

// WithEventHandler sets a custom EventHandler for internal operational
// events.
func WithEventHandler(handler EventHandler) Option {
	return func(r *Recorder) {
		r.eventHandler = handler
	}
}

// WithLogger routes internal operational events to the given slog.Logger via
// the default event handler.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	rec, err := metrics.New(metrics.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return WithEventHandler(DefaultEventHandler(logger))
}

// WithPrometheus configures the Prometheus provider with port and path.
//
// Example:
//
//	rec := metrics.MustNew(
//	    metrics.WithPrometheus(":9090", "/metrics"),
//	    metrics.WithServiceName("my-api"),
//	)
func WithPrometheus(port, path string) Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
		r.providerSetCount++
		if port != "" && !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		r.metricsPort = port
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		r.metricsPath = path
	}
}

// WithOTLP configures the OTLP HTTP provider with a collector endpoint.
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) {
		r.provider = OTLPProvider
		r.providerSetCount++
		r.otlpEndpoint = endpoint
	}
}

// WithStdout configures the stdout provider, for development and debugging.
func WithStdout() Option {
	return func(r *Recorder) {
		r.provider = StdoutProvider
		r.providerSetCount++
	}
}
