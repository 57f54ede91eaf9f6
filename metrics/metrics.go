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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	promclient "github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultDurationBuckets are histogram boundaries for resolution duration in
// seconds. Route resolution is fast, so the buckets skew toward the
// microsecond end.
var DefaultDurationBuckets = []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01}

// EventType represents the severity of an internal operational event.
type EventType int

const (
	// EventError indicates an error event (e.g., failed to export metrics).
	EventError EventType = iota
	// EventWarning indicates a warning event.
	EventWarning
	// EventInfo indicates an informational event (e.g., metrics server started).
	EventInfo
	// EventDebug indicates a debug event.
	EventDebug
)

// Event represents an internal operational event from the metrics package:
// errors, warnings, and informational messages about the metrics system's own
// operation.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events. Implementations can log
// events, forward them to monitoring systems, or act on specific types.
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to the given
// slog.Logger. A nil logger yields a no-op handler.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {}
	}

	return func(e Event) {
		switch e.Type {
		case EventError:
			logger.Error(e.Message, e.Args...)
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider uses the Prometheus exporter (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider uses the OTLP HTTP exporter.
	OTLPProvider Provider = "otlp"
	// StdoutProvider uses the stdout exporter (development/testing).
	StdoutProvider Provider = "stdout"
)

// Recorder holds OpenTelemetry metrics configuration and runtime state for
// the routing engine. All methods are safe for concurrent use.
//
// By default the package does NOT set the global OpenTelemetry meter
// provider; use WithGlobalMeterProvider for global registration. This lets
// multiple Recorder instances coexist in one process.
type Recorder struct {
	meter              metric.Meter
	meterProvider      metric.MeterProvider
	prometheusHandler  http.Handler
	prometheusRegistry *promclient.Registry
	metricsServer      *http.Server
	eventHandler       EventHandler

	// Routing instruments
	resolveDuration   metric.Float64Histogram
	resolveCount      metric.Int64Counter
	registrationCount metric.Int64Counter

	durationBuckets []float64

	exportInterval time.Duration

	serviceName    string
	serviceVersion string
	otlpEndpoint   string
	metricsPort    string
	metricsPath    string

	// Pre-computed service attributes shared by every observation.
	serviceNameAttr    attribute.KeyValue
	serviceVersionAttr attribute.KeyValue

	serverMutex sync.Mutex

	provider            Provider
	providerSetCount    int
	isShuttingDown      atomic.Bool
	enabled             bool
	autoStartServer     bool
	customMeterProvider bool
	registerGlobal      bool
}

// New creates a Recorder with the given options. It returns an error if the
// metrics provider fails to initialize; for a version that panics, use
// MustNew.
func New(opts ...Option) (*Recorder, error) {
	r := newDefaultRecorder()

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return r, nil
}

// MustNew is New but panics on initialization failure.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize metrics: %v", err))
	}
	return r
}

func newDefaultRecorder() *Recorder {
	r := &Recorder{
		enabled:         true,
		serviceName:     "blueweb-service",
		serviceVersion:  "1.0.0",
		provider:        PrometheusProvider,
		exportInterval:  30 * time.Second,
		metricsPort:     ":9090",
		metricsPath:     "/metrics",
		autoStartServer: true,
		durationBuckets: DefaultDurationBuckets,
	}
	r.initCommonAttributes()
	return r
}

func (r *Recorder) initCommonAttributes() {
	r.serviceNameAttr = attribute.String("service.name", r.serviceName)
	r.serviceVersionAttr = attribute.String("service.version", r.serviceVersion)
}

// validate checks that the configuration is coherent before any provider
// state is created.
func (r *Recorder) validate() error {
	if r.providerSetCount > 1 {
		return fmt.Errorf("conflicting provider options: only one of WithPrometheus, WithOTLP, or WithStdout can be used")
	}
	if r.serviceName == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if r.serviceVersion == "" {
		return fmt.Errorf("service version cannot be empty")
	}
	if r.exportInterval < time.Second {
		r.emitWarning("export interval is very low, may cause high CPU usage", "interval", r.exportInterval)
	}

	switch r.provider {
	case PrometheusProvider:
		if r.metricsPort == "" {
			return fmt.Errorf("metrics port cannot be empty for Prometheus provider")
		}
		if r.metricsPath == "" {
			return fmt.Errorf("metrics path cannot be empty for Prometheus provider")
		}
	case OTLPProvider:
		if r.otlpEndpoint == "" {
			r.emitWarning("OTLP endpoint not specified, will use default", "default", "http://localhost:4318")
			r.otlpEndpoint = "http://localhost:4318"
		}
	case StdoutProvider:
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
	return nil
}

// Handler returns the Prometheus metrics http.Handler, for serving metrics
// manually when the auto-server is disabled via WithServerDisabled.
func (r *Recorder) Handler() (http.Handler, error) {
	if !r.enabled {
		return nil, fmt.Errorf("metrics not enabled")
	}
	if r.provider != PrometheusProvider || r.prometheusHandler == nil {
		return nil, fmt.Errorf("handler only available with Prometheus provider, current provider: %s", r.provider)
	}
	return r.prometheusHandler, nil
}

// Provider returns the current metrics provider.
func (r *Recorder) Provider() Provider {
	if !r.enabled {
		return ""
	}
	return r.provider
}

// ServerAddress returns the address of the metrics server, or "" when not
// using PrometheusProvider or the server is disabled.
func (r *Recorder) ServerAddress() string {
	if !r.enabled || r.provider != PrometheusProvider || !r.autoStartServer {
		return ""
	}
	return r.metricsPort
}

// Path returns the Prometheus metrics endpoint path.
func (r *Recorder) Path() string {
	if !r.enabled || r.provider != PrometheusProvider {
		return ""
	}
	return r.metricsPath
}

// ServiceName returns the configured service name.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// IsEnabled reports whether metrics are enabled.
func (r *Recorder) IsEnabled() bool {
	return r.enabled
}

// Shutdown gracefully shuts down the metrics system, flushing pending
// metrics. Idempotent; only the first call performs shutdown.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.enabled {
		return nil
	}
	if !r.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error

	if err := r.stopMetricsServer(ctx); err != nil {
		errs = append(errs, err)
	}

	// User-provided providers are managed by the user.
	if r.customMeterProvider {
		r.emitDebug("skipping shutdown of custom meter provider")
	} else if err := r.shutdownSDKMeterProvider(ctx); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

func (r *Recorder) shutdownSDKMeterProvider(ctx context.Context) error {
	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}

	// Flush before shutdown so push-based providers export buffered data.
	if err := mp.ForceFlush(ctx); err != nil {
		r.emitWarning("metrics flush warning", "error", err)
	}

	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}

// ForceFlush immediately exports pending metric data. Useful for push-based
// providers (OTLP, stdout); a no-op for pull-based Prometheus.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if !r.enabled || r.isShuttingDown.Load() {
		return nil
	}
	if mp, ok := r.meterProvider.(*sdkmetric.MeterProvider); ok {
		if err := mp.ForceFlush(ctx); err != nil {
			return fmt.Errorf("metrics force flush: %w", err)
		}
	}
	return nil
}

func (r *Recorder) emitError(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventError, Message: msg, Args: args})
	}
}

func (r *Recorder) emitWarning(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventWarning, Message: msg, Args: args})
	}
}

func (r *Recorder) emitInfo(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventInfo, Message: msg, Args: args})
	}
}

func (r *Recorder) emitDebug(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventDebug, Message: msg, Args: args})
	}
}
