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
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "blueweb.dev/metrics"

// initializeProvider initializes the metrics provider based on configuration.
func (r *Recorder) initializeProvider() error {
	// A user-provided meter provider bypasses built-in provider setup.
	if r.customMeterProvider {
		if r.meterProvider == nil {
			return fmt.Errorf("custom meter provider is nil")
		}
		r.emitDebug("using custom user-provided meter provider")
		r.meter = r.meterProvider.Meter(meterName)
		return r.initializeInstruments()
	}

	switch r.provider {
	case PrometheusProvider:
		return r.initPrometheusProvider()
	case OTLPProvider:
		return r.initOTLPProvider()
	case StdoutProvider:
		return r.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
}

// initPrometheusProvider wires a private Prometheus registry so multiple
// recorders never collide on the global one.
func (r *Recorder) initPrometheusProvider() error {
	r.prometheusRegistry = promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(r.prometheusRegistry),
	)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	r.prometheusHandler = promhttp.HandlerFor(
		r.prometheusRegistry,
		promhttp.HandlerOpts{},
	)

	r.registerGlobalIfRequested("prometheus")
	r.meter = r.meterProvider.Meter(meterName)

	if err := r.initializeInstruments(); err != nil {
		return err
	}

	if r.autoStartServer {
		r.startMetricsServer()
	}
	return nil
}

// initOTLPProvider initializes the OTLP HTTP metrics provider.
func (r *Recorder) initOTLPProvider() error {
	opts := []otlpmetrichttp.Option{}

	if r.otlpEndpoint != "" {
		endpoint := r.otlpEndpoint
		isHTTP := false

		if strings.HasPrefix(endpoint, "http://") {
			endpoint = strings.TrimPrefix(endpoint, "http://")
			isHTTP = true
		} else if strings.HasPrefix(endpoint, "https://") {
			endpoint = strings.TrimPrefix(endpoint, "https://")
		}
		if idx := strings.Index(endpoint, "/"); idx != -1 {
			endpoint = endpoint[:idx]
		}

		opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		if isHTTP {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(r.exportInterval),
	)

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
	)

	r.registerGlobalIfRequested("otlp")
	r.meter = r.meterProvider.Meter(meterName)
	return r.initializeInstruments()
}

// initStdoutProvider initializes the stdout metrics provider.
func (r *Recorder) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(r.exportInterval),
	)

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
	)

	r.registerGlobalIfRequested("stdout")
	r.meter = r.meterProvider.Meter(meterName)
	return r.initializeInstruments()
}

func (r *Recorder) registerGlobalIfRequested(provider string) {
	if r.registerGlobal {
		r.emitDebug("setting global OpenTelemetry meter provider", "provider", provider)
		otel.SetMeterProvider(r.meterProvider)
	}
}

// startMetricsServer starts a dedicated HTTP server for Prometheus metrics.
func (r *Recorder) startMetricsServer() {
	if r.prometheusHandler == nil {
		return
	}
	if r.isShuttingDown.Load() {
		r.emitDebug("not starting metrics server: shutdown in progress")
		return
	}

	actualPort, err := findAvailablePort(r.metricsPort)
	if err != nil {
		r.emitError("failed to find available port for metrics server",
			"error", err, "preferred_port", r.metricsPort)
		return
	}
	originalPort := r.metricsPort
	r.metricsPort = actualPort

	mux := http.NewServeMux()
	mux.Handle(r.metricsPath, r.prometheusHandler)

	server := &http.Server{
		Addr:         actualPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	r.serverMutex.Lock()
	r.metricsServer = server
	r.serverMutex.Unlock()

	metricsPath := r.metricsPath

	go func() {
		if actualPort != originalPort {
			r.emitWarning("metrics server using different port than requested",
				"actual_address", actualPort+metricsPath,
				"requested_port", originalPort)
		} else {
			r.emitInfo("metrics server starting",
				"address", actualPort+metricsPath,
				"path", metricsPath)
		}

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.serverMutex.Lock()
			r.metricsServer = nil
			r.serverMutex.Unlock()
			r.emitError("metrics server error", "error", err)
		}
	}()
}

// stopMetricsServer stops the dedicated metrics server.
func (r *Recorder) stopMetricsServer(ctx context.Context) error {
	r.serverMutex.Lock()
	server := r.metricsServer
	r.metricsServer = nil
	r.serverMutex.Unlock()

	if server != nil {
		r.emitDebug("shutting down metrics server")
		if err := server.Shutdown(ctx); err != nil {
			r.emitError("error shutting down metrics server", "error", err)
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
	}
	return nil
}

// findAvailablePort tries the preferred port first, then increments until an
// available one is found.
func findAvailablePort(preferredPort string) (string, error) {
	port := preferredPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	portNum, err := strconv.Atoi(strings.TrimPrefix(port, ":"))
	if err != nil {
		return "", fmt.Errorf("invalid port format: %s", preferredPort)
	}

	for i := range 100 {
		testAddr := fmt.Sprintf(":%d", portNum+i)
		listener, err := net.Listen("tcp", testAddr)
		if err == nil {
			listener.Close()
			return testAddr, nil
		}
	}

	return "", fmt.Errorf("no available port found starting from %s", preferredPort)
}
