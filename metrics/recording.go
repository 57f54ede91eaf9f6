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
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// initializeInstruments creates the routing instruments on the configured
// meter.
func (r *Recorder) initializeInstruments() error {
	var err error

	r.resolveDuration, err = r.meter.Float64Histogram(
		"router.resolve.duration",
		metric.WithDescription("Route resolution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create resolve duration histogram: %w", err)
	}

	r.resolveCount, err = r.meter.Int64Counter(
		"router.resolve.count",
		metric.WithDescription("Route resolutions by outcome"),
	)
	if err != nil {
		return fmt.Errorf("failed to create resolve counter: %w", err)
	}

	r.registrationCount, err = r.meter.Int64Counter(
		"router.route.registrations",
		metric.WithDescription("Routes registered on the application"),
	)
	if err != nil {
		return fmt.Errorf("failed to create registration counter: %w", err)
	}

	return nil
}

// RecordResolve records one route resolution: the request method, the
// matched route template ("" for a miss), the outcome label ("matched",
// "not_found", or "method_not_allowed"), and the resolution duration.
//
// The route template, not the raw request path, is used as the attribute
// value so metric cardinality stays bounded by the route table size.
func (r *Recorder) RecordResolve(ctx context.Context, method, route, outcome string, d time.Duration) {
	if !r.enabled || r.resolveDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("http.method", strings.ToUpper(method)),
		attribute.String("http.route", route),
		attribute.String("router.outcome", outcome),
	)

	r.resolveDuration.Record(ctx, d.Seconds(), attrs)
	r.resolveCount.Add(ctx, 1, attrs)
}

// RecordRegistration records one route registration with its accepted
// methods and template.
func (r *Recorder) RecordRegistration(methods []string, route string) {
	if !r.enabled || r.registrationCount == nil {
		return
	}

	r.registrationCount.Add(context.Background(), 1, metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("http.method", strings.Join(methods, ",")),
		attribute.String("http.route", route),
	))
}
