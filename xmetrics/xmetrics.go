// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

// Package xmetrics holds the small set of metric abstractions used to
// instrument synchronization primitives.  Concrete metrics are go-kit
// metrics backed by Prometheus collectors; instrumentation points accept
// the narrow Adder/Setter interfaces so that any backend can be plugged in.
package xmetrics

import (
	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// Adder represents a metric to which deltas can be added.  Go-kit's
// metrics.Counter, metrics.Gauge, and several prometheus interfaces
// implement this interface.
type Adder interface {
	Add(float64)
}

// Setter represents a metric that can receive updates, e.g. a gauge.
// Go-kit's metrics.Gauge and prometheus gauges implement this interface.
type Setter interface {
	Set(float64)
}

// AddSetter represents a metric that can both have deltas applied and
// receive new values.  Gauges most commonly implement this interface.
type AddSetter interface {
	Adder
	Setter
}

// NewCounter constructs a go-kit counter backed by a Prometheus collector.
// If a non-nil registerer is supplied, the underlying collector is registered
// with it; registration failures panic, as they indicate duplicate metric
// definitions rather than runtime conditions.
func NewCounter(r prometheus.Registerer, opts prometheus.CounterOpts) metrics.Counter {
	cv := prometheus.NewCounterVec(opts, nil)
	if r != nil {
		r.MustRegister(cv)
	}

	return gokitprometheus.NewCounter(cv)
}

// NewGauge constructs a go-kit gauge backed by a Prometheus collector, with
// the same registration behavior as NewCounter.
func NewGauge(r prometheus.Registerer, opts prometheus.GaugeOpts) metrics.Gauge {
	gv := prometheus.NewGaugeVec(opts, nil)
	if r != nil {
		r.MustRegister(gv)
	}

	return gokitprometheus.NewGauge(gv)
}
