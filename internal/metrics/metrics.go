/*
 * metrics.go, part of molview.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package metrics exposes the counters of a viewer session in Prometheus format.
// Every Metrics value has its own registry, so several sessions (and tests)
// never collide in the global one.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Results used as label values.
const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultDiscarded = "discarded"
)

// Metrics implements render.Observer and the session recorder.
type Metrics struct {
	registry    *prometheus.Registry
	frames      prometheus.Counter
	resets      prometheus.Counter
	loads       *prometheus.CounterVec
	conversions *prometheus.CounterVec
	convSeconds prometheus.Histogram
	atoms       prometheus.Gauge
}

// New registers the molview metrics under namespace in a fresh registry.
// If withRuntime is true, the Go runtime and process collectors are added.
func New(namespace string, withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "frames_rendered_total",
			Help: "Frames rendered by the progressive renderer.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "buffer_resets_total",
			Help: "Times the accumulation buffer was discarded.",
		}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "structure_loads_total",
			Help: "Structure loads by result.",
		}, []string{"result"}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "conversions_total",
			Help: "Remote notation conversions by result.",
		}, []string{"result"}),
		convSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "conversion_duration_seconds",
			Help:    "Latency of remote notation conversions.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		atoms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "atoms",
			Help: "Atoms in the displayed structure.",
		}),
	}
	m.registry.MustRegister(m.frames, m.resets, m.loads, m.conversions, m.convSeconds, m.atoms)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

func (m *Metrics) BufferReset()   { m.resets.Inc() }
func (m *Metrics) FrameRendered() { m.frames.Inc() }

// LoadDone records a structure load. atoms is only used on success.
func (m *Metrics) LoadDone(result string, atoms int) {
	m.loads.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.atoms.Set(float64(atoms))
	}
}

// ConversionDone records a finished conversion and its latency.
func (m *Metrics) ConversionDone(result string, d time.Duration) {
	m.conversions.WithLabelValues(result).Inc()
	m.convSeconds.Observe(d.Seconds())
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
