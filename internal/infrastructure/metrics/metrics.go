// Package metrics exposes a Prometheus registry of ingestion-throughput
// gauges and counters for one tmbuild run, carried through application
// commands via context the same way internal/application/common carries
// the RunLogger.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every counter/gauge tmbuild's pipeline stages update.
type Registry struct {
	reg *prometheus.Registry

	SystemsLoaded   prometheus.Counter
	RoutesLoaded    prometheus.Counter
	WaypointsLoaded prometheus.Counter
	SegmentsLoaded  prometheus.Counter
	DatacheckErrors prometheus.Counter
	FatalErrors     prometheus.Counter
	IngestDuration  prometheus.Histogram
}

// New builds a Registry with all metrics registered.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		SystemsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmbuild_systems_loaded_total",
			Help: "Number of highway systems successfully ingested.",
		}),
		RoutesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmbuild_routes_loaded_total",
			Help: "Number of routes successfully ingested.",
		}),
		WaypointsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmbuild_waypoints_loaded_total",
			Help: "Number of waypoints successfully ingested.",
		}),
		SegmentsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmbuild_segments_loaded_total",
			Help: "Number of highway segments constructed.",
		}),
		DatacheckErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmbuild_datacheck_entries_total",
			Help: "Number of unsuppressed datacheck entries emitted.",
		}),
		FatalErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tmbuild_fatal_errors_total",
			Help: "Number of fatal ingestion errors accumulated.",
		}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tmbuild_system_ingest_seconds",
			Help:    "Wall-clock duration of one pipeline run, ingestion through graph construction.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.SystemsLoaded, r.RoutesLoaded, r.WaypointsLoaded,
		r.SegmentsLoaded, r.DatacheckErrors, r.FatalErrors, r.IngestDuration)
	return r
}

// Gatherer exposes the underlying registry for an HTTP /metrics handler.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

type contextKey int

const registryKey contextKey = iota

// WithRegistry attaches r to ctx.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey, r)
}

// FromContext extracts the Registry from ctx, or nil if none was attached;
// callers must nil-check before use since metrics are optional.
func FromContext(ctx context.Context) *Registry {
	r, _ := ctx.Value(registryKey).(*Registry)
	return r
}
