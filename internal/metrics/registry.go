// Package metrics exposes Prometheus instrumentation for emitted problems.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Registry owns the collectors served on /metrics. It implements
// prometheus.Gatherer.
type Registry struct {
	reg      *prometheus.Registry
	problems *Problems
}

// NewRegistry creates the problem counters under namespace. Go runtime and
// process collectors are added when runtime is true.
func NewRegistry(namespace string, runtime bool) *Registry {
	reg := prometheus.NewRegistry()
	if runtime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		)
	}
	return &Registry{
		reg:      reg,
		problems: newProblems(reg, namespace),
	}
}

// Problems returns the problem counters. A nil registry yields nil, which
// records nothing.
func (r *Registry) Problems() *Problems {
	if r == nil {
		return nil
	}
	return r.problems
}

// Gather implements prometheus.Gatherer.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	if r == nil {
		return nil, nil
	}
	return r.reg.Gather()
}

// Handler serves the metrics in r. A nil registry answers 404.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r, promhttp.HandlerOpts{})
}
