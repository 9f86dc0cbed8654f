package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Problems counts problem documents written to clients.
// A nil *Problems is valid and records nothing.
type Problems struct {
	emitted   *prometheus.CounterVec
	fallbacks prometheus.Counter
}

func newProblems(reg prometheus.Registerer, ns string) *Problems {
	p := &Problems{
		emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "problems_emitted_total",
			Help:      "Problem documents written to clients, by status and problem type.",
		}, []string{"status", "type"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "problem_encode_fallbacks_total",
			Help:      "Problems that could not be encoded and were replaced by the static internal server error.",
		}),
	}
	reg.MustRegister(p.emitted, p.fallbacks)
	return p
}

// Emitted records one problem written with the given status and type.
func (p *Problems) Emitted(status int, problemType string) {
	if p == nil {
		return
	}
	p.emitted.WithLabelValues(strconv.Itoa(status), problemType).Inc()
}

// Fallback records one substitution of the static fallback response.
func (p *Problems) Fallback() {
	if p == nil {
		return
	}
	p.fallbacks.Inc()
}
