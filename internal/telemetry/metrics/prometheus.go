package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the registry and registers the process and go runtime
// collectors, plus any additional collectors given (e.g. the pgx pool collector).
func SetupPrometheus(additionalCollectors ...prometheus.Collector) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	for _, c := range additionalCollectors {
		registry.MustRegister(c)
	}
	return registry
}
