package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	// Namespace for all metrics
	namespace = "cozyhearth"
	// Subsystem for simulation metrics
	subsystem = "simulation"
)

// NewRegistry creates a registry with the Go runtime and process collectors
// registered. Collectors in this package register themselves on it.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func registerAll(registerer prometheus.Registerer, metrics ...prometheus.Collector) error {
	if registerer == nil {
		return nil // Metrics not enabled
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
