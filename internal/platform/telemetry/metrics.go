package telemetry

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "viewlink"

// Metrics holds view link counters. A nil *Metrics records nothing.
type Metrics struct {
	links       *prometheus.CounterVec
	linkErrors  *prometheus.CounterVec
	configLoads *prometheus.CounterVec
}

// NewMetrics creates the view link counters and registers them with reg.
// Collectors already registered on reg are reused, so several linkers may share one registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	links, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "links_total",
		Help:      "Number of view links built.",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}

	linkErrors, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "link_errors_total",
		Help:      "Number of failed view link operations by error code.",
	}, []string{"kind", "code"}))
	if err != nil {
		return nil, err
	}

	configLoads, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_loads_total",
		Help:      "Number of view link configuration loads by result.",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		links:       links,
		linkErrors:  linkErrors,
		configLoads: configLoads,
	}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}

		return nil, fmt.Errorf("registering collector: %w", err)
	}

	return c, nil
}

// LinkBuilt records a successful link of the given kind.
func (m *Metrics) LinkBuilt(kind string) {
	if m == nil {
		return
	}

	m.links.WithLabelValues(kind).Inc()
}

// LinkFailed records a failed link operation.
func (m *Metrics) LinkFailed(kind, code string) {
	if m == nil {
		return
	}

	m.linkErrors.WithLabelValues(kind, code).Inc()
}

// ConfigLoaded records a configuration load attempt.
func (m *Metrics) ConfigLoaded(ok bool) {
	if m == nil {
		return
	}

	result := "ok"
	if !ok {
		result = "error"
	}

	m.configLoads.WithLabelValues(result).Inc()
}

// WriteTextfile writes every metric gathered from g to path in the Prometheus text format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}

	return nil
}
