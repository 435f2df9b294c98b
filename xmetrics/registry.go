package xmetrics

import (
	"fmt"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is a Prometheus registry which also hands out its preregistered metrics, either as Prometheus
// vectors or wrapped as go-kit metrics.
type Registry interface {
	prometheus.Gatherer
	prometheus.Registerer

	NewCounterVec(name string) *prometheus.CounterVec
	NewGaugeVec(name string) *prometheus.GaugeVec
	NewHistogramVec(name string) *prometheus.HistogramVec

	NewCounter(name string) metrics.Counter
	NewGauge(name string) metrics.Gauge
}

type registry struct {
	*prometheus.Registry
	collectors map[string]prometheus.Collector
}

// lookup returns the preregistered metric with the given name.  Asking for a metric that was never
// preregistered, or asking for it as the wrong type, is a programming error and panics.
func (r *registry) lookup(name, metricType string) prometheus.Collector {
	c, ok := r.collectors[name]
	if !ok {
		panic(fmt.Errorf("the metric %s was not preregistered", name))
	}

	var matched bool
	switch metricType {
	case CounterType:
		_, matched = c.(*prometheus.CounterVec)
	case GaugeType:
		_, matched = c.(*prometheus.GaugeVec)
	case HistogramType:
		_, matched = c.(*prometheus.HistogramVec)
	}

	if !matched {
		panic(fmt.Errorf("the metric %s is not a %s", name, metricType))
	}

	return c
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	return r.lookup(name, CounterType).(*prometheus.CounterVec)
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	return r.lookup(name, GaugeType).(*prometheus.GaugeVec)
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	return r.lookup(name, HistogramType).(*prometheus.HistogramVec)
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

// NewRegistry creates a Registry and preregisters every metric described by the options, plus the
// Go and process collectors unless they are disabled.  A nil Options is valid.
func NewRegistry(o *Options) (Registry, error) {
	r := &registry{
		Registry:   o.registry(),
		collectors: make(map[string]prometheus.Collector),
	}

	for _, m := range o.metrics() {
		if _, ok := r.collectors[m.Name]; ok {
			return nil, fmt.Errorf("duplicate metric: %s", m.Name)
		}

		c, err := NewCollector(m, o.namespace(), o.subsystem())
		if err != nil {
			return nil, err
		}

		if err := r.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("error while preregistering metric %s: %w", m.Name, err)
		}

		r.collectors[m.Name] = c
	}

	return r, nil
}
