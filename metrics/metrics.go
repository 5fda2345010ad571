// Package metrics exposes decoration statistics to prometheus.
package metrics

import (
	"fmt"
	"time"

	"github.com/a-peyrard/autopresenter/option"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type (
	// Collector counts and times the decorations performed by a dispatcher. It satisfies
	// autopresenter.Observer.
	Collector struct {
		decorations *prometheus.CounterVec
		duration    *prometheus.HistogramVec
	}

	Options struct {
		namespace string
		buckets   []float64
	}
)

// WithNamespace prefixes every metric name, "autopresenter" by default.
func WithNamespace(namespace string) option.Option[Options] {
	return func(opts *Options) {
		opts.namespace = namespace
	}
}

// WithBuckets overrides the histogram buckets of the decoration duration.
func WithBuckets(buckets ...float64) option.Option[Options] {
	return func(opts *Options) {
		opts.buckets = buckets
	}
}

// NewCollector creates the decoration metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer, opts ...option.Option[Options]) (*Collector, error) {
	options := option.Build(
		&Options{
			namespace: "autopresenter",
			buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		opts...,
	)

	c := &Collector{
		decorations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: options.namespace,
				Name:      "decorations_total",
				Help:      "Total number of decorations, by decorator key and result",
			},
			[]string{"decorator", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: options.namespace,
				Name:      "decoration_duration_seconds",
				Help:      "Duration of decorations, by decorator key",
				Buckets:   options.buckets,
			},
			[]string{"decorator"},
		),
	}

	for _, collector := range []prometheus.Collector{c.decorations, c.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register decoration metrics:\n\t%w", err)
		}
	}
	return c, nil
}

// MustNewCollector is NewCollector panicking on registration errors.
func MustNewCollector(reg prometheus.Registerer, opts ...option.Option[Options]) *Collector {
	c, err := NewCollector(reg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) ObserveDecoration(key string, elapsed time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	c.decorations.WithLabelValues(key, result).Inc()
	c.duration.WithLabelValues(key).Observe(elapsed.Seconds())
}
