package autopresenter

import (
	"time"

	"github.com/a-peyrard/autopresenter/option"
	"github.com/rs/zerolog"
)

type (
	// Options configures the dispatcher, the resolver, the decorators and the render hook built by
	// this package. Each constructor reads the settings it needs.
	Options struct {
		logger           zerolog.Logger
		observer         Observer
		convention       Convention
		activityFields   []string
		reservedBindings []string
	}

	// Observer is notified after each decoration performed by a registered decorator.
	Observer interface {
		ObserveDecoration(key string, elapsed time.Duration, err error)
	}
)

var (
	// DefaultActivityFields are the enriched activity fields holding domain objects.
	DefaultActivityFields = []string{"actor", "object", "target"}

	// DefaultReservedBindings are the framework bindings the render hook never decorates.
	DefaultReservedBindings = []string{"__env", "app"}
)

func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

func WithObserver(observer Observer) option.Option[Options] {
	return func(opts *Options) {
		opts.observer = observer
	}
}

// WithConvention replaces the presenter naming convention.
func WithConvention(convention Convention) option.Option[Options] {
	return func(opts *Options) {
		opts.convention = convention
	}
}

// WithActivityFields replaces the enriched activity fields to decorate.
func WithActivityFields(fields ...string) option.Option[Options] {
	return func(opts *Options) {
		opts.activityFields = fields
	}
}

// WithReservedBindings adds binding names the render hook must leave untouched.
func WithReservedBindings(names ...string) option.Option[Options] {
	return func(opts *Options) {
		opts.reservedBindings = append(opts.reservedBindings, names...)
	}
}

func buildOptions(opts []option.Option[Options]) *Options {
	return option.Build(
		&Options{
			logger:           zerolog.Nop(),
			convention:       DefaultConvention(),
			activityFields:   DefaultActivityFields,
			reservedBindings: append([]string(nil), DefaultReservedBindings...),
		},
		opts...,
	)
}
