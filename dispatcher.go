package autopresenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/a-peyrard/autopresenter/option"
	"github.com/rs/zerolog"
)

// Dispatcher routes values to the first registered TypeDecorator claiming them.
//
// Decorators are consulted in registration order and decoration stops at the first match, even if
// a later decorator would also claim the value. A value no decorator claims is returned as is.
type Dispatcher struct {
	registry *registry

	observer Observer
	logger   zerolog.Logger
}

var _ Decorator = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher without any decorator, see New for the default chain.
func NewDispatcher(opts ...option.Option[Options]) *Dispatcher {
	options := buildOptions(opts)

	return &Dispatcher{
		registry: newRegistry(),
		observer: options.observer,
		logger:   options.logger.With().Str("component", "dispatcher").Logger(),
	}
}

// AddDecorator registers a decorator under key, after the ones already registered.
//
// Adding a decorator under an existing key replaces the previous decorator and keeps its priority.
// Decorators are expected to be registered at bootstrap, before any call to Decorate.
func (d *Dispatcher) AddDecorator(key string, decorator TypeDecorator) *Dispatcher {
	if replaced := d.registry.put(key, decorator); replaced {
		d.logger.Debug().Str("decorator", key).Msgf("replaced decorator with %T", decorator)
	} else {
		d.logger.Debug().Str("decorator", key).Msgf("registered decorator %T", decorator)
	}
	return d
}

// Decorate returns the decorated form of subject.
func (d *Dispatcher) Decorate(subject any) (any, error) {
	for _, entry := range d.registry.all() {
		if !entry.decorator.CanDecorate(subject) {
			continue
		}

		d.logger.Trace().Str("decorator", entry.key).Msgf("decorating %T", subject)

		start := time.Now()
		decorated, err := entry.decorator.Decorate(subject)
		if d.observer != nil {
			d.observer.ObserveDecoration(entry.key, time.Since(start), err)
		}
		if err != nil {
			return nil, err
		}
		return decorated, nil
	}

	return subject, nil
}

// Keys returns the decorator keys in dispatch order.
func (d *Dispatcher) Keys() []string {
	entries := d.registry.all()
	keys := make([]string, len(entries))
	for i, entry := range entries {
		keys[i] = entry.key
	}
	return keys
}

// Len returns the number of registered decorators.
func (d *Dispatcher) Len() int {
	return d.registry.len()
}

// Describe lists the registered decorators in dispatch order.
func (d *Dispatcher) Describe() string {
	var b strings.Builder
	b.WriteString("* Decorators:\n")
	for i, entry := range d.registry.all() {
		decoratorStr := ""
		if stringer, ok := entry.decorator.(fmt.Stringer); ok {
			decoratorStr = stringer.String()
		} else {
			decoratorStr = fmt.Sprintf("%T", entry.decorator)
		}
		b.WriteString(fmt.Sprintf("\t%d. %s: %s\n", i+1, entry.key, decoratorStr))
	}
	return b.String()
}
