package view

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/a-peyrard/autopresenter/fn"
	"github.com/a-peyrard/autopresenter/option"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type (
	// Listener is notified right before a view renders, it may change the view bindings.
	Listener interface {
		BeforeRender(v *View) error
	}

	// ListenerFunc adapts a function to a Listener.
	ListenerFunc func(v *View) error

	// Factory creates and renders views.
	//
	// Share, Listen and Make may be called concurrently with renders.
	Factory struct {
		engine Engine

		mu        sync.RWMutex
		shared    map[string]any
		listeners []registeredListener

		logger      zerolog.Logger
		concurrency int
	}

	Options struct {
		logger      zerolog.Logger
		concurrency int
	}

	ListenOptions struct {
		priority int
	}

	registeredListener struct {
		listener Listener
		priority int
	}
)

func (f ListenerFunc) BeforeRender(v *View) error {
	return f(v)
}

func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// WithConcurrency limits the number of views RenderAll renders at the same time, unlimited by default.
func WithConcurrency(concurrency int) option.Option[Options] {
	return func(opts *Options) {
		opts.concurrency = concurrency
	}
}

// WithPriority sets the priority of a listener. Listeners with a higher priority are notified
// first, listeners of equal priority in registration order.
func WithPriority(priority int) option.Option[ListenOptions] {
	return func(opts *ListenOptions) {
		opts.priority = priority
	}
}

var listenerOrder = fn.ReverseComparator(fn.CompareBy(func(l registeredListener) int {
	return l.priority
}))

func NewFactory(engine Engine, opts ...option.Option[Options]) *Factory {
	options := option.Build(&Options{logger: zerolog.Nop()}, opts...)

	return &Factory{
		engine:      engine,
		shared:      make(map[string]any),
		logger:      options.logger.With().Str("component", "view_factory").Logger(),
		concurrency: options.concurrency,
	}
}

// Share makes a binding visible to every view of the factory.
func (f *Factory) Share(name string, value any) *Factory {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.shared[name] = value
	return f
}

// Shared returns a copy of the shared data.
func (f *Factory) Shared() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return maps.Clone(f.shared)
}

func (f *Factory) sharedValue(name string) (any, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	value, found := f.shared[name]
	return value, found
}

// Listen registers a listener notified before every render.
func (f *Factory) Listen(listener Listener, opts ...option.Option[ListenOptions]) *Factory {
	options := option.Build(&ListenOptions{}, opts...)

	f.mu.Lock()
	defer f.mu.Unlock()

	listeners := append(slices.Clone(f.listeners), registeredListener{
		listener: listener,
		priority: options.priority,
	})
	slices.SortStableFunc(listeners, listenerOrder.Func())
	f.listeners = listeners
	return f
}

// Make creates a view of the named template, data is copied.
func (f *Factory) Make(name string, data map[string]any) *View {
	viewData := maps.Clone(data)
	if viewData == nil {
		viewData = make(map[string]any)
	}
	return &View{name: name, data: viewData, factory: f}
}

// Render notifies every listener once, then renders the view bindings with the engine.
func (f *Factory) Render(w io.Writer, v *View) error {
	f.mu.RLock()
	listeners := f.listeners
	f.mu.RUnlock()

	for _, registered := range listeners {
		if err := registered.listener.BeforeRender(v); err != nil {
			return fmt.Errorf("listener failed before rendering view %q:\n\t%w", v.name, err)
		}
	}

	f.logger.Debug().Str("view", v.name).Int("listeners", len(listeners)).Msg("rendering view")
	if err := f.engine.Render(w, v.name, v.Bindings()); err != nil {
		return fmt.Errorf("failed to render view %q:\n\t%w", v.name, err)
	}
	return nil
}

// RenderAll renders the views concurrently and returns their output in the same order.
//
// The first failure cancels the views not started yet and is returned.
func (f *Factory) RenderAll(ctx context.Context, views ...*View) ([]string, error) {
	group, ctx := errgroup.WithContext(ctx)
	if f.concurrency > 0 {
		group.SetLimit(f.concurrency)
	}

	outputs := make([]string, len(views))
	for i, v := range views {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := f.Render(&buf, v); err != nil {
				return err
			}
			outputs[i] = buf.String()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
