package autopresenter

import (
	"fmt"
	"maps"
	"slices"

	"github.com/a-peyrard/autopresenter/option"
	"github.com/a-peyrard/autopresenter/set"
	"github.com/rs/zerolog"
)

type (
	// Bindings is the render context of a view about to render.
	Bindings interface {
		// Bindings returns every name to value binding visible to the view.
		Bindings() map[string]any
		// Set overwrites a binding for this render only. It must not trigger another decoration.
		Set(name string, value any)
	}

	// RenderBindingHook decorates the bindings of a view right before it renders.
	RenderBindingHook struct {
		decorator Decorator
		reserved  set.Set[string]
		logger    zerolog.Logger
	}
)

// NewRenderBindingHook creates a hook decorating bindings with the given decorator, usually the
// application Dispatcher. DefaultReservedBindings and WithReservedBindings names are skipped.
func NewRenderBindingHook(decorator Decorator, opts ...option.Option[Options]) *RenderBindingHook {
	options := buildOptions(opts)

	return &RenderBindingHook{
		decorator: decorator,
		reserved:  set.NewWithValues(options.reservedBindings...),
		logger:    options.logger.With().Str("component", "render_hook").Logger(),
	}
}

// BeforeRender decorates every non reserved binding.
//
// Bindings are only overwritten once all of them are decorated: a failure leaves the render
// context untouched.
func (h *RenderBindingHook) BeforeRender(bindings Bindings) error {
	data := bindings.Bindings()
	if len(data) == 0 {
		return nil
	}

	names := slices.Sorted(maps.Keys(data))
	decorated := make(map[string]any, len(data))
	for _, name := range names {
		if h.reserved.Contains(name) {
			h.logger.Trace().Str("binding", name).Msg("skipping reserved binding")
			continue
		}
		value, err := h.decorator.Decorate(data[name])
		if err != nil {
			return fmt.Errorf("failed to decorate binding %q:\n\t%w", name, err)
		}
		decorated[name] = value
	}

	for _, name := range names {
		if value, found := decorated[name]; found {
			bindings.Set(name, value)
		}
	}
	h.logger.Trace().Int("bindings", len(decorated)).Msg("decorated bindings")

	return nil
}

// Reserved returns the names the hook never decorates, sorted.
func (h *RenderBindingHook) Reserved() []string {
	return set.Sorted(h.reserved)
}
