package autopresenter

import (
	"fmt"

	"github.com/a-peyrard/autopresenter/option"
	"github.com/rs/zerolog"
)

type (
	// Container builds presenters by name. See the container package for the implementation.
	Container interface {
		// Make builds the presenter bound to name around model, or fails when name is unknown or
		// model does not fit.
		Make(name string, model any) (any, error)
	}

	// PresenterResolver finds and builds the presenter of a model.
	PresenterResolver struct {
		container  Container
		convention Convention
		logger     zerolog.Logger
	}
)

func NewPresenterResolver(container Container, opts ...option.Option[Options]) *PresenterResolver {
	options := buildOptions(opts)

	return &PresenterResolver{
		container:  container,
		convention: options.convention,
		logger:     options.logger.With().Str("component", "presenter_resolver").Logger(),
	}
}

// PresenterName returns the presenter name the convention derives for model.
func (r *PresenterResolver) PresenterName(model any) (string, bool) {
	return r.convention.PresenterName(model)
}

// Resolve builds a fresh presenter wrapping model.
//
// Any failure, from naming to instantiation, is reported as a *PresenterNotFoundError carrying the
// attempted name.
func (r *PresenterResolver) Resolve(model any) (any, error) {
	name, handled := r.convention.PresenterName(model)
	if !handled {
		name = fmt.Sprintf("%T", model)
		r.logger.Warn().Str("presenter", name).Msg("no convention could name the presenter")
		return nil, &PresenterNotFoundError{Name: name}
	}

	presenter, err := r.container.Make(name, model)
	if err != nil {
		r.logger.Warn().Err(err).Str("presenter", name).Msgf("unable to make presenter for %T", model)
		return nil, &PresenterNotFoundError{Name: name, Err: err}
	}

	r.logger.Debug().Str("presenter", name).Msgf("resolved presenter for %T", model)
	return presenter, nil
}
