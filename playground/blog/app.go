package blog

import (
	"fmt"

	"github.com/a-peyrard/autopresenter"
	"github.com/a-peyrard/autopresenter/config"
	"github.com/a-peyrard/autopresenter/container"
	"github.com/a-peyrard/autopresenter/metrics"
	"github.com/a-peyrard/autopresenter/option"
	"github.com/a-peyrard/autopresenter/playground/blog/presenters"
	"github.com/a-peyrard/autopresenter/view"
	"github.com/a-peyrard/autopresenter/view/pongo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const SiteName = "The Engine Room"

type (
	// App wires the blog: presenters in a container, the dispatcher observed by the metrics
	// collector, and a pongo2 view factory decorating bindings before each render.
	App struct {
		Container  *container.Container
		Dispatcher *autopresenter.Dispatcher
		Views      *view.Factory
	}

	Options struct {
		logger     zerolog.Logger
		clock      presenters.Clock
		registerer prometheus.Registerer
		settings   *config.Settings
	}
)

func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

func WithClock(clock presenters.Clock) option.Option[Options] {
	return func(opts *Options) {
		opts.clock = clock
	}
}

// WithRegisterer registers the decoration metrics, they are not collected otherwise.
func WithRegisterer(registerer prometheus.Registerer) option.Option[Options] {
	return func(opts *Options) {
		opts.registerer = registerer
	}
}

// WithSettings applies loaded settings: naming convention, reserved bindings, activity fields and
// template location.
func WithSettings(settings *config.Settings) option.Option[Options] {
	return func(opts *Options) {
		opts.settings = settings
	}
}

func NewApp(opts ...option.Option[Options]) (*App, error) {
	options := option.Build(
		&Options{
			logger: zerolog.Nop(),
			clock:  presenters.SystemClock(),
		},
		opts...,
	)

	c := container.New(container.WithLogger(options.logger))
	if err := Register(c, options.clock); err != nil {
		return nil, err
	}

	presenterOpts := []option.Option[autopresenter.Options]{autopresenter.WithLogger(options.logger)}
	engineOpts := []option.Option[pongo.Options]{pongo.WithFS(Templates())}
	if options.settings != nil {
		presenterOpts = append(presenterOpts, options.settings.Options())
		engineOpts = append(engineOpts, pongo.WithExtension(options.settings.View.Extension))
		if options.settings.View.TemplateDir != "" {
			engineOpts = append(engineOpts, pongo.WithBaseDir(options.settings.View.TemplateDir))
		}
	}
	if options.registerer != nil {
		collector, err := metrics.NewCollector(options.registerer)
		if err != nil {
			return nil, err
		}
		presenterOpts = append(presenterOpts, autopresenter.WithObserver(collector))
	}

	engine, err := pongo.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create the template engine:\n\t%w", err)
	}

	dispatcher := autopresenter.New(c, presenterOpts...)
	hook := autopresenter.NewRenderBindingHook(dispatcher, presenterOpts...)
	views := view.NewFactory(engine, view.WithLogger(options.logger)).
		Share("site", SiteName).
		Listen(view.ListenerFunc(func(v *view.View) error {
			return hook.BeforeRender(v)
		}))

	return &App{
		Container:  c,
		Dispatcher: dispatcher,
		Views:      views,
	}, nil
}

// PostsView is the "posts" view for a page of posts.
//
// Every view gets its own fixtures: decoration replaces loaded relations in place, views sharing
// models could not render concurrently.
func (a *App) PostsView(page, perPage int) (*view.View, error) {
	fixtures, err := LoadFixtures()
	if err != nil {
		return nil, err
	}
	return a.Views.Make("posts", map[string]any{"page": fixtures.Page(page, perPage)}), nil
}

// FeedView is the "feed" view of the activities, with its own fixtures as well.
func (a *App) FeedView() (*view.View, error) {
	fixtures, err := LoadFixtures()
	if err != nil {
		return nil, err
	}
	return a.Views.Make("feed", map[string]any{"feed": fixtures.Feed()}), nil
}
