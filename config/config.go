// Package config loads the autopresenter settings with viper, from the environment and an
// optional configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/a-peyrard/autopresenter"
	"github.com/a-peyrard/autopresenter/option"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const DefaultEnvPrefix = "AUTOPRESENTER"

type (
	Settings struct {
		LogLevel  string            `mapstructure:"log_level"`
		Presenter PresenterSettings `mapstructure:"presenter"`
		View      ViewSettings      `mapstructure:"view"`
		Activity  ActivitySettings  `mapstructure:"activity"`
	}

	// PresenterSettings configures the naming convention of presenters.
	PresenterSettings struct {
		Suffix             string `mapstructure:"suffix"`
		ModelNamespace     string `mapstructure:"model_namespace"`
		PresenterNamespace string `mapstructure:"presenter_namespace"`
	}

	ViewSettings struct {
		TemplateDir string   `mapstructure:"template_dir"`
		Extension   string   `mapstructure:"extension"`
		Reserved    []string `mapstructure:"reserved"`
	}

	ActivitySettings struct {
		Fields []string `mapstructure:"fields"`
	}

	Options struct {
		prefix string
		file   string
	}
)

var defaults = map[string]any{
	"log_level":                     "info",
	"presenter.suffix":              "Presenter",
	"presenter.model_namespace":     "models",
	"presenter.presenter_namespace": "presenters",
	"view.template_dir":             "",
	"view.extension":                ".html",
	"view.reserved":                 autopresenter.DefaultReservedBindings,
	"activity.fields":               autopresenter.DefaultActivityFields,
}

// WithEnvPrefix replaces DefaultEnvPrefix, PREFIX_PRESENTER_SUFFIX then sets presenter.suffix.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithFile reads the settings from a configuration file, environment variables still win.
func WithFile(path string) option.Option[Options] {
	return func(opts *Options) {
		opts.file = path
	}
}

func Load(opts ...option.Option[Options]) (*Settings, error) {
	options := option.Build(&Options{prefix: DefaultEnvPrefix}, opts...)

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if options.file != "" {
		v.SetConfigFile(options.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %q:\n\t%w", options.file, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config:\n\t%w", err)
	}
	return &settings, nil
}

// Level parses the configured log level.
func (s *Settings) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q:\n\t%w", s.LogLevel, err)
	}
	return level, nil
}

// Convention is the declared presenter name if any, then the configured namespace rule.
func (s *Settings) Convention() autopresenter.Convention {
	return autopresenter.Conventions{
		autopresenter.DeclaredConvention{},
		autopresenter.NamespaceConvention{
			ModelNamespace:     s.Presenter.ModelNamespace,
			PresenterNamespace: s.Presenter.PresenterNamespace,
			Suffix:             s.Presenter.Suffix,
		},
	}
}

// Options converts the settings to the options of the autopresenter constructors.
func (s *Settings) Options() option.Option[autopresenter.Options] {
	return option.Combine(
		autopresenter.WithConvention(s.Convention()),
		autopresenter.WithActivityFields(s.Activity.Fields...),
		autopresenter.WithReservedBindings(s.View.Reserved...),
	)
}
