package main

import (
	"fmt"
	"io"
	"time"

	"github.com/a-peyrard/autopresenter/config"
	"github.com/a-peyrard/autopresenter/option"
	"github.com/a-peyrard/autopresenter/playground/blog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	settings *config.Settings
	logger   zerolog.Logger

	rootCmd = &cobra.Command{
		Use:               "autopresent",
		Short:             "Render the sample blog through the presenter decoration chain",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "log level, overrides the configuration")
}

func setup(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	var opts []option.Option[config.Options]
	if file != "" {
		opts = append(opts, config.WithFile(file))
	}
	loaded, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if level != "" {
		loaded.LogLevel = level
	}

	parsed, err := loaded.Level()
	if err != nil {
		return err
	}
	settings = loaded
	logger = newLogger(cmd.ErrOrStderr(), parsed)
	return nil
}

func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	var writer io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func newApp(opts ...option.Option[blog.Options]) (*blog.App, error) {
	app, err := blog.NewApp(append([]option.Option[blog.Options]{
		blog.WithLogger(logger),
		blog.WithSettings(settings),
	}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to start the blog:\n\t%w", err)
	}
	return app, nil
}
