package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe the registered services, presenters and decorators",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), app.Container.Describe())
		fmt.Fprint(cmd.OutOrStdout(), app.Dispatcher.Describe())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
