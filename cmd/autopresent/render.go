package main

import (
	"fmt"

	"github.com/a-peyrard/autopresenter/view"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:       "render [posts|feed]...",
	Short:     "Render blog views to the standard output",
	ValidArgs: []string{"posts", "feed"},
	Args:      cobra.OnlyValidArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")
		if len(args) == 0 {
			args = []string{"posts", "feed"}
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		views := make([]*view.View, 0, len(args))
		for _, name := range args {
			var (
				v   *view.View
				err error
			)
			switch name {
			case "posts":
				v, err = app.PostsView(page, perPage)
			case "feed":
				v, err = app.FeedView()
			}
			if err != nil {
				return err
			}
			views = append(views, v)
		}

		outputs, err := app.Views.RenderAll(cmd.Context(), views...)
		if err != nil {
			return err
		}
		for _, output := range outputs {
			fmt.Fprintln(cmd.OutOrStdout(), output)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().Int("page", 1, "page of posts to render")
	renderCmd.Flags().Int("per-page", 2, "number of posts per page")
	rootCmd.AddCommand(renderCmd)
}
