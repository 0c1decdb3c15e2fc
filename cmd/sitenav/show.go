package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitenav"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	flags := &sourceFlags{}
	cmd := &cobra.Command{
		Use:   "show <address>",
		Short: "Print the columns and breadcrumbs resolved for one page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			cfg.Generator.DryRun = true

			module, err := sitenav.New(cfg)
			if err != nil {
				return err
			}
			defer module.Close()

			nav, err := module.Navigate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderNavigation(cmd.OutOrStdout(), nav)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
