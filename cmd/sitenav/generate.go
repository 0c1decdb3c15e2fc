package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitenav"
)

type generateFlags struct {
	sourceFlags
	outputDir string
	format    string
	dryRun    bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Resolve navigation for every page and write the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			flags.apply(&cfg)
			if flags.dryRun {
				cfg.Generator.DryRun = true
			}

			out := cmd.OutOrStdout()
			module, err := sitenav.New(cfg, sitenav.WithGenerateObserver(func(_ context.Context, result *sitenav.BuildResult) {
				renderBuild(out, result)
			}))
			if err != nil {
				return err
			}
			defer module.Close()

			return module.Generate(cmd.Context(), sitenav.GenerateCommand{
				OutputDir: flags.outputDir,
				Format:    flags.format,
				DryRun:    flags.dryRun,
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "manifest directory (overrides generator.output_dir)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "manifest format: json or yaml")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "resolve without writing the manifest")
	return cmd
}
