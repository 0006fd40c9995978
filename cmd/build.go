package cmd

import (
	"fmt"

	"concattext/pkg/concat"
	"concattext/pkg/pipeline"
	"concattext/pkg/plugin"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBuildCommand(a *app) *cobra.Command {
	var (
		flags  pipelineFlags
		dryRun bool
	)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Run the pipeline and write the concatenated assets",
		Example: `  concattext build --files 'i18n/*.properties' --out-dir dist
  concattext build --config concattext.yaml --bail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.logger
			cfg, err := flags.load(cmd, logger)
			if err != nil {
				return err
			}

			compiler := pipeline.NewCompiler(pipeline.Options{
				Output: cfg.Output,
				Bail:   cfg.Bail,
				NoEmit: dryRun,
			}, logger)

			for i, opts := range cfg.Plugins {
				p, err := plugin.New(opts, plugin.WithConcatenator(concat.NewFiles(cfg.MaxWorkers, logger)))
				if err != nil {
					return fmt.Errorf("plugin at index %d: %w", i, err)
				}
				p.Apply(compiler)
			}

			stats, err := compiler.Run(cmd.Context())
			if err != nil {
				logger.Error("Build failed", zap.Error(err))
				return fmt.Errorf("build failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				for _, name := range stats.Compilation.Assets.Names() {
					src, _ := stats.Compilation.Assets.Get(name)
					fmt.Fprintf(out, "%s\t%d bytes\n", name, src.Size())
				}
			}
			for _, path := range stats.Emitted {
				fmt.Fprintln(out, path)
			}

			if err := stats.Err(); err != nil {
				return fmt.Errorf("build finished with errors: %w", err)
			}
			return nil
		},
	}

	flags.register(buildCmd)
	buildCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build assets without writing them")
	return buildCmd
}
