package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// resolvedEntry is the YAML view of options.Resolved.
type resolvedEntry struct {
	Files      string `yaml:"files"`
	OutputPath string `yaml:"outputPath"`
	Name       string `yaml:"name"`
	Target     string `yaml:"target"`
}

func newResolveCommand(a *app) *cobra.Command {
	var flags pipelineFlags

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved plugin options without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, a.logger)
			if err != nil {
				return err
			}

			var entries []resolvedEntry
			for _, r := range cfg.Resolved() {
				entries = append(entries, resolvedEntry{
					Files:      r.Files,
					OutputPath: r.OutputPath.String(),
					Name:       r.Name,
					Target:     r.Target,
				})
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(entries); err != nil {
				return fmt.Errorf("failed to encode resolved options: %w", err)
			}
			return enc.Close()
		},
	}

	flags.register(resolveCmd)
	return resolveCmd
}
