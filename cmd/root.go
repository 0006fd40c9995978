package cmd

import (
	"fmt"

	"concattext/pkg/logging"
	"concattext/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "concattext"

// app carries the state shared by all subcommands.
type app struct {
	logger *zap.Logger
	debug  bool
}

// NewRootCommand builds the concattext command tree. A nil logger disables
// logging until --debug replaces it.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{logger: logger}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "concattext concatenates glob-matched text files into a build asset",
		Long: `concattext runs a small build pipeline in which each configured plugin
concatenates the files matched by a glob pattern into a single asset below
the pipeline's output directory.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.debug {
				return nil
			}
			l, err := logging.Setup(true, appName, version.Version)
			if err != nil {
				return fmt.Errorf("failed to initialize debug logger: %w", err)
			}
			a.logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable development logging")

	rootCmd.AddCommand(newBuildCommand(a))
	rootCmd.AddCommand(newResolveCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the command tree with os.Args.
func Execute(logger *zap.Logger) error {
	return NewRootCommand(logger).Execute()
}
