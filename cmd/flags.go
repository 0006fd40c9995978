package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"concattext/pkg/config"
	"concattext/pkg/options"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pipelineFlags are shared by build and resolve.
type pipelineFlags struct {
	configFile  string
	files       string
	outputPath  string
	name        string
	outDir      string
	outFilename string
	bail        bool
	maxWorkers  int
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.configFile, "config", "c", "", "Build file (default $"+config.EnvConfigFile+")")
	fl.StringVarP(&f.files, "files", "f", "", "Glob pattern of the files to concatenate")
	fl.StringVar(&f.outputPath, "output-path", "", "Directory of the artifact, relative to --out-dir or absolute")
	fl.StringVarP(&f.name, "name", "n", "", "Filename of the artifact (default: --out-filename base name + pattern extension)")
	fl.StringVarP(&f.outDir, "out-dir", "o", "", "Pipeline output directory (default \""+config.DefaultOutputPath+"\")")
	fl.StringVar(&f.outFilename, "out-filename", "", "Pipeline output filename (default \""+config.DefaultOutputFilename+"\")")
	fl.BoolVar(&f.bail, "bail", false, "Abort the build at the first plugin error")
	fl.IntVar(&f.maxWorkers, "max-workers", 0, "Concurrent file readers per plugin (default: number of CPUs)")
}

// load builds the effective configuration from the build file, if any, and
// the command-line flags. Flags override the file's output settings.
func (f *pipelineFlags) load(cmd *cobra.Command, logger *zap.Logger) (*config.File, error) {
	path := f.configFile
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}

	var cfg *config.File
	baseDir := "."
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			logger.Error("Failed to load build file", zap.String("file", path), zap.Error(err))
			return nil, err
		}
		for _, name := range []string{"files", "output-path", "name"} {
			if cmd.Flags().Changed(name) {
				return nil, fmt.Errorf("--%s cannot be combined with a build file", name)
			}
		}
		cfg = loaded
		baseDir = filepath.Dir(path)
		logger.Debug("Loaded build file", zap.String("file", path), zap.Int("pluginCount", len(cfg.Plugins)))
	} else {
		cfg = &config.File{
			Plugins: []options.PluginOptions{{Files: f.files, OutputPath: f.outputPath, Name: f.name}},
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("either --files or a build file is required: %w", err)
		}
	}

	fl := cmd.Flags()
	if fl.Changed("out-dir") {
		cfg.Output.Path = f.outDir
		baseDir = "."
	}
	if fl.Changed("out-filename") {
		cfg.Output.Filename = f.outFilename
	}
	if fl.Changed("bail") {
		cfg.Bail = f.bail
	}
	if fl.Changed("max-workers") {
		cfg.MaxWorkers = f.maxWorkers
	}

	if err := cfg.Normalize(baseDir); err != nil {
		return nil, err
	}
	return cfg, nil
}
