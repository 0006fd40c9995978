// Package config loads concattext build files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"concattext/pkg/options"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the build file used when none is given on the
// command line.
const EnvConfigFile = "CONCATTEXT_CONFIG"

// Defaults for the pipeline output configuration.
const (
	DefaultOutputPath     = "dist"
	DefaultOutputFilename = "main.js"
)

// File is the YAML build file.
//
//	output:
//	  path: dist
//	  filename: main.js
//	bail: true
//	plugins:
//	  - files: i18n/*.properties
//	    name: frontend.properties
type File struct {
	Output     options.OutputConfig    `yaml:"output"`
	Bail       bool                    `yaml:"bail,omitempty"`
	MaxWorkers int                     `yaml:"maxWorkers,omitempty"`
	Plugins    []options.PluginOptions `yaml:"plugins"`
}

// Load reads and validates a build file. Relative output and plugin paths
// are left for Normalize.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate requires at least one plugin and a files pattern on each.
func (f *File) Validate() error {
	if len(f.Plugins) == 0 {
		return fmt.Errorf("config declares no plugins")
	}
	for i, p := range f.Plugins {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("plugin at index %d: %w", i, err)
		}
	}
	return nil
}

// Normalize fills output defaults and makes the output path absolute,
// resolving a relative one against baseDir.
func (f *File) Normalize(baseDir string) error {
	if f.Output.Filename == "" {
		f.Output.Filename = DefaultOutputFilename
	}
	if f.Output.Path == "" {
		f.Output.Path = DefaultOutputPath
	}
	if !filepath.IsAbs(f.Output.Path) {
		f.Output.Path = filepath.Join(baseDir, f.Output.Path)
	}
	abs, err := filepath.Abs(f.Output.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}
	f.Output.Path = abs
	return nil
}

// Resolved returns the resolved options of every plugin, in file order.
func (f *File) Resolved() []options.Resolved {
	out := make([]options.Resolved, 0, len(f.Plugins))
	for _, p := range f.Plugins {
		out = append(out, options.Resolve(p, f.Output))
	}
	return out
}
