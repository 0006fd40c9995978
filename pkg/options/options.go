// Package options resolves the concatenation plugin's user options against
// the build pipeline's output configuration.
package options

import (
	"errors"
	"path/filepath"
	"strings"

	"concattext/pkg/glob"
)

// ErrNoFiles is returned by Validate when no glob pattern was configured.
var ErrNoFiles = errors.New("options: files pattern is required")

// PluginOptions holds the options a user passes to the plugin.
type PluginOptions struct {
	Files      string `yaml:"files"`                // Glob pattern of the files to concatenate.
	OutputPath string `yaml:"outputPath,omitempty"` // Relative or absolute output directory.
	Name       string `yaml:"name,omitempty"`       // Filename of the concatenated artifact.
}

// Validate checks that the options carry a glob pattern.
func (o PluginOptions) Validate() error {
	if strings.TrimSpace(o.Files) == "" {
		return ErrNoFiles
	}
	return nil
}

// OutputConfig is the pipeline-wide output configuration.
type OutputConfig struct {
	Filename string `yaml:"filename"` // Default primary output filename.
	Path     string `yaml:"path"`     // Absolute base output directory.
}

// Resolved is the complete, emission-ready option set.
type Resolved struct {
	Files      string
	OutputPath OutputPath
	Name       string
	Target     string // Asset key relative to OutputConfig.Path, slash separated.
}

// Resolve merges opts with defaults derived from out. It never mutates its
// inputs and never fails; a malformed glob only affects extension inference.
func Resolve(opts PluginOptions, out OutputConfig) Resolved {
	name := opts.Name
	if name == "" {
		base := filepath.Base(out.Filename)
		name = strings.TrimSuffix(base, Ext(base)) + ExtFromGlob(opts.Files)
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = out.Path
	}
	op := ParseOutputPath(outputPath)

	return Resolved{
		Files:      opts.Files,
		OutputPath: op,
		Name:       name,
		Target:     filepath.ToSlash(filepath.Join(op.RelativeTo(out.Path), name)),
	}
}

// Options returns the user-facing form of r, with OutputPath spelled out.
func (r Resolved) Options() PluginOptions {
	return PluginOptions{
		Files:      r.Files,
		OutputPath: r.OutputPath.String(),
		Name:       r.Name,
	}
}

// Ext returns the extension of the last path element. Unlike filepath.Ext,
// a name consisting of a leading dot and no other dot has no extension, and
// neither do "." and "..".
func Ext(p string) string {
	base := filepath.Base(p)
	if base == "." || base == ".." {
		return ""
	}
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

// ExtFromGlob infers the artifact extension from a glob pattern. If the last
// path element contains a brace group, alternation, extglob qualifier or
// character class, or the extension itself contains a wildcard, the pattern
// can match more than one extension and "" is returned. "*.properties" yields
// ".properties"; "*.{js,ts}", "*.js?(x)", "*.[A-Z]" and "{a,b}.txt" yield "".
func ExtFromGlob(pattern string) string {
	ext := Ext(pattern)
	if ext == "" || glob.HasGroup(filepath.Base(pattern)) || glob.HasMagic(ext) {
		return ""
	}
	return ext
}
