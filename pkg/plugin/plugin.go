// Package plugin implements ConcatTextPlugin, which concatenates the text
// files matched by a glob into a single build asset.
package plugin

import (
	"context"
	"fmt"

	"concattext/pkg/concat"
	"concattext/pkg/glob"
	"concattext/pkg/options"
	"concattext/pkg/pipeline"

	"go.uber.org/zap"
)

// Name is the name the plugin taps the emit hook with.
const Name = "ConcatTextPlugin"

// ConcatTextPlugin concatenates glob-matched files into one asset.
type ConcatTextPlugin struct {
	opts     options.PluginOptions
	globber  glob.Globber
	concat   concat.Concatenator
	observer func(from, to State)
}

// Option customizes a ConcatTextPlugin.
type Option func(*ConcatTextPlugin)

// WithGlobber replaces the filesystem globber.
func WithGlobber(g glob.Globber) Option {
	return func(p *ConcatTextPlugin) { p.globber = g }
}

// WithConcatenator replaces the disk concatenator.
func WithConcatenator(c concat.Concatenator) Option {
	return func(p *ConcatTextPlugin) { p.concat = c }
}

// WithObserver registers a callback for every emission state change.
func WithObserver(fn func(from, to State)) Option {
	return func(p *ConcatTextPlugin) { p.observer = fn }
}

// New validates opts and creates the plugin.
func New(opts options.PluginOptions, o ...Option) (*ConcatTextPlugin, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s options: %w", Name, err)
	}
	p := &ConcatTextPlugin{opts: opts}
	for _, fn := range o {
		fn(p)
	}
	return p, nil
}

// Options returns the options the plugin was created with.
func (p *ConcatTextPlugin) Options() options.PluginOptions { return p.opts }

// Apply resolves the options against the compiler's output configuration and
// taps the emit hook. The resolved options are fixed from here on.
func (p *ConcatTextPlugin) Apply(c *pipeline.Compiler) {
	resolved := options.Resolve(p.opts, c.Options.Output)
	logger := c.Logger().With(zap.String("plugin", Name))
	logger.Debug("Resolved plugin options",
		zap.String("files", resolved.Files),
		zap.String("outputPath", resolved.OutputPath.String()),
		zap.String("name", resolved.Name),
		zap.String("target", resolved.Target))

	g := p.globber
	if g == nil {
		g = glob.NewFS(logger)
	}
	cc := p.concat
	if cc == nil {
		cc = concat.NewFiles(0, logger)
	}
	d := NewDriver(g, cc, logger)
	d.observer = p.observer

	c.Hooks.Emit.TapPromise(Name, func(ctx context.Context, comp *pipeline.Compilation) error {
		return d.Emit(ctx, comp.Assets, resolved.Files, resolved.Target)
	})
}
