// Package pipeline is a minimal build pipeline: plugins tap its emit hook to
// register assets, which the compiler then writes to the output directory.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"concattext/pkg/options"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options configures a Compiler.
type Options struct {
	Output options.OutputConfig
	Bail   bool // Stop at the first plugin error and fail the run.
	NoEmit bool // Skip writing assets to disk.
}

// Plugin is anything that can register itself with a Compiler.
type Plugin interface {
	Apply(c *Compiler)
}

// EmitFunc is called once per build with the build's compilation.
type EmitFunc func(ctx context.Context, c *Compilation) error

// Tap is a named emit hook subscription.
type Tap struct {
	Name string
	Fn   EmitFunc
}

// AsyncSeriesHook calls its taps one after another in registration order.
type AsyncSeriesHook struct {
	mu   sync.Mutex
	taps []Tap
}

// TapPromise subscribes fn under the plugin name.
func (h *AsyncSeriesHook) TapPromise(name string, fn EmitFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.taps = append(h.taps, Tap{Name: name, Fn: fn})
}

// Taps returns a snapshot of the current subscriptions.
func (h *AsyncSeriesHook) Taps() []Tap {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Tap(nil), h.taps...)
}

// Hooks are the lifecycle events a Compiler exposes.
type Hooks struct {
	Emit AsyncSeriesHook
}

// OutputFileSystem persists emitted assets.
type OutputFileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// OSFileSystem writes to the local disk.
type OSFileSystem struct{}

func (OSFileSystem) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

func (OSFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Compiler runs builds.
type Compiler struct {
	Options          Options
	Hooks            Hooks
	OutputFileSystem OutputFileSystem
	logger           *zap.Logger
}

// NewCompiler creates a compiler writing to the local disk. A nil logger
// disables logging.
func NewCompiler(opts Options, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		Options:          opts,
		OutputFileSystem: OSFileSystem{},
		logger:           logger,
	}
}

// Logger returns the compiler's logger.
func (c *Compiler) Logger() *zap.Logger { return c.logger }

// Stats describes a finished build.
type Stats struct {
	Compilation *Compilation
	Emitted     []string // Absolute paths written to disk.
	Elapsed     time.Duration
}

// Err combines all build errors, or returns nil if there were none.
func (s *Stats) Err() error {
	return multierr.Combine(s.Compilation.Errors()...)
}

// Run performs one build: a fresh compilation, the emit hook, then write-out.
// With Options.Bail the first plugin error aborts the run and is returned;
// otherwise plugin errors are collected on the compilation.
func (c *Compiler) Run(ctx context.Context) (*Stats, error) {
	startTime := time.Now()
	comp := newCompilation()
	logger := c.logger.With(zap.String("buildID", comp.ID))
	logger.Info("Starting build", zap.String("outputPath", c.Options.Output.Path))

	stats := &Stats{Compilation: comp}

	for _, tap := range c.Hooks.Emit.Taps() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := tap.Fn(ctx, comp); err != nil {
			pe := &PluginError{Plugin: tap.Name, Err: err}
			comp.AddError(pe)
			logger.Error("Plugin failed during emit", zap.String("plugin", tap.Name), zap.Error(err))
			if c.Options.Bail {
				return stats, pe
			}
		}
	}

	if !c.Options.NoEmit {
		emitted, err := c.emitAssets(comp.Assets, logger)
		stats.Emitted = emitted
		if err != nil {
			return stats, fmt.Errorf("failed to emit assets: %w", err)
		}
	}

	stats.Elapsed = time.Since(startTime)
	logger.Info("Build completed",
		zap.Int("assetCount", comp.Assets.Len()),
		zap.Int("errorCount", len(comp.Errors())),
		zap.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

// emitAssets writes every asset below the output directory.
func (c *Compiler) emitAssets(assets *AssetMap, logger *zap.Logger) ([]string, error) {
	var emitted []string
	for _, name := range assets.Names() {
		src, _ := assets.Get(name)
		dest := filepath.Join(c.Options.Output.Path, filepath.FromSlash(name))

		if err := c.OutputFileSystem.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
			logger.Error("Failed to create directory", zap.String("path", filepath.Dir(dest)), zap.Error(err))
			return emitted, err
		}
		if err := c.OutputFileSystem.WriteFile(dest, src.Bytes(), 0644); err != nil {
			logger.Error("Failed to write asset", zap.String("asset", name), zap.String("path", dest), zap.Error(err))
			return emitted, err
		}

		logger.Debug("Emitted asset", zap.String("asset", name), zap.String("path", dest), zap.Int("sizeBytes", src.Size()))
		emitted = append(emitted, dest)
	}
	return emitted, nil
}

// Compilation is the state of a single build.
type Compilation struct {
	ID     string
	Assets *AssetMap

	mu     sync.Mutex
	errors []error
}

func newCompilation() *Compilation {
	return &Compilation{
		ID:     uuid.NewString(),
		Assets: NewAssetMap(),
	}
}

// AddError records a build error.
func (c *Compilation) AddError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

// Errors returns the recorded build errors.
func (c *Compilation) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errors...)
}

// PluginError attributes a build error to the plugin that caused it.
type PluginError struct {
	Plugin string
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("%s: %v", e.Plugin, e.Err)
}

func (e *PluginError) Unwrap() error { return e.Err }
