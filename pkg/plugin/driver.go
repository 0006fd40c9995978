package plugin

import (
	"context"

	"concattext/pkg/concat"
	"concattext/pkg/glob"
	"concattext/pkg/pipeline"

	"go.uber.org/zap"
)

// State is a step of a single emission.
type State int

const (
	Idle State = iota
	Globbing
	Concatenating
	Registered
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Globbing:
		return "globbing"
	case Concatenating:
		return "concatenating"
	case Registered:
		return "registered"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Driver globs, concatenates and registers one artifact per call to Emit.
// It keeps no state between calls.
type Driver struct {
	globber  glob.Globber
	concat   concat.Concatenator
	logger   *zap.Logger
	observer func(from, to State)
}

// NewDriver wires a driver to its collaborators. A nil logger disables logging.
func NewDriver(g glob.Globber, c concat.Concatenator, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{globber: g, concat: c, logger: logger}
}

// Emit concatenates the files matching pattern, in the order the globber
// returns them, and registers the result under target. On failure nothing is
// registered and a *GlobError or *ConcatError is returned.
func (d *Driver) Emit(ctx context.Context, assets pipeline.AssetSetter, pattern, target string) error {
	logger := d.logger.With(zap.String("pattern", pattern), zap.String("target", target))
	state := Idle
	move := func(to State) {
		if d.observer != nil {
			d.observer(state, to)
		}
		logger.Debug("Emission state changed", zap.Stringer("from", state), zap.Stringer("to", to))
		state = to
	}

	move(Globbing)
	files, err := d.globber.Glob(ctx, pattern)
	if err != nil {
		move(Failed)
		return &GlobError{Pattern: pattern, Err: err}
	}

	move(Concatenating)
	content, err := d.concat.Concat(ctx, files)
	if err != nil {
		move(Failed)
		return &ConcatError{Files: files, Err: err}
	}

	assets.Set(target, pipeline.RawSource(content))
	move(Registered)
	logger.Info("Registered concatenated asset",
		zap.Int("fileCount", len(files)),
		zap.Int("sizeBytes", len(content)))
	return nil
}
