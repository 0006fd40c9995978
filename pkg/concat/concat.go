// Package concat joins the contents of a list of files.
package concat

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Concatenator merges file contents in list order.
type Concatenator interface {
	Concat(ctx context.Context, files []string) ([]byte, error)
}

// Files reads files from disk with a bounded worker pool and concatenates
// them with no separator.
type Files struct {
	MaxWorkers int // Number of concurrent readers; <= 0 means runtime.NumCPU().
	logger     *zap.Logger
}

// NewFiles creates a disk-backed Concatenator. A nil logger disables logging.
func NewFiles(maxWorkers int, logger *zap.Logger) *Files {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Files{MaxWorkers: maxWorkers, logger: logger}
}

// Concat reads every file and returns their contents joined in the order of
// files. If any file cannot be read, the error of the first such file in list
// order is returned and no content is.
func (c *Files) Concat(ctx context.Context, files []string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []byte{}, nil
	}

	contents := readConcurrently(ctx, files, c.MaxWorkers, c.logger)

	size := 0
	for _, fc := range contents {
		if fc.Err != nil {
			return nil, fmt.Errorf("error reading file %s: %w", fc.Path, fc.Err)
		}
		size += len(fc.Content)
	}

	var buf bytes.Buffer
	buf.Grow(size)
	for _, fc := range contents {
		buf.Write(fc.Content)
	}

	c.logger.Debug("Concatenated files",
		zap.Int("fileCount", len(files)),
		zap.Int("contentSizeBytes", buf.Len()))
	return buf.Bytes(), nil
}

// readFile reads a single file, honoring cancellation.
func readFile(ctx context.Context, path string, logger *zap.Logger) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Failed to read file", zap.String("filePath", path), zap.Error(err))
		return nil, err
	}

	logger.Debug("Read file content",
		zap.String("filePath", path),
		zap.Int("contentSizeBytes", len(data)))
	return data, nil
}
