// Package glob enumerates the files matched by a glob pattern.
package glob

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// magicChars are the characters that make a pattern match more than one
// literal string: wildcards, character classes, brace groups and extglob
// qualifier groups.
const magicChars = "*?[]{}()|"

// groupChars delimit character classes, brace groups and extglob groups.
const groupChars = "[]{}()|"

// Globber lists the files matching a pattern, in the order they should be
// concatenated.
type Globber interface {
	Glob(ctx context.Context, pattern string) ([]string, error)
}

// HasMagic reports whether s contains glob metacharacters.
func HasMagic(s string) bool {
	return strings.ContainsAny(s, magicChars)
}

// HasGroup reports whether s contains a character class, brace group,
// alternation or extglob group delimiter.
func HasGroup(s string) bool {
	return strings.ContainsAny(s, groupChars)
}

// FS matches patterns against the local filesystem. Only regular files are
// returned, in doublestar's walk order (lexical within each directory).
type FS struct {
	logger *zap.Logger
}

// NewFS creates a filesystem globber. A nil logger disables logging.
func NewFS(logger *zap.Logger) *FS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FS{logger: logger}
}

// Glob expands pattern. Bad patterns and I/O errors while walking are
// reported instead of silently skipped.
func (g *FS) Glob(ctx context.Context, pattern string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := doublestar.FilepathGlob(
		filepath.Clean(pattern),
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
	if err != nil {
		g.logger.Error("Failed to glob files", zap.String("pattern", pattern), zap.Error(err))
		return nil, err
	}

	g.logger.Debug("Globbed files", zap.String("pattern", pattern), zap.Int("fileCount", len(files)))
	return files, nil
}
