package options

import "path/filepath"

// OutputPath is either a RelativePath or an AbsolutePath.
type OutputPath interface {
	// RelativeTo returns the path as seen from base. "" means base itself.
	RelativeTo(base string) string
	String() string
	isOutputPath()
}

// RelativePath is already relative to the pipeline's output directory.
type RelativePath string

// AbsolutePath is an absolute directory that gets rebased onto the
// pipeline's output directory.
type AbsolutePath string

// ParseOutputPath tags p by whether it is absolute.
func ParseOutputPath(p string) OutputPath {
	if filepath.IsAbs(p) {
		return AbsolutePath(p)
	}
	return RelativePath(p)
}

// RelativeTo returns p unchanged; relative inputs are not normalized.
func (p RelativePath) RelativeTo(string) string { return string(p) }

func (p RelativePath) String() string { return string(p) }

func (RelativePath) isOutputPath() {}

// RelativeTo returns the shortest path that, joined with base, resolves to p.
// When no relative path exists (different volumes), p is returned as is.
func (p AbsolutePath) RelativeTo(base string) string {
	rel, err := filepath.Rel(base, string(p))
	if err != nil {
		return string(p)
	}
	if rel == "." {
		return ""
	}
	return rel
}

func (p AbsolutePath) String() string { return string(p) }

func (AbsolutePath) isOutputPath() {}
