package plugin

import "fmt"

// GlobError reports that the input files could not be enumerated.
type GlobError struct {
	Pattern string
	Err     error
}

func (e *GlobError) Error() string {
	return fmt.Sprintf("failed to glob files %q: %v", e.Pattern, e.Err)
}

func (e *GlobError) Unwrap() error { return e.Err }

// ConcatError reports that the matched files could not be concatenated.
type ConcatError struct {
	Files []string
	Err   error
}

func (e *ConcatError) Error() string {
	return fmt.Sprintf("failed to concat %d files: %v", len(e.Files), e.Err)
}

func (e *ConcatError) Unwrap() error { return e.Err }
