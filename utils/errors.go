package utils

import (
	"errors"
	"fmt"
)

// Error kinds shared by every package. Callers test with errors.Is.
var (
	ErrParse                    = errors.New("parse error")
	ErrDegenerateInput          = errors.New("degenerate input")
	ErrRefinementDidNotConverge = errors.New("refinement did not converge")
	ErrPrerequisiteBlockMissing = errors.New("prerequisite block missing")
	ErrStageAlreadyBuilt        = errors.New("stage already built")
)

// ParseError reports a malformed line in a text input
type ParseError struct {
	File string // Source name, may be empty for anonymous readers
	Line int    // 1-based line number
	Text string // Offending line, trimmed
	Err  error  // Underlying conversion error, if any
}

func (e *ParseError) Error() string {
	name := e.File
	if name == "" {
		name = "<input>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: cannot parse %q: %v", name, e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%s:%d: cannot parse %q", name, e.Line, e.Text)
}

// Unwrap lets errors.Is match both ErrParse and the wrapped cause
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// Degenerate wraps ErrDegenerateInput with a formatted reason
func Degenerate(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDegenerateInput, fmt.Sprintf(format, args...))
}
