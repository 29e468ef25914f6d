package resource

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a load failure.
type ErrorKind uint8

const (
	KindAccess    ErrorKind = iota // File missing or unreadable
	KindParse                      // Malformed record
	KindDuplicate                  // Id already defined, rejected by policy
	KindDangling                   // Reference to an undefined entity
)

func (k ErrorKind) String() string {
	switch k {
	case KindAccess:
		return "access"
	case KindParse:
		return "parse"
	case KindDuplicate:
		return "duplicate"
	case KindDangling:
		return "dangling"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// LoadError is one failed file or one dangling reference.
type LoadError struct {
	Path string // Source file; the owner id for dangling references
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadErrors is the complete list of failures from one load pass.
type LoadErrors struct {
	Errors []*LoadError
}

func (e *LoadErrors) Error() string {
	if len(e.Errors) == 1 {
		return "load resources: " + e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "load resources: %d failures", len(e.Errors))
	for _, le := range e.Errors {
		b.WriteString("\n\t")
		b.WriteString(le.Error())
	}
	return b.String()
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *LoadErrors) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, le := range e.Errors {
		out[i] = le
	}
	return out
}

// Of returns the failures of one kind.
func (e *LoadErrors) Of(kind ErrorKind) []*LoadError {
	var out []*LoadError
	for _, le := range e.Errors {
		if le.Kind == kind {
			out = append(out, le)
		}
	}
	return out
}

func accessErr(err error) error {
	return &LoadError{Kind: KindAccess, Err: err}
}

func parseErr(err error) error {
	return &LoadError{Kind: KindParse, Err: err}
}

func parseErrf(format string, args ...any) error {
	return parseErr(fmt.Errorf(format, args...))
}

// classify fills in the path of a per-file error. Anything that is not
// already a *LoadError counts as a parse failure.
func classify(path string, err error) *LoadError {
	var le *LoadError
	if errors.As(err, &le) {
		return &LoadError{Path: path, Kind: le.Kind, Err: le.Err}
	}
	return &LoadError{Path: path, Kind: KindParse, Err: err}
}
