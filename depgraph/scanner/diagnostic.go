package scanner

import (
	"errors"
	"fmt"
)

// ErrEncoding marks a file whose content is not valid UTF-8.
var ErrEncoding = errors.New("file is not valid UTF-8")

// DiagnosticKind classifies a non-fatal scan problem.
type DiagnosticKind string

const (
	DiagnosticRead     DiagnosticKind = "read"
	DiagnosticEncoding DiagnosticKind = "encoding"
	DiagnosticWalk     DiagnosticKind = "walk"
)

// Diagnostic records a file or directory the scan had to leave out.
type Diagnostic struct {
	Path string
	Kind DiagnosticKind
	Err  error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s %s: %v", d.Kind, d.Path, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}
