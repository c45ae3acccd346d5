package invoice

import (
	"errors"
	"fmt"
)

// Sentinels for matching the error taxonomy with errors.Is.
var (
	// ErrValidation marks malformed invoice data.
	ErrValidation = errors.New("invalid invoice")
	// ErrIO marks a failure to create the output directory or write the document.
	ErrIO = errors.New("invoice output failed")
	// ErrRender marks content the layout engine rejected.
	ErrRender = errors.New("invoice render failed")
)

// ValidationError reports malformed invoice data. No file is written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid invoice: %s", e.Message)
	}
	return fmt.Sprintf("invalid invoice: %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// IOError reports a filesystem failure while publishing a document.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// RenderError reports content rejected while building or drawing the document.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render invoice (%s): %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Is reports whether target is ErrRender.
func (e *RenderError) Is(target error) bool { return target == ErrRender }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
