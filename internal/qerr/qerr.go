// Package qerr collects the error taxonomy shared by lowering, desugar and
// metadata: a small set of sentinel-wrapped error types plus a Diagnostic
// renderer, matching the structured-list-over-free-text shape of the
// original's VerboseOutput/errors accumulator.
package qerr

import (
	"errors"
	"fmt"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/location"
)

// Severity classifies a Diagnostic as recoverable or not.
type Severity int

const (
	Warning Severity = iota
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "Fatal"
	}
	return "Warning"
}

// Diagnostic is one reportable condition found while reading a document,
// carrying enough structure for a caller to filter/sort without parsing the
// rendered message back apart.
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    location.Range
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// ShapeError reports an unrecoverable CST shape encountered during lowering
// (e.g. a pipe_table with no header row).
type ShapeError struct {
	Message string
	Range   location.Range
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("lowering: %s (%s)", e.Message, e.Range)
}

// FatalError reports a desugar-time condition that aborts the whole
// document: a shortcode nested in keyword position, or an Attr inline that
// survived every attribute-attachment pass.
type FatalError struct {
	Message string
	Range   location.Range
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("desugar: %s (%s)", e.Message, e.Range)
}

// ReparseError reports a failure re-parsing a MetaString value as markdown
// during recursive metadata extraction.
type ReparseError struct {
	Key     string
	Message string
}

func (e *ReparseError) Error() string {
	return fmt.Sprintf("metadata: re-parsing %q: %s", e.Key, e.Message)
}

// IsFatal reports whether err is, or wraps, one of this package's fatal
// error types.
func IsFatal(err error) bool {
	var shape *ShapeError
	var desugar *FatalError
	var reparse *ReparseError
	return errors.As(err, &shape) || errors.As(err, &desugar) || errors.As(err, &reparse)
}
