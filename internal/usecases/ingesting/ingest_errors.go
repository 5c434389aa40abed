package ingesting

import (
	"errors"
	"fmt"
)

// Errors for the ingestion context.
var (
	// Source-level failures
	ErrNoData         = errors.New("no usable records in any source")
	ErrUnreadableFile = errors.New("unable to read workbook")
	ErrEmptySheet     = errors.New("workbook has no data rows")

	// Paste failures
	ErrEmptyPaste = errors.New("pasted text contains no rows")
)

// SourceError records a single source that failed to parse. One bad file is
// reported but never aborts the remaining sources.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Err.Error())
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a SourceError for a named source.
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}
