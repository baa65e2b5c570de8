package uci

import "errors"

// Sentinel errors for the UI layers. Callers match them with errors.Is;
// the wrapped message carries the control, attribute, or index involved.
var (
	// ErrNotFound indicates a named attribute, control, or sitemap entry
	// is absent from the current page.
	ErrNotFound = errors.New("not found")

	// ErrNotEditable indicates a field has no control that is enabled,
	// visible, and inside a fully visible container chain.
	ErrNotEditable = errors.New("not editable")

	// ErrOutOfRange indicates a row index past the end of a grid.
	ErrOutOfRange = errors.New("out of range")
)
