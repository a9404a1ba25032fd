package reader

import "errors"

var (
	// ErrEmptyText is returned when a source holds nothing but whitespace.
	ErrEmptyText = errors.New("no text to read")

	// ErrNoRootfile is returned for an EPUB whose container lists no package.
	ErrNoRootfile = errors.New("no rootfiles found in epub")
)
