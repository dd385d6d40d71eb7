package dataset

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrOpen              = errors.New("open dataset failed")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrParse             = errors.New("parse dataset failed")
	ErrEmpty             = errors.New("dataset has no data rows")
)
