package service

import "errors"

// Sentinel kinds for dashboard errors.
var (
	ErrUnknownOutput   = errors.New("unknown callback output")
	ErrDuplicateOutput = errors.New("callback output already registered")
	ErrBadInput        = errors.New("invalid callback input")
	ErrNoTable         = errors.New("launch table is required")
)
