package models

import "errors"

// Error kinds reported by the codec, the stores and the projection engine.
// Callers match them with errors.Is.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrFormat            = errors.New("invalid PGM format")
	ErrCorruptData       = errors.New("corrupt image data")
	ErrRange             = errors.New("value out of range")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNoVolume          = errors.New("no volume loaded")
	ErrNoImage           = errors.New("no image loaded")
	ErrUsage             = errors.New("incorrect usage")
)
