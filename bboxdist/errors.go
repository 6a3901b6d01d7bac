package bboxdist

import (
	"github.com/pkg/errors"
)

var (
	// ErrShapeMismatch is returned when per-object inputs (widths, labels, frames) disagree on number of objects
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrDegenerateBox is returned when real units are requested for a box with non-positive apparent width
	ErrDegenerateBox = errors.New("degenerate bounding box")
	// ErrInvalidWidth is returned for non-positive or non-finite real-world widths
	ErrInvalidWidth = errors.New("invalid object width")
	// ErrInvalidShape is returned for non-positive image shape when it is needed
	ErrInvalidShape = errors.New("invalid image shape")
	// ErrInvalidUnit is returned for unknown units
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrInvalidConfig is returned when configuration file can't be used
	ErrInvalidConfig = errors.New("invalid configuration")
)
