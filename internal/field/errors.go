package field

import "errors"

var (
	// ErrBadSize indicates a requested side length below 1.
	ErrBadSize = errors.New("field: side length must be at least 1")

	// ErrSizeMismatch indicates a value slice whose length is not the
	// square of the requested side length.
	ErrSizeMismatch = errors.New("field: value count does not match side length")

	// ErrRegionBounds indicates a sub-grid request extending past the
	// parent grid.
	ErrRegionBounds = errors.New("field: region exceeds grid bounds")
)
