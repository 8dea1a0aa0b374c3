package hydrology

import "errors"

var (
	// ErrEmptyGrid indicates an elevation grid with no rows or no columns.
	ErrEmptyGrid = errors.New("hydrology: elevation grid must have at least one row and one column")
	// ErrRaggedGrid indicates rows of differing lengths.
	ErrRaggedGrid = errors.New("hydrology: all elevation rows must have the same length")
)
