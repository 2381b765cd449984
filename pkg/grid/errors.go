package grid

import "errors"

// ErrFrameNotFound is returned when no search window contains the grid corner.
var ErrFrameNotFound = errors.New("grid corner not found")
