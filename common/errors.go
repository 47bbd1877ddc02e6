package common

import "errors"

var (
	// ErrSurfaceNotFound is the binding error reported when a render surface handle cannot be resolved.
	ErrSurfaceNotFound = errors.New("render surface not found")
	// ErrInputShape is reported when an operation receives an argument of the wrong shape,
	// such as a scalar where a list of URLs is expected.
	ErrInputShape = errors.New("unexpected input shape")
	// ErrDuplicateGroup is reported when an instanced group is built under a key that already exists.
	ErrDuplicateGroup = errors.New("instanced group already built")
	// ErrNotBound is reported by stage operations that require a bound surface.
	ErrNotBound = errors.New("stage is not bound to a surface")
)
