package canvas

import "errors"

var (
	ErrElementNotFound = errors.New("canvas: element not found")
	ErrDuplicateID     = errors.New("canvas: duplicate element id")
	ErrContextType     = errors.New("canvas: element already has a different context")
	ErrBadSize         = errors.New("canvas: width and height must be positive")
	ErrBadColor        = errors.New("canvas: unrecognised color")
	ErrBadFont         = errors.New("canvas: unrecognised font")
)
