package renderer2d

import "errors"

// ErrCapacityExceeded is returned when an emission does not fit in the
// remaining vertex slots. Nothing is written in that case.
var ErrCapacityExceeded = errors.New("renderer2d: vertex pool capacity exceeded")
