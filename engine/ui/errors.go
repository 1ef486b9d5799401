package ui

import "errors"

var (
	// ErrCommandLimit reports commands past the per-frame limit. They are
	// dropped; the rest of the frame is still drawn.
	ErrCommandLimit = errors.New("ui: per-frame command limit exceeded")

	// ErrTextPrepare reports a failed text pass. Geometry was drawn and
	// the frame's text was skipped.
	ErrTextPrepare = errors.New("ui: text prepare failed")
)
