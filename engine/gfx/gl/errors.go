package glbackend

import "errors"

var (
	// ErrUnsupported is returned for pipeline settings GL 3.3 cannot express.
	ErrUnsupported = errors.New("gl: unsupported")

	// ErrBufferOverflow is returned when a write is larger than its buffer.
	ErrBufferOverflow = errors.New("gl: buffer overflow")

	// ErrForeignResource is returned for a pipeline or buffer made by another GPU.
	ErrForeignResource = errors.New("gl: resource not created by this backend")
)
