package ui

// Depth keys start at DepthStart and fall by DepthStep per command. The
// key is derived from the command index so steps never accumulate error.
const (
	DepthStart = 0.1
	DepthStep  = 0.0001
)

// Depth is the depth key of the i-th command of a frame.
func Depth(i int) float32 { return DepthStart - float32(i)*DepthStep }
