package renderer2d

import (
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/hubastard/tessel/engine/colors"
	"github.com/hubastard/tessel/engine/gfx/geom"
)

// Vertex: pos3 + color3 + viewport size2 => 8 floats
type Vertex struct {
	Position geom.Position
	Color    colors.RGB
	Size     geom.Size
}

const (
	vStride         = 8 * 4 // bytes
	vertsPerTri     = 3
	vertsPerQuad    = 6 // two triangles sharing the 0-2 diagonal
	trianglesInQuad = 2
)

// VertexLayout is the single vertex buffer layout the geometry pass binds.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: vStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // color
			{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2}, // size
		},
	}
}

// vertexBytes views vs as raw bytes for upload. No copy is made.
func vertexBytes(vs []Vertex) []byte {
	if len(vs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vs[0])), len(vs)*vStride)
}
