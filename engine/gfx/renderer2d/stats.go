package renderer2d

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls        int
	TriangleCount    int
	DroppedTriangles int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.TriangleCount * vertsPerTri }
