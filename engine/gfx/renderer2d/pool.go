package renderer2d

import (
	"github.com/hubastard/tessel/engine/colors"
	"github.com/hubastard/tessel/engine/gfx/geom"
)

// VertexPool is a fixed set of vertex slots plus a write cursor. The
// slots are allocated once; a frame only moves the cursor.
type VertexPool struct {
	vertices []Vertex
	count    int
	dropped  int // triangles refused since the last Reset
}

// NewVertexPool allocates room for triangles triangles, each slot stamped
// with the viewport size.
func NewVertexPool(triangles, width, height int) *VertexPool {
	if triangles < 0 {
		triangles = 0
	}
	p := &VertexPool{vertices: make([]Vertex, triangles*vertsPerTri)}
	p.Resize(width, height)
	return p
}

// Cap is the number of vertex slots.
func (p *VertexPool) Cap() int { return len(p.vertices) }

// Len is the cursor: the number of vertices written this frame.
func (p *VertexPool) Len() int { return p.count }

// Remaining is Cap minus Len.
func (p *VertexPool) Remaining() int { return len(p.vertices) - p.count }

// Dropped is the number of triangles refused since the last Reset.
func (p *VertexPool) Dropped() int { return p.dropped }

// Vertices returns the written slots [0, Len). The slice aliases the pool.
func (p *VertexPool) Vertices() []Vertex { return p.vertices[:p.count] }

// Slot returns slot i, written or not.
func (p *VertexPool) Slot(i int) Vertex { return p.vertices[i] }

// EmitTriangle writes three vertices at the cursor.
func (p *VertexPool) EmitTriangle(pos [3]geom.Position, c colors.RGB) error {
	if p.Remaining() < vertsPerTri {
		p.dropped++
		return ErrCapacityExceeded
	}
	for i := range pos {
		v := &p.vertices[p.count+i]
		v.Position = pos[i]
		v.Color = c
	}
	p.count += vertsPerTri
	return nil
}

// EmitQuad writes the quad as triangles (0,1,2) and (0,2,3).
func (p *VertexPool) EmitQuad(pos [4]geom.Position, c colors.RGB) error {
	if p.Remaining() < vertsPerQuad {
		p.dropped += trianglesInQuad
		return ErrCapacityExceeded
	}
	order := [vertsPerQuad]int{0, 1, 2, 0, 2, 3}
	for i, j := range order {
		v := &p.vertices[p.count+i]
		v.Position = pos[j]
		v.Color = c
	}
	p.count += vertsPerQuad
	return nil
}

// Reset rewinds the cursor. Slot memory is kept.
func (p *VertexPool) Reset() {
	p.count = 0
	p.dropped = 0
}

// Resize stamps the viewport size on every slot, used or not, so the
// shader can normalize positions.
func (p *VertexPool) Resize(width, height int) {
	sz := geom.Size{Width: float32(width), Height: float32(height)}
	for i := range p.vertices {
		p.vertices[i].Size = sz
	}
}

func (p *VertexPool) bytes() []byte { return vertexBytes(p.Vertices()) }
