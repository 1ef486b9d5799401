package renderer2d

import (
	"fmt"

	"github.com/hubastard/tessel/engine/core"
)

// Renderer2D owns the vertex pool, its GPU mirror and the geometry
// pipeline. Shapes are tessellated through the embedded Tessellator and
// submitted with a single draw on Flush.
type Renderer2D struct {
	*Tessellator

	gpu   core.GPU
	pipe  core.Pipeline
	buf   core.VertexBuffer
	pool  *VertexPool
	stats Statistics
}

// New compiles the pipeline and allocates a pool of maxTriangles triangles.
func New(gpu core.GPU, vertSrc, fragSrc string, maxTriangles, width, height int) (*Renderer2D, error) {
	if maxTriangles <= 0 {
		maxTriangles = 10000
	}
	pipe, err := gpu.CreatePipeline(GeometryPipeline(gpu.SurfaceFormat(), vertSrc, fragSrc))
	if err != nil {
		return nil, fmt.Errorf("create geometry pipeline: %w", err)
	}

	pool := NewVertexPool(maxTriangles, width, height)
	buf, err := gpu.CreateVertexBuffer("ui triangle buffer", pool.Cap()*vStride)
	if err != nil {
		pipe.Release()
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	core.Logger().Info("ui geometry renderer created",
		"triangles", maxTriangles, "bytes", pool.Cap()*vStride)

	return &Renderer2D{
		Tessellator: NewTessellator(pool),
		gpu:         gpu,
		pipe:        pipe,
		buf:         buf,
		pool:        pool,
	}, nil
}

// BeginFrame clears the frame statistics.
func (rd *Renderer2D) BeginFrame() { rd.stats = Statistics{} }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// Flush uploads [0, Len) and draws it in one call, then rewinds the pool.
// An empty pool issues nothing.
func (rd *Renderer2D) Flush() error {
	rd.stats.DroppedTriangles += rd.pool.Dropped()
	n := rd.pool.Len()
	if n == 0 {
		rd.pool.Reset()
		return nil
	}
	defer rd.pool.Reset()

	if err := rd.gpu.WriteBuffer(rd.buf, rd.pool.bytes()); err != nil {
		return fmt.Errorf("upload ui vertices: %w", err)
	}
	if err := rd.gpu.Draw(rd.pipe, rd.buf, 0, n); err != nil {
		return fmt.Errorf("draw ui vertices: %w", err)
	}
	rd.stats.DrawCalls++
	rd.stats.TriangleCount += n / vertsPerTri
	return nil
}

// Resize restamps the viewport size on every vertex slot.
func (rd *Renderer2D) Resize(width, height int) { rd.pool.Resize(width, height) }

// Close releases the GPU resources.
func (rd *Renderer2D) Close() {
	if rd.buf != nil {
		rd.buf.Release()
		rd.buf = nil
	}
	if rd.pipe != nil {
		rd.pipe.Release()
		rd.pipe = nil
	}
}
