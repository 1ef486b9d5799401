package core

import "github.com/gogpu/gputypes"

// Pipeline is a compiled render pipeline owned by a Backend.
type Pipeline interface {
	Label() string
	Release()
}

// VertexBuffer is GPU memory sized once at creation.
type VertexBuffer interface {
	Size() int
	Release()
}

// DepthState configures the depth attachment of a pipeline.
type DepthState struct {
	Format       gputypes.TextureFormat
	WriteEnabled bool
	Compare      gputypes.CompareFunction
}

// PipelineDesc describes a pipeline in WebGPU terms; backends map the
// enums to their own API.
type PipelineDesc struct {
	Label          string
	VertexSource   string
	FragmentSource string
	VertexEntry    string
	FragmentEntry  string
	Buffers        []gputypes.VertexBufferLayout
	Topology       gputypes.PrimitiveTopology
	FrontFace      gputypes.FrontFace
	CullMode       gputypes.CullMode
	ColorFormat    gputypes.TextureFormat
	BlendReplace   bool
	Depth          *DepthState
	SampleCount    uint32
}

// GPU is the slice of a graphics device the UI renderer needs.
type GPU interface {
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateVertexBuffer(label string, size int) (VertexBuffer, error)
	WriteBuffer(buf VertexBuffer, data []byte) error
	// Draw issues one non-indexed draw of count vertices starting at first.
	Draw(p Pipeline, buf VertexBuffer, first, count int) error
	SurfaceFormat() gputypes.TextureFormat
}

// Backend is the GPU plus the per-surface lifecycle the host drives.
type Backend interface {
	GPU
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()
}
