package renderer2d

import (
	"github.com/gogpu/gputypes"
	"github.com/hubastard/tessel/engine/core"
)

// Shader entry points of the UI pass.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// DepthFormat is the depth attachment shared by the geometry and text passes.
const DepthFormat = gputypes.TextureFormatDepth32Float

// GeometryPipeline describes the solid geometry pass. Depth is written
// but always passes: it only orders what the text pass draws later.
func GeometryPipeline(color gputypes.TextureFormat, vertSrc, fragSrc string) core.PipelineDesc {
	return core.PipelineDesc{
		Label:          "UI Render Pipeline",
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		VertexEntry:    VertexEntry,
		FragmentEntry:  FragmentEntry,
		Buffers:        []gputypes.VertexBufferLayout{VertexLayout()},
		Topology:       gputypes.PrimitiveTopologyTriangleList,
		FrontFace:      gputypes.FrontFaceCCW,
		CullMode:       gputypes.CullModeBack,
		ColorFormat:    color,
		BlendReplace:   true,
		Depth: &core.DepthState{
			Format:       DepthFormat,
			WriteEnabled: true,
			Compare:      gputypes.CompareFunctionAlways,
		},
		SampleCount: 1,
	}
}

// TextDepthState is the depth test of the text pass: a glyph shows only
// where nothing nearer was drawn.
func TextDepthState() core.DepthState {
	return core.DepthState{
		Format:       DepthFormat,
		WriteEnabled: true,
		Compare:      gputypes.CompareFunctionLess,
	}
}
