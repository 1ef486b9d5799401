package renderer2d

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/hubastard/tessel/engine/core/coretest"
	"github.com/hubastard/tessel/engine/gfx/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDescribesGeometryPipeline(t *testing.T) {
	gpu := coretest.NewGPU()
	rd, err := New(gpu, "vs", "fs", 16, 320, 200)
	require.NoError(t, err)
	defer rd.Close()

	require.Len(t, gpu.Pipelines, 1)
	desc := gpu.Pipelines[0]
	assert.Equal(t, "vs_main", desc.VertexEntry)
	assert.Equal(t, "fs_main", desc.FragmentEntry)
	assert.Equal(t, gputypes.PrimitiveTopologyTriangleList, desc.Topology)
	assert.Equal(t, gputypes.CullModeBack, desc.CullMode)
	assert.Equal(t, gpu.Format, desc.ColorFormat)
	require.NotNil(t, desc.Depth)
	assert.Equal(t, gputypes.TextureFormatDepth32Float, desc.Depth.Format)
	assert.Equal(t, gputypes.CompareFunctionAlways, desc.Depth.Compare)
	assert.True(t, desc.Depth.WriteEnabled)

	require.Len(t, gpu.Buffers, 1)
	assert.Equal(t, 16*3*vStride, gpu.Buffers[0].Size())
}

func TestTextDepthStateUsesLess(t *testing.T) {
	ds := TextDepthState()
	assert.Equal(t, gputypes.CompareFunctionLess, ds.Compare)
	assert.Equal(t, DepthFormat, ds.Format)
}

func TestFlushDrawsOnceAndRewinds(t *testing.T) {
	gpu := coretest.NewGPU()
	rd, err := New(gpu, "vs", "fs", 64, 320, 200)
	require.NoError(t, err)

	rd.BeginFrame()
	require.NoError(t, rd.FilledRectangle(geom.Pos(0, 0, 0.1), geom.Position{X: 10, Y: 10}, red, geom.CornerRadii{}))
	require.NoError(t, rd.Line(geom.Pos(0, 0, 0.1), 5, 0, 1, red))
	n := rd.Pool().Len()

	require.NoError(t, rd.Flush())
	require.Len(t, gpu.Draws, 1)
	assert.Equal(t, coretest.DrawCall{Pipeline: "UI Render Pipeline", First: 0, Count: n}, gpu.Draws[0])
	require.Len(t, gpu.Writes, 1)
	assert.Len(t, gpu.Writes[0], n*vStride)
	assert.Equal(t, 0, rd.Pool().Len())
	assert.Equal(t, Statistics{DrawCalls: 1, TriangleCount: n / 3}, rd.Stats())
	assert.Equal(t, n, rd.Stats().TotalVertexCount())
}

func TestFlushEmptyIssuesNothing(t *testing.T) {
	gpu := coretest.NewGPU()
	rd, err := New(gpu, "vs", "fs", 4, 1, 1)
	require.NoError(t, err)
	require.NoError(t, rd.Flush())
	assert.Empty(t, gpu.Draws)
	assert.Empty(t, gpu.Writes)
}

func TestFlushCountsDrops(t *testing.T) {
	gpu := coretest.NewGPU()
	rd, err := New(gpu, "vs", "fs", 2, 1, 1)
	require.NoError(t, err)
	rd.BeginFrame()
	_ = rd.FilledRectangle(geom.Pos(0, 0, 0), geom.Position{X: 1, Y: 1}, red, geom.CornerRadii{})
	require.NoError(t, rd.Flush())
	assert.Equal(t, 2, rd.Stats().TriangleCount)
	assert.Equal(t, 4*ArcSegments+4*2, rd.Stats().DroppedTriangles)
	assert.Equal(t, 0, rd.Pool().Dropped())
}

func TestFlushPropagatesGPUErrors(t *testing.T) {
	gpu := coretest.NewGPU()
	rd, err := New(gpu, "vs", "fs", 4, 1, 1)
	require.NoError(t, err)
	gpu.DrawErr = errors.New("device lost")
	require.NoError(t, rd.Pool().EmitTriangle([3]geom.Position{}, red))
	err = rd.Flush()
	assert.ErrorIs(t, err, gpu.DrawErr)
	assert.Equal(t, 0, rd.Pool().Len())
}

func TestNewFailsOnPipelineError(t *testing.T) {
	gpu := coretest.NewGPU()
	gpu.PipelineErr = errors.New("bad shader")
	_, err := New(gpu, "vs", "fs", 4, 1, 1)
	assert.ErrorIs(t, err, gpu.PipelineErr)
}

func TestCloseReleasesResources(t *testing.T) {
	gpu := coretest.NewGPU()
	rd, err := New(gpu, "vs", "fs", 4, 1, 1)
	require.NoError(t, err)
	rd.Close()
	rd.Close()
	assert.Equal(t, 2, gpu.Released)
}

func TestResizeReachesPool(t *testing.T) {
	rd, err := New(coretest.NewGPU(), "vs", "fs", 4, 1, 1)
	require.NoError(t, err)
	rd.Resize(300, 150)
	assert.Equal(t, geom.Size{Width: 300, Height: 150}, rd.Pool().Slot(11).Size)
}
