// Package coretest provides in-memory stand-ins for core interfaces.
package coretest

import (
	"github.com/gogpu/gputypes"
	"github.com/hubastard/tessel/engine/core"
)

// DrawCall records one GPU.Draw.
type DrawCall struct {
	Pipeline string
	First    int
	Count    int
}

// GPU records every call and never touches a device.
type GPU struct {
	Format    gputypes.TextureFormat
	Pipelines []core.PipelineDesc
	Buffers   []*Buffer
	Writes    [][]byte
	Draws     []DrawCall
	Released  int

	// Errors returned by the matching call when set.
	PipelineErr error
	BufferErr   error
	WriteErr    error
	DrawErr     error
}

func NewGPU() *GPU { return &GPU{Format: gputypes.TextureFormatBGRA8Unorm} }

type Pipeline struct {
	gpu   *GPU
	label string
}

func (p *Pipeline) Label() string { return p.label }
func (p *Pipeline) Release()      { p.gpu.Released++ }

type Buffer struct {
	gpu   *GPU
	Label string
	size  int
}

func (b *Buffer) Size() int { return b.size }
func (b *Buffer) Release()  { b.gpu.Released++ }

func (g *GPU) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if g.PipelineErr != nil {
		return nil, g.PipelineErr
	}
	g.Pipelines = append(g.Pipelines, desc)
	return &Pipeline{gpu: g, label: desc.Label}, nil
}

func (g *GPU) CreateVertexBuffer(label string, size int) (core.VertexBuffer, error) {
	if g.BufferErr != nil {
		return nil, g.BufferErr
	}
	b := &Buffer{gpu: g, Label: label, size: size}
	g.Buffers = append(g.Buffers, b)
	return b, nil
}

func (g *GPU) WriteBuffer(_ core.VertexBuffer, data []byte) error {
	if g.WriteErr != nil {
		return g.WriteErr
	}
	g.Writes = append(g.Writes, append([]byte(nil), data...))
	return nil
}

func (g *GPU) Draw(p core.Pipeline, _ core.VertexBuffer, first, count int) error {
	if g.DrawErr != nil {
		return g.DrawErr
	}
	g.Draws = append(g.Draws, DrawCall{Pipeline: p.Label(), First: first, Count: count})
	return nil
}

func (g *GPU) SurfaceFormat() gputypes.TextureFormat { return g.Format }

var _ core.GPU = (*GPU)(nil)
