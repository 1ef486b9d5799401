// Package glbackend implements core.Backend and the text pass on OpenGL 3.3 core.
package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"
	"github.com/hubastard/tessel/engine/core"
)

// pipeline is a linked program plus the fixed-function state it draws with.
type pipeline struct {
	label     string
	program   uint32
	vao       uint32
	mode      uint32
	stride    int32
	attribs   []attrib
	depth     bool
	depthFunc uint32
	depthMask bool
	cull      uint32
	front     uint32
	blend     bool
	owner     *Backend
}

func (p *pipeline) Label() string { return p.label }

func (p *pipeline) Release() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

type buffer struct {
	label string
	id    uint32
	size  int
	owner *Backend
}

func (b *buffer) Size() int { return b.size }

func (b *buffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// Backend draws into the default framebuffer of the current GL context.
type Backend struct {
	win       core.Window
	width     int
	height    int
	pipelines []*pipeline
	buffers   []*buffer
}

// New loads the GL entry points for the context current on win.
func New(win core.Window, cfg core.Config) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	core.Logger().Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	b := &Backend{win: win, width: cfg.Width, height: cfg.Height}
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearDepth(1)
	return b, nil
}

// CreatePipeline compiles the GLSL sources in desc. Entry point names are
// ignored: GLSL stages always start at main.
func (b *Backend) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if len(desc.Buffers) != 1 {
		return nil, fmt.Errorf("%w: %d vertex buffers in %q", ErrUnsupported, len(desc.Buffers), desc.Label)
	}
	if desc.SampleCount > 1 {
		return nil, fmt.Errorf("%w: %d samples in %q", ErrUnsupported, desc.SampleCount, desc.Label)
	}
	mode, err := topology(desc.Topology)
	if err != nil {
		return nil, err
	}
	cull, err := cullFace(desc.CullMode)
	if err != nil {
		return nil, err
	}
	layout := desc.Buffers[0]
	attrs, err := attribs(layout)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", desc.Label, err)
	}

	p := &pipeline{
		label:   desc.Label,
		mode:    mode,
		stride:  int32(layout.ArrayStride),
		attribs: attrs,
		cull:    cull,
		front:   frontFace(desc.FrontFace),
		blend:   !desc.BlendReplace,
		owner:   b,
	}
	if d := desc.Depth; d != nil {
		if p.depthFunc, err = compareFunc(d.Compare); err != nil {
			return nil, err
		}
		p.depth = true
		p.depthMask = d.WriteEnabled
	}

	if p.program, err = makeProgram(desc.VertexSource, desc.FragmentSource); err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", desc.Label, err)
	}
	gl.GenVertexArrays(1, &p.vao)
	b.pipelines = append(b.pipelines, p)
	core.Logger().Debug("pipeline created", "label", desc.Label, "attributes", len(attrs))
	return p, nil
}

func (b *Backend) CreateVertexBuffer(label string, size int) (core.VertexBuffer, error) {
	buf := &buffer{label: label, size: size, owner: b}
	gl.GenBuffers(1, &buf.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.id)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	b.buffers = append(b.buffers, buf)
	return buf, nil
}

func (b *Backend) buffer(vb core.VertexBuffer) (*buffer, error) {
	buf, ok := vb.(*buffer)
	if !ok || buf.owner != b {
		return nil, ErrForeignResource
	}
	return buf, nil
}

func (b *Backend) WriteBuffer(vb core.VertexBuffer, data []byte) error {
	buf, err := b.buffer(vb)
	if err != nil {
		return err
	}
	if len(data) > buf.size {
		return fmt.Errorf("%w: %d bytes into %q of %d", ErrBufferOverflow, len(data), buf.label, buf.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (b *Backend) Draw(pl core.Pipeline, vb core.VertexBuffer, first, count int) error {
	p, ok := pl.(*pipeline)
	if !ok || p.owner != b {
		return ErrForeignResource
	}
	buf, err := b.buffer(vb)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	gl.UseProgram(p.program)
	p.apply()
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.id)
	for _, a := range p.attribs {
		gl.EnableVertexAttribArray(a.location)
		gl.VertexAttribPointerWithOffset(a.location, a.components, a.xtype, a.normalized, p.stride, a.offset)
	}
	gl.DrawArrays(p.mode, int32(first), int32(count))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.UseProgram(0)
	return nil
}

// apply sets the fixed-function state of p.
func (p *pipeline) apply() {
	applyDepth(p.depth, p.depthFunc, p.depthMask)
	if p.cull != 0 {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(p.cull)
		gl.FrontFace(p.front)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	if p.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func applyDepth(enabled bool, fn uint32, write bool) {
	if !enabled {
		gl.Disable(gl.DEPTH_TEST)
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(fn)
	gl.DepthMask(write)
}

// SurfaceFormat reports the default framebuffer as 8-bit RGBA.
func (b *Backend) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (b *Backend) Resize(w, h int) {
	b.width, b.height = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

// Clear resets color and depth. Depth must be writable for the clear to land.
func (b *Backend) Clear(r, g, bl, a float32) {
	gl.DepthMask(true)
	gl.ClearColor(r, g, bl, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Shutdown releases everything the backend created.
func (b *Backend) Shutdown() {
	for _, p := range b.pipelines {
		p.Release()
	}
	for _, buf := range b.buffers {
		buf.Release()
	}
	b.pipelines, b.buffers = nil, nil
}
