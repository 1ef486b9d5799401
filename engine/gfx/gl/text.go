package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/tessel/engine/core"
	"github.com/hubastard/tessel/engine/gfx/renderer2d"
	"github.com/hubastard/tessel/engine/text"
)

const glyphStride = int32(unsafe.Sizeof(text.GlyphVertex{}))

// TextRenderer draws atlas glyphs in one pass per atlas page. Glyphs are
// depth tested against the geometry drawn earlier in the frame.
type TextRenderer struct {
	atlas    *text.Atlas
	prepared text.Prepared
	staging  []text.GlyphVertex
	ranges   [][2]int32 // first, count per page

	program  uint32
	vao, vbo uint32
	capacity int // vertices
	textures []uint32
	viewport int32
	sampler  int32

	width, height int
	depthFunc     uint32
	depthWrite    bool
}

// NewTextRenderer compiles the text program. The GL context of b must be current.
func NewTextRenderer(_ *Backend, atlas *text.Atlas, vertSrc, fragSrc string) (*TextRenderer, error) {
	ds := renderer2d.TextDepthState()
	fn, err := compareFunc(ds.Compare)
	if err != nil {
		return nil, err
	}
	prog, err := makeProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("text program: %w", err)
	}
	t := &TextRenderer{
		atlas:      atlas,
		program:    prog,
		viewport:   uniform(prog, "uViewport"),
		sampler:    uniform(prog, "uAtlas"),
		depthFunc:  fn,
		depthWrite: ds.WriteEnabled,
	}

	gl.GenVertexArrays(1, &t.vao)
	gl.GenBuffers(1, &t.vbo)
	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	// layout(location=0) vec3 pos, (1) vec2 uv, (2) vec4 color
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, glyphStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, glyphStride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, glyphStride, 5*4)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return t, nil
}

func (t *TextRenderer) Trim() { t.atlas.Trim() }

func (t *TextRenderer) SetViewport(width, height int) {
	t.width, t.height = width, height
}

// Prepare builds the glyph quads, uploads dirty atlas pages and fills the
// vertex buffer.
func (t *TextRenderer) Prepare(areas []text.Area, depth func(metadata int) float32) error {
	if err := t.atlas.Build(areas, depth, &t.prepared); err != nil {
		return err
	}
	t.uploadPages()

	t.staging = t.staging[:0]
	t.ranges = t.ranges[:0]
	for _, pg := range t.prepared.Pages {
		t.ranges = append(t.ranges, [2]int32{int32(len(t.staging)), int32(len(pg))})
		t.staging = append(t.staging, pg...)
	}
	if len(t.staging) == 0 {
		return nil
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	size := len(t.staging) * int(glyphStride)
	if len(t.staging) > t.capacity {
		t.capacity = max(len(t.staging), 2*t.capacity)
		gl.BufferData(gl.ARRAY_BUFFER, t.capacity*int(glyphStride), nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&t.staging[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (t *TextRenderer) uploadPages() {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, p := range t.atlas.Pages() {
		if i >= len(t.textures) {
			var tex uint32
			gl.GenTextures(1, &tex)
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
			t.textures = append(t.textures, tex)
			p.Dirty = true
		}
		if !p.Dirty {
			continue
		}
		b := p.Image.Bounds()
		gl.BindTexture(gl.TEXTURE_2D, t.textures[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(p.Image.Pix))
		p.Dirty = false
		core.Logger().Debug("atlas page uploaded", "page", i, "glyphs", t.atlas.Len())
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Render draws what the last Prepare built.
func (t *TextRenderer) Render() error {
	if len(t.staging) == 0 {
		return nil
	}
	gl.UseProgram(t.program)
	gl.Uniform2f(t.viewport, float32(t.width), float32(t.height))
	gl.Uniform1i(t.sampler, 0)
	applyDepth(true, t.depthFunc, t.depthWrite)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(t.vao)
	for i, r := range t.ranges {
		if r[1] == 0 {
			continue
		}
		gl.BindTexture(gl.TEXTURE_2D, t.textures[i])
		gl.DrawArrays(gl.TRIANGLES, r[0], r[1])
	}
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	return nil
}

// Release frees the program, buffers and page textures.
func (t *TextRenderer) Release() {
	if len(t.textures) > 0 {
		gl.DeleteTextures(int32(len(t.textures)), &t.textures[0])
		t.textures = nil
	}
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
		t.vbo = 0
	}
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	if t.program != 0 {
		gl.DeleteProgram(t.program)
		t.program = 0
	}
}

var _ text.Renderer = (*TextRenderer)(nil)
var _ core.Backend = (*Backend)(nil)
