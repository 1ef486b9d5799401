package ui

import (
	"testing"
	"unsafe"

	"github.com/hubastard/tessel/engine/colors"
	"github.com/hubastard/tessel/engine/gfx/geom"
	"github.com/hubastard/tessel/engine/gfx/renderer2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vertices decodes an uploaded vertex buffer.
func vertices(t *testing.T, b []byte) []renderer2d.Vertex {
	t.Helper()
	size := int(unsafe.Sizeof(renderer2d.Vertex{}))
	require.Zero(t, len(b)%size)
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*renderer2d.Vertex)(unsafe.Pointer(&b[0])), len(b)/size)
}

func TestCommandBuilders(t *testing.T) {
	b := geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}

	c := Border(b, 2).WithColor(RGB(10, 20, 30)).Rounded(5)
	assert.Equal(t, KindBorder, c.Kind)
	assert.Equal(t, geom.AllSides(2), c.Thickness)
	assert.Equal(t, geom.AllRadii(5), c.Radii)
	assert.Equal(t, Color{10, 20, 30, 255}, c.Color)

	r := geom.CornerRadii{TopLeft: 1, BottomRight: 2}
	th := geom.BorderThickness{Top: 3}
	c = Rectangle(b).WithRadii(r).WithThickness(th)
	assert.Equal(t, r, c.Radii)
	assert.Equal(t, th, c.Thickness)

	txt := Text(b, "hi", 18).WithLineHeight(20)
	assert.Equal(t, Command{Kind: KindText, Bounds: b, Text: "hi", FontSize: 18, LineHeight: 20}, txt)

	assert.Equal(t, KindScissorStart, ScissorStart(b).Kind)
	assert.Equal(t, KindScissorEnd, ScissorEnd().Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "rectangle", KindRectangle.String())
	assert.Equal(t, "scissor-end", KindScissorEnd.String())
	assert.Equal(t, "unknown", Kind(200).String())
}

func TestColorConversions(t *testing.T) {
	c := RGB(255, 51, 0)
	assert.Equal(t, colors.RGB{R: 1, G: 0.2, B: 0}, c.vertex())
	assert.Equal(t, uint8(51), c.text().G)
}
