package ui

import (
	"image/color"

	"github.com/hubastard/tessel/engine/colors"
	"github.com/hubastard/tessel/engine/gfx/geom"
)

// Kind tags a render command.
type Kind uint8

const (
	KindNone Kind = iota
	KindRectangle
	KindBorder
	KindText
	KindImage
	KindScissorStart
	KindScissorEnd
	KindCustom
)

var kindNames = [...]string{"none", "rectangle", "border", "text", "image", "scissor-start", "scissor-end", "custom"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Color is a layout color with 0-255 channels.
type Color struct {
	R, G, B, A float32
}

// RGB returns an opaque Color.
func RGB(r, g, b float32) Color { return Color{R: r, G: g, B: b, A: 255} }

// vertex normalizes the channels for the geometry pass.
func (c Color) vertex() colors.RGB { return colors.RGB8(c.R, c.G, c.B).RGB() }

// text truncates to 8-bit opaque RGB for the glyph service.
func (c Color) text() color.RGBA {
	return color.RGBA{R: trunc8(c.R), G: trunc8(c.G), B: trunc8(c.B), A: 255}
}

func trunc8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Command is one entry of the render command stream. Fields a kind does
// not use are ignored.
type Command struct {
	Kind       Kind
	Bounds     geom.Rect
	Color      Color
	Radii      geom.CornerRadii
	Thickness  geom.BorderThickness
	Text       string
	FontSize   float32
	LineHeight float32 // 0 means 1.5 x FontSize
}

// Rectangle starts a filled rectangle command.
func Rectangle(b geom.Rect) Command { return Command{Kind: KindRectangle, Bounds: b} }

// Border starts an outline command with the same thickness on every side.
func Border(b geom.Rect, thickness float32) Command {
	return Command{Kind: KindBorder, Bounds: b, Thickness: geom.AllSides(thickness)}
}

// Text starts a text command positioned at the top-left of b.
func Text(b geom.Rect, s string, fontSize float32) Command {
	return Command{Kind: KindText, Bounds: b, Text: s, FontSize: fontSize}
}

func ScissorStart(b geom.Rect) Command { return Command{Kind: KindScissorStart, Bounds: b} }
func ScissorEnd() Command              { return Command{Kind: KindScissorEnd} }

func (c Command) WithColor(col Color) Command { c.Color = col; return c }
func (c Command) Rounded(r float32) Command   { c.Radii = geom.AllRadii(r); return c }

func (c Command) WithRadii(r geom.CornerRadii) Command { c.Radii = r; return c }

func (c Command) WithThickness(t geom.BorderThickness) Command { c.Thickness = t; return c }

func (c Command) WithLineHeight(h float32) Command { c.LineHeight = h; return c }
