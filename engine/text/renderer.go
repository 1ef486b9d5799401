package text

import (
	"image"
	"image/color"
)

// Area is one block of shaped text handed to a Renderer.
type Area struct {
	Layout    *Layout
	Left, Top float32
	Bounds    image.Rectangle // glyphs are cut to this rectangle
	Color     color.RGBA
	Metadata  int
}

// Renderer is the glyph service behind the text pass.
type Renderer interface {
	// Trim evicts glyphs unused since the previous Trim.
	Trim()
	// SetViewport sets the surface resolution in pixels.
	SetViewport(width, height int)
	// Prepare rasterizes what areas need and builds the draw. depth maps
	// an area's metadata to its depth value.
	Prepare(areas []Area, depth func(metadata int) float32) error
	// Render issues the draw built by the last Prepare.
	Render() error
}
