package text

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/hubastard/tessel/engine/gfx/geom"
)

// MetadataScale converts a depth key to the integer metadata the glyph
// service carries, and back.
const MetadataScale = 10000

// MetadataFor is depth*MetadataScale, rounded so that depth keys one
// step apart never collapse to the same value.
func MetadataFor(depth float32) int { return int(math32.Round(depth * MetadataScale)) }

// DepthFor inverts MetadataFor.
func DepthFor(metadata int) float32 { return float32(metadata) / MetadataScale }

// TextLine is a shaped line queued for this frame's text draw.
type TextLine struct {
	Layout    *Layout
	Left, Top float32
	Depth     float32
	Color     color.RGBA
	Clip      *geom.Rect // nil means the whole surface
}

func (t TextLine) Metadata() int { return MetadataFor(t.Depth) }

// Bounds converts the clip to whole pixels, truncating toward zero. With
// no clip the bounds are the full width x height surface.
func (t TextLine) Bounds(width, height int) image.Rectangle {
	if t.Clip == nil {
		return image.Rectangle{Max: image.Pt(width, height)}
	}
	c := t.Clip
	return image.Rectangle{
		Min: image.Pt(int(c.X), int(c.Y)),
		Max: image.Pt(int(c.X+c.Width), int(c.Y+c.Height)),
	}
}

// Batch is the frame's text queue. Lines are shaped when queued and
// dropped by Clear.
type Batch struct {
	shaper *Shaper
	lines  []TextLine
}

func NewBatch(s *Shaper) *Batch { return &Batch{shaper: s} }

// Add shapes str with m and queues it at (at.X, at.Y) with depth key at.Z.
func (b *Batch) Add(str string, m Metrics, at geom.Position, c color.RGBA, clip *geom.Rect) {
	if clip != nil {
		cp := *clip
		clip = &cp
	}
	b.lines = append(b.lines, TextLine{
		Layout: b.shaper.Shape(str, m),
		Left:   at.X,
		Top:    at.Y,
		Depth:  at.Z,
		Color:  c,
		Clip:   clip,
	})
}

func (b *Batch) Len() int          { return len(b.lines) }
func (b *Batch) Lines() []TextLine { return b.lines }

// Clear empties the queue and keeps its backing array.
func (b *Batch) Clear() {
	clear(b.lines)
	b.lines = b.lines[:0]
}

// Areas converts the queue for a width x height surface.
func (b *Batch) Areas(width, height int) []Area {
	areas := make([]Area, len(b.lines))
	for i, ln := range b.lines {
		areas[i] = Area{
			Layout:   ln.Layout,
			Left:     ln.Left,
			Top:      ln.Top,
			Bounds:   ln.Bounds(width, height),
			Color:    ln.Color,
			Metadata: ln.Metadata(),
		}
	}
	return areas
}
