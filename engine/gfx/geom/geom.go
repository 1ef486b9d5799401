// Package geom holds the small value types the UI tessellator works with.
// Coordinates are pixels with the origin at the top-left and Y growing down.
// Z is a stacking key, never a real depth.
package geom

import "github.com/chewxy/math32"

// Position is a point in surface pixels plus a depth key.
type Position struct {
	X, Y, Z float32
}

// Pos builds a Position.
func Pos(x, y, z float32) Position { return Position{X: x, Y: y, Z: z} }

// Rotate turns p about the origin by degrees. Positive angles rotate
// clockwise on screen, so Rotate((1,0), 90) lands on (0,-1).
func (p Position) Rotate(degrees float32) Position {
	rad := -degrees * (math32.Pi / 180)
	sn, cs := math32.Sincos(rad)
	return Position{
		X: p.X*cs - p.Y*sn,
		Y: p.X*sn + p.Y*cs,
		Z: p.Z,
	}
}

// Add translates p by o. Z of p is kept.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z}
}

// AddScalar adds v to both X and Y.
func (p Position) AddScalar(v float32) Position {
	return Position{X: p.X + v, Y: p.Y + v, Z: p.Z}
}

// SubScalar subtracts v from both X and Y.
func (p Position) SubScalar(v float32) Position {
	return Position{X: p.X - v, Y: p.Y - v, Z: p.Z}
}

// Scale multiplies X and Y by v.
func (p Position) Scale(v float32) Position {
	return Position{X: p.X * v, Y: p.Y * v, Z: p.Z}
}

// AddX returns p moved dx to the right.
func (p Position) AddX(dx float32) Position { p.X += dx; return p }

// AddY returns p moved dy down.
func (p Position) AddY(dy float32) Position { p.Y += dy; return p }

// Size is a width/height pair.
type Size struct {
	Width, Height float32
}

// Rect is an axis aligned box: top-left corner plus extent.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Origin returns the top-left corner at depth z.
func (r Rect) Origin(z float32) Position { return Position{X: r.X, Y: r.Y, Z: z} }

// Extent returns the width/height as a Position (the tessellator treats
// sizes as vectors).
func (r Rect) Extent(z float32) Position { return Position{X: r.Width, Y: r.Height, Z: z} }

// CornerRadii are per-corner radii. Zero means a sharp corner.
type CornerRadii struct {
	TopLeft     float32 `toml:"top_left"`
	TopRight    float32 `toml:"top_right"`
	BottomLeft  float32 `toml:"bottom_left"`
	BottomRight float32 `toml:"bottom_right"`
}

// AllRadii returns radii with every corner set to r.
func AllRadii(r float32) CornerRadii {
	return CornerRadii{TopLeft: r, TopRight: r, BottomLeft: r, BottomRight: r}
}

// BorderThickness holds per-side stroke widths.
type BorderThickness struct {
	Top    float32 `toml:"top"`
	Left   float32 `toml:"left"`
	Bottom float32 `toml:"bottom"`
	Right  float32 `toml:"right"`
}

// AllSides returns a thickness with every side set to t.
func AllSides(t float32) BorderThickness {
	return BorderThickness{Top: t, Left: t, Bottom: t, Right: t}
}
