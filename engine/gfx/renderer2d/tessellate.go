package renderer2d

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/tessel/engine/colors"
	"github.com/hubastard/tessel/engine/gfx/geom"
)

// ArcSegments is the number of straight pieces every arc is cut into.
const ArcSegments = 10

// Tessellator turns rounded-rectangle primitives into triangles in a pool.
// Every method keeps going after a refused emission and reports
// ErrCapacityExceeded once at the end.
type Tessellator struct {
	pool *VertexPool
}

// NewTessellator writes into p.
func NewTessellator(p *VertexPool) *Tessellator { return &Tessellator{pool: p} }

// Pool returns the pool the tessellator writes into.
func (t *Tessellator) Pool() *VertexPool { return t.pool }

// Line draws a thickness wide band from start, length long, heading
// angle degrees (0 = right, 90 = up, 270 = down).
func (t *Tessellator) Line(start geom.Position, length, angle, thickness float32, c colors.RGB) error {
	half := thickness / 2
	local := [4]geom.Position{
		{X: 0, Y: -half},
		{X: 0, Y: half},
		{X: length, Y: half},
		{X: length, Y: -half},
	}
	var q [4]geom.Position
	for i, pt := range local {
		pt.Z = start.Z
		q[i] = pt.Rotate(angle).Add(start)
	}
	return t.pool.EmitQuad(q, c)
}

// arcStep is the per-segment sweep in degrees.
func arcStep(begin, end float32) float32 {
	return math32.Abs(end-begin) / ArcSegments
}

// Arc strokes the circle around origin from begin to end degrees with
// ArcSegments tangent lines.
func (t *Tessellator) Arc(origin geom.Position, radius, begin, end, thickness float32, c colors.RGB) error {
	step := arcStep(begin, end)
	dist := 2 * math32.Pi * radius * (step / 360)

	var err error
	for i := 0; i < ArcSegments; i++ {
		a := begin + step*float32(i)
		p := geom.Pos(radius, 0, origin.Z).Rotate(a).Add(origin)
		keep(&err, t.Line(p, dist, a+90+step/2, thickness, c))
	}
	return err
}

// FilledArc fans ArcSegments triangles out of origin, covering the slice
// between begin and end degrees.
func (t *Tessellator) FilledArc(origin geom.Position, radius, begin, end float32, c colors.RGB) error {
	step := arcStep(begin, end)

	var err error
	for i := 0; i < ArcSegments; i++ {
		next := geom.Pos(radius, 0, origin.Z).Rotate(begin + step*float32(i+1)).Add(origin)
		cur := geom.Pos(radius, 0, origin.Z).Rotate(begin + step*float32(i)).Add(origin)
		keep(&err, t.pool.EmitTriangle([3]geom.Position{next, origin, cur}, c))
	}
	return err
}

// Rectangle strokes the outline of a rounded rectangle. Top corners use
// the top thickness and bottom corners the bottom one. Radii are not
// clamped to the rectangle.
func (t *Tessellator) Rectangle(pos, size geom.Position, th geom.BorderThickness, c colors.RGB, r geom.CornerRadii) error {
	var err error
	keep(&err, t.Arc(pos.AddScalar(r.TopLeft), r.TopLeft, 90, 180, th.Top, c))
	keep(&err, t.Arc(pos.AddX(size.X-r.TopRight).AddY(r.TopRight), r.TopRight, 0, 90, th.Top, c))
	keep(&err, t.Arc(pos.AddX(r.BottomLeft).AddY(size.Y-r.BottomLeft), r.BottomLeft, 180, 270, th.Bottom, c))
	keep(&err, t.Arc(pos.AddX(size.X-r.BottomRight).AddY(size.Y-r.BottomRight), r.BottomRight, 270, 360, th.Bottom, c))

	keep(&err, t.Line(pos.AddX(r.TopLeft), size.X-(r.TopLeft+r.TopRight), 0, th.Top, c))
	keep(&err, t.Line(pos.AddY(r.TopLeft), size.Y-(r.TopLeft+r.BottomLeft), 270, th.Left, c))
	keep(&err, t.Line(pos.AddX(r.BottomLeft).AddY(size.Y), size.X-(r.BottomLeft+r.BottomRight), 0, th.Bottom, c))
	keep(&err, t.Line(pos.AddX(size.X).AddY(r.TopRight), size.Y-(r.TopRight+r.BottomRight), 270, th.Right, c))
	return err
}

// FilledRectangle fills a rounded rectangle with four corner fans and
// five quads: top, bottom, left and right bands plus the inset center.
// With zero radii only the center has area and it covers the whole box.
func (t *Tessellator) FilledRectangle(pos, size geom.Position, c colors.RGB, r geom.CornerRadii) error {
	w, h := size.X, size.Y

	var err error
	keep(&err, t.FilledArc(pos.AddScalar(r.TopLeft), r.TopLeft, 90, 180, c))
	keep(&err, t.FilledArc(pos.AddX(w-r.TopRight).AddY(r.TopRight), r.TopRight, 0, 90, c))
	keep(&err, t.FilledArc(pos.AddX(r.BottomLeft).AddY(h-r.BottomLeft), r.BottomLeft, 180, 270, c))
	keep(&err, t.FilledArc(pos.AddX(w-r.BottomRight).AddY(h-r.BottomRight), r.BottomRight, 270, 360, c))

	tl := pos.AddScalar(r.TopLeft)
	tr := pos.AddX(w - r.TopRight).AddY(r.TopRight)
	bl := pos.AddX(r.BottomLeft).AddY(h - r.BottomLeft)
	br := pos.AddX(w - r.BottomRight).AddY(h - r.BottomRight)

	// top
	keep(&err, t.pool.EmitQuad([4]geom.Position{pos.AddX(r.TopLeft), tl, tr, pos.AddX(w - r.TopRight)}, c))
	// bottom
	keep(&err, t.pool.EmitQuad([4]geom.Position{bl, pos.AddX(r.BottomLeft).AddY(h), pos.AddX(w - r.BottomRight).AddY(h), br}, c))
	// left
	keep(&err, t.pool.EmitQuad([4]geom.Position{pos.AddY(r.TopLeft), pos.AddY(h - r.BottomLeft), bl, tl}, c))
	// right
	keep(&err, t.pool.EmitQuad([4]geom.Position{tr, br, pos.AddX(w).AddY(h - r.BottomRight), pos.AddX(w).AddY(r.TopRight)}, c))
	// center
	keep(&err, t.pool.EmitQuad([4]geom.Position{tl, bl, br, tr}, c))
	return err
}

// keep records the first error seen.
func keep(dst *error, err error) {
	if *dst == nil {
		*dst = err
	}
}
