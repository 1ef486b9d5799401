// Package layout is a small retained widget tree that sizes itself with
// text measurements and emits the UI render command stream.
package layout

import (
	"math"

	"github.com/hubastard/tessel/engine/gfx/geom"
	"github.com/hubastard/tessel/engine/ui"
)

type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

// Constraints bound a layout pass. A zero Max means unbounded.
type Constraints struct {
	Min [2]float32
	Max [2]float32
}

type Result struct {
	Size [2]float32
}

// Measurer sizes text during layout.
type Measurer interface {
	Measure(s string, fontSize, lineHeight float32) geom.Size
}

// Context carries one layout + draw pass.
type Context struct {
	Viewport geom.Rect
	Measurer Measurer
	Mouse    [2]float32

	cmds []ui.Command
}

func (c *Context) emit(cmd ui.Command) { c.cmds = append(c.cmds, cmd) }

// Build lays out root inside the viewport and returns its commands in
// paint order. The returned slice is reused by the next Build.
func (c *Context) Build(root Element) []ui.Command {
	c.cmds = c.cmds[:0]
	n := root.Node()
	n.SetPos(c.Viewport.X, c.Viewport.Y)
	root.Layout(c, Constraints{Max: [2]float32{c.Viewport.Width, c.Viewport.Height}})
	root.Draw(c)
	return c.cmds
}

type Element interface {
	Node() *Base
	Layout(ctx *Context, constraints Constraints) Result
	Draw(ctx *Context)
}

type Base struct {
	parent   Element
	children []Element
	position [2]float32
	size     [2]float32
	mode     [2]SizeMode
	fixed    [2]float32
	padding  [4]float32 // left, top, right, bottom

	color       ui.Color
	radii       geom.CornerRadii
	borderColor ui.Color
	border      geom.BorderThickness
}

func (b *Base) Parent() Element        { return b.parent }
func (b *Base) Children() []Element    { return b.children }
func (b *Base) Pos() (x, y float32)    { return b.position[0], b.position[1] }
func (b *Base) Size() (w, h float32)   { return b.size[0], b.size[1] }
func (b *Base) SetPos(x, y float32)    { b.position = [2]float32{x, y} }
func (b *Base) SetSize(w, h float32)   { b.size = [2]float32{w, h} }
func (b *Base) SetColor(c ui.Color)    { b.color = c }
func (b *Base) Padding() [4]float32    { return b.padding }
func (b *Base) Mode(axis int) SizeMode { return b.mode[axis] }
func (b *Base) SetPadding(l, t, r, btm float32) {
	b.padding = [4]float32{l, t, r, btm}
}

// moveTo places b at (x, y) and carries its already placed subtree along.
func (b *Base) moveTo(x, y float32) {
	dx, dy := x-b.position[0], y-b.position[1]
	b.shift(dx, dy)
}

func (b *Base) shift(dx, dy float32) {
	b.position[0] += dx
	b.position[1] += dy
	for _, c := range b.children {
		c.Node().shift(dx, dy)
	}
}

// Bounds is the box the last layout placed b in.
func (b *Base) Bounds() geom.Rect {
	return geom.Rect{X: b.position[0], Y: b.position[1], Width: b.size[0], Height: b.size[1]}
}

// Contains reports whether (x, y) is inside Bounds.
func (b *Base) Contains(x, y float32) bool {
	return x >= b.position[0] && x < b.position[0]+b.size[0] &&
		y >= b.position[1] && y < b.position[1]+b.size[1]
}

// drawBox emits the background fill and the border of b.
func (b *Base) drawBox(ctx *Context, fill ui.Color) {
	r := b.Bounds()
	if fill.A > 0 {
		ctx.emit(ui.Rectangle(r).WithColor(fill).WithRadii(b.radii))
	}
	if b.borderColor.A > 0 && b.border != (geom.BorderThickness{}) {
		ctx.emit(ui.Border(r, 0).WithThickness(b.border).WithColor(b.borderColor).WithRadii(b.radii))
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func resolveConstraint(max float32) float32 {
	if max == 0 {
		return float32(math.MaxFloat32)
	}
	return max
}

// resolveAxis sizes b along axis from its mode and the content size.
func (b *Base) resolveAxis(axis int, content, min, max float32) float32 {
	hi := resolveConstraint(max)
	switch b.mode[axis] {
	case SizeModeFixed:
		if b.fixed[axis] > 0 {
			return clamp(b.fixed[axis], min, hi)
		}
	case SizeModeExpand:
		return clamp(hi, min, hi)
	}
	return clamp(content, min, hi)
}

// inset is the padding on the low and high side of axis.
func (b *Base) inset(axis int) float32 {
	return b.padding[axis] + b.padding[axis+2]
}

// innerLimit is the room left for children along axis.
func (b *Base) innerLimit(axis int, hi float32) float32 {
	limit := resolveConstraint(hi)
	if b.mode[axis] == SizeModeFixed && b.fixed[axis] > 0 {
		limit = min(limit, b.fixed[axis])
	}
	return max(0, limit-b.inset(axis))
}

func (b *Base) innerPosition() (float32, float32) {
	return b.position[0] + b.padding[0], b.position[1] + b.padding[1]
}

// ------ Helper ------

// Common gives every widget the same chained setters.
type Common[T any] struct {
	owner T
	base  Base
}

func NewCommon[T any](owner T) Common[T] {
	return Common[T]{owner: owner}
}

func (c *Common[T]) Node() *Base                { return &c.base }
func (c *Common[T]) Position(x, y float32) T    { c.base.SetPos(x, y); return c.owner }
func (c *Common[T]) Size(w, h float32) T        { c.base.SetSize(w, h); return c.owner }
func (c *Common[T]) Color(col ui.Color) T       { c.base.SetColor(col); return c.owner }
func (c *Common[T]) Rounded(r float32) T        { c.base.radii = geom.AllRadii(r); return c.owner }
func (c *Common[T]) Radii(r geom.CornerRadii) T { c.base.radii = r; return c.owner }

func (c *Common[T]) Border(col ui.Color, thickness float32) T {
	c.base.borderColor = col
	c.base.border = geom.AllSides(thickness)
	return c.owner
}

func (c *Common[T]) WidthFit() T {
	c.base.mode[0] = SizeModeFit
	return c.owner
}

func (c *Common[T]) WidthFixed(width float32) T {
	c.base.mode[0] = SizeModeFixed
	c.base.fixed[0] = width
	return c.owner
}

func (c *Common[T]) WidthExpand() T {
	c.base.mode[0] = SizeModeExpand
	return c.owner
}

func (c *Common[T]) HeightFit() T {
	c.base.mode[1] = SizeModeFit
	return c.owner
}

func (c *Common[T]) HeightFixed(height float32) T {
	c.base.mode[1] = SizeModeFixed
	c.base.fixed[1] = height
	return c.owner
}

func (c *Common[T]) HeightExpand() T {
	c.base.mode[1] = SizeModeExpand
	return c.owner
}

func (c *Common[T]) Padding(all float32) T {
	c.base.SetPadding(all, all, all, all)
	return c.owner
}

func (c *Common[T]) Padding2(horizontal, vertical float32) T {
	c.base.SetPadding(horizontal, vertical, horizontal, vertical)
	return c.owner
}

func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.base.SetPadding(left, top, right, bottom)
	return c.owner
}

func (c *Common[T]) Children(kids ...Element) T {
	c.base.children = append(c.base.children, kids...)
	for _, k := range kids {
		k.Node().parent = any(c.owner).(Element)
	}
	return c.owner
}
