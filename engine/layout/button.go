package layout

import (
	"github.com/hubastard/tessel/engine/gfx/geom"
	"github.com/hubastard/tessel/engine/ui"
)

// UIButton is a padded, filled box around a label. It switches to its
// hover color while the mouse is over it.
type UIButton struct {
	Common[*UIButton]
	label   *UILabel
	hover   ui.Color
	onClick func()
}

func Button(str string) *UIButton {
	b := &UIButton{}
	b.Common = NewCommon(b)
	b.label = Label(str)
	b.Children(b.label)
	b.base.color = ui.RGB(60, 60, 70)
	b.hover = ui.RGB(80, 80, 95)
	b.base.SetPadding(10, 10, 10, 10)
	b.base.radii = geom.AllRadii(6)
	return b
}

func (b *UIButton) BgColor(c ui.Color) *UIButton    { b.base.color = c; return b }
func (b *UIButton) HoverColor(c ui.Color) *UIButton { b.hover = c; return b }
func (b *UIButton) TextColor(c ui.Color) *UIButton  { b.label.base.color = c; return b }
func (b *UIButton) FontSize(size float32) *UIButton { b.label.fontSize = size; return b }
func (b *UIButton) OnClick(f func()) *UIButton      { b.onClick = f; return b }
func (b *UIButton) Label() *UILabel                 { return b.label }

// Click runs the click handler when (x, y) is inside the button.
func (b *UIButton) Click(x, y float32) bool {
	if b.onClick == nil || !b.base.Contains(x, y) {
		return false
	}
	b.onClick()
	return true
}

func (b *UIButton) Layout(ctx *Context, constraints Constraints) Result {
	n := &b.base
	inner := Constraints{Max: [2]float32{n.innerLimit(0, constraints.Max[0]), n.innerLimit(1, constraints.Max[1])}}
	content := b.label.Layout(ctx, inner).Size

	width := n.resolveAxis(0, content[0]+n.inset(0), constraints.Min[0], constraints.Max[0])
	height := n.resolveAxis(1, content[1]+n.inset(1), constraints.Min[1], constraints.Max[1])
	n.SetSize(width, height)

	child := b.label.Node()
	cw := clamp(content[0], 0, max(0, width-n.inset(0)))
	ch := clamp(content[1], 0, max(0, height-n.inset(1)))
	if child.mode[0] == SizeModeExpand {
		cw = max(0, width-n.inset(0))
	}
	if child.mode[1] == SizeModeExpand {
		ch = max(0, height-n.inset(1))
	}
	child.SetSize(cw, ch)
	child.SetPos(n.innerPosition())

	return Result{Size: [2]float32{width, height}}
}

func (b *UIButton) Draw(ctx *Context) {
	fill := b.base.color
	if b.base.Contains(ctx.Mouse[0], ctx.Mouse[1]) {
		fill = b.hover
	}
	b.base.drawBox(ctx, fill)
	b.label.Draw(ctx)
}
