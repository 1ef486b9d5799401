package layout

import "github.com/hubastard/tessel/engine/ui"

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// UIView stacks its children along one axis.
type UIView struct {
	Common[*UIView]
	gap        float32
	mainAlign  Align
	crossAlign Align
	flow       Direction
	clip       bool
}

func View(children ...Element) *UIView {
	v := &UIView{gap: 10}
	v.Common = NewCommon(v)
	v.Children(children...)
	return v
}

func (v *UIView) BgColor(c ui.Color) *UIView        { v.base.color = c; return v }
func (v *UIView) FlowDirection(d Direction) *UIView { v.flow = d; return v }
func (v *UIView) Gap(g float32) *UIView             { v.gap = g; return v }
func (v *UIView) AlignMain(a Align) *UIView         { v.mainAlign = a; return v }
func (v *UIView) AlignCross(a Align) *UIView        { v.crossAlign = a; return v }
func (v *UIView) Clip(enabled bool) *UIView         { v.clip = enabled; return v }
func (v *UIView) Direction() Direction              { return v.flow }
func (v *UIView) Alignment() (main, cross Align)    { return v.mainAlign, v.crossAlign }
func (v *UIView) Spacing() float32                  { return v.gap }
func (v *UIView) Clipped() bool                     { return v.clip }

func (v *UIView) Layout(ctx *Context, constraints Constraints) Result {
	main, cross := 0, 1
	if v.flow == Vertical {
		main, cross = 1, 0
	}
	b := &v.base

	inner := Constraints{Max: [2]float32{b.innerLimit(0, constraints.Max[0]), b.innerLimit(1, constraints.Max[1])}}

	kids := b.children
	sizes := make([][2]float32, len(kids))
	var mainSum, maxCross float32
	expanders := 0
	for i, k := range kids {
		sizes[i] = k.Layout(ctx, inner).Size
		maxCross = max(maxCross, sizes[i][cross])
		if k.Node().mode[main] == SizeModeExpand {
			// Expanding children only take what is left over.
			sizes[i][main] = 0
			expanders++
			continue
		}
		mainSum += sizes[i][main]
	}

	var gaps float32
	if len(kids) > 1 {
		gaps = v.gap * float32(len(kids)-1)
	}

	var outer [2]float32
	outer[main] = b.resolveAxis(main, mainSum+gaps+b.inset(main), constraints.Min[main], constraints.Max[main])
	outer[cross] = b.resolveAxis(cross, maxCross+b.inset(cross), constraints.Min[cross], constraints.Max[cross])
	b.SetSize(outer[0], outer[1])

	innerMain := max(0, outer[main]-b.inset(main))
	innerCross := max(0, outer[cross]-b.inset(cross))

	// Extra main-axis space goes to expanding children in equal shares.
	if expanders > 0 {
		share := max(0, innerMain-mainSum-gaps) / float32(expanders)
		for i, k := range kids {
			if k.Node().mode[main] == SizeModeExpand {
				sizes[i][main] += share
				mainSum += share
			}
		}
	}

	var cursor float32
	switch free := max(0, innerMain-mainSum-gaps); v.mainAlign {
	case AlignCenter:
		cursor = free / 2
	case AlignEnd:
		cursor = free
	}

	var origin [2]float32
	origin[0], origin[1] = b.innerPosition()
	for i, k := range kids {
		n := k.Node()
		sz := sizes[i]
		if v.crossAlign == AlignStretch || n.mode[cross] == SizeModeExpand {
			sz[cross] = innerCross
		}
		sz[cross] = clamp(sz[cross], 0, innerCross)
		if sz != sizes[i] || n.mode[main] == SizeModeExpand {
			k.Layout(ctx, Constraints{Min: sz, Max: sz})
		}

		var pos [2]float32
		pos[main] = origin[main] + cursor
		pos[cross] = origin[cross]
		switch v.crossAlign {
		case AlignCenter:
			pos[cross] += (innerCross - sz[cross]) / 2
		case AlignEnd:
			pos[cross] += innerCross - sz[cross]
		}
		n.moveTo(pos[0], pos[1])
		n.SetSize(sz[0], sz[1])

		cursor += sz[main] + v.gap
	}

	return Result{Size: b.size}
}

func (v *UIView) Draw(ctx *Context) {
	v.base.drawBox(ctx, v.base.color)
	if v.clip {
		ctx.emit(ui.ScissorStart(v.base.Bounds()))
	}
	for _, c := range v.base.children {
		c.Draw(ctx)
	}
	if v.clip {
		ctx.emit(ui.ScissorEnd())
	}
}
