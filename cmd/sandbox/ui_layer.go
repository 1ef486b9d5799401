package main

import (
	"fmt"
	"time"

	"github.com/hubastard/tessel/engine/core"
	"github.com/hubastard/tessel/engine/gfx/geom"
	"github.com/hubastard/tessel/engine/layout"
	"github.com/hubastard/tessel/engine/profiler"
	"github.com/hubastard/tessel/engine/ui"
)

var (
	yellow  = ui.RGB(255, 210, 60)
	panelBg = ui.RGB(24, 26, 32)
	accent  = ui.RGB(90, 140, 230)
)

// UILayer lays out and draws the demo screen plus a stats panel.
type UILayer struct {
	ui     *ui.Renderer
	frames *profiler.Frames
	ctx    layout.Context

	button    *layout.UIButton
	clicks    int
	showStats bool
	tick      int
}

func NewUILayer(r *ui.Renderer, frames *profiler.Frames) *UILayer {
	l := &UILayer{ui: r, frames: frames, showStats: true}
	l.ctx.Measurer = r
	return l
}

func (l *UILayer) OnAttach(e *core.Engine) {}
func (l *UILayer) OnDetach(e *core.Engine) {}

func (l *UILayer) OnUpdate(e *core.Engine, dt float64) { l.tick++ }

func (l *UILayer) OnRender(e *core.Engine, alpha float64) {
	l.frames.Tick()

	w, h := e.Window.FramebufferSize()
	mx, my := e.Input.Mouse()
	l.ctx.Viewport = geom.Rect{Width: float32(w), Height: float32(h)}
	l.ctx.Mouse = [2]float32{float32(mx), float32(my)}

	l.button = layout.Button(fmt.Sprintf("Clicked %d times", l.clicks)).
		FontSize(22).
		HoverColor(accent).
		OnClick(func() { l.clicks++ })

	root := layout.View(l.demo(), l.stats()).
		Padding(24).
		Gap(24).
		FlowDirection(layout.Horizontal).
		AlignCross(layout.AlignStart)

	// A partial frame still shows.
	if err := l.ui.Render(l.ctx.Build(root)); err != nil {
		core.Logger().Debug("ui frame incomplete", "err", err)
	}
}

func (l *UILayer) demo() layout.Element {
	swatches := layout.View(
		layout.View().WidthFixed(48).HeightFixed(48).BgColor(ui.RGB(220, 80, 80)),
		layout.View().WidthFixed(48).HeightFixed(48).BgColor(ui.RGB(80, 200, 120)).Rounded(12),
		layout.View().WidthFixed(48).HeightFixed(48).BgColor(ui.RGB(80, 120, 220)).Rounded(24),
		layout.View().WidthFixed(48).HeightFixed(48).Border(yellow, 3).Rounded(8),
	).Gap(12)

	clipped := layout.View(
		layout.Label("This sentence is cut off by the scissor rectangle around it.").FontSize(20),
	).Clip(true).WidthFixed(260).Padding(8).BgColor(ui.RGB(40, 44, 54))

	return layout.View(
		layout.Label("tessel").FontSize(40).Color(yellow),
		layout.Label("Rounded rectangles, borders and text share one depth-ordered frame.").
			FontSize(18).MaxWidth(420),
		swatches,
		clipped,
		l.button,
	).
		FlowDirection(layout.Vertical).
		Gap(16).
		Padding(24).
		BgColor(panelBg).
		Rounded(10)
}

func (l *UILayer) stats() layout.Element {
	if !l.showStats {
		return layout.View()
	}
	s := l.ui.Stats()
	mem := profiler.ReadMemory()
	line := func(format string, args ...any) layout.Element {
		return layout.Label(fmt.Sprintf(format, args...)).FontSize(16)
	}
	heading := func(title string) layout.Element {
		return layout.Label(title).FontSize(16).Color(yellow).Padding4(0, 12, 0, 0)
	}
	return layout.View(
		heading("Frame"),
		line("tick %d", l.tick),
		line("%.2f ms avg, %.2f ms worst (%.0f FPS)",
			ms(l.frames.Average()), ms(l.frames.Worst()), l.frames.FPS()),
		heading("UI renderer"),
		line("commands %d (dropped %d)", s.Commands, s.DroppedCommands),
		line("triangles %d (dropped %d)", s.TriangleCount, s.DroppedTriangles),
		line("vertices %d", s.TotalVertexCount()),
		line("text lines %d", s.TextLines),
		line("draw calls %d", s.DrawCalls+s.TextDraws),
		line("scale %.2f", l.ui.ScaleFactor()),
		heading("Runtime"),
		line("heap %.2f MB, %d mallocs, %d GCs", float64(mem.Alloc)/(1<<20), mem.Mallocs, mem.NumGC),
		line("%d goroutines on %d CPUs", profiler.NumGoroutine(), profiler.NumCPU()),
	).
		FlowDirection(layout.Vertical).
		Gap(4).
		Padding(16).
		BgColor(ui.RGB(0, 0, 0)).
		Border(ui.RGB(70, 70, 80), 1)
}

func (l *UILayer) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventMouseButton:
		if v.Down && v.Button == 0 && l.button != nil {
			mx, my := e.Input.Mouse()
			return l.button.Click(float32(mx), float32(my))
		}
	case core.EventKey:
		if v.Down && v.Key == core.KeyP {
			l.showStats = !l.showStats
			return true
		}
	}
	return false
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
