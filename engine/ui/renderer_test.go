package ui

import (
	"bytes"
	"errors"
	"image"
	"log/slog"
	"testing"

	"github.com/hubastard/tessel/engine/core"
	"github.com/hubastard/tessel/engine/core/coretest"
	"github.com/hubastard/tessel/engine/gfx/geom"
	"github.com/hubastard/tessel/engine/gfx/renderer2d"
	"github.com/hubastard/tessel/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGlyphs records the calls of the text pass.
type fakeGlyphs struct {
	calls      []string
	areas      []text.Area
	depths     []float32
	vw, vh     int
	prepareErr error
}

func (f *fakeGlyphs) Trim() { f.calls = append(f.calls, "trim") }

func (f *fakeGlyphs) SetViewport(w, h int) {
	f.calls = append(f.calls, "viewport")
	f.vw, f.vh = w, h
}

func (f *fakeGlyphs) Prepare(areas []text.Area, depth func(int) float32) error {
	f.calls = append(f.calls, "prepare")
	if f.prepareErr != nil {
		return f.prepareErr
	}
	f.areas = append([]text.Area(nil), areas...)
	f.depths = f.depths[:0]
	for _, a := range areas {
		f.depths = append(f.depths, depth(a.Metadata))
	}
	return nil
}

func (f *fakeGlyphs) Render() error {
	f.calls = append(f.calls, "render")
	return nil
}

var _ text.Renderer = (*fakeGlyphs)(nil)

type fixture struct {
	gpu    *coretest.GPU
	glyphs *fakeGlyphs
	r      *Renderer
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	shaper, err := text.DefaultShaper()
	require.NoError(t, err)
	if opts.Width == 0 {
		opts.Width, opts.Height = 800, 600
	}
	gpu := coretest.NewGPU()
	glyphs := &fakeGlyphs{}
	r, err := New(gpu, glyphs, shaper, opts)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return fixture{gpu: gpu, glyphs: glyphs, r: r}
}

func box(x, y, w, h float32) geom.Rect { return geom.Rect{X: x, Y: y, Width: w, Height: h} }

func TestDepthSteps(t *testing.T) {
	assert.Equal(t, float32(0.1), Depth(0))
	prev := Depth(0)
	for i := 1; i < core.MaxCommandsCeiling; i++ {
		d := Depth(i)
		assert.Less(t, d, prev)
		assert.InDelta(t, DepthStep, prev-d, 1e-6)
		assert.Greater(t, d, float32(0))
		prev = d
	}
}

func TestRenderDrawsGeometryThenText(t *testing.T) {
	f := newFixture(t, Options{})
	cmds := []Command{
		Rectangle(box(0, 0, 100, 50)).WithColor(RGB(255, 0, 0)),
		Text(box(10, 10, 80, 20), "hello", 16),
		Border(box(0, 0, 100, 50), 2).WithColor(RGB(0, 0, 255)).Rounded(4),
	}
	require.NoError(t, f.r.Render(cmds))

	require.Len(t, f.gpu.Draws, 1)
	assert.Equal(t, []string{"trim", "viewport", "prepare", "render"}, f.glyphs.calls)
	assert.Equal(t, 800, f.glyphs.vw)

	st := f.r.Stats()
	assert.Equal(t, 3, st.Commands)
	assert.Equal(t, 1, st.DrawCalls)
	assert.Equal(t, 1, st.TextDraws)
	assert.Equal(t, 1, st.TextLines)
	// fill: 4 fans + 5 quads, border: 4 arcs of lines + 4 lines
	wantTris := (4*renderer2d.ArcSegments + 5*2) + (4*renderer2d.ArcSegments+4)*2
	assert.Equal(t, wantTris, st.TriangleCount)
	assert.Equal(t, wantTris*3, f.gpu.Draws[0].Count)
}

func TestRenderEmptyFrameDrawsNothing(t *testing.T) {
	f := newFixture(t, Options{})
	require.NoError(t, f.r.Render(nil))
	assert.Empty(t, f.gpu.Draws)
	assert.Empty(t, f.glyphs.calls)
}

func TestRenderResetsBetweenFrames(t *testing.T) {
	f := newFixture(t, Options{})
	frame := []Command{
		Rectangle(box(0, 0, 10, 10)),
		Text(box(0, 0, 10, 10), "x", 12),
	}
	require.NoError(t, f.r.Render(frame))
	require.NoError(t, f.r.Render(frame))
	require.Len(t, f.gpu.Draws, 2)
	assert.Equal(t, f.gpu.Draws[0], f.gpu.Draws[1])
	assert.Len(t, f.glyphs.areas, 1)
}

func TestScissorAppliesToTextOnly(t *testing.T) {
	f := newFixture(t, Options{})
	clip := box(20, 30, 200, 100)
	cmds := []Command{
		ScissorStart(clip),
		Rectangle(box(0, 0, 500, 500)),
		Text(box(25, 35, 50, 20), "inside", 16),
		ScissorEnd(),
		Text(box(0, 0, 50, 20), "outside", 16),
	}
	require.NoError(t, f.r.Render(cmds))

	require.Len(t, f.glyphs.areas, 2)
	assert.Equal(t, image.Rect(20, 30, 220, 130), f.glyphs.areas[0].Bounds)
	assert.Equal(t, image.Rect(0, 0, 800, 600), f.glyphs.areas[1].Bounds)

	// the rectangle spans the full 500x500 box despite the scissor
	var maxX float32
	for _, v := range vertices(t, f.gpu.Writes[0]) {
		maxX = max(maxX, v.Position.X)
	}
	assert.Equal(t, float32(500), maxX)
}

func TestTextCarriesCommandDepth(t *testing.T) {
	f := newFixture(t, Options{})
	cmds := []Command{
		Rectangle(box(0, 0, 10, 10)),
		{Kind: KindImage},
		Text(box(0, 0, 10, 10), "a", 12),
		{Kind: KindCustom},
		Text(box(0, 0, 10, 10), "b", 12),
	}
	require.NoError(t, f.r.Render(cmds))
	require.Len(t, f.glyphs.areas, 2)
	assert.Equal(t, 998, f.glyphs.areas[0].Metadata)
	assert.Equal(t, 996, f.glyphs.areas[1].Metadata)
	assert.InDelta(t, Depth(2), f.glyphs.depths[0], 1e-6)
	assert.InDelta(t, Depth(4), f.glyphs.depths[1], 1e-6)

	for _, v := range vertices(t, f.gpu.Writes[0]) {
		assert.Equal(t, Depth(0), v.Position.Z)
	}
}

func TestTextMetricsFollowScaleFactor(t *testing.T) {
	f := newFixture(t, Options{ContentScale: 2})
	cmds := []Command{
		Text(box(0, 0, 10, 10), "a", 10),
		Text(box(0, 0, 10, 10), "b", 10).WithLineHeight(12),
	}
	require.NoError(t, f.r.Render(cmds))
	require.Len(t, f.glyphs.areas, 2)
	assert.Equal(t, text.Metrics{FontSize: 20, LineHeight: 30}, f.glyphs.areas[0].Layout.Metrics)
	assert.Equal(t, text.Metrics{FontSize: 20, LineHeight: 24}, f.glyphs.areas[1].Layout.Metrics)

	f.r.HandleEvent(core.EventScaleChanged{Scale: 1})
	require.NoError(t, f.r.Render(cmds[:1]))
	assert.Equal(t, text.Metrics{FontSize: 10, LineHeight: 15}, f.glyphs.areas[0].Layout.Metrics)
}

func TestScaleFactorSurvivesMonitorChange(t *testing.T) {
	f := newFixture(t, Options{ScaleFactor: 1.5, ContentScale: 2})
	assert.Equal(t, float32(3), f.r.ScaleFactor())

	f.r.HandleEvent(core.EventScaleChanged{Scale: 1})
	assert.Equal(t, float32(1.5), f.r.ScaleFactor())
	require.NoError(t, f.r.Render([]Command{Text(box(0, 0, 10, 10), "a", 10)}))
	assert.Equal(t, text.Metrics{FontSize: 15, LineHeight: 22.5}, f.glyphs.areas[0].Layout.Metrics)

	f.r.SetScaleFactor(2)
	f.r.HandleEvent(core.EventScaleChanged{Scale: 0})
	assert.Equal(t, float32(2), f.r.ScaleFactor())
}

func TestTextColorIsTruncated(t *testing.T) {
	f := newFixture(t, Options{})
	require.NoError(t, f.r.Render([]Command{
		Text(box(0, 0, 1, 1), "c", 10).WithColor(Color{R: 12.9, G: 300, B: -4, A: 10}),
	}))
	c := f.glyphs.areas[0].Color
	assert.Equal(t, uint8(12), c.R)
	assert.Equal(t, uint8(255), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestCommandLimit(t *testing.T) {
	f := newFixture(t, Options{MaxCommands: 2})
	cmds := []Command{
		Rectangle(box(0, 0, 1, 1)),
		Rectangle(box(0, 0, 1, 1)),
		Text(box(0, 0, 1, 1), "dropped", 10),
	}
	err := f.r.Render(cmds)
	assert.ErrorIs(t, err, ErrCommandLimit)
	assert.Equal(t, 1, f.r.Stats().DroppedCommands)
	assert.Equal(t, 2, f.r.Stats().Commands)
	assert.Len(t, f.gpu.Draws, 1)
	assert.Empty(t, f.glyphs.calls)
}

func TestCommandLimitIsCapped(t *testing.T) {
	f := newFixture(t, Options{MaxCommands: 5000})
	cmds := make([]Command, core.MaxCommandsCeiling+1)
	assert.ErrorIs(t, f.r.Render(cmds), ErrCommandLimit)
}

func TestTextFailureIsRecoverable(t *testing.T) {
	f := newFixture(t, Options{})
	f.glyphs.prepareErr = errors.New("atlas exploded")
	cmds := []Command{Rectangle(box(0, 0, 5, 5)), Text(box(0, 0, 5, 5), "t", 10)}

	err := f.r.Render(cmds)
	assert.ErrorIs(t, err, ErrTextPrepare)
	assert.ErrorIs(t, err, f.glyphs.prepareErr)
	assert.Len(t, f.gpu.Draws, 1, "geometry still drawn")

	f.glyphs.prepareErr = nil
	require.NoError(t, f.r.Render(cmds))
	assert.Len(t, f.glyphs.areas, 1, "queue was cleared after the failure")
}

func TestGeometryUploadFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	core.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { core.SetLogger(nil) })

	f := newFixture(t, Options{})
	f.gpu.WriteErr = errors.New("device lost")
	err := f.r.Render([]Command{Rectangle(box(0, 0, 5, 5)), Text(box(0, 0, 5, 5), "t", 10)})
	assert.ErrorIs(t, err, f.gpu.WriteErr)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "device lost")
	assert.Len(t, f.glyphs.areas, 1, "text still prepared")
}

func TestCapacityOverflowIsReported(t *testing.T) {
	f := newFixture(t, Options{MaxTriangles: 12})
	cmds := []Command{
		Rectangle(box(0, 0, 10, 10)), // 50 triangles
		Text(box(0, 0, 5, 5), "still drawn", 10),
	}
	err := f.r.Render(cmds)
	assert.ErrorIs(t, err, renderer2d.ErrCapacityExceeded)
	st := f.r.Stats()
	assert.Equal(t, 12, st.TriangleCount)
	assert.Equal(t, 50-12, st.DroppedTriangles)
	assert.Equal(t, 1, st.TextDraws)
}

func TestResizeReachesPoolAndTextViewport(t *testing.T) {
	f := newFixture(t, Options{})
	f.r.HandleEvent(core.EventResize{W: 1024, H: 768})
	f.r.HandleEvent(core.EventResize{W: 0, H: 0})
	require.NoError(t, f.r.Render([]Command{
		Rectangle(box(0, 0, 1, 1)),
		Text(box(0, 0, 1, 1), "r", 10),
	}))
	assert.Equal(t, 1024, f.glyphs.vw)
	assert.Equal(t, 768, f.glyphs.vh)
	assert.Equal(t, image.Rect(0, 0, 1024, 768), f.glyphs.areas[0].Bounds)
	assert.Equal(t, geom.Size{Width: 1024, Height: 768}, vertices(t, f.gpu.Writes[0])[0].Size)
}

func TestMeasureIsIndependentOfQueuedText(t *testing.T) {
	f := newFixture(t, Options{ScaleFactor: 1.5})
	before := f.r.Measure("Measure me\nplease", 20, 0)
	assert.Equal(t, float32(2*30*1.5), before.Height)

	f.r.batch.Add("queued", text.Metrics{FontSize: 40, LineHeight: 50}, geom.Pos(0, 0, 0.1), RGB(0, 0, 0).text(), nil)
	assert.Equal(t, before, f.r.Measure("Measure me\nplease", 20, 0))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.MaxTriangles = 42
	o := OptionsFromConfig(cfg, 320, 240)
	assert.Equal(t, Options{
		Width:          320,
		Height:         240,
		MaxTriangles:   42,
		MaxCommands:    1000,
		ScaleFactor:    1,
		DefaultMetrics: text.Metrics{FontSize: 30, LineHeight: 42},
	}, o)
}

func TestTextWithoutFontSizeUsesDefaults(t *testing.T) {
	f := newFixture(t, Options{ScaleFactor: 2, DefaultMetrics: text.Metrics{FontSize: 12, LineHeight: 14}})
	require.NoError(t, f.r.Render([]Command{Text(box(0, 0, 10, 10), "d", 0)}))
	require.Len(t, f.glyphs.areas, 1)
	assert.Equal(t, text.Metrics{FontSize: 24, LineHeight: 28}, f.glyphs.areas[0].Layout.Metrics)

	assert.Equal(t, f.r.Measure("d", 12, 14), f.r.Measure("d", 0, 0))
}
