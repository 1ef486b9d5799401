package ui

import (
	"errors"
	"fmt"

	"github.com/hubastard/tessel/engine/core"
	"github.com/hubastard/tessel/engine/gfx/geom"
	"github.com/hubastard/tessel/engine/gfx/renderer2d"
	"github.com/hubastard/tessel/engine/text"
)

// Options configure a Renderer.
type Options struct {
	Width, Height  int
	MaxTriangles   int
	MaxCommands    int
	ScaleFactor    float32      // user multiplier on top of ContentScale
	ContentScale   float32      // monitor DPI scale, 1 when unset
	DefaultMetrics text.Metrics // used by text without a font size
	VertexShader   string
	FragmentShader string
}

// OptionsFromConfig takes the renderer settings from cfg for a surface
// of width x height pixels.
func OptionsFromConfig(cfg core.Config, width, height int) Options {
	return Options{
		Width:        width,
		Height:       height,
		MaxTriangles: cfg.MaxTriangles,
		MaxCommands:  cfg.MaxCommands,
		ScaleFactor:  cfg.ScaleFactor,
		DefaultMetrics: text.Metrics{
			FontSize:   cfg.DefaultFontSize,
			LineHeight: cfg.DefaultLineH,
		},
	}
}

// Renderer turns a frame's command stream into one geometry draw and one
// batched text draw. Measure serves the layout pass and Render draws its
// output; the host calls them in that order, never concurrently.
type Renderer struct {
	geo      *renderer2d.Renderer2D
	glyphs   text.Renderer
	batch    *text.Batch
	measurer *text.Measurer

	width, height int
	scale         float32
	userScale     float32
	contentScale  float32
	maxCommands   int
	stats         Stats
}

// New builds the geometry pipeline on gpu. glyphs draws the text pass and
// shaper shapes both queued and measured text.
func New(gpu core.GPU, glyphs text.Renderer, shaper *text.Shaper, opts Options) (*Renderer, error) {
	if opts.MaxCommands <= 0 || opts.MaxCommands > core.MaxCommandsCeiling {
		opts.MaxCommands = core.MaxCommandsCeiling
	}
	if opts.ScaleFactor <= 0 {
		opts.ScaleFactor = 1
	}
	if opts.ContentScale <= 0 {
		opts.ContentScale = 1
	}
	scale := opts.ScaleFactor * opts.ContentScale

	geo, err := renderer2d.New(gpu, opts.VertexShader, opts.FragmentShader, opts.MaxTriangles, opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("ui renderer: %w", err)
	}

	measurer := text.NewMeasurer(shaper, scale)
	measurer.SetDefaults(opts.DefaultMetrics)

	return &Renderer{
		geo:          geo,
		glyphs:       glyphs,
		batch:        text.NewBatch(shaper),
		measurer:     measurer,
		width:        opts.Width,
		height:       opts.Height,
		scale:        scale,
		userScale:    opts.ScaleFactor,
		contentScale: opts.ContentScale,
		maxCommands:  opts.MaxCommands,
	}, nil
}

// Measure returns the size str takes with the given metrics at the
// current scale factor. It does not touch the frame's queued text.
func (r *Renderer) Measure(str string, fontSize, lineHeight float32) geom.Size {
	return r.measurer.Measure(str, fontSize, lineHeight)
}

// Render translates cmds and flushes the frame. Geometry is drawn before
// text. Dropped geometry, dropped commands and a failed text pass are
// reported together; none of them stops the frame.
func (r *Renderer) Render(cmds []Command) error {
	r.geo.BeginFrame()
	r.stats = Stats{}

	var errs []error
	if n := len(cmds); n > r.maxCommands {
		r.stats.DroppedCommands = n - r.maxCommands
		cmds = cmds[:r.maxCommands]
		core.Logger().Warn("ui command limit exceeded", "limit", r.maxCommands, "dropped", r.stats.DroppedCommands)
		errs = append(errs, fmt.Errorf("%w: %d over %d", ErrCommandLimit, r.stats.DroppedCommands, r.maxCommands))
	}

	var clip scissor
	var overflow error
	for i, c := range cmds {
		if err := r.translate(c, Depth(i), &clip); err != nil && overflow == nil {
			overflow = err
		}
	}
	r.stats.Commands = len(cmds)

	dropped := r.geo.Pool().Dropped()
	if err := r.geo.Flush(); err != nil {
		core.Logger().Warn("ui geometry flush failed", "err", err)
		errs = append(errs, err)
	}
	if overflow != nil {
		core.Logger().Warn("ui vertex pool full", "dropped_triangles", dropped)
		errs = append(errs, fmt.Errorf("%d triangles dropped: %w", dropped, overflow))
	}

	if err := r.flushText(); err != nil {
		core.Logger().Warn("ui text skipped", "err", err)
		errs = append(errs, err)
	}

	r.stats.Statistics = r.geo.Stats()
	core.Logger().Debug("ui frame",
		"commands", r.stats.Commands,
		"triangles", r.stats.TriangleCount,
		"vertices", r.stats.TotalVertexCount(),
		"text_lines", r.stats.TextLines,
		"draw_calls", r.stats.DrawCalls+r.stats.TextDraws)
	return errors.Join(errs...)
}

type scissor struct {
	rect   geom.Rect
	active bool
}

func (s *scissor) clip() *geom.Rect {
	if !s.active {
		return nil
	}
	return &s.rect
}

// translate dispatches one command at depth d. Scissor state only
// affects text.
func (r *Renderer) translate(c Command, d float32, clip *scissor) error {
	switch c.Kind {
	case KindRectangle:
		return r.geo.FilledRectangle(c.Bounds.Origin(d), c.Bounds.Extent(d), c.Color.vertex(), c.Radii)
	case KindBorder:
		return r.geo.Rectangle(c.Bounds.Origin(d), c.Bounds.Extent(d), c.Thickness, c.Color.vertex(), c.Radii)
	case KindText:
		fs, lh := r.measurer.Resolve(c.FontSize, c.LineHeight)
		m := text.Scaled(fs, lh, r.scale)
		r.batch.Add(c.Text, m, c.Bounds.Origin(d), c.Color.text(), clip.clip())
	case KindScissorStart:
		clip.rect = c.Bounds
		clip.active = true
	case KindScissorEnd:
		clip.active = false
	}
	return nil
}

func (r *Renderer) flushText() error {
	n := r.batch.Len()
	if n == 0 {
		return nil
	}
	defer r.batch.Clear()
	r.stats.TextLines = n

	r.glyphs.Trim()
	r.glyphs.SetViewport(r.width, r.height)
	if err := r.glyphs.Prepare(r.batch.Areas(r.width, r.height), text.DepthFor); err != nil {
		return fmt.Errorf("%w: %w", ErrTextPrepare, err)
	}
	if err := r.glyphs.Render(); err != nil {
		return fmt.Errorf("%w: render: %w", ErrTextPrepare, err)
	}
	r.stats.TextDraws++
	return nil
}

// Stats describes the last Render.
func (r *Renderer) Stats() Stats { return r.stats }

// Resize restamps the vertex pool and moves the text viewport.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.geo.Resize(width, height)
}

// SetScaleFactor sets the user multiplier applied on top of the monitor
// scale. Non-positive values are ignored.
func (r *Renderer) SetScaleFactor(scale float32) {
	if scale <= 0 {
		return
	}
	r.userScale = scale
	r.applyScale()
}

// SetContentScale sets the monitor DPI scale, keeping the user multiplier.
func (r *Renderer) SetContentScale(scale float32) {
	if scale <= 0 {
		return
	}
	r.contentScale = scale
	r.applyScale()
}

func (r *Renderer) applyScale() {
	r.scale = r.userScale * r.contentScale
	r.measurer.SetScale(r.scale)
}

// ScaleFactor is the effective scale text is shaped at.
func (r *Renderer) ScaleFactor() float32 { return r.scale }

// HandleEvent applies window resize and scale change events.
func (r *Renderer) HandleEvent(ev core.Event) {
	switch e := ev.(type) {
	case core.EventResize:
		if e.W > 0 && e.H > 0 {
			r.Resize(e.W, e.H)
		}
	case core.EventScaleChanged:
		r.SetContentScale(e.Scale)
	}
}

// Close releases the geometry pipeline and buffer.
func (r *Renderer) Close() { r.geo.Close() }
