package text

import "github.com/hubastard/tessel/engine/gfx/geom"

// Measurer answers size queries from the layout pass. It owns its metrics
// and never sees the lines queued for a frame, so the same input always
// measures the same.
type Measurer struct {
	shaper   *Shaper
	metrics  Metrics
	defaults Metrics
	scale    float32
}

func NewMeasurer(s *Shaper, scale float32) *Measurer {
	if scale <= 0 {
		scale = 1
	}
	return &Measurer{shaper: s, metrics: DefaultMetrics, defaults: DefaultMetrics, scale: scale}
}

// SetScale changes the DPI scale applied to later queries.
func (m *Measurer) SetScale(scale float32) {
	if scale > 0 {
		m.scale = scale
	}
}

func (m *Measurer) Scale() float32 { return m.scale }

// SetDefaults sets the unscaled metrics used when a query has no font size.
func (m *Measurer) SetDefaults(d Metrics) {
	if d.FontSize > 0 {
		m.defaults = d
	}
}

func (m *Measurer) Defaults() Metrics { return m.defaults }

// Resolve picks the defaults when fontSize is not positive.
func (m *Measurer) Resolve(fontSize, lineHeight float32) (float32, float32) {
	if fontSize <= 0 {
		return m.defaults.FontSize, m.defaults.LineHeight
	}
	return fontSize, lineHeight
}

// Metrics are the metrics of the last query, DefaultMetrics before any.
func (m *Measurer) Metrics() Metrics { return m.metrics }

// Measure returns the widest line and the line height times the line
// count of str, in scaled pixels.
func (m *Measurer) Measure(str string, fontSize, lineHeight float32) geom.Size {
	fs, lh := m.Resolve(fontSize, lineHeight)
	m.metrics = Scaled(fs, lh, m.scale)
	l := m.shaper.Shape(str, m.metrics)
	return geom.Size{Width: l.Width(), Height: l.Height()}
}
