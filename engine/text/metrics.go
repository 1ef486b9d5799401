package text

// Metrics are the font size and line height text is shaped with, in pixels.
type Metrics struct {
	FontSize   float32
	LineHeight float32
}

// DefaultMetrics seed the measurement context before the first query.
var DefaultMetrics = Metrics{FontSize: 30, LineHeight: 42}

// Scaled resolves a zero line height to 1.5 times the font size, then
// multiplies both by the DPI scale.
func Scaled(fontSize, lineHeight, scale float32) Metrics {
	if lineHeight == 0 {
		lineHeight = fontSize * 1.5
	}
	return Metrics{FontSize: fontSize * scale, LineHeight: lineHeight * scale}
}
