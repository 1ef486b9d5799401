package colors

// Color is RGBA with channels normalized to [0,1].
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

// RGB8 builds an opaque color from 0-255 channels, the range the layout
// stage works in.
func RGB8(r, g, b float32) Color {
	return Color{r / 255, g / 255, b / 255, 1}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGB is the color as a vertex attribute.
func (c Color) RGB() RGB { return RGB{R: c[0], G: c[1], B: c[2]} }

// Bytes returns 8-bit channels rounded to nearest.
func (c Color) Bytes() (r, g, b, a uint8) {
	return to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// RGB is the three-float vertex color. Alpha is not carried per vertex.
type RGB struct {
	R, G, B float32
}
