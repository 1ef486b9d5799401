package text

import (
	"image"

	"github.com/chewxy/math32"
)

// GlyphVertex is one corner of a glyph quad.
type GlyphVertex struct {
	X, Y, Z    float32 // surface pixels, depth
	U, V       float32 // atlas page coordinates, 0..1
	R, G, B, A float32
}

// Prepared holds the glyph quads of one text draw, six vertices per
// glyph, grouped by atlas page.
type Prepared struct {
	Pages [][]GlyphVertex
}

// Len is the total number of vertices.
func (p *Prepared) Len() int {
	n := 0
	for _, pg := range p.Pages {
		n += len(pg)
	}
	return n
}

func (p *Prepared) reset(pages int) {
	for i := range p.Pages {
		p.Pages[i] = p.Pages[i][:0]
	}
	p.grow(pages)
}

func (p *Prepared) grow(pages int) {
	for len(p.Pages) < pages {
		p.Pages = append(p.Pages, nil)
	}
}

// Build lays out areas into glyph quads in dst. Each line sits in a
// LineHeight tall box with its ascent and descent centered in it.
// Glyphs are snapped to whole pixels and cut to the area bounds.
func (a *Atlas) Build(areas []Area, depth func(metadata int) float32, dst *Prepared) error {
	dst.reset(len(a.pages))
	for _, ar := range areas {
		if ar.Layout == nil {
			return ErrNoLayoutRuns
		}
		z := depth(ar.Metadata)
		c := ar.Color
		r, g, b, al := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
		m := ar.Layout.Metrics

		for i, ln := range ar.Layout.Lines {
			baseline := ar.Top + float32(i)*m.LineHeight + (m.LineHeight-ln.Ascent-ln.Descent)/2 + ln.Ascent
			for _, gy := range ln.Glyphs {
				ag, err := a.Glyph(gy.ID, m.FontSize)
				if err != nil {
					return err
				}
				if ag.Page < 0 {
					continue
				}
				// the glyph may have opened a page
				dst.grow(len(a.pages))

				x := math32.Round(ar.Left+gy.X) + float32(ag.Offset.X)
				y := math32.Round(baseline-gy.Y) + float32(ag.Offset.Y)
				q, ok := clipQuad(x, y, ag.Rect, a.pageSize, ar.Bounds)
				if !ok {
					continue
				}
				v := func(px, py, u, vv float32) GlyphVertex {
					return GlyphVertex{X: px, Y: py, Z: z, U: u, V: vv, R: r, G: g, B: b, A: al}
				}
				tl := v(q.x0, q.y0, q.u0, q.v0)
				bl := v(q.x0, q.y1, q.u0, q.v1)
				br := v(q.x1, q.y1, q.u1, q.v1)
				tr := v(q.x1, q.y0, q.u1, q.v0)
				dst.Pages[ag.Page] = append(dst.Pages[ag.Page], tl, bl, br, tl, br, tr)
			}
		}
	}
	return nil
}

type quad struct {
	x0, y0, x1, y1 float32
	u0, v0, u1, v1 float32
}

// clipQuad places cell at (x, y) and cuts it to bounds, moving the UVs
// with the cut edges.
func clipQuad(x, y float32, cell image.Rectangle, pageSize int, bounds image.Rectangle) (quad, bool) {
	ps := float32(pageSize)
	w, h := float32(cell.Dx()), float32(cell.Dy())
	q := quad{
		x0: x, y0: y, x1: x + w, y1: y + h,
		u0: float32(cell.Min.X) / ps, v0: float32(cell.Min.Y) / ps,
		u1: float32(cell.Max.X) / ps, v1: float32(cell.Max.Y) / ps,
	}

	bx0, by0 := float32(bounds.Min.X), float32(bounds.Min.Y)
	bx1, by1 := float32(bounds.Max.X), float32(bounds.Max.Y)
	if q.x1 <= bx0 || q.x0 >= bx1 || q.y1 <= by0 || q.y0 >= by1 {
		return quad{}, false
	}
	if q.x0 < bx0 {
		q.u0 += (bx0 - q.x0) / ps
		q.x0 = bx0
	}
	if q.x1 > bx1 {
		q.u1 -= (q.x1 - bx1) / ps
		q.x1 = bx1
	}
	if q.y0 < by0 {
		q.v0 += (by0 - q.y0) / ps
		q.y0 = by0
	}
	if q.y1 > by1 {
		q.v1 -= (q.y1 - by1) / ps
		q.y1 = by1
	}
	return q, true
}
