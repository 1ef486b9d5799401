package text

import (
	"fmt"
	"image"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	DefaultPageSize = 1024
	atlasPadding    = 1
)

type glyphKey struct {
	id   font.GID
	size fixed.Int26_6
}

// AtlasGlyph locates a rasterized glyph. Page is -1 for glyphs with no
// coverage (spaces).
type AtlasGlyph struct {
	Page   int
	Rect   image.Rectangle // pixels within the page
	Offset image.Point     // bitmap top-left relative to the pen on the baseline, Y down
}

// Page is one alpha-coverage texture of the atlas. Dirty is set whenever
// Image changed since the owner last uploaded it.
type Page struct {
	Image *image.Alpha
	Dirty bool

	x, y, rowH int // shelf cursor
	live       int
}

func newPage(size int) *Page {
	return &Page{
		Image: image.NewAlpha(image.Rect(0, 0, size, size)),
		Dirty: true,
		x:     atlasPadding,
		y:     atlasPadding,
	}
}

// fit reserves a w x h cell on the shelves.
func (p *Page) fit(w, h, size int) (image.Point, bool) {
	x, y, rowH := p.x, p.y, p.rowH
	if x+w+atlasPadding > size {
		x = atlasPadding
		y += rowH + atlasPadding
		rowH = 0
	}
	if y+h+atlasPadding > size {
		return image.Point{}, false
	}
	p.x, p.y, p.rowH = x+w+atlasPadding, y, max(rowH, h)
	return image.Pt(x, y), true
}

func (p *Page) reset() {
	clear(p.Image.Pix)
	p.x, p.y, p.rowH = atlasPadding, atlasPadding, 0
	p.Dirty = true
}

// Atlas rasterizes shaped glyph ids into shelf-packed alpha pages. A new
// page is opened when the existing ones are full.
type Atlas struct {
	font     *sfnt.Font
	buf      sfnt.Buffer
	pageSize int
	pages    []*Page
	glyphs   map[glyphKey]AtlasGlyph
	used     map[glyphKey]struct{}
}

// NewAtlas parses the same font file the Shaper was built from.
func NewAtlas(ttf []byte, pageSize int) (*Atlas, error) {
	if len(ttf) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Atlas{
		font:     f,
		pageSize: pageSize,
		glyphs:   make(map[glyphKey]AtlasGlyph),
		used:     make(map[glyphKey]struct{}),
	}, nil
}

func (a *Atlas) PageSize() int  { return a.pageSize }
func (a *Atlas) Pages() []*Page { return a.pages }

// Len is the number of cached glyphs.
func (a *Atlas) Len() int { return len(a.glyphs) }

// Glyph returns id at size px, rasterizing it on first use.
func (a *Atlas) Glyph(id font.GID, size float32) (AtlasGlyph, error) {
	key := glyphKey{id: id, size: toFixed(size)}
	a.used[key] = struct{}{}
	if g, ok := a.glyphs[key]; ok {
		return g, nil
	}
	g, err := a.rasterize(key)
	if err != nil {
		return AtlasGlyph{}, err
	}
	a.glyphs[key] = g
	return g, nil
}

// Trim evicts glyphs not requested since the previous Trim. Pages left
// with no live glyph are cleared for reuse.
func (a *Atlas) Trim() {
	for k, g := range a.glyphs {
		if _, ok := a.used[k]; ok {
			continue
		}
		delete(a.glyphs, k)
		if g.Page >= 0 {
			a.pages[g.Page].live--
		}
	}
	for _, p := range a.pages {
		if p.live == 0 && (p.x != atlasPadding || p.y != atlasPadding) {
			p.reset()
		}
	}
	clear(a.used)
}

func (a *Atlas) rasterize(key glyphKey) (AtlasGlyph, error) {
	segs, err := a.font.LoadGlyph(&a.buf, sfnt.GlyphIndex(key.id), key.size, nil)
	if err != nil {
		return AtlasGlyph{}, fmt.Errorf("load glyph %d: %w", key.id, err)
	}
	b := segs.Bounds()
	x0, y0 := b.Min.X.Floor(), b.Min.Y.Floor()
	w, h := b.Max.X.Ceil()-x0, b.Max.Y.Ceil()-y0
	if len(segs) == 0 || w <= 0 || h <= 0 {
		return AtlasGlyph{Page: -1}, nil
	}

	idx, at, err := a.place(w, h)
	if err != nil {
		return AtlasGlyph{}, fmt.Errorf("glyph %d (%dx%d): %w", key.id, w, h, err)
	}

	// Segment coordinates are relative to the pen; shift them into the cell.
	dx, dy := float32(x0), float32(y0)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - dx, float32(p.Y)/64 - dy
	}

	var r vector.Rasterizer
	r.Reset(w, h)
	for i, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				r.ClosePath()
			}
			r.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			ex, ey := pt(s.Args[2])
			r.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	r.ClosePath()

	page := a.pages[idx]
	cell := image.Rect(at.X, at.Y, at.X+w, at.Y+h)
	r.Draw(page.Image, cell, image.Opaque, image.Point{})
	page.Dirty = true
	page.live++

	return AtlasGlyph{Page: idx, Rect: cell, Offset: image.Pt(x0, y0)}, nil
}

func (a *Atlas) place(w, h int) (int, image.Point, error) {
	if w+2*atlasPadding > a.pageSize || h+2*atlasPadding > a.pageSize {
		return 0, image.Point{}, ErrGlyphTooLarge
	}
	for i, p := range a.pages {
		if at, ok := p.fit(w, h, a.pageSize); ok {
			return i, at, nil
		}
	}
	a.pages = append(a.pages, newPage(a.pageSize))
	i := len(a.pages) - 1
	at, _ := a.pages[i].fit(w, h, a.pageSize)
	return i, at, nil
}
