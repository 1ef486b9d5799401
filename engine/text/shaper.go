package text

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Glyph is one shaped glyph. X and Y are pen offsets from the start of
// the line on its baseline; Y grows up as in the font.
type Glyph struct {
	ID      font.GID
	X, Y    float32
	Advance float32
}

// Line is one shaped line of text.
type Line struct {
	Text    string
	Glyphs  []Glyph
	Width   float32
	Ascent  float32
	Descent float32 // positive, below the baseline
}

// Layout is a shaped block of text. Lines break on '\n' only.
type Layout struct {
	Metrics Metrics
	Lines   []Line
}

// Width is the widest line.
func (l *Layout) Width() float32 {
	var w float32
	for _, ln := range l.Lines {
		w = max(w, ln.Width)
	}
	return w
}

// Height is the line height times the number of lines.
func (l *Layout) Height() float32 {
	return l.Metrics.LineHeight * float32(len(l.Lines))
}

// Shaper shapes text with a single font through HarfBuzz. It is not safe
// for concurrent use.
type Shaper struct {
	data []byte
	face *font.Face
	hb   shaping.HarfbuzzShaper
}

// NewShaper parses a TrueType/OpenType font.
func NewShaper(ttf []byte) (*Shaper, error) {
	if len(ttf) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Shaper{data: ttf, face: face}, nil
}

// DefaultShaper shapes with Go Regular.
func DefaultShaper() (*Shaper, error) { return NewShaper(goregular.TTF) }

// FontData is the font file the shaper reads glyph ids from. Rasterizers
// must use the same bytes.
func (s *Shaper) FontData() []byte { return s.data }

// Shape lays out str with m, one Line per '\n' separated segment.
func (s *Shaper) Shape(str string, m Metrics) *Layout {
	parts := strings.Split(str, "\n")
	out := &Layout{Metrics: m, Lines: make([]Line, 0, len(parts))}
	for _, p := range parts {
		out.Lines = append(out.Lines, s.shapeLine(p, m.FontSize))
	}
	return out
}

func (s *Shaper) shapeLine(str string, size float32) Line {
	ln := Line{Text: str}
	runes := []rune(str)
	if len(runes) == 0 || size <= 0 {
		return ln
	}

	out := s.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      s.face,
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})

	ln.Ascent = fromFixed(out.LineBounds.Ascent)
	ln.Descent = math32.Abs(fromFixed(out.LineBounds.Descent))
	ln.Glyphs = make([]Glyph, len(out.Glyphs))

	var pen float32
	for i, g := range out.Glyphs {
		ln.Glyphs[i] = Glyph{
			ID:      g.GlyphID,
			X:       pen + fromFixed(g.XOffset),
			Y:       fromFixed(g.YOffset),
			Advance: fromFixed(g.Advance),
		}
		pen += ln.Glyphs[i].Advance
	}
	ln.Width = pen
	return ln
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFixed(v float32) fixed.Int26_6   { return fixed.Int26_6(v * 64) }
func fromFixed(v fixed.Int26_6) float32 { return float32(v) / 64 }
