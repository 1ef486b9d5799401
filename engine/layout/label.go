package layout

import (
	"math"
	"strings"

	"github.com/hubastard/tessel/engine/ui"
)

type UILabel struct {
	Common[*UILabel]
	text       string
	fontSize   float32
	lineHeight float32
	wrap       bool
	maxWidth   float32
	laidOut    string
}

func Label(str string) *UILabel {
	l := &UILabel{text: str, fontSize: 16}
	l.Common = NewCommon(l)
	l.base.color = ui.RGB(255, 255, 255)
	return l
}

func (l *UILabel) FontSize(size float32) *UILabel { l.fontSize = size; return l }
func (l *UILabel) LineHeight(h float32) *UILabel  { l.lineHeight = h; return l }
func (l *UILabel) Wrap(enabled bool) *UILabel     { l.wrap = enabled; return l }
func (l *UILabel) Text() string                   { return l.text }
func (l *UILabel) SetText(s string)               { l.text = s }
func (l *UILabel) MaxWidth(width float32) *UILabel {
	l.maxWidth = width
	if width > 0 {
		l.wrap = true
	}
	return l
}

func (l *UILabel) Layout(ctx *Context, constraints Constraints) Result {
	b := &l.base
	limit := resolveConstraint(constraints.Max[0])
	if limit == float32(math.MaxFloat32) {
		limit = 0
	}
	if l.maxWidth > 0 && (limit == 0 || l.maxWidth < limit) {
		limit = l.maxWidth
	}
	if limit > 0 {
		limit = max(0, limit-b.inset(0))
	}

	w, h, laid := l.measure(ctx.Measurer, limit)
	l.laidOut = laid

	width := b.resolveAxis(0, w+b.inset(0), constraints.Min[0], constraints.Max[0])
	height := b.resolveAxis(1, h+b.inset(1), constraints.Min[1], constraints.Max[1])
	b.SetSize(width, height)
	return Result{Size: b.size}
}

func (l *UILabel) Draw(ctx *Context) {
	s := l.laidOut
	if s == "" {
		s = l.text
	}
	if s == "" || l.base.color.A <= 0 {
		return
	}
	x, y := l.base.innerPosition()
	box := l.base.Bounds()
	box.X, box.Y = x, y
	ctx.emit(ui.Text(box, s, l.fontSize).WithLineHeight(l.lineHeight).WithColor(l.base.color))
}

// measure returns the text size and the string with wrap breaks applied.
// Words are wrapped greedily at maxWidth when wrapping is on.
func (l *UILabel) measure(m Measurer, maxWidth float32) (float32, float32, string) {
	if l.text == "" || m == nil {
		return 0, 0, ""
	}
	size := func(s string) (float32, float32) {
		sz := m.Measure(s, l.fontSize, l.lineHeight)
		return sz.Width, sz.Height
	}
	if !l.wrap || maxWidth <= 0 {
		w, h := size(l.text)
		return w, h, l.text
	}

	spaceW, _ := size(" ")
	var wrapped []string
	var widest float32
	for _, raw := range strings.Split(l.text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}
		current := words[0]
		currentW, _ := size(current)
		for _, word := range words[1:] {
			wordW, _ := size(word)
			if currentW+spaceW+wordW > maxWidth {
				wrapped = append(wrapped, current)
				widest = max(widest, currentW)
				current, currentW = word, wordW
				continue
			}
			current += " " + word
			currentW += spaceW + wordW
		}
		wrapped = append(wrapped, current)
		widest = max(widest, currentW)
	}

	joined := strings.Join(wrapped, "\n")
	_, h := size(joined)
	return widest, h, joined
}
