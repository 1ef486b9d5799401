package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoLayoutRuns is returned when an area carries no shaped layout.
	ErrNoLayoutRuns = errors.New("text: area has no shaped layout")

	// ErrGlyphTooLarge is returned when a glyph bitmap cannot fit an empty atlas page.
	ErrGlyphTooLarge = errors.New("text: glyph larger than atlas page")
)
