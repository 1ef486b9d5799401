package ui

import "github.com/hubastard/tessel/engine/gfx/renderer2d"

// Stats describes the last rendered frame.
type Stats struct {
	renderer2d.Statistics

	Commands        int // translated
	DroppedCommands int // past the command limit
	TextLines       int
	TextDraws       int
}
