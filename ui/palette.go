// Package ui holds what the graphical and terminal frontends share: the
// piece palette, auto-repeat timing, board layout and sidebar text.
package ui

import (
	"image/color"

	"github.com/plus3/blockfall/tetris"
)

var (
	Background = color.RGBA{0x11, 0x11, 0x11, 0xff}
	Border     = color.RGBA{0x80, 0x80, 0x80, 0xff}
	Text       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Alert      = color.RGBA{0xff, 0x41, 0x36, 0xff}
	Ghost      = color.RGBA{0xff, 0xff, 0xff, 0x50}
)

var pieceColors = [...]color.RGBA{
	tetris.Empty:  {0x11, 0x11, 0x11, 0xff},
	tetris.PieceI: {0xff, 0x0d, 0x72, 0xff},
	tetris.PieceJ: {0x0d, 0xc2, 0xff, 0xff},
	tetris.PieceL: {0x0d, 0xff, 0x72, 0xff},
	tetris.PieceO: {0xf5, 0x38, 0xff, 0xff},
	tetris.PieceS: {0xff, 0x8e, 0x0d, 0xff},
	tetris.PieceT: {0xff, 0xe1, 0x38, 0xff},
	tetris.PieceZ: {0x38, 0x77, 0xff, 0xff},
}

// PieceColor returns the fill colour for t. Unknown types get the background.
func PieceColor(t tetris.PieceType) color.RGBA {
	if int(t) < len(pieceColors) {
		return pieceColors[t]
	}
	return Background
}

// Shade scales the RGB channels of c by f, clamped to [0, 255].
func Shade(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		switch {
		case s < 0:
			return 0
		case s > 255:
			return 255
		}
		return uint8(s)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
