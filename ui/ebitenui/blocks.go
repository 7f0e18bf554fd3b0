package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/ui"
)

// blocks caches one bevelled block image per piece type.
type blocks struct {
	size   int
	images *intmap.Map[tetris.PieceType, *ebiten.Image]
}

func newBlocks(size int) *blocks {
	return &blocks{
		size:   size,
		images: intmap.New[tetris.PieceType, *ebiten.Image](len(tetris.PieceTypes)),
	}
}

func (b *blocks) get(t tetris.PieceType) *ebiten.Image {
	if img, ok := b.images.Get(t); ok {
		return img
	}
	img := ebiten.NewImageFromImage(ui.Bevel(ui.PieceColor(t), b.size))
	b.images.Put(t, img)
	return img
}

func (b *blocks) draw(dst *ebiten.Image, t tetris.PieceType, x, y int, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	dst.DrawImage(b.get(t), op)
}
