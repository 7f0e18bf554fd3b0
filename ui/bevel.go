package ui

import (
	"image"
	"image/color"
	"image/draw"
)

// Bevel returns a size×size block filled with c, lit along the top and left
// edges and shaded along the bottom and right. Edge width is size/8, at least one pixel.
func Bevel(c color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	edge := max(size/8, 1)
	light := image.NewUniform(Shade(c, 1.4))
	dark := image.NewUniform(Shade(c, 0.6))

	draw.Draw(img, image.Rect(0, size-edge, size, size), dark, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(size-edge, 0, size, size), dark, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, size, edge), light, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, edge, size-edge), light, image.Point{}, draw.Src)
	return img
}
