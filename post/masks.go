// post/masks.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package post

import (
	"image"
	"image/color"
	gomath "math"
)

// ScanlineImage returns a grayscale mask with every third row darkened,
// giving the CRT scanline effect when the composite pass multiplies the
// scene by it.
func ScanlineImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		var v uint8 = 255
		if y%3 == 0 {
			v = 200
		}
		for x := range width {
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// VignetteImage returns a radial falloff mask that darkens the corners
// of the screen; the center is fully bright.
func VignetteImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	cx, cy := float64(width)/2, float64(height)/2
	maxd := gomath.Sqrt(cx*cx + cy*cy)
	for y := range height {
		for x := range width {
			dx, dy := float64(x)-cx, float64(y)-cy
			d := gomath.Sqrt(dx*dx + dy*dy)
			v := 1 - gomath.Pow(d/maxd, 1.8)*0.6
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			g := uint8(v * 255)
			img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}
