// post/blend.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package post

import (
	gomath "math"

	"github.com/warroom/warmap/renderer"
)

// CompositePixel mirrors the arithmetic of the composite fragment
// shader for a single pixel. scanline and vignette are the mask values
// in [0,1], noise is the per-pixel random value in [0,1) and t is the
// presentation time in seconds.
func CompositePixel(scene, bloom renderer.RGB, scanline, vignette, noise, t,
	noiseIntensity, bloomIntensity, flickerIntensity float32) renderer.RGB {
	mod := scanline * vignette
	mod *= 1 - noiseIntensity*noise
	mod *= 1 + flickerIntensity*float32(gomath.Sin(float64(t)*60))

	return renderer.RGB{
		R: (scene.R + bloom.R*bloomIntensity) * mod,
		G: (scene.G + bloom.G*bloomIntensity) * mod,
		B: (scene.B + bloom.B*bloomIntensity) * mod,
	}
}
