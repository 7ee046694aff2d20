// renderer/glow.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

// Glow drawing renders each primitive several times with widening, dim
// strokes underneath a single bright core stroke. With additive blending
// in effect the layers accumulate into a phosphor-style halo.

// GlowCircleNsegs is the tessellation rate shared by every glow circle.
const GlowCircleNsegs = 32

// GlowLayer gives the stroke parameters for one layer of a layered glow
// draw.
type GlowLayer struct {
	Alpha float32
	Width float32
}

// GlowLayers returns the per-layer stroke parameters for a glow draw
// with the given number of layers, ordered outermost first. The
// innermost layer is the fully-opaque core; the outer layers divide a
// fixed halo alpha among themselves so that the total halo brightness
// does not depend on the layer count.
func GlowLayers(layers int) []GlowLayer {
	gl := make([]GlowLayer, 0, layers)
	for i := layers - 1; i >= 0; i-- {
		alpha := float32(1)
		if i != 0 {
			alpha = 0.3 / float32(layers)
		}
		gl = append(gl, GlowLayer{
			Alpha: alpha,
			Width: 1 + float32(layers-i)*0.8,
		})
	}
	return gl
}

// AddGlowPath encodes commands to stroke the polyline p once per glow
// layer, outermost first. Polylines with fewer than two points produce
// no commands.
func AddGlowPath(cb *CommandBuffer, p [][2]float32, color RGBA, layers int) {
	if len(p) < 2 {
		return
	}

	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)
	ld.AddLineStrip(p)

	glowStroke(cb, ld, color, layers)
}

// AddGlowLine encodes commands to stroke a single line segment once per
// glow layer.
func AddGlowLine(cb *CommandBuffer, p0, p1 [2]float32, color RGBA, layers int) {
	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)
	ld.AddLine(p0, p1)

	glowStroke(cb, ld, color, layers)
}

// AddGlowLineLoop encodes commands to stroke a closed polyline once per
// glow layer.
func AddGlowLineLoop(cb *CommandBuffer, p [][2]float32, color RGBA, layers int) {
	if len(p) < 2 {
		return
	}

	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)
	ld.AddLineLoop(p)

	glowStroke(cb, ld, color, layers)
}

// AddGlowCircle encodes commands to stroke a circle once per glow
// layer. Non-positive radii produce no commands.
func AddGlowCircle(cb *CommandBuffer, center [2]float32, radius float32, color RGBA, layers int) {
	if radius <= 0 {
		return
	}

	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)
	ld.AddCircle(center, radius, GlowCircleNsegs)

	glowStroke(cb, ld, color, layers)
}

func glowStroke(cb *CommandBuffer, ld *LinesDrawBuilder, color RGBA, layers int) {
	for _, layer := range GlowLayers(layers) {
		cb.LineWidth(layer.Width)
		cb.SetRGBA(RGBA{R: color.R, G: color.G, B: color.B, A: color.A * layer.Alpha})
		ld.GenerateCommands(cb)
	}
}
