// renderer/glow_test.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"testing"

	"github.com/warroom/warmap/math"
)

func TestGlowLayers(t *testing.T) {
	for _, layers := range []int{1, 2, 3, 5} {
		gl := GlowLayers(layers)
		if len(gl) != layers {
			t.Fatalf("layers=%d: got %d entries", layers, len(gl))
		}

		// Outermost first: entry j corresponds to layer index layers-1-j.
		for j, layer := range gl {
			i := layers - 1 - j
			wantAlpha := float32(1)
			if i != 0 {
				wantAlpha = 0.3 / float32(layers)
			}
			wantWidth := 1 + float32(layers-i)*0.8

			if math.Abs(layer.Alpha-wantAlpha) > 1e-6 {
				t.Errorf("layers=%d entry %d: alpha %f, expected %f", layers, j, layer.Alpha, wantAlpha)
			}
			if math.Abs(layer.Width-wantWidth) > 1e-6 {
				t.Errorf("layers=%d entry %d: width %f, expected %f", layers, j, layer.Width, wantWidth)
			}
		}

		// The core is drawn last, fully opaque and widest.
		if gl[layers-1].Alpha != 1 {
			t.Errorf("layers=%d: core alpha %f, expected 1", layers, gl[layers-1].Alpha)
		}
		for j := 1; j < layers; j++ {
			if gl[j].Width <= gl[j-1].Width {
				t.Errorf("layers=%d: widths not strictly increasing at %d", layers, j)
			}
		}
	}
}

// strokeDraws returns the per-stroke (width, rgba) pairs preceding each
// line draw in the command stream.
type stroke struct {
	width float32
	rgba  RGBA
}

func strokeDraws(t *testing.T, cb *CommandBuffer) []stroke {
	t.Helper()

	var strokes []stroke
	var width float32
	var rgba RGBA
	for _, c := range DecodeCommands(cb) {
		switch c.Cmd {
		case RendererLineWidth:
			width = c.Float(0)
		case RendererSetRGBA:
			rgba = RGBA{c.Float(0), c.Float(1), c.Float(2), c.Float(3)}
		case RendererDrawLines:
			strokes = append(strokes, stroke{width: width, rgba: rgba})
		}
	}
	return strokes
}

func TestAddGlowPathStrokeCount(t *testing.T) {
	for _, layers := range []int{1, 3, 5} {
		cb := GetCommandBuffer()

		p := [][2]float32{{0, 0}, {10, 10}, {20, 15}}
		AddGlowPath(cb, p, RGBA{0, 1, 1, 1}, layers)

		strokes := strokeDraws(t, cb)
		if len(strokes) != layers {
			t.Fatalf("layers=%d: %d stroke draws", layers, len(strokes))
		}

		for j, s := range strokes {
			i := layers - 1 - j
			wantAlpha := float32(1)
			if i != 0 {
				wantAlpha = 0.3 / float32(layers)
			}
			if math.Abs(s.rgba.A-wantAlpha) > 1e-6 {
				t.Errorf("layers=%d stroke %d: alpha %f, expected %f", layers, j, s.rgba.A, wantAlpha)
			}
			if want := 1 + float32(layers-i)*0.8; math.Abs(s.width-want) > 1e-6 {
				t.Errorf("layers=%d stroke %d: width %f, expected %f", layers, j, s.width, want)
			}
		}

		ReturnCommandBuffer(cb)
	}
}

func TestAddGlowPathModulatesBaseAlpha(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	AddGlowLine(cb, [2]float32{0, 0}, [2]float32{5, 5}, RGBA{1, 0, 0, 0.5}, 2)

	strokes := strokeDraws(t, cb)
	if len(strokes) != 2 {
		t.Fatalf("%d stroke draws, expected 2", len(strokes))
	}
	if want := float32(0.5) * 0.3 / 2; math.Abs(strokes[0].rgba.A-want) > 1e-6 {
		t.Errorf("halo alpha %f, expected %f", strokes[0].rgba.A, want)
	}
	if want := float32(0.5); math.Abs(strokes[1].rgba.A-want) > 1e-6 {
		t.Errorf("core alpha %f, expected %f", strokes[1].rgba.A, want)
	}
}

func TestAddGlowPathDegenerate(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	AddGlowPath(cb, [][2]float32{{1, 1}}, RGBA{0, 1, 1, 1}, 5)
	AddGlowPath(cb, nil, RGBA{0, 1, 1, 1}, 5)
	AddGlowCircle(cb, [2]float32{5, 5}, 0, RGBA{0, 1, 1, 1}, 3)
	AddGlowCircle(cb, [2]float32{5, 5}, -2, RGBA{0, 1, 1, 1}, 3)

	if n := len(strokeDraws(t, cb)); n != 0 {
		t.Errorf("%d stroke draws from degenerate inputs, expected 0", n)
	}
}

func TestAddGlowCircleStrokeCount(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	AddGlowCircle(cb, [2]float32{100, 100}, 10, RGBA{0, 1, 1, 1}, 4)

	strokes := strokeDraws(t, cb)
	if len(strokes) != 4 {
		t.Errorf("%d stroke draws, expected 4", len(strokes))
	}
}
