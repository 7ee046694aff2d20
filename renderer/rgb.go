// renderer/rgb.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

///////////////////////////////////////////////////////////////////////////
// RGB

type RGB struct {
	R, G, B float32
}

type RGBA struct {
	R, G, B, A float32
}

func (r RGB) Equals(other RGB) bool {
	return r.R == other.R && r.G == other.G && r.B == other.B
}

func (r RGB) WithAlpha(a float32) RGBA {
	return RGBA{R: r.R, G: r.G, B: r.B, A: a}
}

// The display palette: everything on the board is a shade of phosphor
// cyan except strategic targets and highlighted borders, which get red.
var (
	Cyan       = RGB{R: 0, G: 1, B: 1}
	DimCyan    = RGB{R: 0, G: 0.4, B: 0.4}
	DarkerCyan = RGB{R: 0, G: 0.3, B: 0.3}
	Red        = RGB{R: 1, G: 0.196, B: 0.196}
	White      = RGB{R: 1, G: 1, B: 1}
)
