// sim/aircraft.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/warroom/warmap/geo"
	"github.com/warroom/warmap/math"
	"github.com/warroom/warmap/renderer"
)

// aircraftSamples is the tessellation rate of the patrol loop.
const aircraftSamples = 240

// Aircraft is a patrol flight circling a fixed point; it never lands
// and never finishes.
type Aircraft struct {
	Color renderer.RGB

	path         [][2]float32
	loopDuration float32
	progress     float32
}

// NewAircraft builds a circular patrol track around center with the
// given angular radius in degrees, flown once per loopDuration seconds.
func NewAircraft(proj geo.Projector, center geo.GeoPoint, radiusDeg float64, loopDuration float32) *Aircraft {
	return &Aircraft{
		Color:        DimCyan,
		path:         geo.BuildLoop(proj, center, radiusDeg, aircraftSamples),
		loopDuration: loopDuration,
	}
}

// Update advances the patrol by dt seconds, wrapping at the end of
// each loop.
func (a *Aircraft) Update(dt float32) {
	a.progress += dt / a.loopDuration
	a.progress -= math.Floor(a.progress)
}

// Position returns the canvas position of the aircraft.
func (a *Aircraft) Position() [2]float32 {
	idx := int(a.progress * float32(len(a.path)-1))
	idx = min(max(idx, 0), len(a.path)-1)
	return a.path[idx]
}

// Draw encodes the aircraft marker and its data tag into the command
// buffer.
func (a *Aircraft) Draw(cb *renderer.CommandBuffer) {
	p := a.Position()
	renderer.AddGlowCircle(cb, p, 3, a.Color.WithAlpha(1), 3)

	// Radar-style data tag: a leader line to a small empty box.
	tag := [2]float32{p[0] + 10, p[1] - 8}
	tagColor := a.Color.WithAlpha(0.8)
	renderer.AddGlowLine(cb, p, tag, tagColor, 2)
	renderer.AddGlowLineLoop(cb, tagBox(tag), tagColor, 2)
}

// tagBox returns the data tag rectangle hanging below its upper-left
// corner; canvas y increases downward.
func tagBox(tag [2]float32) [][2]float32 {
	return [][2]float32{
		tag,
		{tag[0] + 10, tag[1]},
		{tag[0] + 10, tag[1] + 6},
		{tag[0], tag[1] + 6},
	}
}
