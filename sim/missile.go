// sim/missile.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/warroom/warmap/geo"
	"github.com/warroom/warmap/math"
	"github.com/warroom/warmap/renderer"
)

// LaunchSite distinguishes how a missile's origin is drawn.
type LaunchSite int

const (
	Surface LaunchSite = iota
	Submarine
)

const (
	// missileSamples is the tessellation rate of the geodesic track.
	missileSamples = 220
	// missileDuration is the flight time in seconds.
	missileDuration = 12
)

// Missile is a strike in flight: a geodesic track from its launch site
// to its target that it traverses at a constant parametric rate.
type Missile struct {
	Start, Target geo.GeoPoint
	Site          LaunchSite
	Color         renderer.RGB

	path     [][2]float32
	width    float32
	progress float32
}

// NewMissile builds the geodesic track from start to target; the trail
// color is chosen from the target's strategic classification.
func NewMissile(proj geo.Projector, start, target geo.GeoPoint, site LaunchSite) *Missile {
	return &Missile{
		Start:  start,
		Target: target,
		Site:   site,
		Color:  TargetColor(target),
		path:   geo.BuildGeodesic(proj, start, target, missileSamples),
		width:  proj.Width,
	}
}

// Update advances the flight by dt seconds.
func (m *Missile) Update(dt float32) {
	m.progress = math.Clamp(m.progress+dt/missileDuration, 0, 1)
}

// Finished reports whether the missile has reached its target.
func (m *Missile) Finished() bool { return m.progress >= 1 }

// Progress returns the flight progress in [0,1].
func (m *Missile) Progress() float32 { return m.progress }

// Position returns the canvas position of the missile's head,
// interpolating between adjacent track samples.
func (m *Missile) Position() [2]float32 {
	t := m.progress * float32(len(m.path)-1)
	idx := int(t)
	if idx < 0 {
		return m.path[0]
	}
	if idx >= len(m.path)-1 {
		return m.path[len(m.path)-1]
	}
	return math.Lerp2f(t-float32(idx), m.path[idx], m.path[idx+1])
}

// Draw encodes the missile's trail, launch site marker and approach
// pulse into the command buffer.
func (m *Missile) Draw(cb *renderer.CommandBuffer) {
	// The visible prefix of the track grows with flight progress; the
	// prefix crosses the antimeridian seam wherever the full track
	// does, so it is re-split every frame.
	visible := int(m.progress * float32(len(m.path)))
	if visible >= 2 {
		for _, seg := range geo.SplitAtSeam(m.path[:visible], m.width) {
			renderer.AddGlowPath(cb, seg, m.Color.WithAlpha(1), 5)
		}
	}

	site := m.path[0]
	switch m.Site {
	case Surface:
		m.drawLaunchTriangle(cb, site)
	case Submarine:
		m.drawSubmarine(cb, site)
	}

	// A pulsing ring calls out the target on final approach.
	if m.progress >= 0.85 && m.progress < 1 {
		pulse := 0.5 + 0.5*math.Sin(m.progress*20)
		radius := 10 + pulse*5
		target := m.path[len(m.path)-1]
		renderer.AddGlowCircle(cb, target, radius, m.Color.WithAlpha(0.5+pulse*0.5), 3)
	}
}

func (m *Missile) drawLaunchTriangle(cb *renderer.CommandBuffer, p [2]float32) {
	// Flip y so the apex points up on the y-down canvas.
	const height = 18
	tri := make([][2]float32, 0, 3)
	for _, v := range math.EquilateralTriangleVertices(height) {
		tri = append(tri, [2]float32{p[0] + v[0], p[1] - v[1]})
	}
	renderer.AddGlowLineLoop(cb, tri, m.Color.WithAlpha(1), 3)
}

// submarineHull is the silhouette of the launch platform, relative to
// the launch point with y increasing downward.
var submarineHull = [][2]float32{
	{-12, 0}, {-10, -3}, {-6, -4}, {6, -4}, {10, -3}, {12, 0}, {10, 2}, {-10, 2},
}

func (m *Missile) drawSubmarine(cb *renderer.CommandBuffer, p [2]float32) {
	color := m.Color.WithAlpha(1)

	hull := make([][2]float32, len(submarineHull))
	for i, h := range submarineHull {
		hull[i] = [2]float32{p[0] + h[0], p[1] + h[1]}
	}
	renderer.AddGlowLineLoop(cb, hull, color, 3)

	const size = 8
	tower := [][2]float32{
		{p[0] - size*0.25, p[1] - size*0.5},
		{p[0] + size*0.25, p[1] - size*0.5},
		{p[0] + size*0.25, p[1] - size*1.1},
		{p[0] - size*0.25, p[1] - size*1.1},
	}
	renderer.AddGlowLineLoop(cb, tower, color, 3)

	renderer.AddGlowLine(cb, [2]float32{p[0], p[1] - size*1.1},
		[2]float32{p[0], p[1] - size*1.4}, color, 3)
}
