// sim/explosion.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/warroom/warmap/renderer"
)

const explosionDuration = 2.5

// ringDelays staggers the start of each expanding ring.
var ringDelays = [4]float32{0, 0.3, 0.6, 0.9}

// Explosion marks a missile impact: a short bright flash followed by
// staggered expanding rings that fade as they grow.
type Explosion struct {
	Center [2]float32
	Color  renderer.RGB

	age float32
}

func NewExplosion(center [2]float32, color renderer.RGB) *Explosion {
	return &Explosion{Center: center, Color: color}
}

// Update advances the explosion by dt seconds.
func (e *Explosion) Update(dt float32) {
	e.age += dt
}

// Finished reports whether the explosion has burned out.
func (e *Explosion) Finished() bool { return e.age >= explosionDuration }

// Draw encodes the explosion's rings and flash into the command buffer.
func (e *Explosion) Draw(cb *renderer.CommandBuffer) {
	ringDuration := explosionDuration - ringDelays[len(ringDelays)-1]
	for _, delay := range ringDelays {
		ringAge := e.age - delay
		if ringAge < 0 {
			continue
		}
		t := ringAge / ringDuration
		if t > 1 {
			continue
		}
		renderer.AddGlowCircle(cb, e.Center, t*50, e.Color.WithAlpha(1-t), 4)
	}

	const flashDuration = 0.5
	if e.age < flashDuration {
		alpha := 1 - e.age/flashDuration
		renderer.AddGlowCircle(cb, e.Center, 5+e.age*10, White.WithAlpha(alpha), 5)
	}
}
