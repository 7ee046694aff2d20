// sim/world.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"slices"

	"github.com/warroom/warmap/geo"
	"github.com/warroom/warmap/log"
	"github.com/warroom/warmap/math"
	"github.com/warroom/warmap/rand"
	"github.com/warroom/warmap/renderer"
)

const (
	DefaultLaunchInterval = 2.0
	minLaunchInterval     = 0.3
	maxLaunchInterval     = 10.0

	numAircraft = 12
)

// World owns all of the simulated entities and the launch clock. It is
// not safe for concurrent use; everything runs on the render thread.
type World struct {
	proj geo.Projector
	rand *rand.Rand
	lg   *log.Logger

	missiles   []*Missile
	explosions []*Explosion
	aircraft   []*Aircraft

	launchInterval  float32
	sinceLastLaunch float32
}

// NewWorld populates the initial patrol aircraft and arms the launch
// clock.
func NewWorld(proj geo.Projector, r *rand.Rand, lg *log.Logger) *World {
	w := &World{
		proj:           proj,
		rand:           r,
		lg:             lg,
		launchInterval: DefaultLaunchInterval,
	}
	for range numAircraft {
		center := geo.GeoPoint{
			Lat: float64(r.Float32Range(-60, 60)),
			Lon: float64(r.Float32Range(-180, 180)),
		}
		w.aircraft = append(w.aircraft,
			NewAircraft(proj, center, float64(r.Float32Range(3, 12)), r.Float32Range(20, 60)))
	}
	return w
}

// LaunchInterval returns the current time between automatic launches
// in seconds.
func (w *World) LaunchInterval() float32 { return w.launchInterval }

// SetLaunchInterval restores a saved launch interval.
func (w *World) SetLaunchInterval(interval float32) {
	w.launchInterval = math.Clamp(interval, minLaunchInterval, maxLaunchInterval)
}

// FasterLaunches shortens the time between automatic launches.
func (w *World) FasterLaunches() {
	w.launchInterval = math.Clamp(w.launchInterval-0.5, minLaunchInterval, maxLaunchInterval)
}

// SlowerLaunches lengthens the time between automatic launches.
func (w *World) SlowerLaunches() {
	w.launchInterval = math.Clamp(w.launchInterval+0.5, minLaunchInterval, maxLaunchInterval)
}

// Reset clears all strikes in flight and restores the default launch
// interval. Patrol aircraft keep flying.
func (w *World) Reset() {
	w.missiles = nil
	w.explosions = nil
	w.launchInterval = DefaultLaunchInterval
	w.sinceLastLaunch = 0
	w.lg.Info("world reset")
}

// Launch adds a single new strike. A quarter of launches come from
// submarines lurking at sea; the rest fly between the cities in the
// target table.
func (w *World) Launch() {
	if w.rand.Intn(4) == 0 {
		start := rand.SampleSlice(w.rand, SubmarinePoints)
		var target geo.GeoPoint
		if w.rand.Intn(2) == 0 {
			target = rand.SampleSlice(w.rand, EasternTargets)
		} else {
			target = rand.SampleSlice(w.rand, WesternTargets)
		}
		w.missiles = append(w.missiles, NewMissile(w.proj, start, target, Submarine))
		return
	}

	si := w.rand.Intn(len(TargetLocations))
	ti := w.rand.Intn(len(TargetLocations) - 1)
	if ti >= si {
		ti++
	}
	w.missiles = append(w.missiles,
		NewMissile(w.proj, TargetLocations[si], TargetLocations[ti], Surface))
}

// Burst fires a salvo of strikes all at once.
func (w *World) Burst() {
	for range 5 {
		si := w.rand.Intn(len(TargetLocations))
		ti := w.rand.Intn(len(TargetLocations) - 1)
		if ti >= si {
			ti++
		}
		w.missiles = append(w.missiles,
			NewMissile(w.proj, TargetLocations[si], TargetLocations[ti], Surface))
	}
	for range 3 {
		start := rand.SampleSlice(w.rand, SubmarinePoints)
		var target geo.GeoPoint
		if w.rand.Intn(2) == 0 {
			target = rand.SampleSlice(w.rand, EasternTargets)
		} else {
			target = rand.SampleSlice(w.rand, WesternTargets)
		}
		w.missiles = append(w.missiles, NewMissile(w.proj, start, target, Submarine))
	}
	w.lg.Debug("burst launched", "missiles", len(w.missiles))
}

// Update advances the simulation by dt seconds: the launch clock,
// every entity in flight and impact bookkeeping.
func (w *World) Update(dt float32) {
	w.sinceLastLaunch += dt
	if w.sinceLastLaunch >= w.launchInterval {
		w.Launch()
		w.sinceLastLaunch = 0
	}

	for _, a := range w.aircraft {
		a.Update(dt)
	}
	for _, m := range w.missiles {
		m.Update(dt)
		if m.Finished() {
			w.explosions = append(w.explosions, NewExplosion(m.Position(), Cyan))
		}
	}
	for _, e := range w.explosions {
		e.Update(dt)
	}

	w.missiles = slices.DeleteFunc(w.missiles, (*Missile).Finished)
	w.explosions = slices.DeleteFunc(w.explosions, (*Explosion).Finished)
}

// Draw encodes all entities into the command buffer, aircraft beneath
// missiles beneath explosions.
func (w *World) Draw(cb *renderer.CommandBuffer) {
	for _, a := range w.aircraft {
		a.Draw(cb)
	}
	for _, m := range w.missiles {
		m.Draw(cb)
	}
	for _, e := range w.explosions {
		e.Draw(cb)
	}
}

// Counts returns the number of missiles and explosions in flight,
// mostly for logging.
func (w *World) Counts() (missiles, explosions int) {
	return len(w.missiles), len(w.explosions)
}
