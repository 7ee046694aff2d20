// geo/geo.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

// GeoPoint is a geographic coordinate in degrees.
type GeoPoint struct {
	Lat, Lon float64
}

// NormalizeLon wraps a longitude into (-180, 180].
func NormalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon <= -180 {
		lon += 360
	}
	return lon
}

// Projector maps geographic coordinates onto a fixed-size
// equirectangular canvas with north at the top.
type Projector struct {
	Width, Height float32
}

func (p Projector) Project(lat, lon float64) [2]float32 {
	x := float32(lon+180) / 360 * p.Width
	y := float32(90-lat) / 180 * p.Height
	return [2]float32{x, y}
}

func (p Projector) ProjectPoint(gp GeoPoint) [2]float32 {
	return p.Project(gp.Lat, gp.Lon)
}
