// geo/path.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	gomath "math"

	"github.com/pymaxion/geographiclib-go/geodesic"
)

// BuildGeodesic returns a projected polyline tracing the shortest
// ellipsoidal path between start and end on the WGS84 ellipsoid,
// sampled uniformly by distance. The returned path has exactly samples
// points; if start and end coincide the points are all the same.
func BuildGeodesic(proj Projector, start, end GeoPoint, samples int) [][2]float32 {
	if samples < 2 {
		samples = 2
	}

	g := geodesic.WGS84
	inv := g.Inverse(start.Lat, start.Lon, end.Lat, end.Lon)

	path := make([][2]float32, 0, samples)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		d := g.Direct(start.Lat, start.Lon, inv.Azi1, t*inv.S12)
		path = append(path, proj.Project(d.Lat2, NormalizeLon(d.Lon2)))
	}
	return path
}

// BuildLoop returns a projected closed loop around center with the
// given angular radius in degrees. The loop is a plain circle in
// lat-long space rather than a geodesic one; it distorts towards the
// poles but the patrol loops it is used for are small.
func BuildLoop(proj Projector, center GeoPoint, radiusDeg float64, samples int) [][2]float32 {
	path := make([][2]float32, 0, samples)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		angle := t * 2 * gomath.Pi
		lat := center.Lat + radiusDeg*gomath.Sin(angle)
		lon := NormalizeLon(center.Lon + radiusDeg*gomath.Cos(angle))
		path = append(path, proj.Project(lat, lon))
	}
	return path
}
