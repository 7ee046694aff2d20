// geo/seam.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import (
	"github.com/warroom/warmap/math"
)

// SplitAtSeam breaks a projected polyline into segments wherever
// consecutive points jump across the antimeridian. On an
// equirectangular canvas such a crossing shows up as a horizontal jump
// of more than half the canvas width; drawing through it would paint a
// spurious line across the whole map. Each returned segment has at
// least two points; a segment restarts at the far side of a crossing
// and no bridging points are synthesized.
func SplitAtSeam(points [][2]float32, width float32) [][][2]float32 {
	if len(points) == 0 {
		return nil
	}

	var segments [][][2]float32
	current := [][2]float32{points[0]}

	for i := 1; i < len(points); i++ {
		if math.Abs(points[i][0]-points[i-1][0]) > width/2 {
			if len(current) > 1 {
				segments = append(segments, current)
			}
			current = [][2]float32{points[i]}
		} else {
			current = append(current, points[i])
		}
	}

	if len(current) > 1 {
		segments = append(segments, current)
	}
	return segments
}
