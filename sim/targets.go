// sim/targets.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	gomath "math"

	"github.com/warroom/warmap/geo"
	"github.com/warroom/warmap/renderer"
)

var (
	Cyan    = renderer.Cyan
	DimCyan = renderer.DimCyan
	Red     = renderer.Red
	White   = renderer.White
)

// TargetLocations are the cities that incoming strikes are aimed at;
// launches pick their endpoints from this table.
var TargetLocations = []geo.GeoPoint{
	{Lat: 55.7558, Lon: 37.6173},   // Moscow
	{Lat: 39.9042, Lon: 116.4074},  // Beijing
	{Lat: 35.6762, Lon: 139.6503},  // Tokyo
	{Lat: 51.5074, Lon: -0.1278},   // London
	{Lat: 48.8566, Lon: 2.3522},    // Paris
	{Lat: 52.52, Lon: 13.405},      // Berlin
	{Lat: 38.9072, Lon: -77.0369},  // Washington DC
	{Lat: 40.7128, Lon: -74.006},   // New York
	{Lat: 34.0522, Lon: -118.2437}, // Los Angeles
	{Lat: 41.8781, Lon: -87.6298},  // Chicago
	{Lat: 29.7604, Lon: -95.3698},  // Houston
	{Lat: 33.4484, Lon: -112.074},  // Phoenix
	{Lat: 37.7749, Lon: -122.4194}, // San Francisco
	{Lat: 47.6062, Lon: -122.3321}, // Seattle
	{Lat: 25.7617, Lon: -80.1918},  // Miami
	{Lat: 32.7157, Lon: -117.1611}, // San Diego
	{Lat: 42.3601, Lon: -71.0589},  // Boston
	{Lat: 39.7392, Lon: -104.9903}, // Denver
	{Lat: 45.5152, Lon: -122.6784}, // Portland
	{Lat: 30.2672, Lon: -97.7431},  // Austin
}

// WesternTargets and EasternTargets are the endpoints for
// submarine-launched missiles, split by hemisphere of origin.
var WesternTargets = []geo.GeoPoint{
	{Lat: 38.9, Lon: -77.0},   // Washington DC
	{Lat: 40.71, Lon: -74.0},  // New York
	{Lat: 34.05, Lon: -118.24}, // Los Angeles
	{Lat: 64.13, Lon: -21.89}, // Reykjavik
	{Lat: -34.6, Lon: -58.38}, // Buenos Aires
}

var EasternTargets = []geo.GeoPoint{
	{Lat: 55.75, Lon: 37.62},   // Moscow
	{Lat: 51.5, Lon: -0.12},    // London
	{Lat: 35.68, Lon: 139.76},  // Tokyo
	{Lat: 39.9, Lon: 116.4},    // Beijing
	{Lat: -33.86, Lon: 151.2},  // Sydney
	{Lat: 28.61, Lon: 77.21},   // Delhi
	{Lat: 59.33, Lon: 18.07},   // Stockholm
}

// SubmarinePoints are open-ocean launch positions for
// submarine-launched missiles.
var SubmarinePoints = []geo.GeoPoint{
	{Lat: 35, Lon: -45},
	{Lat: 45, Lon: -30},
	{Lat: 60, Lon: -20},
	{Lat: 40, Lon: 160},
	{Lat: 25, Lon: -155},
	{Lat: 50, Lon: -140},
	{Lat: 10, Lon: 65},
	{Lat: -30, Lon: 40},
	{Lat: 70, Lon: 40},
	{Lat: 55, Lon: 170},
	{Lat: 15, Lon: -60},
	{Lat: -45, Lon: -60},
}

var priorityTargets = []geo.GeoPoint{
	{Lat: 55.7558, Lon: 37.6173},  // Moscow
	{Lat: 35.6762, Lon: 139.6503}, // Tokyo
}

// TargetColor returns red for the handful of strategically marked
// targets and cyan for everything else.
func TargetColor(target geo.GeoPoint) renderer.RGB {
	const eps = 0.01
	for _, p := range priorityTargets {
		if gomath.Abs(target.Lat-p.Lat) < eps && gomath.Abs(target.Lon-p.Lon) < eps {
			return Red
		}
	}
	return Cyan
}
