// vmap/vmap.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package vmap draws the world map: Natural Earth coastlines and
// country borders projected onto the display and split at the
// antimeridian once at load time.
package vmap

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/warroom/warmap/geo"
	"github.com/warroom/warmap/log"
	"github.com/warroom/warmap/renderer"
	"github.com/warroom/warmap/util"
)

const (
	CoastlineFile = "ne_110m_coastline.geojson"
	CountriesFile = "ne_110m_admin_0_countries.geojson"
)

// Map holds the projected and seam-split map geometry. An empty Map is
// valid and draws nothing; missing data files degrade to that rather
// than failing.
type Map struct {
	coastlines [][][2]float32
	borders    [][][2]float32
	// highlights are the borders of the strategically marked countries;
	// they are drawn last, in red, over everything else.
	highlights [][][2]float32
}

// Load reads the Natural Earth GeoJSON files from dataDir. Each
// missing or malformed file is logged and skipped.
func Load(dataDir string, proj geo.Projector, lg *log.Logger) *Map {
	m := &Map{}

	if fc, err := readFeatureCollection(filepath.Join(dataDir, CoastlineFile)); err != nil {
		lg.Warnf("%s: %v", CoastlineFile, err)
	} else {
		for _, f := range fc.Features {
			for _, line := range geometryLines(f.Geometry) {
				m.coastlines = append(m.coastlines, projectAndSplit(proj, line)...)
			}
		}
		lg.Infof("%s: %d coastline segments", CoastlineFile, len(m.coastlines))
	}

	if fc, err := readFeatureCollection(filepath.Join(dataDir, CountriesFile)); err != nil {
		lg.Warnf("%s: %v", CountriesFile, err)
	} else {
		for _, f := range fc.Features {
			dst := &m.borders
			if highlighted(f.Properties) {
				dst = &m.highlights
			}
			for _, line := range geometryLines(f.Geometry) {
				*dst = append(*dst, projectAndSplit(proj, line)...)
			}
		}
		lg.Infof("%s: %d border segments, %d highlighted", CountriesFile,
			len(m.borders), len(m.highlights))
	}

	return m
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return geojson.UnmarshalFeatureCollection(b)
}

// highlighted reports whether a country feature should be drawn in
// red; the country name is taken from the NAME property, falling back
// to ADMIN.
func highlighted(props geojson.Properties) bool {
	name := props.MustString("NAME", "")
	if name == "" {
		name = props.MustString("ADMIN", "")
	}
	name = strings.ToLower(name)
	return strings.Contains(name, "russia") || strings.Contains(name, "japan")
}

// geometryLines flattens a GeoJSON geometry into the line strings to
// draw; polygon rings are traced as their outlines.
func geometryLines(g orb.Geometry) []orb.LineString {
	switch g := g.(type) {
	case orb.LineString:
		return []orb.LineString{g}
	case orb.MultiLineString:
		return []orb.LineString(g)
	case orb.Polygon:
		var lines []orb.LineString
		for _, ring := range g {
			lines = append(lines, orb.LineString(ring))
		}
		return lines
	case orb.MultiPolygon:
		var lines []orb.LineString
		for _, poly := range g {
			for _, ring := range poly {
				lines = append(lines, orb.LineString(ring))
			}
		}
		return lines
	case orb.Collection:
		var lines []orb.LineString
		for _, sub := range g {
			lines = append(lines, geometryLines(sub)...)
		}
		return lines
	}
	return nil
}

func projectAndSplit(proj geo.Projector, line orb.LineString) [][][2]float32 {
	pts := util.MapSlice([]orb.Point(line), func(p orb.Point) [2]float32 {
		return proj.Project(p.Lat(), geo.NormalizeLon(p.Lon()))
	})
	return geo.SplitAtSeam(pts, proj.Width)
}

// Draw encodes the map into the command buffer: coastlines, then
// borders, then the highlighted countries on top.
func (m *Map) Draw(cb *renderer.CommandBuffer) {
	for _, seg := range m.coastlines {
		renderer.AddGlowPath(cb, seg, renderer.DimCyan.WithAlpha(1), 3)
	}
	for _, seg := range m.borders {
		renderer.AddGlowPath(cb, seg, renderer.DarkerCyan.WithAlpha(1), 3)
	}
	for _, seg := range m.highlights {
		renderer.AddGlowPath(cb, seg, renderer.Red.WithAlpha(1), 3)
	}
}
