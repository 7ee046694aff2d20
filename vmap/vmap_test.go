// vmap/vmap_test.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package vmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/warroom/warmap/geo"
)

var testProj = geo.Projector{Width: 1920, Height: 1080}

func TestHighlighted(t *testing.T) {
	for _, tc := range []struct {
		props geojson.Properties
		want  bool
	}{
		{geojson.Properties{"NAME": "Russia"}, true},
		{geojson.Properties{"NAME": "RUSSIA"}, true},
		{geojson.Properties{"NAME": "Japan"}, true},
		{geojson.Properties{"ADMIN": "Japan"}, true},
		{geojson.Properties{"NAME": "France"}, false},
		{geojson.Properties{}, false},
	} {
		if got := highlighted(tc.props); got != tc.want {
			t.Errorf("%v: got %v, want %v", tc.props, got, tc.want)
		}
	}
}

func TestGeometryLines(t *testing.T) {
	ls := orb.LineString{{0, 0}, {1, 1}}
	if got := geometryLines(ls); len(got) != 1 {
		t.Errorf("LineString: got %d lines, want 1", len(got))
	}

	poly := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}
	if got := geometryLines(poly); len(got) != 1 {
		t.Errorf("Polygon: got %d lines, want 1", len(got))
	}

	mp := orb.MultiPolygon{poly, poly}
	if got := geometryLines(mp); len(got) != 2 {
		t.Errorf("MultiPolygon: got %d lines, want 2", len(got))
	}
}

func TestProjectAndSplit(t *testing.T) {
	// A coastline hopping across the antimeridian splits in two.
	line := orb.LineString{{170, 0}, {179, 1}, {-179, 1}, {-170, 0}}
	segs := projectAndSplit(testProj, line)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	for i, seg := range segs {
		if len(seg) != 2 {
			t.Errorf("segment %d: got %d points, want 2", i, len(seg))
		}
	}
}

const inlineGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature",
     "properties": {"NAME": "Russia"},
     "geometry": {"type": "Polygon",
                  "coordinates": [[[30, 50], [180, 50], [180, 70], [30, 70], [30, 50]]]}},
    {"type": "Feature",
     "properties": {"NAME": "France"},
     "geometry": {"type": "Polygon",
                  "coordinates": [[[-5, 42], [8, 42], [8, 51], [-5, 51], [-5, 42]]]}}
  ]
}`

func TestLoadCountries(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CountriesFile), []byte(inlineGeoJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	m := Load(dir, testProj, nil)
	if len(m.coastlines) != 0 {
		t.Errorf("no coastline file was present, got %d segments", len(m.coastlines))
	}
	if len(m.borders) == 0 {
		t.Error("France should contribute border segments")
	}
	if len(m.highlights) == 0 {
		t.Error("Russia should contribute highlighted segments")
	}
}

func TestLoadMissingDir(t *testing.T) {
	m := Load(t.TempDir(), testProj, nil)
	if len(m.coastlines) != 0 || len(m.borders) != 0 || len(m.highlights) != 0 {
		t.Error("missing data files should leave the map empty")
	}
}
