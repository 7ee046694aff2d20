// math/math_test.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestClamp(t *testing.T) {
	if Clamp(1, 0, 2) != 1 {
		t.Errorf("Clamp(1, 0, 2) != 1")
	}
	if Clamp(-1, 0, 2) != 0 {
		t.Errorf("Clamp(-1, 0, 2) != 0")
	}
	if Clamp(3, 0, 2) != 2 {
		t.Errorf("Clamp(3, 0, 2) != 2")
	}
	if Clamp(float32(3.5), 0, 2) != 2 {
		t.Errorf("Clamp(3.5, 0, 2) != 2")
	}
}

func TestLerp(t *testing.T) {
	if l := Lerp(0, -1, 1); l != -1 {
		t.Errorf("Lerp(0, -1, 1) = %f, expected -1", l)
	}
	if l := Lerp(1, -1, 1); l != 1 {
		t.Errorf("Lerp(1, -1, 1) = %f, expected 1", l)
	}
	if l := Lerp(0.5, -1, 1); l != 0 {
		t.Errorf("Lerp(0.5, -1, 1) = %f, expected 0", l)
	}
}

func TestCirclePoints(t *testing.T) {
	for _, nsegs := range []int{8, 16, 32} {
		pts := CirclePoints(nsegs)
		if len(pts) != nsegs {
			t.Errorf("requested %d circle points, got %d", nsegs, len(pts))
		}
		for i, p := range pts {
			l := Length2f(p)
			if Abs(l-1) > 1e-5 {
				t.Errorf("point %d norm %f distant from origin; expected 1", i, l)
			}
		}
	}
}

func TestExtent2DFromPoints(t *testing.T) {
	e := Extent2DFromPoints([][2]float32{{1, 1}, {3, -2}, {2, 5}})
	if e.P0[0] != 1 || e.P0[1] != -2 || e.P1[0] != 3 || e.P1[1] != 5 {
		t.Errorf("unexpected bounds %+v for points", e)
	}
	if !e.Inside([2]float32{2, 2}) {
		t.Errorf("(2,2) reported outside %+v", e)
	}
	if e.Inside([2]float32{0, 0}) {
		t.Errorf("(0,0) reported inside %+v", e)
	}
}

func TestEquilateralTriangleVertices(t *testing.T) {
	v := EquilateralTriangleVertices(18)
	side := Distance2f(v[0], v[1])
	for i := range v {
		if d := Distance2f(v[i], v[(i+1)%3]); Abs(d-side) > 1e-4 {
			t.Errorf("side %d length %g, expected %g", i, d, side)
		}
	}
	cx := (v[0][0] + v[1][0] + v[2][0]) / 3
	cy := (v[0][1] + v[1][1] + v[2][1]) / 3
	if Abs(cx) > 1e-4 || Abs(cy) > 1e-4 {
		t.Errorf("centroid (%g, %g), expected the origin", cx, cy)
	}
	if h := v[0][1] - v[1][1]; Abs(h-18) > 1e-4 {
		t.Errorf("height %g, expected 18", h)
	}
}

func TestMatrix3TranslateScale(t *testing.T) {
	m := Identity3x3().Translate(10, 20).Scale(2, 3)
	got := m.TransformPoint([2]float32{1, 1})
	if Abs(got[0]-12) > 1e-4 || Abs(got[1]-23) > 1e-4 {
		t.Errorf("got %v, expected (12, 23)", got)
	}
}

func TestMatrix3Ortho(t *testing.T) {
	m := Identity3x3().Ortho(0, 1920, 1080, 0)

	// Corners of the ortho box map to NDC corners.
	checks := [][2][2]float32{
		{{0, 1080}, {-1, -1}},
		{{1920, 0}, {1, 1}},
		{{960, 540}, {0, 0}},
	}
	for _, c := range checks {
		got := m.TransformPoint(c[0])
		if Abs(got[0]-c[1][0]) > 1e-4 || Abs(got[1]-c[1][1]) > 1e-4 {
			t.Errorf("ortho transform of %v = %v, expected %v", c[0], got, c[1])
		}
	}
}
