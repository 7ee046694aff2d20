// renderer/commandbuffer_test.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"
	"testing"
)

func TestFloat2BufferOffset(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	pts := [][2]float32{{1, 2}, {3, 4}, {5, 6}}
	offset := cb.Float2Buffer(pts)

	if offset%4 != 0 {
		t.Fatalf("offset %d not word aligned", offset)
	}
	w := offset / 4
	for i, p := range pts {
		for c := 0; c < 2; c++ {
			got := gomath.Float32frombits(cb.Buf[w+2*i+c])
			if got != p[c] {
				t.Errorf("point %d component %d: %f, expected %f", i, c, got, p[c])
			}
		}
	}
}

func TestIntBufferOffset(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	indices := []int32{0, 1, 1, 2}
	offset := cb.IntBuffer(indices)

	w := offset / 4
	for i, idx := range indices {
		if got := int32(cb.Buf[w+i]); got != idx {
			t.Errorf("index %d: %d, expected %d", i, got, idx)
		}
	}
}

func TestLinesDrawBuilderCommands(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)

	ld.AddLineStrip([][2]float32{{0, 0}, {1, 0}, {2, 0}})
	ld.GenerateCommands(cb)

	var draws int
	for _, c := range DecodeCommands(cb) {
		if c.Cmd == RendererDrawLines {
			draws++
			if count := c.Int(2); count != 4 {
				t.Errorf("draw count %d indices, expected 4 for a 3-point strip", count)
			}
		}
	}
	if draws != 1 {
		t.Errorf("%d draw commands, expected 1", draws)
	}
}

func TestEmptyBuilderGeneratesNothing(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)
	ld.GenerateCommands(cb)

	if len(cb.Buf) != 0 {
		t.Errorf("empty builder emitted %d words", len(cb.Buf))
	}
}

func TestColoredLinesDrawBuilderCommands(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	ld := GetColoredLinesDrawBuilder()
	defer ReturnColoredLinesDrawBuilder(ld)

	ld.AddLine([2]float32{0, 0}, [2]float32{1, 1}, RGB{R: 1})
	ld.GenerateCommands(cb)

	var colorArrays, disables int
	for _, c := range DecodeCommands(cb) {
		switch c.Cmd {
		case RendererRGB32Array:
			colorArrays++
			if nb := c.Int(1); nb != 24 {
				t.Errorf("color array %d bytes, expected 24 for 2 RGB vertices", nb)
			}
		case RendererDisableColorArray:
			disables++
		}
	}
	if colorArrays != 1 || disables != 1 {
		t.Errorf("%d color arrays, %d disables; expected 1 each", colorArrays, disables)
	}
}

func TestAddNumber(t *testing.T) {
	ld := GetLinesDrawBuilder()
	defer ReturnLinesDrawBuilder(ld)

	ld.AddNumber([2]float32{0, 0}, 1, "1")
	if len(ld.indices) != 4 {
		t.Errorf("digit 1 generated %d indices, expected 4 for 2 segments", len(ld.indices))
	}

	ld.Reset()
	ld.AddNumber([2]float32{0, 0}, 1, "11")
	if len(ld.indices) != 8 {
		t.Errorf("\"11\" generated %d indices, expected 8", len(ld.indices))
	}
}

func TestReset(t *testing.T) {
	cb := GetCommandBuffer()
	defer ReturnCommandBuffer(cb)

	cb.ClearRGB(RGB{0, 0, 0})
	cb.Blend()
	if len(cb.Buf) == 0 {
		t.Fatalf("commands not recorded")
	}

	cb.Reset()
	if len(cb.Buf) != 0 {
		t.Errorf("%d words after Reset", len(cb.Buf))
	}
}
