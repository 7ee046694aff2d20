// renderer/commandbuffer.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"
	"sync"
	"unsafe"

	"github.com/warroom/warmap/log"
	"github.com/warroom/warmap/math"
)

// Also available as a global, though only used by CommandBuffer
var lg *log.Logger

// The command buffer stores a series of rendering commands, represented by
// the following values. Each one is followed in the buffer by a number of
// command arguments, after which the next command follows.  Comments
// after each command briefly describe its arguments.
//
// Buffers (vertex, index, color), are all stored directly in the
// CommandBuffer, following RendererFloatBuffer and RendererIntBuffer
// commands; the first argument after those commands is the length of the
// buffer and then its values follow directly. Rendering commands that use
// buffers (e.g., buffer binding commands like RendererVertexArray or draw
// commands like RendererDrawLines) are then directed to those buffers via
// integer parameters that encode the offset from the start of the command
// buffer where a buffer begins. (Note that this implies that one
// CommandBuffer cannot refer to a vertex/index buffer in another
// CommandBuffer.)

const (
	RendererLoadProjectionMatrix = iota // 16 float32: matrix
	RendererClearRGBA                   // 4 float32: RGBA
	RendererViewport                    // 4 int32: x, y, width, height
	RendererBlend                       // no args: src alpha, 1-src alpha
	RendererBlendAdditive               // no args: one, one
	RendererDisableBlend                // no args
	RendererSetRGBA                     // 4 float32: RGBA
	RendererFloatBuffer                 // int32 size, then size*float32 values
	RendererIntBuffer                   // int32: size, then size*int32 values
	RendererVertexArray                 // byte offset to array values, size (bytes), n components, stride (bytes)
	RendererDisableVertexArray          // no args
	RendererRGB32Array                  // byte offset to array values, size (bytes), n components, stride (bytes)
	RendererDisableColorArray           // no args
	RendererLineWidth                   // float32
	RendererDrawLines                   // 3 int32: offset to the index buffer, size (bytes), count
	RendererUseProgram                  // int32: program handle
	RendererBindTarget                  // 3 int32: fbo handle, width, height
	RendererUnbindTarget                // 2 int32: width, height of the default framebuffer
	RendererUniform1f                   // int32: uniform, float32: value
	RendererUniform2f                   // int32: uniform, 2 float32: values
	RendererBindTexture                 // 3 int32: texture unit, texture handle, uniform
	RendererFullscreenQuad              // no args
	RendererCallBuffer                  // 1 int32: buffer index
	RendererResetState                  // no args
)

// Uniform identifies a shader uniform by name; the rendering backend
// resolves locations per program and caches them.
type Uniform int32

const (
	UniformProjection Uniform = iota
	UniformColor
	UniformResolution
	UniformTime
	UniformDistortion
	UniformIntensity
	UniformDirection
	UniformNoiseIntensity
	UniformBloomIntensity
	UniformFlickerIntensity
	UniformScreenTexture
	UniformScanlineTexture
	UniformVignetteTexture
	UniformBloomTexture
	numUniforms
)

var uniformNames = [numUniforms]string{
	UniformProjection:       "projection",
	UniformColor:            "color",
	UniformResolution:       "resolution",
	UniformTime:             "time",
	UniformDistortion:       "distortion",
	UniformIntensity:        "intensity",
	UniformDirection:        "direction",
	UniformNoiseIntensity:   "noiseIntensity",
	UniformBloomIntensity:   "bloomIntensity",
	UniformFlickerIntensity: "flickerIntensity",
	UniformScreenTexture:    "screenTexture",
	UniformScanlineTexture:  "scanlineTexture",
	UniformVignetteTexture:  "vignetteTexture",
	UniformBloomTexture:     "bloomTexture",
}

func (u Uniform) String() string {
	return uniformNames[u]
}

// CommandBuffer encodes a sequence of rendering commands in an
// API-agnostic manner. It makes it possible for other parts of warmap to
// "pre-bake" rendering work into a form that can be efficiently processed
// by a Renderer and possibly reused over multiple frames.
type CommandBuffer struct {
	Buf    []uint32
	called []CommandBuffer
}

// CommandBuffers are managed using a sync.Pool so that their buf slice
// allocations persist across multiple uses.
var commandBufferPool = sync.Pool{New: func() any { return &CommandBuffer{} }}

func GetCommandBuffer() *CommandBuffer {
	return commandBufferPool.Get().(*CommandBuffer)
}

func ReturnCommandBuffer(cb *CommandBuffer) {
	cb.Reset()
	commandBufferPool.Put(cb)
}

// Reset resets the command buffer's length to zero so that it can be
// reused.
func (cb *CommandBuffer) Reset() {
	cb.Buf = cb.Buf[:0]
	cb.called = cb.called[:0]
}

// growFor ensures that at least n more values can be added to the end of
// the buffer without going past its capacity.
func (cb *CommandBuffer) growFor(n int) {
	if len(cb.Buf)+n > cap(cb.Buf) {
		sz := 2 * cap(cb.Buf)
		if sz < 1024 {
			sz = 1024
		}
		if sz < len(cb.Buf)+n {
			sz = 2 * (len(cb.Buf) + n)
		}
		b := make([]uint32, len(cb.Buf), sz)
		copy(b, cb.Buf)
		cb.Buf = b
	}
}

func (cb *CommandBuffer) appendFloats(floats ...float32) {
	for _, f := range floats {
		// Convert each one to a uint32 since that's the type that is
		// actually stored...
		cb.Buf = append(cb.Buf, gomath.Float32bits(f))
	}
}

func (cb *CommandBuffer) appendInts(ints ...int) {
	for _, i := range ints {
		if i != int(uint32(i)) {
			lg.Errorf("%d: attempting to add non-32-bit value to CommandBuffer", i)
		}
		cb.Buf = append(cb.Buf, uint32(i))
	}
}

// LoadProjectionMatrix adds a command to the command buffer to set the
// projection matrix used by the vector drawing program.
func (cb *CommandBuffer) LoadProjectionMatrix(m math.Matrix3) {
	cb.appendInts(RendererLoadProjectionMatrix)
	cb.appendFloats(
		m[0][0], m[1][0], 0, m[2][0],
		m[0][1], m[1][1], 0, m[2][1],
		0, 0, 1, 0,
		m[0][2], m[1][2], 0, m[2][2])
}

// ClearRGB adds a command to the command buffer to clear the framebuffer
// to the specified RGB color.
func (cb *CommandBuffer) ClearRGB(color RGB) {
	cb.appendInts(RendererClearRGBA)
	cb.appendFloats(color.R, color.G, color.B, 1)
}

// Viewport adds a command to the command buffer to set the viewport to the
// specified rectangle.
func (cb *CommandBuffer) Viewport(x, y, w, h int) {
	cb.appendInts(RendererViewport, x, y, w, h)
}

// SetRGBA adds a command to the command buffer to set the current RGBA
// color. Subsequent draw commands will inherit this color unless they
// specify e.g., per-vertex colors themselves.
func (cb *CommandBuffer) SetRGBA(rgba RGBA) {
	cb.appendInts(RendererSetRGBA)
	cb.appendFloats(rgba.R, rgba.G, rgba.B, rgba.A)
}

// SetRGB adds a command to the command buffer to set the current RGB
// color (alpha is set to 1). Subsequent draw commands will inherit this
// color unless they specify e.g., per-vertex colors themselves.
func (cb *CommandBuffer) SetRGB(rgb RGB) {
	cb.appendInts(RendererSetRGBA)
	cb.appendFloats(rgb.R, rgb.G, rgb.B, 1)
}

// Blend adds a command to the command buffer to enable alpha-over
// blending.
func (cb *CommandBuffer) Blend() {
	cb.appendInts(RendererBlend)
}

// BlendAdditive adds a command to the command buffer to enable additive
// blending; overlapping glow strokes accumulate brightness.
func (cb *CommandBuffer) BlendAdditive() {
	cb.appendInts(RendererBlendAdditive)
}

// DisableBlend adds a command to the command buffer that disables
// blending.
func (cb *CommandBuffer) DisableBlend() {
	cb.appendInts(RendererDisableBlend)
}

// Float2Buffer stores the provided slice of [2]float32 values in the
// CommandBuffer and returns the byte offset where the first value of the
// slice is stored; this offset can then be passed to commands like
// VertexArray to specify this array.
func (cb *CommandBuffer) Float2Buffer(buf [][2]float32) int {
	cb.appendInts(RendererFloatBuffer, 2*len(buf))
	offset := 4 * len(cb.Buf)

	n := 2 * len(buf)
	cb.growFor(n)
	start := len(cb.Buf)
	cb.Buf = cb.Buf[:start+n]
	copy(cb.Buf[start:start+n], unsafe.Slice((*uint32)(unsafe.Pointer(&buf[0])), n))

	return offset
}

// RGBBuffer stores the provided slice of RGB values in the command buffer
// and returns the byte offset where the first value of the slice is
// stored.
func (cb *CommandBuffer) RGBBuffer(buf []RGB) int {
	cb.appendInts(RendererFloatBuffer, 3*len(buf))
	offset := 4 * len(cb.Buf)

	n := 3 * len(buf)
	cb.growFor(n)
	start := len(cb.Buf)
	copy(cb.Buf[start:start+n], unsafe.Slice((*uint32)(unsafe.Pointer(&buf[0])), n))
	cb.Buf = cb.Buf[:start+n]

	return offset
}

// IntBuffer stores the provided slice of int32 values in the command buffer
// and returns the byte offset where the first value of the slice is stored.
func (cb *CommandBuffer) IntBuffer(buf []int32) int {
	cb.appendInts(RendererIntBuffer, len(buf))
	offset := 4 * len(cb.Buf)

	n := len(buf)
	cb.growFor(n)
	start := len(cb.Buf)
	copy(cb.Buf[start:start+n], unsafe.Slice((*uint32)(unsafe.Pointer(&buf[0])), n))
	cb.Buf = cb.Buf[:start+n]

	return offset
}

// VertexArray adds a command to the command buffer that specifies an array
// of vertex coordinates to use for a subsequent draw command. offset gives
// the offset into the current command buffer where the vertices begin
// (e.g., as returned by Float2Buffer), nBytes the total size of the array,
// nComps the number of components per vertex (generally 2 for warmap),
// and stride the stride in bytes between vertices (e.g., 8 for densely
// packed 2D vertex coordinates.)
func (cb *CommandBuffer) VertexArray(offset, nBytes, nComps, stride int) {
	cb.appendInts(RendererVertexArray, offset, nBytes, nComps, stride)
}

// DisableVertexArray adds a command to the command buffer to disable the
// current vertex array.
func (cb *CommandBuffer) DisableVertexArray() {
	cb.appendInts(RendererDisableVertexArray)
}

// RGB32Array adds a command to the command buffer that specifies an array
// of float32 RGB colors to use for a subsequent draw command. Its
// arguments are analogous to the ones passed to VertexArray.
func (cb *CommandBuffer) RGB32Array(offset, nBytes, nComps, stride int) {
	cb.appendInts(RendererRGB32Array, offset, nBytes, nComps, stride)
}

// DisableColorArray adds a command to the command buffer that disables
// the current array of RGB per-vertex colors.
func (cb *CommandBuffer) DisableColorArray() {
	cb.appendInts(RendererDisableColorArray)
}

// LineWidth adds a command to the command buffer that sets the width in
// pixels of subsequent lines that are drawn.
func (cb *CommandBuffer) LineWidth(w float32) {
	cb.appendInts(RendererLineWidth)
	cb.appendFloats(w)
}

// DrawLines adds a command to the command buffer to draw a number of
// lines; each line is specified by two indices in the index buffer.
// offset gives the offset in the current command buffer where the index
// buffer is (e.g., as returned by IntBuffer), nBytes its size, and count
// gives the total number of indices.
func (cb *CommandBuffer) DrawLines(offset, nBytes, count int) {
	cb.appendInts(RendererDrawLines, offset, nBytes, count)
}

// UseProgram adds a command to the command buffer that makes the given
// shader program current for subsequent draw commands.
func (cb *CommandBuffer) UseProgram(handle uint32) {
	cb.appendInts(RendererUseProgram, int(handle))
}

// BindTarget adds a command to the command buffer that directs subsequent
// rendering into the given render target. Binding a target replaces any
// previously bound one; targets do not nest.
func (cb *CommandBuffer) BindTarget(t RenderTarget) {
	cb.appendInts(RendererBindTarget, int(t.FBO), int(t.Width), int(t.Height))
}

// UnbindTarget adds a command to the command buffer that directs
// subsequent rendering back to the default framebuffer, restoring the
// viewport to the given size.
func (cb *CommandBuffer) UnbindTarget(w, h int) {
	cb.appendInts(RendererUnbindTarget, w, h)
}

// Uniform1f adds a command to the command buffer to set the given scalar
// uniform in the current program.
func (cb *CommandBuffer) Uniform1f(u Uniform, v float32) {
	cb.appendInts(RendererUniform1f, int(u))
	cb.appendFloats(v)
}

// Uniform2f adds a command to the command buffer to set the given vec2
// uniform in the current program.
func (cb *CommandBuffer) Uniform2f(u Uniform, v0, v1 float32) {
	cb.appendInts(RendererUniform2f, int(u))
	cb.appendFloats(v0, v1)
}

// BindTexture adds a command to the command buffer to bind the given
// texture to a texture unit and point the given sampler uniform at that
// unit.
func (cb *CommandBuffer) BindTexture(unit int, texid uint32, u Uniform) {
	cb.appendInts(RendererBindTexture, unit, int(texid), int(u))
}

// FullscreenQuad adds a command to the command buffer to draw two
// triangles covering the bound target, with UVs spanning [0,1]^2.
func (cb *CommandBuffer) FullscreenQuad() {
	cb.appendInts(RendererFullscreenQuad)
}

// Call adds a command to the command buffer that causes the commands in
// the provided command buffer to be processed and executed. After the end
// of the command buffer is reached, processing of commands in the current
// command buffer continues.
func (cb *CommandBuffer) Call(sub CommandBuffer) {
	if sub.Buf == nil {
		// make it a no-op
		return
	}

	cb.appendInts(RendererCallBuffer, len(cb.called))
	// Make our own copy of the slice to ensure it isn't garbage collected.
	cb.called = append(cb.called, sub)
}

// ResetState adds a command to the command buffer that resets all of the
// assorted graphics state (blending, vertex arrays, etc.) to default
// values.
func (cb *CommandBuffer) ResetState() {
	cb.appendInts(RendererResetState)
}
