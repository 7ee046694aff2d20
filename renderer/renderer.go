// renderer/renderer.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"image"
	"log/slog"
)

// Renderer defines an interface for all of the drawing that happens in
// warmap. There is currently a single implementation of it, the OpenGL
// 4.1 backend, though having the details behind the Renderer interface
// would make it relatively easy to write a Vulkan or Metal backend.
type Renderer interface {
	// CreateTextureFromImage returns an identifier for a texture map
	// defined by the specified image.
	CreateTextureFromImage(img image.Image) uint32

	// DestroyTexture frees the resources associated with the given
	// texture id.
	DestroyTexture(id uint32)

	// CreateProgram compiles and links the given vertex and fragment
	// shader sources, returning a handle for use with the CommandBuffer
	// UseProgram method.
	CreateProgram(vertex, fragment string) (uint32, error)

	// CreateRenderTarget allocates a framebuffer with a color texture
	// attachment of the given size that rendering can be directed into
	// via the CommandBuffer BindTarget method.
	CreateRenderTarget(width, height int) (RenderTarget, error)

	// RenderCommandBuffer executes all of the commands encoded in the
	// provided command buffer, returning statistics about what was
	// rendered.
	RenderCommandBuffer(*CommandBuffer) RendererStats

	// Dispose releases resources allocated by the renderer.
	Dispose()
}

// RenderTarget bundles a framebuffer object with its color texture;
// targets are created once at startup and live for the process.
type RenderTarget struct {
	FBO     uint32
	Texture uint32
	Width   int32
	Height  int32
}

// RendererStats encapsulates assorted statistics from rendering.
type RendererStats struct {
	nBuffers, bufferBytes int
	nDrawCalls            int
	nLines, nTriangles    int
}

func (rs *RendererStats) String() string {
	return fmt.Sprintf("%d buffers (%.2f MB), %d draw calls: %d lines, %d tris",
		rs.nBuffers, float32(rs.bufferBytes)/(1024*1024), rs.nDrawCalls, rs.nLines, rs.nTriangles)
}

func (rs *RendererStats) Merge(s RendererStats) {
	rs.nBuffers += s.nBuffers
	rs.bufferBytes += s.bufferBytes
	rs.nDrawCalls += s.nDrawCalls
	rs.nLines += s.nLines
	rs.nTriangles += s.nTriangles
}

func (rs RendererStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("buffers", rs.nBuffers),
		slog.Int("buffer_memory", rs.bufferBytes),
		slog.Int("draw_calls", rs.nDrawCalls),
		slog.Int("lines", rs.nLines),
		slog.Int("tris", rs.nTriangles),
	)
}
