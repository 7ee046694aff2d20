// renderer/opengl.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"C"
	"fmt"
	"image"
	"image/draw"
	gomath "math"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/warroom/warmap/log"
	"github.com/warroom/warmap/util"
)

type OpenGL41Renderer struct {
	lg              *log.Logger
	createdTextures map[uint32]int

	vectorProgram uint32
	curProgram    uint32

	// Uniform locations are resolved lazily and cached per
	// (program, uniform) pair.
	uniforms map[uint64]int32

	vao uint32
	vbo struct {
		indices  uint32
		position uint32
		color    uint32
		uv       uint32
	}
}

const vectorVertexShader = `
#version 410 core

layout(location = 0) in vec2 inPosition;
layout(location = 1) in vec3 inColor;

uniform mat4 projection;

out vec3 v2fColor;

void main() {
    gl_Position = projection * vec4(inPosition, 0.0, 1.0);
    v2fColor = inColor;
}
`

const vectorFragmentShader = `
#version 410 core

in vec3 v2fColor;

uniform vec4 color;

out vec4 outColor;

void main() {
    outColor = vec4(v2fColor, 1.0) * color;
}
`

// NewOpenGL41Renderer creates an OpenGL context and compiles the vector
// drawing shaders.
func NewOpenGL41Renderer(l *log.Logger) (Renderer, error) {
	lg = l

	lg.Info("Starting OpenGL41Renderer initialization")
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	vendor, renderer := gl.GetString(gl.VENDOR), gl.GetString(gl.RENDERER)
	v, r := (*C.char)(unsafe.Pointer(vendor)), (*C.char)(unsafe.Pointer(renderer))
	lg.Infof("OpenGL vendor %s renderer %s", C.GoString(v), C.GoString(r))

	ogl := &OpenGL41Renderer{
		lg:              lg,
		createdTextures: make(map[uint32]int),
		uniforms:        make(map[uint64]int32),
	}

	prog, err := newProgram(vectorVertexShader, vectorFragmentShader)
	if err != nil {
		return nil, err
	}
	ogl.vectorProgram = prog

	gl.GenVertexArrays(1, &ogl.vao)
	gl.BindVertexArray(ogl.vao)
	gl.GenBuffers(1, &ogl.vbo.indices)
	gl.GenBuffers(1, &ogl.vbo.position)
	gl.GenBuffers(1, &ogl.vbo.color)
	gl.GenBuffers(1, &ogl.vbo.uv)

	ogl.useProgram(prog)

	oglCheck()

	lg.Info("Finished OpenGL41Renderer initialization")
	return ogl, nil
}

func oglCheck() {
	if err := gl.GetError(); err != gl.NO_ERROR {
		frame := log.Callstack(nil)[0]
		fmt.Printf("%s:%d: GL Error %x\n", frame.File, frame.Line, err)
	}
}

func (ogl *OpenGL41Renderer) Dispose() {
	for texid := range ogl.createdTextures {
		gl.DeleteTextures(1, &texid)
	}
	gl.DeleteProgram(ogl.vectorProgram)
	gl.DeleteVertexArrays(1, &ogl.vao)
	gl.DeleteBuffers(1, &ogl.vbo.indices)
	gl.DeleteBuffers(1, &ogl.vbo.position)
	gl.DeleteBuffers(1, &ogl.vbo.color)
	gl.DeleteBuffers(1, &ogl.vbo.uv)
}

func (ogl *OpenGL41Renderer) useProgram(prog uint32) {
	gl.UseProgram(prog)
	ogl.curProgram = prog
}

// uniformLoc returns the location of the given uniform in the current
// program, caching lookups.
func (ogl *OpenGL41Renderer) uniformLoc(u Uniform) int32 {
	key := uint64(ogl.curProgram)<<32 | uint64(uint32(u))
	if loc, ok := ogl.uniforms[key]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(ogl.curProgram, gl.Str(uniformNames[u]+"\x00"))
	ogl.uniforms[key] = loc
	return loc
}

func (ogl *OpenGL41Renderer) createdTexture(texid uint32, bytes int) {
	_, exists := ogl.createdTextures[texid]

	ogl.createdTextures[texid] = bytes

	reduce := func(id uint32, bytes int, total int) int { return total + bytes }
	total := util.ReduceMap(ogl.createdTextures, reduce, 0)
	mb := float32(total) / (1024 * 1024)

	if exists {
		ogl.lg.Infof("Updated tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes, mb)
	} else {
		ogl.lg.Infof("Created tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes, mb)
	}
}

func (ogl *OpenGL41Renderer) CreateTextureFromImage(img image.Image) uint32 {
	var texid uint32
	gl.GenTextures(1, &texid)

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	gl.BindTexture(gl.TEXTURE_2D, texid)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	ny, nx := img.Bounds().Dy(), img.Bounds().Dx()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, nx, ny))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(nx), int32(ny), 0, gl.RGBA,
		gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))

	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))
	oglCheck()

	ogl.createdTexture(texid, 4*nx*ny)
	return texid
}

func (ogl *OpenGL41Renderer) DestroyTexture(texid uint32) {
	gl.DeleteTextures(1, &texid)
	delete(ogl.createdTextures, texid)
}

func (ogl *OpenGL41Renderer) CreateProgram(vertex, fragment string) (uint32, error) {
	return newProgram(vertex, fragment)
}

func (ogl *OpenGL41Renderer) CreateRenderTarget(width, height int) (RenderTarget, error) {
	var fbo, texture uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA,
		gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.DeleteFramebuffers(1, &fbo)
		gl.DeleteTextures(1, &texture)
		return RenderTarget{}, fmt.Errorf("%dx%d: incomplete framebuffer", width, height)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	oglCheck()

	ogl.createdTexture(texture, 4*width*height)
	return RenderTarget{FBO: fbo, Texture: texture, Width: int32(width), Height: int32(height)}, nil
}

func (ogl *OpenGL41Renderer) RenderCommandBuffer(cb *CommandBuffer) RendererStats {
	var stats RendererStats
	stats.nBuffers++
	stats.bufferBytes += 4 * len(cb.Buf)

	i := 0
	ui32 := func() uint32 {
		v := cb.Buf[i]
		i++
		return v
	}
	i32 := func() int32 {
		return int32(ui32())
	}
	float := func() float32 {
		return gomath.Float32frombits(ui32())
	}

	for i < len(cb.Buf) {
		oglCheck()

		cmd := cb.Buf[i]
		i++
		switch cmd {
		case RendererLoadProjectionMatrix:
			ptr := unsafe.Pointer(&cb.Buf[i])
			gl.UniformMatrix4fv(ogl.uniformLoc(UniformProjection), 1, false, (*float32)(ptr))
			i += 16

		case RendererClearRGBA:
			r := float()
			g := float()
			b := float()
			a := float()
			gl.ClearColor(r, g, b, a)
			gl.Clear(gl.COLOR_BUFFER_BIT)

		case RendererViewport:
			x := i32()
			y := i32()
			w := i32()
			h := i32()
			gl.Viewport(x, y, w, h)

		case RendererBlend:
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

		case RendererBlendAdditive:
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.ONE, gl.ONE)

		case RendererDisableBlend:
			gl.Disable(gl.BLEND)

		case RendererSetRGBA:
			r := float()
			g := float()
			b := float()
			a := float()
			gl.Uniform4f(ogl.uniformLoc(UniformColor), r, g, b, a)

		case RendererFloatBuffer, RendererIntBuffer:
			// Skip ahead; draw commands index into these by offset.
			i += int(i32())

		case RendererVertexArray:
			offset := ui32()
			nBytes := i32()
			nc := i32()
			stride := i32()

			ptr := unsafe.Add(unsafe.Pointer(&cb.Buf[0]), offset)

			gl.BindBuffer(gl.ARRAY_BUFFER, ogl.vbo.position)
			gl.BufferData(gl.ARRAY_BUFFER, int(nBytes), ptr, gl.DYNAMIC_DRAW)

			gl.EnableVertexAttribArray(0)
			gl.VertexAttribPointer(0, nc, gl.FLOAT, false, stride, nil)

		case RendererDisableVertexArray:
			gl.DisableVertexAttribArray(0)

		case RendererRGB32Array:
			offset := ui32()
			nBytes := i32()
			nc := i32()
			stride := i32()

			ptr := unsafe.Add(unsafe.Pointer(&cb.Buf[0]), offset)

			gl.BindBuffer(gl.ARRAY_BUFFER, ogl.vbo.color)
			gl.BufferData(gl.ARRAY_BUFFER, int(nBytes), ptr, gl.DYNAMIC_DRAW)

			gl.EnableVertexAttribArray(1)
			gl.VertexAttribPointer(1, nc, gl.FLOAT, false, stride, nil)

		case RendererDisableColorArray:
			gl.DisableVertexAttribArray(1)
			gl.VertexAttrib3f(1, 1, 1, 1)

		case RendererLineWidth:
			gl.LineWidth(float())

		case RendererDrawLines:
			offset := ui32()
			nBytes := i32()
			count := i32()

			ptr := unsafe.Add(unsafe.Pointer(&cb.Buf[0]), offset)
			gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ogl.vbo.indices)
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, int(nBytes), ptr, gl.DYNAMIC_DRAW)

			gl.DrawElements(gl.LINES, count, gl.UNSIGNED_INT, nil)

			stats.nDrawCalls++
			stats.nLines += int(count / 2)

		case RendererUseProgram:
			ogl.useProgram(ui32())

		case RendererBindTarget:
			fbo := ui32()
			w := i32()
			h := i32()
			gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
			gl.Viewport(0, 0, w, h)

		case RendererUnbindTarget:
			w := i32()
			h := i32()
			gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
			gl.Viewport(0, 0, w, h)

		case RendererUniform1f:
			u := Uniform(i32())
			gl.Uniform1f(ogl.uniformLoc(u), float())

		case RendererUniform2f:
			u := Uniform(i32())
			v0 := float()
			v1 := float()
			gl.Uniform2f(ogl.uniformLoc(u), v0, v1)

		case RendererBindTexture:
			unit := i32()
			tex := ui32()
			u := Uniform(i32())
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.Uniform1i(ogl.uniformLoc(u), unit)

		case RendererFullscreenQuad:
			ogl.drawFullscreenQuad()
			stats.nDrawCalls++
			stats.nTriangles += 2

		case RendererCallBuffer:
			idx := ui32()
			s2 := ogl.RenderCommandBuffer(&cb.called[idx])
			stats.Merge(s2)

		case RendererResetState:
			gl.Disable(gl.BLEND)
			gl.DisableVertexAttribArray(0)
			gl.DisableVertexAttribArray(1)
			gl.VertexAttrib3f(1, 1, 1, 1)
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, 0)
			ogl.useProgram(ogl.vectorProgram)

		default:
			ogl.lg.Error("unhandled command")
		}
	}

	return stats
}

func (ogl *OpenGL41Renderer) drawFullscreenQuad() {
	p := [][2]float32{{-1, 1}, {-1, -1}, {1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	uv := [][2]float32{{0, 1}, {0, 0}, {1, 0}, {1, 0}, {1, 1}, {0, 1}}

	gl.BindBuffer(gl.ARRAY_BUFFER, ogl.vbo.position)
	gl.BufferData(gl.ARRAY_BUFFER, 2*4*len(p), unsafe.Pointer(&p[0]), gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)

	gl.BindBuffer(gl.ARRAY_BUFFER, ogl.vbo.uv)
	gl.BufferData(gl.ARRAY_BUFFER, 2*4*len(uv), unsafe.Pointer(&uv[0]), gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 2*4, nil)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.DisableVertexAttribArray(0)
	gl.DisableVertexAttribArray(1)
	oglCheck()
}

// https://github.com/go-gl/example/blob/master/gl41core-cube/cube.go
func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))

		return 0, fmt.Errorf("failed to link program: %v", infoLog)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))

		return 0, fmt.Errorf("failed to compile %v: %v", source, infoLog)
	}

	return shader, nil
}
