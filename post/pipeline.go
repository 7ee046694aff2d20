// post/pipeline.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package post

import (
	"github.com/warroom/warmap/log"
	"github.com/warroom/warmap/renderer"
)

const (
	// BarrelDistortion is the screen curvature coefficient for the
	// barrel pass in FULL mode.
	BarrelDistortion = 0.08
	// ChromaticIntensity is the RGB fringe offset in pixels.
	ChromaticIntensity = 1.8

	// FULL mode composite settings.
	FullNoise   = 0.03
	FullBloom   = 0.35
	FullFlicker = 0.02

	// LIGHT mode gets subtler noise and no bloom or flicker.
	LightNoise = 0.02
)

// Pipeline owns the offscreen render targets, mask textures and shader
// programs for CRT post-processing. The scene is drawn into an
// offscreen target via BeginScene/EndScene and then Present encodes
// the passes for the current CRTMode into a command buffer.
type Pipeline struct {
	r  renderer.Renderer
	lg *log.Logger

	mode          CRTMode
	width, height int
	outW, outH    int

	scene, postA, postB renderer.RenderTarget
	ping                [2]renderer.RenderTarget

	scanlineTex, vignetteTex uint32

	screenProg, barrelProg, chromaticProg uint32
	blurProg, compositeProg               uint32

	// disabled is set if target allocation failed at startup; the
	// scene is then drawn directly to the screen and Present is a
	// no-op.
	disabled bool
	warned   bool
}

// New allocates the render targets, mask textures and shader programs
// for a width x height scene. Failures are logged and degrade the
// pipeline rather than being fatal: a failed program disables the
// modes that need it and a failed render target disables
// post-processing entirely.
func New(r renderer.Renderer, lg *log.Logger, width, height int, mode CRTMode) *Pipeline {
	p := &Pipeline{r: r, lg: lg, mode: mode, width: width, height: height,
		outW: width, outH: height}

	var err error
	targets := []struct {
		name string
		t    *renderer.RenderTarget
	}{
		{"scene", &p.scene},
		{"postA", &p.postA},
		{"postB", &p.postB},
		{"ping0", &p.ping[0]},
		{"ping1", &p.ping[1]},
	}
	for _, tgt := range targets {
		*tgt.t, err = r.CreateRenderTarget(width, height)
		if err != nil {
			lg.Errorf("%s: unable to allocate render target: %v", tgt.name, err)
			p.disabled = true
			return p
		}
	}

	p.scanlineTex = r.CreateTextureFromImage(ScanlineImage(width, height))
	p.vignetteTex = r.CreateTextureFromImage(VignetteImage(width, height))

	programs := []struct {
		name string
		frag string
		prog *uint32
	}{
		{"screen", screenFragmentShader, &p.screenProg},
		{"barrel", barrelFragmentShader, &p.barrelProg},
		{"chromatic", chromaticFragmentShader, &p.chromaticProg},
		{"blur", blurFragmentShader, &p.blurProg},
		{"composite", compositeFragmentShader, &p.compositeProg},
	}
	for _, pr := range programs {
		*pr.prog, err = r.CreateProgram(quadVertexShader, pr.frag)
		if err != nil {
			lg.Errorf("%s: unable to compile shader: %v", pr.name, err)
			*pr.prog = 0
		}
	}

	return p
}

// Mode returns the currently selected CRT mode.
func (p *Pipeline) Mode() CRTMode { return p.mode }

// SetMode selects a CRT mode directly.
func (p *Pipeline) SetMode(m CRTMode) { p.mode = m }

// SetOutputSize tells the pipeline the dimensions of the framebuffer
// it presents into; the window may have been resized or moved to a
// display with a different pixel density.
func (p *Pipeline) SetOutputSize(w, h int) {
	if w > 0 && h > 0 {
		p.outW, p.outH = w, h
	}
}

// Toggle advances to the next CRT mode in the cycle.
func (p *Pipeline) Toggle() CRTMode {
	p.mode = p.mode.Next()
	return p.mode
}

// effectiveMode accounts for shader compilation failures: any mode
// whose programs are unavailable falls back to OFF.
func (p *Pipeline) effectiveMode() CRTMode {
	m := p.mode
	if m == ModeFull && (p.barrelProg == 0 || p.chromaticProg == 0 || p.blurProg == 0 ||
		p.compositeProg == 0) {
		m = ModeLight
	}
	if m == ModeLight && p.compositeProg == 0 {
		m = ModeOff
	}
	if !p.warned && m != p.mode {
		p.lg.Warnf("CRT mode %s unavailable, using %s", p.mode, m)
		p.warned = true
	}
	return m
}

// BeginScene directs subsequent drawing into the offscreen scene
// target, cleared to black, with additive blending so overlapping glow
// strokes accumulate brightness.
func (p *Pipeline) BeginScene(cb *renderer.CommandBuffer) {
	// Restore the vector program and attribute state; the previous
	// frame's Present leaves a post-processing program bound.
	cb.ResetState()
	if !p.disabled {
		cb.BindTarget(p.scene)
	}
	cb.ClearRGB(renderer.RGB{})
	cb.BlendAdditive()
}

// EndScene finishes offscreen scene rendering.
func (p *Pipeline) EndScene(cb *renderer.CommandBuffer) {
	cb.DisableBlend()
	if !p.disabled {
		cb.UnbindTarget(p.outW, p.outH)
	}
}

// Present encodes the post-processing passes for the current mode,
// ending with a fullscreen quad drawn to the default framebuffer. now
// is a monotonic time in seconds used to animate noise and flicker.
func (p *Pipeline) Present(cb *renderer.CommandBuffer, now float32) {
	if p.disabled {
		return
	}

	w, h := float32(p.width), float32(p.height)
	switch p.effectiveMode() {
	case ModeOff:
		if p.screenProg == 0 {
			if !p.warned {
				p.lg.Errorf("no screen shader, scene cannot be presented")
				p.warned = true
			}
			return
		}
		cb.UseProgram(p.screenProg)
		cb.BindTexture(0, p.scene.Texture, renderer.UniformScreenTexture)
		cb.FullscreenQuad()

	case ModeLight:
		// Composite straight from the scene; the scene texture also
		// stands in for the bloom input, with bloomIntensity zero.
		cb.UseProgram(p.compositeProg)
		cb.Uniform1f(renderer.UniformTime, now)
		cb.Uniform1f(renderer.UniformNoiseIntensity, LightNoise)
		cb.Uniform1f(renderer.UniformBloomIntensity, 0)
		cb.Uniform1f(renderer.UniformFlickerIntensity, 0)
		cb.BindTexture(0, p.scene.Texture, renderer.UniformScreenTexture)
		cb.BindTexture(1, p.scanlineTex, renderer.UniformScanlineTexture)
		cb.BindTexture(2, p.vignetteTex, renderer.UniformVignetteTexture)
		cb.BindTexture(3, p.scene.Texture, renderer.UniformBloomTexture)
		cb.FullscreenQuad()

	case ModeFull:
		// scene -> postA: barrel distortion
		cb.UseProgram(p.barrelProg)
		cb.BindTarget(p.postA)
		cb.Uniform1f(renderer.UniformDistortion, BarrelDistortion)
		cb.BindTexture(0, p.scene.Texture, renderer.UniformScreenTexture)
		cb.FullscreenQuad()

		// postA -> postB: chromatic aberration
		cb.UseProgram(p.chromaticProg)
		cb.BindTarget(p.postB)
		cb.Uniform1f(renderer.UniformIntensity, ChromaticIntensity)
		cb.Uniform2f(renderer.UniformResolution, w, h)
		cb.BindTexture(0, p.postA.Texture, renderer.UniformScreenTexture)
		cb.FullscreenQuad()

		// postB -> ping0 -> ping1: separable Gaussian for bloom
		cb.UseProgram(p.blurProg)
		cb.BindTarget(p.ping[0])
		cb.Uniform2f(renderer.UniformDirection, 1, 0)
		cb.Uniform2f(renderer.UniformResolution, w, h)
		cb.BindTexture(0, p.postB.Texture, renderer.UniformScreenTexture)
		cb.FullscreenQuad()

		cb.BindTarget(p.ping[1])
		cb.Uniform2f(renderer.UniformDirection, 0, 1)
		cb.BindTexture(0, p.ping[0].Texture, renderer.UniformScreenTexture)
		cb.FullscreenQuad()

		// composite to the screen
		cb.UseProgram(p.compositeProg)
		cb.UnbindTarget(p.outW, p.outH)
		cb.Uniform1f(renderer.UniformTime, now)
		cb.Uniform1f(renderer.UniformNoiseIntensity, FullNoise)
		cb.Uniform1f(renderer.UniformBloomIntensity, FullBloom)
		cb.Uniform1f(renderer.UniformFlickerIntensity, FullFlicker)
		cb.BindTexture(0, p.postB.Texture, renderer.UniformScreenTexture)
		cb.BindTexture(1, p.scanlineTex, renderer.UniformScanlineTexture)
		cb.BindTexture(2, p.vignetteTex, renderer.UniformVignetteTexture)
		cb.BindTexture(3, p.ping[1].Texture, renderer.UniformBloomTexture)
		cb.FullscreenQuad()
	}
}
