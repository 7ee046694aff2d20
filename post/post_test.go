// post/post_test.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package post

import (
	"errors"
	"image"
	gomath "math"
	"testing"

	"github.com/warroom/warmap/renderer"
)

func TestCRTModeCycle(t *testing.T) {
	m := ModeOff
	want := []CRTMode{ModeLight, ModeFull, ModeOff}
	for i, w := range want {
		m = m.Next()
		if m != w {
			t.Errorf("toggle %d: got %s, want %s", i+1, m, w)
		}
	}
	if m != ModeOff {
		t.Errorf("three toggles should return to OFF, got %s", m)
	}
}

func TestScanlineImage(t *testing.T) {
	img := ScanlineImage(8, 9)
	for y := range 9 {
		want := uint8(255)
		if y%3 == 0 {
			want = 200
		}
		c := img.RGBAAt(3, y)
		if c.R != want || c.G != want || c.B != want || c.A != 255 {
			t.Errorf("row %d: got %v, want gray %d", y, c, want)
		}
	}
}

func TestVignetteImage(t *testing.T) {
	img := VignetteImage(64, 64)
	center := img.RGBAAt(32, 32)
	corner := img.RGBAAt(0, 0)
	if center.R < 250 {
		t.Errorf("center should be nearly full bright, got %d", center.R)
	}
	if corner.R >= center.R {
		t.Errorf("corner %d should be darker than center %d", corner.R, center.R)
	}
	// At the exact corner d == maxd so the falloff is the full 0.6.
	if want := uint8(0.4 * 255); corner.R > want+2 || corner.R < want-2 {
		t.Errorf("corner: got %d, want about %d", corner.R, want)
	}
}

func TestCompositePixelBlackStaysBlack(t *testing.T) {
	black := renderer.RGB{}
	for _, tm := range []float32{0, 0.5, 17.3} {
		for _, noise := range []float32{0, 0.25, 0.999} {
			c := CompositePixel(black, black, 0.78, 0.5, noise, tm, FullNoise, FullBloom, FullFlicker)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				t.Errorf("black scene at t=%g noise=%g: got %v", tm, noise, c)
			}
		}
	}
}

func TestCompositePixelBloom(t *testing.T) {
	scene := renderer.RGB{R: 0.2, G: 0.2, B: 0.2}
	bloom := renderer.RGB{R: 1, G: 0, B: 0}
	c := CompositePixel(scene, bloom, 1, 1, 0, 0, 0, 0.35, 0)
	if gomath.Abs(float64(c.R-0.55)) > 1e-5 {
		t.Errorf("got R=%g, want 0.55", c.R)
	}
	if gomath.Abs(float64(c.G-0.2)) > 1e-5 {
		t.Errorf("got G=%g, want 0.2", c.G)
	}
}

// testRenderer hands out handles without touching the GPU so that the
// command streams the pipeline encodes can be inspected.
type testRenderer struct {
	next uint32
}

func (r *testRenderer) CreateTextureFromImage(img image.Image) uint32 {
	r.next++
	return r.next
}

func (r *testRenderer) DestroyTexture(id uint32) {}

func (r *testRenderer) CreateProgram(vertex, fragment string) (uint32, error) {
	r.next++
	return r.next, nil
}

func (r *testRenderer) CreateRenderTarget(width, height int) (renderer.RenderTarget, error) {
	fbo := r.next + 1
	tex := r.next + 2
	r.next += 2
	return renderer.RenderTarget{FBO: fbo, Texture: tex, Width: int32(width), Height: int32(height)}, nil
}

func (r *testRenderer) RenderCommandBuffer(*renderer.CommandBuffer) renderer.RendererStats {
	return renderer.RendererStats{}
}

func (r *testRenderer) Dispose() {}

func makePipeline(t *testing.T, mode CRTMode) *Pipeline {
	t.Helper()
	p := New(&testRenderer{}, nil, 64, 36, mode)
	if p.disabled {
		t.Fatal("pipeline should not be disabled")
	}
	return p
}

func present(p *Pipeline) []renderer.DecodedCommand {
	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	p.Present(cb, 1)
	return renderer.DecodeCommands(cb)
}

// pass is one stage of a decoded present stream: the program in use,
// the target bound for it (0 for the screen) and the textures and
// float uniforms set before its fullscreen quad.
type pass struct {
	program  uint32
	fbo      uint32
	textures map[renderer.Uniform]uint32
	floats   map[renderer.Uniform]float32
}

func decodePasses(cmds []renderer.DecodedCommand) []pass {
	var passes []pass
	cur := pass{textures: make(map[renderer.Uniform]uint32), floats: make(map[renderer.Uniform]float32)}
	var program, fbo uint32
	for _, c := range cmds {
		switch c.Cmd {
		case renderer.RendererUseProgram:
			program = uint32(c.Int(0))
		case renderer.RendererBindTarget:
			fbo = uint32(c.Int(0))
		case renderer.RendererUnbindTarget:
			fbo = 0
		case renderer.RendererBindTexture:
			cur.textures[renderer.Uniform(c.Int(2))] = uint32(c.Int(1))
		case renderer.RendererUniform1f:
			cur.floats[renderer.Uniform(c.Int(0))] = c.Float(1)
		case renderer.RendererFullscreenQuad:
			cur.program, cur.fbo = program, fbo
			passes = append(passes, cur)
			cur = pass{textures: make(map[renderer.Uniform]uint32), floats: make(map[renderer.Uniform]float32)}
		}
	}
	return passes
}

func TestPresentOff(t *testing.T) {
	p := makePipeline(t, ModeOff)
	passes := decodePasses(present(p))
	if len(passes) != 1 {
		t.Fatalf("got %d passes, want 1", len(passes))
	}
	if passes[0].program != p.screenProg {
		t.Errorf("got program %d, want screen program %d", passes[0].program, p.screenProg)
	}
	if passes[0].fbo != 0 {
		t.Errorf("OFF should draw to the screen, got fbo %d", passes[0].fbo)
	}
	if tex := passes[0].textures[renderer.UniformScreenTexture]; tex != p.scene.Texture {
		t.Errorf("got texture %d, want scene texture %d", tex, p.scene.Texture)
	}
}

func TestPresentLight(t *testing.T) {
	p := makePipeline(t, ModeLight)
	passes := decodePasses(present(p))
	if len(passes) != 1 {
		t.Fatalf("got %d passes, want 1", len(passes))
	}
	ps := passes[0]
	if ps.program != p.compositeProg {
		t.Errorf("got program %d, want composite program %d", ps.program, p.compositeProg)
	}
	if ps.textures[renderer.UniformScreenTexture] != p.scene.Texture {
		t.Errorf("scene should be the composite input")
	}
	if ps.textures[renderer.UniformBloomTexture] != p.scene.Texture {
		t.Errorf("scene should also stand in for the bloom input")
	}
	if v := ps.floats[renderer.UniformBloomIntensity]; v != 0 {
		t.Errorf("bloom intensity should be 0 in LIGHT mode, got %g", v)
	}
	if v := ps.floats[renderer.UniformFlickerIntensity]; v != 0 {
		t.Errorf("flicker intensity should be 0 in LIGHT mode, got %g", v)
	}
	if v := ps.floats[renderer.UniformNoiseIntensity]; v != LightNoise {
		t.Errorf("got noise intensity %g, want %g", v, float32(LightNoise))
	}
}

func TestPresentFull(t *testing.T) {
	p := makePipeline(t, ModeFull)
	passes := decodePasses(present(p))
	if len(passes) != 5 {
		t.Fatalf("got %d passes, want 5", len(passes))
	}

	barrel, chromatic, blurH, blurV, composite := passes[0], passes[1], passes[2], passes[3], passes[4]

	if barrel.program != p.barrelProg || barrel.fbo != p.postA.FBO {
		t.Errorf("pass 0 should be barrel into postA")
	}
	if barrel.textures[renderer.UniformScreenTexture] != p.scene.Texture {
		t.Errorf("barrel should read the scene texture")
	}
	if v := barrel.floats[renderer.UniformDistortion]; v != BarrelDistortion {
		t.Errorf("got distortion %g, want %g", v, float32(BarrelDistortion))
	}

	if chromatic.program != p.chromaticProg || chromatic.fbo != p.postB.FBO {
		t.Errorf("pass 1 should be chromatic aberration into postB")
	}
	if chromatic.textures[renderer.UniformScreenTexture] != p.postA.Texture {
		t.Errorf("chromatic should read postA")
	}
	if v := chromatic.floats[renderer.UniformIntensity]; v != ChromaticIntensity {
		t.Errorf("got intensity %g, want %g", v, float32(ChromaticIntensity))
	}

	if blurH.program != p.blurProg || blurH.fbo != p.ping[0].FBO {
		t.Errorf("pass 2 should be the horizontal blur into ping0")
	}
	if blurH.textures[renderer.UniformScreenTexture] != p.postB.Texture {
		t.Errorf("horizontal blur should read postB")
	}
	if blurV.program != p.blurProg || blurV.fbo != p.ping[1].FBO {
		t.Errorf("pass 3 should be the vertical blur into ping1")
	}
	if blurV.textures[renderer.UniformScreenTexture] != p.ping[0].Texture {
		t.Errorf("vertical blur should read ping0")
	}

	if composite.program != p.compositeProg || composite.fbo != 0 {
		t.Errorf("pass 4 should be the composite to the screen")
	}
	if composite.textures[renderer.UniformScreenTexture] != p.postB.Texture {
		t.Errorf("composite should read postB for the scene")
	}
	if composite.textures[renderer.UniformScanlineTexture] != p.scanlineTex {
		t.Errorf("composite should read the scanline mask")
	}
	if composite.textures[renderer.UniformVignetteTexture] != p.vignetteTex {
		t.Errorf("composite should read the vignette mask")
	}
	if composite.textures[renderer.UniformBloomTexture] != p.ping[1].Texture {
		t.Errorf("composite should read ping1 for bloom")
	}
	if v := composite.floats[renderer.UniformBloomIntensity]; v != FullBloom {
		t.Errorf("got bloom intensity %g, want %g", v, float32(FullBloom))
	}
	if v := composite.floats[renderer.UniformNoiseIntensity]; v != FullNoise {
		t.Errorf("got noise intensity %g, want %g", v, float32(FullNoise))
	}
}

// failingProgramRenderer refuses to compile one fragment shader so
// that mode fallback can be checked.
type failingProgramRenderer struct {
	testRenderer
	failFrag string
}

func (r *failingProgramRenderer) CreateProgram(vertex, fragment string) (uint32, error) {
	if fragment == r.failFrag {
		return 0, errors.New("shader compilation failed")
	}
	return r.testRenderer.CreateProgram(vertex, fragment)
}

func TestPresentCompositeFallback(t *testing.T) {
	// Without the composite program neither FULL nor LIGHT can reach
	// the screen; both should degrade all the way to OFF.
	for _, mode := range []CRTMode{ModeFull, ModeLight} {
		p := New(&failingProgramRenderer{failFrag: compositeFragmentShader}, nil, 64, 36, mode)
		if p.disabled {
			t.Fatal("pipeline should not be disabled")
		}
		passes := decodePasses(present(p))
		if len(passes) != 1 {
			t.Fatalf("%s: got %d passes, want 1", mode, len(passes))
		}
		if passes[0].program != p.screenProg {
			t.Errorf("%s: got program %d, want screen program %d", mode, passes[0].program, p.screenProg)
		}
		if passes[0].fbo != 0 {
			t.Errorf("%s: should draw to the screen, got fbo %d", mode, passes[0].fbo)
		}
	}
}

func TestBeginEndScene(t *testing.T) {
	p := makePipeline(t, ModeFull)
	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)
	p.BeginScene(cb)
	p.EndScene(cb)

	cmds := renderer.DecodeCommands(cb)
	var got []int
	for _, c := range cmds {
		got = append(got, c.Cmd)
	}
	want := []int{renderer.RendererResetState, renderer.RendererBindTarget,
		renderer.RendererClearRGBA, renderer.RendererBlendAdditive,
		renderer.RendererDisableBlend, renderer.RendererUnbindTarget}
	if len(got) != len(want) {
		t.Fatalf("got commands %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got commands %v, want %v", got, want)
		}
	}
	if uint32(cmds[1].Int(0)) != p.scene.FBO {
		t.Errorf("BeginScene should bind the scene target")
	}
}

// A scene draw must never execute with the previous frame's
// post-processing program still bound.
func TestSceneProgramRestoredBetweenFrames(t *testing.T) {
	p := makePipeline(t, ModeFull)
	cb := renderer.GetCommandBuffer()
	defer renderer.ReturnCommandBuffer(cb)

	for frame := 0; frame < 2; frame++ {
		p.BeginScene(cb)
		renderer.AddGlowLine(cb, [2]float32{0, 0}, [2]float32{5, 5},
			renderer.RGBA{G: 1, B: 1, A: 1}, 2)
		p.EndScene(cb)
		p.Present(cb, float32(frame))
	}

	restored := false
	for i, c := range renderer.DecodeCommands(cb) {
		switch c.Cmd {
		case renderer.RendererResetState:
			restored = true
		case renderer.RendererUseProgram:
			restored = false
		case renderer.RendererDrawLines:
			if !restored {
				t.Fatalf("command %d: scene draw without restoring the vector program", i)
			}
		}
	}
}
