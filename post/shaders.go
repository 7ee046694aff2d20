// post/shaders.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package post

// All of the post-processing passes share a single vertex shader that
// passes the fullscreen quad through untransformed.
const quadVertexShader = `
#version 410 core
layout (location = 0) in vec2 inPosition;
layout (location = 1) in vec2 inUV;
out vec2 v2fUV;

void main() {
    gl_Position = vec4(inPosition, 0.0, 1.0);
    v2fUV = inUV;
}
`

// screenFragmentShader copies a texture to the output unmodified; it is
// the entire pipeline when CRT processing is off.
const screenFragmentShader = `
#version 410 core
uniform sampler2D screenTexture;
in vec2 v2fUV;
out vec4 outColor;

void main() {
    outColor = texture(screenTexture, v2fUV);
}
`

// barrelFragmentShader bows the image outward like a curved CRT face.
// Samples pushed outside the texture come back black.
const barrelFragmentShader = `
#version 410 core
uniform sampler2D screenTexture;
uniform float distortion;
in vec2 v2fUV;
out vec4 outColor;

void main() {
    vec2 uv = v2fUV * 2.0 - 1.0;
    float r2 = dot(uv, uv);
    uv *= 1.0 + distortion * r2;
    uv = uv * 0.5 + 0.5;
    if (uv.x < 0.0 || uv.x > 1.0 || uv.y < 0.0 || uv.y > 1.0) {
        outColor = vec4(0.0, 0.0, 0.0, 1.0);
    } else {
        outColor = texture(screenTexture, uv);
    }
}
`

// chromaticFragmentShader offsets the red and blue channels in opposite
// directions by intensity pixels to fake color fringing.
const chromaticFragmentShader = `
#version 410 core
uniform sampler2D screenTexture;
uniform float intensity;
uniform vec2 resolution;
in vec2 v2fUV;
out vec4 outColor;

void main() {
    vec2 offset = vec2(intensity) / resolution;
    float r = texture(screenTexture, v2fUV + offset).r;
    float g = texture(screenTexture, v2fUV).g;
    float b = texture(screenTexture, v2fUV - offset).b;
    outColor = vec4(r, g, b, 1.0);
}
`

// blurFragmentShader is a separable 9-tap Gaussian; direction selects
// the horizontal or vertical pass.
const blurFragmentShader = `
#version 410 core
uniform sampler2D screenTexture;
uniform vec2 direction;
uniform vec2 resolution;
in vec2 v2fUV;
out vec4 outColor;

void main() {
    float weights[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);
    vec2 texel = direction / resolution;
    vec3 result = texture(screenTexture, v2fUV).rgb * weights[0];
    for (int i = 1; i < 5; i++) {
        result += texture(screenTexture, v2fUV + texel * float(i)).rgb * weights[i];
        result += texture(screenTexture, v2fUV - texel * float(i)).rgb * weights[i];
    }
    outColor = vec4(result, 1.0);
}
`

// compositeFragmentShader combines the processed scene with the bloom
// texture and then modulates by the scanline mask, the vignette mask,
// per-pixel noise and a global flicker. All of the modulation is
// multiplicative so black input stays black.
const compositeFragmentShader = `
#version 410 core
uniform sampler2D screenTexture;
uniform sampler2D scanlineTexture;
uniform sampler2D vignetteTexture;
uniform sampler2D bloomTexture;
uniform float time;
uniform float noiseIntensity;
uniform float bloomIntensity;
uniform float flickerIntensity;
in vec2 v2fUV;
out vec4 outColor;

float rand(vec2 co) {
    return fract(sin(dot(co, vec2(12.9898, 78.233))) * 43758.5453);
}

void main() {
    vec3 col = texture(screenTexture, v2fUV).rgb;
    col += texture(bloomTexture, v2fUV).rgb * bloomIntensity;
    col *= texture(scanlineTexture, v2fUV).r;
    col *= texture(vignetteTexture, v2fUV).r;
    col *= 1.0 - noiseIntensity * rand(v2fUV + vec2(fract(time), 0.0));
    col *= 1.0 + flickerIntensity * sin(time * 60.0);
    outColor = vec4(col, 1.0);
}
`
