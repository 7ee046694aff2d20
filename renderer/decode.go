// renderer/decode.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	gomath "math"
)

// DecodedCommand is a single command from a CommandBuffer together with
// its raw arguments (inline vertex/index buffer contents are skipped).
// Decoding a command stream is useful for tests and debugging; the
// rendering backends process the raw buffer directly.
type DecodedCommand struct {
	Cmd  int
	Args []uint32
}

// Float returns the i'th argument interpreted as a float32.
func (d DecodedCommand) Float(i int) float32 {
	return gomath.Float32frombits(d.Args[i])
}

// Int returns the i'th argument interpreted as an int.
func (d DecodedCommand) Int(i int) int {
	return int(int32(d.Args[i]))
}

// DecodeCommands returns the commands encoded in the command buffer in
// order, not following calls into other buffers.
func DecodeCommands(cb *CommandBuffer) []DecodedCommand {
	// Number of argument words per command; -1 marks the commands
	// followed by an inline buffer whose length is its first argument.
	argCount := map[uint32]int{
		RendererLoadProjectionMatrix: 16,
		RendererClearRGBA:            4,
		RendererViewport:             4,
		RendererBlend:                0,
		RendererBlendAdditive:        0,
		RendererDisableBlend:         0,
		RendererSetRGBA:              4,
		RendererFloatBuffer:          -1,
		RendererIntBuffer:            -1,
		RendererVertexArray:          4,
		RendererDisableVertexArray:   0,
		RendererRGB32Array:           4,
		RendererDisableColorArray:    0,
		RendererLineWidth:            1,
		RendererDrawLines:            3,
		RendererUseProgram:           1,
		RendererBindTarget:           3,
		RendererUnbindTarget:         2,
		RendererUniform1f:            2,
		RendererUniform2f:            3,
		RendererBindTexture:          3,
		RendererFullscreenQuad:       0,
		RendererCallBuffer:           1,
		RendererResetState:           0,
	}

	var cmds []DecodedCommand
	for i := 0; i < len(cb.Buf); {
		cmd := cb.Buf[i]
		i++

		n, ok := argCount[cmd]
		if !ok {
			// Unknown command; decoding can't continue past it.
			return cmds
		}
		if n == -1 {
			size := int(cb.Buf[i])
			cmds = append(cmds, DecodedCommand{Cmd: int(cmd), Args: cb.Buf[i : i+1]})
			i += 1 + size
		} else {
			cmds = append(cmds, DecodedCommand{Cmd: int(cmd), Args: cb.Buf[i : i+n]})
			i += n
		}
	}
	return cmds
}
