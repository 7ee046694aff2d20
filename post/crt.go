// post/crt.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package post

// CRTMode selects how much CRT-style post-processing is applied when
// the scene is presented.
type CRTMode int

const (
	// ModeOff presents the scene unmodified.
	ModeOff CRTMode = iota
	// ModeLight applies scanlines, vignette and subtle noise.
	ModeLight
	// ModeFull additionally applies barrel distortion, chromatic
	// aberration, bloom and flicker.
	ModeFull
)

func (m CRTMode) String() string {
	switch m {
	case ModeOff:
		return "OFF"
	case ModeLight:
		return "LIGHT"
	case ModeFull:
		return "FULL"
	}
	return "unknown"
}

// Next returns the mode that follows m in the toggle cycle
// OFF -> LIGHT -> FULL -> OFF.
func (m CRTMode) Next() CRTMode {
	switch m {
	case ModeOff:
		return ModeLight
	case ModeLight:
		return ModeFull
	default:
		return ModeOff
	}
}
