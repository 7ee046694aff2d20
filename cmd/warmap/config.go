// cmd/warmap/config.go
// Copyright(c) 2025 warmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/warroom/warmap/log"
	"github.com/warroom/warmap/post"
	"github.com/warroom/warmap/sim"
)

// Config remembers the window placement and display settings between
// runs; it is stored as JSON in the user's config directory.
type Config struct {
	WindowSize     [2]int `json:"window_size"`
	WindowPosition [2]int `json:"window_position"`

	StartInFullScreen bool `json:"fullscreen"`
	FullScreenMonitor int  `json:"fullscreen_monitor"`

	CRTMode        post.CRTMode `json:"crt_mode"`
	LaunchInterval float32      `json:"launch_interval"`
}

func defaultConfig() Config {
	return Config{
		CRTMode:        post.ModeFull,
		LaunchInterval: sim.DefaultLaunchInterval,
	}
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "warmap", "config.json"), nil
}

// LoadConfig returns the saved config, or the defaults if there is no
// saved config or it can't be read.
func LoadConfig(lg *log.Logger) Config {
	config := defaultConfig()

	path, err := configPath()
	if err != nil {
		lg.Warnf("unable to find config directory: %v", err)
		return config
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			lg.Warnf("%s: %v", path, err)
		}
		return config
	}
	if err := json.Unmarshal(b, &config); err != nil {
		lg.Errorf("%s: %v", path, err)
		return defaultConfig()
	}

	if config.CRTMode < post.ModeOff || config.CRTMode > post.ModeFull {
		config.CRTMode = post.ModeFull
	}
	if config.LaunchInterval <= 0 {
		config.LaunchInterval = sim.DefaultLaunchInterval
	}
	lg.Debug("loaded config", "path", path)
	return config
}

// SaveConfig writes the config back out, creating the config
// directory if necessary.
func (c Config) Save(lg *log.Logger) {
	path, err := configPath()
	if err != nil {
		lg.Warnf("unable to find config directory: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		lg.Errorf("%s: %v", filepath.Dir(path), err)
		return
	}

	b, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		lg.Errorf("unable to marshal config: %v", err)
		return
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		lg.Errorf("%s: %v", path, err)
		return
	}
	lg.Debug("saved config", "path", path)
}
