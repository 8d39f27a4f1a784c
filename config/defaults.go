// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the texelterm configuration file.

package config

// TerminalSection is the section holding the terminal settings.
const TerminalSection = "texelterm"

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults(TerminalSection, Section{
		"scrollback_limit": 10000,
		"tab_size":         4,
		"shell":            "/bin/bash",
		"term":             "xterm-256color",
		"base_fg":          "default",
		"base_bg":          "default",
		"archive_path":     "",
		"log_level":        "info",
	})
}
