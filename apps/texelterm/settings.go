// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/settings.go
// Summary: Builds terminal options from the texelterm config section.

package texelterm

import (
	"fmt"

	"github.com/framegrace/texelsession/apps/texelterm/engine"
	"github.com/framegrace/texelsession/apps/texelterm/session"
	"github.com/framegrace/texelsession/config"
)

// Settings are the terminal options read from configuration.
type Settings struct {
	Engine      engine.Options
	Session     session.Config
	ArchivePath string
	LogLevel    string
}

// SettingsFromConfig reads the texelterm section. Colour values that do
// not parse fail with engine.ErrInvalidColor.
func SettingsFromConfig(cfg config.Config) (Settings, error) {
	const sec = config.TerminalSection
	opts := engine.DefaultOptions()
	opts.ScrollbackLimit = cfg.GetInt(sec, "scrollback_limit", engine.DefaultScrollbackLimit)
	opts.TabSize = cfg.GetInt(sec, "tab_size", engine.DefaultTabSize)

	fg, err := engine.ParseColor(cfg.GetString(sec, "base_fg", "default"))
	if err != nil {
		return Settings{}, fmt.Errorf("base_fg: %w", err)
	}
	bg, err := engine.ParseColor(cfg.GetString(sec, "base_bg", "default"))
	if err != nil {
		return Settings{}, fmt.Errorf("base_bg: %w", err)
	}
	opts.BaseStyle = engine.Style{FG: fg, BG: bg}

	archivePath := cfg.GetString(sec, "archive_path", "")
	if archivePath == "auto" {
		if archivePath, err = config.DefaultArchivePath(); err != nil {
			return Settings{}, fmt.Errorf("archive_path: %w", err)
		}
	}

	return Settings{
		Engine: opts,
		Session: session.Config{
			Command: cfg.GetString(sec, "shell", "/bin/bash"),
			Term:    cfg.GetString(sec, "term", "xterm-256color"),
		},
		ArchivePath: archivePath,
		LogLevel:    cfg.GetString(sec, "log_level", "info"),
	}, nil
}
