// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.GetInt(TerminalSection, "scrollback_limit", 0))
	assert.Equal(t, 4, cfg.GetInt(TerminalSection, "tab_size", 0))
	assert.Equal(t, "/bin/bash", cfg.GetString(TerminalSection, "shell", ""))
	assert.Equal(t, "xterm-256color", cfg.GetString(TerminalSection, "term", ""))
	assert.Equal(t, "default", cfg.GetString(TerminalSection, "base_fg", ""))
	assert.Equal(t, "info", cfg.GetString(TerminalSection, "log_level", ""))

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.GetInt(TerminalSection, "scrollback_limit", 0))
}

func TestLoadKeepsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"texelterm":{"scrollback_limit":250,"shell":"/bin/zsh"}}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.GetInt(TerminalSection, "scrollback_limit", 0))
	assert.Equal(t, "/bin/zsh", cfg.GetString(TerminalSection, "shell", ""))
	assert.Equal(t, 4, cfg.GetInt(TerminalSection, "tab_size", 0), "missing keys get defaults")
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	cfg, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, 10000, cfg.GetInt(TerminalSection, "scrollback_limit", 0))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Set(TerminalSection, "tab_size", 8)
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.GetInt(TerminalSection, "tab_size", 0))
}

func TestTypedGetters(t *testing.T) {
	cfg := Config{
		"s": map[string]interface{}{
			"n":    "42",
			"f":    float64(7),
			"b":    "true",
			"bn":   float64(0),
			"word": 3,
		},
	}
	assert.Equal(t, 42, cfg.GetInt("s", "n", 0))
	assert.Equal(t, 7, cfg.GetInt("s", "f", 0))
	assert.Equal(t, -1, cfg.GetInt("s", "missing", -1))
	assert.True(t, cfg.GetBool("s", "b", false))
	assert.False(t, cfg.GetBool("s", "bn", true))
	assert.Equal(t, "fallback", cfg.GetString("s", "word", "fallback"))
	assert.Equal(t, "fallback", cfg.GetString("missing", "word", "fallback"))
}

func TestRegisterDefaultsDoesNotOverwrite(t *testing.T) {
	cfg := Config{}
	cfg.Set("a", "k", "user")
	cfg.RegisterDefaults("a", Section{"k": "default", "other": 1})
	assert.Equal(t, "user", cfg.GetString("a", "k", ""))
	assert.Equal(t, 1, cfg.GetInt("a", "other", 0))
}
