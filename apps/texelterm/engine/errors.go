// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/engine/errors.go
// Summary: Sentinel errors returned by the terminal engine.

package engine

import "errors"

var (
	// ErrInvalidScrollbackLimit is returned when the scrollback limit is below one.
	ErrInvalidScrollbackLimit = errors.New("engine: scrollback limit must be at least 1")
	// ErrInvalidTabSize is returned when the tab size is below one.
	ErrInvalidTabSize = errors.New("engine: tab size must be at least 1")
	// ErrLineOutOfRange is returned for a line index outside the buffer.
	ErrLineOutOfRange = errors.New("engine: line out of range")
	// ErrSelectionOutOfRange is returned when a selection endpoint does not address the buffer.
	ErrSelectionOutOfRange = errors.New("engine: selection out of range")
	// ErrNoSelection is returned when text is requested without an active selection.
	ErrNoSelection = errors.New("engine: no selection")
	// ErrUnsupportedCodepoint is returned when a cell rune cannot be encoded as UTF-8.
	ErrUnsupportedCodepoint = errors.New("engine: unsupported codepoint")
	// ErrInvalidColor is returned by ParseColor for unrecognised colour names.
	ErrInvalidColor = errors.New("engine: invalid color")
)
