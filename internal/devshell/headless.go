// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/headless.go
// Summary: Runs an app without a screen and prints its text when it exits.
// Usage: Used when stdout is not a terminal.

package devshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/framegrace/texelsession/texel"
)

// ErrNotExiter is returned by RunHeadless for apps that never finish.
var ErrNotExiter = errors.New("devshell: app cannot run headless")

// HeadlessApp is an app that finishes on its own and exposes its text.
type HeadlessApp interface {
	texel.App
	texel.Exiter
	Transcript() []string
}

// RunHeadless starts app, polls it until it exits or ctx is done, then
// writes its transcript to w one line at a time.
func RunHeadless(ctx context.Context, app texel.App, w io.Writer) error {
	headless, ok := app.(HeadlessApp)
	if !ok {
		return ErrNotExiter
	}
	if err := app.Start(); err != nil {
		return fmt.Errorf("start %s: %w", app.GetTitle(), err)
	}
	defer app.Stop()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var runErr error
loop:
	for {
		headless.Poll()
		if headless.Exited() {
			break
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		case <-ticker.C:
		}
	}

	for _, line := range headless.Transcript() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return runErr
}
