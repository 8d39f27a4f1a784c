// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/session/session.go
// Summary: Child-process session contract consumed by the terminal pump.

package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCommand is returned when a Config has no command to run.
	ErrNoCommand = errors.New("session: no command configured")
	// ErrNotStarted is returned by operations on a session that was never started.
	ErrNotStarted = errors.New("session: not started")
	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("session: closed")
)

// Session is a running child process attached to a terminal.
type Session interface {
	// Start spawns the process. Events become available afterwards.
	Start() error
	// Write sends input bytes to the process.
	Write(p []byte) (int, error)
	// Resize changes the terminal size seen by the process.
	Resize(cols, rows int) error
	// Events delivers output and the final exit status, in order. The
	// channel is closed after the exit event.
	Events() <-chan Event
	// Close releases the process and its descriptors. Safe to call twice.
	Close() error
}

// Factory builds an unstarted session from a configuration.
type Factory func(cfg Config) (Session, error)

// Event is either a DataEvent or an ExitEvent.
type Event interface {
	isEvent()
}

// DataEvent carries a chunk of process output. Data is owned by the receiver.
type DataEvent struct {
	Data []byte
}

// ExitEvent reports process termination.
type ExitEvent struct {
	Status ExitStatus
}

func (DataEvent) isEvent() {}
func (ExitEvent) isEvent() {}

// ExitState tags an ExitStatus.
type ExitState int

const (
	StillRunning ExitState = iota
	Exited
	Signaled
)

// ExitStatus describes how a process ended.
type ExitStatus struct {
	State  ExitState
	Code   int
	Signal int
}

// Running returns the status of a live process.
func Running() ExitStatus { return ExitStatus{State: StillRunning} }

// ExitedWith returns a normal exit status.
func ExitedWith(code int) ExitStatus { return ExitStatus{State: Exited, Code: code} }

// KilledBy returns a signal termination status.
func KilledBy(signal int) ExitStatus { return ExitStatus{State: Signaled, Signal: signal} }

// Done reports whether the process has ended.
func (s ExitStatus) Done() bool {
	return s.State != StillRunning
}

func (s ExitStatus) String() string {
	switch s.State {
	case Exited:
		return fmt.Sprintf("exited with code %d", s.Code)
	case Signaled:
		return fmt.Sprintf("killed by signal %d", s.Signal)
	}
	return "running"
}

// Config describes the process to spawn.
type Config struct {
	Command string
	Args    []string
	Env     []string // appended to the inherited environment
	Dir     string
	Term    string // TERM value, xterm-256color when empty
	Cols    int
	Rows    int
}

// Validate checks that the configuration can be spawned.
func (c Config) Validate() error {
	if c.Command == "" {
		return ErrNoCommand
	}
	return nil
}

func (c Config) size() (cols, rows int) {
	cols, rows = c.Cols, c.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	return cols, rows
}
