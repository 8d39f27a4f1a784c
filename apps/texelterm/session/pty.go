// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/session/pty.go
// Summary: PTY-backed session using creack/pty.

package session

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/rs/zerolog/log"
)

const (
	readBufferSize = 4096
	eventBuffer    = 256
	// closeWait bounds how long Close waits for the reader goroutine.
	closeWait = 2 * time.Second
)

// PTY runs a command on a pseudo terminal.
type PTY struct {
	cfg Config

	mu      sync.Mutex
	cmd     *exec.Cmd
	ptmx    *os.File
	started bool
	closed  bool

	events    chan Event
	done      chan struct{}
	readerWG  sync.WaitGroup
	closeOnce sync.Once
}

// NewPTY creates an unstarted PTY session.
func NewPTY(cfg Config) (*PTY, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PTY{
		cfg:    cfg,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}, nil
}

// NewPTYFactory returns a Factory producing PTY sessions.
func NewPTYFactory() Factory {
	return func(cfg Config) (Session, error) {
		return NewPTY(cfg)
	}
}

// Start spawns the command. Starting twice is a no-op.
func (p *PTY) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.started {
		return nil
	}

	cols, rows := p.cfg.size()
	term := p.cfg.Term
	if term == "" {
		term = "xterm-256color"
	}

	cmd := exec.Command(p.cfg.Command, p.cfg.Args...)
	cmd.Dir = p.cfg.Dir
	cmd.Env = append(os.Environ(),
		"TERM="+term,
		"COLUMNS="+strconv.Itoa(cols),
		"LINES="+strconv.Itoa(rows),
	)
	cmd.Env = append(cmd.Env, p.cfg.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		log.Error().Err(err).Str("command", p.cfg.Command).Msg("session: failed to start pty")
		return err
	}
	p.cmd = cmd
	p.ptmx = ptmx
	p.started = true
	log.Info().Str("command", p.cfg.Command).Int("pid", cmd.Process.Pid).Int("cols", cols).Int("rows", rows).Msg("session: started")

	p.readerWG.Add(1)
	go p.readLoop(ptmx, cmd)
	return nil
}

func (p *PTY) readLoop(ptmx *os.File, cmd *exec.Cmd) {
	defer p.readerWG.Done()
	defer close(p.events)

	buf := make([]byte, readBufferSize)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			if !p.send(DataEvent{Data: data}) {
				break
			}
		}
		if err != nil {
			// Linux reports EIO once the child side has closed.
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) && !errors.Is(err, syscall.EIO) {
				log.Debug().Err(err).Msg("session: pty read ended")
			}
			break
		}
	}

	status := statusFromWait(cmd.Wait())
	log.Info().Str("command", p.cfg.Command).Stringer("status", status).Msg("session: process ended")
	p.send(ExitEvent{Status: status})
}

func (p *PTY) send(ev Event) bool {
	select {
	case p.events <- ev:
		return true
	case <-p.done:
		return false
	}
}

func statusFromWait(err error) ExitStatus {
	if err == nil {
		return ExitedWith(0)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return KilledBy(int(ws.Signal()))
		}
		return ExitedWith(exitErr.ExitCode())
	}
	log.Warn().Err(err).Msg("session: wait failed")
	return ExitedWith(-1)
}

// Events returns the output channel.
func (p *PTY) Events() <-chan Event {
	return p.events
}

// Write sends bytes to the child.
func (p *PTY) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, ErrClosed
	}
	if p.ptmx == nil {
		return 0, ErrNotStarted
	}
	return p.ptmx.Write(b)
}

// Resize informs the child of a new window size.
func (p *PTY) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.ptmx == nil {
		return ErrNotStarted
	}
	return pty.Setsize(p.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Close kills the child, closes the PTY and waits for the reader.
func (p *PTY) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)

		p.mu.Lock()
		p.closed = true
		started := p.started
		if p.cmd != nil && p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		if p.ptmx != nil {
			err = p.ptmx.Close()
		}
		p.mu.Unlock()

		if !started {
			close(p.events)
			return
		}

		finished := make(chan struct{})
		go func() {
			p.readerWG.Wait()
			close(finished)
		}()
		select {
		case <-finished:
		case <-time.After(closeWait):
			log.Warn().Str("command", p.cfg.Command).Msg("session: reader did not stop after close")
		}
	})
	return err
}
