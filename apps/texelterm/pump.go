// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/pump.go
// Summary: Non-blocking bridge from a session's event channel to the engine.
// Usage: Polled once per UI tick by the terminal widget.

package texelterm

import (
	"errors"
	"fmt"

	"github.com/framegrace/texelsession/apps/texelterm/engine"
	"github.com/framegrace/texelsession/apps/texelterm/parser"
	"github.com/framegrace/texelsession/apps/texelterm/session"
	"github.com/rs/zerolog/log"
)

// ErrInvalidRuntime is returned when a session is needed but there is no
// factory or configuration to spawn one.
var ErrInvalidRuntime = errors.New("texelterm: no session runtime configured")

// maxPollEvents bounds the work done by a single Poll.
const maxPollEvents = 1024

// Pump owns the session of one terminal and drains its output into the
// engine. Not safe for concurrent use.
type Pump struct {
	engine  *engine.Engine
	parser  *parser.Parser
	factory session.Factory
	config  *session.Config

	sess   session.Session
	events <-chan session.Event
	exit   session.ExitStatus

	onTitle func(string)
	onBell  func()
}

// NewPump creates a pump. cfg may be nil; Write then fails with
// ErrInvalidRuntime until Spawn is called.
func NewPump(eng *engine.Engine, factory session.Factory, cfg *session.Config) *Pump {
	p := &Pump{
		engine:  eng,
		parser:  parser.New(),
		factory: factory,
	}
	if cfg != nil {
		c := *cfg
		p.config = &c
	}
	return p
}

// OnTitle registers a callback for OSC title changes.
func (p *Pump) OnTitle(fn func(string)) {
	p.onTitle = fn
}

// OnBell registers a callback for BEL.
func (p *Pump) OnBell(fn func()) {
	p.onBell = fn
}

// Config returns a copy of the stored session configuration.
func (p *Pump) Config() (session.Config, bool) {
	if p.config == nil {
		return session.Config{}, false
	}
	return *p.config, true
}

// HasSession reports whether a session is attached.
func (p *Pump) HasSession() bool {
	return p.sess != nil
}

// ExitStatus returns the last exit status received.
func (p *Pump) ExitStatus() session.ExitStatus {
	return p.exit
}

// Poll drains queued session events without blocking and reports whether a
// repaint is pending.
func (p *Pump) Poll() bool {
	for i := 0; i < maxPollEvents && p.events != nil; i++ {
		select {
		case ev, ok := <-p.events:
			if !ok {
				p.events = nil
				break
			}
			p.handle(ev)
		default:
			return p.engine.Dirty()
		}
	}
	return p.engine.Dirty()
}

func (p *Pump) handle(ev session.Event) {
	switch ev := ev.(type) {
	case session.DataEvent:
		p.Feed(ev.Data)
	case session.ExitEvent:
		p.exit = ev.Status
		p.engine.RequestRepaint()
		log.Info().Stringer("status", ev.Status).Msg("texelterm: session ended")
	}
}

// Feed tokenizes raw output and applies it to the engine.
func (p *Pump) Feed(data []byte) {
	events := p.parser.Parse(data)
	for _, ev := range events {
		switch ev := ev.(type) {
		case parser.Title:
			if p.onTitle != nil {
				p.onTitle(ev.Text)
			}
		case parser.Bell:
			if p.onBell != nil {
				p.onBell()
			}
		}
	}
	p.engine.Feed(events)
}

// Spawn replaces any attached session with a new one built from cfg.
func (p *Pump) Spawn(cfg session.Config) error {
	if p.factory == nil {
		return ErrInvalidRuntime
	}
	p.Detach()

	s, err := p.factory(cfg)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := s.Start(); err != nil {
		s.Close()
		return fmt.Errorf("start session: %w", err)
	}

	c := cfg
	p.config = &c
	p.sess = s
	p.events = s.Events()
	p.exit = session.Running()
	p.parser.Reset()
	return nil
}

// Detach closes the attached session, if any. Repeated calls are no-ops.
func (p *Pump) Detach() {
	if p.sess == nil {
		return
	}
	if err := p.sess.Close(); err != nil {
		log.Debug().Err(err).Msg("texelterm: session close")
	}
	p.sess = nil
	p.events = nil
}

// Write forwards input to the session, spawning it from the stored
// configuration first if needed.
func (p *Pump) Write(b []byte) (int, error) {
	if p.sess == nil {
		if p.config == nil || p.factory == nil {
			return 0, ErrInvalidRuntime
		}
		if err := p.Spawn(*p.config); err != nil {
			return 0, err
		}
	}
	return p.sess.Write(b)
}

// Resize records the size for future spawns and forwards it to the session.
func (p *Pump) Resize(cols, rows int) error {
	if p.config != nil {
		p.config.Cols = cols
		p.config.Rows = rows
	}
	if p.sess == nil {
		return nil
	}
	return p.sess.Resize(cols, rows)
}
