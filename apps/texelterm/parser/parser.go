// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/texelterm/parser/parser.go
// Summary: Stateful VT tokenizer turning PTY bytes into Events.
// Usage: Fed by the session pump; output is applied by the engine.
// Notes: Keeps parsing concerns isolated from buffer state.

package parser

import (
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

type State int

const (
	StateGround State = iota
	StateEscape
	StateCSI
	StateOSC
	StateOSCEscape
	StateCharset
	StateDCS
	StateDCSEscape
)

// maxParams bounds CSI parameter lists; extra parameters are dropped.
const maxParams = 32

// maxOSCLength bounds an OSC payload. Longer payloads are dropped and the
// tokenizer returns to ground state.
const maxOSCLength = 4096

// Parser is a VT100/ANSI stream tokenizer. It is not safe for concurrent use.
type Parser struct {
	state        State
	params       []int
	currentParam int
	hasParam     bool
	private      bool
	intermediate rune
	oscBuffer    []rune
	pending      []byte // incomplete UTF-8 sequence from the previous chunk
	out          []Event
}

// New creates a tokenizer in ground state.
func New() *Parser {
	return &Parser{
		state:     StateGround,
		params:    make([]int, 0, 16),
		oscBuffer: make([]rune, 0, 128),
	}
}

// State reports the current tokenizer state.
func (p *Parser) State() State {
	return p.state
}

// Parse decodes a chunk of PTY output. Sequences split across chunks are
// completed by later calls. The returned slice is owned by the caller.
func (p *Parser) Parse(data []byte) []Event {
	p.out = nil
	if len(p.pending) > 0 {
		data = append(p.pending, data...)
		p.pending = nil
	}
	for len(data) > 0 {
		if data[0] < utf8.RuneSelf {
			p.step(rune(data[0]))
			data = data[1:]
			continue
		}
		if !utf8.FullRune(data) {
			p.pending = append([]byte(nil), data...)
			break
		}
		r, size := utf8.DecodeRune(data)
		p.step(r)
		data = data[size:]
	}
	out := p.out
	p.out = nil
	return out
}

// Reset returns the tokenizer to ground state and drops buffered input.
func (p *Parser) Reset() {
	p.state = StateGround
	p.params = p.params[:0]
	p.currentParam = 0
	p.hasParam = false
	p.private = false
	p.intermediate = 0
	p.oscBuffer = p.oscBuffer[:0]
	p.pending = nil
}

func (p *Parser) emit(ev Event) {
	p.out = append(p.out, ev)
}

func (p *Parser) step(r rune) {
	switch p.state {
	case StateGround:
		p.ground(r)
	case StateEscape:
		switch r {
		case '[':
			p.state = StateCSI
			p.params = p.params[:0]
			p.currentParam = 0
			p.hasParam = false
			p.private = false
			p.intermediate = 0
		case ']':
			p.state = StateOSC
			p.oscBuffer = p.oscBuffer[:0]
		case 'P':
			p.state = StateDCS
		case 'c':
			p.emit(ResetTerminal{})
			p.state = StateGround
		case '(', ')', '*', '+':
			p.state = StateCharset
		case '\x1b':
			// ESC ESC restarts the sequence
		default:
			log.Debug().Str("seq", string(r)).Msg("parser: unhandled ESC sequence")
			p.state = StateGround
		}
	case StateCSI:
		p.csi(r)
	case StateOSC:
		switch r {
		case '\x07':
			p.handleOSC()
			p.state = StateGround
		case '\x1b':
			p.state = StateOSCEscape
		default:
			if len(p.oscBuffer) >= maxOSCLength {
				log.Debug().Int("len", len(p.oscBuffer)).Msg("parser: OSC too long, dropped")
				p.oscBuffer = p.oscBuffer[:0]
				p.state = StateGround
				return
			}
			p.oscBuffer = append(p.oscBuffer, r)
		}
	case StateOSCEscape:
		p.handleOSC()
		if r == '\\' {
			p.state = StateGround
			return
		}
		p.state = StateEscape
		p.step(r)
	case StateDCS:
		if r == '\x1b' {
			p.state = StateDCSEscape
		}
	case StateDCSEscape:
		if r == '\\' {
			p.state = StateGround
		} else {
			p.state = StateDCS
		}
	case StateCharset:
		p.state = StateGround
	}
}

func (p *Parser) ground(r rune) {
	switch r {
	case '\x1b':
		p.state = StateEscape
	case '\n', '\v', '\f':
		p.emit(LineFeed{})
	case '\r':
		p.emit(CarriageReturn{})
	case '\b':
		p.emit(Backspace{})
	case '\t':
		p.emit(Tab{})
	case '\x07':
		p.emit(Bell{})
	default:
		if r >= ' ' && r != 0x7f && (r < 0x80 || r > 0x9f) {
			p.emit(Char{Codepoint: r})
		}
	}
}

func (p *Parser) csi(r rune) {
	switch {
	case r >= '0' && r <= '9':
		p.currentParam = p.currentParam*10 + int(r-'0')
		if p.currentParam > 65535 {
			p.currentParam = 65535
		}
		p.hasParam = true
	case r == ';' || r == ':':
		p.pushParam()
		p.hasParam = true
	case r >= '<' && r <= '?':
		p.private = true
	case r >= ' ' && r <= '/':
		p.intermediate = r
	case r >= '@' && r <= '~':
		if p.hasParam {
			p.pushParam()
		}
		p.dispatchCSI(r)
		p.state = StateGround
	case r == '\x1b':
		// Aborted sequence; start over.
		p.state = StateEscape
	}
}

func (p *Parser) pushParam() {
	if len(p.params) < maxParams {
		p.params = append(p.params, p.currentParam)
	}
	p.currentParam = 0
}

func (p *Parser) param(i, def int) int {
	if i < len(p.params) && p.params[i] != 0 {
		return p.params[i]
	}
	return def
}

func (p *Parser) dispatchCSI(final rune) {
	if p.private || p.intermediate != 0 {
		log.Debug().Str("final", string(final)).Bool("private", p.private).Msg("parser: ignoring CSI sequence")
		return
	}
	switch final {
	case 'm':
		params := make([]int, len(p.params))
		copy(params, p.params)
		p.emit(Attributes{Changes: decodeSGR(params)})
	case 'K':
		mode := p.param(0, 0)
		if mode > 255 {
			mode = 255
		}
		p.emit(EraseLine{Mode: uint8(mode)})
	case 'J':
		// Only whole-screen erases map onto the buffer model.
		if mode := p.param(0, 0); mode == 2 || mode == 3 {
			p.emit(EraseDisplay{})
		}
	case 'P':
		n := p.param(0, 1)
		for i := 0; i < n; i++ {
			p.emit(Delete{})
		}
	default:
		log.Debug().Str("final", string(final)).Ints("params", p.params).Msg("parser: unhandled CSI sequence")
	}
}

func (p *Parser) handleOSC() {
	command, payload, ok := splitOSC(p.oscBuffer)
	p.oscBuffer = p.oscBuffer[:0]
	if !ok {
		return
	}
	switch command {
	case "0", "2":
		p.emit(Title{Text: payload})
	default:
		log.Debug().Str("command", command).Msg("parser: unhandled OSC")
	}
}

// splitOSC splits an OSC body at the first semicolon.
func splitOSC(seq []rune) (command, payload string, ok bool) {
	for i, r := range seq {
		if r == ';' {
			return string(seq[:i]), string(seq[i+1:]), true
		}
	}
	return "", "", false
}
