package engine

// EvictionNotice reports lines dropped from the front of the scrollback.
// A zero Count means nothing was evicted.
type EvictionNotice struct {
	Count int
	Lines []Line
}

// Evicted reports whether the notice carries any evicted lines.
func (n EvictionNotice) Evicted() bool {
	return n.Count > 0
}

// Scrollback stores committed lines for terminal scrollback.
//
// Lines are stored in chronological order: index 0 is the oldest line,
// index Len()-1 is the most recent committed line.
type Scrollback struct {
	// lines stores all committed lines
	lines []Line

	// limit is the maximum number of lines to retain.
	// When exceeded, oldest lines are discarded.
	limit int
}

// NewScrollback creates a new scrollback with the given capacity.
func NewScrollback(limit int) (*Scrollback, error) {
	if limit < 1 {
		return nil, ErrInvalidScrollbackLimit
	}
	return &Scrollback{
		lines: make([]Line, 0, min(limit, 1000)), // Pre-allocate reasonably
		limit: limit,
	}, nil
}

// Len returns the number of lines in the scrollback.
func (s *Scrollback) Len() int {
	return len(s.lines)
}

// Limit returns the maximum capacity.
func (s *Scrollback) Limit() int {
	return s.limit
}

// Get returns the line at the given index.
func (s *Scrollback) Get(index int) (Line, error) {
	if index < 0 || index >= len(s.lines) {
		return nil, ErrLineOutOfRange
	}
	return s.lines[index], nil
}

// Push appends a line. If the scrollback exceeds its limit, the oldest
// line is discarded and reported in the returned notice.
func (s *Scrollback) Push(line Line) EvictionNotice {
	s.lines = append(s.lines, line)
	if len(s.lines) <= s.limit {
		return EvictionNotice{}
	}

	excess := len(s.lines) - s.limit
	evicted := make([]Line, excess)
	copy(evicted, s.lines[:excess])
	// Help GC by clearing references
	for i := 0; i < excess; i++ {
		s.lines[i] = nil
	}
	s.lines = s.lines[excess:]
	return EvictionNotice{Count: excess, Lines: evicted}
}

// Clear removes all lines.
func (s *Scrollback) Clear() {
	// Help GC
	for i := range s.lines {
		s.lines[i] = nil
	}
	s.lines = s.lines[:0]
}

// Lines returns the stored lines, oldest first. The slice is a copy; the
// lines themselves are shared and must not be modified.
func (s *Scrollback) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Range returns lines from start (inclusive) to end (exclusive).
// Indices are clamped to valid bounds.
func (s *Scrollback) Range(start, end int) []Line {
	if start < 0 {
		start = 0
	}
	if end > len(s.lines) {
		end = len(s.lines)
	}
	if start >= end {
		return nil
	}
	out := make([]Line, end-start)
	copy(out, s.lines[start:end])
	return out
}
