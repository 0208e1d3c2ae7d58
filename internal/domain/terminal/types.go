package terminal

import (
	"errors"
	"sync"
)

var (
	ErrBusy   = errors.New("terminal is waiting for the assistant")
	ErrClosed = errors.New("terminal session is closed")
)

// LineType styles a scrollback line.
type LineType string

const (
	LineInput  LineType = "input"
	LineOutput LineType = "output"
	LineError  LineType = "error"
	LineSystem LineType = "system"
)

// Line is one entry of the scrollback.
type Line struct {
	Text string   `json:"text"`
	Type LineType `json:"type"`
}

// Snapshot is the public representation of a session.
type Snapshot struct {
	Cwd     string `json:"cwd"`
	Prompt  string `json:"prompt"`
	Lines   []Line `json:"lines"`
	Loading bool   `json:"loading"`
	Closed  bool   `json:"closed"`
}

// Scrollback is a thread-safe circular buffer of lines. Once full, each
// append evicts the oldest line.
type Scrollback struct {
	mu    sync.RWMutex
	data  []Line
	head  int
	count int
}

// NewScrollback creates a buffer holding at most size lines.
func NewScrollback(size int) *Scrollback {
	if size <= 0 {
		size = 1
	}
	return &Scrollback{data: make([]Line, size)}
}

// Append adds lines in order.
func (s *Scrollback) Append(lines ...Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := len(s.data)
	for _, l := range lines {
		tail := (s.head + s.count) % size
		s.data[tail] = l
		if s.count < size {
			s.count++
		} else {
			s.head = (s.head + 1) % size
		}
	}
}

// Lines returns the buffered lines, oldest first.
func (s *Scrollback) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Line, s.count)
	for i := 0; i < s.count; i++ {
		out[i] = s.data[(s.head+i)%len(s.data)]
	}
	return out
}

// Len returns the number of buffered lines.
func (s *Scrollback) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Reset empties the buffer.
func (s *Scrollback) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.head = 0
	s.count = 0
	for i := range s.data {
		s.data[i] = Line{}
	}
}
