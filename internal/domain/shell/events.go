package shell

// EventType names what changed.
type EventType string

const (
	EventDesktop  EventType = "desktop"
	EventTerminal EventType = "terminal"
	EventChat     EventType = "chat"
	EventVFS      EventType = "vfs"
	EventUpdate   EventType = "update"
)

// Event is pushed to subscribers. Data is a Snapshot for EventDesktop and
// the view's own snapshot type otherwise.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// VFSChange is the payload of EventVFS.
type VFSChange struct {
	Op   string `json:"op"`
	Path string `json:"path"`
}

// Subscribe registers fn for every event and returns a function that
// removes it. fn runs on the publishing goroutine and must not block or
// call back into the shell.
func (s *Shell) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSub++
	key := s.nextSub
	s.subs[key] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, key)
	}
}

func (s *Shell) publish(ev Event) {
	s.subMu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// changed publishes a fresh desktop snapshot. Must be called without mu.
func (s *Shell) changed() {
	s.publish(Event{Type: EventDesktop, Data: s.Snapshot()})
}

// Refresh republishes the desktop after a change made outside the shell,
// such as a new accent color.
func (s *Shell) Refresh() {
	s.changed()
}
