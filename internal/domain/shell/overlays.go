package shell

import (
	"errors"
	"fmt"
)

var ErrUnknownOverlay = errors.New("unknown overlay")

// Overlay names a panel drawn above the windows.
type Overlay string

const (
	OverlaySearch         Overlay = "search"
	OverlayStartMenu      Overlay = "start_menu"
	OverlayControlCenter  Overlay = "control_center"
	OverlayWidgets        Overlay = "widgets"
	OverlayMissionControl Overlay = "mission_control"
)

// Overlays is the open/closed state of every panel plus the open menu bar
// menu, if any.
type Overlays struct {
	Search         bool   `json:"search"`
	StartMenu      bool   `json:"start_menu"`
	ControlCenter  bool   `json:"control_center"`
	Widgets        bool   `json:"widgets"`
	MissionControl bool   `json:"mission_control"`
	ActiveMenu     string `json:"active_menu,omitempty"`
}

func (o *Overlays) flag(name Overlay) (*bool, error) {
	switch name {
	case OverlaySearch:
		return &o.Search, nil
	case OverlayStartMenu:
		return &o.StartMenu, nil
	case OverlayControlCenter:
		return &o.ControlCenter, nil
	case OverlayWidgets:
		return &o.Widgets, nil
	case OverlayMissionControl:
		return &o.MissionControl, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownOverlay)
}

// KeyEvent is a key press as reported by the browser (KeyboardEvent.code).
type KeyEvent struct {
	Code string `json:"code"`
	Ctrl bool   `json:"ctrl"`
	Meta bool   `json:"meta"`
}

// ToggleOverlay flips one panel and returns its new state.
func (s *Shell) ToggleOverlay(name Overlay) (bool, error) {
	s.mu.Lock()
	flag, err := s.overlays.flag(name)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	*flag = !*flag
	open := *flag
	s.mu.Unlock()

	s.changed()
	return open, nil
}

// SetActiveMenu opens the named menu bar menu. Naming the menu that is
// already open, or an empty name, closes it.
func (s *Shell) SetActiveMenu(name string) string {
	s.mu.Lock()
	if name == s.overlays.ActiveMenu {
		name = ""
	}
	s.overlays.ActiveMenu = name
	s.mu.Unlock()

	s.changed()
	return name
}

// DismissTransient handles a click on the desktop background.
func (s *Shell) DismissTransient() {
	s.mu.Lock()
	s.overlays.StartMenu = false
	s.overlays.ActiveMenu = ""
	s.overlays.ControlCenter = false
	s.overlays.Widgets = false
	s.mu.Unlock()

	s.changed()
}

// CloseMissionControl leaves the window overview.
func (s *Shell) CloseMissionControl() {
	s.mu.Lock()
	s.overlays.MissionControl = false
	s.mu.Unlock()

	s.changed()
}

// HandleKey applies the global shortcuts and reports whether ev was one.
func (s *Shell) HandleKey(ev KeyEvent) bool {
	s.mu.Lock()
	consumed := true
	switch {
	case (ev.Ctrl || ev.Meta) && ev.Code == "Space":
		s.overlays.Search = !s.overlays.Search
	case ev.Ctrl && ev.Code == "ArrowUp":
		s.overlays.MissionControl = true
	case ev.Code == "Escape":
		s.overlays.Search = false
		s.overlays.StartMenu = false
		s.overlays.ControlCenter = false
		s.overlays.MissionControl = false
		s.overlays.ActiveMenu = ""
	default:
		consumed = false
	}
	s.mu.Unlock()

	if consumed {
		s.changed()
	}
	return consumed
}

// Overlays returns the panel state.
func (s *Shell) Overlays() Overlays {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlays
}
