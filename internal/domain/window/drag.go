package window

import "github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"

// Target is the part of a window a pointer-down landed on.
type Target string

const (
	TargetTitleBar Target = "titlebar"
	TargetClose    Target = "close"
	TargetMinimize Target = "minimize"
	TargetMaximize Target = "maximize"
	TargetBody     Target = "body"
)

// DragState is the state of the drag machine.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (s DragState) String() string {
	if s == DragDragging {
		return "dragging"
	}
	return "idle"
}

// Drag tracks the single in-progress title bar drag.
type Drag struct {
	state  DragState
	id     apps.ID
	offset Point
}

func (d *Drag) State() DragState { return d.state }

// Window returns the id being dragged, if any.
func (d *Drag) Window() (apps.ID, bool) {
	return d.id, d.state == DragDragging
}

// Begin enters the dragging state for rec when the pointer went down on its
// title bar and the window is not maximized. Any earlier drag is dropped.
func (d *Drag) Begin(rec *Record, pointer Point, target Target) bool {
	d.End()
	if rec == nil || target != TargetTitleBar || rec.IsMaximized {
		return false
	}
	d.state = DragDragging
	d.id = rec.ID
	d.offset = pointer.Sub(Point{X: rec.X, Y: rec.Y})
	return true
}

// Move repositions rec so the grab point stays under the pointer.
func (d *Drag) Move(rec *Record, pointer Point) bool {
	if d.state != DragDragging || rec == nil || rec.ID != d.id || rec.IsMaximized || rec.IsMinimized {
		return false
	}
	pos := pointer.Sub(d.offset)
	rec.X, rec.Y = pos.X, pos.Y
	return true
}

// End returns to idle. Safe to call in any state.
func (d *Drag) End() {
	*d = Drag{}
}
