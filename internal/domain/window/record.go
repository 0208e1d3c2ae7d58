package window

import (
	"errors"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
)

var ErrWindowNotFound = errors.New("window not found")

// Record is the registry entry for one open app.
type Record struct {
	ID          apps.ID `json:"id"`
	Title       string  `json:"title"`
	IsMinimized bool    `json:"is_minimized"`
	IsMaximized bool    `json:"is_maximized"`
	ZIndex      int     `json:"z_index"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

// Point is a pointer position in viewport pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is an on-screen rectangle in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size is a viewport size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Frame is a window as it should be drawn.
type Frame struct {
	Record
	Rect   Rect `json:"rect"`
	Active bool `json:"active"`
}

// Stats summarizes the registry.
type Stats struct {
	Total     int     `json:"total"`
	Visible   int     `json:"visible"`
	Minimized int     `json:"minimized"`
	Maximized int     `json:"maximized"`
	Active    apps.ID `json:"active,omitempty"`
	Dragging  apps.ID `json:"dragging,omitempty"`
}
