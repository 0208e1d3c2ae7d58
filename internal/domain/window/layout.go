package window

// Chrome dimensions: a 2rem menu bar on top and a 3.5rem dock at the bottom.
const (
	MenuBarHeight = 32
	DockHeight    = 56

	cascadeBase = 60
	cascadeStep = 30
)

// cascade is the initial top-left for the n-th open window.
func cascade(count int) Point {
	offset := cascadeBase + cascadeStep*count
	return Point{X: offset, Y: offset}
}

// MaximizedRect is the fixed area a maximized window fills.
func MaximizedRect(viewport Size) Rect {
	h := viewport.Height - MenuBarHeight - DockHeight
	if h < 0 {
		h = 0
	}
	return Rect{X: 0, Y: MenuBarHeight, Width: viewport.Width, Height: h}
}

// FrameRect returns where rec is drawn: the stored geometry, or the
// maximized area for maximized windows.
func FrameRect(rec Record, viewport Size) Rect {
	if rec.IsMaximized {
		return MaximizedRect(viewport)
	}
	return Rect{X: rec.X, Y: rec.Y, Width: rec.Width, Height: rec.Height}
}
