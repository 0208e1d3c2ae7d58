package window

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

// Catalog supplies titles and default sizes for new windows.
type Catalog interface {
	Title(id apps.ID) string
	Size(id apps.ID) (width, height int)
}

// Manager is the window registry: an insertion-ordered list of records
// plus the single active id and the drag machine.
type Manager struct {
	mu      sync.RWMutex
	windows []*Record // Protected by mu, insertion order
	active  apps.ID   // Protected by mu, empty when nothing is foreground
	drag    Drag      // Protected by mu
	catalog Catalog
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates an empty registry.
func NewManager(catalog Catalog, logger *logging.Logger) *Manager {
	return &Manager{
		catalog: catalog,
		logger:  logging.OrNop(logger).Named("window"),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Launch opens the window for id, or restores and raises it when it is
// already open. It reports whether a new record was created.
func (m *Manager) Launch(id apps.ID) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec := m.find(id); rec != nil {
		m.raise(rec)
		m.record("focus")
		m.logger.Debug("Window restored", zap.String("app_id", string(id)), zap.Int("z", rec.ZIndex))
		return *rec, false
	}

	pos := cascade(len(m.windows))
	w, h := m.catalog.Size(id)
	rec := &Record{
		ID:     id,
		Title:  m.catalog.Title(id),
		ZIndex: m.nextZ(),
		X:      pos.X,
		Y:      pos.Y,
		Width:  w,
		Height: h,
	}
	m.windows = append(m.windows, rec)
	m.active = id
	m.record("launch")

	m.logger.Info("Window launched",
		zap.String("app_id", string(id)),
		zap.Int("x", rec.X),
		zap.Int("y", rec.Y),
		zap.Int("z", rec.ZIndex),
	)
	return *rec, true
}

// Close removes the window. When it was active, the most recently added
// remaining window becomes active.
func (m *Manager) Close(id apps.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		return false
	}
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)

	if m.active == id {
		m.active = ""
		if n := len(m.windows); n > 0 {
			m.active = m.windows[n-1].ID
		}
	}
	if dragged, ok := m.drag.Window(); ok && dragged == id {
		m.drag.End()
	}
	m.record("close")

	m.logger.Info("Window closed", zap.String("app_id", string(id)), zap.String("active", string(m.active)))
	return true
}

// Minimize hides the window and clears the active selection, even when
// other windows remain visible.
func (m *Manager) Minimize(id apps.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.find(id)
	if rec == nil {
		return false
	}
	rec.IsMinimized = true
	m.active = ""
	m.record("minimize")
	return true
}

// ToggleMaximize flips the maximized flag.
func (m *Manager) ToggleMaximize(id apps.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.find(id)
	if rec == nil {
		return false
	}
	rec.IsMaximized = !rec.IsMaximized
	m.record("maximize")
	return true
}

// Focus raises the window above all others, restores it and makes it active.
func (m *Manager) Focus(id apps.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.find(id)
	if rec == nil {
		return false
	}
	m.raise(rec)
	m.record("focus")
	return true
}

// Get returns a copy of the record for id.
func (m *Manager) Get(id apps.ID) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if rec := m.find(id); rec != nil {
		return *rec, true
	}
	return Record{}, false
}

// List returns copies of all records in insertion order.
func (m *Manager) List() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.windows))
	for _, rec := range m.windows {
		out = append(out, *rec)
	}
	return out
}

// Count returns the number of open windows.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.windows)
}

// Active returns the foreground window id.
func (m *Manager) Active() (apps.ID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.active, m.active != ""
}

// Visible returns the frames to draw, bottom to top. Minimized windows are
// left out entirely.
func (m *Manager) Visible(viewport Size) []Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()

	frames := make([]Frame, 0, len(m.windows))
	for _, rec := range m.windows {
		if rec.IsMinimized {
			continue
		}
		frames = append(frames, Frame{
			Record: *rec,
			Rect:   FrameRect(*rec, viewport),
			Active: rec.ID == m.active,
		})
	}
	sort.SliceStable(frames, func(i, j int) bool { return frames[i].ZIndex < frames[j].ZIndex })
	return frames
}

// Stats summarizes the registry.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{Total: len(m.windows), Active: m.active}
	for _, rec := range m.windows {
		if rec.IsMinimized {
			s.Minimized++
		} else {
			s.Visible++
		}
		if rec.IsMaximized {
			s.Maximized++
		}
	}
	if id, ok := m.drag.Window(); ok {
		s.Dragging = id
	}
	return s
}

// Restore replaces the registry with saved records. Duplicate ids keep the
// first occurrence. An active id that is not among the records is dropped.
func (m *Manager) Restore(records []Record, active apps.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.windows = m.windows[:0]
	m.drag.End()
	seen := make(map[apps.ID]bool, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		r := rec
		m.windows = append(m.windows, &r)
	}
	m.active = ""
	if seen[active] {
		m.active = active
	}
	m.record("restore")
}

// BeginDrag starts dragging id when the pointer went down on its title bar.
func (m *Manager) BeginDrag(id apps.ID, pointer Point, target Target) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.drag.Begin(m.find(id), pointer, target)
}

// DragMove moves the window being dragged, if any.
func (m *Manager) DragMove(pointer Point) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.drag.Window()
	if !ok {
		return Record{}, false
	}
	rec := m.find(id)
	if !m.drag.Move(rec, pointer) {
		return Record{}, false
	}
	return *rec, true
}

// EndDrag releases any drag in progress.
func (m *Manager) EndDrag() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drag.End()
}

// DragState reports the drag machine state and the window it holds.
func (m *Manager) DragState() (DragState, apps.ID) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, _ := m.drag.Window()
	return m.drag.State(), id
}

// raise must be called with mu held.
func (m *Manager) raise(rec *Record) {
	rec.ZIndex = m.nextZ()
	rec.IsMinimized = false
	m.active = rec.ID
}

// nextZ is max(z, 0) + 1 over all records. Must be called with mu held.
func (m *Manager) nextZ() int {
	top := 0
	for _, rec := range m.windows {
		if rec.ZIndex > top {
			top = rec.ZIndex
		}
	}
	return top + 1
}

func (m *Manager) find(id apps.ID) *Record {
	if i := m.index(id); i >= 0 {
		return m.windows[i]
	}
	return nil
}

func (m *Manager) index(id apps.ID) int {
	for i, rec := range m.windows {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) record(op string) {
	if m.metrics != nil {
		m.metrics.RecordWindowOp(op, len(m.windows))
	}
}
