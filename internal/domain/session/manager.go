package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/utils"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidInput = errors.New("invalid session input")
)

// Workspace is the captured desktop: window records in registry order,
// the active window and the whole file system.
type Workspace struct {
	Windows []window.Record `json:"windows"`
	Active  apps.ID         `json:"active,omitempty"`
	FS      *vfs.Node       `json:"fs"`
}

// Session is a named, saved workspace.
type Session struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Workspace   Workspace `json:"workspace"`
}

// Metadata is the listing view of a session.
type Metadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	WindowCount int       `json:"window_count"`
}

// Stats reports manager activity.
type Stats struct {
	TotalSessions int        `json:"total_sessions"`
	LastSaved     *time.Time `json:"last_saved,omitempty"`
	LastRestored  *time.Time `json:"last_restored,omitempty"`
}

// Desktop captures and replaces the live workspace.
type Desktop interface {
	CaptureWorkspace() Workspace
	RestoreWorkspace(Workspace) error
}

// Manager keeps saved sessions in memory.
type Manager struct {
	sessions sync.Map // map[string]*Session
	desktop  Desktop
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	now      func() time.Time

	mu           sync.RWMutex
	lastSaved    *time.Time
	lastRestored *time.Time
}

// NewManager creates a session manager for desktop.
func NewManager(desktop Desktop, logger *logging.Logger) *Manager {
	return &Manager{
		desktop: desktop,
		logger:  logging.OrNop(logger).Named("session"),
		now:     time.Now,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Save captures the current workspace under name.
func (m *Manager) Save(name, description string) (*Session, error) {
	if err := utils.ValidateName(name, "name"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := utils.ValidateDescription(description, "description", false); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Capture without holding mu; the desktop takes its own lock.
	ws := m.desktop.CaptureWorkspace()

	now := m.now()
	session := &Session{
		ID:          id.NewSessionID().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		Workspace:   cloneWorkspace(ws),
	}
	m.sessions.Store(session.ID, session)

	m.mu.Lock()
	m.lastSaved = &now
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsSaved()
	}
	m.logger.Info("Session saved",
		zap.String("session_id", session.ID),
		zap.String("name", name),
		zap.Int("windows", len(ws.Windows)),
	)
	return clone(session), nil
}

// Load returns a copy of a saved session.
func (m *Manager) Load(sessionID string) (*Session, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("load %s: %w", sessionID, ErrNotFound)
	}
	return clone(value.(*Session)), nil
}

// Restore replaces the live workspace with a saved one.
func (m *Manager) Restore(sessionID string) (*Session, error) {
	session, err := m.Load(sessionID)
	if err != nil {
		return nil, err
	}

	if err := m.desktop.RestoreWorkspace(session.Workspace); err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", sessionID, err)
	}

	now := m.now()
	m.mu.Lock()
	m.lastRestored = &now
	m.mu.Unlock()

	m.logger.Info("Session restored",
		zap.String("session_id", sessionID),
		zap.Int("windows", len(session.Workspace.Windows)),
	)
	return session, nil
}

// List returns metadata for every session, newest first.
func (m *Manager) List() []Metadata {
	out := []Metadata{}
	m.sessions.Range(func(_, value interface{}) bool {
		s := value.(*Session)
		out = append(out, Metadata{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			CreatedAt:   s.CreatedAt,
			WindowCount: len(s.Workspace.Windows),
		})
		return true
	})

	// ULIDs sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Delete removes a session.
func (m *Manager) Delete(sessionID string) error {
	if _, loaded := m.sessions.LoadAndDelete(sessionID); !loaded {
		return fmt.Errorf("delete %s: %w", sessionID, ErrNotFound)
	}
	m.logger.Info("Session deleted", zap.String("session_id", sessionID))
	return nil
}

// Stats returns session manager statistics
func (m *Manager) Stats() Stats {
	var total int
	m.sessions.Range(func(_, _ interface{}) bool {
		total++
		return true
	})

	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		TotalSessions: total,
		LastSaved:     m.lastSaved,
		LastRestored:  m.lastRestored,
	}
}

func clone(s *Session) *Session {
	c := *s
	c.Workspace = cloneWorkspace(s.Workspace)
	return &c
}

func cloneWorkspace(ws Workspace) Workspace {
	return Workspace{
		Windows: append([]window.Record{}, ws.Windows...),
		Active:  ws.Active,
		FS:      ws.FS.Clone(),
	}
}
