package shell

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/session"
)

var ErrInvalidWorkspace = errors.New("invalid workspace")

// CaptureWorkspace copies the windows, the active id and the file system.
func (s *Shell) CaptureWorkspace() session.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active, _ := s.windows.Active()
	return session.Workspace{
		Windows: s.windows.List(),
		Active:  active,
		FS:      s.fs.Snapshot(),
	}
}

// RestoreWorkspace replaces the live desktop with ws. Every view is
// rebuilt from scratch, so terminal history and notepad edits reset.
func (s *Shell) RestoreWorkspace(ws session.Workspace) error {
	if ws.FS == nil {
		return fmt.Errorf("restore: missing file system: %w", ErrInvalidWorkspace)
	}

	s.mu.Lock()
	if err := s.fs.Replace(ws.FS); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("restore: %w", err)
	}

	for id, view := range s.views {
		view.Close()
		delete(s.views, id)
	}
	s.windows.Restore(ws.Windows, ws.Active)
	for _, rec := range s.windows.List() {
		s.mount(rec.ID, LaunchOptions{})
	}
	s.overlays = Overlays{}
	count := len(s.views)
	s.mu.Unlock()

	s.logger.Info("Workspace restored", zap.Int("windows", count), zap.String("active", string(ws.Active)))
	s.changed()
	return nil
}

var _ session.Desktop = (*Shell)(nil)

// openApps lists the ids with a mounted view, for tests and debugging.
func (s *Shell) openApps() []apps.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]apps.ID, 0, len(s.views))
	for id := range s.views {
		ids = append(ids, id)
	}
	return ids
}
