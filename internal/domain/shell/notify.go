package shell

import (
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/id"
)

// NotificationTTL is how long a toast stays on screen.
const NotificationTTL = 5 * time.Second

// WelcomeMessage is posted when the desktop comes up.
const WelcomeMessage = "Welcome back, John. System ready."

// Notification is one toast.
type Notification struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Notify posts a toast and schedules a refresh for when it expires.
func (s *Shell) Notify(text string) Notification {
	now := s.now()
	n := Notification{
		ID:        id.NewNotificationID().String(),
		Text:      text,
		CreatedAt: now,
		ExpiresAt: now.Add(s.notificationTTL),
	}

	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	s.mu.Unlock()

	s.logger.Debug("Notification posted", zap.String("id", n.ID), zap.String("text", text))
	time.AfterFunc(s.notificationTTL, s.expireNotifications)
	s.changed()
	return n
}

// Notifications returns the toasts that have not expired yet.
func (s *Shell) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.liveNotifications()
}

// liveNotifications must be called with mu held.
func (s *Shell) liveNotifications() []Notification {
	now := s.now()
	out := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if now.Before(n.ExpiresAt) {
			out = append(out, n)
		}
	}
	return out
}

func (s *Shell) expireNotifications() {
	s.mu.Lock()
	before := len(s.notifications)
	s.notifications = s.liveNotifications()
	pruned := before != len(s.notifications)
	s.mu.Unlock()

	if pruned {
		s.changed()
	}
}
