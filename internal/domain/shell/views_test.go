package shell

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/ai"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/settings"
)

func TestChatConversation(t *testing.T) {
	s := newTestShell(t, &stubAsker{reply: "echo: "})
	launch(t, s, apps.AI)

	chat, ok := s.Chat()
	require.True(t, ok)

	state := chat.State()
	require.Len(t, state.Messages, 1)
	assert.Equal(t, Message{Role: RoleAssistant, Content: ChatGreeting}, state.Messages[0])

	require.NoError(t, chat.Send("   "))
	assert.Len(t, chat.State().Messages, 1)

	require.NoError(t, chat.Send("hello"))
	assert.Eventually(t, func() bool {
		st := chat.State()
		return !st.Typing && len(st.Messages) == 3
	}, time.Second, 5*time.Millisecond)

	state = chat.State()
	assert.Equal(t, Message{Role: RoleUser, Content: "hello"}, state.Messages[1])
	assert.Equal(t, Message{Role: RoleAssistant, Content: "echo: hello"}, state.Messages[2])
}

func TestChatBusyWhileTyping(t *testing.T) {
	asker := &stubAsker{gate: make(chan struct{})}
	s := newTestShell(t, asker)
	launch(t, s, apps.AI)
	chat, _ := s.Chat()

	require.NoError(t, chat.Send("first"))
	assert.True(t, chat.State().Typing)
	assert.ErrorIs(t, chat.Send("second"), ErrChatBusy)

	close(asker.gate)
	assert.Eventually(t, func() bool { return !chat.State().Typing }, time.Second, 5*time.Millisecond)
	assert.NoError(t, chat.Send("second"))
}

func TestChatCloseDropsReply(t *testing.T) {
	asker := &stubAsker{gate: make(chan struct{})}
	s := newTestShell(t, asker)
	launch(t, s, apps.AI)
	chat, _ := s.Chat()

	require.NoError(t, chat.Send("anyone there"))
	s.Close(apps.AI)
	close(asker.gate)

	assert.Never(t, func() bool { return len(chat.State().Messages) > 2 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.False(t, chat.State().Typing)
}

func TestChatWithoutAssistant(t *testing.T) {
	s := newTestShell(t, nil)
	launch(t, s, apps.AI)
	chat, _ := s.Chat()

	require.NoError(t, chat.Send("hi"))
	assert.Eventually(t, func() bool {
		msgs := chat.State().Messages
		return len(msgs) == 3 && msgs[2].Content == ai.FailedReply
	}, time.Second, 5*time.Millisecond)
}

func TestSettingsViewUpdater(t *testing.T) {
	s := newTestShell(t, nil)
	rec := &recorder{}
	s.Subscribe(rec.record)
	launch(t, s, apps.Settings)

	view, ok := s.SettingsView()
	require.True(t, ok)
	require.NoError(t, view.Updater().Check())

	assert.Eventually(t, func() bool {
		return view.State().Update.Phase == settings.UpdateAvailable
	}, time.Second, 5*time.Millisecond)
	assert.NotEmpty(t, rec.ofType(EventUpdate))

	s.Close(apps.Settings)
	assert.ErrorIs(t, view.Updater().Check(), settings.ErrUpdaterStopped)
}

func TestTerminalSharesFileSystemWithFiles(t *testing.T) {
	s := newTestShell(t, nil)
	launch(t, s, apps.Terminal)
	launch(t, s, apps.Files)

	term, _ := s.Terminal()
	require.NoError(t, term.Session().Exec("mkdir Projects"))

	fm, _ := s.Files()
	var names []string
	for _, e := range fm.Browser().Entries() {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "Projects")
}

func TestConcurrentDesktopActions(t *testing.T) {
	s := newTestShell(t, nil)
	ids := []apps.ID{apps.Terminal, apps.Files, apps.Notepad, apps.Music}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := ids[i%len(ids)]
			_, _ = s.Launch(id, LaunchOptions{})
			s.Focus(id)
			_ = s.Snapshot()
			if i%5 == 0 {
				s.Close(id)
			}
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	seen := map[apps.ID]bool{}
	for _, rec := range snap.Windows {
		assert.False(t, seen[rec.ID], "duplicate window %s", rec.ID)
		seen[rec.ID] = true
		_, ok := s.View(rec.ID)
		assert.True(t, ok, rec.ID)
	}
	assert.Len(t, s.openApps(), len(snap.Windows))
}

func TestWelcomeNotification(t *testing.T) {
	s := newTestShell(t, nil)

	toasts := s.Notifications()
	require.Len(t, toasts, 1)
	assert.Equal(t, WelcomeMessage, toasts[0].Text)
	assert.True(t, strings.HasPrefix(toasts[0].ID, "ntf_"))
}

type steppedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNotificationsExpire(t *testing.T) {
	clock := &steppedClock{now: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)}
	s := New(Deps{Now: clock.Now, NotificationTTL: time.Hour})

	clock.Advance(30 * time.Minute)
	s.Notify("Update installed")
	require.Len(t, s.Notifications(), 2)

	clock.Advance(45 * time.Minute)
	toasts := s.Notifications()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Update installed", toasts[0].Text)

	clock.Advance(time.Hour)
	assert.Empty(t, s.Notifications())
	assert.Empty(t, s.Snapshot().Notifications)
}
