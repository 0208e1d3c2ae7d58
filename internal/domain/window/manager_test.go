package window

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

func newManager() *Manager {
	return NewManager(apps.Default(), nil)
}

func maxZ(records []Record) int {
	top := 0
	for _, r := range records {
		if r.ZIndex > top {
			top = r.ZIndex
		}
	}
	return top
}

func TestLaunchCreatesRecord(t *testing.T) {
	m := newManager()

	rec, created := m.Launch(apps.Terminal)
	require.True(t, created)
	assert.Equal(t, Record{
		ID:     apps.Terminal,
		Title:  "Terminal",
		ZIndex: 1,
		X:      60,
		Y:      60,
		Width:  850,
		Height: 580,
	}, rec)

	active, ok := m.Active()
	assert.True(t, ok)
	assert.Equal(t, apps.Terminal, active)
}

func TestLaunchCascadesAndSizes(t *testing.T) {
	m := newManager()

	m.Launch(apps.Files)
	m.Launch(apps.Calculator)
	tiktok, _ := m.Launch(apps.TikTok)
	yt, _ := m.Launch(apps.YouTube)

	calc, ok := m.Get(apps.Calculator)
	require.True(t, ok)
	assert.Equal(t, 90, calc.X)
	assert.Equal(t, 90, calc.Y)
	assert.Equal(t, 320, calc.Width)
	assert.Equal(t, 480, calc.Height)

	assert.Equal(t, 120, tiktok.X)
	assert.Equal(t, 400, tiktok.Width)
	assert.Equal(t, 700, tiktok.Height)

	assert.Equal(t, 150, yt.Y)
	assert.Equal(t, 1000, yt.Width)
	assert.Equal(t, 580, yt.Height)
}

func TestLaunchUnknownAppUsesFallbackTitle(t *testing.T) {
	m := newManager()

	rec, _ := m.Launch("mystery")
	assert.Equal(t, "New Window", rec.Title)
	assert.Equal(t, 850, rec.Width)
}

func TestLaunchTwiceIsFocus(t *testing.T) {
	m := newManager()

	first, created := m.Launch(apps.Terminal)
	require.True(t, created)
	m.Minimize(apps.Terminal)

	second, created := m.Launch(apps.Terminal)
	assert.False(t, created)

	list := m.List()
	require.Len(t, list, 1)
	assert.Equal(t, apps.Terminal, list[0].ID)
	assert.False(t, second.IsMinimized)
	assert.Greater(t, second.ZIndex, first.ZIndex)
	assert.Equal(t, first.X, second.X)

	active, _ := m.Active()
	assert.Equal(t, apps.Terminal, active)
}

func TestLaunchTerminalTwiceScenario(t *testing.T) {
	m := newManager()

	for i := 0; i < 2; i++ {
		m.Launch(apps.Terminal)

		list := m.List()
		require.Len(t, list, 1)
		assert.Equal(t, apps.Terminal, list[0].ID)
		assert.False(t, list[0].IsMinimized)

		active, ok := m.Active()
		assert.True(t, ok)
		assert.Equal(t, apps.Terminal, active)
	}
}

func TestFocusRaisesToTop(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Launch(apps.Files)
	m.Launch(apps.Browser)

	require.True(t, m.Focus(apps.Terminal))
	rec, _ := m.Get(apps.Terminal)
	assert.Equal(t, 4, rec.ZIndex)
	assert.Equal(t, maxZ(m.List()), rec.ZIndex)

	require.True(t, m.Focus(apps.Files))
	files, _ := m.Get(apps.Files)
	term, _ := m.Get(apps.Terminal)
	assert.Equal(t, 5, files.ZIndex)
	assert.NotEqual(t, term.ZIndex, files.ZIndex)

	assert.False(t, m.Focus("ghost"))
}

func TestFocusRepeatedlySameWindow(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)

	m.Focus(apps.Terminal)
	m.Focus(apps.Terminal)

	rec, _ := m.Get(apps.Terminal)
	assert.Equal(t, 3, rec.ZIndex)
}

func TestMinimizeKeepsRecordAndClearsActive(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Launch(apps.Files)

	require.True(t, m.Minimize(apps.Terminal))

	assert.Len(t, m.List(), 2)
	rec, ok := m.Get(apps.Terminal)
	require.True(t, ok)
	assert.True(t, rec.IsMinimized)

	_, ok = m.Active()
	assert.False(t, ok, "minimize clears the active window even though files is still visible")

	visible := m.Visible(Size{Width: 1440, Height: 900})
	require.Len(t, visible, 1)
	assert.Equal(t, apps.Files, visible[0].ID)

	assert.False(t, m.Minimize("ghost"))
}

func TestThreeWindowScenario(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Launch(apps.Files)
	m.Launch(apps.Browser)

	for i, id := range []apps.ID{apps.Terminal, apps.Files, apps.Browser} {
		rec, _ := m.Get(id)
		require.Equal(t, i+1, rec.ZIndex)
	}

	m.Minimize(apps.Browser)
	m.Focus(apps.Terminal)

	term, _ := m.Get(apps.Terminal)
	assert.Equal(t, 4, term.ZIndex)
	active, _ := m.Active()
	assert.Equal(t, apps.Terminal, active)

	for _, rec := range m.List() {
		assert.Equal(t, rec.ID == apps.Browser, rec.IsMinimized, rec.ID)
	}
}

func TestCloseActivePicksLastAdded(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Launch(apps.Files)
	m.Launch(apps.Browser)
	m.Focus(apps.Terminal)

	require.True(t, m.Close(apps.Terminal))
	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, apps.Browser, active, "last added remaining record, not highest z")

	m.Focus(apps.Files)
	m.Close(apps.Files)
	active, _ = m.Active()
	assert.Equal(t, apps.Browser, active)

	m.Close(apps.Browser)
	_, ok = m.Active()
	assert.False(t, ok)
	assert.Empty(t, m.List())
}

func TestCloseNonActiveKeepsActive(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Launch(apps.Files)

	require.True(t, m.Close(apps.Terminal))
	active, _ := m.Active()
	assert.Equal(t, apps.Files, active)

	assert.False(t, m.Close(apps.Terminal))
}

func TestCloseWithNoActiveStaysNone(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Launch(apps.Files)
	m.Minimize(apps.Files)

	m.Close(apps.Terminal)
	_, ok := m.Active()
	assert.False(t, ok)
}

func TestFirstWindowAfterEmptyGetsZOne(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Focus(apps.Terminal)
	m.Close(apps.Terminal)

	rec, _ := m.Launch(apps.Files)
	assert.Equal(t, 1, rec.ZIndex)
	assert.Equal(t, 60, rec.X)
}

func TestToggleMaximize(t *testing.T) {
	m := newManager()
	m.Launch(apps.Browser)

	require.True(t, m.ToggleMaximize(apps.Browser))
	rec, _ := m.Get(apps.Browser)
	assert.True(t, rec.IsMaximized)

	frames := m.Visible(Size{Width: 1440, Height: 900})
	require.Len(t, frames, 1)
	assert.Equal(t, Rect{X: 0, Y: 32, Width: 1440, Height: 812}, frames[0].Rect)
	assert.True(t, frames[0].Active)

	m.ToggleMaximize(apps.Browser)
	rec, _ = m.Get(apps.Browser)
	assert.False(t, rec.IsMaximized)

	assert.False(t, m.ToggleMaximize("ghost"))
}

func TestVisibleOrderedByZ(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Launch(apps.Files)
	m.Launch(apps.Browser)
	m.Focus(apps.Terminal)

	frames := m.Visible(Size{Width: 1440, Height: 900})
	require.Len(t, frames, 3)
	assert.Equal(t, apps.Files, frames[0].ID)
	assert.Equal(t, apps.Browser, frames[1].ID)
	assert.Equal(t, apps.Terminal, frames[2].ID)
	assert.True(t, frames[2].Active)
	assert.False(t, frames[0].Active)
	assert.Equal(t, Rect{X: 60, Y: 60, Width: 850, Height: 580}, frames[2].Rect)
}

func TestStats(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)
	m.Launch(apps.Files)
	m.ToggleMaximize(apps.Files)
	m.Minimize(apps.Terminal)

	s := m.Stats()
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Visible)
	assert.Equal(t, 1, s.Minimized)
	assert.Equal(t, 1, s.Maximized)
	assert.Empty(t, s.Active)
}

func TestRestore(t *testing.T) {
	m := newManager()
	m.Launch(apps.Terminal)

	m.Restore([]Record{
		{ID: apps.Files, Title: "Files", ZIndex: 7, X: 10, Y: 20, Width: 850, Height: 580},
		{ID: apps.Music, Title: "Music", ZIndex: 3, IsMinimized: true},
		{ID: apps.Files, Title: "dup"},
	}, apps.Files)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, apps.Files, list[0].ID)
	assert.Equal(t, "Files", list[0].Title)
	active, _ := m.Active()
	assert.Equal(t, apps.Files, active)

	rec, _ := m.Launch(apps.Terminal)
	assert.Equal(t, 8, rec.ZIndex)
	assert.Equal(t, 120, rec.X)

	m.Restore(nil, apps.Files)
	_, ok := m.Active()
	assert.False(t, ok)
}

func TestMetricsRecorded(t *testing.T) {
	metrics := monitoring.NewMetrics()
	m := newManager().WithMetrics(metrics)

	m.Launch(apps.Terminal)
	m.Launch(apps.Files)
	m.Close(apps.Files)

	assert.Equal(t, int64(1), metrics.Snapshot().OpenWindows)
}

// Random operation sequences must preserve the registry invariants.
func TestRandomOperationsPreserveInvariants(t *testing.T) {
	ids := []apps.ID{apps.Terminal, apps.Files, apps.Browser, apps.Notepad, apps.Settings}
	rng := rand.New(rand.NewSource(42))
	m := newManager()

	for step := 0; step < 2000; step++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(5) {
		case 0:
			m.Launch(id)
			rec, _ := m.Get(id)
			require.Equal(t, maxZ(m.List()), rec.ZIndex)
		case 1:
			m.Close(id)
		case 2:
			m.Minimize(id)
		case 3:
			m.ToggleMaximize(id)
		case 4:
			if m.Focus(id) {
				rec, _ := m.Get(id)
				require.Equal(t, maxZ(m.List()), rec.ZIndex)
				active, _ := m.Active()
				require.Equal(t, id, active)
			}
		}

		seen := map[apps.ID]bool{}
		for _, rec := range m.List() {
			require.False(t, seen[rec.ID], "duplicate record for %s", rec.ID)
			seen[rec.ID] = true
		}
		if active, ok := m.Active(); ok {
			require.True(t, seen[active], "active id must be open")
		}
	}
}
