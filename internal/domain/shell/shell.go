package shell

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/files"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/monitor"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/settings"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

// DockSize caps the number of pinned apps in the taskbar.
const DockSize = 10

var ErrViewNotOpen = errors.New("view not open")

// Deps wires a Shell to its collaborators. Only Catalog is required; the
// rest fall back to fresh in-memory instances.
type Deps struct {
	Catalog         *apps.Catalog
	FS              *vfs.FS
	Settings        *settings.Store
	Assistant       Asker
	Desktop         config.DesktopConfig
	Monitor         monitor.Options
	Updater         settings.UpdaterOptions
	Logger          *logging.Logger
	Metrics         *monitoring.Metrics
	Now             func() time.Time
	NotificationTTL time.Duration
}

// MenuBar is the top bar for the foreground app.
type MenuBar struct {
	App   string   `json:"app"`
	AppID apps.ID  `json:"app_id,omitempty"`
	Menus []string `json:"menus"`
}

// DockItem is one pinned app in the taskbar.
type DockItem struct {
	ID      apps.ID `json:"id"`
	Name    string  `json:"name"`
	Running bool    `json:"running"`
	Active  bool    `json:"active"`
}

// DragInfo reports the pointer drag in progress.
type DragInfo struct {
	State  string  `json:"state"`
	Window apps.ID `json:"window,omitempty"`
}

// Appearance is the personalization the whole desktop is drawn with.
type Appearance struct {
	Accent    settings.Accent `json:"accent"`
	Wallpaper string          `json:"wallpaper"`
}

// Snapshot is everything needed to draw the desktop.
type Snapshot struct {
	Windows       []window.Record `json:"windows"`
	Frames        []window.Frame  `json:"frames"`
	Active        apps.ID         `json:"active,omitempty"`
	Overlays      Overlays        `json:"overlays"`
	MenuBar       MenuBar         `json:"menubar"`
	Dock          []DockItem      `json:"dock"`
	Notifications []Notification  `json:"notifications"`
	Drag          DragInfo        `json:"drag"`
	Appearance    Appearance      `json:"appearance"`
	Viewport      window.Size     `json:"viewport"`
}

// Shell is the desktop session.
type Shell struct {
	mu            sync.RWMutex
	windows       *window.Manager
	views         map[apps.ID]View // Protected by mu, one per open window
	factories     map[apps.ID]ViewFactory
	overlays      Overlays       // Protected by mu
	notifications []Notification // Protected by mu

	catalog  *apps.Catalog
	fs       *vfs.FS
	settings *settings.Store
	sampler  *monitor.Sampler
	env      *Env
	viewport window.Size

	logger          *logging.Logger
	metrics         *monitoring.Metrics
	now             func() time.Time
	notificationTTL time.Duration

	subMu   sync.RWMutex
	subs    map[int]func(Event)
	nextSub int
}

// New builds a shell with no open windows and posts the welcome toast.
func New(deps Deps) *Shell {
	logger := logging.OrNop(deps.Logger)
	if deps.Catalog == nil {
		deps.Catalog = apps.Default()
	}
	if deps.FS == nil {
		deps.FS = vfs.New(nil)
	}
	if deps.Settings == nil {
		deps.Settings = settings.NewStore(logger)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NotificationTTL <= 0 {
		deps.NotificationTTL = NotificationTTL
	}
	viewport := window.Size{Width: deps.Desktop.ViewportWidth, Height: deps.Desktop.ViewportHeight}
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = window.Size{Width: 1440, Height: 900}
	}

	s := &Shell{
		windows:         window.NewManager(deps.Catalog, logger).WithMetrics(deps.Metrics),
		views:           make(map[apps.ID]View),
		factories:       defaultFactories(),
		catalog:         deps.Catalog,
		fs:              deps.FS,
		settings:        deps.Settings,
		viewport:        viewport,
		logger:          logger.Named("shell"),
		metrics:         deps.Metrics,
		now:             deps.Now,
		notificationTTL: deps.NotificationTTL,
		subs:            make(map[int]func(Event)),
	}

	monitorOpts := deps.Monitor
	monitorOpts.Windows = s.windowTitles
	if monitorOpts.Logger == nil {
		monitorOpts.Logger = logger
	}
	if monitorOpts.Period <= 0 {
		monitorOpts.Period = deps.Desktop.MetricsInterval
	}
	s.sampler = monitor.NewSampler(monitorOpts)

	s.env = &Env{
		FS:         deps.FS,
		Assistant:  deps.Assistant,
		Settings:   deps.Settings,
		Sampler:    s.sampler,
		Logger:     logger,
		Metrics:    deps.Metrics,
		Scrollback: deps.Desktop.Scrollback,
		Now:        deps.Now,
		Updater:    deps.Updater,
		Publish:    s.publish,
	}

	deps.FS.OnMutate(s.fsMutated)
	s.Notify(WelcomeMessage)
	return s
}

// RegisterView replaces the view factory for id.
func (s *Shell) RegisterView(id apps.ID, factory ViewFactory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factories[id] = factory
}

// Launch opens id, or restores and raises it when already open. Opening
// an app closes the launcher panels. A settings launch may pick the tab;
// any launch may carry file content for the notepad.
func (s *Shell) Launch(id apps.ID, opts LaunchOptions) (window.Record, error) {
	var tab settings.Tab
	if id == apps.Settings && opts.Tab != "" {
		parsed, err := settings.ParseTab(opts.Tab)
		if err != nil {
			return window.Record{}, err
		}
		tab = parsed
	}

	s.mu.Lock()
	rec := s.launch(id, opts, tab)
	s.mu.Unlock()

	s.changed()
	return rec, nil
}

// launch must be called with mu held.
func (s *Shell) launch(id apps.ID, opts LaunchOptions, tab settings.Tab) window.Record {
	s.overlays.StartMenu = false
	s.overlays.Search = false
	s.overlays.MissionControl = false
	s.overlays.ActiveMenu = ""

	if tab != "" {
		if err := s.settings.SetTab(tab); err != nil {
			s.logger.Warn("Failed to select settings tab", zap.String("tab", string(tab)), zap.Error(err))
		}
	}

	rec, created := s.windows.Launch(id)
	if view, ok := s.views[id]; ok && !created {
		if r, ok := view.(Relauncher); ok {
			r.Relaunch(opts)
		}
		return rec
	}
	s.mount(id, opts)
	return rec
}

// mount must be called with mu held.
func (s *Shell) mount(id apps.ID, opts LaunchOptions) {
	if old, ok := s.views[id]; ok {
		old.Close()
	}
	factory, ok := s.factories[id]
	if !ok {
		factory = newGenericView
	}
	s.views[id] = factory(s.env, id, opts)
	s.logger.Debug("View mounted", zap.String("app_id", string(id)))
}

// Close closes the window and its view.
func (s *Shell) Close(id apps.ID) bool {
	s.mu.Lock()
	ok := s.close(id)
	s.mu.Unlock()

	if ok {
		s.changed()
	}
	return ok
}

// close must be called with mu held.
func (s *Shell) close(id apps.ID) bool {
	if !s.windows.Close(id) {
		return false
	}
	if view, ok := s.views[id]; ok {
		view.Close()
		delete(s.views, id)
	}
	return true
}

// Minimize hides the window. Nothing is active afterwards.
func (s *Shell) Minimize(id apps.ID) bool {
	return s.apply(func() bool { return s.windows.Minimize(id) })
}

// ToggleMaximize flips between the maximized and floating frame.
func (s *Shell) ToggleMaximize(id apps.ID) bool {
	return s.apply(func() bool { return s.windows.ToggleMaximize(id) })
}

// Focus raises and activates the window, leaving mission control.
func (s *Shell) Focus(id apps.ID) bool {
	return s.apply(func() bool {
		if !s.windows.Focus(id) {
			return false
		}
		s.overlays.MissionControl = false
		return true
	})
}

// apply runs fn under mu and publishes when it reports a change.
func (s *Shell) apply(fn func() bool) bool {
	s.mu.Lock()
	ok := fn()
	s.mu.Unlock()

	if ok {
		s.changed()
	}
	return ok
}

// PointerDown handles a press inside window id. Any press focuses the
// window; the controls then act and the title bar starts a drag.
func (s *Shell) PointerDown(id apps.ID, at window.Point, target window.Target) bool {
	return s.apply(func() bool {
		if !s.windows.Focus(id) {
			return false
		}
		switch target {
		case window.TargetClose:
			s.close(id)
		case window.TargetMinimize:
			s.windows.Minimize(id)
		case window.TargetMaximize:
			s.windows.ToggleMaximize(id)
		default:
			s.windows.BeginDrag(id, at, target)
		}
		return true
	})
}

// PointerMove drags the grabbed window, if any.
func (s *Shell) PointerMove(at window.Point) (window.Record, bool) {
	s.mu.Lock()
	rec, moved := s.windows.DragMove(at)
	s.mu.Unlock()

	if moved {
		s.changed()
	}
	return rec, moved
}

// PointerUp releases the drag.
func (s *Shell) PointerUp() {
	s.mu.Lock()
	state, _ := s.windows.DragState()
	s.windows.EndDrag()
	s.mu.Unlock()

	if state == window.DragDragging {
		s.changed()
	}
}

// OpenFile opens name from the file manager's current directory. Folders
// are entered; documents and shortcuts launch their app.
func (s *Shell) OpenFile(name string) (files.Action, error) {
	s.mu.Lock()
	view, ok := s.views[apps.Files].(*FilesView)
	if !ok {
		s.mu.Unlock()
		return files.Action{}, fmt.Errorf("files: %w", ErrViewNotOpen)
	}
	action, err := view.browser.Open(name)
	if err == nil {
		s.dispatch(action)
	}
	s.mu.Unlock()

	if err != nil {
		return files.Action{}, err
	}
	s.changed()
	return action, nil
}

// OpenPath opens an absolute path the way a desktop icon does. A folder
// opens in the file manager.
func (s *Shell) OpenPath(p string) (files.Action, error) {
	node, err := s.fs.Resolve(p)
	if err != nil {
		return files.Action{}, err
	}
	action := files.ActionFor(node, p)

	s.mu.Lock()
	s.dispatch(action)
	s.mu.Unlock()

	if action.Kind != files.ActionNone {
		s.changed()
	}
	return action, nil
}

// dispatch must be called with mu held.
func (s *Shell) dispatch(action files.Action) {
	switch action.Kind {
	case files.ActionLaunch:
		s.launch(action.App, LaunchOptions{FileContent: action.Content, HasContent: action.HasContent}, "")
	case files.ActionNavigate:
		s.launch(apps.Files, LaunchOptions{}, "")
		if view, ok := s.views[apps.Files].(*FilesView); ok {
			view.browser.Navigate(action.Path)
		}
	}
}

// Windows returns the records in registry order.
func (s *Shell) Windows() []window.Record {
	return s.windows.List()
}

// Window returns the record for id.
func (s *Shell) Window(id apps.ID) (window.Record, bool) {
	return s.windows.Get(id)
}

// Stats summarizes the window registry.
func (s *Shell) Stats() window.Stats {
	return s.windows.Stats()
}

func (s *Shell) Catalog() *apps.Catalog    { return s.catalog }
func (s *Shell) FS() *vfs.FS               { return s.fs }
func (s *Shell) Settings() *settings.Store { return s.settings }
func (s *Shell) Sampler() *monitor.Sampler { return s.sampler }
func (s *Shell) Viewport() window.Size     { return s.viewport }

// View returns the view behind window id.
func (s *Shell) View(id apps.ID) (View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.views[id]
	return v, ok
}

func (s *Shell) Terminal() (*TerminalView, bool) { return viewAs[*TerminalView](s, apps.Terminal) }
func (s *Shell) Files() (*FilesView, bool)       { return viewAs[*FilesView](s, apps.Files) }
func (s *Shell) Notepad() (*NotepadView, bool)   { return viewAs[*NotepadView](s, apps.Notepad) }
func (s *Shell) SettingsView() (*SettingsView, bool) {
	return viewAs[*SettingsView](s, apps.Settings)
}
func (s *Shell) Monitor() (*MonitorView, bool) { return viewAs[*MonitorView](s, apps.Monitor) }
func (s *Shell) Chat() (*ChatView, bool)       { return viewAs[*ChatView](s, apps.AI) }

func viewAs[T View](s *Shell, id apps.ID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.views[id].(T)
	return v, ok
}

// MenuBar returns the foreground app's name and menus, or the Finder set.
func (s *Shell) MenuBar() MenuBar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menuBar()
}

func (s *Shell) menuBar() MenuBar {
	active, ok := s.windows.Active()
	if !ok {
		return MenuBar{App: apps.FinderName, Menus: s.catalog.Menus("")}
	}
	if info, found := s.catalog.Lookup(active); found {
		return MenuBar{App: info.Name, AppID: active, Menus: s.catalog.Menus(active)}
	}
	return MenuBar{App: apps.FinderName, Menus: s.catalog.Menus("")}
}

// Dock returns the pinned apps with their running state.
func (s *Shell) Dock() []DockItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dock()
}

func (s *Shell) dock() []DockItem {
	active, _ := s.windows.Active()
	pinned := s.catalog.Pinned(DockSize)
	items := make([]DockItem, 0, len(pinned))
	for _, info := range pinned {
		_, running := s.windows.Get(info.ID)
		items = append(items, DockItem{
			ID:      info.ID,
			Name:    info.Name,
			Running: running,
			Active:  info.ID == active,
		})
	}
	return items
}

// Snapshot captures the drawable desktop state.
func (s *Shell) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active, _ := s.windows.Active()
	dragState, dragged := s.windows.DragState()
	return Snapshot{
		Windows:       s.windows.List(),
		Frames:        s.windows.Visible(s.viewport),
		Active:        active,
		Overlays:      s.overlays,
		MenuBar:       s.menuBar(),
		Dock:          s.dock(),
		Notifications: s.liveNotifications(),
		Drag:          DragInfo{State: dragState.String(), Window: dragged},
		Appearance: Appearance{
			Accent:    s.settings.Accent(),
			Wallpaper: s.settings.Wallpaper(),
		},
		Viewport: s.viewport,
	}
}

func (s *Shell) windowTitles() []string {
	records := s.windows.List()
	titles := make([]string, 0, len(records))
	for _, rec := range records {
		titles = append(titles, rec.Title)
	}
	return titles
}

// fsMutated runs with the file system lock held and must not touch fs.
func (s *Shell) fsMutated(op, p string) {
	if s.metrics != nil {
		s.metrics.RecordVFSMutation(op)
	}
	s.publish(Event{Type: EventVFS, Data: VFSChange{Op: op, Path: p}})
}
