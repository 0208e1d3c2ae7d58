package shell

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/files"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/monitor"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/settings"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

// DefaultNotepadContent is shown by a notepad opened without a file.
const DefaultNotepadContent = "New text document...\n\nStart typing here."

// View is the state behind one open window.
type View interface {
	AppID() apps.ID
	Close()
}

// Relauncher is implemented by views that react to being launched again
// while already open.
type Relauncher interface {
	Relaunch(opts LaunchOptions)
}

// LaunchOptions carries what the caller wants the new window to show.
type LaunchOptions struct {
	Tab         string
	FileContent string
	HasContent  bool
}

// Env is what a view factory may use.
type Env struct {
	FS         *vfs.FS
	Assistant  Asker
	Settings   *settings.Store
	Sampler    *monitor.Sampler
	Logger     *logging.Logger
	Metrics    *monitoring.Metrics
	Scrollback int
	Now        func() time.Time
	Updater    settings.UpdaterOptions
	Publish    func(Event)
}

// ViewFactory builds the view for a freshly opened window.
type ViewFactory func(env *Env, id apps.ID, opts LaunchOptions) View

func defaultFactories() map[apps.ID]ViewFactory {
	return map[apps.ID]ViewFactory{
		apps.Terminal: newTerminalView,
		apps.Files:    newFilesView,
		apps.Notepad:  newNotepadView,
		apps.Settings: newSettingsView,
		apps.Monitor:  newMonitorView,
		apps.AI:       newChatView,
	}
}

// GenericView backs apps whose state lives entirely in the front end.
type GenericView struct {
	id apps.ID
}

func newGenericView(_ *Env, id apps.ID, _ LaunchOptions) View {
	return &GenericView{id: id}
}

func (v *GenericView) AppID() apps.ID { return v.id }
func (v *GenericView) Close()         {}

// TerminalView wraps a terminal session on the shared file system.
type TerminalView struct {
	session *terminal.Session
}

func newTerminalView(env *Env, _ apps.ID, _ LaunchOptions) View {
	var asker terminal.Asker
	if env.Assistant != nil {
		asker = env.Assistant
	}
	return &TerminalView{
		session: terminal.NewSession(env.FS, asker, terminal.Options{
			Scrollback: env.Scrollback,
			Logger:     env.Logger,
			Metrics:    env.Metrics,
			Now:        env.Now,
			OnUpdate: func(snap terminal.Snapshot) {
				env.Publish(Event{Type: EventTerminal, Data: snap})
			},
		}),
	}
}

func (v *TerminalView) AppID() apps.ID             { return apps.Terminal }
func (v *TerminalView) Close()                     { v.session.Close() }
func (v *TerminalView) Session() *terminal.Session { return v.session }

// FilesView wraps a file manager browser.
type FilesView struct {
	browser *files.Browser
}

func newFilesView(env *Env, _ apps.ID, _ LaunchOptions) View {
	return &FilesView{browser: files.NewBrowser(env.FS, env.Logger)}
}

func (v *FilesView) AppID() apps.ID          { return apps.Files }
func (v *FilesView) Close()                  {}
func (v *FilesView) Browser() *files.Browser { return v.browser }

// NotepadView holds the text being edited.
type NotepadView struct {
	mu      sync.RWMutex
	content string
}

func newNotepadView(_ *Env, _ apps.ID, opts LaunchOptions) View {
	v := &NotepadView{content: DefaultNotepadContent}
	v.Relaunch(opts)
	return v
}

func (v *NotepadView) AppID() apps.ID { return apps.Notepad }
func (v *NotepadView) Close()         {}

// Relaunch replaces the text when the launch carries file content.
func (v *NotepadView) Relaunch(opts LaunchOptions) {
	if opts.HasContent {
		v.SetContent(opts.FileContent)
	}
}

func (v *NotepadView) Content() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.content
}

func (v *NotepadView) SetContent(content string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.content = content
}

// SettingsView pairs the shared settings store with this window's updater.
type SettingsView struct {
	store   *settings.Store
	updater *settings.Updater
}

// SettingsState is the settings window as the front end renders it.
type SettingsState struct {
	settings.State
	Update settings.UpdateStatus `json:"update"`
}

func newSettingsView(env *Env, _ apps.ID, _ LaunchOptions) View {
	opts := env.Updater
	opts.OnChange = func(status settings.UpdateStatus) {
		env.Publish(Event{Type: EventUpdate, Data: status})
	}
	return &SettingsView{
		store:   env.Settings,
		updater: settings.NewUpdater(opts),
	}
}

func (v *SettingsView) AppID() apps.ID             { return apps.Settings }
func (v *SettingsView) Close()                     { v.updater.Stop() }
func (v *SettingsView) Store() *settings.Store     { return v.store }
func (v *SettingsView) Updater() *settings.Updater { return v.updater }
func (v *SettingsView) State() SettingsState {
	return SettingsState{State: v.store.State(), Update: v.updater.Status()}
}

// MonitorView reads from the shared sampler.
type MonitorView struct {
	sampler *monitor.Sampler
}

func newMonitorView(env *Env, _ apps.ID, _ LaunchOptions) View {
	return &MonitorView{sampler: env.Sampler}
}

func (v *MonitorView) AppID() apps.ID       { return apps.Monitor }
func (v *MonitorView) Close()               {}
func (v *MonitorView) Stats() monitor.Stats { return v.sampler.Snapshot() }
