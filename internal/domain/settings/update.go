package settings

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrUpdateBusy     = errors.New("update already in progress")
	ErrNoUpdateReady  = errors.New("no update available")
	ErrUpdaterStopped = errors.New("updater stopped")
)

// UpdatePhase is the state of the simulated system updater.
type UpdatePhase string

const (
	UpdateIdle       UpdatePhase = "idle"
	UpdateChecking   UpdatePhase = "checking"
	UpdateAvailable  UpdatePhase = "available"
	UpdateInstalling UpdatePhase = "installing"
	UpdateCompleted  UpdatePhase = "completed"
)

// UpdateStatus is reported to the System tab.
type UpdateStatus struct {
	Phase    UpdatePhase `json:"phase"`
	Progress float64     `json:"progress"`
}

// UpdaterOptions tunes the simulation timings.
type UpdaterOptions struct {
	CheckDelay   time.Duration
	InstallTick  time.Duration
	MaxIncrement float64
	Rand         *rand.Rand
	OnChange     func(UpdateStatus)
}

// Updater walks idle, checking, available, installing and completed.
// Checking resolves after CheckDelay; installing advances by a random
// amount up to MaxIncrement each InstallTick until it reaches 100.
type Updater struct {
	opts UpdaterOptions

	mu       sync.Mutex
	phase    UpdatePhase
	progress float64
	stop     chan struct{}
	stopped  bool
}

// NewUpdater creates an idle updater.
func NewUpdater(opts UpdaterOptions) *Updater {
	if opts.CheckDelay <= 0 {
		opts.CheckDelay = 2500 * time.Millisecond
	}
	if opts.InstallTick <= 0 {
		opts.InstallTick = 200 * time.Millisecond
	}
	if opts.MaxIncrement <= 0 {
		opts.MaxIncrement = 8
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Updater{
		opts:  opts,
		phase: UpdateIdle,
		stop:  make(chan struct{}),
	}
}

// Status returns the current phase and progress.
func (u *Updater) Status() UpdateStatus {
	u.mu.Lock()
	defer u.mu.Unlock()
	return UpdateStatus{Phase: u.phase, Progress: u.progress}
}

// Check starts looking for updates.
func (u *Updater) Check() error {
	u.mu.Lock()
	if u.stopped {
		u.mu.Unlock()
		return ErrUpdaterStopped
	}
	if u.phase == UpdateChecking || u.phase == UpdateInstalling {
		u.mu.Unlock()
		return ErrUpdateBusy
	}
	u.phase = UpdateChecking
	u.progress = 0
	status := UpdateStatus{Phase: u.phase}
	u.mu.Unlock()
	u.changed(status)

	go func() {
		select {
		case <-time.After(u.opts.CheckDelay):
			u.transition(UpdateAvailable, 0)
		case <-u.stop:
		}
	}()
	return nil
}

// Install applies an available update.
func (u *Updater) Install() error {
	u.mu.Lock()
	if u.stopped {
		u.mu.Unlock()
		return ErrUpdaterStopped
	}
	if u.phase != UpdateAvailable {
		u.mu.Unlock()
		return ErrNoUpdateReady
	}
	u.phase = UpdateInstalling
	status := UpdateStatus{Phase: u.phase}
	u.mu.Unlock()
	u.changed(status)

	go u.install()
	return nil
}

func (u *Updater) install() {
	ticker := time.NewTicker(u.opts.InstallTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			u.mu.Lock()
			p := u.progress + u.opts.Rand.Float64()*u.opts.MaxIncrement
			u.mu.Unlock()
			if p >= 100 {
				u.transition(UpdateCompleted, 100)
				return
			}
			u.transition(UpdateInstalling, p)
		case <-u.stop:
			return
		}
	}
}

func (u *Updater) transition(phase UpdatePhase, progress float64) {
	u.mu.Lock()
	if u.stopped {
		u.mu.Unlock()
		return
	}
	u.phase = phase
	u.progress = progress
	status := UpdateStatus{Phase: phase, Progress: progress}
	u.mu.Unlock()
	u.changed(status)
}

func (u *Updater) changed(status UpdateStatus) {
	if u.opts.OnChange != nil {
		u.opts.OnChange(status)
	}
}

// Stop halts any pending check or install.
func (u *Updater) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.stopped {
		return
	}
	u.stopped = true
	close(u.stop)
}
