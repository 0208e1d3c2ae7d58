package terminal

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

// DefaultScrollback is used when Options.Scrollback is unset.
const DefaultScrollback = 1000

var welcome = []Line{
	{Text: "Chimera Kernel v6.5.0-hybrid (TTY1)", Type: LineSystem},
	{Text: "Welcome to the HybridOS Terminal. AI assistance active.", Type: LineSystem},
	{Text: `Type "help" for a list of supported commands.`, Type: LineSystem},
	{Text: `Try: "ai explain quantum computing"`, Type: LineSystem},
	{Text: "", Type: LineSystem},
}

// Asker answers "ai" queries. where describes the calling context.
type Asker interface {
	Ask(ctx context.Context, prompt, where string) string
}

// UpdateFunc receives a snapshot after every change, including late
// assistant replies.
type UpdateFunc func(Snapshot)

// Options configures a Session.
type Options struct {
	Scrollback int
	Logger     *logging.Logger
	Metrics    *monitoring.Metrics
	Now        func() time.Time
	OnUpdate   UpdateFunc
}

// Session is one terminal window.
type Session struct {
	fs    *vfs.FS
	asker Asker
	lines *Scrollback

	logger   *logging.Logger
	metrics  *monitoring.Metrics
	now      func() time.Time
	started  time.Time
	onUpdate UpdateFunc

	mu      sync.Mutex
	cwd     string
	loading bool
	closed  bool
}

// NewSession starts a session in the home directory.
func NewSession(fs *vfs.FS, asker Asker, opts Options) *Session {
	if opts.Scrollback <= 0 {
		opts.Scrollback = DefaultScrollback
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		fs:       fs,
		asker:    asker,
		lines:    NewScrollback(opts.Scrollback),
		logger:   logging.OrNop(opts.Logger).Named("terminal"),
		metrics:  opts.Metrics,
		now:      opts.Now,
		started:  opts.Now(),
		onUpdate: opts.OnUpdate,
		cwd:      vfs.HomeDir,
	}
	s.lines.Append(welcome...)
	return s
}

// Exec runs one line of input. Blank input is ignored.
func (s *Session) Exec(input string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.loading {
		s.mu.Unlock()
		return ErrBusy
	}

	fields := strings.Fields(input)
	if len(fields) == 0 {
		s.mu.Unlock()
		return nil
	}

	s.lines.Append(Line{Text: fmt.Sprintf("%s %s", s.prompt(), input), Type: LineInput})

	name := strings.ToLower(fields[0])
	args := fields[1:]

	label := name
	if name == "ai" || name == "ask" {
		s.startAsk(strings.Join(args, " "))
	} else if cmd, ok := commands[name]; ok {
		s.lines.Append(cmd(s, args)...)
	} else {
		label = "unknown"
		s.lines.Append(errorf("bash: %s: command not found", name))
	}

	snap := s.snapshot()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordCommand(label)
	}
	s.logger.Debug("Command executed", zap.String("command", name), zap.String("cwd", snap.Cwd))
	s.notify(snap)
	return nil
}

// startAsk must be called with mu held.
func (s *Session) startAsk(query string) {
	if query == "" {
		s.lines.Append(errorf("Usage: ai [your question]"))
		return
	}
	if s.asker == nil {
		s.lines.Append(errorf("ai: assistant unavailable"))
		return
	}

	s.loading = true
	where := "Terminal AI Integration at " + s.cwd
	go s.finishAsk(query, where)
}

func (s *Session) finishAsk(query, where string) {
	reply := s.asker.Ask(context.Background(), query, where)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug("Dropped assistant reply for closed terminal")
		return
	}
	s.loading = false
	s.lines.Append(Line{Text: reply, Type: LineOutput})
	snap := s.snapshot()
	s.mu.Unlock()

	s.notify(snap)
}

// Close marks the session closed. Pending assistant replies are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.loading = false
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Cwd returns the working directory.
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

// Loading reports whether an assistant request is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Cwd:     s.cwd,
		Prompt:  s.prompt(),
		Lines:   s.lines.Lines(),
		Loading: s.loading,
		Closed:  s.closed,
	}
}

func (s *Session) prompt() string {
	return fmt.Sprintf("user@chimera:%s$", s.cwd)
}

func (s *Session) notify(snap Snapshot) {
	if s.onUpdate != nil {
		s.onUpdate(snap)
	}
}

func output(text string) Line {
	return Line{Text: text, Type: LineOutput}
}

func errorf(format string, args ...interface{}) Line {
	return Line{Text: fmt.Sprintf(format, args...), Type: LineError}
}
