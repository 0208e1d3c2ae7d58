package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/ai"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/search"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/session"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/settings"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/utils"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	shell     *shell.Shell
	sessions  *session.Manager
	search    *search.Service
	assistant *ai.Assistant
	metrics   *monitoring.Metrics
	logger    *logging.Logger
	started   time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(
	sh *shell.Shell,
	sessions *session.Manager,
	searchService *search.Service,
	assistant *ai.Assistant,
	metrics *monitoring.Metrics,
	logger *logging.Logger,
) *Handlers {
	return &Handlers{
		shell:     sh,
		sessions:  sessions,
		search:    searchService,
		assistant: assistant,
		metrics:   metrics,
		logger:    logging.OrNop(logger).Named("api"),
		started:   time.Now(),
	}
}

// Register mounts every route on router.
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	api := router.Group("/api")

	// Desktop
	api.GET("/desktop", h.Desktop)
	api.POST("/desktop/open", h.OpenPath)
	api.GET("/apps", h.ListApps)
	api.GET("/windows", h.ListWindows)
	api.POST("/windows/:id/launch", h.LaunchWindow)
	api.POST("/windows/:id/focus", h.FocusWindow)
	api.POST("/windows/:id/minimize", h.MinimizeWindow)
	api.POST("/windows/:id/maximize", h.MaximizeWindow)
	api.DELETE("/windows/:id", h.CloseWindow)

	// Input
	api.POST("/pointer/down", h.PointerDown)
	api.POST("/pointer/move", h.PointerMove)
	api.POST("/pointer/up", h.PointerUp)
	api.POST("/keys", h.Key)
	api.POST("/overlays/:name/toggle", h.ToggleOverlay)
	api.POST("/overlays/dismiss", h.DismissOverlays)
	api.PUT("/menu", h.SetMenu)

	// File system
	api.GET("/vfs/ls", h.ListDir)
	api.GET("/vfs/stat", h.Stat)
	api.GET("/vfs/cat", h.ReadFile)
	api.GET("/vfs/find", h.Find)
	api.GET("/vfs/tree", h.Tree)
	api.POST("/vfs/nodes", h.CreateNode)
	api.DELETE("/vfs/nodes", h.DeleteNode)

	// App views
	api.GET("/terminal", h.TerminalState)
	api.POST("/terminal/exec", h.TerminalExec)
	api.GET("/files", h.FilesState)
	api.POST("/files/navigate", h.FilesNavigate)
	api.POST("/files/up", h.FilesUp)
	api.POST("/files/open", h.FilesOpen)
	api.GET("/files/search", h.FilesSearch)
	api.GET("/notepad", h.NotepadState)
	api.PUT("/notepad", h.NotepadUpdate)
	api.GET("/monitor", h.MonitorStats)
	api.GET("/chat", h.ChatState)
	api.POST("/chat", h.ChatSend)
	api.GET("/social/:id", h.SocialFeed)

	// Settings
	api.GET("/settings", h.SettingsState)
	api.PUT("/settings/accent", h.SetAccent)
	api.PUT("/settings/wallpaper", h.SetWallpaper)
	api.PUT("/settings/tab", h.SetTab)
	api.POST("/settings/update/check", h.CheckUpdate)
	api.POST("/settings/update/install", h.InstallUpdate)
	api.GET("/accounts", h.ListAccounts)
	api.POST("/accounts", h.AddAccount)
	api.PUT("/accounts/:id", h.UpdateAccount)
	api.DELETE("/accounts/:id", h.DeleteAccount)
	api.POST("/accounts/:id/switch", h.SwitchAccount)

	// Assistant
	api.GET("/search", h.Search)
	api.POST("/logs", h.IngestLogs)
	api.GET("/metrics", h.MetricsSummary)
	api.POST("/ai/ask", h.Ask)
	api.POST("/browser/simulate", h.SimulatePage)

	// Sessions
	api.POST("/sessions", h.SaveSession)
	api.GET("/sessions", h.ListSessions)
	api.GET("/sessions/:id", h.GetSession)
	api.POST("/sessions/:id/restore", h.RestoreSession)
	api.DELETE("/sessions/:id", h.DeleteSession)
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "ChimeraOS Desktop (Go)",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"uptime":   time.Since(h.started).Round(time.Second).String(),
		"windows":  h.shell.Stats(),
		"sessions": h.sessions.Stats(),
		"ai":       gin.H{"available": h.assistant.Available()},
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// bindOptional decodes a JSON body when one was sent.
func bindOptional(c *gin.Context, v interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// fail maps domain errors onto status codes.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, vfs.ErrNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, settings.ErrUserNotFound),
		errors.Is(err, shell.ErrViewNotOpen),
		errors.Is(err, window.ErrWindowNotFound),
		errors.Is(err, apps.ErrUnknownApp),
		errors.Is(err, terminal.ErrClosed):
		return http.StatusNotFound
	case errors.Is(err, terminal.ErrBusy),
		errors.Is(err, shell.ErrChatBusy),
		errors.Is(err, settings.ErrUpdateBusy),
		errors.Is(err, settings.ErrNoUpdateReady),
		errors.Is(err, settings.ErrUpdaterStopped):
		return http.StatusConflict
	case errors.Is(err, vfs.ErrNotDirectory),
		errors.Is(err, vfs.ErrIsDirectory),
		errors.Is(err, vfs.ErrInvalidName),
		errors.Is(err, vfs.ErrInvalidPath),
		errors.Is(err, settings.ErrInvalidTab),
		errors.Is(err, settings.ErrInvalidAccent),
		errors.Is(err, settings.ErrInvalidInput),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, shell.ErrUnknownOverlay),
		errors.Is(err, shell.ErrInvalidWorkspace),
		errors.Is(err, doublestar.ErrBadPattern):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// appParam reads and checks the :id of a window route.
func (h *Handlers) appParam(c *gin.Context) (apps.ID, bool) {
	raw := c.Param("id")
	if err := utils.ValidateID(raw, "app_id", true); err != nil {
		badRequest(c, err)
		return "", false
	}
	return apps.ID(raw), true
}
