package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/window"
)

// LaunchRequest is the optional body of a window launch.
type LaunchRequest struct {
	Tab         string  `json:"tab"`
	FileContent *string `json:"file_content"`
}

// PointerDownRequest is a press inside a window.
type PointerDownRequest struct {
	AppID  string        `json:"app_id" binding:"required"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Target window.Target `json:"target"`
}

// PointerMoveRequest is a pointer position.
type PointerMoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// KeyRequest is a global key press.
type KeyRequest struct {
	Code string `json:"code" binding:"required"`
	Ctrl bool   `json:"ctrl"`
	Meta bool   `json:"meta"`
}

// MenuRequest opens a menu bar entry, or closes it when repeated.
type MenuRequest struct {
	Name string `json:"name"`
}

// PathRequest names a node of the file system.
type PathRequest struct {
	Path string `json:"path" binding:"required"`
}

// Desktop returns the full drawable state.
func (h *Handlers) Desktop(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.Snapshot())
}

// ListApps returns the installed apps, optionally one category.
func (h *Handlers) ListApps(c *gin.Context) {
	catalog := h.shell.Catalog()
	if cat := c.Query("category"); cat != "" {
		c.JSON(http.StatusOK, gin.H{"apps": catalog.ByCategory(apps.Category(cat))})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"apps":   catalog.List(),
		"pinned": catalog.Pinned(shell.DockSize),
	})
}

// ListWindows returns the registry and its stats.
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"windows": h.shell.Windows(),
		"stats":   h.shell.Stats(),
	})
}

// LaunchWindow opens or raises an app window.
func (h *Handlers) LaunchWindow(c *gin.Context) {
	id, ok := h.appParam(c)
	if !ok {
		return
	}
	if !h.shell.Catalog().Has(id) {
		h.fail(c, fmt.Errorf("%s: %w", id, apps.ErrUnknownApp))
		return
	}

	var req LaunchRequest
	if err := bindOptional(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	opts := shell.LaunchOptions{Tab: req.Tab}
	if req.FileContent != nil {
		opts.FileContent = *req.FileContent
		opts.HasContent = true
	}

	rec, err := h.shell.Launch(id, opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": rec})
}

// windowOp runs a lifecycle operation on an open window.
func (h *Handlers) windowOp(c *gin.Context, op func(apps.ID) bool) {
	id, ok := h.appParam(c)
	if !ok {
		return
	}
	if !op(id) {
		h.fail(c, fmt.Errorf("%s: %w", id, window.ErrWindowNotFound))
		return
	}
	rec, open := h.shell.Window(id)
	if !open {
		c.JSON(http.StatusOK, gin.H{"closed": id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"window": rec})
}

// FocusWindow raises a window.
func (h *Handlers) FocusWindow(c *gin.Context) { h.windowOp(c, h.shell.Focus) }

// MinimizeWindow hides a window.
func (h *Handlers) MinimizeWindow(c *gin.Context) { h.windowOp(c, h.shell.Minimize) }

// MaximizeWindow toggles the maximized frame.
func (h *Handlers) MaximizeWindow(c *gin.Context) { h.windowOp(c, h.shell.ToggleMaximize) }

// CloseWindow closes a window and its view.
func (h *Handlers) CloseWindow(c *gin.Context) { h.windowOp(c, h.shell.Close) }

// PointerDown handles a press on a window part.
func (h *Handlers) PointerDown(c *gin.Context) {
	var req PointerDownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	target := req.Target
	if target == "" {
		target = window.TargetBody
	}
	id := apps.ID(req.AppID)
	if !h.shell.PointerDown(id, window.Point{X: req.X, Y: req.Y}, target) {
		h.fail(c, fmt.Errorf("%s: %w", id, window.ErrWindowNotFound))
		return
	}
	c.JSON(http.StatusOK, gin.H{"drag": h.shell.Snapshot().Drag})
}

// PointerMove drags the grabbed window.
func (h *Handlers) PointerMove(c *gin.Context) {
	var req PointerMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rec, moved := h.shell.PointerMove(window.Point{X: req.X, Y: req.Y})
	if !moved {
		c.JSON(http.StatusOK, gin.H{"moved": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": true, "window": rec})
}

// PointerUp releases any drag.
func (h *Handlers) PointerUp(c *gin.Context) {
	h.shell.PointerUp()
	c.JSON(http.StatusOK, gin.H{"drag": h.shell.Snapshot().Drag})
}

// Key applies a global shortcut.
func (h *Handlers) Key(c *gin.Context) {
	var req KeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	consumed := h.shell.HandleKey(shell.KeyEvent{Code: req.Code, Ctrl: req.Ctrl, Meta: req.Meta})
	c.JSON(http.StatusOK, gin.H{"consumed": consumed, "overlays": h.shell.Overlays()})
}

// ToggleOverlay flips one launcher panel.
func (h *Handlers) ToggleOverlay(c *gin.Context) {
	open, err := h.shell.ToggleOverlay(shell.Overlay(c.Param("name")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"open": open, "overlays": h.shell.Overlays()})
}

// DismissOverlays handles a click on the bare desktop.
func (h *Handlers) DismissOverlays(c *gin.Context) {
	h.shell.DismissTransient()
	c.JSON(http.StatusOK, gin.H{"overlays": h.shell.Overlays()})
}

// SetMenu opens a menu bar entry.
func (h *Handlers) SetMenu(c *gin.Context) {
	var req MenuRequest
	if err := bindOptional(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_menu": h.shell.SetActiveMenu(req.Name)})
}

// OpenPath opens a desktop icon or any absolute path.
func (h *Handlers) OpenPath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	action, err := h.shell.OpenPath(req.Path)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": action})
}
