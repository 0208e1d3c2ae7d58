package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/settings"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/utils"
)

// ExecRequest is one line typed into the terminal.
type ExecRequest struct {
	Input string `json:"input"`
}

// NameRequest names an entry of the current folder.
type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ContentRequest replaces the notepad text.
type ContentRequest struct {
	Content string `json:"content"`
}

// ChatRequest is one message to the assistant app.
type ChatRequest struct {
	Message string `json:"message"`
}

// AccentRequest picks the highlight color.
type AccentRequest struct {
	Accent settings.Accent `json:"accent" binding:"required"`
}

// WallpaperRequest picks the desktop background.
type WallpaperRequest struct {
	URL string `json:"url" binding:"required"`
}

// TabRequest selects a settings tab.
type TabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

func notOpen(app apps.ID) error {
	return fmt.Errorf("%s: %w", app, shell.ErrViewNotOpen)
}

// TerminalState returns the open terminal.
func (h *Handlers) TerminalState(c *gin.Context) {
	view, ok := h.shell.Terminal()
	if !ok {
		h.fail(c, notOpen(apps.Terminal))
		return
	}
	c.JSON(http.StatusOK, view.Session().Snapshot())
}

// TerminalExec runs a command line. Questions to the assistant finish in
// the background and are pushed over the stream.
func (h *Handlers) TerminalExec(c *gin.Context) {
	var req ExecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateString(req.Input, "input", 0, utils.MaxInputLength, false); err != nil {
		badRequest(c, err)
		return
	}
	view, ok := h.shell.Terminal()
	if !ok {
		h.fail(c, notOpen(apps.Terminal))
		return
	}
	if err := view.Session().Exec(req.Input); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Session().Snapshot())
}

func (h *Handlers) filesView(c *gin.Context) (*shell.FilesView, bool) {
	view, ok := h.shell.Files()
	if !ok {
		h.fail(c, notOpen(apps.Files))
	}
	return view, ok
}

// FilesState returns the current folder listing.
func (h *Handlers) FilesState(c *gin.Context) {
	view, ok := h.filesView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view.Browser().Listing())
}

// FilesNavigate changes folder. The path is not checked; a missing folder
// lists as empty.
func (h *Handlers) FilesNavigate(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, ok := h.filesView(c)
	if !ok {
		return
	}
	view.Browser().Navigate(req.Path)
	c.JSON(http.StatusOK, view.Browser().Listing())
}

// FilesUp goes to the parent folder.
func (h *Handlers) FilesUp(c *gin.Context) {
	view, ok := h.filesView(c)
	if !ok {
		return
	}
	view.Browser().Up()
	c.JSON(http.StatusOK, view.Browser().Listing())
}

// FilesOpen double-clicks an entry of the current folder.
func (h *Handlers) FilesOpen(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	action, err := h.shell.OpenFile(req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": action})
}

// FilesSearch filters the current folder by name.
func (h *Handlers) FilesSearch(c *gin.Context) {
	view, ok := h.filesView(c)
	if !ok {
		return
	}
	entries, err := view.Browser().Search(c.Query("pattern"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": view.Browser().Path(), "entries": entries})
}

// NotepadState returns the text being edited.
func (h *Handlers) NotepadState(c *gin.Context) {
	view, ok := h.shell.Notepad()
	if !ok {
		h.fail(c, notOpen(apps.Notepad))
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": view.Content()})
}

// NotepadUpdate replaces the text being edited.
func (h *Handlers) NotepadUpdate(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateContent(req.Content); err != nil {
		badRequest(c, err)
		return
	}
	view, ok := h.shell.Notepad()
	if !ok {
		h.fail(c, notOpen(apps.Notepad))
		return
	}
	view.SetContent(req.Content)
	c.JSON(http.StatusOK, gin.H{"content": view.Content()})
}

// MonitorStats returns the latest sample. It answers whether or not the
// monitor window is open.
func (h *Handlers) MonitorStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.Sampler().Snapshot())
}

// ChatState returns the assistant conversation.
func (h *Handlers) ChatState(c *gin.Context) {
	view, ok := h.shell.Chat()
	if !ok {
		h.fail(c, notOpen(apps.AI))
		return
	}
	c.JSON(http.StatusOK, view.State())
}

// ChatSend posts a message; the reply arrives on the stream.
func (h *Handlers) ChatSend(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateString(req.Message, "message", 0, utils.MaxPromptSize, false); err != nil {
		badRequest(c, err)
		return
	}
	view, ok := h.shell.Chat()
	if !ok {
		h.fail(c, notOpen(apps.AI))
		return
	}
	if err := view.Send(req.Message); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, view.State())
}

// SocialFeed returns generated posts for a social app.
func (h *Handlers) SocialFeed(c *gin.Context) {
	id, ok := h.appParam(c)
	if !ok {
		return
	}
	info, found := h.shell.Catalog().Lookup(id)
	if !found || !info.Social {
		h.fail(c, fmt.Errorf("%s is not a social app: %w", id, apps.ErrUnknownApp))
		return
	}
	posts := h.assistant.SocialFeed(c.Request.Context(), string(id))
	c.JSON(http.StatusOK, gin.H{"app": info.Name, "posts": posts})
}

// SettingsState returns preferences, accounts and, with the window open,
// the updater.
func (h *Handlers) SettingsState(c *gin.Context) {
	if view, ok := h.shell.SettingsView(); ok {
		c.JSON(http.StatusOK, view.State())
		return
	}
	c.JSON(http.StatusOK, shell.SettingsState{State: h.shell.Settings().State()})
}

// SetAccent changes the highlight color.
func (h *Handlers) SetAccent(c *gin.Context) {
	var req AccentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.shell.Settings().SetAccent(req.Accent); err != nil {
		h.fail(c, err)
		return
	}
	h.shell.Refresh()
	c.JSON(http.StatusOK, gin.H{"accent": h.shell.Settings().Accent()})
}

// SetWallpaper changes the desktop background.
func (h *Handlers) SetWallpaper(c *gin.Context) {
	var req WallpaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.shell.Settings().SetWallpaper(req.URL); err != nil {
		h.fail(c, err)
		return
	}
	h.shell.Refresh()
	c.JSON(http.StatusOK, gin.H{"wallpaper": h.shell.Settings().Wallpaper()})
}

// SetTab selects the settings tab.
func (h *Handlers) SetTab(c *gin.Context) {
	var req TabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	tab, err := settings.ParseTab(req.Tab)
	if err == nil {
		err = h.shell.Settings().SetTab(tab)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tab": h.shell.Settings().Tab()})
}

func (h *Handlers) updater(c *gin.Context) (*settings.Updater, bool) {
	view, ok := h.shell.SettingsView()
	if !ok {
		h.fail(c, notOpen(apps.Settings))
		return nil, false
	}
	return view.Updater(), true
}

// CheckUpdate starts looking for a system update.
func (h *Handlers) CheckUpdate(c *gin.Context) {
	u, ok := h.updater(c)
	if !ok {
		return
	}
	if err := u.Check(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, u.Status())
}

// InstallUpdate installs the update found by CheckUpdate.
func (h *Handlers) InstallUpdate(c *gin.Context) {
	u, ok := h.updater(c)
	if !ok {
		return
	}
	if err := u.Install(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, u.Status())
}

// ListAccounts returns every account and the signed-in one.
func (h *Handlers) ListAccounts(c *gin.Context) {
	store := h.shell.Settings()
	c.JSON(http.StatusOK, gin.H{
		"users":   store.Users(),
		"current": store.CurrentUser(),
	})
}

// AddAccount creates an account.
func (h *Handlers) AddAccount(c *gin.Context) {
	var in settings.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.shell.Settings().AddUser(in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateAccount edits an account.
func (h *Handlers) UpdateAccount(c *gin.Context) {
	var in settings.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.shell.Settings().UpdateUser(c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteAccount removes an account. The signed-in account is left alone
// and reported as not deleted.
func (h *Handlers) DeleteAccount(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.shell.Settings().DeleteUser(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": deleted})
}

// SwitchAccount signs in as another account.
func (h *Handlers) SwitchAccount(c *gin.Context) {
	user, err := h.shell.Settings().SwitchUser(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.shell.Refresh()
	c.JSON(http.StatusOK, user)
}
