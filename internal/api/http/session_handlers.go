package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SaveSessionRequest names a saved workspace.
type SaveSessionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// SaveSession captures the live desktop.
func (h *Handlers) SaveSession(c *gin.Context) {
	var req SaveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.sessions.Save(req.Name, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         sess.ID,
		"name":       sess.Name,
		"created_at": sess.CreatedAt,
		"windows":    len(sess.Workspace.Windows),
	})
}

// ListSessions returns saved workspaces, newest first.
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.sessions.List()
	c.JSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// GetSession returns one saved workspace.
func (h *Handlers) GetSession(c *gin.Context) {
	sess, err := h.sessions.Load(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// RestoreSession replaces the live desktop with a saved one.
func (h *Handlers) RestoreSession(c *gin.Context) {
	sess, err := h.sessions.Restore(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restored": sess.ID,
		"desktop":  h.shell.Snapshot(),
	})
}

// DeleteSession forgets a saved workspace.
func (h *Handlers) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.sessions.Delete(id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
