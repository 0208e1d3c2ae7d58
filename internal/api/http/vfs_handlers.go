package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/utils"
)

// CreateNodeRequest adds a file or folder under Parent.
type CreateNodeRequest struct {
	Parent  string       `json:"parent" binding:"required"`
	Type    vfs.NodeType `json:"type" binding:"required"`
	Name    string       `json:"name" binding:"required"`
	Content string       `json:"content"`
}

// queryPath reads ?path=, defaulting to the root.
func queryPath(c *gin.Context) string {
	return c.DefaultQuery("path", "/")
}

// ListDir lists a directory. Missing paths and files list as empty.
func (h *Handlers) ListDir(c *gin.Context) {
	p := queryPath(c)
	children := h.shell.FS().ListChildren(p)
	entries := make([]vfs.Entry, 0, len(children))
	for _, child := range children {
		entries = append(entries, vfs.Describe(child, vfs.Join(append(vfs.Split(vfs.Clean(p)), child.Name)...)))
	}
	c.JSON(http.StatusOK, gin.H{"path": vfs.Clean(p), "entries": entries})
}

// Stat describes one node.
func (h *Handlers) Stat(c *gin.Context) {
	entry, err := h.shell.FS().Stat(queryPath(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ReadFile returns the content of a file.
func (h *Handlers) ReadFile(c *gin.Context) {
	p := c.Query("path")
	if p == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}
	content, err := h.shell.FS().ReadFile(p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": vfs.Clean(p), "content": content})
}

// Find matches a glob against every path in the tree.
func (h *Handlers) Find(c *gin.Context) {
	pattern := c.Query("pattern")
	if pattern == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pattern is required"})
		return
	}
	matches, err := h.shell.FS().Find(pattern)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pattern": pattern, "matches": matches})
}

// Tree returns a copy of the whole file system.
func (h *Handlers) Tree(c *gin.Context) {
	c.JSON(http.StatusOK, h.shell.FS().Snapshot())
}

// CreateNode adds a child, replacing any sibling with the same name.
func (h *Handlers) CreateNode(c *gin.Context) {
	var req CreateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateContent(req.Content); err != nil {
		badRequest(c, err)
		return
	}

	var node *vfs.Node
	switch req.Type {
	case vfs.TypeDir:
		node = vfs.NewDir(req.Name)
	case vfs.TypeFile:
		node = vfs.NewFile(req.Name, req.Content)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown node type %q", req.Type)})
		return
	}

	if err := h.shell.FS().CreateChild(req.Parent, node); err != nil {
		h.fail(c, err)
		return
	}
	p := vfs.Join(append(vfs.Split(vfs.Clean(req.Parent)), req.Name)...)
	entry, err := h.shell.FS().Stat(p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DeleteNode removes a node and everything below it.
func (h *Handlers) DeleteNode(c *gin.Context) {
	p := c.Query("path")
	if p == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}
	if err := h.shell.FS().Remove(p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": vfs.Clean(p)})
}
