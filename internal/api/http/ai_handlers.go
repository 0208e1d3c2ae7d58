package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/shared/utils"
)

// AskRequest is a free-form question to the assistant.
type AskRequest struct {
	Prompt  string `json:"prompt" binding:"required"`
	Context string `json:"context"`
}

// SimulateRequest is what was typed in the browser address bar.
type SimulateRequest struct {
	Query string `json:"query" binding:"required"`
}

// Search runs spotlight over apps, files and the assistant.
func (h *Handlers) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.search.Search(c.Request.Context(), c.Query("q")))
}

// Ask forwards a question to the assistant. Failures come back as a
// fallback reply, never as an error status.
func (h *Handlers) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidatePrompt(req.Prompt); err != nil {
		badRequest(c, err)
		return
	}
	reply := h.assistant.Ask(c.Request.Context(), req.Prompt, req.Context)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// SimulatePage renders a made-up webpage for the browser app.
func (h *Handlers) SimulatePage(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.assistant.SimulatePage(c.Request.Context(), req.Query))
}
