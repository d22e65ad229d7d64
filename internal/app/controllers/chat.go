package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/roackb2/octave-chat/config"
	"github.com/roackb2/octave-chat/internal/pkg/agents/engine"
)

type ChatMessageRequest struct {
	Message string `json:"message"`
}

type ChatController struct {
	orchestrator engine.Orchestrator
}

func NewChatController(orchestrator engine.Orchestrator) *ChatController {
	return &ChatController{
		orchestrator: orchestrator,
	}
}

// Chat godoc
//	@Summary		Send a chat message
//	@Description	Routes one user message through the enrichment tool loop and returns the synthesized answer
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			message	body		ChatMessageRequest	true	"User message"
//	@Success		200		{object}	engine.ChatResponse	"Chat response with provenance metadata"
//	@Failure		400		{object}	map[string]string	"Missing message"
//	@Failure		500		{object}	map[string]string	"Misconfiguration or orchestration failure"
//	@Router			/api/chat [post]
func (cc *ChatController) Chat(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	if config.Config.OpenAI.APIKey == "" {
		slog.Error("Chat rejected: OpenAI API key not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OpenAI API key not configured"})
		return
	}

	resp, err := cc.orchestrator.Run(c.Request.Context(), req.Message)
	if err != nil {
		// Upstream error details stay server-side.
		slog.Error("Chat orchestration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
