package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/services"
)

type ConversationHandler struct {
	conversations services.ConversationService
}

func NewConversationHandler(conversations services.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// POST /api/conversation/turn
func (h *ConversationHandler) ProcessTurn(c *gin.Context) {
	var req types.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	// The header wins over the body so gateways can inject the key without
	// rewriting the payload.
	if key := strings.TrimSpace(c.GetHeader("Idempotency-Key")); key != "" {
		req.IdempotencyKey = key
	}
	resp, err := h.conversations.ProcessTurn(dbctx.New(c.Request.Context(), nil), req)
	if err != nil {
		RespondDialogueError(c, err)
		return
	}
	RespondOK(c, resp)
}

// GET /api/conversation/sessions/:id
func (h *ConversationHandler) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	sess, turns, err := h.conversations.GetSession(dbctx.New(c.Request.Context(), nil), sessionID)
	if err != nil {
		RespondDialogueError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": sess, "turns": turns})
}

// POST /api/conversation/sessions/:id/end
func (h *ConversationHandler) EndSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	sess, err := h.conversations.EndSession(dbctx.New(c.Request.Context(), nil), sessionID)
	if err != nil {
		RespondDialogueError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": sess})
}
