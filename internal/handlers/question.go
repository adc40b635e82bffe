package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/services"
)

type QuestionHandler struct {
	questions services.QuestionBankService
}

func NewQuestionHandler(questions services.QuestionBankService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// GET /api/questions
func (h *QuestionHandler) ListCatalog(c *gin.Context) {
	rows, err := h.questions.ListCatalog(dbctx.New(c.Request.Context(), nil))
	if err != nil {
		RespondDialogueError(c, err)
		return
	}
	RespondOK(c, gin.H{"questions": rows})
}
