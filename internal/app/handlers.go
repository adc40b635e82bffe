package app

import (
	"github.com/moodtunes/moodtunes-backend/internal/handlers"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type Handlers struct {
	Conversation *handlers.ConversationHandler
	Question     *handlers.QuestionHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Conversation: handlers.NewConversationHandler(serviceset.Conversation),
		Question:     handlers.NewQuestionHandler(serviceset.QuestionBank),
	}
}
