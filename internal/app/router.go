package app

import (
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
	"github.com/moodtunes/moodtunes-backend/internal/server"
)

func wireServer(cfg Config, log *logger.Logger, handlerset Handlers) *server.Server {
	return server.NewServer(server.RouterConfig{
		ServiceName:         cfg.ServiceName,
		Log:                 log,
		ConversationHandler: handlerset.Conversation,
		QuestionHandler:     handlerset.Question,
	})
}
