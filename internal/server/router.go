package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/moodtunes/moodtunes-backend/internal/handlers"
	"github.com/moodtunes/moodtunes-backend/internal/middleware"
	"github.com/moodtunes/moodtunes-backend/internal/observability"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type RouterConfig struct {
	ServiceName string
	Log         *logger.Logger

	ConversationHandler *handlers.ConversationHandler
	QuestionHandler     *handlers.QuestionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middleware.AttachTraceContext())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.Metrics(observability.Current()))

	// Health
	r.GET("/healthcheck", handlers.HealthCheck)

	api := r.Group("/api")
	{
		// Conversation
		if cfg.ConversationHandler != nil {
			api.POST("/conversation/turn", cfg.ConversationHandler.ProcessTurn)
			api.GET("/conversation/sessions/:id", cfg.ConversationHandler.GetSession)
			api.POST("/conversation/sessions/:id/end", cfg.ConversationHandler.EndSession)
		}

		// Question catalog
		if cfg.QuestionHandler != nil {
			api.GET("/questions", cfg.QuestionHandler.ListCatalog)
		}
	}

	return r
}
