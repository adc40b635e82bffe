package app

import (
	"gorm.io/gorm"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type Repos struct {
	Sessions    repos.SessionRepo
	Turns       repos.TurnRepo
	Questions   repos.QuestionRepo
	Idempotency repos.IdempotencyRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Sessions:    repos.NewSessionRepo(db, log),
		Turns:       repos.NewTurnRepo(db, log),
		Questions:   repos.NewQuestionRepo(db, log),
		Idempotency: repos.NewIdempotencyRepo(db, log),
	}
}
