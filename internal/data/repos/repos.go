package repos

import (
	"gorm.io/gorm"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos/dialogue"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type SessionRepo = dialogue.SessionRepo
type TurnRepo = dialogue.TurnRepo
type IdempotencyRepo = dialogue.IdempotencyRepo
type QuestionRepo = dialogue.QuestionRepo

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return dialogue.NewSessionRepo(db, baseLog)
}

func NewTurnRepo(db *gorm.DB, baseLog *logger.Logger) TurnRepo {
	return dialogue.NewTurnRepo(db, baseLog)
}

func NewIdempotencyRepo(db *gorm.DB, baseLog *logger.Logger) IdempotencyRepo {
	return dialogue.NewIdempotencyRepo(db, baseLog)
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return dialogue.NewQuestionRepo(db, baseLog)
}

// MapStorageError re-exports the driver-to-taxonomy error mapping for
// callers that hold only the facade.
var MapStorageError = dialogue.MapStorageError
