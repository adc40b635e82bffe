package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/lexicon"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/questionbank"
	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/observability"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type QuestionBankService interface {
	// Pick selects the next probing question for a category/depth/language,
	// skipping ids already asked this session. It returns the chosen row and
	// the text to say; a nil row with non-empty text means the hardcoded
	// fallback was used because the catalog ran dry.
	Pick(dbc dbctx.Context, category types.QuestionCategory, depth int, language string, exclude []uuid.UUID) (*types.ProbingQuestion, string, error)

	// SeedDefaults upserts the built-in catalog. Identity is
	// (category, depth, language, text), so re-running is a no-op.
	SeedDefaults(dbc dbctx.Context) (int64, error)

	ListCatalog(dbc dbctx.Context) ([]*types.ProbingQuestion, error)
}

type questionBankService struct {
	db        *gorm.DB
	log       *logger.Logger
	questions repos.QuestionRepo
}

func NewQuestionBankService(db *gorm.DB, baseLog *logger.Logger, questionRepo repos.QuestionRepo) QuestionBankService {
	return &questionBankService{
		db:        db,
		log:       baseLog.With("service", "QuestionBankService"),
		questions: questionRepo,
	}
}

func (s *questionBankService) Pick(dbc dbctx.Context, category types.QuestionCategory, depth int, language string, exclude []uuid.UUID) (*types.ProbingQuestion, string, error) {
	if s.questions == nil {
		return nil, "", fmt.Errorf("question repo not wired")
	}

	candidates, err := s.questions.List(dbc, category, language)
	if err != nil {
		return nil, "", err
	}
	// A language with no catalog entries falls back to English rather than
	// leaving the bot speechless.
	if len(candidates) == 0 && language != lexicon.LangEnglish {
		candidates, err = s.questions.List(dbc, category, lexicon.LangEnglish)
		if err != nil {
			return nil, "", err
		}
	}

	excludeSet := make(map[uuid.UUID]bool, len(exclude))
	for _, id := range exclude {
		excludeSet[id] = true
	}
	rows := make([]types.ProbingQuestion, 0, len(candidates))
	for _, q := range candidates {
		if q != nil {
			rows = append(rows, *q)
		}
	}

	picked, ok := questionbank.Select(rows, depth, excludeSet)
	if !ok {
		observability.Current().IncQuestionFallback()
		return nil, questionbank.Fallback(category, language), nil
	}

	// Usage analytics only; a failed bump never blocks the turn.
	if err := s.questions.IncrementUsage(dbc, picked.ID); err != nil {
		s.log.Warn("question usage increment failed", "question_id", picked.ID, "error", err)
	}
	observability.Current().IncQuestionServed(string(category), picked.Language)

	out := picked
	return &out, picked.Text, nil
}

func (s *questionBankService) SeedDefaults(dbc dbctx.Context) (int64, error) {
	if s.questions == nil {
		return 0, fmt.Errorf("question repo not wired")
	}
	defaults := questionbank.Defaults()
	now := time.Now().UTC()
	rows := make([]*types.ProbingQuestion, 0, len(defaults))
	for i := range defaults {
		q := defaults[i]
		q.ID = uuid.New()
		q.CreatedAt = now
		q.UpdatedAt = now
		rows = append(rows, &q)
	}
	inserted, err := s.questions.UpsertCatalog(dbc, rows)
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		s.log.Info("question catalog seeded", "inserted", inserted, "total", len(rows))
	}
	return inserted, nil
}

func (s *questionBankService) ListCatalog(dbc dbctx.Context) ([]*types.ProbingQuestion, error) {
	if s.questions == nil {
		return nil, fmt.Errorf("question repo not wired")
	}
	return s.questions.ListAll(dbc)
}
