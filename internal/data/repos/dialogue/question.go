package dialogue

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type QuestionRepo interface {
	List(dbc dbctx.Context, category types.QuestionCategory, language string) ([]*types.ProbingQuestion, error)
	ListAll(dbc dbctx.Context) ([]*types.ProbingQuestion, error)
	IncrementUsage(dbc dbctx.Context, id uuid.UUID) error
	UpsertCatalog(dbc dbctx.Context, rows []*types.ProbingQuestion) (int64, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) List(dbc dbctx.Context, category types.QuestionCategory, language string) ([]*types.ProbingQuestion, error) {
	if category == "" {
		return nil, fmt.Errorf("missing category")
	}
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, fmt.Errorf("missing language")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ProbingQuestion
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ProbingQuestion{}).
		Where("category = ? AND language = ?", category, language).
		Order("depth ASC, text ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) ListAll(dbc dbctx.Context) ([]*types.ProbingQuestion, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ProbingQuestion
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ProbingQuestion{}).
		Order("category ASC, language ASC, depth ASC, text ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// IncrementUsage bumps the analytics counter for a selected question.
func (r *questionRepo) IncrementUsage(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.ProbingQuestion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + 1"),
			"updated_at":  time.Now().UTC(),
		}).Error
}

// UpsertCatalog inserts catalog rows, skipping entries that already exist
// under the (category, depth, language, text) identity. Returns how many
// rows were newly inserted.
func (r *questionRepo) UpsertCatalog(dbc dbctx.Context, rows []*types.ProbingQuestion) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	for _, row := range rows {
		if row == nil || strings.TrimSpace(row.Text) == "" {
			return 0, fmt.Errorf("missing question text")
		}
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "category"}, {Name: "depth"}, {Name: "language"}, {Name: "text"},
			},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
