package dialogue

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type TurnRepo interface {
	Create(dbc dbctx.Context, row *types.ConversationTurn) (*types.ConversationTurn, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ConversationTurn, error)
	ListBySession(dbc dbctx.Context, sessionID uuid.UUID, limit int) ([]*types.ConversationTurn, error)
	CountBySession(dbc dbctx.Context, sessionID uuid.UUID) (int64, error)
	ListQuestionIDs(dbc dbctx.Context, sessionID uuid.UUID) ([]uuid.UUID, error)
	DeleteBySessionIDs(dbc dbctx.Context, sessionIDs []uuid.UUID) (int64, error)
}

type turnRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTurnRepo(db *gorm.DB, baseLog *logger.Logger) TurnRepo {
	return &turnRepo{db: db, log: baseLog.With("repo", "TurnRepo")}
}

func (r *turnRepo) Create(dbc dbctx.Context, row *types.ConversationTurn) (*types.ConversationTurn, error) {
	if row == nil {
		return nil, fmt.Errorf("missing turn row")
	}
	if row.SessionID == uuid.Nil {
		return nil, fmt.Errorf("missing session_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *turnRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ConversationTurn, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.ConversationTurn
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *turnRepo) ListBySession(dbc dbctx.Context, sessionID uuid.UUID, limit int) ([]*types.ConversationTurn, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("missing session_id")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ConversationTurn
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ConversationTurn{}).
		Where("session_id = ?", sessionID).
		Order("turn_index ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *turnRepo) CountBySession(dbc dbctx.Context, sessionID uuid.UUID) (int64, error) {
	if sessionID == uuid.Nil {
		return 0, fmt.Errorf("missing session_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var count int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ConversationTurn{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListQuestionIDs returns the bank questions already asked in the session,
// feeding the selection exclusion set.
func (r *turnRepo) ListQuestionIDs(dbc dbctx.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("missing session_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var ids []uuid.UUID
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ConversationTurn{}).
		Where("session_id = ? AND question_id IS NOT NULL", sessionID).
		Pluck("question_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *turnRepo) DeleteBySessionIDs(dbc dbctx.Context, sessionIDs []uuid.UUID) (int64, error) {
	if len(sessionIDs) == 0 {
		return 0, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Where("session_id IN ?", sessionIDs).
		Delete(&types.ConversationTurn{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
