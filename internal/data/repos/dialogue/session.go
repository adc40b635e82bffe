package dialogue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(dbc dbctx.Context, row *types.ConversationSession) (*types.ConversationSession, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ConversationSession, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.ConversationSession, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ConversationSession, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	ListIdleSince(dbc dbctx.Context, cutoff time.Time, limit int) ([]*types.ConversationSession, error)
	MarkTimedOut(dbc dbctx.Context, ids []uuid.UUID) (int64, error)
	ListTerminalBefore(dbc dbctx.Context, cutoff time.Time, limit int) ([]*types.ConversationSession, error)
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

func terminalStates() []types.State {
	return []types.State{types.StateEnded, types.StateAborted, types.StateTimeout}
}

func (r *sessionRepo) Create(dbc dbctx.Context, row *types.ConversationSession) (*types.ConversationSession, error) {
	if row == nil {
		return nil, fmt.Errorf("missing session row")
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

func (r *sessionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ConversationSession, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.ConversationSession
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// LockByID takes a row lock so turns for the same session serialize. Must
// run inside a transaction.
func (r *sessionRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.ConversationSession, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out types.ConversationSession
	if err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sessionRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ConversationSession, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ConversationSession
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ConversationSession{}).
		Where("user_id = ?", userID).
		Order("last_activity_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sessionRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.ConversationSession{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ListIdleSince returns live sessions whose last activity is older than
// cutoff, oldest first, for the timeout sweep.
func (r *sessionRepo) ListIdleSince(dbc dbctx.Context, cutoff time.Time, limit int) ([]*types.ConversationSession, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ConversationSession
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ConversationSession{}).
		Where("state NOT IN ? AND last_activity_at < ?", terminalStates(), cutoff).
		Order("last_activity_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// MarkTimedOut flips still-live sessions to the timeout state. Sessions a
// concurrent turn already advanced to a terminal state are left alone.
func (r *sessionRepo) MarkTimedOut(dbc dbctx.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Model(&types.ConversationSession{}).
		Where("id IN ? AND state NOT IN ?", ids, terminalStates()).
		Updates(map[string]interface{}{
			"state":      types.StateTimeout,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ListTerminalBefore returns closed sessions whose last activity is older
// than cutoff, oldest first, so the sweeper can remove them with their turns.
func (r *sessionRepo) ListTerminalBefore(dbc dbctx.Context, cutoff time.Time, limit int) ([]*types.ConversationSession, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ConversationSession
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ConversationSession{}).
		Where("state IN ? AND last_activity_at < ?", terminalStates(), cutoff).
		Order("last_activity_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sessionRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.ConversationSession{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
