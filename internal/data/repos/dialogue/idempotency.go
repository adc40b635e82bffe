package dialogue

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type IdempotencyRepo interface {
	Get(dbc dbctx.Context, key string) (*types.IdempotencyKey, error)
	Put(dbc dbctx.Context, row *types.IdempotencyKey) (bool, error)
	PurgeExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type idempotencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdempotencyRepo(db *gorm.DB, baseLog *logger.Logger) IdempotencyRepo {
	return &idempotencyRepo{db: db, log: baseLog.With("repo", "IdempotencyRepo")}
}

// Get returns the stored key row, or nil when the key was never recorded.
// Expiry is the caller's check; an expired row is still returned.
func (r *idempotencyRepo) Get(dbc dbctx.Context, key string) (*types.IdempotencyKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("missing key")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out types.IdempotencyKey
	err := txx.WithContext(dbc.Ctx).
		Where("key = ?", key).
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if out.Key == "" {
		return nil, nil
	}
	return &out, nil
}

// Put records the key with its cached response. The first writer wins;
// Put reports false when the key already existed.
func (r *idempotencyRepo) Put(dbc dbctx.Context, row *types.IdempotencyKey) (bool, error) {
	if row == nil || strings.TrimSpace(row.Key) == "" {
		return false, fmt.Errorf("missing key row")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *idempotencyRepo) PurgeExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Where("expires_at < ?", now).
		Delete(&types.IdempotencyKey{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
