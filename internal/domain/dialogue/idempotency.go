package dialogue

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IdempotencyKey caches the response of an already-processed turn request.
// A duplicate submission within the expiry window is answered from the cache
// with zero side effects; expired rows are swept and the key becomes fresh
// again.
type IdempotencyKey struct {
	Key       string    `gorm:"column:key;type:text;primaryKey" json:"key"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	CachedResponse datatypes.JSON `gorm:"type:jsonb;column:cached_response;not null;default:'{}'" json:"cached_response"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
}

func (IdempotencyKey) TableName() string { return "idempotency_key" }

func (k *IdempotencyKey) ExpiredAt(now time.Time) bool {
	if k == nil {
		return true
	}
	return !k.ExpiresAt.After(now)
}
