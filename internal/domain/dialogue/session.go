package dialogue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConversationSession is one user's open dialogue. The session store owns
// every row; state and turn count move only through conversation turns, and
// the embedded emotional context is the canonical copy that turn processing
// checks out and commits back.
type ConversationSession struct {
	// IDs and timestamps are always assigned by the caller so the same DDL
	// works on postgres and sqlite.
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	State     State `gorm:"column:state;type:text;not null;default:'greeting';index" json:"state"`
	TurnCount int   `gorm:"column:turn_count;not null;default:0" json:"turn_count"`

	// Language is the detected input language ("vi" or "en"), used to pick
	// question and message templates.
	Language string `gorm:"column:language;type:text;not null;default:'vi'" json:"language"`

	EmotionalContext datatypes.JSON `gorm:"type:jsonb;column:emotional_context;not null;default:'{}'" json:"emotional_context"`

	CreatedAt      time.Time `gorm:"not null;index" json:"created_at"`
	LastActivityAt time.Time `gorm:"column:last_activity_at;not null;index" json:"last_activity_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (ConversationSession) TableName() string { return "conversation_session" }

// DecodeContext unpacks the stored emotional context. An empty column yields
// a fresh context, never an error.
func (s *ConversationSession) DecodeContext() (*EmotionalContext, error) {
	if s == nil || len(s.EmotionalContext) == 0 || string(s.EmotionalContext) == "{}" || string(s.EmotionalContext) == "null" {
		return NewEmotionalContext(), nil
	}
	var ec EmotionalContext
	if err := json.Unmarshal(s.EmotionalContext, &ec); err != nil {
		return nil, fmt.Errorf("decode emotional context: %w", err)
	}
	if ec.History == nil {
		ec.History = []MoodEntry{}
	}
	return &ec, nil
}

// EncodeContext serializes the checked-out context back onto the row.
func (s *ConversationSession) EncodeContext(ec *EmotionalContext) error {
	if ec == nil {
		ec = NewEmotionalContext()
	}
	raw, err := json.Marshal(ec)
	if err != nil {
		return fmt.Errorf("encode emotional context: %w", err)
	}
	s.EmotionalContext = datatypes.JSON(raw)
	return nil
}

// ExpiredAt reports whether the session has been idle past the timeout as of
// the given instant.
func (s *ConversationSession) ExpiredAt(now time.Time, timeout time.Duration) bool {
	if s == nil || timeout <= 0 {
		return false
	}
	return now.Sub(s.LastActivityAt) > timeout
}
