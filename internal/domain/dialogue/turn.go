package dialogue

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InputType distinguishes free text from a fixed-choice button reply.
type InputType string

const (
	InputFreeText InputType = "free_text"
	InputChoice   InputType = "choice"
)

// ResponseType labels what kind of message the bot answered with.
type ResponseType string

const (
	ResponseQuestion       ResponseType = "question"
	ResponseConfirmation   ResponseType = "confirmation"
	ResponseRecommendation ResponseType = "recommendation"
	ResponseFarewell       ResponseType = "farewell"
)

// ConversationTurn is one processed exchange. Rows are append-only per
// session and immutable once written; turn_index is dense from 1 and unique
// within the session.
type ConversationTurn struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_conversation_turn_session_index,unique,priority:1" json:"session_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	TurnIndex int `gorm:"column:turn_index;not null;index:idx_conversation_turn_session_index,unique,priority:2" json:"turn_index"`

	InputText string    `gorm:"column:input_text;type:text;not null;default:''" json:"input_text"`
	InputType InputType `gorm:"column:input_type;type:text;not null;default:'free_text'" json:"input_type"`

	Intent           Intent  `gorm:"column:intent;type:text;not null;default:'unknown';index" json:"intent"`
	IntentConfidence float64 `gorm:"column:intent_confidence;not null;default:0" json:"intent_confidence"`

	EmotionalSignals datatypes.JSON `gorm:"type:jsonb;column:emotional_signals;not null;default:'{}'" json:"emotional_signals"`
	ContextSignals   datatypes.JSON `gorm:"type:jsonb;column:context_signals;not null;default:'{}'" json:"context_signals"`
	Clarity          datatypes.JSON `gorm:"type:jsonb;column:clarity;not null;default:'{}'" json:"clarity"`

	// StateBefore/StateAfter record the transition this turn drove, so the
	// full observed transition log is auditable per session.
	StateBefore State  `gorm:"column:state_before;type:text;not null" json:"state_before"`
	StateAfter  State  `gorm:"column:state_after;type:text;not null" json:"state_after"`
	Trigger     string `gorm:"column:trigger;type:text;not null;default:''" json:"trigger"`

	ResponseType ResponseType `gorm:"column:response_type;type:text;not null;default:'question'" json:"response_type"`
	BotMessage   string       `gorm:"column:bot_message;type:text;not null;default:''" json:"bot_message"`

	// QuestionID is set when the response was drawn from the question bank,
	// so later turns can avoid repeating it within the session.
	QuestionID *uuid.UUID `gorm:"type:uuid;column:question_id;index" json:"question_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (ConversationTurn) TableName() string { return "conversation_turn" }
