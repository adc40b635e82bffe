package dialogue

import (
	"time"

	"github.com/google/uuid"
)

// TurnRequest is one inbound exchange from the API layer. SessionID is
// optional; a nil or terminal session starts a fresh one. IdempotencyKey is
// optional; requests without one are always treated as new.
type TurnRequest struct {
	UserID         uuid.UUID  `json:"user_id"`
	InputText      string     `json:"input_text"`
	InputType      InputType  `json:"input_type,omitempty"`
	SessionID      *uuid.UUID `json:"session_id,omitempty"`
	IdempotencyKey string     `json:"idempotency_key,omitempty"`
}

// TurnResponse is what one processed turn answers with. Replayed marks a
// response served from the idempotency cache rather than fresh processing.
type TurnResponse struct {
	SessionID       uuid.UUID        `json:"session_id"`
	TurnID          uuid.UUID        `json:"turn_id"`
	TurnIndex       int              `json:"turn_index"`
	DialogueState   State            `json:"dialogue_state"`
	BotMessage      string           `json:"bot_message"`
	ResponseType    ResponseType     `json:"response_type"`
	ShouldRecommend bool             `json:"should_recommend"`
	ClarityScore    float64          `json:"clarity_score"`
	ClarityBand     ClarityBand      `json:"clarity_band"`
	Enriched        *EnrichedRequest `json:"enriched_request,omitempty"`
	Replayed        bool             `json:"replayed,omitempty"`
}

// EnrichedRequest is the handoff payload for the recommendation engine once
// a dialogue is clear enough to act on. It is produced only after the turn
// that decided to recommend is durably recorded.
type EnrichedRequest struct {
	SessionID  uuid.UUID      `json:"session_id"`
	UserID     uuid.UUID      `json:"user_id"`
	Mood       Mood           `json:"mood"`
	Intensity  Intensity      `json:"intensity"`
	Confidence float64        `json:"confidence"`
	Valence    float64        `json:"valence"`
	Arousal    float64        `json:"arousal"`
	Context    ContextSignals `json:"context"`
	Language   string         `json:"language"`
	CreatedAt  time.Time      `json:"created_at"`
}
