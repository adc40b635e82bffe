package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, state types.State) *types.ConversationSession {
	tb.Helper()
	now := time.Now().UTC()
	s := &types.ConversationSession{
		ID:               uuid.New(),
		UserID:           userID,
		State:            state,
		Language:         "vi",
		EmotionalContext: datatypes.JSON([]byte("{}")),
		CreatedAt:        now,
		LastActivityAt:   now,
		UpdatedAt:        now,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedTurn(tb testing.TB, ctx context.Context, tx *gorm.DB, session *types.ConversationSession, index int) *types.ConversationTurn {
	tb.Helper()
	row := &types.ConversationTurn{
		ID:               uuid.New(),
		SessionID:        session.ID,
		UserID:           session.UserID,
		TurnIndex:        index,
		InputText:        "hôm nay tôi buồn",
		InputType:        "free_text",
		Intent:           types.IntentMoodExpression,
		IntentConfidence: 0.8,
		EmotionalSignals: datatypes.JSON([]byte("{}")),
		ContextSignals:   datatypes.JSON([]byte("{}")),
		Clarity:          datatypes.JSON([]byte("{}")),
		StateBefore:      types.StateGreeting,
		StateAfter:       types.StateProbingIntensity,
		Trigger:          "mood_detected",
		ResponseType:     "question",
		BotMessage:       "Cảm giác đó mạnh đến mức nào?",
		CreatedAt:        time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed turn: %v", err)
	}
	return row
}

func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, category types.QuestionCategory, depth int, language, text string) *types.ProbingQuestion {
	tb.Helper()
	q := &types.ProbingQuestion{
		ID:        uuid.New(),
		Category:  category,
		Depth:     depth,
		Language:  language,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}
	return q
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
