package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.ConversationSession{},
		&types.ConversationTurn{},
		&types.ProbingQuestion{},
		&types.IdempotencyKey{},
	)
}

// EnsureDialogueIndexes adds the composite indexes the hot queries lean on.
// Statements are portable across postgres and sqlite.
func EnsureDialogueIndexes(db *gorm.DB) error {
	// session sweeper scans: non-terminal sessions by idle time, terminal
	// sessions by last activity
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_conversation_session_state_activity
		ON conversation_session(state, last_activity_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_conversation_session_state_activity: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_conversation_session_user_activity
		ON conversation_session(user_id, last_activity_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_conversation_session_user_activity: %w", err)
	}
	// turn history reads are always per-session in index order
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_conversation_turn_session_created
		ON conversation_turn(session_id, created_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_conversation_turn_session_created: %w", err)
	}
	// question picks filter on (category, language) then order in memory
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_probing_question_category_language
		ON probing_question(category, language);
	`).Error; err != nil {
		return fmt.Errorf("create idx_probing_question_category_language: %w", err)
	}
	return nil
}
