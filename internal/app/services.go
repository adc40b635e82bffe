package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/moodtunes/moodtunes-backend/internal/dialogue/clarity"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/emotion"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/fsm"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/intent"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/signal"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/strategy"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
	"github.com/moodtunes/moodtunes-backend/internal/services"
)

type Services struct {
	Conversation services.ConversationService
	QuestionBank services.QuestionBankService
	Notifier     services.DialogueNotifier
	Sweeper      *services.SessionSweeper
}

func wireServices(db *gorm.DB, log *logger.Logger, tun *tuning.Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	notifier := services.NewDialogueNotifier(log, clients.Bus)
	bank := services.NewQuestionBankService(db, log, reposet.Questions)

	conversation := services.NewConversationService(
		db, log, tun,
		intent.NewRuleClassifier(),
		signal.NewExtractor(),
		emotion.NewTracker(tun),
		clarity.NewModel(tun),
		fsm.New(),
		strategy.New(tun),
		reposet.Sessions,
		reposet.Turns,
		reposet.Idempotency,
		bank,
		notifier,
	)

	sweeper := services.NewSessionSweeper(db, log, tun, reposet.Sessions, reposet.Turns, reposet.Idempotency, notifier)

	// The built-in catalog ships with the binary; seeding on boot keeps a
	// fresh database usable without an operator step.
	if inserted, err := bank.SeedDefaults(dbctx.New(context.Background(), nil)); err != nil {
		log.Warn("Question catalog seed failed", "error", err)
	} else if inserted > 0 {
		log.Info("Question catalog seeded", "inserted", inserted)
	}

	return Services{
		Conversation: conversation,
		QuestionBank: bank,
		Notifier:     notifier,
		Sweeper:      sweeper,
	}, nil
}
