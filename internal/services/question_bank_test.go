package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos"
	"github.com/moodtunes/moodtunes-backend/internal/data/repos/testutil"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/questionbank"
	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
)

func newQuestionBank(t *testing.T) (QuestionBankService, dbctx.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	bank := NewQuestionBankService(db, log, repos.NewQuestionRepo(db, log))
	return bank, dbctx.New(context.Background(), tx)
}

func TestQuestionBankPickRotation(t *testing.T) {
	bank, dbc := newQuestionBank(t)
	ctx := context.Background()

	qa := testutil.SeedQuestion(t, ctx, dbc.Tx, types.CategoryMood, 1, "en", "Alpha: how do you feel?")
	qb := testutil.SeedQuestion(t, ctx, dbc.Tx, types.CategoryMood, 1, "en", "Beta: what's on your mind?")

	picked, text, err := bank.Pick(dbc, types.CategoryMood, 1, "en", nil)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if picked == nil || picked.ID != qa.ID || text != qa.Text {
		t.Fatalf("first pick: want=%s got=%+v", qa.ID, picked)
	}

	// Usage counts rotate selection toward the least-asked question.
	picked, _, err = bank.Pick(dbc, types.CategoryMood, 1, "en", nil)
	if err != nil {
		t.Fatalf("Pick second: %v", err)
	}
	if picked == nil || picked.ID != qb.ID {
		t.Fatalf("second pick should rotate: want=%s got=%+v", qb.ID, picked)
	}

	// Questions already asked this session are skipped.
	picked, _, err = bank.Pick(dbc, types.CategoryMood, 1, "en", []uuid.UUID{qb.ID})
	if err != nil {
		t.Fatalf("Pick with exclusion: %v", err)
	}
	if picked == nil || picked.ID != qa.ID {
		t.Fatalf("excluded pick: want=%s got=%+v", qa.ID, picked)
	}
}

func TestQuestionBankLanguageFallback(t *testing.T) {
	bank, dbc := newQuestionBank(t)
	ctx := context.Background()

	q := testutil.SeedQuestion(t, ctx, dbc.Tx, types.CategoryContext, 1, "en", "What are you doing right now?")

	picked, _, err := bank.Pick(dbc, types.CategoryContext, 1, "vi", nil)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if picked == nil || picked.ID != q.ID {
		t.Fatalf("missing language should fall back to English: got %+v", picked)
	}
}

func TestQuestionBankFallbackText(t *testing.T) {
	bank, dbc := newQuestionBank(t)

	// Nothing seeded: the hardcoded fallback answers the turn.
	picked, text, err := bank.Pick(dbc, types.CategoryIntensity, 1, "vi", nil)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if picked != nil {
		t.Fatalf("empty catalog should yield no row, got %+v", picked)
	}
	if want := questionbank.Fallback(types.CategoryIntensity, "vi"); text != want {
		t.Fatalf("fallback text: want=%q got=%q", want, text)
	}
}

func TestQuestionBankSeedDefaultsIdempotent(t *testing.T) {
	bank, dbc := newQuestionBank(t)

	total := int64(len(questionbank.Defaults()))
	inserted, err := bank.SeedDefaults(dbc)
	if err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if inserted != total {
		t.Fatalf("first seed: want=%d got=%d", total, inserted)
	}

	inserted, err = bank.SeedDefaults(dbc)
	if err != nil {
		t.Fatalf("SeedDefaults repeat: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("repeat seed: want=0 got=%d", inserted)
	}

	rows, err := bank.ListCatalog(dbc)
	if err != nil {
		t.Fatalf("ListCatalog: %v", err)
	}
	if int64(len(rows)) != total {
		t.Fatalf("catalog size: want=%d got=%d", total, len(rows))
	}
}
