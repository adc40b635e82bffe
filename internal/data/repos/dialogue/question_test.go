package dialogue

import (
	"context"
	"testing"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos/testutil"
	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
)

func TestQuestionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.New(ctx, tx)
	repo := NewQuestionRepo(db, testutil.Logger(t))

	catalog := []*types.ProbingQuestion{
		{Category: types.CategoryMood, Depth: 2, Language: "vi", Text: "Điều gì khiến bạn thấy vậy?"},
		{Category: types.CategoryMood, Depth: 1, Language: "vi", Text: "Hôm nay bạn cảm thấy thế nào?"},
		{Category: types.CategoryMood, Depth: 1, Language: "en", Text: "How are you feeling today?"},
		{Category: types.CategoryIntensity, Depth: 1, Language: "vi", Text: "Cảm giác đó mạnh đến mức nào?"},
	}
	inserted, err := repo.UpsertCatalog(dbc, catalog)
	if err != nil {
		t.Fatalf("UpsertCatalog: %v", err)
	}
	if inserted != 4 {
		t.Fatalf("UpsertCatalog: want 4 inserts, got %d", inserted)
	}

	// Re-running the same catalog is a no-op.
	again := []*types.ProbingQuestion{
		{Category: types.CategoryMood, Depth: 1, Language: "vi", Text: "Hôm nay bạn cảm thấy thế nào?"},
	}
	inserted, err = repo.UpsertCatalog(dbc, again)
	if err != nil {
		t.Fatalf("UpsertCatalog repeat: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("UpsertCatalog repeat: want 0 inserts, got %d", inserted)
	}

	rows, err := repo.List(dbc, types.CategoryMood, "vi")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("List: want 2 vi mood questions, got %d", len(rows))
	}
	if rows[0].Depth != 1 || rows[1].Depth != 2 {
		t.Fatalf("List: want depth ascending, got %d then %d", rows[0].Depth, rows[1].Depth)
	}

	if _, err := repo.List(dbc, "", "vi"); err == nil {
		t.Fatalf("List without category should fail")
	}
	if _, err := repo.List(dbc, types.CategoryMood, " "); err == nil {
		t.Fatalf("List without language should fail")
	}

	all, err := repo.ListAll(dbc)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("ListAll: want 4, got %d", len(all))
	}

	target := rows[0]
	if err := repo.IncrementUsage(dbc, target.ID); err != nil {
		t.Fatalf("IncrementUsage: %v", err)
	}
	if err := repo.IncrementUsage(dbc, target.ID); err != nil {
		t.Fatalf("IncrementUsage second: %v", err)
	}
	rows, err = repo.List(dbc, types.CategoryMood, "vi")
	if err != nil {
		t.Fatalf("List after increment: %v", err)
	}
	if rows[0].UsageCount != 2 {
		t.Fatalf("IncrementUsage: want usage_count=2, got %d", rows[0].UsageCount)
	}
}
