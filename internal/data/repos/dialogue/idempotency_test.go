package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos/testutil"
	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
)

func TestIdempotencyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.New(ctx, tx)
	repo := NewIdempotencyRepo(db, testutil.Logger(t))

	got, err := repo.Get(dbc, "absent-key")
	if err != nil {
		t.Fatalf("Get absent: %v", err)
	}
	if got != nil {
		t.Fatalf("Get absent: want nil, got %+v", got)
	}

	now := time.Now().UTC()
	row := &types.IdempotencyKey{
		Key:            "turn-abc",
		SessionID:      uuid.New(),
		UserID:         uuid.New(),
		CachedResponse: datatypes.JSON([]byte(`{"message":"ok"}`)),
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Hour),
	}
	created, err := repo.Put(dbc, row)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !created {
		t.Fatalf("Put: want created=true")
	}

	// Second writer loses without an error.
	dup := *row
	dup.SessionID = uuid.New()
	created, err = repo.Put(dbc, &dup)
	if err != nil {
		t.Fatalf("Put duplicate: %v", err)
	}
	if created {
		t.Fatalf("Put duplicate: want created=false")
	}

	got, err = repo.Get(dbc, "turn-abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.SessionID != row.SessionID {
		t.Fatalf("Get: first writer's row should win, got %+v", got)
	}
	if got.ExpiredAt(now) {
		t.Fatalf("Get: row should still be live at %v", now)
	}

	// Expiry is the caller's check; Get still returns the row.
	stale := &types.IdempotencyKey{
		Key:            "turn-old",
		SessionID:      uuid.New(),
		UserID:         uuid.New(),
		CachedResponse: datatypes.JSON([]byte(`{}`)),
		CreatedAt:      now.Add(-48 * time.Hour),
		ExpiresAt:      now.Add(-24 * time.Hour),
	}
	if _, err := repo.Put(dbc, stale); err != nil {
		t.Fatalf("Put stale: %v", err)
	}
	got, err = repo.Get(dbc, "turn-old")
	if err != nil {
		t.Fatalf("Get stale: %v", err)
	}
	if got == nil || !got.ExpiredAt(now) {
		t.Fatalf("Get stale: want expired row back, got %+v", got)
	}

	purged, err := repo.PurgeExpired(dbc, now)
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if purged != 1 {
		t.Fatalf("PurgeExpired: want 1, got %d", purged)
	}
	got, err = repo.Get(dbc, "turn-old")
	if err != nil || got != nil {
		t.Fatalf("Get after purge: err=%v row=%+v", err, got)
	}
	got, err = repo.Get(dbc, "turn-abc")
	if err != nil || got == nil {
		t.Fatalf("Get live after purge: err=%v row=%+v", err, got)
	}
}
