package dialogue

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domaindlg "github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

func TestMapStorageError(t *testing.T) {
	if got := MapStorageError("SessionRepo.GetByID", nil); got != nil {
		t.Fatalf("nil error should map to nil, got %v", got)
	}

	// Already-classified errors pass through untouched.
	classified := domaindlg.NewError(domaindlg.CodeInvalidInput, "ConversationService.ProcessTurn", "user_id is required", nil)
	if got := MapStorageError("SessionRepo.Create", classified); got != classified {
		t.Fatalf("classified error should pass through, got %v", got)
	}

	cases := []struct {
		name string
		err  error
		want domaindlg.ErrorCode
	}{
		{"record not found", gorm.ErrRecordNotFound, domaindlg.CodeNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, domaindlg.CodeConflict},
		{"context canceled", context.Canceled, domaindlg.CodeRetryable},
		{"deadline exceeded", context.DeadlineExceeded, domaindlg.CodeRetryable},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, domaindlg.CodeConflict},
		{"pg foreign key violation", &pgconn.PgError{Code: "23503"}, domaindlg.CodeStorage},
		{"pg serialization failure", &pgconn.PgError{Code: "40001"}, domaindlg.CodeRetryable},
		{"pg deadlock detected", &pgconn.PgError{Code: "40P01"}, domaindlg.CodeRetryable},
		{"pg lock not available", &pgconn.PgError{Code: "55P03"}, domaindlg.CodeRetryable},
		{"duplicate key text", errors.New(`duplicate key value violates unique constraint "uq_turn"`), domaindlg.CodeConflict},
		{"deadlock text", errors.New("deadlock detected"), domaindlg.CodeRetryable},
		{"timeout text", errors.New("dial tcp: i/o timeout"), domaindlg.CodeRetryable},
		{"unclassified", errors.New("connection reset by peer"), domaindlg.CodeStorage},
	}
	for _, tc := range cases {
		got := MapStorageError("TurnRepo.Create", tc.err)
		if code := domaindlg.CodeOf(got); code != tc.want {
			t.Fatalf("%s: want code %s, got %s (%v)", tc.name, tc.want, code, got)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("%s: mapped error should wrap the cause", tc.name)
		}
	}
}
