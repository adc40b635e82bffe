package dialogue

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domaindlg "github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

// MapStorageError translates driver and gorm failures into the dialogue
// error taxonomy so callers can branch on codes instead of SQLSTATEs.
func MapStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*domaindlg.Error); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domaindlg.WrapError(domaindlg.CodeNotFound, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domaindlg.WrapError(domaindlg.CodeConflict, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domaindlg.WrapError(domaindlg.CodeRetryable, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domaindlg.WrapError(domaindlg.CodeConflict, op, err) // unique_violation
		case "23503":
			return domaindlg.WrapError(domaindlg.CodeStorage, op, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return domaindlg.WrapError(domaindlg.CodeRetryable, op, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return domaindlg.WrapError(domaindlg.CodeConflict, op, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "temporar"):
		return domaindlg.WrapError(domaindlg.CodeRetryable, op, err)
	default:
		return domaindlg.WrapError(domaindlg.CodeStorage, op, err)
	}
}
