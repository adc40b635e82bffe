package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/observability"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

const (
	sweepBatch      = 200
	maxSweepBatches = 50
)

// SweepStats summarizes one maintenance pass.
type SweepStats struct {
	TimedOut       int64
	PurgedSessions int64
	PurgedTurns    int64
	PurgedKeys     int64
}

// SessionSweeper closes idle sessions, removes terminal sessions past the
// retention window together with their turns, and drops expired idempotency
// keys. One sweeper per deployment is enough; the queries are cheap and
// MarkTimedOut tolerates concurrent sweepers.
type SessionSweeper struct {
	db  *gorm.DB
	log *logger.Logger
	cfg *tuning.Config

	sessions    repos.SessionRepo
	turns       repos.TurnRepo
	idempotency repos.IdempotencyRepo
	notify      DialogueNotifier

	now func() time.Time
}

func NewSessionSweeper(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg *tuning.Config,
	sessionRepo repos.SessionRepo,
	turnRepo repos.TurnRepo,
	idempotencyRepo repos.IdempotencyRepo,
	notify DialogueNotifier,
) *SessionSweeper {
	if cfg == nil {
		cfg = tuning.Default()
	}
	return &SessionSweeper{
		db:          db,
		log:         baseLog.With("service", "SessionSweeper"),
		cfg:         cfg,
		sessions:    sessionRepo,
		turns:       turnRepo,
		idempotency: idempotencyRepo,
		notify:      notify,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (w *SessionSweeper) Start(ctx context.Context) {
	interval := w.cfg.SweepInterval.Std()
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				func() {
					defer func() {
						if r := recover(); r != nil {
							w.log.Error("Sweep panic", "panic", r)
							observability.Current().ObserveSweep("panic", 0, 0, 0)
						}
					}()
					if _, err := w.SweepOnce(ctx, w.now()); err != nil {
						w.log.Warn("Sweep pass failed", "error", err)
					}
				}()
			}
		}
	}()
}

// SweepOnce runs all three maintenance passes as of the given instant. A
// failing pass is logged and does not block the later ones; the first error
// is returned after everything ran.
func (w *SessionSweeper) SweepOnce(ctx context.Context, now time.Time) (SweepStats, error) {
	var (
		stats    SweepStats
		firstErr error
	)
	dbc := dbctx.New(ctx, nil)

	timedOut, err := w.sweepTimeouts(dbc, now)
	stats.TimedOut = timedOut
	if err != nil {
		firstErr = err
		w.log.Warn("Timeout sweep failed", "error", err)
	}

	purgedSessions, purgedTurns, err := w.sweepRetention(dbc, now)
	stats.PurgedSessions = purgedSessions
	stats.PurgedTurns = purgedTurns
	if err != nil {
		if firstErr == nil {
			firstErr = err
		}
		w.log.Warn("Retention sweep failed", "error", err)
	}

	if w.idempotency != nil {
		purgedKeys, err := w.idempotency.PurgeExpired(dbc, now)
		stats.PurgedKeys = purgedKeys
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			w.log.Warn("Idempotency purge failed", "error", err)
		}
	}

	status := "ok"
	if firstErr != nil {
		status = "error"
	}
	observability.Current().ObserveSweep(status, stats.TimedOut, stats.PurgedSessions, stats.PurgedKeys)

	if stats.TimedOut > 0 || stats.PurgedSessions > 0 || stats.PurgedKeys > 0 {
		w.log.Info("sweep done",
			"timed_out", stats.TimedOut,
			"purged_sessions", stats.PurgedSessions,
			"purged_turns", stats.PurgedTurns,
			"purged_keys", stats.PurgedKeys,
		)
	}
	return stats, firstErr
}

// sweepTimeouts flips sessions idle past the timeout into the timeout state,
// in batches, and tells each owner their dialogue closed.
func (w *SessionSweeper) sweepTimeouts(dbc dbctx.Context, now time.Time) (int64, error) {
	timeout := w.cfg.SessionTimeout.Std()
	if timeout <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-timeout)

	var total int64
	for i := 0; i < maxSweepBatches; i++ {
		idle, err := w.sessions.ListIdleSince(dbc, cutoff, sweepBatch)
		if err != nil {
			return total, err
		}
		if len(idle) == 0 {
			return total, nil
		}
		ids := make([]uuid.UUID, 0, len(idle))
		for _, sess := range idle {
			ids = append(ids, sess.ID)
		}
		affected, err := w.sessions.MarkTimedOut(dbc, ids)
		if err != nil {
			return total, err
		}
		total += affected
		for _, sess := range idle {
			observability.Current().IncSessionEnded(string(types.StateTimeout))
			if w.notify != nil {
				w.notify.SessionEnded(sess.UserID, sess.ID, types.StateTimeout)
			}
		}
		if len(idle) < sweepBatch {
			return total, nil
		}
	}
	return total, nil
}

// sweepRetention removes terminal sessions past the retention window. Turns
// go first so a crash between the two deletes never strands turn rows.
func (w *SessionSweeper) sweepRetention(dbc dbctx.Context, now time.Time) (int64, int64, error) {
	retention := w.cfg.PurgeRetention.Std()
	if retention <= 0 {
		return 0, 0, nil
	}
	cutoff := now.Add(-retention)

	var totalSessions, totalTurns int64
	for i := 0; i < maxSweepBatches; i++ {
		stale, err := w.sessions.ListTerminalBefore(dbc, cutoff, sweepBatch)
		if err != nil {
			return totalSessions, totalTurns, err
		}
		if len(stale) == 0 {
			return totalSessions, totalTurns, nil
		}
		ids := make([]uuid.UUID, 0, len(stale))
		for _, sess := range stale {
			ids = append(ids, sess.ID)
		}
		err = w.db.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
			inner := dbctx.New(dbc.Ctx, txx)
			turnsDeleted, err := w.turns.DeleteBySessionIDs(inner, ids)
			if err != nil {
				return err
			}
			sessionsDeleted, err := w.sessions.DeleteByIDs(inner, ids)
			if err != nil {
				return err
			}
			totalTurns += turnsDeleted
			totalSessions += sessionsDeleted
			return nil
		})
		if err != nil {
			return totalSessions, totalTurns, err
		}
		if len(stale) < sweepBatch {
			return totalSessions, totalTurns, nil
		}
	}
	return totalSessions, totalTurns, nil
}
