package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/clarity"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/emotion"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/fsm"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/intent"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/lexicon"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/signal"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/strategy"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/observability"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

const (
	maxInputBytes      = 2000
	maxIdempotencyKey  = 200
	defaultHistoryRead = 200
)

// errIdempotentRace signals that another request holding the same
// idempotency key committed first. The losing transaction rolls back and the
// caller serves the winner's cached response instead.
var errIdempotentRace = errors.New("idempotency key raced")

// ConversationService runs the multi-turn emotional dialogue. ProcessTurn is
// the single write path for sessions and turns; GetSession and EndSession
// are the read and close surfaces around it.
type ConversationService interface {
	ProcessTurn(dbc dbctx.Context, req types.TurnRequest) (*types.TurnResponse, error)
	GetSession(dbc dbctx.Context, sessionID uuid.UUID) (*types.ConversationSession, []*types.ConversationTurn, error)
	EndSession(dbc dbctx.Context, sessionID uuid.UUID) (*types.ConversationSession, error)
}

type conversationService struct {
	db  *gorm.DB
	log *logger.Logger
	cfg *tuning.Config

	intents intent.Classifier
	signals *signal.Extractor
	tracker *emotion.Tracker
	clarity *clarity.Model
	machine *fsm.Machine
	policy  *strategy.Engine

	sessions    repos.SessionRepo
	turns       repos.TurnRepo
	idempotency repos.IdempotencyRepo
	questions   QuestionBankService
	notify      DialogueNotifier

	// now is swappable so turn processing is deterministic under test.
	now func() time.Time
}

func NewConversationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg *tuning.Config,
	classifier intent.Classifier,
	extractor *signal.Extractor,
	tracker *emotion.Tracker,
	clarityModel *clarity.Model,
	machine *fsm.Machine,
	policy *strategy.Engine,
	sessionRepo repos.SessionRepo,
	turnRepo repos.TurnRepo,
	idempotencyRepo repos.IdempotencyRepo,
	questionBank QuestionBankService,
	notify DialogueNotifier,
) ConversationService {
	if cfg == nil {
		cfg = tuning.Default()
	}
	return &conversationService{
		db:          db,
		log:         baseLog.With("service", "ConversationService"),
		cfg:         cfg,
		intents:     classifier,
		signals:     extractor,
		tracker:     tracker,
		clarity:     clarityModel,
		machine:     machine,
		policy:      policy,
		sessions:    sessionRepo,
		turns:       turnRepo,
		idempotency: idempotencyRepo,
		questions:   questionBank,
		notify:      notify,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ProcessTurn runs one full exchange: interpret the input, fold it into the
// session's emotional context, advance the dialogue state, compose the bot
// reply, and persist everything atomically. Side effects (notifications,
// metrics) fire only after the transaction commits.
func (s *conversationService) ProcessTurn(dbc dbctx.Context, req types.TurnRequest) (*types.TurnResponse, error) {
	const op = "conversation.process_turn"
	start := s.now()

	if s.sessions == nil || s.turns == nil || s.questions == nil {
		return nil, types.NewError(types.CodeInternal, op, "conversation service not fully wired", nil)
	}
	if req.UserID == uuid.Nil {
		return nil, types.NewError(types.CodeInvalidInput, op, "user_id is required", nil)
	}
	text := strings.TrimSpace(req.InputText)
	if text == "" {
		return nil, types.NewError(types.CodeInvalidInput, op, "input_text must not be empty", nil)
	}
	if len(text) > maxInputBytes {
		return nil, types.NewError(types.CodeInvalidInput, op, fmt.Sprintf("input_text exceeds %d bytes", maxInputBytes), nil)
	}
	idemKey := strings.TrimSpace(req.IdempotencyKey)
	if len(idemKey) > maxIdempotencyKey {
		return nil, types.NewError(types.CodeInvalidInput, op, fmt.Sprintf("idempotency_key exceeds %d characters", maxIdempotencyKey), nil)
	}
	inputType := req.InputType
	if inputType == "" {
		inputType = types.InputFreeText
	}

	ctx, span := otel.Tracer("moodtunes/dialogue").Start(dbc.Ctx, "dialogue.process_turn")
	defer span.End()
	dbc = dbctx.New(ctx, dbc.Tx)

	// Fast path: a key that already resolved answers straight from the
	// cache without touching the session row.
	if idemKey != "" && s.idempotency != nil {
		cached, err := s.idempotency.Get(dbctx.New(dbc.Ctx, nil), idemKey)
		if err == nil && cached != nil && !cached.ExpiredAt(start) {
			if resp, decErr := decodeCachedTurn(cached); decErr == nil {
				observability.Current().IncIdempotentReplay()
				return resp, nil
			} else {
				s.log.Warn("cached turn response undecodable, reprocessing", "key", idemKey, "error", decErr)
			}
		}
	}

	// Interpretation is pure and runs outside the transaction. Intent and
	// signal extraction are independent scans, so they run concurrently.
	var (
		cls  types.Classification
		emo  types.EmotionalSignals
		situ types.ContextSignals
	)
	g, _ := errgroup.WithContext(dbc.Ctx)
	g.Go(func() error {
		cls = s.intents.Classify(text)
		return nil
	})
	g.Go(func() error {
		emo = s.signals.Emotional(text)
		situ = s.signals.Situational(text, start)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, types.NewError(types.CodeInternal, op, "turn interpretation failed", err)
	}

	var (
		resp         *types.TurnResponse
		replayed     bool
		fresh        bool
		endedState   types.State
		timedOutPrev *types.ConversationSession
		finalBand    types.ClarityBand
		finalScore   float64
		finalTrigger fsm.Trigger
	)

	transaction := dbc.Tx
	if transaction == nil {
		transaction = s.db
	}
	txErr := transaction.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		inner := dbctx.New(dbc.Ctx, txx)

		sess, isFresh, prev, err := s.resolveSession(inner, req, text, start)
		if err != nil {
			return err
		}
		fresh = isFresh
		timedOutPrev = prev

		// Second idempotency check under the session lock: a duplicate that
		// was queued behind the winner sees its committed key here.
		if idemKey != "" && s.idempotency != nil {
			cached, err := s.idempotency.Get(inner, idemKey)
			if err != nil {
				return err
			}
			if cached != nil && !cached.ExpiredAt(start) {
				decoded, decErr := decodeCachedTurn(cached)
				if decErr != nil {
					return fmt.Errorf("decode cached turn response: %w", decErr)
				}
				resp = decoded
				replayed = true
				return nil
			}
		}

		ec, err := sess.DecodeContext()
		if err != nil {
			return err
		}

		// A definite Vietnamese marker upgrades the session language; it
		// never downgrades back to English mid-dialogue.
		if lang := lexicon.DetectLanguage(text); lang == lexicon.LangVietnamese && sess.Language != lexicon.LangVietnamese {
			sess.Language = lexicon.LangVietnamese
		}

		turnIndex := sess.TurnCount + 1

		s.tracker.Apply(ec, emo, situ, start)
		clarityRes := s.clarity.Score(ec)
		finalBand, finalScore = clarityRes.Band, clarityRes.Score

		dominantMood, dominantConf := ec.Dominant()
		facts := fsm.Facts{
			Intent:         cls.Intent,
			ClarityHigh:    clarityRes.Band == types.ClarityHigh,
			MoodKnown:      !dominantMood.None() && dominantConf >= s.cfg.Strategy.MinMoodConfidence,
			IntensityKnown: !ec.CurrentIntensity().None(),
			ContextClear:   clarityRes.Components.Context >= s.cfg.Strategy.ContextClearFloor,
			TurnCount:      turnIndex,
			MaxTurns:       s.cfg.MaxTurnsPerSession,
		}
		stateBefore := sess.State
		stateAfter, trigger := s.machine.Next(stateBefore, facts)
		finalTrigger = trigger

		decision := s.policy.Decide(stateAfter, clarityRes, turnIndex)

		turn := &types.ConversationTurn{
			ID:               uuid.New(),
			SessionID:        sess.ID,
			UserID:           req.UserID,
			TurnIndex:        turnIndex,
			InputText:        text,
			InputType:        inputType,
			Intent:           cls.Intent,
			IntentConfidence: cls.Confidence,
			StateBefore:      stateBefore,
			StateAfter:       stateAfter,
			Trigger:          string(trigger),
			CreatedAt:        start,
		}
		if err := encodeTurnSignals(turn, emo, situ, clarityRes); err != nil {
			return err
		}

		ms := s.cfg.MessagesFor(sess.Language)
		// sessionState may move past stateAfter: a delivered recommendation
		// immediately parks the session in feedback.
		sessionState := stateAfter
		var enriched *types.EnrichedRequest

		switch decision.Action {
		case strategy.ActionProceed:
			enr := buildEnrichedRequest(sess, ec, dominantMood, dominantConf, start)
			enriched = &enr
			turn.ResponseType = types.ResponseRecommendation
			turn.BotMessage = ms.Recommend
			if next, ok := s.machine.Force(stateAfter, fsm.TriggerDelivered); ok {
				sessionState = next
			}

		case strategy.ActionFarewell:
			turn.ResponseType = types.ResponseFarewell
			if stateAfter == types.StateAborted {
				turn.BotMessage = ms.Aborted
			} else {
				turn.BotMessage = ms.Farewell
			}

		default: // strategy.ActionAsk
			asked, err := s.turns.ListQuestionIDs(inner, sess.ID)
			if err != nil {
				return err
			}
			var say string
			if decision.Category == types.CategoryConfirm && stateBefore != types.StateConfirming {
				// First entry into confirming names the detected mood; the
				// bank's confirm entries only vary re-asks.
				say = composeConfirm(ms, dominantMood, sess.Language)
				turn.ResponseType = types.ResponseConfirmation
			} else {
				picked, fallbackText, err := s.questions.Pick(inner, decision.Category, decision.Depth, sess.Language, asked)
				if err != nil {
					return err
				}
				if picked != nil {
					turn.QuestionID = &picked.ID
					say = picked.Text
				} else {
					say = fallbackText
				}
				if decision.Category == types.CategoryConfirm {
					turn.ResponseType = types.ResponseConfirmation
				} else {
					turn.ResponseType = types.ResponseQuestion
				}
			}
			switch {
			case fresh && turnIndex == 1:
				say = prefixed(ms.Greeting, say)
			case stateBefore == types.StateFeedback && stateAfter == types.StateProbingMood:
				say = prefixed(ms.Reprobe, say)
			}
			turn.BotMessage = say
		}

		if err := sess.EncodeContext(ec); err != nil {
			return err
		}
		if _, err := s.turns.Create(inner, turn); err != nil {
			return err
		}
		if err := s.sessions.UpdateFields(inner, sess.ID, map[string]interface{}{
			"state":             sessionState,
			"turn_count":        turnIndex,
			"language":          sess.Language,
			"emotional_context": sess.EmotionalContext,
			"last_activity_at":  start,
			"updated_at":        start,
		}); err != nil {
			return err
		}

		out := &types.TurnResponse{
			SessionID:       sess.ID,
			TurnID:          turn.ID,
			TurnIndex:       turnIndex,
			DialogueState:   stateAfter,
			BotMessage:      turn.BotMessage,
			ResponseType:    turn.ResponseType,
			ShouldRecommend: decision.Action == strategy.ActionProceed,
			ClarityScore:    clarityRes.Score,
			ClarityBand:     clarityRes.Band,
			Enriched:        enriched,
		}

		if idemKey != "" && s.idempotency != nil {
			raw, err := json.Marshal(out)
			if err != nil {
				return fmt.Errorf("encode turn response for cache: %w", err)
			}
			created, err := s.idempotency.Put(inner, &types.IdempotencyKey{
				Key:            idemKey,
				SessionID:      sess.ID,
				UserID:         req.UserID,
				CachedResponse: datatypes.JSON(raw),
				CreatedAt:      start,
				ExpiresAt:      start.Add(s.cfg.IdempotencyTTL.Std()),
			})
			if err != nil {
				return err
			}
			if !created {
				return errIdempotentRace
			}
		}

		resp = out
		if sessionState.Terminal() {
			endedState = sessionState
		}
		return nil
	})

	if txErr != nil {
		span.RecordError(txErr)
		if errors.Is(txErr, errIdempotentRace) {
			cached, err := s.idempotency.Get(dbctx.New(dbc.Ctx, nil), idemKey)
			if err == nil && cached != nil {
				if decoded, decErr := decodeCachedTurn(cached); decErr == nil {
					observability.Current().IncIdempotentReplay()
					return decoded, nil
				}
			}
			return nil, types.NewError(types.CodeConflict, op, "duplicate submission in flight", txErr)
		}
		if types.CodeOf(txErr) != "" {
			return nil, txErr
		}
		return nil, repos.MapStorageError(op, txErr)
	}

	if replayed {
		observability.Current().IncIdempotentReplay()
		return resp, nil
	}

	// Post-commit fan-out. The turn is durable; everything from here is
	// best-effort.
	if timedOutPrev != nil {
		observability.Current().IncSessionEnded(string(types.StateTimeout))
		if s.notify != nil {
			s.notify.SessionEnded(timedOutPrev.UserID, timedOutPrev.ID, types.StateTimeout)
		}
	}
	if fresh {
		observability.Current().IncSessionStarted()
	}
	if s.notify != nil {
		s.notify.TurnProcessed(req.UserID, resp)
		if resp.Enriched != nil {
			s.notify.RecommendationReady(req.UserID, resp.Enriched)
		}
		if endedState != "" {
			s.notify.SessionEnded(req.UserID, resp.SessionID, endedState)
		}
	}
	if endedState != "" {
		observability.Current().IncSessionEnded(string(endedState))
	}
	span.SetAttributes(
		attribute.String("dialogue.session_id", resp.SessionID.String()),
		attribute.Int("dialogue.turn_index", resp.TurnIndex),
		attribute.String("dialogue.state", string(resp.DialogueState)),
		attribute.String("dialogue.trigger", string(finalTrigger)),
		attribute.Float64("dialogue.clarity", finalScore),
		attribute.Bool("dialogue.recommend", resp.ShouldRecommend),
	)

	observability.Current().ObserveTurn(string(resp.DialogueState), string(finalTrigger), "ok", s.now().Sub(start))
	observability.Current().ObserveClarity(string(finalBand), finalScore)
	observability.Current().IncIntent(string(cls.Intent))

	s.log.Info("turn processed",
		"session_id", resp.SessionID,
		"turn_index", resp.TurnIndex,
		"state", resp.DialogueState,
		"trigger", finalTrigger,
		"intent", cls.Intent,
		"clarity", fmt.Sprintf("%.2f", finalScore),
		"recommend", resp.ShouldRecommend,
	)
	return resp, nil
}

// resolveSession locks the requested session, or starts a fresh one when the
// request has no session, names an unknown or terminal one, or the session
// idled past the timeout. The third return is the previous session when it
// was closed as timed out on this turn.
func (s *conversationService) resolveSession(inner dbctx.Context, req types.TurnRequest, text string, now time.Time) (*types.ConversationSession, bool, *types.ConversationSession, error) {
	if req.SessionID != nil && *req.SessionID != uuid.Nil {
		sess, err := s.sessions.LockByID(inner, *req.SessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fresh, ferr := s.freshSession(inner, req.UserID, text, now)
				return fresh, true, nil, ferr
			}
			return nil, false, nil, err
		}
		if sess.UserID != req.UserID {
			return nil, false, nil, types.NewError(types.CodeNotFound, "conversation.resolve_session", "session not found for user", nil)
		}
		if sess.State.Terminal() {
			fresh, ferr := s.freshSession(inner, req.UserID, text, now)
			return fresh, true, nil, ferr
		}
		if sess.ExpiredAt(now, s.cfg.SessionTimeout.Std()) {
			if _, err := s.sessions.MarkTimedOut(inner, []uuid.UUID{sess.ID}); err != nil {
				return nil, false, nil, err
			}
			s.log.Info("session idled out, starting fresh", "session_id", sess.ID, "user_id", sess.UserID)
			fresh, ferr := s.freshSession(inner, req.UserID, text, now)
			return fresh, true, sess, ferr
		}
		return sess, false, nil, nil
	}
	fresh, err := s.freshSession(inner, req.UserID, text, now)
	return fresh, true, nil, err
}

func (s *conversationService) freshSession(inner dbctx.Context, userID uuid.UUID, text string, now time.Time) (*types.ConversationSession, error) {
	sess := &types.ConversationSession{
		ID:             uuid.New(),
		UserID:         userID,
		State:          types.StateGreeting,
		TurnCount:      0,
		Language:       lexicon.DetectLanguage(text),
		CreatedAt:      now,
		LastActivityAt: now,
		UpdatedAt:      now,
	}
	if err := sess.EncodeContext(nil); err != nil {
		return nil, err
	}
	return s.sessions.Create(inner, sess)
}

// GetSession returns the session row and its full turn log, oldest first. A
// live session that idled past the timeout reads as expired even before the
// sweeper has closed it.
func (s *conversationService) GetSession(dbc dbctx.Context, sessionID uuid.UUID) (*types.ConversationSession, []*types.ConversationTurn, error) {
	const op = "conversation.get_session"
	if s.sessions == nil || s.turns == nil {
		return nil, nil, types.NewError(types.CodeInternal, op, "conversation service not fully wired", nil)
	}
	if sessionID == uuid.Nil {
		return nil, nil, types.NewError(types.CodeInvalidInput, op, "session id is required", nil)
	}
	sess, err := s.sessions.GetByID(dbc, sessionID)
	if err != nil {
		return nil, nil, repos.MapStorageError(op, err)
	}
	if !sess.State.Terminal() && sess.ExpiredAt(s.now(), s.cfg.SessionTimeout.Std()) {
		return nil, nil, types.NewError(types.CodeExpired, op, "session expired", nil)
	}
	turns, err := s.turns.ListBySession(dbc, sessionID, defaultHistoryRead)
	if err != nil {
		return nil, nil, repos.MapStorageError(op, err)
	}
	return sess, turns, nil
}

// EndSession closes a session explicitly. Closing an already terminal
// session is a no-op that returns the row as is; no turn is recorded either
// way, so the turn log stays a pure transition log.
func (s *conversationService) EndSession(dbc dbctx.Context, sessionID uuid.UUID) (*types.ConversationSession, error) {
	const op = "conversation.end_session"
	if s.sessions == nil {
		return nil, types.NewError(types.CodeInternal, op, "conversation service not fully wired", nil)
	}
	if sessionID == uuid.Nil {
		return nil, types.NewError(types.CodeInvalidInput, op, "session id is required", nil)
	}

	var (
		out    *types.ConversationSession
		closed bool
	)
	transaction := dbc.Tx
	if transaction == nil {
		transaction = s.db
	}
	txErr := transaction.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		inner := dbctx.New(dbc.Ctx, txx)
		sess, err := s.sessions.LockByID(inner, sessionID)
		if err != nil {
			return err
		}
		if sess.State.Terminal() {
			out = sess
			return nil
		}
		now := s.now()
		if err := s.sessions.UpdateFields(inner, sess.ID, map[string]interface{}{
			"state":            types.StateEnded,
			"last_activity_at": now,
			"updated_at":       now,
		}); err != nil {
			return err
		}
		sess.State = types.StateEnded
		sess.LastActivityAt = now
		sess.UpdatedAt = now
		out = sess
		closed = true
		return nil
	})
	if txErr != nil {
		if types.CodeOf(txErr) != "" {
			return nil, txErr
		}
		return nil, repos.MapStorageError(op, txErr)
	}

	if closed {
		observability.Current().IncSessionEnded(string(types.StateEnded))
		if s.notify != nil {
			s.notify.SessionEnded(out.UserID, out.ID, types.StateEnded)
		}
		s.log.Info("session ended by user", "session_id", out.ID, "user_id", out.UserID)
	}
	return out, nil
}

func decodeCachedTurn(row *types.IdempotencyKey) (*types.TurnResponse, error) {
	if row == nil || len(row.CachedResponse) == 0 {
		return nil, fmt.Errorf("empty cached response")
	}
	var out types.TurnResponse
	if err := json.Unmarshal(row.CachedResponse, &out); err != nil {
		return nil, err
	}
	out.Replayed = true
	return &out, nil
}

func encodeTurnSignals(turn *types.ConversationTurn, emo types.EmotionalSignals, situ types.ContextSignals, res types.ClarityResult) error {
	rawEmo, err := json.Marshal(emo)
	if err != nil {
		return fmt.Errorf("encode emotional signals: %w", err)
	}
	rawSitu, err := json.Marshal(situ)
	if err != nil {
		return fmt.Errorf("encode context signals: %w", err)
	}
	rawClarity, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode clarity result: %w", err)
	}
	turn.EmotionalSignals = datatypes.JSON(rawEmo)
	turn.ContextSignals = datatypes.JSON(rawSitu)
	turn.Clarity = datatypes.JSON(rawClarity)
	return nil
}

func buildEnrichedRequest(sess *types.ConversationSession, ec *types.EmotionalContext, mood types.Mood, conf float64, at time.Time) types.EnrichedRequest {
	return types.EnrichedRequest{
		SessionID:  sess.ID,
		UserID:     sess.UserID,
		Mood:       mood,
		Intensity:  ec.CurrentIntensity(),
		Confidence: conf,
		Valence:    ec.Valence,
		Arousal:    ec.Arousal,
		Context:    ec.Situation,
		Language:   sess.Language,
		CreatedAt:  at,
	}
}

// composeConfirm renders the mood confirmation prompt in the session
// language.
func composeConfirm(ms tuning.MessageSet, mood types.Mood, language string) string {
	if strings.Contains(ms.ConfirmMood, "%s") {
		return fmt.Sprintf(ms.ConfirmMood, lexicon.MoodLabel(mood, language))
	}
	return ms.ConfirmMood
}

// prefixed joins an optional lead-in sentence with the main message.
func prefixed(lead, msg string) string {
	lead = strings.TrimSpace(lead)
	msg = strings.TrimSpace(msg)
	switch {
	case lead == "":
		return msg
	case msg == "":
		return lead
	default:
		return lead + " " + msg
	}
}
