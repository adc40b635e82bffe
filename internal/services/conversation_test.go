package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moodtunes/moodtunes-backend/internal/data/repos"
	"github.com/moodtunes/moodtunes-backend/internal/data/repos/testutil"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/clarity"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/emotion"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/fsm"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/intent"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/lexicon"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/signal"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/strategy"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/platform/dbctx"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

type endedEvent struct {
	userID    uuid.UUID
	sessionID uuid.UUID
	state     types.State
}

type notifierRecorder struct {
	turns []*types.TurnResponse
	recs  []*types.EnrichedRequest
	ended []endedEvent
}

func (r *notifierRecorder) TurnProcessed(userID uuid.UUID, resp *types.TurnResponse) {
	r.turns = append(r.turns, resp)
}

func (r *notifierRecorder) SessionEnded(userID uuid.UUID, sessionID uuid.UUID, state types.State) {
	r.ended = append(r.ended, endedEvent{userID: userID, sessionID: sessionID, state: state})
}

func (r *notifierRecorder) RecommendationReady(userID uuid.UUID, enriched *types.EnrichedRequest) {
	r.recs = append(r.recs, enriched)
}

type dialogueHarness struct {
	svc      ConversationService
	dbc      dbctx.Context
	cfg      *tuning.Config
	notify   *notifierRecorder
	sessions repos.SessionRepo
	turns    repos.TurnRepo
}

// newDialogueHarness wires a ConversationService against the test database
// with the full catalog seeded. Everything runs inside the rollback
// transaction, so tests leave no rows behind.
func newDialogueHarness(t *testing.T, cfg *tuning.Config) *dialogueHarness {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	dbc := dbctx.New(context.Background(), tx)

	if cfg == nil {
		cfg = tuning.Default()
	}
	sessions := repos.NewSessionRepo(db, log)
	turns := repos.NewTurnRepo(db, log)
	idem := repos.NewIdempotencyRepo(db, log)
	bank := NewQuestionBankService(db, log, repos.NewQuestionRepo(db, log))
	if _, err := bank.SeedDefaults(dbc); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}

	rec := &notifierRecorder{}
	svc := NewConversationService(
		db, log, cfg,
		intent.NewRuleClassifier(),
		signal.NewExtractor(),
		emotion.NewTracker(cfg),
		clarity.NewModel(cfg),
		fsm.New(),
		strategy.New(cfg),
		sessions, turns, idem, bank, rec,
	)
	return &dialogueHarness{svc: svc, dbc: dbc, cfg: cfg, notify: rec, sessions: sessions, turns: turns}
}

func (h *dialogueHarness) process(t *testing.T, req types.TurnRequest) *types.TurnResponse {
	t.Helper()
	resp, err := h.svc.ProcessTurn(h.dbc, req)
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	return resp
}

func (h *dialogueHarness) session(t *testing.T, id uuid.UUID) *types.ConversationSession {
	t.Helper()
	sess, err := h.sessions.GetByID(h.dbc, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	return sess
}

func TestProcessTurnValidation(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	cfg := tuning.Default()
	svc := NewConversationService(
		nil, log, cfg,
		intent.NewRuleClassifier(), signal.NewExtractor(),
		emotion.NewTracker(cfg), clarity.NewModel(cfg),
		fsm.New(), strategy.New(cfg),
		repos.NewSessionRepo(nil, log), repos.NewTurnRepo(nil, log),
		repos.NewIdempotencyRepo(nil, log),
		NewQuestionBankService(nil, log, repos.NewQuestionRepo(nil, log)),
		nil,
	)
	dbc := dbctx.Context{Ctx: context.Background()}
	userID := uuid.New()

	cases := []struct {
		name string
		req  types.TurnRequest
	}{
		{"missing user", types.TurnRequest{InputText: "hello"}},
		{"empty input", types.TurnRequest{UserID: userID}},
		{"whitespace input", types.TurnRequest{UserID: userID, InputText: "   "}},
		{"oversized input", types.TurnRequest{UserID: userID, InputText: strings.Repeat("a", 2001)}},
		{"oversized key", types.TurnRequest{UserID: userID, InputText: "hello", IdempotencyKey: strings.Repeat("k", 201)}},
	}
	for _, tc := range cases {
		if _, err := svc.ProcessTurn(dbc, tc.req); !types.IsCode(err, types.CodeInvalidInput) {
			t.Fatalf("%s: want invalid_input, got %v", tc.name, err)
		}
	}

	if _, _, err := svc.GetSession(dbc, uuid.Nil); !types.IsCode(err, types.CodeInvalidInput) {
		t.Fatalf("GetSession nil id: want invalid_input, got %v", err)
	}
	if _, err := svc.EndSession(dbc, uuid.Nil); !types.IsCode(err, types.CodeInvalidInput) {
		t.Fatalf("EndSession nil id: want invalid_input, got %v", err)
	}
}

func TestProcessTurnMoodFlowToRecommendation(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()
	ms := h.cfg.MessagesFor(lexicon.LangEnglish)

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "I feel sad"})
	if resp1.TurnIndex != 1 {
		t.Fatalf("turn 1 index: want=1 got=%d", resp1.TurnIndex)
	}
	if resp1.DialogueState != types.StateProbingIntensity {
		t.Fatalf("turn 1 state: want=%s got=%s", types.StateProbingIntensity, resp1.DialogueState)
	}
	if resp1.ResponseType != types.ResponseQuestion || resp1.ShouldRecommend {
		t.Fatalf("turn 1 should ask a question: %+v", resp1)
	}
	if !strings.HasPrefix(resp1.BotMessage, ms.Greeting) {
		t.Fatalf("turn 1 should open with the greeting, got %q", resp1.BotMessage)
	}
	sess := h.session(t, resp1.SessionID)
	if sess.State != types.StateProbingIntensity || sess.TurnCount != 1 || sess.Language != lexicon.LangEnglish {
		t.Fatalf("session after turn 1: %+v", sess)
	}

	resp2 := h.process(t, types.TurnRequest{UserID: userID, InputText: "it feels really strong", SessionID: &resp1.SessionID})
	if resp2.DialogueState != types.StateRecommending || !resp2.ShouldRecommend {
		t.Fatalf("turn 2 should recommend: %+v", resp2)
	}
	if resp2.ResponseType != types.ResponseRecommendation || resp2.BotMessage != ms.Recommend {
		t.Fatalf("turn 2 message: %+v", resp2)
	}
	if resp2.ClarityBand != types.ClarityHigh {
		t.Fatalf("turn 2 clarity band: want=%s got=%s", types.ClarityHigh, resp2.ClarityBand)
	}
	if resp2.Enriched == nil {
		t.Fatalf("turn 2 should carry the enriched handoff")
	}
	if resp2.Enriched.Mood != types.MoodSad || resp2.Enriched.Intensity != types.IntensityHigh {
		t.Fatalf("enriched mood: %+v", resp2.Enriched)
	}
	if resp2.Enriched.Valence >= 0 {
		t.Fatalf("enriched valence should be negative for sadness, got %v", resp2.Enriched.Valence)
	}
	// The delivered recommendation parks the session in feedback.
	sess = h.session(t, resp1.SessionID)
	if sess.State != types.StateFeedback || sess.TurnCount != 2 {
		t.Fatalf("session after turn 2: %+v", sess)
	}
	if len(h.notify.recs) != 1 {
		t.Fatalf("recommendation event count: want=1 got=%d", len(h.notify.recs))
	}

	resp3 := h.process(t, types.TurnRequest{UserID: userID, InputText: "thanks, that was perfect", SessionID: &resp1.SessionID})
	if resp3.DialogueState != types.StateEnded || resp3.ResponseType != types.ResponseFarewell {
		t.Fatalf("turn 3 should close the dialogue: %+v", resp3)
	}
	if resp3.BotMessage != ms.Farewell {
		t.Fatalf("turn 3 farewell: want=%q got=%q", ms.Farewell, resp3.BotMessage)
	}
	sess = h.session(t, resp1.SessionID)
	if sess.State != types.StateEnded || sess.TurnCount != 3 {
		t.Fatalf("session after turn 3: %+v", sess)
	}
	count, err := h.turns.CountBySession(h.dbc, resp1.SessionID)
	if err != nil || count != 3 {
		t.Fatalf("turn rows: err=%v count=%d", err, count)
	}

	// Naming a terminal session starts a fresh one.
	resp4 := h.process(t, types.TurnRequest{UserID: userID, InputText: "hello again", SessionID: &resp1.SessionID})
	if resp4.SessionID == resp1.SessionID || resp4.TurnIndex != 1 {
		t.Fatalf("turn after terminal session should start fresh: %+v", resp4)
	}
}

func TestProcessTurnFullFunnelWithConfirmation(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()
	ms := h.cfg.MessagesFor(lexicon.LangEnglish)

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "im feeling a little sad"})
	if resp1.DialogueState != types.StateProbingIntensity {
		t.Fatalf("turn 1 state: want=%s got=%s", types.StateProbingIntensity, resp1.DialogueState)
	}

	resp2 := h.process(t, types.TurnRequest{UserID: userID, InputText: "im on the bus by myself", SessionID: &resp1.SessionID})
	if resp2.DialogueState != types.StateProbingContext {
		t.Fatalf("turn 2 state: want=%s got=%s", types.StateProbingContext, resp2.DialogueState)
	}

	resp3 := h.process(t, types.TurnRequest{UserID: userID, InputText: "mmhm", SessionID: &resp1.SessionID})
	if resp3.DialogueState != types.StateConfirming || resp3.ResponseType != types.ResponseConfirmation {
		t.Fatalf("turn 3 should confirm: %+v", resp3)
	}
	wantConfirm := fmt.Sprintf(ms.ConfirmMood, lexicon.MoodLabel(types.MoodSad, lexicon.LangEnglish))
	if resp3.BotMessage != wantConfirm {
		t.Fatalf("confirm message: want=%q got=%q", wantConfirm, resp3.BotMessage)
	}

	resp4 := h.process(t, types.TurnRequest{UserID: userID, InputText: "yes", SessionID: &resp1.SessionID})
	if resp4.DialogueState != types.StateRecommending || !resp4.ShouldRecommend || resp4.Enriched == nil {
		t.Fatalf("turn 4 should recommend: %+v", resp4)
	}
	if resp4.Enriched.Mood != types.MoodSad || resp4.Enriched.Intensity != types.IntensityLow {
		t.Fatalf("enriched payload: %+v", resp4.Enriched)
	}

	rows, err := h.turns.ListBySession(h.dbc, resp1.SessionID, 10)
	if err != nil || len(rows) != 4 {
		t.Fatalf("turn log: err=%v len=%d", err, len(rows))
	}
	wantTriggers := []string{"mood_detected", "intensity_set", "context_clear", "confirmed"}
	for i, want := range wantTriggers {
		if rows[i].Trigger != want {
			t.Fatalf("turn %d trigger: want=%q got=%q", i+1, want, rows[i].Trigger)
		}
	}
}

func TestProcessTurnIdempotentReplay(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()
	key := "replay-" + uuid.NewString()

	first := h.process(t, types.TurnRequest{UserID: userID, InputText: "I feel happy", IdempotencyKey: key})
	if first.Replayed {
		t.Fatalf("first submission must not be a replay")
	}

	// A duplicate with the same key is answered from the cache even when the
	// body differs; nothing advances.
	second := h.process(t, types.TurnRequest{UserID: userID, InputText: "completely different words", IdempotencyKey: key})
	if !second.Replayed {
		t.Fatalf("duplicate submission should replay")
	}
	if second.TurnID != first.TurnID || second.SessionID != first.SessionID || second.BotMessage != first.BotMessage {
		t.Fatalf("replay should match the original: first=%+v second=%+v", first, second)
	}

	sess := h.session(t, first.SessionID)
	if sess.TurnCount != 1 {
		t.Fatalf("replay must not advance the session: turn_count=%d", sess.TurnCount)
	}
	count, err := h.turns.CountBySession(h.dbc, first.SessionID)
	if err != nil || count != 1 {
		t.Fatalf("replay must not add turns: err=%v count=%d", err, count)
	}
	if len(h.notify.turns) != 1 {
		t.Fatalf("replay must not re-notify: got %d turn events", len(h.notify.turns))
	}
}

func TestProcessTurnUnknownInputKeepsProbing(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "qwerty asdf zxcv"})
	if resp1.DialogueState != types.StateProbingMood || resp1.ResponseType != types.ResponseQuestion {
		t.Fatalf("unreadable input should open mood probing: %+v", resp1)
	}
	if resp1.ClarityBand != types.ClarityLow {
		t.Fatalf("turn 1 clarity band: want=%s got=%s", types.ClarityLow, resp1.ClarityBand)
	}

	resp2 := h.process(t, types.TurnRequest{UserID: userID, InputText: "asdf once more", SessionID: &resp1.SessionID})
	if resp2.DialogueState != types.StateProbingMood || resp2.TurnIndex != 2 {
		t.Fatalf("unreadable input should hold the state: %+v", resp2)
	}
}

func TestProcessTurnCancelAborts(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()
	ms := h.cfg.MessagesFor(lexicon.LangEnglish)

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "I feel sad"})
	resp2 := h.process(t, types.TurnRequest{UserID: userID, InputText: "stop", SessionID: &resp1.SessionID})
	if resp2.DialogueState != types.StateAborted || resp2.ResponseType != types.ResponseFarewell {
		t.Fatalf("cancel should abort: %+v", resp2)
	}
	if resp2.BotMessage != ms.Aborted {
		t.Fatalf("abort message: want=%q got=%q", ms.Aborted, resp2.BotMessage)
	}
	sess := h.session(t, resp1.SessionID)
	if sess.State != types.StateAborted {
		t.Fatalf("session state: want=%s got=%s", types.StateAborted, sess.State)
	}

	found := false
	for _, ev := range h.notify.ended {
		if ev.sessionID == resp1.SessionID && ev.state == types.StateAborted {
			found = true
		}
	}
	if !found {
		t.Fatalf("abort should emit a session ended event: %+v", h.notify.ended)
	}
}

func TestProcessTurnBudgetDegradesToRecommendation(t *testing.T) {
	cfg := tuning.Default()
	cfg.MaxTurnsPerSession = 2
	h := newDialogueHarness(t, cfg)
	userID := uuid.New()

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "lorem ipsum dolor"})
	if resp1.DialogueState != types.StateProbingMood {
		t.Fatalf("turn 1 state: want=%s got=%s", types.StateProbingMood, resp1.DialogueState)
	}

	// The budget turn recommends with whatever is known, even nothing.
	resp2 := h.process(t, types.TurnRequest{UserID: userID, InputText: "sit amet", SessionID: &resp1.SessionID})
	if resp2.DialogueState != types.StateRecommending || !resp2.ShouldRecommend {
		t.Fatalf("budget turn should recommend: %+v", resp2)
	}
	if resp2.Enriched == nil || !resp2.Enriched.Mood.None() {
		t.Fatalf("enriched payload without a detected mood: %+v", resp2.Enriched)
	}
	rows, err := h.turns.ListBySession(h.dbc, resp1.SessionID, 10)
	if err != nil || len(rows) != 2 {
		t.Fatalf("turn log: err=%v len=%d", err, len(rows))
	}
	if rows[1].Trigger != "budget_exhausted" {
		t.Fatalf("budget trigger: want=budget_exhausted got=%q", rows[1].Trigger)
	}
}

func TestProcessTurnNegativeFeedbackReprobes(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()
	ms := h.cfg.MessagesFor(lexicon.LangEnglish)

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "I feel sad"})
	resp2 := h.process(t, types.TurnRequest{UserID: userID, InputText: "it feels really strong", SessionID: &resp1.SessionID})
	if resp2.DialogueState != types.StateRecommending {
		t.Fatalf("turn 2 state: want=%s got=%s", types.StateRecommending, resp2.DialogueState)
	}

	resp3 := h.process(t, types.TurnRequest{UserID: userID, InputText: "boring", SessionID: &resp1.SessionID})
	if resp3.DialogueState != types.StateProbingMood || resp3.ResponseType != types.ResponseQuestion {
		t.Fatalf("negative feedback should reopen probing: %+v", resp3)
	}
	if !strings.HasPrefix(resp3.BotMessage, ms.Reprobe) {
		t.Fatalf("reprobe message should open with the reprobe lead, got %q", resp3.BotMessage)
	}
}

func TestProcessTurnVietnameseUpgrade(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "hello"})
	sess := h.session(t, resp1.SessionID)
	if sess.Language != lexicon.LangEnglish {
		t.Fatalf("turn 1 language: want=en got=%s", sess.Language)
	}

	resp2 := h.process(t, types.TurnRequest{UserID: userID, InputText: "tôi buồn quá", SessionID: &resp1.SessionID})
	sess = h.session(t, resp1.SessionID)
	if sess.Language != lexicon.LangVietnamese {
		t.Fatalf("diacritics should upgrade the session language, got %s", sess.Language)
	}
	if lexicon.DetectLanguage(resp2.BotMessage) != lexicon.LangVietnamese {
		t.Fatalf("bot should answer in Vietnamese, got %q", resp2.BotMessage)
	}
}

func TestProcessTurnExpiredSessionRestarts(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "I feel sad"})
	stale := time.Now().UTC().Add(-2 * time.Hour)
	if err := h.sessions.UpdateFields(h.dbc, resp1.SessionID, map[string]interface{}{
		"last_activity_at": stale,
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	// The expired session reads as expired before any sweep has run.
	if _, _, err := h.svc.GetSession(h.dbc, resp1.SessionID); !types.IsCode(err, types.CodeExpired) {
		t.Fatalf("GetSession on idle session: want expired, got %v", err)
	}

	resp2 := h.process(t, types.TurnRequest{UserID: userID, InputText: "hello again", SessionID: &resp1.SessionID})
	if resp2.SessionID == resp1.SessionID || resp2.TurnIndex != 1 {
		t.Fatalf("expired session should restart fresh: %+v", resp2)
	}
	old := h.session(t, resp1.SessionID)
	if old.State != types.StateTimeout {
		t.Fatalf("old session state: want=%s got=%s", types.StateTimeout, old.State)
	}
	found := false
	for _, ev := range h.notify.ended {
		if ev.sessionID == resp1.SessionID && ev.state == types.StateTimeout {
			found = true
		}
	}
	if !found {
		t.Fatalf("timeout should emit a session ended event: %+v", h.notify.ended)
	}

	// Terminal sessions stay readable until retention purges them.
	gotSess, gotTurns, err := h.svc.GetSession(h.dbc, resp1.SessionID)
	if err != nil {
		t.Fatalf("GetSession after timeout: %v", err)
	}
	if gotSess.State != types.StateTimeout || len(gotTurns) != 1 {
		t.Fatalf("timed out session history: state=%s turns=%d", gotSess.State, len(gotTurns))
	}
}

func TestProcessTurnRejectsForeignSession(t *testing.T) {
	h := newDialogueHarness(t, nil)
	owner := uuid.New()
	intruder := uuid.New()

	resp1 := h.process(t, types.TurnRequest{UserID: owner, InputText: "I feel sad"})
	_, err := h.svc.ProcessTurn(h.dbc, types.TurnRequest{UserID: intruder, InputText: "hello", SessionID: &resp1.SessionID})
	if !types.IsCode(err, types.CodeNotFound) {
		t.Fatalf("foreign session: want not_found, got %v", err)
	}
}

func TestGetSessionReturnsHistory(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()

	if _, _, err := h.svc.GetSession(h.dbc, uuid.New()); !types.IsCode(err, types.CodeNotFound) {
		t.Fatalf("unknown session: want not_found, got %v", err)
	}

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "I feel sad"})
	h.process(t, types.TurnRequest{UserID: userID, InputText: "asdf", SessionID: &resp1.SessionID})

	sess, turns, err := h.svc.GetSession(h.dbc, resp1.SessionID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.ID != resp1.SessionID || len(turns) != 2 {
		t.Fatalf("history: session=%s turns=%d", sess.ID, len(turns))
	}
	if turns[0].TurnIndex != 1 || turns[1].TurnIndex != 2 {
		t.Fatalf("history should be oldest first: %d, %d", turns[0].TurnIndex, turns[1].TurnIndex)
	}
}

func TestEndSessionIdempotent(t *testing.T) {
	h := newDialogueHarness(t, nil)
	userID := uuid.New()

	if _, err := h.svc.EndSession(h.dbc, uuid.New()); !types.IsCode(err, types.CodeNotFound) {
		t.Fatalf("unknown session: want not_found, got %v", err)
	}

	resp1 := h.process(t, types.TurnRequest{UserID: userID, InputText: "I feel sad"})
	ended, err := h.svc.EndSession(h.dbc, resp1.SessionID)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if ended.State != types.StateEnded {
		t.Fatalf("state after end: want=%s got=%s", types.StateEnded, ended.State)
	}

	// Closing again is a no-op, and no turn row is written either way.
	again, err := h.svc.EndSession(h.dbc, resp1.SessionID)
	if err != nil {
		t.Fatalf("EndSession repeat: %v", err)
	}
	if again.State != types.StateEnded {
		t.Fatalf("state after repeat end: want=%s got=%s", types.StateEnded, again.State)
	}
	count, err := h.turns.CountBySession(h.dbc, resp1.SessionID)
	if err != nil || count != 1 {
		t.Fatalf("turn rows after end: err=%v count=%d", err, count)
	}

	endedEvents := 0
	for _, ev := range h.notify.ended {
		if ev.sessionID == resp1.SessionID && ev.state == types.StateEnded {
			endedEvents++
		}
	}
	if endedEvents != 1 {
		t.Fatalf("repeat end must not re-notify: got %d events", endedEvents)
	}
}
