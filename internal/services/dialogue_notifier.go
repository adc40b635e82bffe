package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
	"github.com/moodtunes/moodtunes-backend/internal/observability"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
	"github.com/moodtunes/moodtunes-backend/internal/realtime"
	"github.com/moodtunes/moodtunes-backend/internal/realtime/bus"
)

// DialogueNotifier fans committed dialogue events out to subscribers. The
// recommendation engine listens for RecommendationReady; clients follow
// their own channel for turn updates. Calls are fire-and-forget after
// commit; a failed publish never fails the turn.
type DialogueNotifier interface {
	TurnProcessed(userID uuid.UUID, resp *types.TurnResponse)
	SessionEnded(userID uuid.UUID, sessionID uuid.UUID, state types.State)
	RecommendationReady(userID uuid.UUID, enriched *types.EnrichedRequest)
}

type dialogueNotifier struct {
	log *logger.Logger
	bus bus.Bus
}

// NewDialogueNotifier wraps the bus; a nil bus yields a notifier that
// silently drops events, so local runs work without redis.
func NewDialogueNotifier(baseLog *logger.Logger, b bus.Bus) DialogueNotifier {
	return &dialogueNotifier{
		log: baseLog.With("service", "DialogueNotifier"),
		bus: b,
	}
}

func (n *dialogueNotifier) publish(event realtime.Event, userID uuid.UUID, data map[string]any) {
	if n == nil || n.bus == nil || userID == uuid.Nil {
		return
	}
	msg := realtime.Message{
		Channel: userID.String(),
		Event:   event,
		Data:    data,
	}
	if err := n.bus.Publish(context.Background(), msg); err != nil {
		observability.Current().IncBusPublishFailure()
		n.log.Warn("dialogue event publish failed", "event", string(event), "error", err)
	}
}

func (n *dialogueNotifier) TurnProcessed(userID uuid.UUID, resp *types.TurnResponse) {
	if resp == nil {
		return
	}
	n.publish(realtime.EventTurnProcessed, userID, map[string]any{
		"session_id":       resp.SessionID,
		"turn_id":          resp.TurnID,
		"turn_index":       resp.TurnIndex,
		"dialogue_state":   resp.DialogueState,
		"response_type":    resp.ResponseType,
		"should_recommend": resp.ShouldRecommend,
	})
}

func (n *dialogueNotifier) SessionEnded(userID uuid.UUID, sessionID uuid.UUID, state types.State) {
	n.publish(realtime.EventSessionEnded, userID, map[string]any{
		"session_id": sessionID,
		"state":      state,
	})
}

func (n *dialogueNotifier) RecommendationReady(userID uuid.UUID, enriched *types.EnrichedRequest) {
	if enriched == nil {
		return
	}
	n.publish(realtime.EventRecommendationReady, userID, map[string]any{
		"enriched_request": enriched,
	})
}
