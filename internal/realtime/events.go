package realtime

type Event string

const (
	EventTurnProcessed       Event = "ConversationTurnProcessed"
	EventSessionEnded        Event = "ConversationSessionEnded"
	EventRecommendationReady Event = "RecommendationReady"
)

// Message is one fan-out payload on the dialogue bus. Channel scopes
// delivery, normally to a single user ID.
type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}
