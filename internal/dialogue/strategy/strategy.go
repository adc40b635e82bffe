// Package strategy decides, after each state transition, whether the
// dialogue keeps probing and along which dimension, or stops and hands
// off to recommendation. It never overrides the state machine; it only
// refines what to do inside the state the machine chose.
package strategy

import (
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

// Action is the engine's verdict for the turn being answered.
type Action string

const (
	// ActionAsk keeps the dialogue going with a clarifying question.
	ActionAsk Action = "ask"
	// ActionProceed stops probing and hands off to recommendation.
	ActionProceed Action = "proceed"
	// ActionFarewell closes the conversation.
	ActionFarewell Action = "farewell"
)

// Decision carries the action plus, for ActionAsk, which question to draw.
type Decision struct {
	Action   Action
	Category dialogue.QuestionCategory
	Depth    int
}

// Engine derives decisions from the clarity breakdown and the turn budget.
type Engine struct {
	cfg *tuning.Config
}

func New(cfg *tuning.Config) *Engine {
	return &Engine{cfg: cfg}
}

// outstanding lists, per probing stage, the dimensions not yet settled at
// that point of the funnel. Order breaks score ties.
var outstanding = map[dialogue.State][]dialogue.QuestionCategory{
	dialogue.StateGreeting:         {dialogue.CategoryMood, dialogue.CategoryIntensity, dialogue.CategoryContext},
	dialogue.StateProbingMood:      {dialogue.CategoryMood, dialogue.CategoryIntensity, dialogue.CategoryContext},
	dialogue.StateProbingIntensity: {dialogue.CategoryIntensity, dialogue.CategoryContext},
	dialogue.StateProbingContext:   {dialogue.CategoryContext},
}

// Decide maps the post-transition state to the next move. turnCount is the
// count including the turn currently being processed.
func (e *Engine) Decide(state dialogue.State, res dialogue.ClarityResult, turnCount int) Decision {
	if state.Terminal() {
		return Decision{Action: ActionFarewell}
	}
	switch state {
	case dialogue.StateRecommending:
		return Decision{Action: ActionProceed}
	case dialogue.StateConfirming, dialogue.StateFeedback:
		return Decision{Action: ActionAsk, Category: dialogue.CategoryConfirm, Depth: dialogue.DepthSurface}
	}
	if e.budgetSpent(turnCount) {
		return Decision{Action: ActionProceed}
	}
	return Decision{
		Action:   ActionAsk,
		Category: e.weakest(state, res.Components),
		Depth:    e.depth(turnCount),
	}
}

func (e *Engine) budgetSpent(turnCount int) bool {
	return e.cfg.MaxTurnsPerSession > 0 && turnCount >= e.cfg.MaxTurnsPerSession
}

// weakest picks the lowest-scoring dimension still outstanding for the
// given probing stage.
func (e *Engine) weakest(state dialogue.State, c dialogue.ClarityComponents) dialogue.QuestionCategory {
	dims := outstanding[state]
	if len(dims) == 0 {
		return dialogue.CategoryMood
	}
	best := dims[0]
	bestScore := componentScore(c, best)
	for _, dim := range dims[1:] {
		if s := componentScore(c, dim); s < bestScore {
			best, bestScore = dim, s
		}
	}
	return best
}

func componentScore(c dialogue.ClarityComponents, cat dialogue.QuestionCategory) float64 {
	switch cat {
	case dialogue.CategoryMood:
		return c.Mood
	case dialogue.CategoryIntensity:
		return c.Intensity
	case dialogue.CategoryContext:
		return c.Context
	default:
		return 1
	}
}

// depth escalates from surface to specific questions once the remaining
// share of the turn budget drops below the configured ratio.
func (e *Engine) depth(turnCount int) int {
	max := e.cfg.MaxTurnsPerSession
	if max <= 0 {
		return dialogue.DepthSurface
	}
	remaining := max - turnCount
	if remaining < 0 {
		remaining = 0
	}
	if float64(remaining)/float64(max) < e.cfg.Strategy.DepthEscalationRatio {
		return dialogue.DepthSpecific
	}
	return dialogue.DepthSurface
}
