// Package fsm drives conversation flow. The full transition table is plain
// data keyed by (state, trigger), so every legal transition is enumerable in
// one place; Next derives the trigger from per-turn facts and looks it up.
package fsm

import (
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

// Trigger names the reason a transition fires.
type Trigger string

const (
	// TriggerCancel aborts any non-terminal dialogue on an explicit cancel.
	TriggerCancel Trigger = "cancel"
	// TriggerTimeout expires an idle session; applied by the session store
	// before a turn is dispatched.
	TriggerTimeout Trigger = "timeout"
	// TriggerBudget forces a recommendation once the turn budget is spent.
	TriggerBudget Trigger = "budget_exhausted"
	// TriggerClarityHigh jumps straight to recommending.
	TriggerClarityHigh Trigger = "clarity_high"
	// TriggerMoodDetected advances past mood probing.
	TriggerMoodDetected Trigger = "mood_detected"
	// TriggerMoodUnclear opens mood probing from the greeting.
	TriggerMoodUnclear Trigger = "mood_unclear"
	// TriggerIntensitySet advances past intensity probing.
	TriggerIntensitySet Trigger = "intensity_set"
	// TriggerContextClear moves a probed session to confirmation.
	TriggerContextClear Trigger = "context_clear"
	// TriggerConfirmed accepts the confirmation prompt.
	TriggerConfirmed Trigger = "confirmed"
	// TriggerCorrected rejects the confirmation and loops back to probing.
	TriggerCorrected Trigger = "corrected"
	// TriggerDelivered records that a recommendation went out.
	TriggerDelivered Trigger = "recommendation_delivered"
	// TriggerNegativeFeedback reopens probing after a mood mismatch.
	TriggerNegativeFeedback Trigger = "negative_feedback"
	// TriggerFeedbackClosed ends the dialogue on neutral or positive
	// feedback.
	TriggerFeedbackClosed Trigger = "feedback_closed"
	// TriggerNone is the recorded no-op: the state holds.
	TriggerNone Trigger = "none"
)

// Rule is one table row.
type Rule struct {
	Trigger Trigger
	Next    dialogue.State
}

var table = map[dialogue.State][]Rule{
	dialogue.StateGreeting: {
		{TriggerCancel, dialogue.StateAborted},
		{TriggerTimeout, dialogue.StateTimeout},
		{TriggerClarityHigh, dialogue.StateRecommending},
		{TriggerBudget, dialogue.StateRecommending},
		{TriggerMoodDetected, dialogue.StateProbingIntensity},
		{TriggerMoodUnclear, dialogue.StateProbingMood},
	},
	dialogue.StateProbingMood: {
		{TriggerCancel, dialogue.StateAborted},
		{TriggerTimeout, dialogue.StateTimeout},
		{TriggerClarityHigh, dialogue.StateRecommending},
		{TriggerBudget, dialogue.StateRecommending},
		{TriggerMoodDetected, dialogue.StateProbingIntensity},
		{TriggerNone, dialogue.StateProbingMood},
	},
	dialogue.StateProbingIntensity: {
		{TriggerCancel, dialogue.StateAborted},
		{TriggerTimeout, dialogue.StateTimeout},
		{TriggerClarityHigh, dialogue.StateRecommending},
		{TriggerBudget, dialogue.StateRecommending},
		{TriggerIntensitySet, dialogue.StateProbingContext},
		{TriggerNone, dialogue.StateProbingIntensity},
	},
	dialogue.StateProbingContext: {
		{TriggerCancel, dialogue.StateAborted},
		{TriggerTimeout, dialogue.StateTimeout},
		{TriggerBudget, dialogue.StateRecommending},
		{TriggerContextClear, dialogue.StateConfirming},
		{TriggerNone, dialogue.StateProbingContext},
	},
	dialogue.StateConfirming: {
		{TriggerCancel, dialogue.StateAborted},
		{TriggerTimeout, dialogue.StateTimeout},
		{TriggerBudget, dialogue.StateRecommending},
		{TriggerConfirmed, dialogue.StateRecommending},
		{TriggerCorrected, dialogue.StateProbingMood},
		{TriggerNone, dialogue.StateConfirming},
	},
	dialogue.StateRecommending: {
		{TriggerCancel, dialogue.StateAborted},
		{TriggerTimeout, dialogue.StateTimeout},
		{TriggerDelivered, dialogue.StateFeedback},
	},
	dialogue.StateFeedback: {
		{TriggerCancel, dialogue.StateAborted},
		{TriggerTimeout, dialogue.StateTimeout},
		{TriggerBudget, dialogue.StateRecommending},
		{TriggerNegativeFeedback, dialogue.StateProbingMood},
		{TriggerFeedbackClosed, dialogue.StateEnded},
	},
	dialogue.StateEnded:   {},
	dialogue.StateAborted: {},
	dialogue.StateTimeout: {},
}

// Facts are the per-turn observations transitions are derived from.
// TurnCount is the index of the turn being processed (prior count + 1).
type Facts struct {
	Intent         dialogue.Intent
	ClarityHigh    bool
	MoodKnown      bool
	IntensityKnown bool
	ContextClear   bool
	TurnCount      int
	MaxTurns       int
}

func (f Facts) budgetSpent() bool {
	return f.MaxTurns > 0 && f.TurnCount >= f.MaxTurns
}

type Machine struct{}

func New() *Machine { return &Machine{} }

// Next derives the trigger for the current state from the facts and applies
// the table. Terminal states never move; unknown input holds the state with
// TriggerNone rather than failing.
func (m *Machine) Next(cur dialogue.State, f Facts) (dialogue.State, Trigger) {
	if cur.Terminal() {
		return cur, TriggerNone
	}
	trigger := derive(cur, f)
	if next, ok := lookup(cur, trigger); ok {
		return next, trigger
	}
	return cur, TriggerNone
}

// Force applies an externally decided trigger (timeout marking, delivery
// advance) if the table allows it for the current state.
func (m *Machine) Force(cur dialogue.State, trigger Trigger) (dialogue.State, bool) {
	return lookup(cur, trigger)
}

func derive(cur dialogue.State, f Facts) Trigger {
	if f.Intent == dialogue.IntentCancel {
		return TriggerCancel
	}
	switch cur {
	case dialogue.StateGreeting:
		switch {
		case f.ClarityHigh:
			return TriggerClarityHigh
		case f.budgetSpent():
			return TriggerBudget
		case f.MoodKnown:
			return TriggerMoodDetected
		default:
			return TriggerMoodUnclear
		}
	case dialogue.StateProbingMood:
		switch {
		case f.ClarityHigh:
			return TriggerClarityHigh
		case f.budgetSpent():
			return TriggerBudget
		case f.MoodKnown:
			return TriggerMoodDetected
		default:
			return TriggerNone
		}
	case dialogue.StateProbingIntensity:
		switch {
		case f.ClarityHigh:
			return TriggerClarityHigh
		case f.budgetSpent():
			return TriggerBudget
		case f.IntensityKnown:
			return TriggerIntensitySet
		default:
			return TriggerNone
		}
	case dialogue.StateProbingContext:
		switch {
		case f.budgetSpent():
			return TriggerBudget
		case f.ContextClear:
			return TriggerContextClear
		default:
			return TriggerNone
		}
	case dialogue.StateConfirming:
		switch {
		case f.Intent == dialogue.IntentConfirmation:
			return TriggerConfirmed
		case f.Intent == dialogue.IntentMoodCorrection || f.Intent == dialogue.IntentNegation:
			// The loop back to probing is only open while budget remains.
			if f.budgetSpent() {
				return TriggerBudget
			}
			return TriggerCorrected
		default:
			// An unclear answer re-asks the confirmation, but not past
			// the turn budget.
			if f.budgetSpent() {
				return TriggerBudget
			}
			return TriggerNone
		}
	case dialogue.StateRecommending:
		return TriggerDelivered
	case dialogue.StateFeedback:
		switch {
		case f.Intent == dialogue.IntentNegativeFeedback || f.Intent == dialogue.IntentMoodCorrection:
			if f.budgetSpent() {
				return TriggerBudget
			}
			return TriggerNegativeFeedback
		default:
			return TriggerFeedbackClosed
		}
	default:
		return TriggerNone
	}
}

func lookup(cur dialogue.State, trigger Trigger) (dialogue.State, bool) {
	for _, rule := range table[cur] {
		if rule.Trigger == trigger {
			return rule.Next, true
		}
	}
	return cur, false
}

// Table returns a copy of the transition table for enumeration.
func Table() map[dialogue.State][]Rule {
	out := make(map[dialogue.State][]Rule, len(table))
	for state, rules := range table {
		out[state] = append([]Rule(nil), rules...)
	}
	return out
}
