package fsm

import (
	"testing"

	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

func TestTableShape(t *testing.T) {
	tbl := Table()
	for _, state := range dialogue.AllStates {
		rules, ok := tbl[state]
		if !ok {
			t.Fatalf("state %q missing from table", state)
		}
		if state.Terminal() {
			if len(rules) != 0 {
				t.Errorf("terminal state %q has rules: %+v", state, rules)
			}
			continue
		}
		seen := map[Trigger]bool{}
		for _, rule := range rules {
			if !rule.Next.Valid() {
				t.Errorf("state %q rule %q points at invalid state %q", state, rule.Trigger, rule.Next)
			}
			if seen[rule.Trigger] {
				t.Errorf("state %q has duplicate trigger %q", state, rule.Trigger)
			}
			seen[rule.Trigger] = true
		}
		if !seen[TriggerCancel] {
			t.Errorf("non-terminal state %q has no cancel row", state)
		}
		if !seen[TriggerTimeout] {
			t.Errorf("non-terminal state %q has no timeout row", state)
		}
	}
}

func TestNextTransitions(t *testing.T) {
	m := New()
	cases := []struct {
		name        string
		state       dialogue.State
		facts       Facts
		wantState   dialogue.State
		wantTrigger Trigger
	}{
		{
			"greeting with clear mood skips mood probing",
			dialogue.StateGreeting,
			Facts{Intent: dialogue.IntentMoodExpression, MoodKnown: true, TurnCount: 1, MaxTurns: 10},
			dialogue.StateProbingIntensity, TriggerMoodDetected,
		},
		{
			"greeting without mood opens mood probing",
			dialogue.StateGreeting,
			Facts{Intent: dialogue.IntentGreeting, TurnCount: 1, MaxTurns: 10},
			dialogue.StateProbingMood, TriggerMoodUnclear,
		},
		{
			"greeting with high clarity recommends immediately",
			dialogue.StateGreeting,
			Facts{Intent: dialogue.IntentMoodExpression, ClarityHigh: true, MoodKnown: true, TurnCount: 1, MaxTurns: 10},
			dialogue.StateRecommending, TriggerClarityHigh,
		},
		{
			"probing mood holds on unknown input",
			dialogue.StateProbingMood,
			Facts{Intent: dialogue.IntentUnknown, TurnCount: 3, MaxTurns: 10},
			dialogue.StateProbingMood, TriggerNone,
		},
		{
			"probing mood advances once mood is known",
			dialogue.StateProbingMood,
			Facts{Intent: dialogue.IntentMoodExpression, MoodKnown: true, TurnCount: 3, MaxTurns: 10},
			dialogue.StateProbingIntensity, TriggerMoodDetected,
		},
		{
			"probing mood at budget forces recommendation",
			dialogue.StateProbingMood,
			Facts{Intent: dialogue.IntentUnknown, TurnCount: 10, MaxTurns: 10},
			dialogue.StateRecommending, TriggerBudget,
		},
		{
			"probing intensity advances to context",
			dialogue.StateProbingIntensity,
			Facts{Intent: dialogue.IntentMoodExpression, MoodKnown: true, IntensityKnown: true, TurnCount: 2, MaxTurns: 10},
			dialogue.StateProbingContext, TriggerIntensitySet,
		},
		{
			"probing intensity jumps on high clarity",
			dialogue.StateProbingIntensity,
			Facts{Intent: dialogue.IntentMoodExpression, ClarityHigh: true, IntensityKnown: true, TurnCount: 2, MaxTurns: 10},
			dialogue.StateRecommending, TriggerClarityHigh,
		},
		{
			"probing context confirms when situation is clear",
			dialogue.StateProbingContext,
			Facts{Intent: dialogue.IntentContextExpression, ContextClear: true, TurnCount: 3, MaxTurns: 10},
			dialogue.StateConfirming, TriggerContextClear,
		},
		{
			"probing context at budget recommends even when clear",
			dialogue.StateProbingContext,
			Facts{Intent: dialogue.IntentContextExpression, ContextClear: true, TurnCount: 10, MaxTurns: 10},
			dialogue.StateRecommending, TriggerBudget,
		},
		{
			"confirmation accepted",
			dialogue.StateConfirming,
			Facts{Intent: dialogue.IntentConfirmation, TurnCount: 4, MaxTurns: 10},
			dialogue.StateRecommending, TriggerConfirmed,
		},
		{
			"confirmation corrected loops back",
			dialogue.StateConfirming,
			Facts{Intent: dialogue.IntentNegation, TurnCount: 4, MaxTurns: 10},
			dialogue.StateProbingMood, TriggerCorrected,
		},
		{
			"confirmation corrected at budget cannot reopen probing",
			dialogue.StateConfirming,
			Facts{Intent: dialogue.IntentMoodCorrection, TurnCount: 10, MaxTurns: 10},
			dialogue.StateRecommending, TriggerBudget,
		},
		{
			"confirmation holds on unknown input",
			dialogue.StateConfirming,
			Facts{Intent: dialogue.IntentUnknown, TurnCount: 4, MaxTurns: 10},
			dialogue.StateConfirming, TriggerNone,
		},
		{
			"confirmation cannot re-ask past budget",
			dialogue.StateConfirming,
			Facts{Intent: dialogue.IntentUnknown, TurnCount: 10, MaxTurns: 10},
			dialogue.StateRecommending, TriggerBudget,
		},
		{
			"negative feedback reopens probing",
			dialogue.StateFeedback,
			Facts{Intent: dialogue.IntentNegativeFeedback, TurnCount: 6, MaxTurns: 10},
			dialogue.StateProbingMood, TriggerNegativeFeedback,
		},
		{
			"positive feedback ends the dialogue",
			dialogue.StateFeedback,
			Facts{Intent: dialogue.IntentPositiveFeedback, TurnCount: 6, MaxTurns: 10},
			dialogue.StateEnded, TriggerFeedbackClosed,
		},
		{
			"silent feedback ends the dialogue",
			dialogue.StateFeedback,
			Facts{Intent: dialogue.IntentUnknown, TurnCount: 6, MaxTurns: 10},
			dialogue.StateEnded, TriggerFeedbackClosed,
		},
		{
			"cancel aborts from any non-terminal state",
			dialogue.StateProbingContext,
			Facts{Intent: dialogue.IntentCancel, TurnCount: 3, MaxTurns: 10},
			dialogue.StateAborted, TriggerCancel,
		},
		{
			"terminal state never moves",
			dialogue.StateEnded,
			Facts{Intent: dialogue.IntentMoodExpression, MoodKnown: true, TurnCount: 7, MaxTurns: 10},
			dialogue.StateEnded, TriggerNone,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, trigger := m.Next(tc.state, tc.facts)
			if next != tc.wantState || trigger != tc.wantTrigger {
				t.Fatalf("Next(%q) = (%q, %q), want (%q, %q)", tc.state, next, trigger, tc.wantState, tc.wantTrigger)
			}
		})
	}
}

func TestForce(t *testing.T) {
	m := New()
	for _, state := range dialogue.AllStates {
		next, ok := m.Force(state, TriggerTimeout)
		if state.Terminal() {
			if ok {
				t.Errorf("Force(%q, timeout) should not apply to terminal state", state)
			}
			continue
		}
		if !ok || next != dialogue.StateTimeout {
			t.Errorf("Force(%q, timeout) = (%q, %v), want (timeout, true)", state, next, ok)
		}
	}
	if next, ok := m.Force(dialogue.StateRecommending, TriggerDelivered); !ok || next != dialogue.StateFeedback {
		t.Errorf("Force(recommending, delivered) = (%q, %v)", next, ok)
	}
	if _, ok := m.Force(dialogue.StateGreeting, TriggerDelivered); ok {
		t.Errorf("delivered must not apply to greeting")
	}
}

// Every transition Next can produce must be a table row, and once the turn
// budget is spent no derived transition may land in a probing state.
func TestNextStaysInsideTableAndRespectsBudget(t *testing.T) {
	m := New()
	tbl := Table()
	bools := []bool{false, true}
	for _, state := range dialogue.AllStates {
		for _, intent := range dialogue.AllIntents {
			for _, clarityHigh := range bools {
				for _, moodKnown := range bools {
					for _, intensityKnown := range bools {
						for _, contextClear := range bools {
							for _, turnCount := range []int{1, 9, 10, 13} {
								f := Facts{
									Intent:         intent,
									ClarityHigh:    clarityHigh,
									MoodKnown:      moodKnown,
									IntensityKnown: intensityKnown,
									ContextClear:   contextClear,
									TurnCount:      turnCount,
									MaxTurns:       10,
								}
								next, trigger := m.Next(state, f)
								if !next.Valid() {
									t.Fatalf("state %q facts %+v: invalid next %q", state, f, next)
								}
								if trigger == TriggerNone {
									if next != state {
										t.Fatalf("state %q: TriggerNone moved to %q", state, next)
									}
								} else {
									found := false
									for _, rule := range tbl[state] {
										if rule.Trigger == trigger && rule.Next == next {
											found = true
											break
										}
									}
									if !found {
										t.Fatalf("state %q facts %+v: transition (%q -> %q) not in table", state, f, trigger, next)
									}
								}
								if turnCount >= 10 && !state.Terminal() && next.Probing() {
									t.Fatalf("state %q facts %+v: landed in probing state %q past budget", state, f, next)
								}
							}
						}
					}
				}
			}
		}
	}
}
