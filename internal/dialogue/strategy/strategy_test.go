package strategy

import (
	"testing"

	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

func result(mood, intensity, confidence, ctx, consistency float64) dialogue.ClarityResult {
	return dialogue.ClarityResult{
		Components: dialogue.ClarityComponents{
			Mood:        mood,
			Intensity:   intensity,
			Confidence:  confidence,
			Context:     ctx,
			Consistency: consistency,
		},
	}
}

func TestDecide(t *testing.T) {
	e := New(tuning.Default())
	cases := []struct {
		name      string
		state     dialogue.State
		res       dialogue.ClarityResult
		turnCount int
		want      Decision
	}{
		{
			"fresh session probes mood first",
			dialogue.StateProbingMood, result(0, 0, 0, 0, 0.5), 1,
			Decision{Action: ActionAsk, Category: dialogue.CategoryMood, Depth: dialogue.DepthSurface},
		},
		{
			"mood probing targets the weakest dimension after a loop back",
			dialogue.StateProbingMood, result(0.8, 0.45, 0.8, 0.33, 0.6), 2,
			Decision{Action: ActionAsk, Category: dialogue.CategoryContext, Depth: dialogue.DepthSurface},
		},
		{
			"intensity probing never re-asks mood",
			dialogue.StateProbingIntensity, result(0.1, 0.45, 0.8, 0.66, 0.6), 2,
			Decision{Action: ActionAsk, Category: dialogue.CategoryIntensity, Depth: dialogue.DepthSurface},
		},
		{
			"context probing always asks context",
			dialogue.StateProbingContext, result(0.8, 1, 0.9, 0.33, 1), 3,
			Decision{Action: ActionAsk, Category: dialogue.CategoryContext, Depth: dialogue.DepthSurface},
		},
		{
			"questions get specific once budget runs low",
			dialogue.StateProbingIntensity, result(0.8, 0.45, 0.8, 0.66, 0.6), 6,
			Decision{Action: ActionAsk, Category: dialogue.CategoryIntensity, Depth: dialogue.DepthSpecific},
		},
		{
			"half the budget left still asks surface questions",
			dialogue.StateProbingMood, result(0, 0, 0, 0, 0.5), 5,
			Decision{Action: ActionAsk, Category: dialogue.CategoryMood, Depth: dialogue.DepthSurface},
		},
		{
			"spent budget proceeds no matter how unclear",
			dialogue.StateProbingMood, result(0, 0, 0, 0, 0), 10,
			Decision{Action: ActionProceed},
		},
		{
			"confirming asks a confirmation question",
			dialogue.StateConfirming, result(0.8, 0.75, 0.85, 0.66, 1), 4,
			Decision{Action: ActionAsk, Category: dialogue.CategoryConfirm, Depth: dialogue.DepthSurface},
		},
		{
			"recommending proceeds",
			dialogue.StateRecommending, result(0.8, 0.75, 0.85, 0.66, 1), 5,
			Decision{Action: ActionProceed},
		},
		{
			"feedback asks how the music landed",
			dialogue.StateFeedback, result(0.8, 0.75, 0.85, 0.66, 1), 6,
			Decision{Action: ActionAsk, Category: dialogue.CategoryConfirm, Depth: dialogue.DepthSurface},
		},
		{
			"ended says goodbye",
			dialogue.StateEnded, result(0.8, 0.75, 0.85, 0.66, 1), 6,
			Decision{Action: ActionFarewell},
		},
		{
			"aborted says goodbye",
			dialogue.StateAborted, result(0, 0, 0, 0, 0), 2,
			Decision{Action: ActionFarewell},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Decide(tc.state, tc.res, tc.turnCount)
			if got != tc.want {
				t.Fatalf("Decide(%q, turn %d) = %+v, want %+v", tc.state, tc.turnCount, got, tc.want)
			}
		})
	}
}

// Probing decisions past the budget must always proceed, whatever the
// clarity breakdown looks like.
func TestDecideTerminatesAtBudget(t *testing.T) {
	cfg := tuning.Default()
	e := New(cfg)
	probing := []dialogue.State{
		dialogue.StateGreeting,
		dialogue.StateProbingMood,
		dialogue.StateProbingIntensity,
		dialogue.StateProbingContext,
	}
	breakdowns := []dialogue.ClarityResult{
		result(0, 0, 0, 0, 0),
		result(0.4, 0.4, 0.4, 0.33, 0.5),
		result(1, 1, 1, 1, 1),
	}
	for _, state := range probing {
		for _, res := range breakdowns {
			for _, turn := range []int{cfg.MaxTurnsPerSession, cfg.MaxTurnsPerSession + 5} {
				if got := e.Decide(state, res, turn); got.Action != ActionProceed {
					t.Fatalf("Decide(%q, turn %d) = %+v, want proceed", state, turn, got)
				}
			}
		}
	}
}

func TestDepthEscalation(t *testing.T) {
	cfg := tuning.Default()
	cfg.MaxTurnsPerSession = 4
	cfg.Strategy.DepthEscalationRatio = 0.5
	e := New(cfg)
	res := result(0, 0, 0, 0, 0.5)

	// 4-turn budget: turns 1 and 2 leave >= half the budget, turn 3 does not.
	for turn, wantDepth := range map[int]int{1: dialogue.DepthSurface, 2: dialogue.DepthSurface, 3: dialogue.DepthSpecific} {
		got := e.Decide(dialogue.StateProbingMood, res, turn)
		if got.Action != ActionAsk || got.Depth != wantDepth {
			t.Errorf("turn %d: got %+v, want ask at depth %d", turn, got, wantDepth)
		}
	}
}
