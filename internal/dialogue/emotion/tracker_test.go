package emotion

import (
	"math"
	"testing"
	"time"

	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func at(sec int) time.Time {
	return time.Date(2025, 3, 10, 12, 0, sec, 0, time.UTC)
}

func TestApplyMoodSignalMovesValenceArousal(t *testing.T) {
	cfg := tuning.Default()
	tracker := NewTracker(cfg)
	ec := dialogue.NewEmotionalContext()

	tracker.Apply(ec, dialogue.EmotionalSignals{
		Mood:       dialogue.MoodSad,
		Intensity:  dialogue.IntensityNone,
		Confidence: 0.8,
	}, dialogue.ContextSignals{}, at(0))

	// step = 0.6 * 0.8, target = chart(sad) x factor(none)
	step := 0.6 * 0.8
	point := cfg.Emotion.MoodChart[dialogue.MoodSad]
	factor := cfg.Emotion.IntensityFactors[dialogue.IntensityNone]
	wantV := step * (point.Valence * factor)
	wantA := step * (point.Arousal * factor)
	if !almostEqual(ec.Valence, wantV) {
		t.Errorf("valence = %v, want %v", ec.Valence, wantV)
	}
	if !almostEqual(ec.Arousal, wantA) {
		t.Errorf("arousal = %v, want %v", ec.Arousal, wantA)
	}
	if len(ec.History) != 1 || ec.History[0].Mood != dialogue.MoodSad {
		t.Fatalf("history = %+v, want one sad entry", ec.History)
	}
	if !almostEqual(ec.Consistency, 1.0) {
		t.Errorf("consistency = %v, want 1", ec.Consistency)
	}
}

func TestApplyLowConfidencePerturbsLess(t *testing.T) {
	tracker := NewTracker(tuning.Default())

	strong := dialogue.NewEmotionalContext()
	weak := dialogue.NewEmotionalContext()
	tracker.Apply(strong, dialogue.EmotionalSignals{Mood: dialogue.MoodHappy, Confidence: 0.9}, dialogue.ContextSignals{}, at(0))
	tracker.Apply(weak, dialogue.EmotionalSignals{Mood: dialogue.MoodHappy, Confidence: 0.2}, dialogue.ContextSignals{}, at(0))

	if math.Abs(weak.Valence) >= math.Abs(strong.Valence) {
		t.Errorf("low-confidence turn moved valence more: weak %v, strong %v", weak.Valence, strong.Valence)
	}
}

func TestApplyNoSignalLeavesValenceButRecordsGap(t *testing.T) {
	tracker := NewTracker(tuning.Default())
	ec := dialogue.NewEmotionalContext()

	tracker.Apply(ec, dialogue.EmotionalSignals{Mood: dialogue.MoodSad, Confidence: 0.8}, dialogue.ContextSignals{}, at(0))
	v, a := ec.Valence, ec.Arousal

	tracker.Apply(ec, dialogue.EmotionalSignals{}, dialogue.ContextSignals{}, at(1))

	if ec.Valence != v || ec.Arousal != a {
		t.Errorf("no-signal turn moved valence/arousal: (%v,%v) -> (%v,%v)", v, a, ec.Valence, ec.Arousal)
	}
	if len(ec.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(ec.History))
	}
	if !ec.History[1].Mood.None() {
		t.Errorf("gap entry mood = %q, want none", ec.History[1].Mood)
	}
	if !almostEqual(ec.Consistency, 0.5) {
		t.Errorf("consistency = %v, want 0.5 after [sad, none]", ec.Consistency)
	}
}

func TestApplyIntensityOnlyRefinesDominantMood(t *testing.T) {
	cfg := tuning.Default()
	tracker := NewTracker(cfg)
	ec := dialogue.NewEmotionalContext()

	tracker.Apply(ec, dialogue.EmotionalSignals{Mood: dialogue.MoodSad, Confidence: 0.8}, dialogue.ContextSignals{}, at(0))
	vBefore := ec.Valence

	tracker.Apply(ec, dialogue.EmotionalSignals{Intensity: dialogue.IntensityHigh, Confidence: 0.9}, dialogue.ContextSignals{}, at(1))

	if ec.Valence == vBefore {
		t.Errorf("intensity refinement should move valence toward the full-strength target")
	}
	if ec.History[1].Mood != dialogue.MoodSad {
		t.Errorf("refinement entry mood = %q, want dominant sad", ec.History[1].Mood)
	}
	if ec.History[1].Intensity != dialogue.IntensityHigh {
		t.Errorf("refinement entry intensity = %q, want high", ec.History[1].Intensity)
	}
	if got := ec.CurrentIntensity(); got != dialogue.IntensityHigh {
		t.Errorf("current intensity = %q, want high", got)
	}
	if !almostEqual(ec.Consistency, 1.0) {
		t.Errorf("consistency = %v, want 1 after [sad, sad]", ec.Consistency)
	}
}

func TestApplyIntensityOnlyWithoutDominantIsAGap(t *testing.T) {
	tracker := NewTracker(tuning.Default())
	ec := dialogue.NewEmotionalContext()

	tracker.Apply(ec, dialogue.EmotionalSignals{Intensity: dialogue.IntensityHigh, Confidence: 0.9}, dialogue.ContextSignals{}, at(0))

	if ec.Valence != 0 || ec.Arousal != 0 {
		t.Errorf("no dominant mood: valence/arousal should stay zero, got (%v,%v)", ec.Valence, ec.Arousal)
	}
	if !ec.History[0].Mood.None() {
		t.Errorf("entry mood = %q, want none", ec.History[0].Mood)
	}
	if ec.History[0].Intensity != dialogue.IntensityHigh {
		t.Errorf("entry intensity should still record %q", dialogue.IntensityHigh)
	}
}

func TestApplyMergesSituationKeepingNewest(t *testing.T) {
	tracker := NewTracker(tuning.Default())
	ec := dialogue.NewEmotionalContext()

	tracker.Apply(ec, dialogue.EmotionalSignals{}, dialogue.ContextSignals{
		TimeOfDay: dialogue.TimeEvening,
		Activity:  dialogue.ActivityWorking,
		Social:    dialogue.SocialUnknown,
	}, at(0))
	tracker.Apply(ec, dialogue.EmotionalSignals{}, dialogue.ContextSignals{
		TimeOfDay: dialogue.TimeUnknown,
		Activity:  dialogue.ActivityUnknown,
		Social:    dialogue.SocialAlone,
	}, at(1))

	if ec.Situation.TimeOfDay != dialogue.TimeEvening {
		t.Errorf("time = %q, want evening carried over", ec.Situation.TimeOfDay)
	}
	if ec.Situation.Activity != dialogue.ActivityWorking {
		t.Errorf("activity = %q, want working carried over", ec.Situation.Activity)
	}
	if ec.Situation.Social != dialogue.SocialAlone {
		t.Errorf("social = %q, want alone from newer turn", ec.Situation.Social)
	}
}

func TestConsistencyWindowSlides(t *testing.T) {
	cfg := tuning.Default()
	cfg.Emotion.HistoryWindow = 3
	tracker := NewTracker(cfg)
	ec := dialogue.NewEmotionalContext()

	moods := []dialogue.Mood{
		dialogue.MoodHappy, dialogue.MoodHappy, dialogue.MoodHappy,
		dialogue.MoodSad, dialogue.MoodSad,
	}
	for i, m := range moods {
		tracker.Apply(ec, dialogue.EmotionalSignals{Mood: m, Confidence: 0.8}, dialogue.ContextSignals{}, at(i))
	}

	// Dominant is happy (3 vs 2); last 3 entries are [happy, sad, sad].
	if !almostEqual(ec.Consistency, 1.0/3.0) {
		t.Errorf("consistency = %v, want 1/3", ec.Consistency)
	}
}

func TestDominantTieBreaksToMostRecent(t *testing.T) {
	tracker := NewTracker(tuning.Default())
	ec := dialogue.NewEmotionalContext()

	tracker.Apply(ec, dialogue.EmotionalSignals{Mood: dialogue.MoodHappy, Confidence: 0.7}, dialogue.ContextSignals{}, at(0))
	tracker.Apply(ec, dialogue.EmotionalSignals{Mood: dialogue.MoodSad, Confidence: 0.9}, dialogue.ContextSignals{}, at(1))

	mood, conf := ec.Dominant()
	if mood != dialogue.MoodSad {
		t.Errorf("dominant = %q, want sad (tie to most recent)", mood)
	}
	if !almostEqual(conf, 0.9) {
		t.Errorf("dominant confidence = %v, want 0.9", conf)
	}
}

func TestValenceStaysBounded(t *testing.T) {
	tracker := NewTracker(tuning.Default())
	ec := dialogue.NewEmotionalContext()

	for i := 0; i < 50; i++ {
		tracker.Apply(ec, dialogue.EmotionalSignals{
			Mood:       dialogue.MoodExcited,
			Intensity:  dialogue.IntensityHigh,
			Confidence: 1.0,
		}, dialogue.ContextSignals{}, at(i))
	}
	if ec.Valence < -1 || ec.Valence > 1 || ec.Arousal < -1 || ec.Arousal > 1 {
		t.Fatalf("valence/arousal escaped [-1,1]: (%v, %v)", ec.Valence, ec.Arousal)
	}
}
