// Package emotion folds per-turn signals into a session's accumulated
// emotional context. The tracker itself is stateless: it mutates only the
// checked-out context copy the caller passes in, and the session store
// commits that copy back atomically with the turn.
package emotion

import (
	"time"

	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

type Tracker struct {
	cfg *tuning.Config
}

func NewTracker(cfg *tuning.Config) *Tracker {
	return &Tracker{cfg: cfg}
}

// Apply folds one turn into the context: valence/arousal move toward the
// detected mood's chart position by a step proportional to the signal's
// confidence, the mood history gains one entry, the situational signals are
// merged, and consistency is recomputed.
//
// A turn with a bare intensity refines the dominant mood instead of being
// dropped: the user is answering "how strongly?" about the mood already on
// record. A turn with no emotional signal at all leaves valence/arousal
// untouched but still appends a none entry so consistency sees the gap.
func (t *Tracker) Apply(ec *dialogue.EmotionalContext, emo dialogue.EmotionalSignals, situ dialogue.ContextSignals, at time.Time) {
	if ec == nil {
		return
	}

	entry := dialogue.MoodEntry{
		Mood:       dialogue.MoodNone,
		Intensity:  emo.Intensity,
		Confidence: emo.Confidence,
		At:         at,
	}

	switch {
	case !emo.Mood.None():
		entry.Mood = emo.Mood
		t.drift(ec, emo.Mood, emo.Intensity, emo.Confidence)
	case !emo.Intensity.None():
		if dominant, _ := ec.Dominant(); !dominant.None() {
			entry.Mood = dominant
			t.drift(ec, dominant, emo.Intensity, emo.Confidence)
		}
	}

	ec.History = append(ec.History, entry)
	ec.Situation = situ.Merge(ec.Situation)
	ec.Consistency = ec.ConsistencyOver(t.cfg.Emotion.HistoryWindow)
}

// drift moves the accumulated valence/arousal toward the mood's chart
// position scaled by intensity. With step in (0,1] and targets in [-1,1]
// the accumulated values stay in [-1,1] without clamping.
func (t *Tracker) drift(ec *dialogue.EmotionalContext, mood dialogue.Mood, intensity dialogue.Intensity, confidence float64) {
	point, ok := t.cfg.Emotion.MoodChart[mood]
	if !ok {
		return
	}
	factor, ok := t.cfg.Emotion.IntensityFactors[normalizeIntensity(intensity)]
	if !ok {
		factor = 1
	}
	step := t.cfg.Emotion.LearningRate * clamp01(confidence)
	if step <= 0 {
		return
	}
	targetV := point.Valence * factor
	targetA := point.Arousal * factor
	ec.Valence += step * (targetV - ec.Valence)
	ec.Arousal += step * (targetA - ec.Arousal)
}

func normalizeIntensity(i dialogue.Intensity) dialogue.Intensity {
	if i == "" {
		return dialogue.IntensityNone
	}
	return i
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
