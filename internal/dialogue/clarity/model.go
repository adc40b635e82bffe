// Package clarity fuses a session's accumulated emotional context into one
// [0,1] understanding score with a per-component breakdown, so the strategy
// engine can both gate on the total and target the weakest dimension.
package clarity

import (
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

type Model struct {
	cfg *tuning.Config
}

func NewModel(cfg *tuning.Config) *Model {
	return &Model{cfg: cfg}
}

// Score computes the weighted component fusion for the current context.
//
// mood: mean confidence of the dominant mood's entries, 0 when none.
// intensity: the configured score of the latest known intensity.
// confidence: mean detection confidence over recent non-gap entries.
// context: share of known situational dimensions.
// consistency: the tracker's stability measure.
func (m *Model) Score(ec *dialogue.EmotionalContext) dialogue.ClarityResult {
	comp := dialogue.ClarityComponents{}

	if ec != nil {
		if dominant, conf := ec.Dominant(); !dominant.None() {
			comp.Mood = clamp01(conf)
		}
		comp.Intensity = clamp01(m.cfg.Clarity.IntensityScores[normalizeIntensity(ec.CurrentIntensity())])
		comp.Confidence = clamp01(m.recentConfidence(ec))
		comp.Context = float64(ec.Situation.Known()) / 3.0
		comp.Consistency = clamp01(ec.Consistency)
	}

	w := m.cfg.Clarity.Weights
	score := w.Mood*comp.Mood +
		w.Intensity*comp.Intensity +
		w.Confidence*comp.Confidence +
		w.Context*comp.Context +
		w.Consistency*comp.Consistency
	score = clamp01(score)

	return dialogue.ClarityResult{
		Score:      score,
		Band:       m.cfg.Band(score),
		Components: comp,
		Weights:    w,
	}
}

// recentConfidence averages detection confidence over the last window of
// entries that actually carried a signal.
func (m *Model) recentConfidence(ec *dialogue.EmotionalContext) float64 {
	window := m.cfg.Emotion.HistoryWindow
	start := len(ec.History) - window
	if start < 0 {
		start = 0
	}
	sum, n := 0.0, 0
	for _, entry := range ec.History[start:] {
		if entry.Mood.None() && entry.Intensity.None() {
			continue
		}
		sum += entry.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
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
