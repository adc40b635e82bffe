package tuning

import (
	"fmt"
	"math"
	"time"

	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

// Config carries every calibrated knob of the dialogue core. Values are
// injected at construction time so weights and thresholds can be retuned
// without code changes.
type Config struct {
	// MaxTurnsPerSession caps probing; beyond it the dialogue degrades
	// gracefully to a recommendation instead of asking again.
	MaxTurnsPerSession int `yaml:"max_turns_per_session"`

	SessionTimeout Duration `yaml:"session_timeout"`
	IdempotencyTTL Duration `yaml:"idempotency_ttl"`

	// PurgeRetention is how long ended/aborted/timed-out sessions stay
	// queryable before the sweeper removes them.
	PurgeRetention Duration `yaml:"purge_retention"`
	SweepInterval  Duration `yaml:"sweep_interval"`

	Emotion  EmotionConfig  `yaml:"emotion"`
	Clarity  ClarityConfig  `yaml:"clarity"`
	Strategy StrategyConfig `yaml:"strategy"`

	// Messages holds the fixed bot phrasing, keyed by language code.
	Messages map[string]MessageSet `yaml:"messages"`
}

// MessageSet is the bot's canned phrasing for one language. ConfirmMood
// takes the detected mood label through a single %s verb.
type MessageSet struct {
	Greeting    string `yaml:"greeting"`
	ConfirmMood string `yaml:"confirm_mood"`
	Recommend   string `yaml:"recommend"`
	Farewell    string `yaml:"farewell"`
	Aborted     string `yaml:"aborted"`
	Reprobe     string `yaml:"reprobe"`
}

// EmotionConfig tunes how per-turn signals fold into the session context.
type EmotionConfig struct {
	// LearningRate scales how far one turn moves the accumulated
	// valence/arousal; the effective step is rate x signal confidence.
	LearningRate float64 `yaml:"learning_rate"`

	// HistoryWindow is the number of recent mood entries consistency is
	// computed over.
	HistoryWindow int `yaml:"history_window"`

	MoodChart        map[dialogue.Mood]MoodPoint      `yaml:"mood_chart"`
	IntensityFactors map[dialogue.Intensity]float64   `yaml:"intensity_factors"`
}

// MoodPoint places a mood on the valence/arousal plane.
type MoodPoint struct {
	Valence float64 `yaml:"valence"`
	Arousal float64 `yaml:"arousal"`
}

// ClarityConfig tunes the fused understanding score.
type ClarityConfig struct {
	Weights    dialogue.ClarityWeights `yaml:"weights"`
	Thresholds Thresholds              `yaml:"thresholds"`

	// IntensityScores maps a known intensity label to its component score.
	IntensityScores map[dialogue.Intensity]float64 `yaml:"intensity_scores"`
}

// Thresholds calibrate the clarity bands.
type Thresholds struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
	Low    float64 `yaml:"low"`
}

// StrategyConfig tunes probing policy and transition gates.
type StrategyConfig struct {
	// MinMoodConfidence is the confidence a detected mood needs before the
	// dialogue stops probing for it.
	MinMoodConfidence float64 `yaml:"min_mood_confidence"`

	// ContextClearFloor is the context component score at which the
	// situation counts as sufficiently clear.
	ContextClearFloor float64 `yaml:"context_clear_floor"`

	// DepthEscalationRatio switches questions from surface to specific once
	// remaining/total turn budget drops below it.
	DepthEscalationRatio float64 `yaml:"depth_escalation_ratio"`
}

// Default returns the calibrated baseline configuration.
func Default() *Config {
	return &Config{
		MaxTurnsPerSession: 10,
		SessionTimeout:     Duration(30 * time.Minute),
		IdempotencyTTL:     Duration(24 * time.Hour),
		PurgeRetention:     Duration(72 * time.Hour),
		SweepInterval:      Duration(time.Minute),
		Emotion: EmotionConfig{
			LearningRate:  0.6,
			HistoryWindow: 5,
			MoodChart: map[dialogue.Mood]MoodPoint{
				dialogue.MoodHappy:     {Valence: 0.8, Arousal: 0.5},
				dialogue.MoodSad:       {Valence: -0.7, Arousal: -0.4},
				dialogue.MoodAngry:     {Valence: -0.6, Arousal: 0.7},
				dialogue.MoodAnxious:   {Valence: -0.5, Arousal: 0.6},
				dialogue.MoodCalm:      {Valence: 0.4, Arousal: -0.6},
				dialogue.MoodExcited:   {Valence: 0.7, Arousal: 0.8},
				dialogue.MoodTired:     {Valence: -0.2, Arousal: -0.7},
				dialogue.MoodStressed:  {Valence: -0.6, Arousal: 0.5},
				dialogue.MoodLonely:    {Valence: -0.6, Arousal: -0.3},
				dialogue.MoodNostalgic: {Valence: 0.1, Arousal: -0.3},
				dialogue.MoodRomantic:  {Valence: 0.6, Arousal: 0.1},
				dialogue.MoodEnergetic: {Valence: 0.6, Arousal: 0.8},
			},
			IntensityFactors: map[dialogue.Intensity]float64{
				dialogue.IntensityNone:   0.75,
				dialogue.IntensityLow:    0.5,
				dialogue.IntensityMedium: 0.75,
				dialogue.IntensityHigh:   1.0,
			},
		},
		Clarity: ClarityConfig{
			Weights: dialogue.ClarityWeights{
				Mood:        0.30,
				Intensity:   0.20,
				Confidence:  0.20,
				Context:     0.15,
				Consistency: 0.15,
			},
			Thresholds: Thresholds{High: 0.8, Medium: 0.5, Low: 0.25},
			IntensityScores: map[dialogue.Intensity]float64{
				dialogue.IntensityNone:   0,
				dialogue.IntensityLow:    0.45,
				dialogue.IntensityMedium: 0.75,
				dialogue.IntensityHigh:   1.0,
			},
		},
		Strategy: StrategyConfig{
			MinMoodConfidence:    0.5,
			ContextClearFloor:    0.5,
			DepthEscalationRatio: 0.5,
		},
		Messages: map[string]MessageSet{
			"vi": {
				Greeting:    "Chào bạn! Hôm nay bạn cảm thấy thế nào?",
				ConfirmMood: "Có vẻ bạn đang cảm thấy %s, đúng không?",
				Recommend:   "Mình hiểu tâm trạng của bạn rồi. Để mình chọn vài bài nhạc hợp với bạn nhé.",
				Farewell:    "Cảm ơn bạn đã chia sẻ. Hẹn gặp lại nhé!",
				Aborted:     "Không sao. Khi nào muốn nghe nhạc thì quay lại nhé!",
				Reprobe:     "Mình hiểu rồi. Vậy thật ra bạn đang cảm thấy thế nào?",
			},
			"en": {
				Greeting:    "Hi! How are you feeling today?",
				ConfirmMood: "Sounds like you're feeling %s, is that right?",
				Recommend:   "Got it. Let me line up some tracks that fit your mood.",
				Farewell:    "Thanks for sharing. See you next time!",
				Aborted:     "No problem. Come back whenever you want some music!",
				Reprobe:     "I see. So how are you actually feeling?",
			},
		},
	}
}

// MessagesFor returns the message set for a language, falling back to
// Vietnamese, then to any configured set.
func (c *Config) MessagesFor(language string) MessageSet {
	if ms, ok := c.Messages[language]; ok {
		return ms
	}
	if ms, ok := c.Messages["vi"]; ok {
		return ms
	}
	for _, ms := range c.Messages {
		return ms
	}
	return MessageSet{}
}

// Validate rejects configurations the dialogue core cannot run on.
func (c *Config) Validate() error {
	if c.MaxTurnsPerSession < 1 {
		return fmt.Errorf("max_turns_per_session must be >= 1, got %d", c.MaxTurnsPerSession)
	}
	if c.SessionTimeout.Std() <= 0 {
		return fmt.Errorf("session_timeout must be positive")
	}
	if c.IdempotencyTTL.Std() <= 0 {
		return fmt.Errorf("idempotency_ttl must be positive")
	}
	if c.Emotion.LearningRate <= 0 || c.Emotion.LearningRate > 1 {
		return fmt.Errorf("emotion.learning_rate must be in (0,1], got %v", c.Emotion.LearningRate)
	}
	if c.Emotion.HistoryWindow < 1 {
		return fmt.Errorf("emotion.history_window must be >= 1, got %d", c.Emotion.HistoryWindow)
	}
	if sum := c.Clarity.Weights.Sum(); math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("clarity.weights must sum to 1, got %v", sum)
	}
	w := c.Clarity.Weights
	for name, v := range map[string]float64{
		"mood": w.Mood, "intensity": w.Intensity, "confidence": w.Confidence,
		"context": w.Context, "consistency": w.Consistency,
	} {
		if v < 0 {
			return fmt.Errorf("clarity.weights.%s must be >= 0, got %v", name, v)
		}
	}
	t := c.Clarity.Thresholds
	if !(0 <= t.Low && t.Low < t.Medium && t.Medium < t.High && t.High <= 1) {
		return fmt.Errorf("clarity.thresholds must satisfy 0 <= low < medium < high <= 1, got %+v", t)
	}
	if c.Strategy.MinMoodConfidence < 0 || c.Strategy.MinMoodConfidence > 1 {
		return fmt.Errorf("strategy.min_mood_confidence must be in [0,1], got %v", c.Strategy.MinMoodConfidence)
	}
	if c.Strategy.ContextClearFloor < 0 || c.Strategy.ContextClearFloor > 1 {
		return fmt.Errorf("strategy.context_clear_floor must be in [0,1], got %v", c.Strategy.ContextClearFloor)
	}
	if c.Strategy.DepthEscalationRatio < 0 || c.Strategy.DepthEscalationRatio > 1 {
		return fmt.Errorf("strategy.depth_escalation_ratio must be in [0,1], got %v", c.Strategy.DepthEscalationRatio)
	}
	return nil
}

// Band classifies a clarity score against the configured thresholds.
func (c *Config) Band(score float64) dialogue.ClarityBand {
	switch {
	case score >= c.Clarity.Thresholds.High:
		return dialogue.ClarityHigh
	case score >= c.Clarity.Thresholds.Medium:
		return dialogue.ClarityMedium
	default:
		return dialogue.ClarityLow
	}
}
