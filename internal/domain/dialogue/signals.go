package dialogue

import "time"

// Mood labels the dominant feeling detected in user text. MoodNone marks a
// turn that carried no detectable mood signal.
type Mood string

const (
	MoodNone      Mood = "none"
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodAngry     Mood = "angry"
	MoodAnxious   Mood = "anxious"
	MoodCalm      Mood = "calm"
	MoodExcited   Mood = "excited"
	MoodTired     Mood = "tired"
	MoodStressed  Mood = "stressed"
	MoodLonely    Mood = "lonely"
	MoodNostalgic Mood = "nostalgic"
	MoodRomantic  Mood = "romantic"
	MoodEnergetic Mood = "energetic"
)

var AllMoods = []Mood{
	MoodHappy, MoodSad, MoodAngry, MoodAnxious, MoodCalm, MoodExcited,
	MoodTired, MoodStressed, MoodLonely, MoodNostalgic, MoodRomantic, MoodEnergetic,
}

func (m Mood) None() bool { return m == "" || m == MoodNone }

// Intensity grades how strongly a mood is felt.
type Intensity string

const (
	IntensityNone   Intensity = "none"
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

func (i Intensity) None() bool { return i == "" || i == IntensityNone }

// TimeOfDay buckets the clock into listening contexts.
type TimeOfDay string

const (
	TimeUnknown   TimeOfDay = "unknown"
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// Activity hints at what the user is doing while listening.
type Activity string

const (
	ActivityUnknown    Activity = "unknown"
	ActivityWorking    Activity = "working"
	ActivityStudying   Activity = "studying"
	ActivityExercising Activity = "exercising"
	ActivityRelaxing   Activity = "relaxing"
	ActivityCommuting  Activity = "commuting"
	ActivityPartying   Activity = "partying"
	ActivitySleeping   Activity = "sleeping"
)

// SocialSetting hints at who the user is with.
type SocialSetting string

const (
	SocialUnknown SocialSetting = "unknown"
	SocialAlone   SocialSetting = "alone"
	SocialPartner SocialSetting = "partner"
	SocialFriends SocialSetting = "friends"
	SocialFamily  SocialSetting = "family"
	SocialCrowd   SocialSetting = "crowd"
)

// EmotionalSignals is what one turn of text reveals about the user's mood.
type EmotionalSignals struct {
	Mood       Mood      `json:"mood"`
	Intensity  Intensity `json:"intensity"`
	Confidence float64   `json:"confidence"`
}

func (s EmotionalSignals) Empty() bool {
	return s.Mood.None() && s.Intensity.None()
}

// ContextSignals is what one turn reveals about the user's situation. They
// feed the clarity score and strategy engine, independent of mood signals.
type ContextSignals struct {
	TimeOfDay TimeOfDay     `json:"time_of_day"`
	Activity  Activity      `json:"activity"`
	Social    SocialSetting `json:"social"`
}

func (s ContextSignals) Empty() bool {
	return (s.TimeOfDay == "" || s.TimeOfDay == TimeUnknown) &&
		(s.Activity == "" || s.Activity == ActivityUnknown) &&
		(s.Social == "" || s.Social == SocialUnknown)
}

// Known counts how many of the three situational dimensions are filled.
func (s ContextSignals) Known() int {
	n := 0
	if s.TimeOfDay != "" && s.TimeOfDay != TimeUnknown {
		n++
	}
	if s.Activity != "" && s.Activity != ActivityUnknown {
		n++
	}
	if s.Social != "" && s.Social != SocialUnknown {
		n++
	}
	return n
}

// Merge fills unknown dimensions from older signals, keeping newer ones.
func (s ContextSignals) Merge(prev ContextSignals) ContextSignals {
	out := s
	if out.TimeOfDay == "" || out.TimeOfDay == TimeUnknown {
		out.TimeOfDay = prev.TimeOfDay
	}
	if out.Activity == "" || out.Activity == ActivityUnknown {
		out.Activity = prev.Activity
	}
	if out.Social == "" || out.Social == SocialUnknown {
		out.Social = prev.Social
	}
	return out
}

// MoodEntry is one turn's contribution to the session mood history. Entries
// with MoodNone record that a turn carried no signal, so consistency math
// sees the gap.
type MoodEntry struct {
	Mood       Mood      `json:"mood"`
	Intensity  Intensity `json:"intensity"`
	Confidence float64   `json:"confidence"`
	At         time.Time `json:"at"`
}

// EmotionalContext is the accumulated emotional picture of one session. The
// session row owns the canonical copy; turn processing checks out a copy,
// folds the new signals in, and commits it back with the turn.
type EmotionalContext struct {
	Valence     float64        `json:"valence"`
	Arousal     float64        `json:"arousal"`
	History     []MoodEntry    `json:"history"`
	Consistency float64        `json:"consistency"`
	Situation   ContextSignals `json:"situation"`
}

func NewEmotionalContext() *EmotionalContext {
	return &EmotionalContext{
		History: []MoodEntry{},
		Situation: ContextSignals{
			TimeOfDay: TimeUnknown,
			Activity:  ActivityUnknown,
			Social:    SocialUnknown,
		},
	}
}

// Dominant returns the most frequent non-none mood across the history and
// the mean confidence of its entries. Frequency ties break toward the mood
// seen most recently. Returns (MoodNone, 0) when no mood was ever detected.
func (ec *EmotionalContext) Dominant() (Mood, float64) {
	if ec == nil || len(ec.History) == 0 {
		return MoodNone, 0
	}
	counts := map[Mood]int{}
	confSums := map[Mood]float64{}
	lastSeen := map[Mood]int{}
	for idx, entry := range ec.History {
		if entry.Mood.None() {
			continue
		}
		counts[entry.Mood]++
		confSums[entry.Mood] += entry.Confidence
		lastSeen[entry.Mood] = idx
	}
	var (
		best      Mood
		bestCount int
		bestLast  = -1
	)
	for mood, count := range counts {
		last := lastSeen[mood]
		if count > bestCount || (count == bestCount && last > bestLast) {
			best, bestCount, bestLast = mood, count, last
		}
	}
	if bestCount == 0 {
		return MoodNone, 0
	}
	return best, confSums[best] / float64(bestCount)
}

// CurrentIntensity returns the most recent non-none intensity on record.
func (ec *EmotionalContext) CurrentIntensity() Intensity {
	if ec == nil {
		return IntensityNone
	}
	for i := len(ec.History) - 1; i >= 0; i-- {
		if !ec.History[i].Intensity.None() {
			return ec.History[i].Intensity
		}
	}
	return IntensityNone
}

// ConsistencyOver computes the share of the last window entries whose mood
// matches the dominant one. MoodNone entries count against consistency.
func (ec *EmotionalContext) ConsistencyOver(window int) float64 {
	if ec == nil || len(ec.History) == 0 || window <= 0 {
		return 0
	}
	dominant, _ := ec.Dominant()
	if dominant.None() {
		return 0
	}
	start := len(ec.History) - window
	if start < 0 {
		start = 0
	}
	recent := ec.History[start:]
	matches := 0
	for _, entry := range recent {
		if entry.Mood == dominant {
			matches++
		}
	}
	return float64(matches) / float64(len(recent))
}
