// Package signal extracts per-turn emotional and situational signals from
// user text. Extraction is stateless and safe to run concurrently with
// classification; accumulation across turns happens in the emotion package.
package signal

import (
	"time"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/moodtunes/moodtunes-backend/internal/dialogue/lexicon"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

type termKind int

const (
	kindMood termKind = iota
	kindLevel
	kindAmplifier
	kindActivity
	kindSocial
	kindTime
)

type termMeta struct {
	kind       termKind
	confidence float64
	mood       dialogue.Mood
	level      dialogue.Intensity
	activity   dialogue.Activity
	social     dialogue.SocialSetting
	bucket     dialogue.TimeOfDay
}

// Extractor runs one automaton over the combined signal lexicons.
type Extractor struct {
	ac       ahocorasick.AhoCorasick
	patterns []string
	metas    [][]termMeta
}

func NewExtractor() *Extractor {
	e := &Extractor{}
	index := map[string]int{}

	add := func(phrase string, meta termMeta) {
		phrase = lexicon.Normalize(phrase)
		if phrase == "" {
			return
		}
		if idx, ok := index[phrase]; ok {
			e.metas[idx] = append(e.metas[idx], meta)
			return
		}
		index[phrase] = len(e.patterns)
		e.patterns = append(e.patterns, phrase)
		e.metas = append(e.metas, []termMeta{meta})
	}

	for _, t := range lexicon.Moods() {
		add(t.Phrase, termMeta{kind: kindMood, confidence: t.Confidence, mood: t.Mood})
	}
	for _, t := range lexicon.Levels() {
		add(t.Phrase, termMeta{kind: kindLevel, confidence: t.Confidence, level: t.Level})
	}
	for _, t := range lexicon.Amplifiers() {
		add(t.Phrase, termMeta{kind: kindAmplifier, confidence: t.Confidence})
	}
	for _, t := range lexicon.Activities() {
		add(t.Phrase, termMeta{kind: kindActivity, confidence: t.Confidence, activity: t.Activity})
	}
	for _, t := range lexicon.Socials() {
		add(t.Phrase, termMeta{kind: kindSocial, confidence: t.Confidence, social: t.Social})
	}
	for _, t := range lexicon.Times() {
		add(t.Phrase, termMeta{kind: kindTime, confidence: t.Confidence, bucket: t.Bucket})
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	e.ac = builder.Build(e.patterns)
	return e
}

type scanHit struct {
	meta termMeta
	span int
}

func (e *Extractor) scan(text string) []scanHit {
	norm := lexicon.Normalize(text)
	if norm == "" {
		return nil
	}
	matches := e.ac.FindAll(norm)
	hits := make([]scanHit, 0, len(matches))
	for _, m := range matches {
		span := m.End() - m.Start()
		for _, meta := range e.metas[m.Pattern()] {
			hits = append(hits, scanHit{meta: meta, span: span})
		}
	}
	return hits
}

// Emotional reads the mood and intensity signals out of one turn of text.
//
// The mood is the longest mood match (ties to the higher-confidence term);
// when several distinct moods appear the confidence takes an ambiguity
// discount. An amplifier raises a matched level's confidence, and an
// amplifier next to a bare mood implies high intensity at reduced
// confidence. The reported confidence is the strongest signal's.
func (e *Extractor) Emotional(text string) dialogue.EmotionalSignals {
	hits := e.scan(text)
	out := dialogue.EmotionalSignals{Mood: dialogue.MoodNone, Intensity: dialogue.IntensityNone}
	if len(hits) == 0 {
		return out
	}

	var (
		moodConf   float64
		moodSpan   int
		levelConf  float64
		levelSpan  int
		ampConf    float64
		haveAmp    bool
		moodsFound = map[dialogue.Mood]struct{}{}
	)
	for _, h := range hits {
		switch h.meta.kind {
		case kindMood:
			moodsFound[h.meta.mood] = struct{}{}
			if h.span > moodSpan || (h.span == moodSpan && h.meta.confidence > moodConf) {
				out.Mood = h.meta.mood
				moodConf = h.meta.confidence
				moodSpan = h.span
			}
		case kindLevel:
			if h.span > levelSpan || (h.span == levelSpan && h.meta.confidence > levelConf) {
				out.Intensity = h.meta.level
				levelConf = h.meta.confidence
				levelSpan = h.span
			}
		case kindAmplifier:
			haveAmp = true
			if h.meta.confidence > ampConf {
				ampConf = h.meta.confidence
			}
		}
	}

	if len(moodsFound) > 1 {
		moodConf *= 0.9
	}
	if haveAmp {
		switch {
		case !out.Intensity.None():
			levelConf += 0.15
			if levelConf > 0.95 {
				levelConf = 0.95
			}
		case !out.Mood.None():
			out.Intensity = dialogue.IntensityHigh
			levelConf = 0.6
		}
	}

	out.Confidence = moodConf
	if levelConf > out.Confidence {
		out.Confidence = levelConf
	}
	return out
}

// Situational reads time-of-day, activity and social setting out of one
// turn. An explicit time mention in the text wins over the clock.
func (e *Extractor) Situational(text string, now time.Time) dialogue.ContextSignals {
	out := dialogue.ContextSignals{
		TimeOfDay: ClockBucket(now),
		Activity:  dialogue.ActivityUnknown,
		Social:    dialogue.SocialUnknown,
	}

	var actSpan, socSpan, timeSpan int
	for _, h := range e.scan(text) {
		switch h.meta.kind {
		case kindActivity:
			if h.span > actSpan {
				out.Activity = h.meta.activity
				actSpan = h.span
			}
		case kindSocial:
			if h.span > socSpan {
				out.Social = h.meta.social
				socSpan = h.span
			}
		case kindTime:
			if h.span > timeSpan {
				out.TimeOfDay = h.meta.bucket
				timeSpan = h.span
			}
		}
	}
	return out
}

// ClockBucket maps a wall-clock instant to its listening-time bucket:
// morning 05-11, afternoon 11-17, evening 17-22, night otherwise.
func ClockBucket(now time.Time) dialogue.TimeOfDay {
	if now.IsZero() {
		return dialogue.TimeUnknown
	}
	switch h := now.Hour(); {
	case h >= 5 && h < 11:
		return dialogue.TimeMorning
	case h >= 11 && h < 17:
		return dialogue.TimeAfternoon
	case h >= 17 && h < 22:
		return dialogue.TimeEvening
	default:
		return dialogue.TimeNight
	}
}
