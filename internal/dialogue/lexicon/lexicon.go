// Package lexicon holds the bilingual keyword tables the dialogue core
// matches user text against. Tables are plain data; matching lives in the
// intent and signal packages.
package lexicon

import (
	"strings"
	"unicode"

	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

const (
	LangVietnamese = "vi"
	LangEnglish    = "en"
)

// Term is one surface form with its detection confidence.
type Term struct {
	Phrase     string
	Lang       string
	Confidence float64
}

// MoodTerm maps a surface form to a mood label.
type MoodTerm struct {
	Term
	Mood dialogue.Mood
}

// LevelTerm maps a surface form to an intensity level.
type LevelTerm struct {
	Term
	Level dialogue.Intensity
}

// ActivityTerm maps a surface form to an activity hint.
type ActivityTerm struct {
	Term
	Activity dialogue.Activity
}

// SocialTerm maps a surface form to a social-setting hint.
type SocialTerm struct {
	Term
	Social dialogue.SocialSetting
}

// TimeTerm maps an explicit time-of-day mention to its bucket.
type TimeTerm struct {
	Term
	Bucket dialogue.TimeOfDay
}

// Moods returns the combined bilingual mood table.
func Moods() []MoodTerm {
	out := make([]MoodTerm, 0, len(moodsVI)+len(moodsEN))
	out = append(out, moodsVI...)
	out = append(out, moodsEN...)
	return out
}

// Levels returns the combined direct intensity table.
func Levels() []LevelTerm {
	out := make([]LevelTerm, 0, len(levelsVI)+len(levelsEN))
	out = append(out, levelsVI...)
	out = append(out, levelsEN...)
	return out
}

// Amplifiers returns intensity boosters ("rất", "extremely"). An amplifier
// next to a level word raises its confidence; one next to a bare mood word
// implies high intensity at reduced confidence.
func Amplifiers() []Term {
	out := make([]Term, 0, len(amplifiersVI)+len(amplifiersEN))
	out = append(out, amplifiersVI...)
	out = append(out, amplifiersEN...)
	return out
}

// Activities returns the combined activity table.
func Activities() []ActivityTerm {
	out := make([]ActivityTerm, 0, len(activitiesVI)+len(activitiesEN))
	out = append(out, activitiesVI...)
	out = append(out, activitiesEN...)
	return out
}

// Socials returns the combined social-setting table.
func Socials() []SocialTerm {
	out := make([]SocialTerm, 0, len(socialsVI)+len(socialsEN))
	out = append(out, socialsVI...)
	out = append(out, socialsEN...)
	return out
}

// Times returns the combined explicit time-of-day table.
func Times() []TimeTerm {
	out := make([]TimeTerm, 0, len(timesVI)+len(timesEN))
	out = append(out, timesVI...)
	out = append(out, timesEN...)
	return out
}

// Normalize lowercases text and folds punctuation to single spaces while
// preserving diacritics, so "Buồn quá!!!" and "buồn quá" match the same
// patterns.
func Normalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	lastSpace := true
	for _, ch := range s {
		c := unicode.ToLower(ch)
		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			out.WriteRune(c)
			lastSpace = false
		default:
			if !lastSpace {
				out.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(out.String())
}

// vietnameseMarkers are letters that only occur in Vietnamese orthography.
var vietnameseMarkers = map[rune]struct{}{}

func init() {
	for _, r := range "ăâđêôơưàáảãạằắẳẵặầấẩẫậèéẻẽẹềếểễệìíỉĩịòóỏõọồốổỗộờớởỡợùúủũụừứửữựỳýỷỹỵ" {
		vietnameseMarkers[r] = struct{}{}
	}
}

// DetectLanguage guesses "vi" when the text carries Vietnamese letters and
// falls back to "en" otherwise.
func DetectLanguage(s string) string {
	for _, r := range strings.ToLower(s) {
		if _, ok := vietnameseMarkers[r]; ok {
			return LangVietnamese
		}
	}
	return LangEnglish
}

var moodLabelsVI = map[dialogue.Mood]string{
	dialogue.MoodHappy:     "vui",
	dialogue.MoodSad:       "buồn",
	dialogue.MoodAngry:     "bực bội",
	dialogue.MoodAnxious:   "lo lắng",
	dialogue.MoodCalm:      "bình yên",
	dialogue.MoodExcited:   "hào hứng",
	dialogue.MoodTired:     "mệt mỏi",
	dialogue.MoodStressed:  "căng thẳng",
	dialogue.MoodLonely:    "cô đơn",
	dialogue.MoodNostalgic: "hoài niệm",
	dialogue.MoodRomantic:  "lãng mạn",
	dialogue.MoodEnergetic: "tràn đầy năng lượng",
}

var moodLabelsEN = map[dialogue.Mood]string{
	dialogue.MoodHappy:     "happy",
	dialogue.MoodSad:       "sad",
	dialogue.MoodAngry:     "angry",
	dialogue.MoodAnxious:   "anxious",
	dialogue.MoodCalm:      "calm",
	dialogue.MoodExcited:   "excited",
	dialogue.MoodTired:     "tired",
	dialogue.MoodStressed:  "stressed",
	dialogue.MoodLonely:    "lonely",
	dialogue.MoodNostalgic: "nostalgic",
	dialogue.MoodRomantic:  "romantic",
	dialogue.MoodEnergetic: "energetic",
}

// MoodLabel renders a mood for bot-facing text in the given language.
func MoodLabel(mood dialogue.Mood, lang string) string {
	labels := moodLabelsEN
	if lang == LangVietnamese {
		labels = moodLabelsVI
	}
	if label, ok := labels[mood]; ok {
		return label
	}
	return string(mood)
}
