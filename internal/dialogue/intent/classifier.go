// Package intent maps raw user text to one of a closed set of dialogue
// intents. Classification is pattern-based: every known surface form across
// all supported languages lives in one automaton, and the longest match
// wins, so more specific phrases beat the generic words they contain.
package intent

import (
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/moodtunes/moodtunes-backend/internal/dialogue/lexicon"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

// Classifier turns one turn of text into an intent + confidence. Rule tables
// today; anything smarter can slot in behind the same method.
type Classifier interface {
	Classify(text string) dialogue.Classification
}

// Rule binds one surface form to an intent.
type Rule struct {
	Phrase     string
	Lang       string
	Intent     dialogue.Intent
	Confidence float64
}

// RuleClassifier matches text against the combined bilingual rule table with
// a single Aho-Corasick pass.
type RuleClassifier struct {
	ac       ahocorasick.AhoCorasick
	patterns []string
	rules    [][]Rule
}

var _ Classifier = (*RuleClassifier)(nil)

// NewRuleClassifier compiles the built-in rule table plus any extra rules
// from configuration. Extra phrases are normalized before compilation.
func NewRuleClassifier(extra ...Rule) *RuleClassifier {
	c := &RuleClassifier{}
	index := map[string]int{}

	add := func(r Rule) {
		phrase := lexicon.Normalize(r.Phrase)
		if phrase == "" || r.Confidence <= 0 {
			return
		}
		r.Phrase = phrase
		if idx, ok := index[phrase]; ok {
			c.rules[idx] = append(c.rules[idx], r)
			return
		}
		index[phrase] = len(c.patterns)
		c.patterns = append(c.patterns, phrase)
		c.rules = append(c.rules, []Rule{r})
	}

	for _, r := range defaultRules() {
		add(r)
	}
	for _, r := range extra {
		add(r)
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	c.ac = builder.Build(c.patterns)
	return c
}

// Classify never fails: text that matches nothing resolves to IntentUnknown
// with confidence 0.
func (c *RuleClassifier) Classify(text string) dialogue.Classification {
	norm := lexicon.Normalize(text)
	if norm == "" {
		return dialogue.Classification{Intent: dialogue.IntentUnknown}
	}

	matches := c.ac.FindAll(norm)
	if len(matches) == 0 {
		return dialogue.Classification{Intent: dialogue.IntentUnknown}
	}

	var (
		best     Rule
		bestLen  = -1
		bestPos  = -1
		haveBest bool
	)
	for _, m := range matches {
		span := m.End() - m.Start()
		for _, r := range c.rules[m.Pattern()] {
			switch {
			case !haveBest,
				span > bestLen,
				span == bestLen && r.Confidence > best.Confidence,
				span == bestLen && r.Confidence == best.Confidence && (bestPos < 0 || m.Start() < bestPos):
				best = r
				bestLen = span
				bestPos = m.Start()
				haveBest = true
			}
		}
	}
	return dialogue.Classification{Intent: best.Intent, Confidence: best.Confidence}
}

// PatternCount reports how many distinct surface forms are compiled in.
func (c *RuleClassifier) PatternCount() int { return len(c.patterns) }
