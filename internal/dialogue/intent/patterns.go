package intent

import (
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/lexicon"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

// defaultRules assembles the built-in table: dedicated intent phrases plus
// the shared mood/context lexicons. Mood vocabulary classifies as a mood
// expression; situational vocabulary as a context expression; bare intensity
// words count as a (weaker) mood expression since they answer a mood probe.
func defaultRules() []Rule {
	rules := make([]Rule, 0, 256)

	for _, t := range lexicon.Moods() {
		rules = append(rules, Rule{t.Phrase, t.Lang, dialogue.IntentMoodExpression, t.Confidence})
	}
	for _, t := range lexicon.Levels() {
		rules = append(rules, Rule{t.Phrase, t.Lang, dialogue.IntentMoodExpression, 0.6})
	}
	for _, t := range lexicon.Activities() {
		rules = append(rules, Rule{t.Phrase, t.Lang, dialogue.IntentContextExpression, 0.7})
	}
	for _, t := range lexicon.Socials() {
		rules = append(rules, Rule{t.Phrase, t.Lang, dialogue.IntentContextExpression, 0.7})
	}
	for _, t := range lexicon.Times() {
		rules = append(rules, Rule{t.Phrase, t.Lang, dialogue.IntentContextExpression, 0.7})
	}

	rules = append(rules, phraseRules...)
	return rules
}

const (
	vi = lexicon.LangVietnamese
	en = lexicon.LangEnglish
)

var phraseRules = []Rule{
	// greeting
	{"xin chào", vi, dialogue.IntentGreeting, 0.95},
	{"chào", vi, dialogue.IntentGreeting, 0.9},
	{"chào bạn", vi, dialogue.IntentGreeting, 0.95},
	{"alo", vi, dialogue.IntentGreeting, 0.7},
	{"hello", en, dialogue.IntentGreeting, 0.95},
	{"hi", en, dialogue.IntentGreeting, 0.9},
	{"hey", en, dialogue.IntentGreeting, 0.85},
	{"good morning", en, dialogue.IntentGreeting, 0.9},
	{"good evening", en, dialogue.IntentGreeting, 0.9},

	// confirmation
	{"đúng rồi", vi, dialogue.IntentConfirmation, 0.9},
	{"đúng vậy", vi, dialogue.IntentConfirmation, 0.9},
	{"đúng", vi, dialogue.IntentConfirmation, 0.85},
	{"phải", vi, dialogue.IntentConfirmation, 0.7},
	{"ừ", vi, dialogue.IntentConfirmation, 0.85},
	{"ờ", vi, dialogue.IntentConfirmation, 0.7},
	{"vâng", vi, dialogue.IntentConfirmation, 0.9},
	{"dạ", vi, dialogue.IntentConfirmation, 0.85},
	{"chính xác", vi, dialogue.IntentConfirmation, 0.9},
	{"chuẩn", vi, dialogue.IntentConfirmation, 0.75},
	{"ok", en, dialogue.IntentConfirmation, 0.85},
	{"okay", en, dialogue.IntentConfirmation, 0.85},
	{"yes", en, dialogue.IntentConfirmation, 0.9},
	{"yeah", en, dialogue.IntentConfirmation, 0.85},
	{"yep", en, dialogue.IntentConfirmation, 0.85},
	{"right", en, dialogue.IntentConfirmation, 0.75},
	{"correct", en, dialogue.IntentConfirmation, 0.9},
	{"exactly", en, dialogue.IntentConfirmation, 0.9},
	{"sure", en, dialogue.IntentConfirmation, 0.8},

	// negation
	{"không", vi, dialogue.IntentNegation, 0.7},
	{"không phải", vi, dialogue.IntentNegation, 0.85},
	{"không đúng", vi, dialogue.IntentNegation, 0.85},
	{"sai rồi", vi, dialogue.IntentNegation, 0.85},
	{"no", en, dialogue.IntentNegation, 0.7},
	{"nope", en, dialogue.IntentNegation, 0.85},
	{"not really", en, dialogue.IntentNegation, 0.8},
	{"wrong", en, dialogue.IntentNegation, 0.75},

	// mood correction
	{"ý tôi là", vi, dialogue.IntentMoodCorrection, 0.85},
	{"nhầm rồi", vi, dialogue.IntentMoodCorrection, 0.85},
	{"không phải vậy", vi, dialogue.IntentMoodCorrection, 0.85},
	{"thật ra", vi, dialogue.IntentMoodCorrection, 0.75},
	{"i mean", en, dialogue.IntentMoodCorrection, 0.85},
	{"i meant", en, dialogue.IntentMoodCorrection, 0.85},
	{"actually", en, dialogue.IntentMoodCorrection, 0.7},

	// mood request
	{"gợi ý", vi, dialogue.IntentMoodRequest, 0.8},
	{"gợi ý nhạc", vi, dialogue.IntentMoodRequest, 0.9},
	{"nhạc cho tâm trạng", vi, dialogue.IntentMoodRequest, 0.9},
	{"nghe gì bây giờ", vi, dialogue.IntentMoodRequest, 0.85},
	{"nhạc gì", vi, dialogue.IntentMoodRequest, 0.8},
	{"recommend", en, dialogue.IntentMoodRequest, 0.85},
	{"recommend music", en, dialogue.IntentMoodRequest, 0.9},
	{"suggest", en, dialogue.IntentMoodRequest, 0.8},
	{"what should i listen to", en, dialogue.IntentMoodRequest, 0.9},

	// preference expression
	{"tôi thích", vi, dialogue.IntentPreferenceExpression, 0.8},
	{"thích nghe", vi, dialogue.IntentPreferenceExpression, 0.8},
	{"yêu thích", vi, dialogue.IntentPreferenceExpression, 0.75},
	{"i like", en, dialogue.IntentPreferenceExpression, 0.8},
	{"i love", en, dialogue.IntentPreferenceExpression, 0.8},
	{"i prefer", en, dialogue.IntentPreferenceExpression, 0.85},
	{"my favorite", en, dialogue.IntentPreferenceExpression, 0.8},

	// preference constraint
	{"không muốn nghe", vi, dialogue.IntentPreferenceConstraint, 0.85},
	{"đừng mở", vi, dialogue.IntentPreferenceConstraint, 0.8},
	{"đừng phát", vi, dialogue.IntentPreferenceConstraint, 0.8},
	{"tránh", vi, dialogue.IntentPreferenceConstraint, 0.7},
	{"nothing loud", en, dialogue.IntentPreferenceConstraint, 0.8},
	{"not too loud", en, dialogue.IntentPreferenceConstraint, 0.8},
	{"no lyrics", en, dialogue.IntentPreferenceConstraint, 0.8},
	{"avoid", en, dialogue.IntentPreferenceConstraint, 0.75},

	// skip
	{"bỏ qua", vi, dialogue.IntentSkip, 0.9},
	{"câu khác", vi, dialogue.IntentSkip, 0.8},
	{"skip", en, dialogue.IntentSkip, 0.9},
	{"pass", en, dialogue.IntentSkip, 0.8},

	// help
	{"giúp", vi, dialogue.IntentHelp, 0.85},
	{"trợ giúp", vi, dialogue.IntentHelp, 0.9},
	{"hướng dẫn", vi, dialogue.IntentHelp, 0.8},
	{"help", en, dialogue.IntentHelp, 0.9},
	{"how does this work", en, dialogue.IntentHelp, 0.85},
	{"what can you do", en, dialogue.IntentHelp, 0.85},

	// play request
	{"phát nhạc", vi, dialogue.IntentPlayRequest, 0.9},
	{"mở nhạc", vi, dialogue.IntentPlayRequest, 0.9},
	{"bật nhạc", vi, dialogue.IntentPlayRequest, 0.9},
	{"play", en, dialogue.IntentPlayRequest, 0.8},
	{"play music", en, dialogue.IntentPlayRequest, 0.9},
	{"play something", en, dialogue.IntentPlayRequest, 0.85},
	{"put on some music", en, dialogue.IntentPlayRequest, 0.85},

	// search request
	{"tìm", vi, dialogue.IntentSearchRequest, 0.7},
	{"tìm kiếm", vi, dialogue.IntentSearchRequest, 0.85},
	{"tìm bài", vi, dialogue.IntentSearchRequest, 0.85},
	{"search", en, dialogue.IntentSearchRequest, 0.85},
	{"find", en, dialogue.IntentSearchRequest, 0.7},
	{"look for", en, dialogue.IntentSearchRequest, 0.8},

	// positive feedback
	{"hay quá", vi, dialogue.IntentPositiveFeedback, 0.9},
	{"hay lắm", vi, dialogue.IntentPositiveFeedback, 0.9},
	{"tuyệt vời", vi, dialogue.IntentPositiveFeedback, 0.9},
	{"thích bài này", vi, dialogue.IntentPositiveFeedback, 0.9},
	{"đúng gu", vi, dialogue.IntentPositiveFeedback, 0.85},
	{"great", en, dialogue.IntentPositiveFeedback, 0.8},
	{"awesome", en, dialogue.IntentPositiveFeedback, 0.85},
	{"love it", en, dialogue.IntentPositiveFeedback, 0.85},
	{"love this", en, dialogue.IntentPositiveFeedback, 0.85},
	{"perfect", en, dialogue.IntentPositiveFeedback, 0.8},

	// negative feedback
	{"không hay", vi, dialogue.IntentNegativeFeedback, 0.85},
	{"không hợp", vi, dialogue.IntentNegativeFeedback, 0.85},
	{"dở", vi, dialogue.IntentNegativeFeedback, 0.8},
	{"chán", vi, dialogue.IntentNegativeFeedback, 0.75},
	{"chán quá", vi, dialogue.IntentNegativeFeedback, 0.85},
	{"tệ", vi, dialogue.IntentNegativeFeedback, 0.8},
	{"not good", en, dialogue.IntentNegativeFeedback, 0.8},
	{"do not like", en, dialogue.IntentNegativeFeedback, 0.8},
	{"boring", en, dialogue.IntentNegativeFeedback, 0.8},
	{"terrible", en, dialogue.IntentNegativeFeedback, 0.85},
	{"hate it", en, dialogue.IntentNegativeFeedback, 0.85},
	{"not my vibe", en, dialogue.IntentNegativeFeedback, 0.85},

	// cancel
	{"hủy", vi, dialogue.IntentCancel, 0.9},
	{"dừng lại", vi, dialogue.IntentCancel, 0.9},
	{"kết thúc", vi, dialogue.IntentCancel, 0.85},
	{"tạm biệt", vi, dialogue.IntentCancel, 0.8},
	{"cancel", en, dialogue.IntentCancel, 0.9},
	{"stop", en, dialogue.IntentCancel, 0.8},
	{"quit", en, dialogue.IntentCancel, 0.9},
	{"exit", en, dialogue.IntentCancel, 0.85},
	{"goodbye", en, dialogue.IntentCancel, 0.8},
	{"bye", en, dialogue.IntentCancel, 0.75},
}
