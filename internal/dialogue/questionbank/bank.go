// Package questionbank holds the probing-question catalog and the selection
// policy over it. Selection is pure; persistence of the catalog and of usage
// counters belongs to the repository layer.
package questionbank

import (
	"github.com/google/uuid"

	"github.com/moodtunes/moodtunes-backend/internal/dialogue/lexicon"
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

// Select picks one question from candidates, preferring the requested depth
// and questions not yet asked this session. Constraints relax in order
// (other depth before repeats) rather than failing; only an empty candidate
// list returns false. Candidates are expected to share category and
// language.
func Select(candidates []dialogue.ProbingQuestion, depth int, exclude map[uuid.UUID]bool) (dialogue.ProbingQuestion, bool) {
	if len(candidates) == 0 {
		return dialogue.ProbingQuestion{}, false
	}
	passes := []func(q dialogue.ProbingQuestion) bool{
		func(q dialogue.ProbingQuestion) bool { return q.Depth == depth && !exclude[q.ID] },
		func(q dialogue.ProbingQuestion) bool { return !exclude[q.ID] },
		func(q dialogue.ProbingQuestion) bool { return q.Depth == depth },
		func(q dialogue.ProbingQuestion) bool { return true },
	}
	for _, keep := range passes {
		if q, ok := leastUsed(candidates, keep); ok {
			return q, true
		}
	}
	return dialogue.ProbingQuestion{}, false
}

// leastUsed returns the least-asked question among those keep admits, with
// catalog text order breaking ties so selection stays deterministic.
func leastUsed(candidates []dialogue.ProbingQuestion, keep func(dialogue.ProbingQuestion) bool) (dialogue.ProbingQuestion, bool) {
	var best dialogue.ProbingQuestion
	found := false
	for _, q := range candidates {
		if !keep(q) {
			continue
		}
		if !found || q.UsageCount < best.UsageCount || (q.UsageCount == best.UsageCount && q.Text < best.Text) {
			best = q
			found = true
		}
	}
	return best, found
}

// Fallback is the hardcoded question used when the catalog has nothing for
// the category, so a turn can always be answered.
func Fallback(category dialogue.QuestionCategory, language string) string {
	vi := language != lexicon.LangEnglish
	switch category {
	case dialogue.CategoryIntensity:
		if vi {
			return "Cảm giác đó mạnh đến mức nào?"
		}
		return "How strong is that feeling?"
	case dialogue.CategoryContext:
		if vi {
			return "Bạn đang làm gì lúc này?"
		}
		return "What are you up to right now?"
	case dialogue.CategoryConfirm:
		if vi {
			return "Mình hiểu vậy có đúng không?"
		}
		return "Did I get that right?"
	default:
		if vi {
			return "Hôm nay bạn cảm thấy thế nào?"
		}
		return "How are you feeling today?"
	}
}

func entry(category dialogue.QuestionCategory, depth int, language, text string) dialogue.ProbingQuestion {
	return dialogue.ProbingQuestion{Category: category, Depth: depth, Language: language, Text: text}
}

// Defaults is the seed catalog, upserted at startup. Safe to call the upsert
// repeatedly; identity is (category, depth, language, text).
func Defaults() []dialogue.ProbingQuestion {
	const vi = lexicon.LangVietnamese
	const en = lexicon.LangEnglish
	return []dialogue.ProbingQuestion{
		entry(dialogue.CategoryMood, dialogue.DepthSurface, vi, "Hôm nay bạn cảm thấy thế nào?"),
		entry(dialogue.CategoryMood, dialogue.DepthSurface, vi, "Tâm trạng của bạn lúc này ra sao?"),
		entry(dialogue.CategoryMood, dialogue.DepthSurface, vi, "Bạn muốn chia sẻ cảm xúc hôm nay không?"),
		entry(dialogue.CategoryMood, dialogue.DepthSpecific, vi, "Bạn đang vui, buồn, hay căng thẳng?"),
		entry(dialogue.CategoryMood, dialogue.DepthSpecific, vi, "Cảm giác đó giống buồn, lo lắng, hay mệt mỏi hơn?"),
		entry(dialogue.CategoryMood, dialogue.DepthSurface, en, "How are you feeling today?"),
		entry(dialogue.CategoryMood, dialogue.DepthSurface, en, "What's your mood like right now?"),
		entry(dialogue.CategoryMood, dialogue.DepthSpecific, en, "Would you say you're happy, sad, or stressed?"),
		entry(dialogue.CategoryMood, dialogue.DepthSpecific, en, "Is it closer to sadness, anxiety, or tiredness?"),

		entry(dialogue.CategoryIntensity, dialogue.DepthSurface, vi, "Cảm giác đó mạnh đến mức nào?"),
		entry(dialogue.CategoryIntensity, dialogue.DepthSurface, vi, "Tâm trạng đó có rõ rệt không?"),
		entry(dialogue.CategoryIntensity, dialogue.DepthSpecific, vi, "Cảm giác đó nhẹ thôi hay rất mạnh?"),
		entry(dialogue.CategoryIntensity, dialogue.DepthSpecific, vi, "Trên thang từ nhẹ đến rất mạnh, cảm giác đó ở mức nào?"),
		entry(dialogue.CategoryIntensity, dialogue.DepthSurface, en, "How strong is that feeling?"),
		entry(dialogue.CategoryIntensity, dialogue.DepthSurface, en, "Is it a mild feeling or a strong one?"),
		entry(dialogue.CategoryIntensity, dialogue.DepthSpecific, en, "Would you call it slight, noticeable, or intense?"),
		entry(dialogue.CategoryIntensity, dialogue.DepthSpecific, en, "On a scale from mild to overwhelming, where does it sit?"),

		entry(dialogue.CategoryContext, dialogue.DepthSurface, vi, "Bạn đang làm gì lúc này?"),
		entry(dialogue.CategoryContext, dialogue.DepthSurface, vi, "Bạn đang ở một mình hay với ai?"),
		entry(dialogue.CategoryContext, dialogue.DepthSpecific, vi, "Bạn đang làm việc, nghỉ ngơi, hay đang di chuyển?"),
		entry(dialogue.CategoryContext, dialogue.DepthSpecific, vi, "Bạn sẽ nghe nhạc một mình hay cùng bạn bè?"),
		entry(dialogue.CategoryContext, dialogue.DepthSurface, en, "What are you up to right now?"),
		entry(dialogue.CategoryContext, dialogue.DepthSurface, en, "Are you alone or with someone?"),
		entry(dialogue.CategoryContext, dialogue.DepthSpecific, en, "Are you working, relaxing, or on the move?"),
		entry(dialogue.CategoryContext, dialogue.DepthSpecific, en, "Will you be listening alone or with friends?"),

		entry(dialogue.CategoryConfirm, dialogue.DepthSurface, vi, "Mình hiểu vậy có đúng không?"),
		entry(dialogue.CategoryConfirm, dialogue.DepthSurface, vi, "Đúng vậy không bạn?"),
		entry(dialogue.CategoryConfirm, dialogue.DepthSpecific, vi, "Mình chọn nhạc theo tâm trạng đó nhé?"),
		entry(dialogue.CategoryConfirm, dialogue.DepthSurface, en, "Did I get that right?"),
		entry(dialogue.CategoryConfirm, dialogue.DepthSurface, en, "Is that about right?"),
		entry(dialogue.CategoryConfirm, dialogue.DepthSpecific, en, "So I'll pick music to match that feeling, okay?"),
	}
}
