package dialogue

// Intent is the discrete interpretation of one user turn. The set is closed:
// unclassifiable text resolves to IntentUnknown with confidence 0, never an
// error.
type Intent string

const (
	IntentMoodExpression       Intent = "mood_expression"
	IntentMoodRequest          Intent = "mood_request"
	IntentMoodCorrection       Intent = "mood_correction"
	IntentPreferenceExpression Intent = "preference_expression"
	IntentPreferenceConstraint Intent = "preference_constraint"
	IntentGreeting             Intent = "greeting"
	IntentConfirmation         Intent = "confirmation"
	IntentNegation             Intent = "negation"
	IntentSkip                 Intent = "skip"
	IntentHelp                 Intent = "help"
	IntentPlayRequest          Intent = "play_request"
	IntentSearchRequest        Intent = "search_request"
	IntentPositiveFeedback     Intent = "positive_feedback"
	IntentNegativeFeedback     Intent = "negative_feedback"
	IntentContextExpression    Intent = "context_expression"
	IntentCancel               Intent = "cancel"
	IntentUnknown              Intent = "unknown"
)

var AllIntents = []Intent{
	IntentMoodExpression,
	IntentMoodRequest,
	IntentMoodCorrection,
	IntentPreferenceExpression,
	IntentPreferenceConstraint,
	IntentGreeting,
	IntentConfirmation,
	IntentNegation,
	IntentSkip,
	IntentHelp,
	IntentPlayRequest,
	IntentSearchRequest,
	IntentPositiveFeedback,
	IntentNegativeFeedback,
	IntentContextExpression,
	IntentCancel,
	IntentUnknown,
}

func (i Intent) Valid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}

// Classification is the intent classifier's verdict for one turn.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}
