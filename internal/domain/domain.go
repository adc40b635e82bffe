package domain

import (
	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

// Dialogue states.
const (
	StateGreeting         = dialogue.StateGreeting
	StateProbingMood      = dialogue.StateProbingMood
	StateProbingIntensity = dialogue.StateProbingIntensity
	StateProbingContext   = dialogue.StateProbingContext
	StateConfirming       = dialogue.StateConfirming
	StateRecommending     = dialogue.StateRecommending
	StateFeedback         = dialogue.StateFeedback
	StateEnded            = dialogue.StateEnded
	StateAborted          = dialogue.StateAborted
	StateTimeout          = dialogue.StateTimeout
)

// Turn intents.
const (
	IntentMoodExpression       = dialogue.IntentMoodExpression
	IntentMoodRequest          = dialogue.IntentMoodRequest
	IntentMoodCorrection       = dialogue.IntentMoodCorrection
	IntentPreferenceExpression = dialogue.IntentPreferenceExpression
	IntentPreferenceConstraint = dialogue.IntentPreferenceConstraint
	IntentGreeting             = dialogue.IntentGreeting
	IntentConfirmation         = dialogue.IntentConfirmation
	IntentNegation             = dialogue.IntentNegation
	IntentSkip                 = dialogue.IntentSkip
	IntentHelp                 = dialogue.IntentHelp
	IntentPlayRequest          = dialogue.IntentPlayRequest
	IntentSearchRequest        = dialogue.IntentSearchRequest
	IntentPositiveFeedback     = dialogue.IntentPositiveFeedback
	IntentNegativeFeedback     = dialogue.IntentNegativeFeedback
	IntentContextExpression    = dialogue.IntentContextExpression
	IntentCancel               = dialogue.IntentCancel
	IntentUnknown              = dialogue.IntentUnknown
)

// Mood labels.
const (
	MoodNone      = dialogue.MoodNone
	MoodHappy     = dialogue.MoodHappy
	MoodSad       = dialogue.MoodSad
	MoodAngry     = dialogue.MoodAngry
	MoodAnxious   = dialogue.MoodAnxious
	MoodCalm      = dialogue.MoodCalm
	MoodExcited   = dialogue.MoodExcited
	MoodTired     = dialogue.MoodTired
	MoodStressed  = dialogue.MoodStressed
	MoodLonely    = dialogue.MoodLonely
	MoodNostalgic = dialogue.MoodNostalgic
	MoodRomantic  = dialogue.MoodRomantic
	MoodEnergetic = dialogue.MoodEnergetic
)

// Intensity levels.
const (
	IntensityNone   = dialogue.IntensityNone
	IntensityLow    = dialogue.IntensityLow
	IntensityMedium = dialogue.IntensityMedium
	IntensityHigh   = dialogue.IntensityHigh
)

// Situational signal values.
const (
	TimeUnknown   = dialogue.TimeUnknown
	TimeMorning   = dialogue.TimeMorning
	TimeAfternoon = dialogue.TimeAfternoon
	TimeEvening   = dialogue.TimeEvening
	TimeNight     = dialogue.TimeNight

	ActivityUnknown    = dialogue.ActivityUnknown
	ActivityWorking    = dialogue.ActivityWorking
	ActivityStudying   = dialogue.ActivityStudying
	ActivityExercising = dialogue.ActivityExercising
	ActivityRelaxing   = dialogue.ActivityRelaxing
	ActivityCommuting  = dialogue.ActivityCommuting
	ActivityPartying   = dialogue.ActivityPartying
	ActivitySleeping   = dialogue.ActivitySleeping

	SocialUnknown = dialogue.SocialUnknown
	SocialAlone   = dialogue.SocialAlone
	SocialPartner = dialogue.SocialPartner
	SocialFriends = dialogue.SocialFriends
	SocialFamily  = dialogue.SocialFamily
	SocialCrowd   = dialogue.SocialCrowd
)

// Turn input and response kinds.
const (
	InputFreeText = dialogue.InputFreeText
	InputChoice   = dialogue.InputChoice

	ResponseQuestion       = dialogue.ResponseQuestion
	ResponseConfirmation   = dialogue.ResponseConfirmation
	ResponseRecommendation = dialogue.ResponseRecommendation
	ResponseFarewell       = dialogue.ResponseFarewell
)

// Probing-question catalog keys.
const (
	CategoryMood      = dialogue.CategoryMood
	CategoryIntensity = dialogue.CategoryIntensity
	CategoryContext   = dialogue.CategoryContext
	CategoryConfirm   = dialogue.CategoryConfirm

	DepthSurface  = dialogue.DepthSurface
	DepthSpecific = dialogue.DepthSpecific
)

// Clarity bands.
const (
	ClarityLow    = dialogue.ClarityLow
	ClarityMedium = dialogue.ClarityMedium
	ClarityHigh   = dialogue.ClarityHigh
)

// Dialogue error codes.
const (
	CodeInvalidInput = dialogue.CodeInvalidInput
	CodeNotFound     = dialogue.CodeNotFound
	CodeExpired      = dialogue.CodeExpired
	CodeConflict     = dialogue.CodeConflict
	CodeRetryable    = dialogue.CodeRetryable
	CodeStorage      = dialogue.CodeStorage
	CodeInternal     = dialogue.CodeInternal
)

var (
	AllMoods   = dialogue.AllMoods
	AllIntents = dialogue.AllIntents

	NewError  = dialogue.NewError
	WrapError = dialogue.WrapError
	IsCode    = dialogue.IsCode
	CodeOf    = dialogue.CodeOf
	Retriable = dialogue.Retriable

	NewEmotionalContext = dialogue.NewEmotionalContext
)

type State = dialogue.State
type Intent = dialogue.Intent
type Classification = dialogue.Classification
type Mood = dialogue.Mood
type Intensity = dialogue.Intensity
type TimeOfDay = dialogue.TimeOfDay
type Activity = dialogue.Activity
type SocialSetting = dialogue.SocialSetting
type EmotionalSignals = dialogue.EmotionalSignals
type ContextSignals = dialogue.ContextSignals
type MoodEntry = dialogue.MoodEntry
type EmotionalContext = dialogue.EmotionalContext
type ClarityBand = dialogue.ClarityBand
type ClarityComponents = dialogue.ClarityComponents
type ClarityWeights = dialogue.ClarityWeights
type ClarityResult = dialogue.ClarityResult
type ConversationSession = dialogue.ConversationSession
type ConversationTurn = dialogue.ConversationTurn
type InputType = dialogue.InputType
type ResponseType = dialogue.ResponseType
type ProbingQuestion = dialogue.ProbingQuestion
type QuestionCategory = dialogue.QuestionCategory
type IdempotencyKey = dialogue.IdempotencyKey
type TurnRequest = dialogue.TurnRequest
type TurnResponse = dialogue.TurnResponse
type EnrichedRequest = dialogue.EnrichedRequest
type Error = dialogue.Error
type ErrorCode = dialogue.ErrorCode
