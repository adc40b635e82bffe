package signal

import (
	"math"
	"testing"
	"time"

	"github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEmotionalSignals(t *testing.T) {
	e := NewExtractor()
	cases := []struct {
		name          string
		text          string
		wantMood      dialogue.Mood
		wantIntensity dialogue.Intensity
		wantConf      float64
	}{
		{"vi mood only", "Hôm nay tôi buồn quá", dialogue.MoodSad, dialogue.IntensityNone, 0.8},
		{"vi intensity only", "rất mạnh", dialogue.MoodNone, dialogue.IntensityHigh, 0.9},
		{"vi amplified mood", "rất buồn", dialogue.MoodSad, dialogue.IntensityHigh, 0.8},
		{"vi diminished mood", "hơi buồn", dialogue.MoodSad, dialogue.IntensityLow, 0.8},
		{"vi compound wins", "buồn ngủ", dialogue.MoodTired, dialogue.IntensityNone, 0.6},
		{"en mood", "i feel anxious", dialogue.MoodAnxious, dialogue.IntensityNone, 0.8},
		{"en mood with level", "slightly anxious today", dialogue.MoodAnxious, dialogue.IntensityLow, 0.8},
		{"en amplified level", "very strong", dialogue.MoodNone, dialogue.IntensityHigh, 0.9},
		{"no signal", "what is the weather", dialogue.MoodNone, dialogue.IntensityNone, 0},
		{"empty", "", dialogue.MoodNone, dialogue.IntensityNone, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Emotional(tc.text)
			if got.Mood != tc.wantMood {
				t.Errorf("mood = %q, want %q", got.Mood, tc.wantMood)
			}
			if got.Intensity != tc.wantIntensity {
				t.Errorf("intensity = %q, want %q", got.Intensity, tc.wantIntensity)
			}
			if !almostEqual(got.Confidence, tc.wantConf) {
				t.Errorf("confidence = %v, want %v", got.Confidence, tc.wantConf)
			}
		})
	}
}

func TestEmotionalAmbiguityDiscount(t *testing.T) {
	e := NewExtractor()
	got := e.Emotional("vui mà cũng buồn")
	if got.Mood != dialogue.MoodSad {
		t.Fatalf("mood = %q, want sad (longer match)", got.Mood)
	}
	if !almostEqual(got.Confidence, 0.8*0.9) {
		t.Fatalf("confidence = %v, want discounted %v", got.Confidence, 0.8*0.9)
	}
}

func TestSituationalSignals(t *testing.T) {
	e := NewExtractor()
	nineAM := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	got := e.Situational("đang làm việc một mình", nineAM)
	if got.Activity != dialogue.ActivityWorking {
		t.Errorf("activity = %q, want working", got.Activity)
	}
	if got.Social != dialogue.SocialAlone {
		t.Errorf("social = %q, want alone", got.Social)
	}
	if got.TimeOfDay != dialogue.TimeMorning {
		t.Errorf("time = %q, want morning from clock", got.TimeOfDay)
	}

	// Explicit mention beats the clock.
	got = e.Situational("nghe nhạc buổi tối với bạn bè", nineAM)
	if got.TimeOfDay != dialogue.TimeEvening {
		t.Errorf("time = %q, want evening from text", got.TimeOfDay)
	}
	if got.Social != dialogue.SocialFriends {
		t.Errorf("social = %q, want friends", got.Social)
	}

	got = e.Situational("at the gym with my friends tonight", nineAM)
	if got.Activity != dialogue.ActivityExercising {
		t.Errorf("activity = %q, want exercising", got.Activity)
	}
	if got.Social != dialogue.SocialFriends {
		t.Errorf("social = %q, want friends", got.Social)
	}
	if got.TimeOfDay != dialogue.TimeEvening {
		t.Errorf("time = %q, want evening", got.TimeOfDay)
	}
}

func TestClockBucket(t *testing.T) {
	cases := []struct {
		hour int
		want dialogue.TimeOfDay
	}{
		{0, dialogue.TimeNight},
		{4, dialogue.TimeNight},
		{5, dialogue.TimeMorning},
		{10, dialogue.TimeMorning},
		{11, dialogue.TimeAfternoon},
		{16, dialogue.TimeAfternoon},
		{17, dialogue.TimeEvening},
		{21, dialogue.TimeEvening},
		{22, dialogue.TimeNight},
		{23, dialogue.TimeNight},
	}
	for _, tc := range cases {
		at := time.Date(2025, 6, 1, tc.hour, 30, 0, 0, time.UTC)
		if got := ClockBucket(at); got != tc.want {
			t.Errorf("ClockBucket(hour %d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
	if got := ClockBucket(time.Time{}); got != dialogue.TimeUnknown {
		t.Errorf("ClockBucket(zero) = %q, want unknown", got)
	}
}
