package lexicon

import "github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"

// English tables. Short ambiguous words ("so", "too") are excluded from the
// amplifier list for the same reason their Vietnamese counterparts are.

var moodsEN = []MoodTerm{
	{Term{"happy", LangEnglish, 0.8}, dialogue.MoodHappy},
	{Term{"glad", LangEnglish, 0.7}, dialogue.MoodHappy},
	{Term{"cheerful", LangEnglish, 0.8}, dialogue.MoodHappy},
	{Term{"joyful", LangEnglish, 0.8}, dialogue.MoodHappy},
	{Term{"sad", LangEnglish, 0.8}, dialogue.MoodSad},
	{Term{"down", LangEnglish, 0.6}, dialogue.MoodSad},
	{Term{"unhappy", LangEnglish, 0.8}, dialogue.MoodSad},
	{Term{"heartbroken", LangEnglish, 0.8}, dialogue.MoodSad},
	{Term{"feel like crying", LangEnglish, 0.7}, dialogue.MoodSad},
	{Term{"angry", LangEnglish, 0.8}, dialogue.MoodAngry},
	{Term{"mad", LangEnglish, 0.7}, dialogue.MoodAngry},
	{Term{"furious", LangEnglish, 0.8}, dialogue.MoodAngry},
	{Term{"annoyed", LangEnglish, 0.7}, dialogue.MoodAngry},
	{Term{"anxious", LangEnglish, 0.8}, dialogue.MoodAnxious},
	{Term{"worried", LangEnglish, 0.8}, dialogue.MoodAnxious},
	{Term{"nervous", LangEnglish, 0.7}, dialogue.MoodAnxious},
	{Term{"on edge", LangEnglish, 0.7}, dialogue.MoodAnxious},
	{Term{"calm", LangEnglish, 0.8}, dialogue.MoodCalm},
	{Term{"peaceful", LangEnglish, 0.8}, dialogue.MoodCalm},
	{Term{"relaxed", LangEnglish, 0.7}, dialogue.MoodCalm},
	{Term{"excited", LangEnglish, 0.8}, dialogue.MoodExcited},
	{Term{"thrilled", LangEnglish, 0.8}, dialogue.MoodExcited},
	{Term{"pumped", LangEnglish, 0.7}, dialogue.MoodExcited},
	{Term{"tired", LangEnglish, 0.8}, dialogue.MoodTired},
	{Term{"exhausted", LangEnglish, 0.8}, dialogue.MoodTired},
	{Term{"sleepy", LangEnglish, 0.6}, dialogue.MoodTired},
	{Term{"worn out", LangEnglish, 0.7}, dialogue.MoodTired},
	{Term{"stressed", LangEnglish, 0.8}, dialogue.MoodStressed},
	{Term{"under pressure", LangEnglish, 0.8}, dialogue.MoodStressed},
	{Term{"overwhelmed", LangEnglish, 0.7}, dialogue.MoodStressed},
	{Term{"lonely", LangEnglish, 0.8}, dialogue.MoodLonely},
	{Term{"alone and sad", LangEnglish, 0.7}, dialogue.MoodLonely},
	{Term{"isolated", LangEnglish, 0.7}, dialogue.MoodLonely},
	{Term{"nostalgic", LangEnglish, 0.8}, dialogue.MoodNostalgic},
	{Term{"miss the old days", LangEnglish, 0.8}, dialogue.MoodNostalgic},
	{Term{"homesick", LangEnglish, 0.7}, dialogue.MoodNostalgic},
	{Term{"romantic", LangEnglish, 0.8}, dialogue.MoodRomantic},
	{Term{"in love", LangEnglish, 0.8}, dialogue.MoodRomantic},
	{Term{"lovey dovey", LangEnglish, 0.6}, dialogue.MoodRomantic},
	{Term{"energetic", LangEnglish, 0.8}, dialogue.MoodEnergetic},
	{Term{"full of energy", LangEnglish, 0.8}, dialogue.MoodEnergetic},
	{Term{"hyped", LangEnglish, 0.7}, dialogue.MoodEnergetic},
}

var levelsEN = []LevelTerm{
	{Term{"strong", LangEnglish, 0.75}, dialogue.IntensityHigh},
	{Term{"intense", LangEnglish, 0.75}, dialogue.IntensityHigh},
	{Term{"overwhelming", LangEnglish, 0.7}, dialogue.IntensityHigh},
	{Term{"moderate", LangEnglish, 0.75}, dialogue.IntensityMedium},
	{Term{"medium", LangEnglish, 0.75}, dialogue.IntensityMedium},
	{Term{"somewhat", LangEnglish, 0.6}, dialogue.IntensityMedium},
	{Term{"mild", LangEnglish, 0.75}, dialogue.IntensityLow},
	{Term{"slight", LangEnglish, 0.75}, dialogue.IntensityLow},
	{Term{"slightly", LangEnglish, 0.7}, dialogue.IntensityLow},
	{Term{"a little", LangEnglish, 0.7}, dialogue.IntensityLow},
	{Term{"a bit", LangEnglish, 0.7}, dialogue.IntensityLow},
}

var amplifiersEN = []Term{
	{"very", LangEnglish, 0.8},
	{"really", LangEnglish, 0.75},
	{"extremely", LangEnglish, 0.85},
	{"incredibly", LangEnglish, 0.85},
	{"super", LangEnglish, 0.75},
}

var activitiesEN = []ActivityTerm{
	{Term{"working", LangEnglish, 0.8}, dialogue.ActivityWorking},
	{Term{"at work", LangEnglish, 0.8}, dialogue.ActivityWorking},
	{Term{"at the office", LangEnglish, 0.8}, dialogue.ActivityWorking},
	{Term{"studying", LangEnglish, 0.8}, dialogue.ActivityStudying},
	{Term{"doing homework", LangEnglish, 0.8}, dialogue.ActivityStudying},
	{Term{"cramming", LangEnglish, 0.7}, dialogue.ActivityStudying},
	{Term{"at the gym", LangEnglish, 0.8}, dialogue.ActivityExercising},
	{Term{"working out", LangEnglish, 0.8}, dialogue.ActivityExercising},
	{Term{"running", LangEnglish, 0.7}, dialogue.ActivityExercising},
	{Term{"relaxing", LangEnglish, 0.8}, dialogue.ActivityRelaxing},
	{Term{"chilling", LangEnglish, 0.8}, dialogue.ActivityRelaxing},
	{Term{"driving", LangEnglish, 0.8}, dialogue.ActivityCommuting},
	{Term{"on the bus", LangEnglish, 0.7}, dialogue.ActivityCommuting},
	{Term{"on the train", LangEnglish, 0.7}, dialogue.ActivityCommuting},
	{Term{"at a party", LangEnglish, 0.8}, dialogue.ActivityPartying},
	{Term{"going out", LangEnglish, 0.6}, dialogue.ActivityPartying},
	{Term{"going to bed", LangEnglish, 0.8}, dialogue.ActivitySleeping},
	{Term{"about to sleep", LangEnglish, 0.8}, dialogue.ActivitySleeping},
}

var socialsEN = []SocialTerm{
	{Term{"by myself", LangEnglish, 0.85}, dialogue.SocialAlone},
	{Term{"on my own", LangEnglish, 0.85}, dialogue.SocialAlone},
	{Term{"home alone", LangEnglish, 0.85}, dialogue.SocialAlone},
	{Term{"with my partner", LangEnglish, 0.85}, dialogue.SocialPartner},
	{Term{"with my boyfriend", LangEnglish, 0.85}, dialogue.SocialPartner},
	{Term{"with my girlfriend", LangEnglish, 0.85}, dialogue.SocialPartner},
	{Term{"with friends", LangEnglish, 0.85}, dialogue.SocialFriends},
	{Term{"with my friends", LangEnglish, 0.85}, dialogue.SocialFriends},
	{Term{"with family", LangEnglish, 0.85}, dialogue.SocialFamily},
	{Term{"with my family", LangEnglish, 0.85}, dialogue.SocialFamily},
	{Term{"in a crowd", LangEnglish, 0.7}, dialogue.SocialCrowd},
}

var timesEN = []TimeTerm{
	{Term{"this morning", LangEnglish, 0.85}, dialogue.TimeMorning},
	{Term{"in the morning", LangEnglish, 0.85}, dialogue.TimeMorning},
	{Term{"this afternoon", LangEnglish, 0.85}, dialogue.TimeAfternoon},
	{Term{"in the afternoon", LangEnglish, 0.85}, dialogue.TimeAfternoon},
	{Term{"this evening", LangEnglish, 0.85}, dialogue.TimeEvening},
	{Term{"tonight", LangEnglish, 0.85}, dialogue.TimeEvening},
	{Term{"at night", LangEnglish, 0.85}, dialogue.TimeNight},
	{Term{"late at night", LangEnglish, 0.85}, dialogue.TimeNight},
	{Term{"past midnight", LangEnglish, 0.85}, dialogue.TimeNight},
}
