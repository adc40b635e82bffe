package lexicon

import "github.com/moodtunes/moodtunes-backend/internal/domain/dialogue"

// Vietnamese tables. Phrases are stored normalized (lowercase, diacritics
// kept). Postfix particles like "quá" and "lắm" are deliberately absent from
// the amplifier table: they color almost any sentence and carry no reliable
// intensity on their own.

var moodsVI = []MoodTerm{
	{Term{"vui", LangVietnamese, 0.8}, dialogue.MoodHappy},
	{Term{"vui vẻ", LangVietnamese, 0.8}, dialogue.MoodHappy},
	{Term{"hạnh phúc", LangVietnamese, 0.8}, dialogue.MoodHappy},
	{Term{"sung sướng", LangVietnamese, 0.7}, dialogue.MoodHappy},
	{Term{"buồn", LangVietnamese, 0.8}, dialogue.MoodSad},
	{Term{"buồn bã", LangVietnamese, 0.8}, dialogue.MoodSad},
	{Term{"tủi thân", LangVietnamese, 0.7}, dialogue.MoodSad},
	{Term{"thất vọng", LangVietnamese, 0.7}, dialogue.MoodSad},
	{Term{"muốn khóc", LangVietnamese, 0.7}, dialogue.MoodSad},
	{Term{"tức giận", LangVietnamese, 0.8}, dialogue.MoodAngry},
	{Term{"giận", LangVietnamese, 0.8}, dialogue.MoodAngry},
	{Term{"bực mình", LangVietnamese, 0.8}, dialogue.MoodAngry},
	{Term{"cáu", LangVietnamese, 0.7}, dialogue.MoodAngry},
	{Term{"lo lắng", LangVietnamese, 0.8}, dialogue.MoodAnxious},
	{Term{"lo âu", LangVietnamese, 0.8}, dialogue.MoodAnxious},
	{Term{"bồn chồn", LangVietnamese, 0.7}, dialogue.MoodAnxious},
	{Term{"hồi hộp", LangVietnamese, 0.6}, dialogue.MoodAnxious},
	{Term{"bình yên", LangVietnamese, 0.8}, dialogue.MoodCalm},
	{Term{"thư thái", LangVietnamese, 0.8}, dialogue.MoodCalm},
	{Term{"thanh thản", LangVietnamese, 0.7}, dialogue.MoodCalm},
	{Term{"phấn khích", LangVietnamese, 0.8}, dialogue.MoodExcited},
	{Term{"háo hức", LangVietnamese, 0.8}, dialogue.MoodExcited},
	{Term{"mệt", LangVietnamese, 0.8}, dialogue.MoodTired},
	{Term{"mệt mỏi", LangVietnamese, 0.8}, dialogue.MoodTired},
	{Term{"kiệt sức", LangVietnamese, 0.8}, dialogue.MoodTired},
	{Term{"buồn ngủ", LangVietnamese, 0.6}, dialogue.MoodTired},
	{Term{"căng thẳng", LangVietnamese, 0.8}, dialogue.MoodStressed},
	{Term{"áp lực", LangVietnamese, 0.8}, dialogue.MoodStressed},
	{Term{"stress", LangVietnamese, 0.8}, dialogue.MoodStressed},
	{Term{"cô đơn", LangVietnamese, 0.8}, dialogue.MoodLonely},
	{Term{"lẻ loi", LangVietnamese, 0.7}, dialogue.MoodLonely},
	{Term{"trống vắng", LangVietnamese, 0.7}, dialogue.MoodLonely},
	{Term{"nhớ nhà", LangVietnamese, 0.7}, dialogue.MoodNostalgic},
	{Term{"hoài niệm", LangVietnamese, 0.8}, dialogue.MoodNostalgic},
	{Term{"nhớ ngày xưa", LangVietnamese, 0.8}, dialogue.MoodNostalgic},
	{Term{"lãng mạn", LangVietnamese, 0.8}, dialogue.MoodRomantic},
	{Term{"yêu đời", LangVietnamese, 0.6}, dialogue.MoodHappy},
	{Term{"đang yêu", LangVietnamese, 0.7}, dialogue.MoodRomantic},
	{Term{"tràn đầy năng lượng", LangVietnamese, 0.8}, dialogue.MoodEnergetic},
	{Term{"sung sức", LangVietnamese, 0.7}, dialogue.MoodEnergetic},
	{Term{"hăng hái", LangVietnamese, 0.7}, dialogue.MoodEnergetic},
}

var levelsVI = []LevelTerm{
	{Term{"mạnh", LangVietnamese, 0.75}, dialogue.IntensityHigh},
	{Term{"dữ dội", LangVietnamese, 0.75}, dialogue.IntensityHigh},
	{Term{"khủng khiếp", LangVietnamese, 0.7}, dialogue.IntensityHigh},
	{Term{"vừa vừa", LangVietnamese, 0.75}, dialogue.IntensityMedium},
	{Term{"vừa phải", LangVietnamese, 0.75}, dialogue.IntensityMedium},
	{Term{"bình thường", LangVietnamese, 0.6}, dialogue.IntensityMedium},
	{Term{"nhẹ", LangVietnamese, 0.75}, dialogue.IntensityLow},
	{Term{"nhè nhẹ", LangVietnamese, 0.75}, dialogue.IntensityLow},
	{Term{"một chút", LangVietnamese, 0.7}, dialogue.IntensityLow},
	{Term{"chút xíu", LangVietnamese, 0.7}, dialogue.IntensityLow},
	{Term{"hơi", LangVietnamese, 0.7}, dialogue.IntensityLow},
}

var amplifiersVI = []Term{
	{"rất", LangVietnamese, 0.8},
	{"cực kỳ", LangVietnamese, 0.85},
	{"vô cùng", LangVietnamese, 0.85},
	{"siêu", LangVietnamese, 0.75},
}

var activitiesVI = []ActivityTerm{
	{Term{"làm việc", LangVietnamese, 0.8}, dialogue.ActivityWorking},
	{Term{"đi làm", LangVietnamese, 0.7}, dialogue.ActivityWorking},
	{Term{"tăng ca", LangVietnamese, 0.7}, dialogue.ActivityWorking},
	{Term{"học bài", LangVietnamese, 0.8}, dialogue.ActivityStudying},
	{Term{"ôn thi", LangVietnamese, 0.8}, dialogue.ActivityStudying},
	{Term{"tập gym", LangVietnamese, 0.8}, dialogue.ActivityExercising},
	{Term{"chạy bộ", LangVietnamese, 0.8}, dialogue.ActivityExercising},
	{Term{"tập thể dục", LangVietnamese, 0.8}, dialogue.ActivityExercising},
	{Term{"nghỉ ngơi", LangVietnamese, 0.8}, dialogue.ActivityRelaxing},
	{Term{"thư giãn", LangVietnamese, 0.8}, dialogue.ActivityRelaxing},
	{Term{"lái xe", LangVietnamese, 0.8}, dialogue.ActivityCommuting},
	{Term{"trên xe buýt", LangVietnamese, 0.7}, dialogue.ActivityCommuting},
	{Term{"đi tiệc", LangVietnamese, 0.8}, dialogue.ActivityPartying},
	{Term{"đi chơi", LangVietnamese, 0.6}, dialogue.ActivityPartying},
	{Term{"chuẩn bị ngủ", LangVietnamese, 0.8}, dialogue.ActivitySleeping},
	{Term{"sắp ngủ", LangVietnamese, 0.7}, dialogue.ActivitySleeping},
}

var socialsVI = []SocialTerm{
	{Term{"một mình", LangVietnamese, 0.85}, dialogue.SocialAlone},
	{Term{"ở nhà một mình", LangVietnamese, 0.85}, dialogue.SocialAlone},
	{Term{"với người yêu", LangVietnamese, 0.85}, dialogue.SocialPartner},
	{Term{"với bạn trai", LangVietnamese, 0.85}, dialogue.SocialPartner},
	{Term{"với bạn gái", LangVietnamese, 0.85}, dialogue.SocialPartner},
	{Term{"với bạn bè", LangVietnamese, 0.85}, dialogue.SocialFriends},
	{Term{"cùng bạn", LangVietnamese, 0.7}, dialogue.SocialFriends},
	{Term{"với gia đình", LangVietnamese, 0.85}, dialogue.SocialFamily},
	{Term{"cùng gia đình", LangVietnamese, 0.85}, dialogue.SocialFamily},
	{Term{"chỗ đông người", LangVietnamese, 0.7}, dialogue.SocialCrowd},
}

var timesVI = []TimeTerm{
	{Term{"buổi sáng", LangVietnamese, 0.85}, dialogue.TimeMorning},
	{Term{"sáng nay", LangVietnamese, 0.85}, dialogue.TimeMorning},
	{Term{"buổi chiều", LangVietnamese, 0.85}, dialogue.TimeAfternoon},
	{Term{"chiều nay", LangVietnamese, 0.85}, dialogue.TimeAfternoon},
	{Term{"buổi tối", LangVietnamese, 0.85}, dialogue.TimeEvening},
	{Term{"tối nay", LangVietnamese, 0.85}, dialogue.TimeEvening},
	{Term{"ban đêm", LangVietnamese, 0.85}, dialogue.TimeNight},
	{Term{"đêm khuya", LangVietnamese, 0.85}, dialogue.TimeNight},
	{Term{"nửa đêm", LangVietnamese, 0.85}, dialogue.TimeNight},
}
