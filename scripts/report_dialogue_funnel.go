package main

// Aggregates dialogue funnel metrics straight from the conversation tables
// and prints a JSON report.
//
// Usage: go run scripts/report_dialogue_funnel.go [postgres-dsn]
// Falls back to DATABASE_URL when no argument is given.

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	types "github.com/moodtunes/moodtunes-backend/internal/domain"
)

type stateCount struct {
	State    string `json:"state"`
	Sessions int64  `json:"sessions"`
}

type languageCount struct {
	Language string `json:"language"`
	Sessions int64  `json:"sessions"`
}

type triggerCount struct {
	Trigger string `json:"trigger"`
	Turns   int64  `json:"turns"`
}

type responseTypeCount struct {
	ResponseType string `json:"response_type"`
	Turns        int64  `json:"turns"`
}

type questionUsage struct {
	Category   string `json:"category"`
	Language   string `json:"language"`
	Text       string `json:"text"`
	UsageCount int64  `json:"usage_count"`
}

type funnelReport struct {
	TotalSessions               int64               `json:"total_sessions"`
	TotalTurns                  int64               `json:"total_turns"`
	SessionsByState             []stateCount        `json:"sessions_by_state"`
	SessionsByLanguage          []languageCount     `json:"sessions_by_language"`
	SessionsReachedConfirming   int64               `json:"sessions_reached_confirming"`
	SessionsReachedRecommending int64               `json:"sessions_reached_recommending"`
	AvgTurnsToRecommendation    float64             `json:"avg_turns_to_recommendation"`
	TurnsByTrigger              []triggerCount      `json:"turns_by_trigger"`
	TurnsByResponseType         []responseTypeCount `json:"turns_by_response_type"`
	TopQuestionsByUsage         []questionUsage     `json:"top_questions_by_usage"`
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if len(os.Args) > 1 {
		dsn = os.Args[1]
	}
	if dsn == "" {
		exitf("no postgres dsn: pass one as the first argument or set DATABASE_URL")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		exitf("open postgres: %v", err)
	}

	report, err := buildReport(db)
	if err != nil {
		exitf("build report: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		exitf("marshal report: %v", err)
	}
	fmt.Println(string(out))
}

func buildReport(db *gorm.DB) (*funnelReport, error) {
	var report funnelReport

	if err := db.Model(&types.ConversationSession{}).Count(&report.TotalSessions).Error; err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if err := db.Model(&types.ConversationTurn{}).Count(&report.TotalTurns).Error; err != nil {
		return nil, fmt.Errorf("count turns: %w", err)
	}

	if err := db.Model(&types.ConversationSession{}).
		Select("state, count(*) as sessions").
		Group("state").
		Scan(&report.SessionsByState).Error; err != nil {
		return nil, fmt.Errorf("sessions by state: %w", err)
	}
	sort.Slice(report.SessionsByState, func(i, j int) bool {
		return report.SessionsByState[i].State < report.SessionsByState[j].State
	})

	if err := db.Model(&types.ConversationSession{}).
		Select("language, count(*) as sessions").
		Group("language").
		Scan(&report.SessionsByLanguage).Error; err != nil {
		return nil, fmt.Errorf("sessions by language: %w", err)
	}
	sort.Slice(report.SessionsByLanguage, func(i, j int) bool {
		return report.SessionsByLanguage[i].Language < report.SessionsByLanguage[j].Language
	})

	if err := db.Model(&types.ConversationTurn{}).
		Where("state_after = ?", string(types.StateConfirming)).
		Distinct("session_id").
		Count(&report.SessionsReachedConfirming).Error; err != nil {
		return nil, fmt.Errorf("sessions reached confirming: %w", err)
	}
	if err := db.Model(&types.ConversationTurn{}).
		Where("state_after = ?", string(types.StateRecommending)).
		Distinct("session_id").
		Count(&report.SessionsReachedRecommending).Error; err != nil {
		return nil, fmt.Errorf("sessions reached recommending: %w", err)
	}

	// Mean turn index of each session's first recommendation, i.e. how much
	// probing it took to get there.
	row := db.Raw(`
		SELECT COALESCE(AVG(first_idx), 0)
		FROM (
			SELECT MIN(turn_index) AS first_idx
			FROM conversation_turn
			WHERE state_after = ?
			GROUP BY session_id
		) firsts`, string(types.StateRecommending)).Row()
	if err := row.Scan(&report.AvgTurnsToRecommendation); err != nil {
		return nil, fmt.Errorf("avg turns to recommendation: %w", err)
	}

	if err := db.Model(&types.ConversationTurn{}).
		Select("trigger, count(*) as turns").
		Group("trigger").
		Scan(&report.TurnsByTrigger).Error; err != nil {
		return nil, fmt.Errorf("turns by trigger: %w", err)
	}
	sort.Slice(report.TurnsByTrigger, func(i, j int) bool {
		if report.TurnsByTrigger[i].Turns == report.TurnsByTrigger[j].Turns {
			return report.TurnsByTrigger[i].Trigger < report.TurnsByTrigger[j].Trigger
		}
		return report.TurnsByTrigger[i].Turns > report.TurnsByTrigger[j].Turns
	})

	if err := db.Model(&types.ConversationTurn{}).
		Select("response_type, count(*) as turns").
		Group("response_type").
		Scan(&report.TurnsByResponseType).Error; err != nil {
		return nil, fmt.Errorf("turns by response type: %w", err)
	}
	sort.Slice(report.TurnsByResponseType, func(i, j int) bool {
		if report.TurnsByResponseType[i].Turns == report.TurnsByResponseType[j].Turns {
			return report.TurnsByResponseType[i].ResponseType < report.TurnsByResponseType[j].ResponseType
		}
		return report.TurnsByResponseType[i].Turns > report.TurnsByResponseType[j].Turns
	})

	if err := db.Model(&types.ProbingQuestion{}).
		Select("category, language, text, usage_count").
		Order("usage_count DESC, text ASC").
		Limit(10).
		Scan(&report.TopQuestionsByUsage).Error; err != nil {
		return nil, fmt.Errorf("top questions by usage: %w", err)
	}

	return &report, nil
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
