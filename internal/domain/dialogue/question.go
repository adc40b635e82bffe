package dialogue

import (
	"time"

	"github.com/google/uuid"
)

// QuestionCategory keys the probing-question catalog by dialogue dimension.
type QuestionCategory string

const (
	CategoryMood      QuestionCategory = "mood"
	CategoryIntensity QuestionCategory = "intensity"
	CategoryContext   QuestionCategory = "context"
	CategoryConfirm   QuestionCategory = "confirm"
)

// Question depth levels. Surface questions open a dimension; specific ones
// pin it down when the turn budget is running out.
const (
	DepthSurface  = 1
	DepthSpecific = 2
)

// ProbingQuestion is one catalog entry. The catalog is immutable apart from
// the usage counter, which is bumped on every selection for analytics.
type ProbingQuestion struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Category QuestionCategory `gorm:"column:category;type:text;not null;index;index:idx_probing_question_identity,unique,priority:1" json:"category"`
	Depth    int              `gorm:"column:depth;not null;default:1;index:idx_probing_question_identity,unique,priority:2" json:"depth"`
	Language string           `gorm:"column:language;type:text;not null;default:'vi';index:idx_probing_question_identity,unique,priority:3" json:"language"`

	Text string `gorm:"column:text;type:text;not null;index:idx_probing_question_identity,unique,priority:4" json:"text"`

	UsageCount int64 `gorm:"column:usage_count;not null;default:0" json:"usage_count"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProbingQuestion) TableName() string { return "probing_question" }
