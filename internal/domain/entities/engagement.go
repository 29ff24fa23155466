package entities

import (
	"time"

	"github.com/google/uuid"
)

// EngagementLevel buckets a focus score into a coarse label
type EngagementLevel string

const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// Focus score bounds and the initial score for a fresh record
const (
	FocusScoreMin     = 0
	FocusScoreMax     = 100
	FocusScoreInitial = 50
)

// EngagementRecord is the per (student, lecture) accumulator for the
// bounded focus score and derived metrics. Created on first scoring
// action; mutated additively with clamping; deleted only via lecture
// cascade.
type EngagementRecord struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LectureID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_engagement_lecture_student" json:"lecture_id"`
	Lecture           *Lecture        `gorm:"foreignKey:LectureID" json:"lecture,omitempty"`
	StudentID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_engagement_lecture_student" json:"student_id"`
	Student           *Student        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FocusScore        int             `gorm:"default:50;check:focus_score >= 0 AND focus_score <= 100" json:"focus_score"`
	AttentionSeconds  int             `gorm:"default:0" json:"attention_seconds"`
	DistractionCount  int             `gorm:"default:0" json:"distraction_count"`
	HandRaisedCount   int             `gorm:"default:0" json:"hand_raised_count"`
	EngagementLevel   EngagementLevel `gorm:"type:varchar(10);default:'medium'" json:"engagement_level"`
	RecognitionStatus string          `gorm:"type:varchar(20);default:'known'" json:"recognition_status"`
	DetectionCount    int             `gorm:"default:0" json:"detection_count"`
	AverageConfidence float64         `gorm:"default:0" json:"average_confidence"`
	CreatedAt         time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for EngagementRecord
func (EngagementRecord) TableName() string {
	return "engagement_records"
}

// AddPoints applies a score delta with hard floor and ceiling
func (e *EngagementRecord) AddPoints(points int) {
	e.FocusScore = ClampFocusScore(e.FocusScore + points)
}

// RecordDetection folds one detection observation into the running
// confidence average and detection count.
func (e *EngagementRecord) RecordDetection(confidence float64) {
	total := e.AverageConfidence*float64(e.DetectionCount) + confidence
	e.DetectionCount++
	e.AverageConfidence = total / float64(e.DetectionCount)
}

// DeriveLevel recomputes the engagement level from the current score
func (e *EngagementRecord) DeriveLevel() {
	e.EngagementLevel = LevelForScore(e.FocusScore)
}

// ClampFocusScore bounds a score to [FocusScoreMin, FocusScoreMax]
func ClampFocusScore(score int) int {
	if score < FocusScoreMin {
		return FocusScoreMin
	}
	if score > FocusScoreMax {
		return FocusScoreMax
	}
	return score
}

// LevelForScore buckets a focus score into an engagement level
func LevelForScore(score int) EngagementLevel {
	switch {
	case score >= 70:
		return EngagementHigh
	case score >= 40:
		return EngagementMedium
	default:
		return EngagementLow
	}
}
