package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LectureStatus represents the lifecycle state of a lecture
type LectureStatus string

const (
	LectureStatusScheduled LectureStatus = "scheduled"
	LectureStatusActive    LectureStatus = "active"
	LectureStatusPaused    LectureStatus = "paused"
	LectureStatusEnded     LectureStatus = "ended"
)

// Lecture represents a scheduled or ad-hoc teaching session
type Lecture struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course          *Course        `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Status          LectureStatus  `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	IsActive        bool           `gorm:"default:false;index" json:"is_active"`
	ScheduledAt     *time.Time     `gorm:"index" json:"scheduled_at,omitempty"`
	DurationMinutes int            `gorm:"default:0" json:"duration_minutes"`
	StartedAt       *time.Time     `json:"started_at,omitempty"`
	EndedAt         *time.Time     `json:"ended_at,omitempty"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt       time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Lecture
func (Lecture) TableName() string {
	return "lectures"
}

// IsLive checks if the lecture is currently running or paused
func (l *Lecture) IsLive() bool {
	return l.Status == LectureStatusActive || l.Status == LectureStatusPaused
}

// Start marks the lecture as active. Starting before or after the scheduled
// time is allowed; the scheduled time is advisory only.
func (l *Lecture) Start() {
	now := time.Now()
	l.Status = LectureStatusActive
	l.IsActive = true
	if l.StartedAt == nil {
		l.StartedAt = &now
	}
}

// Pause stops the elapsed-time counter without ending the lecture.
// Event relay and scoring stay live while paused.
func (l *Lecture) Pause() {
	l.Status = LectureStatusPaused
}

// Resume continues an active lecture after a pause
func (l *Lecture) Resume() {
	l.Status = LectureStatusActive
}

// End marks the lecture as ended and records the effective duration
func (l *Lecture) End() {
	now := time.Now()
	l.Status = LectureStatusEnded
	l.IsActive = false
	l.EndedAt = &now

	if l.StartedAt != nil {
		l.DurationMinutes = int(now.Sub(*l.StartedAt).Minutes())
	}
}
