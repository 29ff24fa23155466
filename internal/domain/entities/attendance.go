package entities

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus represents the presence outcome for a student in a lecture
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// IsValid checks if the status is a supported value
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent:
		return true
	default:
		return false
	}
}

// AttendanceRecord is the per (student, lecture) presence outcome.
// Upserts are keyed by (lecture_id, student_id).
type AttendanceRecord struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LectureID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_lecture_student" json:"lecture_id"`
	Lecture   *Lecture         `gorm:"foreignKey:LectureID" json:"lecture,omitempty"`
	StudentID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_lecture_student" json:"student_id"`
	Student   *Student         `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Status    AttendanceStatus `gorm:"type:varchar(10);not null;default:'ABSENT'" json:"status"`
	JoinTime  *time.Time       `json:"join_time,omitempty"`
	LeaveTime *time.Time       `json:"leave_time,omitempty"`
	Notes     *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time        `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time        `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for AttendanceRecord
func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
