package entities

import (
	"time"

	"github.com/google/uuid"
)

// Student is a roster entry. Students are independent of user accounts:
// the detector identifies them by PersonKey, not by login.
type Student struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName  string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email     *string    `gorm:"type:varchar(255);index" json:"email,omitempty"`
	PersonKey string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"person_key"`
	AvatarURL *string    `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
	CreatedAt time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "students"
}

// Enrollment links a student to a course
type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_course_student" json:"course_id"`
	Course     *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_course_student" json:"student_id"`
	Student    *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	EnrolledAt time.Time `gorm:"default:now()" json:"enrolled_at"`
}

// TableName specifies the table name for Enrollment
func (Enrollment) TableName() string {
	return "enrollments"
}
