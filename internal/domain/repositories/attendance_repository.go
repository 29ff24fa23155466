package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/classpulse/backend/internal/domain/entities"
)

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	// Upsert creates or updates the record keyed by (lecture_id, student_id)
	Upsert(ctx context.Context, record *entities.AttendanceRecord) error

	// FindByLectureAndStudent retrieves one attendance record
	FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.AttendanceRecord, error)

	// FindByLectureID retrieves all attendance records for a lecture
	FindByLectureID(ctx context.Context, lectureID uuid.UUID) ([]*entities.AttendanceRecord, error)

	// FindByStudentID retrieves attendance history for a student
	FindByStudentID(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entities.AttendanceRecord, error)

	// BulkUpsert creates or updates many records in one transaction
	BulkUpsert(ctx context.Context, records []*entities.AttendanceRecord) error

	// SetLeaveTimes fills leave_time for all records of a lecture that do not have one
	SetLeaveTimes(ctx context.Context, lectureID uuid.UUID, leaveTime time.Time) error

	// CountByStatus counts records per status for a lecture
	CountByStatus(ctx context.Context, lectureID uuid.UUID) (map[entities.AttendanceStatus]int64, error)
}
