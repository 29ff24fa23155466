package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
)

// attendanceRepository implements the AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) repositories.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert creates or updates the record keyed by (lecture_id, student_id)
func (r *attendanceRepository) Upsert(ctx context.Context, record *entities.AttendanceRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "lecture_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "join_time", "leave_time", "notes", "updated_at",
			}),
		}).
		Create(record).Error
}

// FindByLectureAndStudent retrieves one attendance record
func (r *attendanceRepository) FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.AttendanceRecord, error) {
	var record entities.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("lecture_id = ? AND student_id = ?", lectureID, studentID).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByLectureID retrieves all attendance records for a lecture
func (r *attendanceRepository) FindByLectureID(ctx context.Context, lectureID uuid.UUID) ([]*entities.AttendanceRecord, error) {
	var records []*entities.AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("lecture_id = ?", lectureID).
		Order("join_time ASC NULLS LAST").
		Find(&records).Error
	return records, err
}

// FindByStudentID retrieves attendance history for a student
func (r *attendanceRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entities.AttendanceRecord, error) {
	var records []*entities.AttendanceRecord
	query := r.db.WithContext(ctx).
		Preload("Lecture").
		Where("student_id = ?", studentID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&records).Error
	return records, err
}

// BulkUpsert creates or updates many records in one transaction
func (r *attendanceRepository) BulkUpsert(ctx context.Context, records []*entities.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "lecture_id"}, {Name: "student_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"status", "join_time", "leave_time", "notes", "updated_at",
				}),
			}).Create(record).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SetLeaveTimes fills leave_time for all records of a lecture that do not have one
func (r *attendanceRepository) SetLeaveTimes(ctx context.Context, lectureID uuid.UUID, leaveTime time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.AttendanceRecord{}).
		Where("lecture_id = ? AND leave_time IS NULL AND join_time IS NOT NULL", lectureID).
		Update("leave_time", leaveTime).
		Error
}

// CountByStatus counts records per status for a lecture
func (r *attendanceRepository) CountByStatus(ctx context.Context, lectureID uuid.UUID) (map[entities.AttendanceStatus]int64, error) {
	type statusCount struct {
		Status entities.AttendanceStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&entities.AttendanceRecord{}).
		Select("status, COUNT(*) as count").
		Where("lecture_id = ?", lectureID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.AttendanceStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
