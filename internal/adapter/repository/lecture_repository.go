package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
)

// lectureRepository implements the LectureRepository interface
type lectureRepository struct {
	db *gorm.DB
}

// NewLectureRepository creates a new lecture repository
func NewLectureRepository(db *gorm.DB) repositories.LectureRepository {
	return &lectureRepository{db: db}
}

// Create creates a new lecture
func (r *lectureRepository) Create(ctx context.Context, lecture *entities.Lecture) error {
	return r.db.WithContext(ctx).Create(lecture).Error
}

// FindByID retrieves a lecture by ID
func (r *lectureRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	var lecture entities.Lecture
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("id = ?", id).
		First(&lecture).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrLectureNotFound
		}
		return nil, err
	}
	return &lecture, nil
}

// Update updates an existing lecture
func (r *lectureRepository) Update(ctx context.Context, lecture *entities.Lecture) error {
	return r.db.WithContext(ctx).Save(lecture).Error
}

// List retrieves lectures with filters and pagination
func (r *lectureRepository) List(ctx context.Context, filters repositories.LectureFilters) ([]*entities.Lecture, int64, error) {
	var lectures []*entities.Lecture
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Lecture{}).Preload("Course")

	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.From != nil {
		query = query.Where("scheduled_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("scheduled_at <= ?", *filters.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "scheduled_at"
	if filters.SortBy != "" {
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if filters.SortOrder != "" {
		sortOrder = filters.SortOrder
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&lectures).Error
	return lectures, total, err
}

// FindActiveByCourseID retrieves the currently live lecture of a course, if any
func (r *lectureRepository) FindActiveByCourseID(ctx context.Context, courseID uuid.UUID) (*entities.Lecture, error) {
	var lecture entities.Lecture
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND is_active = ?", courseID, true).
		First(&lecture).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrLectureNotFound
		}
		return nil, err
	}
	return &lecture, nil
}

// UpdateStatus updates the lecture status
func (r *lectureRepository) UpdateStatus(ctx context.Context, lectureID uuid.UUID, status entities.LectureStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Lecture{}).
		Where("id = ?", lectureID).
		Update("status", status).
		Error
}

// DeleteCascade deletes a lecture together with its attendance and
// engagement rows inside a single transaction
func (r *lectureRepository) DeleteCascade(ctx context.Context, lectureID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lecture_id = ?", lectureID).Delete(&entities.AttendanceRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lecture_id = ?", lectureID).Delete(&entities.EngagementRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Lecture{}, lectureID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entities.ErrLectureNotFound
		}
		return nil
	})
}
