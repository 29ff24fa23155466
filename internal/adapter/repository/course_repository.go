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

// courseRepository implements the CourseRepository interface
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{db: db}
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *entities.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// FindByID retrieves a course by ID
func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Course, error) {
	var course entities.Course
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&course).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// Update updates an existing course
func (r *courseRepository) Update(ctx context.Context, course *entities.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete deletes a course
func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Course{}, id).Error
}

// List retrieves courses with filters and pagination
func (r *courseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*entities.Course, int64, error) {
	var courses []*entities.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Course{})

	if filters.OwnerID != nil {
		query = query.Where("owner_id = ?", *filters.OwnerID)
	}
	if filters.IsArchived != nil {
		query = query.Where("is_archived = ?", *filters.IsArchived)
	}
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
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

	err := query.Find(&courses).Error
	return courses, total, err
}

// FindByOwnerID retrieves all courses owned by a user
func (r *courseRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entities.Course, error) {
	var courses []*entities.Course
	query := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&courses).Error
	return courses, err
}

// Enroll adds a student to a course
func (r *courseRepository) Enroll(ctx context.Context, courseID, studentID uuid.UUID) error {
	enrollment := &entities.Enrollment{
		CourseID:  courseID,
		StudentID: studentID,
	}
	return r.db.WithContext(ctx).Create(enrollment).Error
}

// Unenroll removes a student from a course
func (r *courseRepository) Unenroll(ctx context.Context, courseID, studentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Delete(&entities.Enrollment{}).
		Error
}

// IsEnrolled checks whether a student is enrolled in a course
func (r *courseRepository) IsEnrolled(ctx context.Context, courseID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Enrollment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

// FindEnrolledStudents retrieves the roster for a course
func (r *courseRepository) FindEnrolledStudents(ctx context.Context, courseID uuid.UUID) ([]*entities.Student, error) {
	var students []*entities.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.student_id = students.id").
		Where("enrollments.course_id = ?", courseID).
		Order("students.full_name ASC").
		Find(&students).Error
	return students, err
}
