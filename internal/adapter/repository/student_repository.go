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

// studentRepository implements the StudentRepository interface
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

// Create creates a new student
func (r *studentRepository) Create(ctx context.Context, student *entities.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// FindByID retrieves a student by ID
func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	var student entities.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// FindByPersonKey retrieves a student by detector identity
func (r *studentRepository) FindByPersonKey(ctx context.Context, personKey string) (*entities.Student, error) {
	var student entities.Student
	err := r.db.WithContext(ctx).Where("person_key = ?", personKey).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// Update updates an existing student
func (r *studentRepository) Update(ctx context.Context, student *entities.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// Delete deletes a student
func (r *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Student{}, id).Error
}

// List returns a paginated list of students
func (r *studentRepository) List(ctx context.Context, search string, limit, offset int) ([]*entities.Student, int64, error) {
	var students []*entities.Student
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Student{})
	if search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", search)
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("full_name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&students).Error
	return students, total, err
}
