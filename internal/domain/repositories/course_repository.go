package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/classpulse/backend/internal/domain/entities"
)

// CourseRepository defines the interface for course data access
type CourseRepository interface {
	// Create creates a new course
	Create(ctx context.Context, course *entities.Course) error

	// FindByID retrieves a course by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Course, error)

	// Update updates an existing course
	Update(ctx context.Context, course *entities.Course) error

	// Delete deletes a course
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves courses with filters and pagination
	List(ctx context.Context, filters CourseFilters) ([]*entities.Course, int64, error)

	// FindByOwnerID retrieves all courses owned by a user
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entities.Course, error)

	// Enroll adds a student to a course
	Enroll(ctx context.Context, courseID, studentID uuid.UUID) error

	// Unenroll removes a student from a course
	Unenroll(ctx context.Context, courseID, studentID uuid.UUID) error

	// IsEnrolled checks whether a student is enrolled in a course
	IsEnrolled(ctx context.Context, courseID, studentID uuid.UUID) (bool, error)

	// FindEnrolledStudents retrieves the roster for a course
	FindEnrolledStudents(ctx context.Context, courseID uuid.UUID) ([]*entities.Student, error)
}

// CourseFilters represents filter options for listing courses
type CourseFilters struct {
	OwnerID    *uuid.UUID
	Search     string // Search in name, code
	IsArchived *bool
	Limit      int
	Offset     int
	SortBy     string // "created_at", "name", "code"
	SortOrder  string // "asc", "desc"
}
