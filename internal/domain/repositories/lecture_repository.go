package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/classpulse/backend/internal/domain/entities"
)

// LectureRepository defines the interface for lecture data access
type LectureRepository interface {
	// Create creates a new lecture
	Create(ctx context.Context, lecture *entities.Lecture) error

	// FindByID retrieves a lecture by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Lecture, error)

	// Update updates an existing lecture
	Update(ctx context.Context, lecture *entities.Lecture) error

	// List retrieves lectures with filters and pagination
	List(ctx context.Context, filters LectureFilters) ([]*entities.Lecture, int64, error)

	// FindActiveByCourseID retrieves the currently live lecture of a course, if any
	FindActiveByCourseID(ctx context.Context, courseID uuid.UUID) (*entities.Lecture, error)

	// UpdateStatus updates the lecture status
	UpdateStatus(ctx context.Context, lectureID uuid.UUID, status entities.LectureStatus) error

	// DeleteCascade deletes a lecture together with its attendance and
	// engagement rows inside a single transaction (all-or-nothing)
	DeleteCascade(ctx context.Context, lectureID uuid.UUID) error
}

// LectureFilters represents filter options for listing lectures
type LectureFilters struct {
	CourseID  *uuid.UUID
	Status    *entities.LectureStatus
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
	SortBy    string // "scheduled_at", "created_at", "title"
	SortOrder string // "asc", "desc"
}
