package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/classpulse/backend/internal/domain/entities"
)

// StudentRepository defines the interface for roster data access
type StudentRepository interface {
	// Create creates a new student
	Create(ctx context.Context, student *entities.Student) error

	// FindByID retrieves a student by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Student, error)

	// FindByPersonKey retrieves a student by detector identity
	FindByPersonKey(ctx context.Context, personKey string) (*entities.Student, error)

	// Update updates an existing student
	Update(ctx context.Context, student *entities.Student) error

	// Delete deletes a student
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a paginated list of students, optionally filtered by search term
	List(ctx context.Context, search string, limit, offset int) ([]*entities.Student, int64, error)
}
