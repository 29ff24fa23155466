package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/classpulse/backend/internal/domain/entities"
)

// EngagementRepository defines the interface for engagement data access
type EngagementRepository interface {
	// Create creates a new engagement record
	Create(ctx context.Context, record *entities.EngagementRecord) error

	// FindByLectureAndStudent retrieves the record for one student in one lecture
	FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.EngagementRecord, error)

	// Update updates an existing record (last-write-wins at record level)
	Update(ctx context.Context, record *entities.EngagementRecord) error

	// FindByLectureID retrieves all engagement records for a lecture
	FindByLectureID(ctx context.Context, lectureID uuid.UUID) ([]*entities.EngagementRecord, error)

	// FindTopByLectureID retrieves the leaderboard, sorted by focus score descending
	FindTopByLectureID(ctx context.Context, lectureID uuid.UUID, limit int) ([]*entities.EngagementRecord, error)
}
