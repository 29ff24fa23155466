package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
)

// engagementRepository implements the EngagementRepository interface
type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *gorm.DB) repositories.EngagementRepository {
	return &engagementRepository{db: db}
}

// Create creates a new engagement record
func (r *engagementRepository) Create(ctx context.Context, record *entities.EngagementRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByLectureAndStudent retrieves the record for one student in one lecture
func (r *engagementRepository) FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.EngagementRecord, error) {
	var record entities.EngagementRecord
	err := r.db.WithContext(ctx).
		Where("lecture_id = ? AND student_id = ?", lectureID, studentID).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrEngagementNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Update updates an existing record. Last-write-wins at the record level:
// the sole writer is the instructor UI issuing one action at a time.
func (r *engagementRepository) Update(ctx context.Context, record *entities.EngagementRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// FindByLectureID retrieves all engagement records for a lecture
func (r *engagementRepository) FindByLectureID(ctx context.Context, lectureID uuid.UUID) ([]*entities.EngagementRecord, error) {
	var records []*entities.EngagementRecord
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("lecture_id = ?", lectureID).
		Order("updated_at DESC").
		Find(&records).Error
	return records, err
}

// FindTopByLectureID retrieves the leaderboard, sorted by focus score descending
func (r *engagementRepository) FindTopByLectureID(ctx context.Context, lectureID uuid.UUID, limit int) ([]*entities.EngagementRecord, error) {
	var records []*entities.EngagementRecord
	query := r.db.WithContext(ctx).
		Preload("Student").
		Where("lecture_id = ?", lectureID).
		Order("focus_score DESC, hand_raised_count DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&records).Error
	return records, err
}
