package student

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// Service manages roster students. Students are identified to the detector
// by their person key, so key uniqueness is enforced here.
type Service struct {
	studentRepo repositories.StudentRepository
	logger      *zap.Logger
}

// NewService creates a new student service
func NewService(studentRepo repositories.StudentRepository, logger *zap.Logger) *Service {
	return &Service{studentRepo: studentRepo, logger: logger}
}

// CreateInput holds the fields for creating a student
type CreateInput struct {
	FullName  string
	Email     *string
	PersonKey string
	AvatarURL *string
}

// Create registers a new student
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Student, error) {
	if input.FullName == "" || input.PersonKey == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}

	if _, err := s.studentRepo.FindByPersonKey(ctx, input.PersonKey); err == nil {
		return nil, usecaseErrors.ErrPersonKeyTaken
	} else if err != entities.ErrStudentNotFound {
		return nil, err
	}

	student := &entities.Student{
		FullName:  input.FullName,
		Email:     input.Email,
		PersonKey: input.PersonKey,
		AvatarURL: input.AvatarURL,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student created",
		zap.String("student_id", student.ID.String()),
		zap.String("person_key", student.PersonKey))
	return student, nil
}

// Get retrieves a student by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	return s.studentRepo.FindByID(ctx, id)
}

// UpdateInput holds the updatable student fields
type UpdateInput struct {
	FullName  *string
	Email     *string
	PersonKey *string
	AvatarURL *string
}

// Update edits a student
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PersonKey != nil && *input.PersonKey != student.PersonKey {
		existing, err := s.studentRepo.FindByPersonKey(ctx, *input.PersonKey)
		if err == nil && existing.ID != id {
			return nil, usecaseErrors.ErrPersonKeyTaken
		}
		if err != nil && err != entities.ErrStudentNotFound {
			return nil, err
		}
		student.PersonKey = *input.PersonKey
	}
	if input.FullName != nil {
		student.FullName = *input.FullName
	}
	if input.Email != nil {
		student.Email = input.Email
	}
	if input.AvatarURL != nil {
		student.AvatarURL = input.AvatarURL
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.studentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.studentRepo.Delete(ctx, id)
}

// List returns a paginated student list with an optional search term
func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*entities.Student, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.studentRepo.List(ctx, search, limit, offset)
}
