package course

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// Service manages courses and their rosters
type Service struct {
	courseRepo  repositories.CourseRepository
	studentRepo repositories.StudentRepository
	userRepo    repositories.UserRepository
	logger      *zap.Logger
}

// NewService creates a new course service
func NewService(
	courseRepo repositories.CourseRepository,
	studentRepo repositories.StudentRepository,
	userRepo repositories.UserRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateInput holds the fields for creating a course
type CreateInput struct {
	OwnerID     uuid.UUID
	Name        string
	Code        string
	Description *string
	Semester    *string
	Settings    datatypes.JSON
}

// Create creates a course owned by the given user
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Course, error) {
	owner, err := s.userRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if !owner.CanManageCourses() {
		return nil, usecaseErrors.ErrForbidden
	}

	course := &entities.Course{
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		Semester:    input.Semester,
		Settings:    input.Settings,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created",
		zap.String("course_id", course.ID.String()),
		zap.String("code", course.Code))
	return course, nil
}

// Get retrieves a course by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Course, error) {
	return s.courseRepo.FindByID(ctx, id)
}

// List retrieves courses with filters
func (s *Service) List(ctx context.Context, filters repositories.CourseFilters) ([]*entities.Course, int64, error) {
	return s.courseRepo.List(ctx, filters)
}

// UpdateInput holds the updatable course fields
type UpdateInput struct {
	Name        *string
	Code        *string
	Description *string
	Semester    *string
	IsArchived  *bool
	Settings    datatypes.JSON
}

// Update edits a course. Only the owner or an admin may edit.
func (s *Service) Update(ctx context.Context, userID, courseID uuid.UUID, input UpdateInput) (*entities.Course, error) {
	course, err := s.authorize(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		course.Name = *input.Name
	}
	if input.Code != nil {
		course.Code = *input.Code
	}
	if input.Description != nil {
		course.Description = input.Description
	}
	if input.Semester != nil {
		course.Semester = input.Semester
	}
	if input.IsArchived != nil {
		course.IsArchived = *input.IsArchived
	}
	if input.Settings != nil {
		course.Settings = input.Settings
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course. Only the owner or an admin may delete.
func (s *Service) Delete(ctx context.Context, userID, courseID uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, courseID); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, courseID)
}

// Enroll adds a student to the course roster
func (s *Service) Enroll(ctx context.Context, userID, courseID, studentID uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, courseID); err != nil {
		return err
	}
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return err
	}

	enrolled, err := s.courseRepo.IsEnrolled(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if enrolled {
		return usecaseErrors.ErrAlreadyEnrolled
	}
	return s.courseRepo.Enroll(ctx, courseID, studentID)
}

// Unenroll removes a student from the course roster
func (s *Service) Unenroll(ctx context.Context, userID, courseID, studentID uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, courseID); err != nil {
		return err
	}

	enrolled, err := s.courseRepo.IsEnrolled(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if !enrolled {
		return usecaseErrors.ErrNotEnrolled
	}
	return s.courseRepo.Unenroll(ctx, courseID, studentID)
}

// Roster returns the students enrolled in a course
func (s *Service) Roster(ctx context.Context, courseID uuid.UUID) ([]*entities.Student, error) {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.FindEnrolledStudents(ctx, courseID)
}

// authorize loads the course and checks write access for the user
func (s *Service) authorize(ctx context.Context, userID, courseID uuid.UUID) (*entities.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != entities.RoleAdmin && !course.IsOwnedBy(userID) {
		return nil, usecaseErrors.ErrNotCourseOwner
	}
	return course, nil
}
