package lecture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/usecase/attendance"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// EventSink receives lifecycle events for the per-lecture feed
type EventSink interface {
	PushLectureEvent(lectureID string, event entities.ActivityEvent) (entities.ActivityEvent, error)
}

// Service drives the lecture lifecycle: scheduled, active, paused, ended.
// Ending a lecture is the only transition with side effects beyond the
// status flip: it commits attendance and emits the deferred leave events.
type Service struct {
	lectureRepo repositories.LectureRepository
	courseRepo  repositories.CourseRepository
	attendance  *attendance.Service
	events      EventSink
	logger      *zap.Logger
}

// NewService creates a new lecture service
func NewService(
	lectureRepo repositories.LectureRepository,
	courseRepo repositories.CourseRepository,
	attendanceService *attendance.Service,
	events EventSink,
	logger *zap.Logger,
) *Service {
	return &Service{
		lectureRepo: lectureRepo,
		courseRepo:  courseRepo,
		attendance:  attendanceService,
		events:      events,
		logger:      logger,
	}
}

// CreateInput holds the fields for creating a lecture
type CreateInput struct {
	CourseID    uuid.UUID
	Title       string
	ScheduledAt *time.Time
	Metadata    datatypes.JSON
}

// Create schedules a new lecture
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Lecture, error) {
	if input.Title == "" {
		return nil, usecaseErrors.ErrInvalidInput
	}
	if _, err := s.courseRepo.FindByID(ctx, input.CourseID); err != nil {
		return nil, err
	}

	lecture := &entities.Lecture{
		CourseID:    input.CourseID,
		Title:       input.Title,
		Status:      entities.LectureStatusScheduled,
		ScheduledAt: input.ScheduledAt,
		Metadata:    input.Metadata,
	}
	if err := s.lectureRepo.Create(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

// Get retrieves a lecture by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	return s.lectureRepo.FindByID(ctx, id)
}

// List retrieves lectures with filters
func (s *Service) List(ctx context.Context, filters repositories.LectureFilters) ([]*entities.Lecture, int64, error) {
	return s.lectureRepo.List(ctx, filters)
}

// UpdateInput holds the updatable lecture fields
type UpdateInput struct {
	Title       *string
	ScheduledAt *time.Time
	Metadata    datatypes.JSON
}

// Update edits lecture metadata. Lifecycle fields are not touchable here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.Lecture, error) {
	lecture, err := s.lectureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		lecture.Title = *input.Title
	}
	if input.ScheduledAt != nil {
		lecture.ScheduledAt = input.ScheduledAt
	}
	if input.Metadata != nil {
		lecture.Metadata = input.Metadata
	}
	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

// Start activates a lecture. The scheduled time is advisory: starting early
// or late is allowed.
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	lecture, err := s.lectureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch lecture.Status {
	case entities.LectureStatusEnded:
		return nil, usecaseErrors.ErrLectureEnded
	case entities.LectureStatusActive:
		return nil, usecaseErrors.ErrLectureAlreadyLive
	}

	lecture.Start()
	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}

	s.logger.Info("lecture started", zap.String("lecture_id", id.String()))
	s.emit(lecture.ID, entities.ActivityEvent{
		Message: fmt.Sprintf("Lecture %q started", lecture.Title),
		Type:    entities.EventTypeInfo,
	})
	return lecture, nil
}

// Pause suspends an active lecture. The relay and scoring stay live; only
// the elapsed-time counter stops.
func (s *Service) Pause(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	lecture, err := s.lectureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lecture.Status != entities.LectureStatusActive {
		return nil, usecaseErrors.ErrInvalidLectureState
	}

	lecture.Pause()
	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

// Resume reactivates a paused lecture
func (s *Service) Resume(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	lecture, err := s.lectureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lecture.Status != entities.LectureStatusPaused {
		return nil, usecaseErrors.ErrLectureNotPaused
	}

	lecture.Resume()
	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

// End closes a lecture: status flip, attendance commit, and the deferred
// leave events for every student who was seen. Failures after the status
// flip are logged but do not roll it back; ending is not retried.
func (s *Service) End(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	lecture, err := s.lectureRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lecture.IsLive() {
		return nil, usecaseErrors.ErrInvalidLectureState
	}

	lecture.End()
	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}

	endedAt := *lecture.EndedAt
	if err := s.attendance.Finalize(ctx, lecture, endedAt); err != nil {
		s.logger.Error("attendance finalize failed",
			zap.String("lecture_id", id.String()), zap.Error(err))
		return lecture, nil
	}

	records, err := s.attendance.ListByLecture(ctx, id)
	if err != nil {
		s.logger.Error("attendance list failed",
			zap.String("lecture_id", id.String()), zap.Error(err))
		return lecture, nil
	}
	for _, record := range records {
		if record.JoinTime == nil {
			continue
		}
		name := record.StudentID.String()
		if record.Student != nil {
			name = record.Student.FullName
		}
		s.emit(lecture.ID, entities.ActivityEvent{
			Message:     fmt.Sprintf("%s left the session", name),
			Type:        entities.EventTypeInfo,
			StudentID:   record.StudentID.String(),
			StudentName: name,
			ActionType:  entities.ActionLeave,
		})
	}
	s.emit(lecture.ID, entities.ActivityEvent{
		Message: fmt.Sprintf("Lecture %q ended", lecture.Title),
		Type:    entities.EventTypeInfo,
	})

	s.logger.Info("lecture ended",
		zap.String("lecture_id", id.String()),
		zap.Int("duration_minutes", lecture.DurationMinutes))
	return lecture, nil
}

// Delete removes a lecture with its attendance and engagement rows in one
// transaction
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.lectureRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("lecture deleted", zap.String("lecture_id", id.String()))
	return nil
}

func (s *Service) emit(lectureID uuid.UUID, event entities.ActivityEvent) {
	if s.events == nil {
		return
	}
	if _, err := s.events.PushLectureEvent(lectureID.String(), event); err != nil {
		s.logger.Warn("lecture event push failed",
			zap.String("lecture_id", lectureID.String()), zap.Error(err))
	}
}
