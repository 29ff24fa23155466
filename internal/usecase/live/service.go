package live

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/usecase/attendance"
	"github.com/classpulse/backend/internal/usecase/engagement"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
	"github.com/classpulse/backend/pkg/config"
	"github.com/classpulse/backend/pkg/detection"
)

// Service is the live pipeline: detection frames in, activity events out,
// with attendance join times and the continuous engagement signal fed as
// side effects. It owns two relay stores: the session relay bridging the
// instructor and presentation windows, and the per-lecture event feed.
type Service struct {
	relay       *Relay
	lectureFeed *Relay
	tracker     *tracker
	detector    detection.Client
	lectureRepo repositories.LectureRepository
	studentRepo repositories.StudentRepository
	attendance  *attendance.Service
	engagement  *engagement.Service
	tickSeconds int
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates the live service and its relay stores
func NewService(
	cfg *config.LiveConfig,
	detector detection.Client,
	lectureRepo repositories.LectureRepository,
	studentRepo repositories.StudentRepository,
	attendanceService *attendance.Service,
	engagementService *engagement.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		relay: NewRelay(RelayOptions{
			Cap:       cfg.RelayCap,
			PollLimit: cfg.PollLimit,
			TTL:       cfg.SessionTTL,
		}, logger),
		lectureFeed: NewRelay(RelayOptions{
			Cap:       cfg.LectureCap,
			PollLimit: cfg.PollLimit,
			TTL:       cfg.SessionTTL,
		}, logger),
		tracker:     newTracker(),
		detector:    detector,
		lectureRepo: lectureRepo,
		studentRepo: studentRepo,
		attendance:  attendanceService,
		engagement:  engagementService,
		tickSeconds: cfg.FrameTickSeconds,
		logger:      logger,
		now:         time.Now,
	}
}

// StartSweepers runs the TTL sweepers for both stores until ctx is cancelled
func (s *Service) StartSweepers(ctx context.Context, interval, ttl time.Duration) {
	s.relay.StartSweeper(ctx, interval)
	s.lectureFeed.StartSweeper(ctx, interval)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tracker.sweep(s.now().Add(-ttl))
			}
		}
	}()
}

// PushActivities appends client-generated events to the session relay.
// Simulated batches come from the instructor window's demo mode; they are
// relayed exactly like real ones but flagged in the log so a session full
// of synthetic events is recognizable.
func (s *Service) PushActivities(sessionID, lectureID string, events []entities.ActivityEvent, simulated bool) error {
	if lectureID == "" {
		return usecaseErrors.ErrMissingLectureID
	}
	if simulated {
		s.logger.Info("relaying simulated activity batch",
			zap.String("session_id", sessionID),
			zap.Int("events", len(events)))
	}
	_, err := s.relay.Append(sessionID, lectureID, events)
	return err
}

// PollActivities returns relayed events for a session, newest-first
func (s *Service) PollActivities(sessionID string) []entities.ActivityEvent {
	return s.relay.Poll(sessionID, nil)
}

// PushLectureEvent appends one event to the per-lecture feed, returning it
// with server-assigned defaults filled in
func (s *Service) PushLectureEvent(lectureID string, event entities.ActivityEvent) (entities.ActivityEvent, error) {
	stored, err := s.lectureFeed.Append(lectureID, lectureID, []entities.ActivityEvent{event})
	if err != nil {
		return entities.ActivityEvent{}, err
	}
	return stored[0], nil
}

// PollLectureEvents returns the per-lecture feed, newest-first, optionally
// only events after since
func (s *Service) PollLectureEvents(lectureID string, since *time.Time) []entities.ActivityEvent {
	return s.lectureFeed.Poll(lectureID, since)
}

// CaptureFrame pulls one frame from the detection client and ingests it
func (s *Service) CaptureFrame(ctx context.Context, sessionID string, lectureID uuid.UUID) ([]entities.ActivityEvent, error) {
	frame, err := s.detector.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrDetectionUnavailable, err)
	}
	return s.IngestFrame(ctx, sessionID, lectureID, frame)
}

// IngestFrame runs one detection frame through the pipeline: normalize,
// diff against the session's previous frame, translate the delta into
// events, relay them, and feed attendance and engagement.
func (s *Service) IngestFrame(ctx context.Context, sessionID string, lectureID uuid.UUID, frame *detection.Frame) ([]entities.ActivityEvent, error) {
	if sessionID == "" {
		return nil, usecaseErrors.ErrMissingSessionID
	}

	lecture, err := s.lectureRepo.FindByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.Status == entities.LectureStatusEnded {
		return nil, usecaseErrors.ErrLectureEnded
	}
	if !lecture.IsLive() {
		return nil, usecaseErrors.ErrLectureNotActive
	}

	frameTime := frame.CapturedAt
	if frameTime.IsZero() {
		frameTime = s.now()
	}

	current, unknown := Normalize(frame)
	previous, prevUnknown := s.tracker.swap(sessionID, current, len(unknown), s.now())

	students := s.resolveStudents(ctx, current)
	resolver := func(personID string) (string, string) {
		if student, ok := students[personID]; ok {
			return student.ID.String(), student.FullName
		}
		return "", ""
	}

	events := Translate(current, previous, resolver)

	if len(unknown) > 0 && len(unknown) != prevUnknown {
		events = append(events, entities.ActivityEvent{
			Message: fmt.Sprintf("%d unrecognized face(s) in view", len(unknown)),
			Type:    entities.EventTypeInfo,
		})
	}

	stored, err := s.relay.Append(sessionID, lectureID.String(), events)
	if err != nil {
		return nil, err
	}
	if _, err := s.lectureFeed.Append(lectureID.String(), lectureID.String(), events); err != nil {
		return nil, err
	}

	s.feedAttendance(ctx, lecture, current, previous, students, frameTime)
	s.feedEngagement(ctx, lecture, frame, current, previous, students)

	return stored, nil
}

// EndSession drops the diffing state for a session, typically when the
// instructor window disconnects
func (s *Service) EndSession(sessionID string) {
	s.tracker.forget(sessionID)
}

// resolveStudents maps detector person ids to roster students. Persons
// without a roster entry are simply absent from the result.
func (s *Service) resolveStudents(ctx context.Context, current map[string]entities.PersonStatus) map[string]*entities.Student {
	students := make(map[string]*entities.Student, len(current))
	for personID := range current {
		student, err := s.studentRepo.FindByPersonKey(ctx, personID)
		if err != nil {
			if err != entities.ErrStudentNotFound {
				s.logger.Warn("student lookup failed",
					zap.String("person_id", personID), zap.Error(err))
			}
			continue
		}
		students[personID] = student
	}
	return students
}

// feedAttendance marks first sightings of enrolled students
func (s *Service) feedAttendance(ctx context.Context, lecture *entities.Lecture, current, previous map[string]entities.PersonStatus, students map[string]*entities.Student, frameTime time.Time) {
	for personID := range current {
		if _, wasPresent := previous[personID]; wasPresent {
			continue
		}
		student, ok := students[personID]
		if !ok {
			continue
		}
		if err := s.attendance.MarkSeen(ctx, lecture, student.ID, frameTime); err != nil {
			s.logger.Warn("attendance mark failed",
				zap.String("student_id", student.ID.String()), zap.Error(err))
		}
	}
}

// feedEngagement applies the continuous per-tick signal for each recognized
// student in the frame
func (s *Service) feedEngagement(ctx context.Context, lecture *entities.Lecture, frame *detection.Frame, current, previous map[string]entities.PersonStatus, students map[string]*entities.Student) {
	confidence := make(map[string]float64, len(frame.Persons))
	for _, p := range frame.Persons {
		confidence[p.PersonID] = p.Confidence
	}

	for personID, status := range current {
		student, ok := students[personID]
		if !ok {
			continue
		}
		prev, wasPresent := previous[personID]
		obs := engagement.Observation{
			Focused:           status.Attention == entities.AttentionFocused,
			FocusLost:         wasPresent && prev.Attention == entities.AttentionFocused && status.Attention == entities.AttentionUnfocused,
			TickSeconds:       s.tickSeconds,
			Confidence:        confidence[personID],
			RecognitionStatus: detection.RecognitionKnown,
		}
		if err := s.engagement.RecordObservation(ctx, lecture.ID, student.ID, obs); err != nil {
			s.logger.Warn("engagement observation failed",
				zap.String("student_id", student.ID.String()), zap.Error(err))
		}
	}
}
