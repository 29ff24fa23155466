package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// Service manages per-lecture attendance records
type Service struct {
	attendanceRepo repositories.AttendanceRepository
	lectureRepo    repositories.LectureRepository
	studentRepo    repositories.StudentRepository
	courseRepo     repositories.CourseRepository
	gracePeriod    time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates a new attendance service. gracePeriod is how long after
// lecture start a first sighting still counts as PRESENT rather than LATE.
func NewService(
	attendanceRepo repositories.AttendanceRepository,
	lectureRepo repositories.LectureRepository,
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
	gracePeriod time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		lectureRepo:    lectureRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		gracePeriod:    gracePeriod,
		logger:         logger,
		now:            time.Now,
	}
}

// MarkSeen records the first sighting of a student in a lecture. Later
// sightings leave the record untouched: join time is first-seen only.
func (s *Service) MarkSeen(ctx context.Context, lecture *entities.Lecture, studentID uuid.UUID, seenAt time.Time) error {
	existing, err := s.attendanceRepo.FindByLectureAndStudent(ctx, lecture.ID, studentID)
	if err != nil && err != entities.ErrAttendanceNotFound {
		return err
	}
	if existing != nil && existing.JoinTime != nil {
		return nil
	}

	status := entities.AttendancePresent
	if lecture.StartedAt != nil && seenAt.After(lecture.StartedAt.Add(s.gracePeriod)) {
		status = entities.AttendanceLate
	}

	record := &entities.AttendanceRecord{
		LectureID: lecture.ID,
		StudentID: studentID,
		Status:    status,
		JoinTime:  &seenAt,
	}
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return err
	}

	s.logger.Info("attendance marked",
		zap.String("lecture_id", lecture.ID.String()),
		zap.String("student_id", studentID.String()),
		zap.String("status", string(status)))
	return nil
}

// Record upserts one attendance record from the instructor UI
func (s *Service) Record(ctx context.Context, lectureID, studentID uuid.UUID, status entities.AttendanceStatus, joinTime, leaveTime *time.Time, notes *string) (*entities.AttendanceRecord, error) {
	if !status.IsValid() {
		return nil, usecaseErrors.ErrInvalidInput
	}
	if _, err := s.lectureRepo.FindByID(ctx, lectureID); err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, err
	}

	record := &entities.AttendanceRecord{
		LectureID: lectureID,
		StudentID: studentID,
		Status:    status,
		JoinTime:  joinTime,
		LeaveTime: leaveTime,
		Notes:     notes,
	}
	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// BulkRecord upserts a batch of records for one lecture in a single transaction
func (s *Service) BulkRecord(ctx context.Context, lectureID uuid.UUID, records []*entities.AttendanceRecord) error {
	if _, err := s.lectureRepo.FindByID(ctx, lectureID); err != nil {
		return err
	}
	for _, record := range records {
		if !record.Status.IsValid() {
			return usecaseErrors.ErrInvalidInput
		}
		record.LectureID = lectureID
	}
	return s.attendanceRepo.BulkUpsert(ctx, records)
}

// ListByLecture returns all attendance records for a lecture
func (s *Service) ListByLecture(ctx context.Context, lectureID uuid.UUID) ([]*entities.AttendanceRecord, error) {
	if _, err := s.lectureRepo.FindByID(ctx, lectureID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.FindByLectureID(ctx, lectureID)
}

// Summary returns per-status counts for a lecture
func (s *Service) Summary(ctx context.Context, lectureID uuid.UUID) (map[entities.AttendanceStatus]int64, error) {
	if _, err := s.lectureRepo.FindByID(ctx, lectureID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.CountByStatus(ctx, lectureID)
}

// Finalize commits attendance when a lecture ends: every seen student gets
// a leave time, and every enrolled student never seen gets an ABSENT row.
func (s *Service) Finalize(ctx context.Context, lecture *entities.Lecture, endedAt time.Time) error {
	if err := s.attendanceRepo.SetLeaveTimes(ctx, lecture.ID, endedAt); err != nil {
		return err
	}

	enrolled, err := s.courseRepo.FindEnrolledStudents(ctx, lecture.CourseID)
	if err != nil {
		return err
	}
	existing, err := s.attendanceRepo.FindByLectureID(ctx, lecture.ID)
	if err != nil {
		return err
	}

	seen := make(map[uuid.UUID]bool, len(existing))
	for _, record := range existing {
		seen[record.StudentID] = true
	}

	var absent []*entities.AttendanceRecord
	for _, student := range enrolled {
		if seen[student.ID] {
			continue
		}
		absent = append(absent, &entities.AttendanceRecord{
			LectureID: lecture.ID,
			StudentID: student.ID,
			Status:    entities.AttendanceAbsent,
		})
	}
	if err := s.attendanceRepo.BulkUpsert(ctx, absent); err != nil {
		return err
	}

	s.logger.Info("attendance finalized",
		zap.String("lecture_id", lecture.ID.String()),
		zap.Int("seen", len(existing)),
		zap.Int("absent", len(absent)))
	return nil
}
