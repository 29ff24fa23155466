package live

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/cache"
	"github.com/classpulse/backend/internal/usecase/attendance"
	"github.com/classpulse/backend/internal/usecase/engagement"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
	"github.com/classpulse/backend/pkg/config"
	"github.com/classpulse/backend/pkg/detection"
)

type pipeLectureRepo struct {
	lecture *entities.Lecture
}

func (f *pipeLectureRepo) Create(ctx context.Context, lecture *entities.Lecture) error { return nil }
func (f *pipeLectureRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	if f.lecture == nil || f.lecture.ID != id {
		return nil, entities.ErrLectureNotFound
	}
	copied := *f.lecture
	return &copied, nil
}
func (f *pipeLectureRepo) Update(ctx context.Context, lecture *entities.Lecture) error { return nil }
func (f *pipeLectureRepo) List(ctx context.Context, filters repositories.LectureFilters) ([]*entities.Lecture, int64, error) {
	return nil, 0, nil
}
func (f *pipeLectureRepo) FindActiveByCourseID(ctx context.Context, courseID uuid.UUID) (*entities.Lecture, error) {
	return nil, entities.ErrLectureNotFound
}
func (f *pipeLectureRepo) UpdateStatus(ctx context.Context, lectureID uuid.UUID, status entities.LectureStatus) error {
	return nil
}
func (f *pipeLectureRepo) DeleteCascade(ctx context.Context, lectureID uuid.UUID) error { return nil }

type pipeStudentRepo struct {
	byPersonKey map[string]*entities.Student
}

func (f *pipeStudentRepo) Create(ctx context.Context, student *entities.Student) error { return nil }
func (f *pipeStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	return nil, entities.ErrStudentNotFound
}
func (f *pipeStudentRepo) FindByPersonKey(ctx context.Context, personKey string) (*entities.Student, error) {
	student, ok := f.byPersonKey[personKey]
	if !ok {
		return nil, entities.ErrStudentNotFound
	}
	return student, nil
}
func (f *pipeStudentRepo) Update(ctx context.Context, student *entities.Student) error { return nil }
func (f *pipeStudentRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }
func (f *pipeStudentRepo) List(ctx context.Context, search string, limit, offset int) ([]*entities.Student, int64, error) {
	return nil, 0, nil
}

type pipeAttendanceRepo struct {
	records map[uuid.UUID]*entities.AttendanceRecord
	upserts int
}

func (f *pipeAttendanceRepo) Upsert(ctx context.Context, record *entities.AttendanceRecord) error {
	f.upserts++
	f.records[record.StudentID] = record
	return nil
}
func (f *pipeAttendanceRepo) FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.AttendanceRecord, error) {
	record, ok := f.records[studentID]
	if !ok {
		return nil, entities.ErrAttendanceNotFound
	}
	return record, nil
}
func (f *pipeAttendanceRepo) FindByLectureID(ctx context.Context, lectureID uuid.UUID) ([]*entities.AttendanceRecord, error) {
	return nil, nil
}
func (f *pipeAttendanceRepo) FindByStudentID(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entities.AttendanceRecord, error) {
	return nil, nil
}
func (f *pipeAttendanceRepo) BulkUpsert(ctx context.Context, records []*entities.AttendanceRecord) error {
	return nil
}
func (f *pipeAttendanceRepo) SetLeaveTimes(ctx context.Context, lectureID uuid.UUID, leaveTime time.Time) error {
	return nil
}
func (f *pipeAttendanceRepo) CountByStatus(ctx context.Context, lectureID uuid.UUID) (map[entities.AttendanceStatus]int64, error) {
	return nil, nil
}

type pipeEngagementRepo struct {
	records map[uuid.UUID]*entities.EngagementRecord
}

func (f *pipeEngagementRepo) Create(ctx context.Context, record *entities.EngagementRecord) error {
	record.ID = uuid.New()
	f.records[record.StudentID] = record
	return nil
}
func (f *pipeEngagementRepo) FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.EngagementRecord, error) {
	record, ok := f.records[studentID]
	if !ok {
		return nil, entities.ErrEngagementNotFound
	}
	return record, nil
}
func (f *pipeEngagementRepo) Update(ctx context.Context, record *entities.EngagementRecord) error {
	f.records[record.StudentID] = record
	return nil
}
func (f *pipeEngagementRepo) FindByLectureID(ctx context.Context, lectureID uuid.UUID) ([]*entities.EngagementRecord, error) {
	return nil, nil
}
func (f *pipeEngagementRepo) FindTopByLectureID(ctx context.Context, lectureID uuid.UUID, limit int) ([]*entities.EngagementRecord, error) {
	return nil, nil
}

type pipeline struct {
	svc        *Service
	lecture    *entities.Lecture
	ada        *entities.Student
	attendance *pipeAttendanceRepo
	engagement *pipeEngagementRepo
}

// newPipeline wires the live service to fake repositories with one live
// lecture that started startedAgo in the past and one enrolled student
// known to the detector as "ada".
func newPipeline(startedAgo time.Duration) *pipeline {
	start := time.Now().Add(-startedAgo)
	lecture := &entities.Lecture{
		ID:        uuid.New(),
		CourseID:  uuid.New(),
		Status:    entities.LectureStatusActive,
		StartedAt: &start,
	}
	ada := &entities.Student{ID: uuid.New(), FullName: "Ada Lovelace", PersonKey: "ada"}

	attendanceRepo := &pipeAttendanceRepo{records: map[uuid.UUID]*entities.AttendanceRecord{}}
	engagementRepo := &pipeEngagementRepo{records: map[uuid.UUID]*entities.EngagementRecord{}}
	lectureRepo := &pipeLectureRepo{lecture: lecture}
	studentRepo := &pipeStudentRepo{byPersonKey: map[string]*entities.Student{"ada": ada}}

	attendanceSvc := attendance.NewService(attendanceRepo, nil, nil, nil, 10*time.Minute, zap.NewNop())
	engagementSvc := engagement.NewService(engagementRepo, nil, nil, cache.NewMemoryStore(), zap.NewNop())

	cfg := &config.LiveConfig{
		RelayCap:         50,
		LectureCap:       1000,
		PollLimit:        100,
		SessionTTL:       30 * time.Minute,
		SweepInterval:    time.Minute,
		FrameTickSeconds: 5,
	}
	svc := NewService(cfg, nil, lectureRepo, studentRepo, attendanceSvc, engagementSvc, zap.NewNop())

	return &pipeline{
		svc:        svc,
		lecture:    lecture,
		ada:        ada,
		attendance: attendanceRepo,
		engagement: engagementRepo,
	}
}

func frameWith(persons ...detection.Person) *detection.Frame {
	return &detection.Frame{CapturedAt: time.Now(), Persons: persons}
}

func adaPerson(attention string) detection.Person {
	return detection.Person{
		PersonID:          "ada",
		Name:              "Ada Lovelace",
		RecognitionStatus: detection.RecognitionKnown,
		Attention:         attention,
		Confidence:        0.93,
	}
}

func TestIngestFrameFeedsAttendanceAndEngagement(t *testing.T) {
	p := newPipeline(30 * time.Minute)

	events, err := p.svc.IngestFrame(context.Background(), "sess-1", p.lecture.ID, frameWith(adaPerson("focused")))
	if err != nil {
		t.Fatalf("IngestFrame: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("no events relayed for a joining student")
	}

	record := p.attendance.records[p.ada.ID]
	if record == nil {
		t.Fatal("no attendance record for the sighted student")
	}
	// First seen 30 minutes after start, grace is 10
	if record.Status != entities.AttendanceLate {
		t.Fatalf("attendance status = %s, want %s", record.Status, entities.AttendanceLate)
	}
	if record.JoinTime == nil {
		t.Fatal("attendance join time not set")
	}

	eng := p.engagement.records[p.ada.ID]
	if eng == nil {
		t.Fatal("no engagement record for the sighted student")
	}
	if eng.AttentionSeconds != 5 {
		t.Fatalf("attention seconds = %d, want 5", eng.AttentionSeconds)
	}
	if eng.RecognitionStatus != detection.RecognitionKnown {
		t.Fatalf("recognition status = %s, want %s", eng.RecognitionStatus, detection.RecognitionKnown)
	}
}

func TestIngestFrameSecondSightingDoesNotRewriteAttendance(t *testing.T) {
	p := newPipeline(5 * time.Minute)
	ctx := context.Background()

	if _, err := p.svc.IngestFrame(ctx, "sess-1", p.lecture.ID, frameWith(adaPerson("focused"))); err != nil {
		t.Fatalf("first IngestFrame: %v", err)
	}
	events, err := p.svc.IngestFrame(ctx, "sess-1", p.lecture.ID, frameWith(adaPerson("unfocused")))
	if err != nil {
		t.Fatalf("second IngestFrame: %v", err)
	}

	// Attendance was written once; the focus change only touches engagement
	if p.attendance.upserts != 1 {
		t.Fatalf("attendance upserts = %d, want 1", p.attendance.upserts)
	}
	if p.attendance.records[p.ada.ID].Status != entities.AttendancePresent {
		t.Fatalf("attendance status = %s, want %s", p.attendance.records[p.ada.ID].Status, entities.AttendancePresent)
	}

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1 focus-change event", len(events))
	}

	eng := p.engagement.records[p.ada.ID]
	if eng.AttentionSeconds != 5 {
		t.Fatalf("attention seconds = %d, want 5 (unfocused tick adds nothing)", eng.AttentionSeconds)
	}
	if eng.DistractionCount != 1 {
		t.Fatalf("distraction count = %d, want 1", eng.DistractionCount)
	}
}

func TestIngestFrameRejectsNonLiveLectures(t *testing.T) {
	ctx := context.Background()

	p := newPipeline(time.Minute)
	p.lecture.Status = entities.LectureStatusEnded
	if _, err := p.svc.IngestFrame(ctx, "sess-1", p.lecture.ID, frameWith()); err != usecaseErrors.ErrLectureEnded {
		t.Fatalf("ended lecture: err = %v, want %v", err, usecaseErrors.ErrLectureEnded)
	}

	p = newPipeline(time.Minute)
	p.lecture.Status = entities.LectureStatusScheduled
	if _, err := p.svc.IngestFrame(ctx, "sess-1", p.lecture.ID, frameWith()); err != usecaseErrors.ErrLectureNotActive {
		t.Fatalf("scheduled lecture: err = %v, want %v", err, usecaseErrors.ErrLectureNotActive)
	}
}
