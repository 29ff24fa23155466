package lecture

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/usecase/attendance"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

type fakeLectureRepo struct {
	lectures map[uuid.UUID]*entities.Lecture
	deleted  []uuid.UUID
}

func (f *fakeLectureRepo) Create(ctx context.Context, lecture *entities.Lecture) error {
	lecture.ID = uuid.New()
	f.lectures[lecture.ID] = lecture
	return nil
}
func (f *fakeLectureRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	lecture, ok := f.lectures[id]
	if !ok {
		return nil, entities.ErrLectureNotFound
	}
	copied := *lecture
	return &copied, nil
}
func (f *fakeLectureRepo) Update(ctx context.Context, lecture *entities.Lecture) error {
	f.lectures[lecture.ID] = lecture
	return nil
}
func (f *fakeLectureRepo) List(ctx context.Context, filters repositories.LectureFilters) ([]*entities.Lecture, int64, error) {
	return nil, 0, nil
}
func (f *fakeLectureRepo) FindActiveByCourseID(ctx context.Context, courseID uuid.UUID) (*entities.Lecture, error) {
	return nil, entities.ErrLectureNotFound
}
func (f *fakeLectureRepo) UpdateStatus(ctx context.Context, lectureID uuid.UUID, status entities.LectureStatus) error {
	f.lectures[lectureID].Status = status
	return nil
}
func (f *fakeLectureRepo) DeleteCascade(ctx context.Context, lectureID uuid.UUID) error {
	if _, ok := f.lectures[lectureID]; !ok {
		return entities.ErrLectureNotFound
	}
	delete(f.lectures, lectureID)
	f.deleted = append(f.deleted, lectureID)
	return nil
}

type fakeCourseRepo struct {
	courses  map[uuid.UUID]*entities.Course
	enrolled []*entities.Student
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *entities.Course) error { return nil }
func (f *fakeCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, entities.ErrCourseNotFound
	}
	return course, nil
}
func (f *fakeCourseRepo) Update(ctx context.Context, course *entities.Course) error { return nil }
func (f *fakeCourseRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (f *fakeCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*entities.Course, int64, error) {
	return nil, 0, nil
}
func (f *fakeCourseRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*entities.Course, error) {
	return nil, nil
}
func (f *fakeCourseRepo) Enroll(ctx context.Context, courseID, studentID uuid.UUID) error   { return nil }
func (f *fakeCourseRepo) Unenroll(ctx context.Context, courseID, studentID uuid.UUID) error { return nil }
func (f *fakeCourseRepo) IsEnrolled(ctx context.Context, courseID, studentID uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeCourseRepo) FindEnrolledStudents(ctx context.Context, courseID uuid.UUID) ([]*entities.Student, error) {
	return f.enrolled, nil
}

type fakeAttendanceRepo struct {
	records map[string]*entities.AttendanceRecord
}

func attKey(lectureID, studentID uuid.UUID) string {
	return lectureID.String() + "/" + studentID.String()
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record *entities.AttendanceRecord) error {
	f.records[attKey(record.LectureID, record.StudentID)] = record
	return nil
}
func (f *fakeAttendanceRepo) FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.AttendanceRecord, error) {
	record, ok := f.records[attKey(lectureID, studentID)]
	if !ok {
		return nil, entities.ErrAttendanceNotFound
	}
	return record, nil
}
func (f *fakeAttendanceRepo) FindByLectureID(ctx context.Context, lectureID uuid.UUID) ([]*entities.AttendanceRecord, error) {
	var out []*entities.AttendanceRecord
	for _, record := range f.records {
		if record.LectureID == lectureID {
			out = append(out, record)
		}
	}
	return out, nil
}
func (f *fakeAttendanceRepo) FindByStudentID(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*entities.AttendanceRecord, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) BulkUpsert(ctx context.Context, records []*entities.AttendanceRecord) error {
	for _, record := range records {
		f.records[attKey(record.LectureID, record.StudentID)] = record
	}
	return nil
}
func (f *fakeAttendanceRepo) SetLeaveTimes(ctx context.Context, lectureID uuid.UUID, leaveTime time.Time) error {
	for _, record := range f.records {
		if record.LectureID == lectureID && record.LeaveTime == nil && record.JoinTime != nil {
			t := leaveTime
			record.LeaveTime = &t
		}
	}
	return nil
}
func (f *fakeAttendanceRepo) CountByStatus(ctx context.Context, lectureID uuid.UUID) (map[entities.AttendanceStatus]int64, error) {
	counts := map[entities.AttendanceStatus]int64{}
	for _, record := range f.records {
		if record.LectureID == lectureID {
			counts[record.Status]++
		}
	}
	return counts, nil
}

type fakeStudentRepo struct{}

func (f *fakeStudentRepo) Create(ctx context.Context, student *entities.Student) error { return nil }
func (f *fakeStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	return &entities.Student{ID: id}, nil
}
func (f *fakeStudentRepo) FindByPersonKey(ctx context.Context, personKey string) (*entities.Student, error) {
	return nil, entities.ErrStudentNotFound
}
func (f *fakeStudentRepo) Update(ctx context.Context, student *entities.Student) error { return nil }
func (f *fakeStudentRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }
func (f *fakeStudentRepo) List(ctx context.Context, search string, limit, offset int) ([]*entities.Student, int64, error) {
	return nil, 0, nil
}

type capturingSink struct {
	events []entities.ActivityEvent
}

func (c *capturingSink) PushLectureEvent(lectureID string, event entities.ActivityEvent) (entities.ActivityEvent, error) {
	c.events = append(c.events, event)
	return event, nil
}

type fixture struct {
	svc        *Service
	lectures   *fakeLectureRepo
	attendance *fakeAttendanceRepo
	sink       *capturingSink
	courseID   uuid.UUID
}

func newFixture(enrolled []*entities.Student) *fixture {
	courseID := uuid.New()
	lectures := &fakeLectureRepo{lectures: map[uuid.UUID]*entities.Lecture{}}
	courses := &fakeCourseRepo{
		courses:  map[uuid.UUID]*entities.Course{courseID: {ID: courseID, Name: "Algorithms"}},
		enrolled: enrolled,
	}
	attendanceRepo := &fakeAttendanceRepo{records: map[string]*entities.AttendanceRecord{}}
	attendanceSvc := attendance.NewService(attendanceRepo, lectures, &fakeStudentRepo{}, courses, 10*time.Minute, zap.NewNop())
	sink := &capturingSink{}
	svc := NewService(lectures, courses, attendanceSvc, sink, zap.NewNop())
	return &fixture{svc: svc, lectures: lectures, attendance: attendanceRepo, sink: sink, courseID: courseID}
}

func (f *fixture) addLecture(status entities.LectureStatus) *entities.Lecture {
	lecture := &entities.Lecture{ID: uuid.New(), CourseID: f.courseID, Title: "Graphs", Status: status}
	if status == entities.LectureStatusActive || status == entities.LectureStatusPaused {
		started := time.Now().Add(-45 * time.Minute)
		lecture.StartedAt = &started
		lecture.IsActive = true
	}
	f.lectures.lectures[lecture.ID] = lecture
	return lecture
}

func TestStartFromScheduled(t *testing.T) {
	f := newFixture(nil)
	lecture := f.addLecture(entities.LectureStatusScheduled)

	got, err := f.svc.Start(context.Background(), lecture.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got.Status != entities.LectureStatusActive || !got.IsActive {
		t.Fatalf("expected active lecture, got %+v", got)
	}
	if got.StartedAt == nil {
		t.Fatal("expected started_at to be set")
	}
	if len(f.sink.events) != 1 {
		t.Fatalf("expected a start event, got %d", len(f.sink.events))
	}
}

func TestStartInvalidStates(t *testing.T) {
	f := newFixture(nil)

	ended := f.addLecture(entities.LectureStatusEnded)
	if _, err := f.svc.Start(context.Background(), ended.ID); err != usecaseErrors.ErrLectureEnded {
		t.Fatalf("expected ended error, got %v", err)
	}

	active := f.addLecture(entities.LectureStatusActive)
	if _, err := f.svc.Start(context.Background(), active.ID); err != usecaseErrors.ErrLectureAlreadyLive {
		t.Fatalf("expected already live error, got %v", err)
	}
}

func TestPauseAndResume(t *testing.T) {
	f := newFixture(nil)
	lecture := f.addLecture(entities.LectureStatusActive)
	ctx := context.Background()

	paused, err := f.svc.Pause(ctx, lecture.ID)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.Status != entities.LectureStatusPaused {
		t.Fatalf("expected paused, got %s", paused.Status)
	}

	if _, err := f.svc.Pause(ctx, lecture.ID); err != usecaseErrors.ErrInvalidLectureState {
		t.Fatalf("double pause should fail, got %v", err)
	}

	resumed, err := f.svc.Resume(ctx, lecture.ID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Status != entities.LectureStatusActive {
		t.Fatalf("expected active, got %s", resumed.Status)
	}

	if _, err := f.svc.Resume(ctx, lecture.ID); err != usecaseErrors.ErrLectureNotPaused {
		t.Fatalf("resume of active lecture should fail, got %v", err)
	}
}

func TestEndCommitsAttendanceAndEmitsLeaves(t *testing.T) {
	seen := &entities.Student{ID: uuid.New(), FullName: "Ada Lovelace", PersonKey: "ada"}
	missed := &entities.Student{ID: uuid.New(), FullName: "Charles Babbage", PersonKey: "charles"}
	f := newFixture([]*entities.Student{seen, missed})
	lecture := f.addLecture(entities.LectureStatusActive)
	ctx := context.Background()

	joined := time.Now().Add(-30 * time.Minute)
	f.attendance.records[attKey(lecture.ID, seen.ID)] = &entities.AttendanceRecord{
		LectureID: lecture.ID,
		StudentID: seen.ID,
		Student:   seen,
		Status:    entities.AttendancePresent,
		JoinTime:  &joined,
	}

	got, err := f.svc.End(ctx, lecture.ID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if got.Status != entities.LectureStatusEnded || got.IsActive {
		t.Fatalf("expected ended lecture, got %+v", got)
	}
	if got.EndedAt == nil || got.DurationMinutes < 44 {
		t.Fatalf("expected duration computed from start, got %+v", got)
	}

	seenRecord := f.attendance.records[attKey(lecture.ID, seen.ID)]
	if seenRecord.LeaveTime == nil {
		t.Fatal("seen student should get a leave time")
	}
	missedRecord, ok := f.attendance.records[attKey(lecture.ID, missed.ID)]
	if !ok || missedRecord.Status != entities.AttendanceAbsent {
		t.Fatalf("unseen enrolled student should be marked absent, got %+v", missedRecord)
	}

	var leaves int
	for _, ev := range f.sink.events {
		if ev.ActionType == entities.ActionLeave {
			leaves++
			if ev.StudentName != "Ada Lovelace" {
				t.Fatalf("leave event for wrong student: %+v", ev)
			}
		}
	}
	if leaves != 1 {
		t.Fatalf("expected exactly one leave event, got %d", leaves)
	}
}

func TestEndRequiresLiveLecture(t *testing.T) {
	f := newFixture(nil)
	lecture := f.addLecture(entities.LectureStatusScheduled)

	if _, err := f.svc.End(context.Background(), lecture.ID); err != usecaseErrors.ErrInvalidLectureState {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

func TestDeleteCascade(t *testing.T) {
	f := newFixture(nil)
	lecture := f.addLecture(entities.LectureStatusEnded)

	if err := f.svc.Delete(context.Background(), lecture.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.lectures.deleted) != 1 || f.lectures.deleted[0] != lecture.ID {
		t.Fatalf("expected cascade delete of %s, got %v", lecture.ID, f.lectures.deleted)
	}
	if _, err := f.svc.Get(context.Background(), lecture.ID); err != entities.ErrLectureNotFound {
		t.Fatalf("expected lecture gone, got %v", err)
	}
}
