package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
)

type fakeAttendanceRepo struct {
	records map[string]*entities.AttendanceRecord
	upserts int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]*entities.AttendanceRecord{}}
}

func key(lectureID, studentID uuid.UUID) string {
	return lectureID.String() + "/" + studentID.String()
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record *entities.AttendanceRecord) error {
	f.upserts++
	f.records[key(record.LectureID, record.StudentID)] = record
	return nil
}
func (f *fakeAttendanceRepo) FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.AttendanceRecord, error) {
	record, ok := f.records[key(lectureID, studentID)]
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
		f.records[key(record.LectureID, record.StudentID)] = record
	}
	return nil
}
func (f *fakeAttendanceRepo) SetLeaveTimes(ctx context.Context, lectureID uuid.UUID, leaveTime time.Time) error {
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

// MarkSeen only touches the attendance repository, so the other
// dependencies stay nil here.
func newMarkSeenService(repo *fakeAttendanceRepo, grace time.Duration) *Service {
	return NewService(repo, nil, nil, nil, grace, zap.NewNop())
}

func liveLecture(startedAt time.Time) *entities.Lecture {
	return &entities.Lecture{
		ID:        uuid.New(),
		CourseID:  uuid.New(),
		Status:    entities.LectureStatusActive,
		StartedAt: &startedAt,
	}
}

func TestMarkSeenWithinGraceIsPresent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newMarkSeenService(repo, 10*time.Minute)

	start := time.Now()
	lecture := liveLecture(start)
	studentID := uuid.New()
	seenAt := start.Add(5 * time.Minute)

	if err := svc.MarkSeen(context.Background(), lecture, studentID, seenAt); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	record := repo.records[key(lecture.ID, studentID)]
	if record == nil {
		t.Fatal("no record upserted")
	}
	if record.Status != entities.AttendancePresent {
		t.Fatalf("status = %s, want %s", record.Status, entities.AttendancePresent)
	}
	if record.JoinTime == nil || !record.JoinTime.Equal(seenAt) {
		t.Fatalf("join time = %v, want %v", record.JoinTime, seenAt)
	}
}

func TestMarkSeenAfterGraceIsLate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newMarkSeenService(repo, 10*time.Minute)

	start := time.Now()
	lecture := liveLecture(start)
	studentID := uuid.New()

	if err := svc.MarkSeen(context.Background(), lecture, studentID, start.Add(11*time.Minute)); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	record := repo.records[key(lecture.ID, studentID)]
	if record == nil || record.Status != entities.AttendanceLate {
		t.Fatalf("record = %+v, want status %s", record, entities.AttendanceLate)
	}
}

func TestMarkSeenExactlyAtGraceIsPresent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newMarkSeenService(repo, 10*time.Minute)

	start := time.Now()
	lecture := liveLecture(start)
	studentID := uuid.New()

	if err := svc.MarkSeen(context.Background(), lecture, studentID, start.Add(10*time.Minute)); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	record := repo.records[key(lecture.ID, studentID)]
	if record == nil || record.Status != entities.AttendancePresent {
		t.Fatalf("record = %+v, want status %s", record, entities.AttendancePresent)
	}
}

func TestMarkSeenKeepsFirstJoinTime(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newMarkSeenService(repo, 10*time.Minute)

	start := time.Now()
	lecture := liveLecture(start)
	studentID := uuid.New()
	first := start.Add(2 * time.Minute)

	if err := svc.MarkSeen(context.Background(), lecture, studentID, first); err != nil {
		t.Fatalf("first MarkSeen: %v", err)
	}
	// The student walks back into frame much later; the record must not move
	if err := svc.MarkSeen(context.Background(), lecture, studentID, start.Add(40*time.Minute)); err != nil {
		t.Fatalf("second MarkSeen: %v", err)
	}

	if repo.upserts != 1 {
		t.Fatalf("upserts = %d, want 1", repo.upserts)
	}
	record := repo.records[key(lecture.ID, studentID)]
	if !record.JoinTime.Equal(first) {
		t.Fatalf("join time = %v, want first sighting %v", record.JoinTime, first)
	}
	if record.Status != entities.AttendancePresent {
		t.Fatalf("status = %s, want %s", record.Status, entities.AttendancePresent)
	}
}

func TestMarkSeenWithoutStartTimeIsPresent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newMarkSeenService(repo, 10*time.Minute)

	lecture := &entities.Lecture{
		ID:       uuid.New(),
		CourseID: uuid.New(),
		Status:   entities.LectureStatusActive,
	}
	studentID := uuid.New()

	if err := svc.MarkSeen(context.Background(), lecture, studentID, time.Now()); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}

	record := repo.records[key(lecture.ID, studentID)]
	if record == nil || record.Status != entities.AttendancePresent {
		t.Fatalf("record = %+v, want status %s", record, entities.AttendancePresent)
	}
}
