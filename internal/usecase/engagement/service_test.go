package engagement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/cache"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

type fakeEngagementRepo struct {
	records map[string]*entities.EngagementRecord
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{records: map[string]*entities.EngagementRecord{}}
}

func key(lectureID, studentID uuid.UUID) string {
	return lectureID.String() + "/" + studentID.String()
}

func (f *fakeEngagementRepo) Create(ctx context.Context, record *entities.EngagementRecord) error {
	record.ID = uuid.New()
	f.records[key(record.LectureID, record.StudentID)] = record
	return nil
}

func (f *fakeEngagementRepo) FindByLectureAndStudent(ctx context.Context, lectureID, studentID uuid.UUID) (*entities.EngagementRecord, error) {
	record, ok := f.records[key(lectureID, studentID)]
	if !ok {
		return nil, entities.ErrEngagementNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeEngagementRepo) Update(ctx context.Context, record *entities.EngagementRecord) error {
	f.records[key(record.LectureID, record.StudentID)] = record
	return nil
}

func (f *fakeEngagementRepo) FindByLectureID(ctx context.Context, lectureID uuid.UUID) ([]*entities.EngagementRecord, error) {
	var out []*entities.EngagementRecord
	for _, record := range f.records {
		if record.LectureID == lectureID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeEngagementRepo) FindTopByLectureID(ctx context.Context, lectureID uuid.UUID, limit int) ([]*entities.EngagementRecord, error) {
	records, _ := f.FindByLectureID(ctx, lectureID)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

type fakeLectureRepo struct {
	lectures map[uuid.UUID]*entities.Lecture
}

func (f *fakeLectureRepo) Create(ctx context.Context, lecture *entities.Lecture) error { return nil }
func (f *fakeLectureRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Lecture, error) {
	lecture, ok := f.lectures[id]
	if !ok {
		return nil, entities.ErrLectureNotFound
	}
	return lecture, nil
}
func (f *fakeLectureRepo) Update(ctx context.Context, lecture *entities.Lecture) error { return nil }
func (f *fakeLectureRepo) List(ctx context.Context, filters repositories.LectureFilters) ([]*entities.Lecture, int64, error) {
	return nil, 0, nil
}
func (f *fakeLectureRepo) FindActiveByCourseID(ctx context.Context, courseID uuid.UUID) (*entities.Lecture, error) {
	return nil, entities.ErrLectureNotFound
}
func (f *fakeLectureRepo) UpdateStatus(ctx context.Context, lectureID uuid.UUID, status entities.LectureStatus) error {
	return nil
}
func (f *fakeLectureRepo) DeleteCascade(ctx context.Context, lectureID uuid.UUID) error { return nil }

type fakeStudentRepo struct {
	students map[uuid.UUID]*entities.Student
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *entities.Student) error { return nil }
func (f *fakeStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, entities.ErrStudentNotFound
	}
	return student, nil
}
func (f *fakeStudentRepo) FindByPersonKey(ctx context.Context, personKey string) (*entities.Student, error) {
	return nil, entities.ErrStudentNotFound
}
func (f *fakeStudentRepo) Update(ctx context.Context, student *entities.Student) error { return nil }
func (f *fakeStudentRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }
func (f *fakeStudentRepo) List(ctx context.Context, search string, limit, offset int) ([]*entities.Student, int64, error) {
	return nil, 0, nil
}

func testService(t *testing.T) (*Service, uuid.UUID, uuid.UUID) {
	t.Helper()
	lectureID, studentID := uuid.New(), uuid.New()
	lectures := &fakeLectureRepo{lectures: map[uuid.UUID]*entities.Lecture{
		lectureID: {ID: lectureID, Status: entities.LectureStatusActive},
	}}
	students := &fakeStudentRepo{students: map[uuid.UUID]*entities.Student{
		studentID: {ID: studentID, FullName: "Ada Lovelace", PersonKey: "ada"},
	}}
	svc := NewService(newFakeEngagementRepo(), lectures, students, cache.NewMemoryStore(), zap.NewNop())
	return svc, lectureID, studentID
}

func TestRecordActionFirstCorrectAnswer(t *testing.T) {
	svc, lectureID, studentID := testService(t)

	record, err := svc.RecordAction(context.Background(), lectureID, studentID, ActionCorrectAnswer, 0)
	if err != nil {
		t.Fatalf("record action: %v", err)
	}
	if record.FocusScore != 60 {
		t.Fatalf("first correct answer on a fresh record should score 60, got %d", record.FocusScore)
	}
	if record.EngagementLevel != entities.EngagementHigh {
		t.Fatalf("correct answer should set level high, got %s", record.EngagementLevel)
	}
	if record.HandRaisedCount != 1 {
		t.Fatalf("correct answer should bump hand raised count, got %d", record.HandRaisedCount)
	}
}

func TestRecordActionPenaltyAfterCorrect(t *testing.T) {
	svc, lectureID, studentID := testService(t)
	ctx := context.Background()

	if _, err := svc.RecordAction(ctx, lectureID, studentID, ActionCorrectAnswer, 0); err != nil {
		t.Fatalf("record action: %v", err)
	}
	record, err := svc.RecordAction(ctx, lectureID, studentID, ActionPenalty, 0)
	if err != nil {
		t.Fatalf("record action: %v", err)
	}
	if record.FocusScore != 55 {
		t.Fatalf("60 - 5 should be 55, got %d", record.FocusScore)
	}
}

func TestRecordActionClampsScore(t *testing.T) {
	svc, lectureID, studentID := testService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := svc.RecordAction(ctx, lectureID, studentID, ActionCorrectAnswer, 0); err != nil {
			t.Fatalf("record action: %v", err)
		}
	}
	record, _ := svc.RecordAction(ctx, lectureID, studentID, ActionCorrectAnswer, 0)
	if record.FocusScore != entities.FocusScoreMax {
		t.Fatalf("score must cap at %d, got %d", entities.FocusScoreMax, record.FocusScore)
	}

	for i := 0; i < 30; i++ {
		if _, err := svc.RecordAction(ctx, lectureID, studentID, ActionPenalty, 0); err != nil {
			t.Fatalf("record action: %v", err)
		}
	}
	record, _ = svc.RecordAction(ctx, lectureID, studentID, ActionPenalty, 0)
	if record.FocusScore != entities.FocusScoreMin {
		t.Fatalf("score must floor at %d, got %d", entities.FocusScoreMin, record.FocusScore)
	}
}

func TestRecordActionCustomPoints(t *testing.T) {
	svc, lectureID, studentID := testService(t)

	record, err := svc.RecordAction(context.Background(), lectureID, studentID, ActionCustom, 25)
	if err != nil {
		t.Fatalf("record action: %v", err)
	}
	if record.FocusScore != 75 {
		t.Fatalf("custom +25 on a fresh record should score 75, got %d", record.FocusScore)
	}
}

func TestRecordActionUnknownType(t *testing.T) {
	svc, lectureID, studentID := testService(t)

	if _, err := svc.RecordAction(context.Background(), lectureID, studentID, ActionType(9), 0); err != usecaseErrors.ErrUnknownActionType {
		t.Fatalf("expected unknown action error, got %v", err)
	}
}

func TestRecordActionUnknownLecture(t *testing.T) {
	svc, _, studentID := testService(t)

	if _, err := svc.RecordAction(context.Background(), uuid.New(), studentID, ActionCorrectAnswer, 0); err != entities.ErrLectureNotFound {
		t.Fatalf("expected lecture not found, got %v", err)
	}
}

func TestRecordObservation(t *testing.T) {
	svc, lectureID, studentID := testService(t)
	ctx := context.Background()

	obs := Observation{Focused: true, TickSeconds: 5, Confidence: 0.9, RecognitionStatus: "known"}
	if err := svc.RecordObservation(ctx, lectureID, studentID, obs); err != nil {
		t.Fatalf("record observation: %v", err)
	}
	obs = Observation{Focused: false, FocusLost: true, TickSeconds: 5, Confidence: 0.7, RecognitionStatus: "known"}
	if err := svc.RecordObservation(ctx, lectureID, studentID, obs); err != nil {
		t.Fatalf("record observation: %v", err)
	}

	record, err := svc.engagementRepo.FindByLectureAndStudent(ctx, lectureID, studentID)
	if err != nil {
		t.Fatalf("find record: %v", err)
	}
	if record.AttentionSeconds != 5 {
		t.Fatalf("expected 5 attention seconds, got %d", record.AttentionSeconds)
	}
	if record.DistractionCount != 1 {
		t.Fatalf("expected 1 distraction, got %d", record.DistractionCount)
	}
	if record.DetectionCount != 2 {
		t.Fatalf("expected 2 detections, got %d", record.DetectionCount)
	}
	if record.AverageConfidence < 0.79 || record.AverageConfidence > 0.81 {
		t.Fatalf("expected average confidence 0.8, got %f", record.AverageConfidence)
	}
	if record.FocusScore != entities.FocusScoreInitial {
		t.Fatalf("observations alone must not move the score, got %d", record.FocusScore)
	}
}
