package engagement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/cache"
	usecaseErrors "github.com/classpulse/backend/internal/usecase/errors"
)

// ActionType is the numeric action code posted by the instructor UI
type ActionType int

const (
	ActionCorrectAnswer ActionType = 1
	ActionAttempted     ActionType = 2
	ActionPenalty       ActionType = 3
	ActionCustom        ActionType = 4
)

// Score deltas per action code
const (
	pointsCorrectAnswer = 10
	pointsAttempted     = 5
	pointsPenalty       = -5
)

const leaderboardCacheTTL = 10 * time.Second

// Observation is one continuous-signal sample from the live pipeline for a
// single student: attention state this tick, whether focus was just lost,
// and the detector confidence for the sighting.
type Observation struct {
	Focused           bool
	FocusLost         bool
	TickSeconds       int
	Confidence        float64
	RecognitionStatus string
}

// Service aggregates engagement scoring per (student, lecture)
type Service struct {
	engagementRepo repositories.EngagementRepository
	lectureRepo    repositories.LectureRepository
	studentRepo    repositories.StudentRepository
	store          cache.Store
	logger         *zap.Logger
}

// NewService creates a new engagement service
func NewService(
	engagementRepo repositories.EngagementRepository,
	lectureRepo repositories.LectureRepository,
	studentRepo repositories.StudentRepository,
	store cache.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		engagementRepo: engagementRepo,
		lectureRepo:    lectureRepo,
		studentRepo:    studentRepo,
		store:          store,
		logger:         logger,
	}
}

// pointsFor resolves the score delta for an action code. Custom actions
// carry caller-supplied points (zero when omitted).
func pointsFor(action ActionType, customPoints int) (int, error) {
	switch action {
	case ActionCorrectAnswer:
		return pointsCorrectAnswer, nil
	case ActionAttempted:
		return pointsAttempted, nil
	case ActionPenalty:
		return pointsPenalty, nil
	case ActionCustom:
		return customPoints, nil
	default:
		return 0, usecaseErrors.ErrUnknownActionType
	}
}

// RecordAction applies one instructor-initiated scoring action. The first
// action for a (lecture, student) pair creates the record with the delta
// applied to the initial score; later actions accumulate with clamping.
// Writes are last-write-wins at the record level.
func (s *Service) RecordAction(ctx context.Context, lectureID, studentID uuid.UUID, action ActionType, customPoints int) (*entities.EngagementRecord, error) {
	points, err := pointsFor(action, customPoints)
	if err != nil {
		return nil, err
	}

	if _, err := s.lectureRepo.FindByID(ctx, lectureID); err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, err
	}

	record, err := s.engagementRepo.FindByLectureAndStudent(ctx, lectureID, studentID)
	if err != nil {
		if err != entities.ErrEngagementNotFound {
			return nil, err
		}
		record = &entities.EngagementRecord{
			LectureID:  lectureID,
			StudentID:  studentID,
			FocusScore: entities.FocusScoreInitial,
		}
		record.AddPoints(points)
		s.applyActionSideEffects(record, action)
		if err := s.engagementRepo.Create(ctx, record); err != nil {
			return nil, err
		}
		s.invalidateLeaderboard(lectureID)
		return record, nil
	}

	record.AddPoints(points)
	s.applyActionSideEffects(record, action)
	if err := s.engagementRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("engagement action recorded",
		zap.String("lecture_id", lectureID.String()),
		zap.String("student_id", studentID.String()),
		zap.Int("action", int(action)),
		zap.Int("points", points),
		zap.Int("focus_score", record.FocusScore))

	s.invalidateLeaderboard(lectureID)
	return record, nil
}

// applyActionSideEffects applies the non-score effects of an action.
// Correct and attempted answers imply the student participated by hand.
func (s *Service) applyActionSideEffects(record *entities.EngagementRecord, action ActionType) {
	switch action {
	case ActionCorrectAnswer, ActionAttempted:
		record.EngagementLevel = entities.EngagementHigh
		record.HandRaisedCount++
	default:
		record.DeriveLevel()
	}
}

// RecordObservation folds one continuous-signal sample into the record,
// creating it at the initial score when the student has no record yet.
// The engagement level follows the score here, unlike instructor actions.
func (s *Service) RecordObservation(ctx context.Context, lectureID, studentID uuid.UUID, obs Observation) error {
	record, err := s.engagementRepo.FindByLectureAndStudent(ctx, lectureID, studentID)
	if err != nil {
		if err != entities.ErrEngagementNotFound {
			return err
		}
		record = &entities.EngagementRecord{
			LectureID:  lectureID,
			StudentID:  studentID,
			FocusScore: entities.FocusScoreInitial,
		}
		if err := s.engagementRepo.Create(ctx, record); err != nil {
			return err
		}
	}

	if obs.Focused {
		record.AttentionSeconds += obs.TickSeconds
	}
	if obs.FocusLost {
		record.DistractionCount++
	}
	if obs.Confidence > 0 {
		record.RecordDetection(obs.Confidence)
	}
	if obs.RecognitionStatus != "" {
		record.RecognitionStatus = obs.RecognitionStatus
	}
	record.DeriveLevel()

	return s.engagementRepo.Update(ctx, record)
}

// ListByLecture returns all engagement records for a lecture
func (s *Service) ListByLecture(ctx context.Context, lectureID uuid.UUID) ([]*entities.EngagementRecord, error) {
	if _, err := s.lectureRepo.FindByID(ctx, lectureID); err != nil {
		return nil, err
	}
	return s.engagementRepo.FindByLectureID(ctx, lectureID)
}

// Leaderboard returns the top records for a lecture sorted by focus score,
// served from cache when a fresh copy exists.
func (s *Service) Leaderboard(ctx context.Context, lectureID uuid.UUID, limit int) ([]*entities.EngagementRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	key := leaderboardKey(lectureID, limit)
	if cached, ok := s.store.Get(key); ok {
		var records []*entities.EngagementRecord
		if err := json.Unmarshal([]byte(cached), &records); err == nil {
			return records, nil
		}
		s.store.Delete(key)
	}

	records, err := s.engagementRepo.FindTopByLectureID(ctx, lectureID, limit)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(records); err == nil {
		s.store.Set(key, string(encoded), leaderboardCacheTTL)
	}
	return records, nil
}

// invalidateLeaderboard drops cached leaderboard entries for a lecture
func (s *Service) invalidateLeaderboard(lectureID uuid.UUID) {
	// common limits only; stale entries at other limits age out via TTL
	for _, limit := range []int{5, 10, 20, 50} {
		s.store.Delete(leaderboardKey(lectureID, limit))
	}
}

func leaderboardKey(lectureID uuid.UUID, limit int) string {
	return fmt.Sprintf("leaderboard:%s:%d", lectureID.String(), limit)
}
